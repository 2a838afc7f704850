package main

import (
	"context"
	"os"
	"os/signal"

	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

const url = "url"
const parallel = "parallel"

func fetchCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "fetch"
	cmd.Usage = "Download a wallpaper sized for each monitor and combine them"
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name: url,
			Usage: "URL template, {width} and {height} are replaced with the " +
				"monitor's resolution. Overrides FetchURL",
		},
		&cli.BoolFlag{
			Name:  parallel,
			Usage: "Fetch every monitor's image at once. Overrides FetchParallel",
		},
		&cli.BoolFlag{
			Name:    unlocked,
			Aliases: []string{"u"},
			Usage:   "Checks to see if the screen is locked and aborts if it is",
		},
		fitFlag(),
		noSetFlag(),
	}

	cmd.Action = fetchAction

	return cmd
}

func fetchAction(c *cli.Context) error {
	conf, err := lib.GetConfig()
	checkErr(err)

	if c.Bool(unlocked) {
		locked, err := lib.CheckIfLocked()
		checkErr(err)
		if locked {
			return nil
		}
	}

	if c.IsSet(url) {
		conf.FetchURL = c.String(url)
	}
	inParallel := conf.FetchParallel
	if c.IsSet(parallel) {
		inParallel = c.Bool(parallel)
	}

	monitors, err := lib.GetMonitors()
	checkErr(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := lib.NewFetcher(conf)
	images, err := fetcher.FetchAll(ctx, lib.Descriptors(monitors), inParallel)
	checkErr(err)

	out, err := lib.CombineImages(images, nil, monitors)
	checkErr(err)

	setWallpaper(c, monitors, out)
	return nil
}
