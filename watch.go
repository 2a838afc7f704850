package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

const delay = "delay"

func watchCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "watch"
	cmd.Usage = "Pick new wallpapers whenever images are added to or removed " +
		"from OriginalsDirectory"
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    unlocked,
			Aliases: []string{"u"},
			Usage:   "Skip changes while the screen is locked",
		},
		&cli.BoolFlag{
			Name:  anyOrientation,
			Usage: "Ignore whether images and monitors are landscape or portrait",
		},
		&cli.DurationFlag{
			Name:  delay,
			Usage: "How long to wait for changes to settle before picking",
			Value: lib.DefaultWatchDelay,
		},
		fitFlag(),
		noSetFlag(),
	}

	cmd.Action = watchAction

	return cmd
}

func watchAction(c *cli.Context) error {
	conf, err := lib.GetConfig()
	checkErr(err)
	checkErr(conf.RequireOriginals())

	logger := lib.Logger()

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkUnlocked := c.Bool(unlocked)
	anyOrient := c.Bool(anyOrientation)
	set := !c.Bool(noSet)

	w := lib.NewOriginalsWatcher(func() {
		if checkUnlocked {
			locked, err := lib.CheckIfLocked()
			if err != nil {
				logger.Error().Err(err).Msg("Failed to check lock state")
				return
			}
			if locked {
				return
			}
		}

		err := runRandom(randomOptions{
			anyOrientation: anyOrient,
			seed:           time.Now().UnixNano(),
			set:            set,
		})
		if err != nil {
			// Keep watching, the next change may fix it
			logger.Error().Err(err).Msg("Failed to pick new wallpapers")
		}
	})
	w.Delay = c.Duration(delay)

	logger.Info().Str("directory", conf.OriginalsDirectory).Msg("Watching")
	checkErr(w.Run(ctx))
	return nil
}
