package main

import (
	"os"

	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

const fit = "fit"
const noSet = "no-set"

func main() {
	lib.AttachParentConsole()
	defer lib.Cleanup()

	app := cli.NewApp()
	app.Usage = "Combine one wallpaper per monitor into a single spanned wallpaper"
	app.Commands = []*cli.Command{
		randomCommand(),
		fetchCommand(),
		previewCommand(),
		interactiveCommand(),
		monitorsCommand(),
		checkCommand(),
		watchCommand(),
	}

	err := app.Run(os.Args)
	checkErr(err)
}

// Only init when necessary
// Can't do conditionally in app.Before because app.Before is useless for any purpose
func beforeFunc(ctxt *cli.Context) error {
	c, err := lib.Init()
	checkErr(err)

	if ctxt.IsSet(fit) {
		checkErr(c.SetFitMode(ctxt.String(fit)))
	}
	return nil
}

func fitFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  fit,
		Usage: "How to fit images to monitors, \"crop\" or \"stretch\". Overrides FitMode",
	}
}

func noSetFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  noSet,
		Usage: "Only write the composite image, don't set it as the wallpaper",
	}
}

func checkErr(err error) {
	if err != nil {
		logger := lib.Logger()
		logger.Error().Err(err).Msg("Aborting")
		lib.Cleanup()
		os.Exit(1)
	}
}

// setWallpaper applies the composite unless --no-set was passed
func setWallpaper(c *cli.Context, monitors []*lib.Monitor, wallpaper string) {
	if c.Bool(noSet) {
		return
	}

	err := lib.SetMonitorWallpapers(monitors, wallpaper)
	checkErr(err)
}
