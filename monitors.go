package main

import (
	"fmt"

	"github.com/awused/composite-wallpapers/composite"
	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

func monitorsCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "monitors"
	cmd.Usage = "Print the detected monitors and the size of the combined wallpaper"
	cmd.Before = beforeFunc

	cmd.Action = monitorsAction

	return cmd
}

func monitorsAction(c *cli.Context) error {
	monitors, err := lib.GetMonitors()
	checkErr(err)

	bounds, err := composite.CanvasBounds(lib.Descriptors(monitors))
	checkErr(err)

	for i, m := range monitors {
		fmt.Printf("%d: %s (%s)\n", i, m, m.Aspect())
	}
	fmt.Printf("Canvas: %dx%d, origin %d,%d\n",
		bounds.Width, bounds.Height, bounds.MinLeft, bounds.MinTop)
	return nil
}
