package main

import (
	"fmt"

	"github.com/awused/composite-wallpapers/composite"
	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

func checkCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "check"
	cmd.Usage = "Verify every image in OriginalsDirectory can be read and that " +
		"there are enough of each orientation for the current monitors"
	cmd.Description = "Also lists entries in .properties.toml for images that " +
		"no longer exist, remove those manually"
	cmd.Before = beforeFunc

	cmd.Action = checkAction

	return cmd
}

func checkAction(c *cli.Context) error {
	monitors, err := lib.GetMonitors()
	checkErr(err)

	originals, err := lib.GetAllOriginals()
	checkErr(err)

	report, err := lib.CheckOriginals(originals)
	checkErr(err)

	fmt.Printf("%d landscape, %d portrait\n",
		len(report.Pool.Landscape), len(report.Pool.Portrait))

	landscape, portrait := 0, 0
	for _, m := range lib.Descriptors(monitors) {
		if m.Orientation() == composite.Portrait {
			portrait++
		} else {
			landscape++
		}
	}
	if len(report.Pool.Landscape) < landscape {
		fmt.Printf("Not enough landscape images for %d monitors\n", landscape)
	}
	if len(report.Pool.Portrait) < portrait {
		fmt.Printf("Not enough portrait images for %d monitors\n", portrait)
	}

	for _, inv := range report.Invalid {
		fmt.Printf("Invalid image [%s]: %s\n", inv.Path, inv.Err)
	}
	for _, p := range report.StaleProps {
		fmt.Printf("Stale properties for [%s]\n", p)
	}
	return nil
}
