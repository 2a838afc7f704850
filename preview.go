package main

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"time"

	"github.com/awused/composite-wallpapers/composite"
	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

const horizontal = "horizontal"
const vertical = "vertical"
const top = "top"
const bottom = "bottom"
const left = "left"
const right = "right"
const background = "background"

func previewCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "preview"
	cmd.Usage = "Preview a single wallpaper on every monitor, or one file per monitor"
	cmd.ArgsUsage = "FILE..."
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.Float64Flag{
			Name:    vertical,
			Aliases: []string{"v"},
			Value:   0,
			Usage: "Vertical offset, as a percentage of the file's height." +
				"Positive values move the viewport upwards",
		},
		&cli.Float64Flag{
			Name:    horizontal,
			Aliases: []string{"x"},
			Value:   0,
			Usage: "Horizontal offset, as a percentage of the file's width." +
				"Positive values move the viewport right",
		},
		&cli.IntFlag{
			Name:    top,
			Aliases: []string{"t"},
			Value:   0,
			Usage:   "Pixels to crop off the top, negative values pad",
		},
		&cli.IntFlag{
			Name:    bottom,
			Aliases: []string{"b"},
			Value:   0,
			Usage:   "Pixels to crop off the bottom, negative values pad",
		},
		&cli.IntFlag{
			Name:    left,
			Aliases: []string{"l"},
			Value:   0,
			Usage:   "Pixels to crop off the left side, negative values pad",
		},
		&cli.IntFlag{
			Name:    right,
			Aliases: []string{"r"},
			Value:   0,
			Usage:   "Pixels to crop off the right side, negative values pad",
		},
		&cli.StringFlag{
			Name:    background,
			Aliases: []string{"bg"},
			Value:   "black",
			Usage:   "Background colour to use when padding",
		},
		fitFlag(),
		noSetFlag(),
	}

	cmd.Action = previewAction

	return cmd
}

func previewAction(c *cli.Context) error {
	if c.NArg() == 0 {
		checkErr(errors.New("Missing input file"))
	}

	files := make([]string, c.NArg())
	for i, f := range c.Args().Slice() {
		abs, err := filepath.Abs(f)
		checkErr(err)
		files[i] = abs
	}

	imageProps := composite.Props{
		Vertical:   c.Float64(vertical),
		Horizontal: c.Float64(horizontal),
		Top:        c.Int(top),
		Bottom:     c.Int(bottom),
		Left:       c.Int(left),
		Right:      c.Int(right),
		Background: c.String(background)}

	monitors, err := lib.GetMonitors()
	checkErr(err)

	out, err := previewFiles(files, imageProps, monitors)
	checkErr(err)

	setWallpaper(c, monitors, out)

	// Windows will fail to read the wallpaper if we exit too fast
	if runtime.GOOS == "windows" && !c.Bool(noSet) {
		<-time.After(5 * time.Second)
	}
	return nil
}

// previewFiles combines either one file shown on every monitor or exactly one
// file per monitor.
func previewFiles(
	files []string, imageProps composite.Props, monitors []*lib.Monitor) (string, error) {

	if len(files) != 1 && len(files) != len(monitors) {
		return "", fmt.Errorf("%w: %d files for %d monitors",
			composite.ErrMismatchedInputs, len(files), len(monitors))
	}

	loaded := make([]image.Image, len(files))
	for i, f := range files {
		img, err := lib.LoadImage(f)
		if err != nil {
			return "", err
		}
		loaded[i] = img
	}

	images := make([]image.Image, len(monitors))
	props := make([]composite.Props, len(monitors))
	for i := range monitors {
		if len(loaded) == 1 {
			images[i] = loaded[0]
		} else {
			images[i] = loaded[i]
		}
		props[i] = imageProps
	}

	return lib.CombineImages(images, props, monitors)
}
