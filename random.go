package main

import (
	"image"
	"math/rand"
	"time"

	"github.com/awused/composite-wallpapers/composite"
	lib "github.com/awused/composite-wallpapers/lib"
	"github.com/urfave/cli/v2"
)

const unlocked = "unlocked"
const anyOrientation = "any-orientation"
const seed = "seed"

func randomCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "random"
	cmd.Usage = "Randomly select a wallpaper for each monitor from OriginalsDirectory"
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    unlocked,
			Aliases: []string{"u"},
			Usage:   "Checks to see if the screen is locked and aborts if it is",
		},
		&cli.BoolFlag{
			Name:  anyOrientation,
			Usage: "Ignore whether images and monitors are landscape or portrait",
		},
		&cli.Int64Flag{
			Name:  seed,
			Usage: "Seed for the random selection, defaults to the current time",
		},
		fitFlag(),
		noSetFlag(),
	}

	cmd.Action = randomAction

	return cmd
}

type randomOptions struct {
	anyOrientation bool
	seed           int64
	set            bool
}

func randomAction(c *cli.Context) error {
	if c.Bool(unlocked) {
		locked, err := lib.CheckIfLocked()
		checkErr(err)
		if locked {
			// Silently exit, this isn't an error
			return nil
		}
	}

	opts := randomOptions{
		anyOrientation: c.Bool(anyOrientation),
		seed:           time.Now().UnixNano(),
		set:            !c.Bool(noSet),
	}
	if c.IsSet(seed) {
		opts.seed = c.Int64(seed)
	}

	checkErr(runRandom(opts))
	return nil
}

func runRandom(opts randomOptions) error {
	conf, err := lib.GetConfig()
	if err != nil {
		return err
	}
	logger := lib.Logger()

	monitors, err := lib.GetMonitors()
	if err != nil {
		return err
	}

	originals, err := lib.GetAllOriginals()
	if err != nil {
		return err
	}

	pool, err := lib.BuildPool(originals)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(opts.seed))
	descriptors := lib.Descriptors(monitors)

	var picks []composite.Candidate
	if conf.MatchesOrientation() && !opts.anyOrientation {
		picks, _, err = composite.Match(pool, descriptors, rng)
	} else {
		picks, _, err = composite.MatchAny(pool, descriptors, rng)
	}
	if err != nil {
		return err
	}

	images := make([]image.Image, len(picks))
	props := make([]composite.Props, len(picks))

	for i, p := range picks {
		m := monitors[i]
		props[i] = lib.GetConfigImageProps(p.Path, m)

		absPath, err := lib.GetFullInputPath(p.Path)
		if err != nil {
			return err
		}

		logger.Info().Int("monitor", i).Stringer("geometry", m).Str("image", p.Path).Msg("Selected")

		images[i], err = lib.LoadImage(absPath)
		if err != nil {
			return err
		}
	}

	out, err := lib.CombineImages(images, props, monitors)
	if err != nil {
		return err
	}

	if !opts.set {
		return nil
	}
	return lib.SetMonitorWallpapers(monitors, out)
}
