package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/awused/composite-wallpapers/composite"
	lib "github.com/awused/composite-wallpapers/lib"
	prompt "github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"
)

func interactiveCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "interactive"
	cmd.Usage = "Interactively preview a single image on every monitor to " +
		"quickly iterate on your settings."
	cmd.ArgsUsage = "FILE"
	cmd.Before = beforeFunc
	cmd.Flags = []cli.Flag{fitFlag()}

	cmd.Action = interactiveAction

	return cmd
}

func interactiveAction(c *cli.Context) error {
	if c.NArg() == 0 {
		checkErr(errors.New("Missing input file"))
	}

	w, err := filepath.Abs(c.Args().First())
	checkErr(err)

	// Large buffered channel so it doesn't block signals if it's busy
	sigs := make(chan os.Signal, 100)
	promptChan := make(chan struct{}, 1)
	inputChan := make(chan string)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGHUP)

	go func() {
		promptUntilDone(w, inputChan)
		promptChan <- struct{}{}
	}()

	for {
		select {
		case <-promptChan:
			return nil
		case <-sigs:
			// We need to make sure we clean up, so consume sigint
			inputChan <- "exit"
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "exit", Description: "Exit the program"},
		{Text: "print", Description: "Print the settings to be copied into " +
			".properties.toml"},
		{Text: "reset", Description: "Reset all settings"},
		{Text: fit, Description: "Set the fit mode, crop or stretch"},
		{Text: vertical, Description: "Set the vertical offset"},
		{Text: horizontal, Description: "Set the horizontal offset"},
		{Text: top, Description: "Set the cropping or padding value for" +
			" the top of the image"},
		{Text: bottom, Description: "Set the cropping or padding value for" +
			" the bottom of the image"},
		{Text: left, Description: "Set the cropping or padding value for" +
			" the left side of the image"},
		{Text: right, Description: "Set the cropping or padding value for" +
			" the right side of the image"},
		{Text: background, Description: "Set the background colour for padding"},
	}
	return prompt.FilterHasPrefix(s, d.TextBeforeCursor(), true)
}

// Just have to make everything as difficult as possible
func tomlDouble(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".e") {
		s = s + ".0"
	}
	return s
}

// formatImageProps renders the non-default settings as TOML lines
func formatImageProps(ip composite.Props) string {
	var sb strings.Builder

	if ip.Vertical != 0 {
		fmt.Fprintf(&sb, "Vertical = %s\n", tomlDouble(ip.Vertical))
	}
	if ip.Horizontal != 0 {
		fmt.Fprintf(&sb, "Horizontal = %s\n", tomlDouble(ip.Horizontal))
	}

	if ip.Top != 0 {
		fmt.Fprintf(&sb, "Top = %d\n", ip.Top)
	}
	if ip.Bottom != 0 {
		fmt.Fprintf(&sb, "Bottom = %d\n", ip.Bottom)
	}
	if ip.Left != 0 {
		fmt.Fprintf(&sb, "Left = %d\n", ip.Left)
	}
	if ip.Right != 0 {
		fmt.Fprintf(&sb, "Right = %d\n", ip.Right)
	}

	if ip.Background != "" && ip.Background != "black" {
		fmt.Fprintf(&sb, "Background = '%s'\n", ip.Background)
	}
	return sb.String()
}

func setInt(toSet *int) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("Invalid input \"%s\"\n", input)
			return
		}
		*toSet = n
	}
}

func setDouble(toSet *float64) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		n, err := strconv.ParseFloat(input, 64)
		if err != nil {
			fmt.Printf("Invalid input \"%s\"\n", input)
			return
		}
		*toSet = n
	}
}

func setString(toSet *string) func(string, string) {
	return func(s, p string) {
		input := strings.TrimPrefix(s, p)
		*toSet = input
	}
}

func setFitMode(s, p string) {
	conf, err := lib.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = conf.SetFitMode(strings.TrimPrefix(s, p)); err != nil {
		fmt.Println(err)
	}
}

func promptUntilDone(wallpaper string, inputChan chan string) {
	imageProps := composite.Props{}
	executors := map[string]func(string, string){
		fit + " ":        setFitMode,
		vertical + " ":   setDouble(&imageProps.Vertical),
		"v ":             setDouble(&imageProps.Vertical),
		horizontal + " ": setDouble(&imageProps.Horizontal),
		"h ":             setDouble(&imageProps.Horizontal),
		top + " ":        setInt(&imageProps.Top),
		"t ":             setInt(&imageProps.Top),
		bottom + " ":     setInt(&imageProps.Bottom),
		"b ":             setInt(&imageProps.Bottom),
		left + " ":       setInt(&imageProps.Left),
		"l ":             setInt(&imageProps.Left),
		right + " ":      setInt(&imageProps.Right),
		"r ":             setInt(&imageProps.Right),
		background + " ": setString(&imageProps.Background),
		"bg ":            setString(&imageProps.Background),
	}

	exit := prompt.OptionAddKeyBind(prompt.KeyBind{
		Key: prompt.ControlC,
		Fn: func(b *prompt.Buffer) {
			inputChan <- "exit"
		},
	})

	monitors, err := lib.GetMonitors()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Previewing...")
	interactivePreview(wallpaper, imageProps, monitors)

PromptLoop:
	for {
		go func() {
			// prompt.Input is blocking, synchronous, and provides no way to abort it
			inputChan <- strings.ToLower(prompt.Input("> ", completer, exit))
		}()
		in := <-inputChan
		if in == "exit" {
			return
		}
		if in == "print" {
			fmt.Print(formatImageProps(imageProps))
			continue
		}

		if in == "reset" {
			imageProps = composite.Props{}

			interactivePreview(wallpaper, imageProps, monitors)
			continue
		}

		// Very naive, but adequate
		for s, e := range executors {
			if strings.HasPrefix(in, s) {
				e(in, s)

				interactivePreview(wallpaper, imageProps, monitors)
				continue PromptLoop
			}
		}

		fmt.Println("Unknown command")
	}
}

func interactivePreview(w string, imageProps composite.Props, monitors []*lib.Monitor) {
	out, err := previewFiles([]string{w}, imageProps, monitors)
	if err == nil {
		err = lib.SetMonitorWallpapers(monitors, out)
	}
	if err != nil {
		fmt.Println("Unexpected error: ", err)
	}
}
