package changewallpaperlib

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/awused/awconf"
	"github.com/awused/composite-wallpapers/composite"
)

// StaticMonitor replaces OS monitor detection when listed in the config
type StaticMonitor struct {
	Left   int
	Top    int
	Width  int
	Height int
}

type Config struct {
	LogFile             string
	LogLevel            string
	OutputDir           string
	OutputFile          string
	JPEGQuality         int
	FitMode             string
	Filter              string
	Background          string
	OriginalsDirectory  string
	ImageFileExtensions []string
	// Defaults to true
	MatchOrientation *bool
	// {width} and {height} are replaced with the monitor's resolution
	FetchURL      string
	FetchTimeout  string
	FetchParallel bool
	Monitors      []StaticMonitor

	fitMode      composite.FitMode
	background   color.Color
	fetchTimeout time.Duration
}

const propertiesFile = ".properties.toml"

var defaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tif", ".tiff"}

var props map[string]map[string]map[string]composite.Props
var conf *Config

func GetConfig() (*Config, error) {
	if conf != nil {
		return conf, nil
	}

	return nil, fmt.Errorf("Init never called")
}

// Be sure to defer Cleanup() after calling this
func Init() (*Config, error) {
	c := &Config{}

	if err := awconf.LoadConfig("composite-wallpapers", c); err != nil {
		return nil, err
	}

	return InitWithConfig(c)
}

// InitWithConfig is Init without reading a config file
func InitWithConfig(c *Config) (*Config, error) {
	props = nil
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := setupLogging(c); err != nil {
		return nil, err
	}

	conf = c
	return c, nil
}

func Cleanup() error {
	return closeLogFile()
}

func GetConfigImageProps(path RelativePath, m *Monitor) composite.Props {
	if conf == nil || m == nil || props == nil {
		return composite.Props{}
	}

	slashPath := filepath.ToSlash(path)

	return props[slashPath][m.aspectX][m.aspectY]
}

func (c *Config) Fit() composite.FitMode {
	return c.fitMode
}

// SetFitMode overrides the configured fit mode, used for command line flags
func (c *Config) SetFitMode(s string) error {
	f, err := composite.ParseFitMode(s)
	if err != nil {
		return err
	}
	c.FitMode = s
	c.fitMode = f
	return nil
}

func (c *Config) BackgroundColor() color.Color {
	return c.background
}

func (c *Config) MatchesOrientation() bool {
	return c.MatchOrientation == nil || *c.MatchOrientation
}

func (c *Config) OutputPath() (AbsolutePath, error) {
	return filepath.Abs(filepath.Join(c.OutputDir, c.OutputFile))
}

func (c *Config) compositeOptions(ps []composite.Props) composite.Options {
	return composite.Options{
		Mode:       c.fitMode,
		Filter:     c.Filter,
		Props:      ps,
		Background: c.background,
	}
}

// RequireOriginals is for commands that pick from OriginalsDirectory
func (c *Config) RequireOriginals() error {
	if c.OriginalsDirectory == "" {
		return fmt.Errorf("Config missing OriginalsDirectory")
	}
	return nil
}

func (c *Config) validate() error {
	var err error

	if c.fitMode, err = composite.ParseFitMode(c.FitMode); err != nil {
		return err
	}

	if _, err = composite.ParseFilter(c.Filter); err != nil {
		return err
	}

	if c.background, err = composite.ParseColor(c.Background); err != nil {
		return err
	}

	if c.JPEGQuality == 0 {
		c.JPEGQuality = composite.DefaultJPEGQuality
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("JPEGQuality must be between 1 and 100")
	}

	if c.FetchTimeout != "" {
		c.fetchTimeout, err = time.ParseDuration(c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("Invalid FetchTimeout [%s]: %s", c.FetchTimeout, err)
		}
	}

	for i, m := range c.Monitors {
		err = composite.NewMonitor(m.Left, m.Top, m.Width, m.Height).Validate()
		if err != nil {
			return fmt.Errorf("Monitors[%d]: %w", i, err)
		}
	}

	if len(c.ImageFileExtensions) == 0 {
		c.ImageFileExtensions = append([]string(nil), defaultExtensions...)
	}
	for i, e := range c.ImageFileExtensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		c.ImageFileExtensions[i] = e
	}

	if c.OriginalsDirectory != "" {
		fi, err := os.Stat(c.OriginalsDirectory)
		if err != nil {
			return fmt.Errorf(
				"Error calling os.Stat on OriginalsDirectory [%s]: %s",
				c.OriginalsDirectory, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf(
				"OriginalsDirectory [%s] is not a directory", c.OriginalsDirectory)
		}

		propsPath := filepath.Join(c.OriginalsDirectory, propertiesFile)
		_, err = os.Stat(propsPath)
		if err == nil {
			_, err = toml.DecodeFile(propsPath, &props)
			if err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("Unexpected error %s when opening [%s]", err, propsPath)
		}
	}

	if c.OutputDir == "" {
		c.OutputDir = os.TempDir()
	}

	fi, err := os.Stat(c.OutputDir)
	if err == nil && !fi.IsDir() {
		return fmt.Errorf("OutputDir [%s] is a regular file", c.OutputDir)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(
			"Error calling os.Stat on OutputDir [%s]: %s", c.OutputDir, err)
	}

	if c.OutputFile == "" {
		c.OutputFile = "composite_wallpaper.jpg"
	}
	if _, err = composite.FormatFromFilename(c.OutputFile); err != nil {
		return err
	}

	return nil
}
