package changewallpaperlib

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger
var logFile *os.File

func init() {
	logger = zerolog.New(consoleWriter(os.Stderr)).With().Timestamp().Logger()
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

func setupLogging(c *Config) error {
	level := zerolog.InfoLevel
	if c.LogLevel != "" {
		l, err := zerolog.ParseLevel(c.LogLevel)
		if err != nil {
			return fmt.Errorf("Invalid LogLevel [%s]: %s", c.LogLevel, err)
		}
		level = l
	}

	var out io.Writer = consoleWriter(os.Stderr)
	if c.LogFile != "" {
		if err := closeLogFile(); err != nil {
			return err
		}

		f, err := os.OpenFile(c.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("Error opening log file [%s]: %s", c.LogFile, err)
		}
		logFile = f
		out = zerolog.MultiLevelWriter(consoleWriter(os.Stderr), f)
	}

	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
