package logging

import (
	"io"
	"os"

	"github.com/go-logr/zerologr"
	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/rs/zerolog"
)

type Options struct {
	// Dir holds the rolling log files. No file logging when empty.
	Dir     string
	Debug   bool
	Console io.Writer
}

// Setup builds the application logger, writing to the console and a rolling file, and hands
// a logr bridge of it to the battle and dex packages.
func Setup(opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	writers := []io.Writer{zerolog.ConsoleWriter{Out: console}}
	if opts.Dir != "" {
		rolling, err := NewRollingFileWriter(opts.Dir, "showbot")
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: rolling, NoColor: true})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level)
	Bridge(logger, opts.Debug)

	return logger, nil
}

// Bridge installs logger as the internal logger of the core packages. Debug enables their
// V(1) output.
func Bridge(logger zerolog.Logger, debug bool) {
	zerologr.SetMaxV(0)
	if debug {
		zerologr.SetMaxV(2)
	}

	sink := zerologr.New(&logger)
	battle.SetInternalLogger(sink)
	dex.SetInternalLogger(sink)
}
