// Package charmlog provides an implementation of daynight.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/teteukt/daynight"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

func NewLogger(opts Options) daynight.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	})
}
