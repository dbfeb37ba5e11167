package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

// setupLogging configures the standard logrus logger. The auto format uses
// coloured text on a terminal and JSON otherwise.
func setupLogging(w io.Writer, level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if w == nil {
		w = os.Stderr
	}
	log.SetOutput(w)
	log.SetLevel(lvl)

	switch format {
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "auto", "":
		if isTerminal(w) {
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		} else {
			log.SetFormatter(&log.JSONFormatter{})
		}
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
