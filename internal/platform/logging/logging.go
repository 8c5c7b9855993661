// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global logger. Development gets a human readable console
// writer on stderr; every other environment logs JSON to stdout.
func Init(env, level string) {
	InitWriter(env, level, nil)
}

// InitWriter is Init with an explicit destination, used by tests.
func InitWriter(env, level string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	if w == nil {
		w = os.Stdout
		if isDevelopment(env) {
			w = os.Stderr
		}
	}
	if isDevelopment(env) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Str("env", env).Logger()
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel maps a configured level name onto zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func isDevelopment(env string) bool {
	switch strings.ToLower(env) {
	case "development", "dev", "local":
		return true
	}
	return false
}
