package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// New returns a console logger writing to w, configured for profile.
func New(w io.Writer, profile Profile) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	switch profile {
	case ProfileTest:
		output.NoColor = true
		output.PartsExclude = []string{zerolog.TimestampFieldName}
		return zerolog.New(output).Level(zerolog.DebugLevel).With().Str("app", "llfi-setup").Logger()
	default:
		return zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Str("app", "llfi-setup").Logger()
	}
}

// Nop returns a logger that drops everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
