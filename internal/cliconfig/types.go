package cliconfig

import (
	"fmt"

	"github.com/getmockd/hartool/pkg/logging"
)

// Settings holds the runtime options that do not come from the filter
// configuration file.
type Settings struct {
	LogLevel  string
	LogFormat string
	// Color is one of ColorAuto, ColorAlways or ColorNever.
	Color string

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string
}

// Setting names used as keys of Settings.Sources.
const (
	KeyLogLevel  = "logLevel"
	KeyLogFormat = "logFormat"
	KeyColor     = "color"
)

// Setting sources.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultColor     = ColorAuto
)

// NewDefault creates Settings holding the default values.
func NewDefault() *Settings {
	return &Settings{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Color:     DefaultColor,
		Sources: map[string]string{
			KeyLogLevel:  SourceDefault,
			KeyLogFormat: SourceDefault,
			KeyColor:     SourceDefault,
		},
	}
}

// Set overrides one setting and records its source. Unknown keys are
// ignored.
func (s *Settings) Set(key, value, source string) {
	if s.Sources == nil {
		s.Sources = make(map[string]string)
	}
	switch key {
	case KeyLogLevel:
		s.LogLevel = value
	case KeyLogFormat:
		s.LogFormat = value
	case KeyColor:
		s.Color = value
	default:
		return
	}
	s.Sources[key] = source
}

// Validate checks every setting and names the source of a bad value.
func (s *Settings) Validate() error {
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w (from %s)", err, s.source(KeyLogLevel))
	}
	if _, err := logging.ParseFormat(s.LogFormat); err != nil {
		return fmt.Errorf("%w (from %s)", err, s.source(KeyLogFormat))
	}
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never) (from %s)", s.Color, s.source(KeyColor))
	}
	return nil
}

func (s *Settings) source(key string) string {
	if src, ok := s.Sources[key]; ok {
		return src
	}
	return SourceDefault
}
