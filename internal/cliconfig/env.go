package cliconfig

import (
	"os"
	"strings"
)

// Environment variable names
const (
	EnvFilter    = "HARTOOL_FILTER"
	EnvLogLevel  = "HARTOOL_LOG_LEVEL"
	EnvLogFormat = "HARTOOL_LOG_FORMAT"
	EnvColor     = "HARTOOL_COLOR"
	EnvNoColor   = "NO_COLOR"
	EnvForce     = "FORCE_COLOR"
)

// LoadEnv applies environment overrides to s. Only variables that are set
// and non-empty take effect. NO_COLOR and FORCE_COLOR follow the usual
// conventions and win over HARTOOL_COLOR, with NO_COLOR checked last.
func LoadEnv(s *Settings) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.Set(KeyLogLevel, v, SourceEnv)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		s.Set(KeyLogFormat, v, SourceEnv)
	}
	if v := os.Getenv(EnvColor); v != "" {
		s.Set(KeyColor, strings.ToLower(v), SourceEnv)
	}
	if v := os.Getenv(EnvForce); v != "" && v != "0" && v != "false" {
		s.Set(KeyColor, ColorAlways, SourceEnv)
	}
	if os.Getenv(EnvNoColor) != "" {
		s.Set(KeyColor, ColorNever, SourceEnv)
	}
}
