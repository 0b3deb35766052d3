package config

import (
	"errors"
	"strings"
)

// Sentinel kinds for configuration errors. Match them with errors.Is.
var (
	ErrNotFound = errors.New("configuration file not found")
	ErrRead     = errors.New("failed to read configuration file")
	ErrParse    = errors.New("invalid configuration")
)

// Error describes a configuration file that could not be loaded.
type Error struct {
	Kind  error
	Path  string
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
