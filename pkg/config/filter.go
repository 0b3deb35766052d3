package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/hartool/pkg/filter"
)

// File is the on-disk layout of a configuration file. Keys other than
// filters are ignored.
type File struct {
	Filters *filter.Config `yaml:"filters"`
}

// LoadFilterConfig reads the configuration file at path and returns its
// filters block. Patterns are not compiled; call Validate on the result to
// check them.
func LoadFilterConfig(path string) (*filter.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Kind: ErrNotFound, Path: path}
		}
		return nil, &Error{Kind: ErrRead, Path: path, Cause: err}
	}
	cfg, err := ParseFilterConfig(data)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// ParseFilterConfig decodes configuration bytes. An empty document or one
// without a filters block yields an empty, non-nil Config.
func ParseFilterConfig(data []byte) (*filter.Config, error) {
	var f File
	if err := yaml.Unmarshal([]byte(ExpandEnvVars(string(data))), &f); err != nil {
		return nil, &Error{Kind: ErrParse, Cause: err}
	}
	if f.Filters == nil {
		return &filter.Config{}, nil
	}
	return f.Filters, nil
}
