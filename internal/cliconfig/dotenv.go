package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/subosito/gotenv"
)

// DotEnvFileName is read from the working directory at startup.
const DotEnvFileName = ".env.local"

// LoadDotEnv applies KEY=VALUE lines from path to the process environment.
// Variables that are already set, even to "", are left alone. A missing file
// is not an error. It returns the keys it set, sorted.
//
// A malformed line stops parsing; the pairs read before it are still applied
// and the format error is returned.
func LoadDotEnv(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	env, parseErr := gotenv.StrictParse(f)

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var applied []string
	for _, key := range keys {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, env[key]); err != nil {
			return applied, fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
		applied = append(applied, key)
	}
	if parseErr != nil {
		return applied, fmt.Errorf("reading %s: %w", path, parseErr)
	}
	return applied, nil
}
