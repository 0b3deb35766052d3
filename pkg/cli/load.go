package cli

import (
	"fmt"
	"os"

	"github.com/getmockd/hartool/internal/cliconfig"
	"github.com/getmockd/hartool/pkg/config"
	"github.com/getmockd/hartool/pkg/filter"
	"github.com/getmockd/hartool/pkg/har"
)

// loaded is a HAR file after the filter configuration has been applied.
type loaded struct {
	Path string
	// Original is the document as read; Doc holds the surviving entries.
	Original *har.Document
	Doc      *har.Document
	Config   *filter.Config
	// ConfigPath is empty when no configuration file was found.
	ConfigPath string
}

func workDirs() (cwd, baseDir string) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return cwd, cliconfig.BaseDir()
}

// loadFilterConfig finds and reads the filter configuration. It returns a
// nil config when discovery finds nothing.
func loadFilterConfig() (*filter.Config, string, error) {
	cwd, baseDir := workDirs()
	resolved, ok := cliconfig.Resolve(cliconfig.DefaultSources(configPath, cwd, baseDir)...)
	if !ok {
		logger.Debug("no filter configuration found")
		return nil, "", nil
	}
	cfg, err := config.LoadFilterConfig(resolved.Path)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("loaded filter configuration",
		"path", resolved.Path,
		"source", resolved.Name,
		"mode", cfg.Mode(),
		"includeRules", cfg.Include.Len(),
		"ignoreRules", cfg.Ignore.Len())
	return cfg, resolved.Path, nil
}

// loadDocument resolves path against the working directory and the
// executable's directory and parses it.
func loadDocument(path string) (*har.Document, error) {
	cwd, baseDir := workDirs()
	resolved := cliconfig.ResolvePath(path, cwd, baseDir)
	doc, err := har.Load(resolved)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded HAR file", "path", resolved, "entries", doc.Len())
	return doc, nil
}

// loadFiltered reads the filter configuration and the HAR file at path and
// applies one to the other.
func loadFiltered(path string) (*loaded, error) {
	cfg, cfgPath, err := loadFilterConfig()
	if err != nil {
		return nil, err
	}
	return loadFilteredWith(path, cfg, cfgPath)
}

func loadFilteredWith(path string, cfg *filter.Config, cfgPath string) (*loaded, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	out, err := newEngine().Filter(doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("filtering %s: %w", path, err)
	}
	return &loaded{Path: path, Original: doc, Doc: out, Config: cfg, ConfigPath: cfgPath}, nil
}

func newEngine() *filter.Engine {
	return filter.NewEngine(filter.WithLogger(logger))
}
