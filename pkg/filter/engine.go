package filter

import (
	"fmt"
	"log/slog"

	"github.com/getmockd/hartool/pkg/har"
	"github.com/getmockd/hartool/pkg/logging"
)

// Decision is the outcome for one entry.
type Decision struct {
	Index  int
	URL    string
	Keep   bool
	Mode   Mode
	Reason string
	// Rule is set when a rule matched the entry.
	Rule *Match
}

// Engine applies filter configurations to HAR documents. It holds no
// per-call state and may be shared between goroutines.
type Engine struct {
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-entry debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CountEntries returns the number of entries in doc.
func (e *Engine) CountEntries(doc *har.Document) int {
	if doc == nil {
		return 0
	}
	return doc.Len()
}

// Filter returns a new document holding the entries cfg keeps, in their
// original order. doc is not modified. A nil cfg keeps everything. A nil doc
// is treated as empty: the rules are still checked and the result is nil.
func (e *Engine) Filter(doc *har.Document, cfg *Config) (*har.Document, error) {
	decisions, err := e.Evaluate(doc, cfg)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	entries := doc.Entries()
	kept := make([]har.Entry, 0, len(entries))
	for _, d := range decisions {
		if d.Keep {
			kept = append(kept, entries[d.Index])
		}
	}

	e.logger.Debug("filtered HAR entries",
		"mode", cfg.Mode(),
		"originalEntries", len(entries),
		"keptEntries", len(kept),
		"removedEntries", len(entries)-len(kept))

	return doc.WithEntries(kept), nil
}

// Evaluate decides every entry of doc without building a new document. All
// patterns of the active rule set are compiled first, so an invalid pattern
// fails the call before any entry is looked at. A nil doc yields no decisions.
func (e *Engine) Evaluate(doc *har.Document, cfg *Config) ([]Decision, error) {
	mode := cfg.Mode()

	var rules *CompiledRuleSet
	switch mode {
	case ModeInclude:
		cs, err := cfg.Include.Compile()
		if err != nil {
			return nil, fmt.Errorf("compiling include rules: %w", err)
		}
		rules = cs
	case ModeIgnore:
		cs, err := cfg.Ignore.Compile()
		if err != nil {
			return nil, fmt.Errorf("compiling ignore rules: %w", err)
		}
		rules = cs
	}

	var entries []har.Entry
	if doc != nil {
		entries = doc.Entries()
	}
	decisions := make([]Decision, len(entries))
	for i, entry := range entries {
		d := decide(mode, rules, entry.URL())
		d.Index = i
		decisions[i] = d
		if !d.Keep {
			e.logger.Debug("excluding entry", "index", i, "url", d.URL, "reason", d.Reason)
		}
	}
	return decisions, nil
}

func decide(mode Mode, rules *CompiledRuleSet, url string) Decision {
	d := Decision{URL: url, Mode: mode}
	switch mode {
	case ModeInclude:
		if m, ok := rules.Match(url); ok {
			d.Keep = true
			d.Rule = &m
			d.Reason = fmt.Sprintf("included by %s rule '%s'", m.Category, m.Pattern)
		} else {
			d.Reason = "no match in include rules"
		}
	case ModeIgnore:
		if m, ok := rules.Match(url); ok {
			d.Rule = &m
			d.Reason = fmt.Sprintf("ignored by %s rule '%s'", m.Category, m.Pattern)
		} else {
			d.Keep = true
			d.Reason = "no match in ignore rules"
		}
	default:
		d.Keep = true
		d.Reason = "no filter rules configured"
	}
	return d
}
