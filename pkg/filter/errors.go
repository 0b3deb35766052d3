package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidPattern matches every *PatternError with errors.Is.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternError reports a rule that could not be compiled.
type PatternError struct {
	// Pattern is the rule text as written in the configuration.
	Pattern string
	// Category is set when the pattern came from a RuleSet.
	Category Category
	Cause    error
}

func (e *PatternError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("invalid %s pattern %q: %v", e.Category, e.Pattern, e.Cause)
	}
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Cause)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrInvalidPattern, e.Cause}
}
