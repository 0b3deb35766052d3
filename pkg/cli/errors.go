package cli

import (
	"errors"
	"fmt"
)

// ErrNoInputs is returned by batch when no file matches its patterns.
var ErrNoInputs = errors.New("no HAR files matched")

// IndexError reports a view index outside the filtered entry list.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("Entry index %d not found. HAR file has no entries", e.Index)
	}
	return fmt.Sprintf("Entry index %d not found. Valid range: 0-%d", e.Index, e.Count-1)
}
