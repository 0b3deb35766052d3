package har

import (
	"errors"
	"strconv"
)

// Error kinds reported by Load and Parse.
var (
	ErrNotFound      = errors.New("HAR file not found")
	ErrRead          = errors.New("failed to read HAR file")
	ErrParse         = errors.New("malformed HAR JSON")
	ErrInvalidFormat = errors.New("invalid HAR file")
)

// Error describes why a HAR document could not be loaded.
type Error struct {
	// Kind is one of ErrNotFound, ErrRead, ErrParse or ErrInvalidFormat.
	Kind error
	// Path is the file the document was read from, empty for in-memory data.
	Path string
	// Location is the JSON pointer of the offending value for format errors.
	Location string
	Line     int
	Column   int
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Path != "" {
		msg += " (" + e.Path
		if e.Line > 0 {
			msg += ":" + strconv.Itoa(e.Line)
			if e.Column > 0 {
				msg += ":" + strconv.Itoa(e.Column)
			}
		}
		msg += ")"
	} else if e.Line > 0 {
		msg += " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// withPath returns a copy of err annotated with path when err is an *Error.
func withPath(err error, path string) error {
	var herr *Error
	if errors.As(err, &herr) {
		cp := *herr
		cp.Path = path
		return &cp
	}
	return err
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
