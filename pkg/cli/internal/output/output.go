// Package output holds the terminal plumbing shared by hartool commands:
// color decisions, JSON and table writers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// ColorMode decides whether ANSI colors are written.
type ColorMode int

const (
	ColorAuto ColorMode = iota // auto-detect based on TTY
	ColorAlways
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Printer writes command output. Out carries results, Err carries notices.
type Printer struct {
	Out    io.Writer
	Err    io.Writer
	colors bool
}

// New creates a Printer. In ColorAuto mode colors are enabled only when out
// is a terminal.
func New(out, errOut io.Writer, mode ColorMode) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	colors := false
	switch mode {
	case ColorAlways:
		colors = true
	case ColorAuto:
		colors = IsTerminal(out)
	}
	return &Printer{Out: out, Err: errOut, colors: colors}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or 0 when w is not a terminal.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// ColorsEnabled reports whether the printer emits ANSI escapes.
func (p *Printer) ColorsEnabled() bool {
	return p.colors
}

// Colorize wraps s in the given colors when colors are enabled.
func (p *Printer) Colorize(s string, colors ...text.Color) string {
	if !p.colors || len(colors) == 0 {
		return s
	}
	return text.Colors(colors).Sprint(s)
}

// StatusColor returns the color for an HTTP status code.
func StatusColor(status int) text.Color {
	switch {
	case status >= 200 && status < 300:
		return text.FgGreen
	case status >= 300 && status < 400:
		return text.FgBlue
	case status >= 400 && status < 500:
		return text.FgYellow
	case status >= 500:
		return text.FgRed
	default:
		return text.FgWhite
	}
}

// Status returns the status code right-aligned to three columns and colored
// by class.
func (p *Printer) Status(status int) string {
	s := fmt.Sprintf("%3d", status)
	if status < 200 {
		return s
	}
	return p.Colorize(s, StatusColor(status))
}

// Println writes a line to Out.
func (p *Printer) Println(a ...any) {
	_, _ = fmt.Fprintln(p.Out, a...)
}

// Printf writes formatted text to Out.
func (p *Printer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(p.Out, format, a...)
}

// Notice writes a line to Err.
func (p *Printer) Notice(format string, a ...any) {
	_, _ = fmt.Fprintf(p.Err, format+"\n", a...)
}

// JSON writes v to Out as two-space indented JSON without HTML escaping.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table creates a table writer mirrored to Out. Unicode borders are used
// when colors are enabled, plain ASCII otherwise.
func (p *Printer) Table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.Out)
	if p.colors {
		t.SetStyle(StyleLight())
	} else {
		t.SetStyle(StyleSimple())
	}
	if w := Width(p.Out); w > 0 {
		t.SetAllowedRowLength(w)
	}
	return t
}
