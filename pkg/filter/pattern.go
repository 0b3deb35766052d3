package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells how a pattern was interpreted.
type Kind int

const (
	KindGlob Kind = iota
	KindRegex
)

func (k Kind) String() string {
	if k == KindRegex {
		return "regex"
	}
	return "glob"
}

// regexDelimiters are the characters that may open a delimited regex.
const regexDelimiters = "/#~@%"

// IsRegex reports whether pattern is written as a delimited regular
// expression: it starts with one of / # ~ @ % and the same character occurs
// again later in the pattern.
func IsRegex(pattern string) bool {
	if len(pattern) < 2 {
		return false
	}
	delim := pattern[0]
	if strings.IndexByte(regexDelimiters, delim) < 0 {
		return false
	}
	return strings.LastIndexByte(pattern, delim) > 0
}

// Pattern is a compiled rule. It is immutable and safe for concurrent use.
type Pattern struct {
	raw  string
	kind Kind
	re   *regexp.Regexp
}

// Compile classifies pattern as a regex or a glob and compiles it.
func Compile(pattern string) (*Pattern, error) {
	if IsRegex(pattern) {
		re, err := compileDelimited(pattern)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Cause: err}
		}
		return &Pattern{raw: pattern, kind: KindRegex, re: re}, nil
	}
	re, err := compileGlob(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Cause: err}
	}
	return &Pattern{raw: pattern, kind: KindGlob, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the pattern matches anywhere in subject.
func (p *Pattern) Match(subject string) bool {
	return p.re.MatchString(subject)
}

// Kind returns how the pattern was interpreted.
func (p *Pattern) Kind() Kind { return p.kind }

// String returns the pattern as written.
func (p *Pattern) String() string { return p.raw }

// Expr returns the regular expression the pattern compiled to.
func (p *Pattern) Expr() string { return p.re.String() }

// compileDelimited compiles "/body/flags". The closing delimiter is the last
// occurrence of the opening one, so escaped delimiters inside the body are
// left to the regexp parser.
func compileDelimited(pattern string) (*regexp.Regexp, error) {
	delim := pattern[0]
	end := strings.LastIndexByte(pattern, delim)
	body := pattern[1:end]

	var flags strings.Builder
	anchored := false
	for _, m := range pattern[end+1:] {
		switch m {
		case 'i', 'm', 's', 'U':
			if !strings.ContainsRune(flags.String(), m) {
				flags.WriteRune(m)
			}
		case 'A':
			anchored = true
		case 'u', 'D', 'S', ' ', '\n', '\r', '\t':
			// UTF-8 and end-of-text anchoring are already the RE2 defaults.
		default:
			return nil, fmt.Errorf("unknown modifier %q", m)
		}
	}
	if anchored {
		body = `\A(?:` + body + ")"
	}
	if flags.Len() > 0 {
		body = "(?" + flags.String() + ")" + body
	}
	return regexp.Compile(body)
}
