package filter

import (
	"regexp"
	"strings"
)

// GlobToRegexp translates a glob into regular expression source. "**" becomes
// ".*", "*" becomes "[^/]*" and "?" becomes "[^/]"; regexp metacharacters are
// escaped and everything else is literal. The result carries no flags and no
// anchors.
func GlobToRegexp(glob string) string {
	var b strings.Builder
	b.Grow(len(glob) * 2)
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '.', '(', ')', '{', '}', '[', ']', '^', '$', '+', '|', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// isSuffixGlob reports whether glob is leading stars followed by a literal
// that starts with "." and holds no "/", such as "*.json", "**.min.js" or
// "*.example.com". Those are anchored at the end of the subject; every other
// glob matches anywhere.
func isSuffixGlob(glob string) bool {
	if !strings.HasPrefix(glob, "*") {
		return false
	}
	rest := strings.TrimLeft(glob, "*")
	return strings.HasPrefix(rest, ".") && !strings.ContainsAny(rest, "*?/")
}

func compileGlob(glob string) (*regexp.Regexp, error) {
	expr := "(?i)" + GlobToRegexp(glob)
	if isSuffixGlob(glob) {
		expr += "$"
	}
	return regexp.Compile(expr)
}
