package filter

import (
	"errors"
	"net/url"
	"path"
	"strings"
)

// Category names the part of a URL a rule looks at.
type Category string

const (
	CategoryDomains    Category = "domains"
	CategoryPaths      Category = "paths"
	CategoryExtensions Category = "extensions"
	CategoryURLs       Category = "urls"
)

// Categories returns every category in evaluation order.
func Categories() []Category {
	return []Category{CategoryDomains, CategoryPaths, CategoryExtensions, CategoryURLs}
}

// RuleSet is one include or ignore block of a filter configuration.
type RuleSet struct {
	Domains    []string `yaml:"domains,omitempty" json:"domains,omitempty"`
	Paths      []string `yaml:"paths,omitempty" json:"paths,omitempty"`
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	URLs       []string `yaml:"urls,omitempty" json:"urls,omitempty"`
}

// Patterns returns the patterns of category c.
func (r *RuleSet) Patterns(c Category) []string {
	if r == nil {
		return nil
	}
	switch c {
	case CategoryDomains:
		return r.Domains
	case CategoryPaths:
		return r.Paths
	case CategoryExtensions:
		return r.Extensions
	case CategoryURLs:
		return r.URLs
	}
	return nil
}

// IsEmpty reports whether no category holds a pattern. A nil RuleSet is empty.
func (r *RuleSet) IsEmpty() bool {
	return r.Len() == 0
}

// Len returns the total number of patterns across categories.
func (r *RuleSet) Len() int {
	n := 0
	for _, c := range Categories() {
		n += len(r.Patterns(c))
	}
	return n
}

// Compile compiles every pattern. The first failure is returned as a
// *PatternError naming its category.
func (r *RuleSet) Compile() (*CompiledRuleSet, error) {
	cs := &CompiledRuleSet{}
	for _, c := range []Category{CategoryDomains, CategoryPaths, CategoryURLs} {
		for _, raw := range r.Patterns(c) {
			p, err := Compile(raw)
			if err != nil {
				var perr *PatternError
				if errors.As(err, &perr) {
					perr.Category = c
				}
				return nil, err
			}
			switch c {
			case CategoryDomains:
				cs.domains = append(cs.domains, p)
			case CategoryPaths:
				cs.paths = append(cs.paths, p)
			case CategoryURLs:
				cs.urls = append(cs.urls, p)
			}
		}
	}
	for _, ext := range r.Patterns(CategoryExtensions) {
		cs.extensions = append(cs.extensions, normalizeExtension(ext))
	}
	return cs, nil
}

// Match identifies the rule that matched an entry.
type Match struct {
	Category Category
	Pattern  string
}

// CompiledRuleSet is a RuleSet ready for matching. It is immutable.
type CompiledRuleSet struct {
	domains    []*Pattern
	paths      []*Pattern
	extensions []string
	urls       []*Pattern
}

// Match reports the first rule matching rawURL. Categories are tried in the
// order of Categories.
func (cs *CompiledRuleSet) Match(rawURL string) (Match, bool) {
	host, urlPath := splitURL(rawURL)

	for _, p := range cs.domains {
		if p.Match(host) {
			return Match{Category: CategoryDomains, Pattern: p.String()}, true
		}
	}

	if len(cs.paths) > 0 {
		subject := urlPath
		if subject == "" {
			subject = "/"
		}
		for _, p := range cs.paths {
			if p.Match(subject) {
				return Match{Category: CategoryPaths, Pattern: p.String()}, true
			}
		}
	}

	if len(cs.extensions) > 0 {
		ext := strings.ToLower(Extension(urlPath))
		for _, want := range cs.extensions {
			if ext == want {
				return Match{Category: CategoryExtensions, Pattern: want}, true
			}
		}
	}

	for _, p := range cs.urls {
		if p.Match(rawURL) {
			return Match{Category: CategoryURLs, Pattern: p.String()}, true
		}
	}
	return Match{}, false
}

// splitURL returns the host and the path of rawURL as written, neither
// decoded nor re-escaped. Unparseable URLs yield empty strings.
func splitURL(rawURL string) (host, urlPath string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	// RawPath is only kept when it differs from the escaped form of Path.
	if u.RawPath != "" {
		return u.Hostname(), u.RawPath
	}
	return u.Hostname(), u.EscapedPath()
}

// Extension returns the text after the last "." of the final path segment,
// or "" when there is none. Trailing slashes are ignored.
func Extension(urlPath string) string {
	if urlPath == "" {
		return ""
	}
	base := path.Base(urlPath)
	if base == "/" || base == "." {
		return ""
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimLeft(ext, "."))
}

// Check compiles every pattern and returns all failures as *PatternError
// values, in category order.
func (r *RuleSet) Check() []*PatternError {
	var errs []*PatternError
	for _, c := range []Category{CategoryDomains, CategoryPaths, CategoryURLs} {
		for _, raw := range r.Patterns(c) {
			if _, err := Compile(raw); err != nil {
				var perr *PatternError
				if errors.As(err, &perr) {
					perr.Category = c
					errs = append(errs, perr)
				}
			}
		}
	}
	return errs
}
