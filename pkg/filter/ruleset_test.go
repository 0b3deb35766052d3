package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilSet *RuleSet
	assert.True(t, nilSet.IsEmpty())
	assert.True(t, (&RuleSet{}).IsEmpty())
	assert.True(t, (&RuleSet{Domains: []string{}}).IsEmpty())
	assert.False(t, (&RuleSet{URLs: []string{"x"}}).IsEmpty())
	assert.Equal(t, 3, (&RuleSet{Domains: []string{"a", "b"}, Extensions: []string{"js"}}).Len())
}

func TestCompiledRuleSet_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rules    RuleSet
		url      string
		want     bool
		category Category
	}{
		{
			name:     "domain glob",
			rules:    RuleSet{Domains: []string{"*.google-analytics.com"}},
			url:      "https://www.google-analytics.com/collect?v=1",
			want:     true,
			category: CategoryDomains,
		},
		{
			name:  "domain rule ignores the path",
			rules: RuleSet{Domains: []string{"analytics"}},
			url:   "https://example.com/analytics/x",
			want:  false,
		},
		{
			name:     "path glob",
			rules:    RuleSet{Paths: []string{"*.json"}},
			url:      "https://api.example.com/api/data.json",
			want:     true,
			category: CategoryPaths,
		},
		{
			name:  "path glob misses backup file",
			rules: RuleSet{Paths: []string{"*.json"}},
			url:   "https://api.example.com/api/data.json.bak",
			want:  false,
		},
		{
			name:     "path defaults to slash",
			rules:    RuleSet{Paths: []string{"/"}},
			url:      "https://example.com",
			want:     true,
			category: CategoryPaths,
		},
		{
			name:  "question mark never matches slash",
			rules: RuleSet{Paths: []string{"?"}},
			url:   "https://example.com",
			want:  false,
		},
		{
			name:     "extension case insensitive",
			rules:    RuleSet{Extensions: []string{"png", "JPG"}},
			url:      "https://img.example.com/a/photo.jpg",
			want:     true,
			category: CategoryExtensions,
		},
		{
			name:     "extension with leading dot",
			rules:    RuleSet{Extensions: []string{".PNG"}},
			url:      "https://img.example.com/logo.png?v=2",
			want:     true,
			category: CategoryExtensions,
		},
		{
			name:  "extension-less path",
			rules: RuleSet{Extensions: []string{"png", "JPG"}},
			url:   "https://img.example.com/photos",
			want:  false,
		},
		{
			name:  "extension only from last segment",
			rules: RuleSet{Extensions: []string{"d"}},
			url:   "https://example.com/conf.d/file",
			want:  false,
		},
		{
			name:     "empty extension matches extension-less paths",
			rules:    RuleSet{Extensions: []string{""}},
			url:      "https://example.com/api/users",
			want:     true,
			category: CategoryExtensions,
		},
		{
			name:     "url regex",
			rules:    RuleSet{URLs: []string{`/^https:\/\/ads\./`}},
			url:      "https://ads.example.com/x",
			want:     true,
			category: CategoryURLs,
		},
		{
			name:     "url glob sees query string",
			rules:    RuleSet{URLs: []string{"utm_source="}},
			url:      "https://example.com/?utm_source=mail",
			want:     true,
			category: CategoryURLs,
		},
		{
			name:  "unparseable url degrades",
			rules: RuleSet{Domains: []string{"example"}, Extensions: []string{"js"}},
			url:   "http://[::1",
			want:  false,
		},
		{
			name:     "first category wins",
			rules:    RuleSet{Domains: []string{"example.com"}, URLs: []string{"example"}},
			url:      "https://example.com/",
			want:     true,
			category: CategoryDomains,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cs, err := tt.rules.Compile()
			require.NoError(t, err)

			m, ok := cs.Match(tt.url)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.category, m.Category)
			}
		})
	}
}

func TestRuleSet_CompileError(t *testing.T) {
	t.Parallel()

	rs := RuleSet{Domains: []string{"ok.com"}, URLs: []string{"/(bad/"}}
	_, err := rs.Compile()
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, CategoryURLs, perr.Category)
	assert.Equal(t, "/(bad/", perr.Pattern)
	assert.Contains(t, err.Error(), "invalid urls pattern")
}

func TestExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                  "",
		"/":                 "",
		"/a/b":              "",
		"/a/b.js":           "js",
		"/a/b.min.js":       "js",
		"/a/b.JSON/":        "JSON",
		"/a.dir/b":          "",
		"/.hidden":          "hidden",
		"/trailing.":        "",
		"/x/archive.tar.gz": "gz",
	}
	for in, want := range tests {
		assert.Equal(t, want, Extension(in), in)
	}
}

func TestRuleSet_CheckReportsEveryFailure(t *testing.T) {
	t.Parallel()

	rs := &RuleSet{
		Domains:    []string{"ok.com", "/[/"},
		Paths:      []string{"api/**"},
		Extensions: []string{"/[/"},
		URLs:       []string{"#(#", "/x/q"},
	}
	errs := rs.Check()
	require.Len(t, errs, 3)
	assert.Equal(t, CategoryDomains, errs[0].Category)
	assert.Equal(t, CategoryURLs, errs[1].Category)
	assert.Equal(t, "#(#", errs[1].Pattern)
	assert.Contains(t, errs[2].Error(), "unknown modifier")

	assert.Empty(t, (*RuleSet)(nil).Check())
}

func TestSplitURL_KeepsPathAsWritten(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://x.com/a b/c":     "/a b/c",
		"https://x.com/a%20b/c":   "/a%20b/c",
		"https://x.com/caf%C3%A9": "/caf%C3%A9",
		"https://x.com":           "",
	}
	for in, want := range tests {
		host, path := splitURL(in)
		assert.Equal(t, "x.com", host, in)
		assert.Equal(t, want, path, in)
	}

	cs, err := (&RuleSet{Paths: []string{"a b/*"}}).Compile()
	require.NoError(t, err)
	m, ok := cs.Match("https://x.com/a b/c")
	require.True(t, ok)
	assert.Equal(t, CategoryPaths, m.Category)
}
