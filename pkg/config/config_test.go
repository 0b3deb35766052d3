package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/hartool/pkg/filter"
)

func TestParseFilterConfig(t *testing.T) {
	t.Parallel()

	data := `
filters:
  include:
    domains: ["api.example.com"]
  ignore:
    paths: ["*.json"]
    extensions: [js, .CSS]
    urls:
      - '/^https:\/\/ads\./'
      - "#tracking#i"
server:
  port: 8080
`
	cfg, err := ParseFilterConfig([]byte(data))
	require.NoError(t, err)

	require.NotNil(t, cfg.Include)
	assert.Equal(t, []string{"api.example.com"}, cfg.Include.Domains)
	require.NotNil(t, cfg.Ignore)
	assert.Equal(t, []string{"*.json"}, cfg.Ignore.Paths)
	assert.Equal(t, []string{"js", ".CSS"}, cfg.Ignore.Extensions)
	assert.Equal(t, []string{`/^https:\/\/ads\./`, "#tracking#i"}, cfg.Ignore.URLs)
	assert.Equal(t, filter.ModeInclude, cfg.Mode())
	assert.NoError(t, cfg.Validate())
}

func TestParseFilterConfig_JSON(t *testing.T) {
	t.Parallel()

	cfg, err := ParseFilterConfig([]byte(`{"filters": {"ignore": {"domains": ["cdn.example.com"]}}}`))
	require.NoError(t, err)
	assert.Nil(t, cfg.Include)
	assert.Equal(t, []string{"cdn.example.com"}, cfg.Ignore.Domains)
	assert.Equal(t, filter.ModeIgnore, cfg.Mode())
}

func TestParseFilterConfig_Empty(t *testing.T) {
	t.Parallel()

	for _, data := range []string{"", "# nothing here\n", "other: true\n", "filters:\n"} {
		cfg, err := ParseFilterConfig([]byte(data))
		require.NoError(t, err, data)
		require.NotNil(t, cfg, data)
		assert.Equal(t, filter.ModeAll, cfg.Mode(), data)
	}
}

func TestParseFilterConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"tab indentation":  "filters:\n\tignore: {}\n",
		"scalar category":  "filters:\n  ignore:\n    domains: example.com\n",
		"map for rule set": "filters:\n  include: [a, b]\n",
		"unclosed flow":    "filters: {ignore: {domains: [x}\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseFilterConfig([]byte(data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseFilterConfig_EnvExpansion(t *testing.T) {
	t.Setenv("HARTOOL_TEST_DOMAIN", "tracker.example.com")

	data := `
filters:
  ignore:
    domains: ["${HARTOOL_TEST_DOMAIN}", "${HARTOOL_TEST_UNSET:-ads.example.com}"]
    urls: ['/\.js$/']
`
	cfg, err := ParseFilterConfig([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"tracker.example.com", "ads.example.com"}, cfg.Ignore.Domains)
	assert.Equal(t, []string{`/\.js$/`}, cfg.Ignore.URLs)
}

func TestLoadFilterConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "hartool.yaml")
		require.NoError(t, os.WriteFile(path, []byte("filters:\n  ignore:\n    extensions: [png]\n"), 0o644))

		cfg, err := LoadFilterConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"png"}, cfg.Ignore.Extensions)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "nope.yaml")
		_, err := LoadFilterConfig(path)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("invalid carries path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("filters: [\n"), 0o644))
		_, err := LoadFilterConfig(path)
		require.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("bad pattern loads but fails validation", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "pattern.yaml")
		require.NoError(t, os.WriteFile(path, []byte("filters:\n  ignore:\n    urls: ['/(x/']\n"), 0o644))
		cfg, err := LoadFilterConfig(path)
		require.NoError(t, err)
		assert.ErrorIs(t, cfg.Validate(), filter.ErrInvalidPattern)
	})
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("HARTOOL_TEST_A", "alpha")
	t.Setenv("HARTOOL_TEST_EMPTY", "")

	tests := []struct {
		in   string
		want string
	}{
		{"${HARTOOL_TEST_A}", "alpha"},
		{"x-${HARTOOL_TEST_A}-y", "x-alpha-y"},
		{"${HARTOOL_TEST_MISSING}", ""},
		{"${HARTOOL_TEST_MISSING:-fallback}", "fallback"},
		{"${HARTOOL_TEST_EMPTY:-fallback}", "fallback"},
		{"$HARTOOL_TEST_A", "$HARTOOL_TEST_A"},
		{"/^a$/", "/^a$/"},
		{"${1BAD}", "${1BAD}"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandEnvVars(tt.in), tt.in)
	}
}
