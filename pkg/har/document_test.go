package har

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHAR = `{
  "log": {
    "version": "1.2",
    "creator": {"name": "WebInspector", "version": "537.36"},
    "pages": [{"id": "page_1", "title": "https://a.com/"}],
    "entries": [
      {
        "startedDateTime": "2024-01-01T00:00:00.000Z",
        "time": 120.5,
        "_resourceType": "script",
        "request": {
          "method": "GET",
          "url": "http://a.com/x.js",
          "headers": [{"name": "Accept", "value": "*/*"}, {"name": "Accept", "value": "text/html"}]
        },
        "response": {
          "status": 200,
          "statusText": "OK",
          "headers": [{"name": "Content-Type", "value": "application/javascript"}],
          "content": {"size": 2048, "mimeType": "application/javascript"}
        },
        "timings": {"blocked": -1, "dns": 5, "connect": 10, "send": 1, "wait": 100, "receive": 4.5}
      },
      {
        "time": "33",
        "request": {"url": "http://a.com/y.json"},
        "response": {"status": "404", "headers": [{"name": "content-type", "value": "application/json"}], "content": {"size": "17"}}
      }
    ]
  },
  "x-extra": {"kept": true}
}`

func mustParse(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	return doc
}

func decodeAny(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestParse_Entries(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleHAR)
	require.Equal(t, 2, doc.Len())
	assert.Equal(t, "1.2", doc.Version())
	assert.Equal(t, Creator{Name: "WebInspector", Version: "537.36"}, doc.Creator())
	assert.Equal(t, 1, doc.PageCount())

	first, ok := doc.Entry(0)
	require.True(t, ok)
	assert.Equal(t, "http://a.com/x.js", first.URL())
	assert.Equal(t, "GET", first.Method())
	assert.Equal(t, 200, first.Status())
	assert.InDelta(t, 120.5, first.Time(), 0.0001)
	assert.Equal(t, "application/javascript", first.ContentType())
	assert.Equal(t, 2048, first.Size())
	assert.Equal(t, "2024-01-01T00:00:00.000Z", first.StartedDateTime())
	assert.Len(t, first.Request().Headers, 2, "duplicate headers are kept")

	_, ok = doc.Entry(2)
	assert.False(t, ok)
	_, ok = doc.Entry(-1)
	assert.False(t, ok)
}

func TestEntry_Defaults(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"log": {"entries": [{}]}}`)
	e, ok := doc.Entry(0)
	require.True(t, ok)

	assert.Equal(t, "", e.URL())
	assert.Equal(t, DefaultMethod, e.Method())
	assert.Equal(t, 0, e.Status())
	assert.Equal(t, 0.0, e.Time())
	assert.Equal(t, "", e.ContentType())
	assert.Equal(t, 0, e.Size())
	assert.NotNil(t, e.Request())
	assert.NotNil(t, e.Response())
	assert.Nil(t, e.Timings())
}

func TestEntry_QuotedNumbers(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleHAR)
	e, _ := doc.Entry(1)

	assert.Equal(t, 404, e.Status())
	assert.Equal(t, 17, e.Size())
	assert.InDelta(t, 33.0, e.Time(), 0.0001)
	assert.Equal(t, "application/json", e.ContentType(), "header name comparison ignores case")
}

func TestParse_NullFields(t *testing.T) {
	t.Parallel()

	t.Run("null method", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"log":{"entries":[{"request":{"method":null,"url":"http://a.com/x"}}]}}`)
		e, _ := doc.Entry(0)
		assert.Equal(t, DefaultMethod, e.Method())
		assert.Equal(t, "http://a.com/x", e.URL())
	})

	t.Run("null url", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"log":{"entries":[{"request":{"method":"POST","url":null}}]}}`)
		e, _ := doc.Entry(0)
		assert.Equal(t, "POST", e.Method())
		assert.Equal(t, "", e.URL())
	})

	t.Run("null header value", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"log":{"entries":[{"request":{"url":"http://a.com/","headers":[{"name":"X-Empty","value":null}]}}]}}`)
		e, _ := doc.Entry(0)
		require.Len(t, e.Request().Headers, 1)
		assert.Equal(t, "X-Empty", e.Request().Headers[0].Name)
		assert.Equal(t, "", e.Request().Headers[0].Value)
	})

	t.Run("quoted and null timings", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"log":{"entries":[{"request":{"url":"http://a.com/"},"timings":{"wait":"12","dns":null}}]}}`)
		e, _ := doc.Entry(0)
		phases := e.Timings().Phases()
		require.Len(t, phases, 1)
		assert.Equal(t, "wait", phases[0].Key)
		assert.InDelta(t, 12.0, phases[0].Duration, 0.0001)
	})
}

func TestTimings_Phases(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleHAR)
	e, _ := doc.Entry(0)

	phases := e.Timings().Phases()
	keys := make([]string, 0, len(phases))
	for _, p := range phases {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"dns", "connect", "send", "wait", "receive"}, keys, "negative and missing phases are skipped")
	assert.Nil(t, (*Timings)(nil).Phases())
}

func TestEntry_Query(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleHAR)
	e, _ := doc.Entry(0)

	got, err := e.Query("$.request.headers[*].value")
	require.NoError(t, err)
	assert.Equal(t, []any{"*/*", "text/html"}, got)

	got, err = e.Query("$._resourceType")
	require.NoError(t, err)
	assert.Equal(t, []any{"script"}, got)

	_, err = e.Query("$[?(@.x ==")
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		kind     error
		contains string
	}{
		{name: "malformed json", data: "{\n  \"log\": {,\n}", kind: ErrParse, contains: "line 2"},
		{name: "empty input", data: "", kind: ErrParse},
		{name: "array at top level", data: `[]`, kind: ErrInvalidFormat, contains: "must be an object"},
		{name: "missing log", data: `{"version": "1.2"}`, kind: ErrInvalidFormat, contains: "missing 'log' property"},
		{name: "null log", data: `{"log": null}`, kind: ErrInvalidFormat, contains: "missing 'log' property"},
		{name: "entries not array", data: `{"log": {"entries": {}}}`, kind: ErrInvalidFormat, contains: "/log/entries"},
		{name: "url not string", data: `{"log": {"entries": [{"request": {"url": 5}}]}}`, kind: ErrInvalidFormat, contains: "/log/entries/0/request/url"},
		{name: "header value not string", data: `{"log": {"entries": [{"response": {"headers": [{"name": "a", "value": 1}]}}]}}`, kind: ErrInvalidFormat, contains: "/log/entries/0/response/headers/0/value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var herr *Error
			require.True(t, errors.As(err, &herr))
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("not found carries path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "missing.har")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("parse error carries path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "broken.har")
		require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
		_, err := Load(path)
		require.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "ok.har")
		require.NoError(t, os.WriteFile(path, []byte(sampleHAR), 0o600))
		doc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Len())
	})
}

func TestJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleHAR)

	for _, pretty := range []bool{false, true} {
		out, err := doc.JSON(pretty)
		require.NoError(t, err)
		assert.Equal(t, decodeAny(t, []byte(sampleHAR)), decodeAny(t, out))

		again, err := Parse(out)
		require.NoError(t, err)
		out2, err := again.JSON(pretty)
		require.NoError(t, err)
		assert.Equal(t, string(out), string(out2))
	}
}

func TestJSON_Formatting(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"log": {"entries": [{"request": {"url": "https://a.com/p?a=1&b=<2>"}}]}}`)

	compact, err := doc.JSON(false)
	require.NoError(t, err)
	assert.Equal(t, `{"log":{"entries":[{"request":{"url":"https://a.com/p?a=1&b=<2>"}}]}}`, string(compact))

	pretty, err := doc.JSON(true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"log\": {")
	assert.NotContains(t, string(pretty), `\u0026`)
	assert.NotEqual(t, byte('\n'), pretty[len(pretty)-1])
}

func TestJSON_AddsEntriesWhenAbsent(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"log": {"version": "1.2"}}`)
	assert.Equal(t, 0, doc.Len())

	out, err := doc.JSON(false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"log": {"version": "1.2", "entries": []}}`, string(out))
}

func TestWithEntries_DoesNotMutate(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, sampleHAR)
	entries := doc.Entries()

	filtered := doc.WithEntries(entries[1:])
	assert.Equal(t, 2, doc.Len())
	require.Equal(t, 1, filtered.Len())

	e, _ := filtered.Entry(0)
	assert.Equal(t, "http://a.com/y.json", e.URL())
	assert.Equal(t, doc.Version(), filtered.Version())

	raw, ok := filtered.LogField("pages")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id": "page_1", "title": "https://a.com/"}]`, string(raw))

	entries[0] = Entry{}
	first, _ := doc.Entry(0)
	assert.Equal(t, "http://a.com/x.js", first.URL(), "Entries returns a copy")
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{`12`, 12},
		{`12.5`, 12.5},
		{`"42"`, 42},
		{`" 7 "`, 7},
		{`"abc"`, 0},
		{`null`, 0},
		{`true`, 1},
		{`false`, 0},
	}
	for _, tt := range tests {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(tt.in), &n), tt.in)
		assert.InDelta(t, tt.want, n.Float(), 0.0001, tt.in)
	}

	var n Number
	assert.Error(t, json.Unmarshal([]byte(`{}`), &n))
}
