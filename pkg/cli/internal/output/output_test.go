package output

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "ALWAYS": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestNew_ColorDetection(t *testing.T) {
	t.Parallel()

	assert.False(t, New(&bytes.Buffer{}, nil, ColorAuto).ColorsEnabled(), "buffers are not terminals")
	assert.True(t, New(&bytes.Buffer{}, nil, ColorAlways).ColorsEnabled())
	assert.False(t, New(&bytes.Buffer{}, nil, ColorNever).ColorsEnabled())
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.Zero(t, Width(&bytes.Buffer{}))
}

func TestStatusColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, text.FgGreen, StatusColor(204))
	assert.Equal(t, text.FgBlue, StatusColor(301))
	assert.Equal(t, text.FgYellow, StatusColor(404))
	assert.Equal(t, text.FgRed, StatusColor(503))
	assert.Equal(t, text.FgWhite, StatusColor(0))
}

func TestPrinter_Status(t *testing.T) {
	t.Parallel()

	p := New(&bytes.Buffer{}, nil, ColorNever)
	assert.Equal(t, "200", p.Status(200))
	assert.Equal(t, "  0", p.Status(0))

	c := New(&bytes.Buffer{}, nil, ColorAlways)
	assert.Equal(t, text.FgRed.Sprint("500"), c.Status(500))
	assert.Equal(t, "  0", c.Status(0))
}

func TestPrinter_JSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(&out, nil, ColorNever)
	require.NoError(t, p.JSON(map[string]any{"url": "https://a.com/?a=1&b=2"}))
	assert.Equal(t, "{\n  \"url\": \"https://a.com/?a=1&b=2\"\n}\n", out.String())
}

func TestPrinter_Notice(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	p := New(&out, &errOut, ColorNever)
	p.Notice("Filtered: %d -> %d", 3, 1)
	p.Println("hello")

	assert.Equal(t, "Filtered: 3 -> 1\n", errOut.String())
	assert.Equal(t, "hello\n", out.String())
}

func TestPrinter_Table(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	tw := New(&out, nil, ColorNever).Table()
	tw.AppendHeader(table.Row{"File", "Kept"})
	tw.AppendRow(table.Row{"a.har", 3})
	tw.Render()

	assert.Contains(t, out.String(), "FILE")
	assert.Contains(t, out.String(), "a.har")
	assert.Contains(t, out.String(), "+")

	out.Reset()
	tw = New(&out, nil, ColorAlways).Table()
	tw.AppendRow(table.Row{"x"})
	tw.Render()
	assert.Contains(t, out.String(), "┌")
}
