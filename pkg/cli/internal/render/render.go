// Package render formats HAR entries for the terminal.
package render

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/getmockd/hartool/pkg/cli/internal/output"
	"github.com/getmockd/hartool/pkg/har"
)

// Colorizer applies colors when the destination supports them.
type Colorizer interface {
	Colorize(s string, colors ...text.Color) string
	Status(status int) string
}

// MaxURLLength is the longest URL printed on a list line.
const MaxURLLength = 100

// MaxBarWidth is the width of a timing bar covering the whole request.
const MaxBarWidth = 40

const rule = "═══════════════════════════════════════════════════════════════"

var phaseLabels = map[string]string{
	"blocked": "Blocked",
	"dns":     "DNS Lookup",
	"connect": "Connect",
	"ssl":     "SSL/TLS",
	"send":    "Send",
	"wait":    "Wait (TTFB)",
	"receive": "Receive",
}

// TruncateURL shortens u to max bytes, ending in "...".
func TruncateURL(u string, max int) string {
	if len(u) <= max {
		return u
	}
	if max <= 3 {
		return u[:max]
	}
	return u[:max-3] + "..."
}

// ListLine formats one line of the requests listing. indexWidth is the
// number of digits of the largest index.
func ListLine(c Colorizer, index, indexWidth int, e har.Entry) string {
	return fmt.Sprintf("%s │ %s │ %s │ %8.2fms │ %s",
		c.Colorize(fmt.Sprintf("%*d", indexWidth, index), text.FgCyan),
		c.Colorize(fmt.Sprintf("%-6s", e.Method()), text.FgYellow),
		c.Status(e.Status()),
		e.Time(),
		TruncateURL(e.URL(), MaxURLLength))
}

// TimingBar draws a phase as a share of total, at least one and at most
// MaxBarWidth blocks. It is empty when total is not positive.
func TimingBar(phase, total float64) string {
	if total <= 0 {
		return ""
	}
	width := int(phase/total*MaxBarWidth + 0.5)
	width = max(1, min(width, MaxBarWidth))
	return strings.Repeat("█", width)
}

// FormatBody pretty-prints JSON bodies and returns anything else unchanged.
func FormatBody(body, mimeType string) string {
	if !strings.Contains(mimeType, "json") {
		return body
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

// IsTextual reports whether a MIME type is worth decoding for display.
func IsTextual(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/") || strings.Contains(mimeType, "json")
}

// DecodeBase64 decodes standard or unpadded base64.
func DecodeBase64(s string) ([]byte, bool) {
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, true
	}
	if b, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return b, true
	}
	return nil, false
}

// Options selects the optional parts of an entry view.
type Options struct {
	RequestBody  bool
	ResponseBody bool
}

// Entry writes the detail view of e: request, response and timings.
func Entry(w io.Writer, c Colorizer, e har.Entry, opts Options) {
	v := &view{w: w, c: c}
	v.request(e, opts.RequestBody)
	v.response(e, opts.ResponseBody)
	v.timings(e)
}

type view struct {
	w io.Writer
	c Colorizer
}

func (v *view) line(format string, a ...any) {
	_, _ = fmt.Fprintf(v.w, format+"\n", a...)
}

func (v *view) blank() {
	_, _ = io.WriteString(v.w, "\n")
}

func (v *view) section(title string, color text.Color) {
	v.line("%s", v.c.Colorize(rule, color, text.Bold))
	v.line("%s", v.c.Colorize(title, color, text.Bold))
	v.line("%s", v.c.Colorize(rule, color, text.Bold))
}

func (v *view) heading(title string) {
	v.line("%s", v.c.Colorize(title+":", text.FgWhite, text.Bold))
}

func (v *view) field(name, value string) {
	v.line("  %s %s", v.c.Colorize(name+":", text.FgHiBlack), value)
}

type pair struct{ name, value string }

func (v *view) pairs(title string, pairs []pair) {
	if len(pairs) == 0 {
		return
	}
	v.heading(title)
	for _, p := range pairs {
		v.field(p.name, p.value)
	}
	v.blank()
}

func (v *view) request(e har.Entry, showBody bool) {
	req := e.Request()
	v.section("REQUEST", text.FgCyan)
	v.line("%s %s", v.c.Colorize(e.Method(), text.FgYellow), e.URL())
	v.blank()

	v.pairs("Headers", headerPairs(req.Headers))
	v.pairs("Query Parameters", queryPairs(req.QueryString))
	v.pairs("Cookies", cookiePairs(req.Cookies))

	if showBody && req.PostData != nil {
		mimeType := req.PostData.MimeType
		if mimeType == "" {
			mimeType = "unknown"
		}
		v.heading("Request Body")
		v.field("Content-Type", mimeType)
		if req.PostData.Text != nil {
			v.blank()
			v.line("%s", FormatBody(*req.PostData.Text, mimeType))
		} else {
			for _, p := range req.PostData.Params {
				value := p.Value
				if p.FileName != "" {
					value = fmt.Sprintf("(file %s)", p.FileName)
				}
				v.field(p.Name, value)
			}
		}
		v.blank()
	}
}

func (v *view) response(e har.Entry, showBody bool) {
	resp := e.Response()
	v.section("RESPONSE", text.FgGreen)
	status := e.Status()
	statusLine := strings.TrimSpace(fmt.Sprintf("%d %s", status, resp.StatusText))
	if status >= 200 {
		statusLine = v.c.Colorize(statusLine, output.StatusColor(status))
	}
	v.line("%s", statusLine)
	v.blank()

	v.pairs("Headers", headerPairs(resp.Headers))

	content := resp.Content
	if content == nil {
		return
	}
	mimeType := "unknown"
	if content.MimeType != nil && *content.MimeType != "" {
		mimeType = *content.MimeType
	}
	v.heading("Content")
	v.field("Size", fmt.Sprintf("%d bytes", content.Size.Int()))
	v.field("MIME Type", mimeType)
	if content.Compression != nil {
		v.field("Compression", fmt.Sprintf("%d bytes saved", content.Compression.Int()))
	}
	v.blank()

	if !showBody || content.Text == nil {
		return
	}
	if mimeType == "unknown" {
		mimeType = "text/plain"
	}
	v.heading("Response Body")
	if content.Encoding == "base64" {
		v.line("%s", v.c.Colorize("(Base64 encoded content)", text.FgYellow))
		v.blank()
		if IsTextual(mimeType) {
			if decoded, ok := DecodeBase64(*content.Text); ok {
				v.line("%s", FormatBody(string(decoded), mimeType))
			}
		}
	} else {
		v.line("%s", FormatBody(*content.Text, mimeType))
	}
	v.blank()
}

func (v *view) timings(e har.Entry) {
	v.section("TIMINGS", text.FgMagenta)
	total := e.Time()
	v.line("%s %.2f ms", v.c.Colorize("Total:", text.FgWhite, text.Bold), total)
	v.blank()

	for _, p := range e.Timings().Phases() {
		v.line("  %-12s %8.2f ms  %s", phaseLabels[p.Key]+":", p.Duration,
			v.c.Colorize(TimingBar(p.Duration, total), text.FgCyan))
	}
}

func headerPairs(headers []har.Header) []pair {
	out := make([]pair, len(headers))
	for i, h := range headers {
		out[i] = pair{h.Name, h.Value}
	}
	return out
}

func queryPairs(params []har.QueryParam) []pair {
	out := make([]pair, len(params))
	for i, q := range params {
		out[i] = pair{q.Name, q.Value}
	}
	return out
}

func cookiePairs(cookies []har.Cookie) []pair {
	out := make([]pair, len(cookies))
	for i, c := range cookies {
		out[i] = pair{c.Name, c.Value}
	}
	return out
}
