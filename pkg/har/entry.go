package har

import (
	"encoding/json"
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// DefaultMethod is reported for entries without a request method.
const DefaultMethod = "GET"

// Entry is one request/response exchange. The raw JSON is kept verbatim and
// re-emitted on serialization; the accessors read from a decoded view.
type Entry struct {
	raw  json.RawMessage
	view entryView
}

type entryView struct {
	StartedDateTime string    `json:"startedDateTime"`
	Time            Number    `json:"time"`
	Request         *Request  `json:"request"`
	Response        *Response `json:"response"`
	Timings         *Timings  `json:"timings"`
}

// NewEntry decodes raw as a HAR entry.
func NewEntry(raw json.RawMessage) (Entry, error) {
	var v entryView
	if err := json.Unmarshal(raw, &v); err != nil {
		return Entry{}, err
	}
	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return Entry{raw: cp, view: v}, nil
}

// MarshalJSON returns the entry exactly as it was read.
func (e Entry) MarshalJSON() ([]byte, error) {
	if len(e.raw) == 0 {
		return []byte("{}"), nil
	}
	return e.raw, nil
}

// Raw returns a copy of the entry's JSON.
func (e Entry) Raw() json.RawMessage {
	cp := make(json.RawMessage, len(e.raw))
	copy(cp, e.raw)
	return cp
}

// URL returns request.url, or "" when missing.
func (e Entry) URL() string {
	if e.view.Request == nil {
		return ""
	}
	return e.view.Request.URL
}

// Method returns request.method, defaulting to GET.
func (e Entry) Method() string {
	if e.view.Request == nil || e.view.Request.Method == "" {
		return DefaultMethod
	}
	return e.view.Request.Method
}

// Status returns response.status, or 0 when missing.
func (e Entry) Status() int {
	if e.view.Response == nil {
		return 0
	}
	return e.view.Response.Status.Int()
}

// Time returns the total elapsed time in milliseconds.
func (e Entry) Time() float64 {
	return e.view.Time.Float()
}

// ContentType returns the first Content-Type response header value.
func (e Entry) ContentType() string {
	if e.view.Response == nil {
		return ""
	}
	v, _ := HeaderValue(e.view.Response.Headers, "content-type")
	return v
}

// Size returns response.content.size, or 0 when missing.
func (e Entry) Size() int {
	if e.view.Response == nil || e.view.Response.Content == nil {
		return 0
	}
	return e.view.Response.Content.Size.Int()
}

// StartedDateTime returns the entry's start timestamp as recorded.
func (e Entry) StartedDateTime() string {
	return e.view.StartedDateTime
}

// Request returns the request view. It is never nil.
func (e Entry) Request() *Request {
	if e.view.Request == nil {
		return &Request{}
	}
	return e.view.Request
}

// Response returns the response view. It is never nil.
func (e Entry) Response() *Response {
	if e.view.Response == nil {
		return &Response{}
	}
	return e.view.Response
}

// Timings returns the timing breakdown, or nil when the entry has none.
func (e Entry) Timings() *Timings {
	return e.view.Timings
}

// Query evaluates a JSONPath expression against the raw entry and returns
// every matched value.
//
//	e.Query("$.response.headers[?(@.name == 'server')].value")
func (e Entry) Query(expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", expr, err)
	}
	data, err := oj.Parse(e.raw)
	if err != nil {
		return nil, fmt.Errorf("decoding entry: %w", err)
	}
	return x.Get(data), nil
}
