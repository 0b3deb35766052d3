package har

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a HAR numeric field. Some exporters write sizes and status codes
// as strings, so quoted numbers are accepted. Missing, null or non-numeric
// values read as zero.
type Number float64

// UnmarshalJSON accepts JSON numbers, numeric strings, booleans and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*n = 0
		return nil
	case bytes.Equal(data, []byte("true")):
		*n = 1
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Int truncates toward zero.
func (n Number) Int() int { return int(n) }

// Float returns the value as a float64.
func (n Number) Float() float64 { return float64(n) }

// Header is one name/value pair. Header lists keep their original order and
// duplicates.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// QueryParam is one parsed query string parameter.
type QueryParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cookie is a request or response cookie. Only the displayed fields are
// decoded; the rest stay in the raw entry.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Creator identifies the tool that produced a HAR log.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Request is the read-only view of an entry's request.
type Request struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	HTTPVersion string       `json:"httpVersion"`
	Headers     []Header     `json:"headers"`
	QueryString []QueryParam `json:"queryString"`
	Cookies     []Cookie     `json:"cookies"`
	PostData    *PostData    `json:"postData"`
	HeadersSize Number       `json:"headersSize"`
	BodySize    Number       `json:"bodySize"`
}

// PostData is the request body as recorded by the browser.
type PostData struct {
	MimeType string  `json:"mimeType"`
	Text     *string `json:"text"`
	Params   []Param `json:"params"`
}

// Param is a posted form parameter.
type Param struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// Response is the read-only view of an entry's response.
type Response struct {
	Status      Number   `json:"status"`
	StatusText  string   `json:"statusText"`
	HTTPVersion string   `json:"httpVersion"`
	Headers     []Header `json:"headers"`
	Cookies     []Cookie `json:"cookies"`
	Content     *Content `json:"content"`
	RedirectURL string   `json:"redirectURL"`
	HeadersSize Number   `json:"headersSize"`
	BodySize    Number   `json:"bodySize"`
}

// Content describes the response body.
type Content struct {
	Size        Number  `json:"size"`
	Compression *Number `json:"compression"`
	MimeType    *string `json:"mimeType"`
	Text        *string `json:"text"`
	Encoding    string  `json:"encoding"`
}

// Timings holds the phase durations in milliseconds. A nil phase was not
// recorded; -1 means the phase does not apply.
type Timings struct {
	Blocked *Number `json:"blocked"`
	DNS     *Number `json:"dns"`
	Connect *Number `json:"connect"`
	SSL     *Number `json:"ssl"`
	Send    *Number `json:"send"`
	Wait    *Number `json:"wait"`
	Receive *Number `json:"receive"`
}

// Phase is one applicable timing phase.
type Phase struct {
	Key      string
	Duration float64
}

// Phases returns the recorded, non-negative phases in connection order.
func (t *Timings) Phases() []Phase {
	if t == nil {
		return nil
	}
	all := []struct {
		key string
		v   *Number
	}{
		{"blocked", t.Blocked},
		{"dns", t.DNS},
		{"connect", t.Connect},
		{"ssl", t.SSL},
		{"send", t.Send},
		{"wait", t.Wait},
		{"receive", t.Receive},
	}
	phases := make([]Phase, 0, len(all))
	for _, p := range all {
		if p.v != nil && *p.v >= 0 {
			phases = append(phases, Phase{Key: p.key, Duration: p.v.Float()})
		}
	}
	return phases
}

// HeaderValue returns the value of the first header whose name matches
// case-insensitively.
func HeaderValue(headers []Header, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}
