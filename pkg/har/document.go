package har

import (
	"bytes"
	"encoding/json"
	"errors"
	"maps"
	"os"
	"slices"
	"strconv"
)

// Document is a parsed HAR file. Everything except log.entries is kept as raw
// JSON and written back unchanged.
type Document struct {
	root    map[string]json.RawMessage
	log     map[string]json.RawMessage
	entries []Entry
}

// Load reads and parses the HAR file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Kind: ErrNotFound, Path: path}
		}
		return nil, &Error{Kind: ErrRead, Path: path, Cause: err}
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, withPath(err, path)
	}
	return doc, nil
}

// Parse decodes a HAR document. The top level must be an object with a log
// object; entries must be objects.
func Parse(data []byte) (*Document, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, syntaxError(data, err)
	}
	top, ok := generic.(map[string]any)
	if !ok {
		return nil, &Error{Kind: ErrInvalidFormat, Message: "top-level value must be an object"}
	}
	if l, ok := top["log"].(map[string]any); !ok || l == nil {
		return nil, &Error{Kind: ErrInvalidFormat, Message: "missing 'log' property"}
	}
	if err := validate(generic); err != nil {
		return nil, err
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, syntaxError(data, err)
	}
	var log map[string]json.RawMessage
	if err := json.Unmarshal(root["log"], &log); err != nil {
		return nil, &Error{Kind: ErrInvalidFormat, Location: "/log", Cause: err}
	}

	var rawEntries []json.RawMessage
	if raw, ok := log["entries"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &rawEntries); err != nil {
			return nil, &Error{Kind: ErrInvalidFormat, Location: "/log/entries", Cause: err}
		}
	}
	entries := make([]Entry, 0, len(rawEntries))
	for i, raw := range rawEntries {
		e, err := NewEntry(raw)
		if err != nil {
			return nil, &Error{
				Kind:     ErrInvalidFormat,
				Location: "/log/entries/" + strconv.Itoa(i),
				Cause:    err,
			}
		}
		entries = append(entries, e)
	}

	delete(root, "log")
	delete(log, "entries")
	return &Document{root: root, log: log, entries: entries}, nil
}

func syntaxError(data []byte, err error) error {
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		line, col := position(data, serr.Offset)
		return &Error{Kind: ErrParse, Line: line, Column: col, Cause: err}
	}
	return &Error{Kind: ErrParse, Cause: err}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.entries)
}

// Entries returns the entries in log order. The slice is a copy.
func (d *Document) Entries() []Entry {
	return slices.Clone(d.entries)
}

// Entry returns the entry at index i.
func (d *Document) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(d.entries) {
		return Entry{}, false
	}
	return d.entries[i], true
}

// WithEntries returns a new Document with the same metadata and the given
// entries, renumbered from zero in the order given.
func (d *Document) WithEntries(entries []Entry) *Document {
	return &Document{
		root:    maps.Clone(d.root),
		log:     maps.Clone(d.log),
		entries: slices.Clone(entries),
	}
}

// Version returns log.version.
func (d *Document) Version() string {
	var v string
	d.logField("version", &v)
	return v
}

// Creator returns log.creator.
func (d *Document) Creator() Creator {
	var c Creator
	d.logField("creator", &c)
	return c
}

// PageCount returns the number of log.pages.
func (d *Document) PageCount() int {
	var pages []json.RawMessage
	d.logField("pages", &pages)
	return len(pages)
}

// LogField returns the raw value of a log property other than entries.
func (d *Document) LogField(key string) (json.RawMessage, bool) {
	raw, ok := d.log[key]
	return raw, ok
}

func (d *Document) logField(key string, v any) {
	if raw, ok := d.log[key]; ok {
		_ = json.Unmarshal(raw, v)
	}
}

// MarshalJSON writes the document with the current entry list.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.JSON(false)
}

// JSON serializes the document. HTML characters are not escaped; pretty mode
// indents with two spaces. The result has no trailing newline.
func (d *Document) JSON(pretty bool) ([]byte, error) {
	entries := d.entries
	if entries == nil {
		entries = []Entry{}
	}
	rawEntries, err := encode(entries, false)
	if err != nil {
		return nil, err
	}
	log := maps.Clone(d.log)
	if log == nil {
		log = make(map[string]json.RawMessage, 1)
	}
	log["entries"] = rawEntries

	rawLog, err := encode(log, false)
	if err != nil {
		return nil, err
	}
	root := maps.Clone(d.root)
	if root == nil {
		root = make(map[string]json.RawMessage, 1)
	}
	root["log"] = rawLog
	return encode(root, pretty)
}

func encode(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
