// Package har loads, inspects and serializes HTTP Archive (HAR) documents.
//
// A Document keeps every entry as the raw JSON it was read from, so fields this
// package does not model (vendor extensions such as _resourceType, page refs,
// cache blocks) survive a load/serialize cycle untouched. Typed, read-only
// projections of the commonly displayed fields are decoded alongside:
//
//	doc, err := har.Load("traffic.har")
//	if err != nil {
//		return err
//	}
//	for i, e := range doc.Entries() {
//		fmt.Println(i, e.Method(), e.Status(), e.URL())
//	}
//
// Documents are never modified in place. WithEntries returns a new Document that
// shares the original metadata and carries a different entry list, which is how
// the filter package produces its output.
//
// # Errors
//
// Load and Parse return *Error values. Use errors.Is with ErrNotFound,
// ErrInvalidFormat, ErrParse or ErrRead to classify them.
package har
