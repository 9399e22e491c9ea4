// Package hjson provides an HJSON implementation of the
// document.Document interface, backed by github.com/hjson/hjson-go.
//
// HJSON is the store's native persistence format: layers saved to
// disk are written as ".hjson" files.
package hjson

import (
	"bytes"

	hjsonv4 "github.com/hjson/hjson-go/v4"
	"github.com/yacchi/kasane/document"
)

// FormatHJSON is the format identifier for HJSON documents.
const FormatHJSON document.Format = "hjson"

// Document is an HJSON document implementation.
// It is stateless - parsing and serialization happen on demand.
type Document struct{}

// Ensure Document implements document.Document interface.
var _ document.Document = (*Document)(nil)

// New returns an HJSON Document.
func New() *Document {
	return &Document{}
}

// Format returns the document format.
func (d *Document) Format() document.Format {
	return FormatHJSON
}

// Extension returns the native filename extension.
func (d *Document) Extension() string {
	return ".hjson"
}

// Decode parses data bytes and returns content as map[string]any.
// Returns an empty map if data is nil or whitespace-only.
func (d *Document) Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	var root any
	if err := hjsonv4.Unmarshal(trimmed, &root); err != nil {
		return nil, &document.ParseError{Format: FormatHJSON, Err: err}
	}

	result, ok := root.(map[string]any)
	if !ok {
		return nil, &document.IllegalDocumentError{Format: FormatHJSON}
	}
	return result, nil
}

// Encode serializes data to HJSON text.
func (d *Document) Encode(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	b, err := hjsonv4.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
