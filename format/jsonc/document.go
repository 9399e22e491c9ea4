// Package jsonc provides a JSON implementation of the
// document.Document interface that tolerates comments and trailing
// commas, backed by github.com/tailscale/hujson.
//
// Plain ".json" configuration files are parsed through this document,
// so hand-edited files with comments still load.
package jsonc

import (
	"bytes"
	"encoding/json"

	"github.com/tailscale/hujson"
	"github.com/yacchi/kasane/document"
)

// FormatJSONC is the format identifier for JSON/JSONC documents.
const FormatJSONC document.Format = "jsonc"

// Document is a JSONC document implementation.
// It is stateless - parsing and serialization happen on demand.
type Document struct{}

// Ensure Document implements document.Document interface.
var _ document.Document = (*Document)(nil)

// New returns a JSONC Document.
func New() *Document {
	return &Document{}
}

// Format returns the document format.
func (d *Document) Format() document.Format {
	return FormatJSONC
}

// Extension returns the native filename extension.
func (d *Document) Extension() string {
	return ".json"
}

// Decode parses data bytes and returns content as map[string]any.
// Returns an empty map if data is nil or whitespace-only.
func (d *Document) Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	v, err := hujson.Parse(trimmed)
	if err != nil {
		return nil, &document.ParseError{Format: FormatJSONC, Err: err}
	}

	// Standardize to remove comments and trailing commas for decoding.
	v.Standardize()

	var root any
	if err := json.Unmarshal(v.Pack(), &root); err != nil {
		return nil, &document.ParseError{Format: FormatJSONC, Err: err}
	}

	result, ok := root.(map[string]any)
	if !ok {
		return nil, &document.IllegalDocumentError{Format: FormatJSONC}
	}
	return result, nil
}

// Encode serializes data to indented JSON. Comments present in a
// previously decoded file are not round-tripped; encoding always
// produces canonical JSON.
func (d *Document) Encode(data map[string]any) ([]byte, error) {
	if data == nil {
		data = map[string]any{}
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
