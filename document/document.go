// Package document defines the decoder/encoder contract between the
// configuration store and concrete file formats. A document is
// stateless: it turns file bytes into a mapping tree and a mapping
// tree back into serializable text, and knows nothing about layers,
// paths, or priority.
package document

// Format identifies a document format (e.g. "hjson", "jsonc").
type Format string

// Document converts between raw bytes and nested map[string]any
// trees. Implementations must be stateless and safe for reuse across
// files.
type Document interface {
	// Decode parses data and returns its content as map[string]any.
	// Empty or whitespace-only input decodes to an empty map. A
	// document whose root is not an object fails with
	// *IllegalDocumentError; malformed input fails with *ParseError.
	Decode(data []byte) (map[string]any, error)

	// Encode serializes data to the document's native text form.
	Encode(data map[string]any) ([]byte, error)

	// Format returns the document format identifier.
	Format() Format

	// Extension returns the filename extension for the format,
	// including the leading dot (e.g. ".hjson").
	Extension() string
}
