package document

import "fmt"

// ParseError is returned when document bytes cannot be parsed.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IllegalDocumentError is returned when a document parses successfully
// but its root is not an object. Configuration files must always carry
// a mapping at the top level.
type IllegalDocumentError struct {
	Format Format
}

func (e *IllegalDocumentError) Error() string {
	return fmt.Sprintf("illegal configuration file: %s document root is not an object", e.Format)
}
