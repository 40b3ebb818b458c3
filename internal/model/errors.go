package model

import "fmt"

// ParseError reports that a named file failed to parse.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps err as a ParseError for path.
func NewParseError(path string, err error) *ParseError {
	return &ParseError{Path: path, Reason: err.Error(), Err: err}
}

// UnsupportedFormatError reports that no parser handles an extension.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Extension)
}
