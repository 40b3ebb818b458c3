// Package parser extracts comparable segments from localization and
// office document formats. Each parser produces a model.ParsedDocument;
// everything downstream is format-agnostic.
package parser

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/Slipfaith/Diffviewer/internal/model"
)

// Parser reads one file format into the shared document model.
type Parser interface {
	// Name is a human-readable parser name.
	Name() string
	// Extensions are the lowercase dot-prefixed extensions handled.
	Extensions() []string
	// Parse reads the file into a document. Failures are ParseErrors.
	Parse(path string) (*model.ParsedDocument, error)
	// Validate reports problems without building a document.
	Validate(path string) []string
}

// registry maps extensions to parser constructors. The table is explicit
// and populated at init; there is no runtime discovery.
var registry = map[string]func() Parser{}

func register(newParser func() Parser) {
	p := newParser()
	for _, ext := range p.Extensions() {
		registry[strings.ToLower(ext)] = newParser
	}
}

func init() {
	register(func() Parser { return &XliffParser{} })
	register(func() Parser { return &SdlXliffParser{} })
	register(func() Parser { return &MemoQParser{} })
	register(func() Parser { return &SrtParser{} })
	register(func() Parser { return &TxtParser{} })
	register(func() Parser { return &DocxParser{} })
	register(func() Parser { return &XlsxParser{} })
}

// ForFile returns the parser registered for the file's extension.
func ForFile(path string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	newParser, ok := registry[ext]
	if !ok {
		return nil, &model.UnsupportedFormatError{Extension: ext}
	}
	return newParser(), nil
}

// ParseFile resolves a parser for path and parses it.
func ParseFile(path string) (*model.ParsedDocument, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(path)
}

// SupportedExtensions lists all registered extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(registry))
	for ext := range registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
