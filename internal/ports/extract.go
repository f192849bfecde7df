package ports

import (
	"fmt"
	"os"
)

// Format names an upstream port-description format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatHeader Format = "header"
)

// ValidFormats lists the accepted description formats.
var ValidFormats = []Format{FormatJSON, FormatHeader}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range ValidFormats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown port format %q: must be one of %v", s, ValidFormats)
}

// NewExtractor returns the extraction strategy for format.
// scope only applies to FormatHeader.
func NewExtractor(format Format, opts Options, scope Scope) (Extractor, error) {
	switch format {
	case FormatJSON:
		return NewJSONExtractor(opts), nil
	case FormatHeader:
		return NewHeaderExtractor(opts, scope), nil
	}
	return nil, fmt.Errorf("unknown port format %q", format)
}

// ExtractFile opens path and runs x over it.
func ExtractFile(x Extractor, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SchemaError{Code: ErrCodeUnreadable, Message: "opening port description", Source: path, Err: err}
	}
	defer f.Close()

	return x.Extract(f, path)
}
