// Package svgqr implements the SVG/QR plumbing for the QR generation
// benchmark: extracting SVG markup from model output, checking it for
// well-formedness, rasterizing it and decoding any embedded QR code.
package svgqr

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	svgOpenTag  = "<svg"
	svgCloseTag = "</svg>"
)

// Extract returns the first complete <svg>...</svg> slice of s.
// Model answers usually wrap the markup in prose or code fences, so the
// slice between the first opening and closing tag is what gets scored.
// ok is false when either tag is missing.
func Extract(s string) (svg string, ok bool) {
	start := strings.Index(s, svgOpenTag)
	if start < 0 {
		return "", false
	}
	end := strings.Index(s[start:], svgCloseTag)
	if end < 0 {
		return "", false
	}
	return s[start : start+end+len(svgCloseTag)], true
}

// IsValid reports whether s contains an <svg>...</svg> slice that parses
// as well-formed XML.
func IsValid(s string) bool {
	svg, ok := Extract(s)
	if !ok {
		return false
	}

	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return true
		}
		if err != nil {
			return false
		}
	}
}
