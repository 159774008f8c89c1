// Package utils provides query sanitization for the public search surface.
// The data layer escapes its own patterns; sanitization here only keeps
// junk input (markup, control characters, pathological length) out of the
// pipeline and the logs.
package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxQueryLength caps query length in runes.
const DefaultMaxQueryLength = 200

// QuerySanitizer normalizes raw query input before it reaches the search
// pipeline.
type QuerySanitizer struct {
	maxLength int
}

func NewQuerySanitizer(maxLength int) *QuerySanitizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxQueryLength
	}
	return &QuerySanitizer{maxLength: maxLength}
}

// Sanitize strips markup and control characters, collapses whitespace,
// and truncates overly long input.
func (s *QuerySanitizer) Sanitize(query string) string {
	query = stripTags(query)
	query = stripControlChars(query)
	query = normalizeWhitespace(query)

	if utf8.RuneCountInString(query) > s.maxLength {
		runes := []rune(query)
		query = strings.TrimSpace(string(runes[:s.maxLength]))
	}
	return query
}

// stripTags removes anything between angle brackets. Search queries have
// no legitimate use for markup.
func stripTags(input string) string {
	for {
		start := strings.Index(input, "<")
		if start == -1 {
			break
		}
		end := strings.Index(input[start:], ">")
		if end == -1 {
			input = input[:start]
			break
		}
		input = input[:start] + input[start+end+1:]
	}
	return input
}

func stripControlChars(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		// Zero-width characters confuse term matching.
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			return -1
		}
		return r
	}, input)
}

func normalizeWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
