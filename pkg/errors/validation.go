package errors

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSourceBytes bounds diagram text accepted from untrusted callers.
const DefaultMaxSourceBytes = 1 << 20

// ValidateSource checks diagram text received over the network. The parser
// itself accepts anything; this only guards the server against binary or
// oversized payloads. A maxBytes of zero uses [DefaultMaxSourceBytes].
func ValidateSource(text string, maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSourceBytes
	}
	if len(text) > maxBytes {
		return New(ErrCodeInputTooLarge, "diagram too large (%d bytes, max %d)", len(text), maxBytes)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "diagram is not valid UTF-8")
	}
	if strings.ContainsRune(text, 0) {
		return New(ErrCodeInvalidInput, "diagram contains NUL bytes")
	}
	return nil
}

// ValidatePath checks an output path given on the command line.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains control characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "unknown format %q (want %s)", format, quoteList(allowed))
}

func quoteList(items []string) string {
	q := make([]string, len(items))
	for i, s := range items {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
