package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// SanitizeFilenamePart strips everything outside [A-Za-z0-9_-] so order
// numbers can be embedded in Content-Disposition filenames without path
// separators or control characters leaking through.
func SanitizeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			out.WriteRune(r)
		}
	}
	return out.String()
}
