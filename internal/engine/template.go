package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Placeholder is the positional substitution marker in message templates.
const Placeholder = "{}"

// CountPlaceholders returns the number of positional placeholders in a
// message template. Arity is validated against this count once, at
// tracepoint creation, never at hit time.
func CountPlaceholders(template string) int {
	return strings.Count(template, Placeholder)
}

// FormatMessage substitutes the ordered results positionally into the
// template and returns a single sanitized log line.
//
// One hit produces one line by contract: embedded newlines (from
// multi-line expression renderings) are stripped. The line is
// NFC-normalized so equal text always serializes identically.
//
// FormatMessage is pure and assumes the arity invariant holds; extra
// placeholders beyond len(results) are left verbatim.
func FormatMessage(template string, results []string) string {
	var b strings.Builder
	rest := template
	for _, result := range results {
		i := strings.Index(rest, Placeholder)
		if i < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(result)
		rest = rest[i+len(Placeholder):]
	}
	b.WriteString(rest)

	line := strings.NewReplacer("\n", "", "\r", "").Replace(b.String())
	return norm.NFC.String(line)
}
