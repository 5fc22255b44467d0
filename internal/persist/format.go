// Package persist serializes tracepoint definitions to a line-oriented
// text format and re-materializes tracepoints from it.
//
// The canonical grammar, one definition per line:
//
//	addlog <locationSpec> "<template>" ("<expression>")*
//
// Template and expressions are double-quoted. Embedded double quotes and
// backslashes are escaped with a backslash, so any definition round-trips
// exactly through export and import.
package persist

import (
	"fmt"
	"strings"
)

// DefinitionKeyword opens every definition line.
const DefinitionKeyword = "addlog"

// DefaultScanPrefix is the location-declaration prefix recognized by
// shared-template imports. Lines of the form "break <locationSpec>" -
// the format debugger breakpoint save files use - contribute their
// location; everything else is skipped.
const DefaultScanPrefix = "break "

// Definition is one parsed tracepoint definition.
type Definition struct {
	Location    string
	Template    string
	Expressions []string
}

// FormatDefinition renders a definition as a canonical line (without a
// trailing newline).
func FormatDefinition(def Definition) string {
	var b strings.Builder
	b.WriteString(DefinitionKeyword)
	b.WriteByte(' ')
	b.WriteString(def.Location)
	b.WriteByte(' ')
	writeQuoted(&b, def.Template)
	for _, expr := range def.Expressions {
		b.WriteByte(' ')
		writeQuoted(&b, expr)
	}
	return b.String()
}

// writeQuoted appends s double-quoted, escaping embedded quotes and
// backslashes.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
}

// ParseDefinition parses one canonical definition line.
func ParseDefinition(line string) (Definition, error) {
	rest := strings.TrimLeft(line, " \t")
	keyword, rest, ok := cutToken(rest)
	if !ok || keyword != DefinitionKeyword {
		return Definition{}, fmt.Errorf("expected %q keyword", DefinitionKeyword)
	}

	location, rest, ok := cutToken(rest)
	if !ok {
		return Definition{}, fmt.Errorf("missing location spec")
	}
	if location[0] == '"' {
		return Definition{}, fmt.Errorf("location spec must not be quoted")
	}

	template, rest, err := cutQuoted(rest)
	if err != nil {
		return Definition{}, fmt.Errorf("template: %w", err)
	}

	var exprs []string
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		var expr string
		expr, rest, err = cutQuoted(rest)
		if err != nil {
			return Definition{}, fmt.Errorf("expression %d: %w", len(exprs)+1, err)
		}
		exprs = append(exprs, expr)
	}

	return Definition{Location: location, Template: template, Expressions: exprs}, nil
}

// cutToken splits the next whitespace-delimited token off the front of s.
func cutToken(s string) (token, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", "", false
	}
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, "", true
	}
	return s[:end], s[end:], true
}

// cutQuoted splits the next double-quoted string off the front of s,
// resolving backslash escapes.
func cutQuoted(s string) (value, rest string, err error) {
	s = strings.TrimLeft(s, " \t")
	if s == "" || s[0] != '"' {
		return "", "", fmt.Errorf("expected opening quote")
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", "", fmt.Errorf("trailing backslash")
			}
			i++
			b.WriteByte(s[i])
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(s[i])
		}
	}
	return "", "", fmt.Errorf("unterminated quote")
}
