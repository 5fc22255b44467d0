package console

import "fmt"

// Tokenize splits a command line into arguments the way a debugger
// console does: whitespace separates tokens, double quotes group text
// containing whitespace into one token, and a backslash escapes the next
// character (so a literal quote can appear inside a quoted token).
func Tokenize(line string) ([]string, error) {
	var args []string
	var current []byte
	inToken := false
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '\\':
			if i+1 >= len(line) {
				return nil, fmt.Errorf("trailing backslash")
			}
			i++
			current = append(current, line[i])
			inToken = true
		case ch == '"':
			inQuotes = !inQuotes
			inToken = true
		case (ch == ' ' || ch == '\t') && !inQuotes:
			if inToken {
				args = append(args, string(current))
				current = current[:0]
				inToken = false
			}
		default:
			current = append(current, ch)
			inToken = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inToken {
		args = append(args, string(current))
	}

	return args, nil
}
