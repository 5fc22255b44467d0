package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name string
		line string
		want []string
	}{
		{"empty line", "", nil},
		{"whitespace only", "  \t ", nil},
		{"single token", "help", []string{"help"}},
		{"multiple tokens", "add-tracepoint main.c:42 hit", []string{"add-tracepoint", "main.c:42", "hit"}},
		{"collapsed whitespace", "a \t  b", []string{"a", "b"}},
		{"quoted token with spaces", `add-tracepoint main.c:42 "x={} y={}" x y`, []string{"add-tracepoint", "main.c:42", "x={} y={}", "x", "y"}},
		{"empty quoted token", `a "" b`, []string{"a", "", "b"}},
		{"quotes joined to text", `pre"mid dle"post`, []string{"premid dlepost"}},
		{"escaped quote", `say \"hi\"`, []string{`say`, `"hi"`}},
		{"escaped quote inside quotes", `"she said \"hi\""`, []string{`she said "hi"`}},
		{"escaped backslash", `path\\to`, []string{`path\to`}},
		{"escaped space", `one\ token`, []string{"one token"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	testCases := []struct {
		name string
		line string
	}{
		{"unterminated quote", `add-tracepoint "x={}`},
		{"trailing backslash", `add-tracepoint x\`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.line)
			assert.Error(t, err)
		})
	}
}
