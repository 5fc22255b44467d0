package persist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormatDefinition(t *testing.T) {
	testCases := []struct {
		name string
		def  Definition
		want string
	}{
		{
			"no expressions",
			Definition{Location: "main.c:42", Template: "hit"},
			`addlog main.c:42 "hit"`,
		},
		{
			"two expressions",
			Definition{Location: "main.c:42", Template: "x={} y={}", Expressions: []string{"x", "y->next"}},
			`addlog main.c:42 "x={} y={}" "x" "y->next"`,
		},
		{
			"embedded quote",
			Definition{Location: "f.c:1", Template: `say "hi" {}`, Expressions: []string{"msg"}},
			`addlog f.c:1 "say \"hi\" {}" "msg"`,
		},
		{
			"embedded backslash",
			Definition{Location: "f.c:1", Template: `path\{}`, Expressions: []string{`dir`}},
			`addlog f.c:1 "path\\{}" "dir"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDefinition(tc.def))
		})
	}
}

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition(`addlog main.c:42 "x={} y={}" "x" "y->next"`)
	require.NoError(t, err)
	assert.Equal(t, "main.c:42", def.Location)
	assert.Equal(t, "x={} y={}", def.Template)
	assert.Equal(t, []string{"x", "y->next"}, def.Expressions)
}

func TestParseDefinitionLeadingWhitespace(t *testing.T) {
	def, err := ParseDefinition("\t  addlog main.c:42 \"hit\"")
	require.NoError(t, err)
	assert.Equal(t, "main.c:42", def.Location)
	assert.Equal(t, "hit", def.Template)
	assert.Empty(t, def.Expressions)
}

func TestParseDefinitionErrors(t *testing.T) {
	testCases := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"wrong keyword", `break main.c:42 "hit"`},
		{"missing location", "addlog"},
		{"quoted location", `addlog "main.c:42" "hit"`},
		{"missing template", "addlog main.c:42"},
		{"unquoted template", "addlog main.c:42 hit"},
		{"unterminated template", `addlog main.c:42 "hit`},
		{"trailing backslash", `addlog main.c:42 "hit\`},
		{"unquoted expression", `addlog main.c:42 "x={}" x`},
		{"unterminated expression", `addlog main.c:42 "x={}" "x`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDefinition(tc.line)
			assert.Error(t, err)
		})
	}
}

func TestDefinitionRoundTripProperty(t *testing.T) {
	// format then parse reproduces any definition exactly, including
	// quotes, backslashes and placeholder text in template and expressions
	rapid.Check(t, func(t *rapid.T) {
		loc := rapid.StringMatching(`[a-z_./]+:[0-9]{1,4}`).Draw(t, "loc")
		template := rapid.StringOf(rapid.Rune().Filter(func(r rune) bool {
			return r != '\n' && r != '\r'
		})).Draw(t, "template")
		exprCount := rapid.IntRange(0, 4).Draw(t, "exprCount")
		exprs := make([]string, exprCount)
		for i := range exprs {
			exprs[i] = rapid.StringMatching(`[a-zA-Z0-9_>."'\\ -]*`).Draw(t, "expr")
		}

		def := Definition{Location: loc, Template: template, Expressions: exprs}
		parsed, err := ParseDefinition(FormatDefinition(def))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if parsed.Location != def.Location || parsed.Template != def.Template {
			t.Fatalf("round trip mismatch: %+v != %+v", parsed, def)
		}
		if len(parsed.Expressions) != len(def.Expressions) {
			t.Fatalf("expression count mismatch: %+v != %+v", parsed, def)
		}
		for i := range exprs {
			if parsed.Expressions[i] != def.Expressions[i] {
				t.Fatalf("expression %d mismatch: %+v != %+v", i, parsed, def)
			}
		}
	})
}
