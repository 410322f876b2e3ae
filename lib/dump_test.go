package lib

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireJSON(t *testing.T, expected string, value interface{}) {
	bytes, err := json.Marshal(value)
	require.NoError(t, err)
	require.JSONEq(t, expected, string(bytes))
}

func TestDumpTokens(t *testing.T) {
	tokens, err := Tokenize("x = 1.5\n  'a'")
	require.NoError(t, err)

	requireJSON(t, `[
		{"kind": "bareword", "line": 1, "col": 1, "text": "x"},
		{"kind": "operator", "line": 1, "col": 3, "text": "="},
		{"kind": "float", "line": 1, "col": 5, "value": 1.5},
		{"kind": "newline", "line": 1, "col": 8},
		{"kind": "indentation", "line": 2, "col": 1, "width": 2},
		{"kind": "string", "line": 2, "col": 3, "value": "a"},
		{"kind": "eof", "line": 2, "col": 6}
	]`, DumpTokens(tokens))
}

func TestDumpProgram(t *testing.T) {
	prog := mustParse(t, "while 42:\n\tfrom . import a as b\nx = (y for y in z)\n")

	requireJSON(t, `{
		"type": "Program",
		"statements": [
			{
				"type": "While",
				"condition": {"type": "Integer", "value": 42},
				"body": [
					{"type": "ImportGroup", "imports": [
						{"type": "Import", "module": "", "level": 0, "names": [{"name": "a", "alias": "b"}]}
					]}
				],
				"else": null
			},
			{
				"type": "Assign",
				"targets": [{"type": "Variable", "name": "x"}],
				"value": {
					"type": "Generator",
					"body": {"type": "Variable", "name": "y"},
					"clauses": [
						{"type": "For", "target": {"type": "Variable", "name": "y"}, "collection": {"type": "Variable", "name": "z"}}
					]
				}
			}
		]
	}`, DumpProgram(prog))
}

func TestDumpEmptyProgram(t *testing.T) {
	requireJSON(t, `{"type": "Program", "statements": []}`, DumpProgram(mustParse(t, "")))
}
