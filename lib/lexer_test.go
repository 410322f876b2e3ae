package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func bareword(name string) Token {
	return Token{Kind: TokenBareword, Text: name}
}

func requireTok(t *testing.T, actual Token, expected Token, line int, col int) {
	require.True(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
	require.Equal(t, line, actual.Location.Line, "token line")
	require.Equal(t, col, actual.Location.Col, "token col")
}

func requireTokens(t *testing.T, src string, expected ...Token) {
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Len(t, tokens, len(expected), "%v", tokens)
	for i := range expected {
		require.True(t, expected[i].Equal(tokens[i]), "token %d: expected %s, got %s", i, expected[i], tokens[i])
	}
}

func requireLexError(t *testing.T, src string) *LexError {
	_, err := Tokenize(src)
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	return lexErr
}

var (
	nl  = Token{Kind: TokenNewline}
	eot = Token{Kind: TokenEOF}
)

func ind(width int) Token {
	return indentationToken(width, Location{})
}

func kw(k Keyword) Token {
	return keywordToken(k, Location{})
}

func op(o Operator) Token {
	return operatorToken(o, Location{})
}

func TestLexerOneWord(t *testing.T) {
	tokens, err := Tokenize("import a")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	requireTok(t, tokens[0], kw(KeywordImport), 1, 1)
	requireTok(t, tokens[1], bareword("a"), 1, 8)
	requireTok(t, tokens[2], eot, 1, 9)
}

func TestLexerEmpty(t *testing.T) {
	tokens, err := Tokenize("")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, TokenEOF, tokens[0].Kind)
}

func TestLexerTabIndentation(t *testing.T) {
	tokens, err := Tokenize("while 42:\n\timport a\n")
	require.NoError(t, err)
	require.Len(t, tokens, 10)
	requireTok(t, tokens[0], kw(KeywordWhile), 1, 1)
	requireTok(t, tokens[1], Token{Kind: TokenInteger, Int: 42}, 1, 7)
	requireTok(t, tokens[2], op(OpColon), 1, 9)
	requireTok(t, tokens[3], nl, 1, 10)
	requireTok(t, tokens[4], ind(8), 2, 1)
	requireTok(t, tokens[5], kw(KeywordImport), 2, 2)
	requireTok(t, tokens[6], bareword("a"), 2, 9)
	requireTok(t, tokens[7], nl, 2, 10)
	requireTok(t, tokens[8], ind(0), 3, 1)
	requireTok(t, tokens[9], eot, 3, 1)
}

func TestLexerSpaceIndentation(t *testing.T) {
	requireTokens(t, "if x:\n    pass\n  \n\t\tpass",
		kw(KeywordIf), bareword("x"), op(OpColon), nl,
		ind(4), kw(KeywordPass), nl,
		ind(2), nl,
		ind(16), kw(KeywordPass), eot,
	)
}

func TestLexerMixedIndentation(t *testing.T) {
	err := requireLexError(t, "if x:\n \tpass")
	require.Equal(t, 2, err.Location.Line)
	require.Contains(t, err.Msg, "Invalid indentation")

	requireLexError(t, "if x:\n\t pass")
}

func TestLexerLeadingWhitespace(t *testing.T) {
	requireLexError(t, " import a")
	requireLexError(t, "\timport a")

	requireTokens(t, "\nimport a", nl, ind(0), kw(KeywordImport), bareword("a"), eot)
}

func TestLexerComments(t *testing.T) {
	requireTokens(t, "x # a comment\n# another\ny",
		bareword("x"), nl, ind(0), nl, ind(0), bareword("y"), eot)
}

func TestLexerKeywordsAndBarewords(t *testing.T) {
	requireTokens(t, "def _ define x_1 r rx None",
		kw(KeywordDef), kw(KeywordUnderscore), bareword("define"), bareword("x_1"),
		bareword("r"), bareword("rx"), bareword("None"), eot)
}

func TestLexerOperatorsLongestMatch(t *testing.T) {
	requireTokens(t, "a **= b",
		bareword("a"), op(OpExponentAssign), bareword("b"), eot)
	requireTokens(t, "a<<=b>>c**d*e",
		bareword("a"), op(OpLeftShiftAssign), bareword("b"), op(OpRightShift), bareword("c"),
		op(OpExponent), bareword("d"), op(OpMultiply), bareword("e"), eot)
	requireTokens(t, "x!=y==z",
		bareword("x"), op(OpNotEquals), bareword("y"), op(OpEquals), bareword("z"), eot)
	requireTokens(t, "...",
		op(OpDoubleDot), op(OpDot), eot)
	requireTokens(t, "(a,)[]{}~@;",
		op(OpLParen), bareword("a"), op(OpComma), op(OpRParen), op(OpLBracket), op(OpRBracket),
		op(OpLBrace), op(OpRBrace), op(OpComplement), op(OpAt), op(OpSemicolon), eot)
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	err := requireLexError(t, "a $ b")
	require.Equal(t, Location{Line: 1, Col: 3}, err.Location)

	requireLexError(t, "!x")
	requireLexError(t, "a ? b")
}

func TestLexerNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want Token
	}{
		{"0", Token{Kind: TokenInteger, Int: 0}},
		{"42", Token{Kind: TokenInteger, Int: 42}},
		{"08", Token{Kind: TokenInteger, Int: 8}},
		{"0x1A", Token{Kind: TokenInteger, Int: 26}},
		{"0xff", Token{Kind: TokenInteger, Int: 255}},
		{"2.5", Token{Kind: TokenFloat, Float: 2.5}},
		{"1e2", Token{Kind: TokenFloat, Float: 100}},
		{"1.5e1", Token{Kind: TokenFloat, Float: 15}},
		{"3j", Token{Kind: TokenImaginary, Float: 3}},
		{"1.5j", Token{Kind: TokenImaginary, Float: 1.5}},
		{"2e1j", Token{Kind: TokenImaginary, Float: 20}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			requireTokens(t, c.src, c.want, eot)
		})
	}
}

func TestLexerBadNumbers(t *testing.T) {
	for _, src := range []string{"1x", "10x5", "0x", "12abc", "1e", "1e+5", "3jk", "99999999999999999999", "1e400", "1.5e400j"} {
		t.Run(src, func(t *testing.T) {
			requireLexError(t, src)
		})
	}
}

func TestLexerFloatOutOfRange(t *testing.T) {
	err := requireLexError(t, "x = 1e400")
	require.Equal(t, Location{Line: 1, Col: 5}, err.Location)
	require.Contains(t, err.Msg, "out of range")

	_, perr := Parse("x = 1e400")
	require.Error(t, perr)
}

func TestLexerStrings(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`'abc'`, "abc"},
		{`"abc"`, "abc"},
		{`''`, ""},
		{`""`, ""},
		{`'a\nb\tc'`, "a\nb\tc"},
		{`'it\'s'`, "it's"},
		{`"say \"hi\""`, `say "hi"`},
		{`'back\\slash'`, `back\slash`},
		{`"it's"`, "it's"},
		{"'''a'b''c'''", "a'b''c"},
		{"\"\"\"line one\nline two\"\"\"", "line one\nline two"},
		{`r'a\nb'`, `a\nb`},
		{`r'a\\'`, `a\\`},
		{`r'a\''`, `a\'`},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			requireTokens(t, c.src, Token{Kind: TokenString, Text: c.want}, eot)
		})
	}
}

func TestLexerEmptyStringFollowedByOperator(t *testing.T) {
	requireTokens(t, "'', x",
		Token{Kind: TokenString}, op(OpComma), bareword("x"), eot)
}

func TestLexerStringErrors(t *testing.T) {
	err := requireLexError(t, "'abc")
	require.Contains(t, err.Msg, "EOF within string literal")
	require.Contains(t, err.Msg, "abc")

	requireLexError(t, "'''abc''")
	requireLexError(t, "''abc")
	requireLexError(t, "'a\nb'")
	requireLexError(t, `'\u0041'`)
	requireLexError(t, `'\q'`)
	requireLexError(t, `r'a\'`)
}

func TestLexerReadsOnDemand(t *testing.T) {
	l := newLexer("a $", defaultLexicon())

	tok, ok, err := l.read()
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, bareword("a").Equal(tok))

	_, _, err = l.read()
	require.Error(t, err)
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "def", kw(KeywordDef).String())
	require.Equal(t, "**=", op(OpExponentAssign).String())
	require.Equal(t, `"a b"`, Token{Kind: TokenString, Text: "a b"}.String())
	require.Equal(t, "100.0", Token{Kind: TokenFloat, Float: 100}.String())
	require.Equal(t, "1.5j", Token{Kind: TokenImaginary, Float: 1.5}.String())
	require.Equal(t, "<indentation:8>", ind(8).String())
}

func TestTokenEqualIgnoresLocation(t *testing.T) {
	a := Token{Kind: TokenBareword, Text: "x", Location: Location{Line: 1, Col: 1}}
	b := Token{Kind: TokenBareword, Text: "x", Location: Location{Line: 9, Col: 4}}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(bareword("y")))
	require.False(t, kw(KeywordIf).Equal(kw(KeywordFor)))
	require.False(t, ind(4).Equal(ind(8)))
}
