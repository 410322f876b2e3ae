package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const eof rune = -1

type charInfo struct {
	ch       rune
	location Location
}

// runeSource feeds source text to a cursor one character at a time,
// tracking line and column.
type runeSource struct {
	text []rune
	pos  int
	loc  Location
}

func newRuneSource(text string) *runeSource {
	return &runeSource{
		text: []rune(text),
		loc:  Location{Line: 1, Col: 1},
	}
}

func (s *runeSource) read() (charInfo, bool, error) {
	if s.pos >= len(s.text) {
		return charInfo{}, false, nil
	}
	info := charInfo{ch: s.text[s.pos], location: s.loc}
	s.pos++
	if info.ch == '\n' {
		s.loc.Line++
		s.loc.Col = 1
	} else {
		s.loc.Col++
	}
	return info, true, nil
}

// Tokenize reads all of src and returns its tokens, ending with the EOF
// token.
func Tokenize(src string) ([]Token, error) {
	tokens := []Token{}
	err := lex(src, func(tok Token) {
		tokens = append(tokens, tok)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func lex(src string, emit func(Token)) error {
	l := newLexer(src, defaultLexicon())
	for {
		tok, ok, err := l.read()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		emit(tok)
	}
}

// lexer produces tokens on demand. It is a source[Token], so a parser can
// pull from it through a cursor without materializing the whole stream.
type lexer struct {
	src     *runeSource
	chars   *cursor[charInfo]
	lx      *lexicon
	pending []Token
	started bool
	done    bool
}

func newLexer(src string, lx *lexicon) *lexer {
	rs := newRuneSource(src)
	return &lexer{
		src:     rs,
		chars:   newCursor[charInfo](rs, charInfo{ch: eof}),
		lx:      lx,
		pending: []Token{},
	}
}

func (l *lexer) read() (Token, bool, error) {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, true, nil
	}
	if l.done {
		return Token{}, false, nil
	}

	if !l.started {
		l.started = true
		first, _ := l.chars.Peek()
		if isSpace(first.ch) && first.ch != '\n' {
			return Token{}, false, l.errorf(first.location, "Unexpected whitespace at beginning of file")
		}
	}

	for {
		c, _ := l.chars.Next()
		switch {
		case c.ch == eof:
			l.done = true
			return Token{Kind: TokenEOF, Location: l.src.loc}, true, nil
		case c.ch == '\n':
			indent, err := l.scanIndentation()
			if err != nil {
				return Token{}, false, err
			}
			l.pending = append(l.pending, indent)
			return newlineToken(c.location), true, nil
		case isSpace(c.ch):
			continue
		case c.ch == '#':
			l.consumeWhile(func(ch rune) bool { return ch != '\n' })
			continue
		case isQuote(c.ch):
			tok, err := l.scanString(c, false)
			return tok, err == nil, err
		case l.lx.operators.startsOperator(c.ch):
			op, ok := l.lx.operators.lookup(c.ch, l.chars)
			if !ok {
				return Token{}, false, l.errorf(c.location, "Unexpected character %q", c.ch)
			}
			return operatorToken(op, c.location), true, nil
		case isIdentStart(c.ch):
			next, _ := l.chars.Peek()
			if c.ch == 'r' && isQuote(next.ch) {
				q, _ := l.chars.Next()
				q.location = c.location
				tok, err := l.scanString(q, true)
				return tok, err == nil, err
			}
			word := string(c.ch) + l.consumeWhile(isIdentChar)
			if kw, ok := l.lx.keyword(word); ok {
				return keywordToken(kw, c.location), true, nil
			}
			return Token{Kind: TokenBareword, Text: word, Location: c.location}, true, nil
		case isDigit(c.ch):
			tok, err := l.scanNumber(c)
			return tok, err == nil, err
		default:
			return Token{}, false, l.errorf(c.location, "Unexpected character %q", c.ch)
		}
	}
}

// scanIndentation reads the leading whitespace of the line that follows a
// newline. Spaces count one column, tabs eight; a run mixing the two is
// rejected.
func (l *lexer) scanIndentation() (Token, error) {
	start, _ := l.chars.Peek()
	loc := start.location
	if start.ch == eof {
		loc = l.src.loc
	}
	run := l.consumeWhile(func(ch rune) bool { return isSpace(ch) && ch != '\n' })
	switch {
	case run == "":
		return indentationToken(0, loc), nil
	case strings.Trim(run, " ") == "":
		return indentationToken(len(run), loc), nil
	case strings.Trim(run, "\t") == "":
		return indentationToken(len(run)*8, loc), nil
	}
	return Token{}, l.errorf(loc, "Invalid indentation: %q", run)
}

func (l *lexer) consumeWhile(pred func(rune) bool) string {
	var b strings.Builder
	for {
		c, _ := l.chars.Peek()
		if c.ch == eof || !pred(c.ch) {
			return b.String()
		}
		b.WriteRune(c.ch)
		_, _ = l.chars.Next()
	}
}

func (l *lexer) scanNumber(first charInfo) (Token, error) {
	loc := first.location
	digits := string(first.ch) + l.consumeWhile(isDigit)
	next, _ := l.chars.Peek()

	switch {
	case next.ch == 'x':
		_, _ = l.chars.Next()
		if digits != "0" {
			return Token{}, l.errorf(loc, "x in numeric literal must be part of hexadecimal literal")
		}
		hex := l.consumeWhile(isHexDigit)
		if hex == "" {
			return Token{}, l.errorf(loc, "Hexadecimal literal has no digits")
		}
		value, err := strconv.ParseInt(hex, 16, 64)
		if err != nil {
			return Token{}, l.errorf(loc, "Invalid hexadecimal literal 0x%s", hex)
		}
		return l.finishNumber(Token{Kind: TokenInteger, Int: value, Location: loc})
	case next.ch == 'j' || next.ch == 'J':
		_, _ = l.chars.Next()
		value, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return Token{}, l.errorf(loc, "Invalid imaginary literal %sj", digits)
		}
		return l.finishNumber(Token{Kind: TokenImaginary, Float: value, Location: loc})
	case next.ch == '.':
		_, _ = l.chars.Next()
		fraction := l.consumeWhile(isDigit)
		value, err := strconv.ParseFloat(digits+"."+fraction, 64)
		if err != nil {
			return Token{}, l.errorf(loc, "Invalid float literal %s.%s", digits, fraction)
		}
		after, _ := l.chars.Peek()
		switch after.ch {
		case 'j', 'J':
			_, _ = l.chars.Next()
			return l.finishNumber(Token{Kind: TokenImaginary, Float: value, Location: loc})
		case 'e', 'E':
			return l.scanExponent(loc, value)
		}
		return l.finishNumber(Token{Kind: TokenFloat, Float: value, Location: loc})
	case next.ch == 'e' || next.ch == 'E':
		value, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return Token{}, l.errorf(loc, "Invalid numeric literal %s", digits)
		}
		return l.scanExponent(loc, value)
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Token{}, l.errorf(loc, "Integer literal %s out of range", digits)
	}
	return l.finishNumber(Token{Kind: TokenInteger, Int: value, Location: loc})
}

// scanExponent reads the digits after e/E. The exponent is a plain digit
// run: it never carries a sign, a hex prefix or an imaginary suffix of its
// own.
func (l *lexer) scanExponent(loc Location, mantissa float64) (Token, error) {
	_, _ = l.chars.Next()
	c, _ := l.chars.Next()
	if !isDigit(c.ch) {
		return Token{}, l.errorf(loc, "Exponent missing in numeric literal")
	}
	digits := string(c.ch) + l.consumeWhile(isDigit)
	exponent, err := strconv.Atoi(digits)
	if err != nil {
		return Token{}, l.errorf(loc, "Exponent %s out of range", digits)
	}
	value := mantissa * math.Pow10(exponent)
	if math.IsInf(value, 0) {
		return Token{}, l.errorf(loc, "Float literal out of range")
	}

	next, _ := l.chars.Peek()
	if next.ch == 'j' || next.ch == 'J' {
		_, _ = l.chars.Next()
		return l.finishNumber(Token{Kind: TokenImaginary, Float: value, Location: loc})
	}
	return l.finishNumber(Token{Kind: TokenFloat, Float: value, Location: loc})
}

func (l *lexer) finishNumber(tok Token) (Token, error) {
	next, _ := l.chars.Peek()
	if isIdentChar(next.ch) {
		return Token{}, l.errorf(next.location, "Invalid character %q following numeric literal", next.ch)
	}
	return tok, nil
}

func (l *lexer) scanString(open charInfo, raw bool) (Token, error) {
	q := open.ch
	next, _ := l.chars.Peek()
	if next.ch != q {
		return l.consumeString(open, raw, false, 1)
	}

	_, _ = l.chars.Next()
	after, _ := l.chars.Peek()
	if after.ch == q {
		_, _ = l.chars.Next()
		return l.consumeString(open, raw, true, 3)
	}
	if isIdentStart(after.ch) {
		return Token{}, l.errorf(open.location, "Expected one or three quotes at beginning of string")
	}
	return Token{Kind: TokenString, Text: "", Location: open.location}, nil
}

func (l *lexer) consumeString(open charInfo, raw bool, multiline bool, closingCount int) (Token, error) {
	q := open.ch
	var out strings.Builder
	inEscape := false
	closingRun := 0

	for {
		c, _ := l.chars.Next()
		if c.ch == eof {
			return Token{}, l.errorf(open.location, "EOF within string literal: %s", out.String())
		}
		if c.ch == q && !inEscape {
			closingRun++
			if closingRun == closingCount {
				break
			}
			continue
		}
		if closingRun > 0 {
			out.WriteString(strings.Repeat(string(q), closingRun))
			closingRun = 0
		}
		if c.ch == '\\' && !inEscape {
			inEscape = true
			// a raw string keeps the backslash: r'a\'' holds a, \, '
			if raw {
				out.WriteRune(c.ch)
			}
			continue
		}
		if c.ch == '\n' && !multiline {
			return Token{}, l.errorf(c.location, "Unexpected newline within string literal")
		}
		if !inEscape {
			out.WriteRune(c.ch)
			continue
		}

		inEscape = false
		if raw {
			out.WriteRune(c.ch)
			continue
		}
		switch {
		case c.ch == 'n':
			out.WriteRune('\n')
		case c.ch == 'r':
			out.WriteRune('\r')
		case c.ch == 't':
			out.WriteRune('\t')
		case c.ch == 'a':
			out.WriteRune('\a')
		case c.ch == 'u':
			return Token{}, l.errorf(c.location, "Unicode escapes are not supported")
		case isPunctuation(c.ch):
			out.WriteRune(c.ch)
		default:
			return Token{}, l.errorf(c.location, "Unrecognized escape sequence: \\%c", c.ch)
		}
	}

	value := out.String()
	if raw && strings.HasSuffix(value, `\`) && !strings.HasSuffix(value, `\\`) {
		return Token{}, l.errorf(open.location, "Can't have backslash at end of raw string: %s", value)
	}
	return Token{Kind: TokenString, Text: value, Location: open.location}, nil
}

func (l *lexer) errorf(loc Location, format string, args ...interface{}) error {
	return &LexError{Location: loc, Msg: fmt.Sprintf(format, args...)}
}

const punctuationChars = "+-*/%&|^@=></,.!()[]{}~:;\"'\\"

func isPunctuation(ch rune) bool {
	return strings.ContainsRune(punctuationChars, ch)
}

func isQuote(ch rune) bool {
	return ch == '\'' || ch == '"'
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch rune) bool {
	return isAlpha(ch) || ch == '_'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
