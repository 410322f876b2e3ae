package lib

import (
	"fmt"
	"strconv"
)

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline
	TokenIndentation
	TokenKeyword
	TokenOperator
	TokenBareword
	TokenString
	TokenInteger
	TokenFloat
	TokenImaginary
)

var tokenKindNames = [...]string{
	TokenEOF:         "eof",
	TokenNewline:     "newline",
	TokenIndentation: "indentation",
	TokenKeyword:     "keyword",
	TokenOperator:    "operator",
	TokenBareword:    "bareword",
	TokenString:      "string",
	TokenInteger:     "integer",
	TokenFloat:       "float",
	TokenImaginary:   "imaginary",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

type Keyword int

const (
	KeywordDef Keyword = iota
	KeywordClass
	KeywordLambda
	KeywordIf
	KeywordElif
	KeywordElse
	KeywordWhile
	KeywordFor
	KeywordIn
	KeywordBreak
	KeywordContinue
	KeywordWith
	KeywordAs
	KeywordImport
	KeywordFrom
	KeywordPass
	KeywordReturn
	KeywordYield
	KeywordTry
	KeywordExcept
	KeywordFinally
	KeywordRaise
	KeywordExec
	KeywordPrint
	KeywordAssert
	KeywordDel
	KeywordNot
	KeywordAnd
	KeywordOr
	KeywordIs
	KeywordGlobal
	KeywordUnderscore
)

var keywordNames = [...]string{
	KeywordDef:        "def",
	KeywordClass:      "class",
	KeywordLambda:     "lambda",
	KeywordIf:         "if",
	KeywordElif:       "elif",
	KeywordElse:       "else",
	KeywordWhile:      "while",
	KeywordFor:        "for",
	KeywordIn:         "in",
	KeywordBreak:      "break",
	KeywordContinue:   "continue",
	KeywordWith:       "with",
	KeywordAs:         "as",
	KeywordImport:     "import",
	KeywordFrom:       "from",
	KeywordPass:       "pass",
	KeywordReturn:     "return",
	KeywordYield:      "yield",
	KeywordTry:        "try",
	KeywordExcept:     "except",
	KeywordFinally:    "finally",
	KeywordRaise:      "raise",
	KeywordExec:       "exec",
	KeywordPrint:      "print",
	KeywordAssert:     "assert",
	KeywordDel:        "del",
	KeywordNot:        "not",
	KeywordAnd:        "and",
	KeywordOr:         "or",
	KeywordIs:         "is",
	KeywordGlobal:     "global",
	KeywordUnderscore: "_",
}

func (k Keyword) String() string {
	if k >= 0 && int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return fmt.Sprintf("keyword(%d)", int(k))
}

type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpAnd
	OpOr
	OpXor
	OpExponent
	OpFloorDivide
	OpLeftShift
	OpRightShift
	OpPlusAssign
	OpMinusAssign
	OpMultiplyAssign
	OpDivideAssign
	OpModuloAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpExponentAssign
	OpFloorDivideAssign
	OpLeftShiftAssign
	OpRightShiftAssign
	OpComplement
	OpAssign
	OpEquals
	OpNotEquals
	OpLess
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
	OpAt
	OpLParen
	OpRParen
	OpLBrace
	OpRBrace
	OpLBracket
	OpRBracket
	OpComma
	OpDot
	OpColon
	OpSemicolon
	OpDoubleDot
)

var operatorLexemes = [...]string{
	OpPlus:              "+",
	OpMinus:             "-",
	OpMultiply:          "*",
	OpDivide:            "/",
	OpModulo:            "%",
	OpAnd:               "&",
	OpOr:                "|",
	OpXor:               "^",
	OpExponent:          "**",
	OpFloorDivide:       "//",
	OpLeftShift:         "<<",
	OpRightShift:        ">>",
	OpPlusAssign:        "+=",
	OpMinusAssign:       "-=",
	OpMultiplyAssign:    "*=",
	OpDivideAssign:      "/=",
	OpModuloAssign:      "%=",
	OpAndAssign:         "&=",
	OpOrAssign:          "|=",
	OpXorAssign:         "^=",
	OpExponentAssign:    "**=",
	OpFloorDivideAssign: "//=",
	OpLeftShiftAssign:   "<<=",
	OpRightShiftAssign:  ">>=",
	OpComplement:        "~",
	OpAssign:            "=",
	OpEquals:            "==",
	OpNotEquals:         "!=",
	OpLess:              "<",
	OpGreater:           ">",
	OpLessOrEqual:       "<=",
	OpGreaterOrEqual:    ">=",
	OpAt:                "@",
	OpLParen:            "(",
	OpRParen:            ")",
	OpLBrace:            "{",
	OpRBrace:            "}",
	OpLBracket:          "[",
	OpRBracket:          "]",
	OpComma:             ",",
	OpDot:               ".",
	OpColon:             ":",
	OpSemicolon:         ";",
	OpDoubleDot:         "..",
}

func (o Operator) String() string {
	if o >= 0 && int(o) < len(operatorLexemes) {
		return operatorLexemes[o]
	}
	return fmt.Sprintf("operator(%d)", int(o))
}

type Location struct {
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// Token is a tagged value. Only the payload field matching Kind is set:
// Keyword, Operator, Text (bareword name or string contents), Int
// (integer value or indentation width) or Float (float value or
// imaginary magnitude).
type Token struct {
	Kind     TokenKind
	Keyword  Keyword
	Operator Operator
	Text     string
	Int      int64
	Float    float64
	Location Location
}

func keywordToken(k Keyword, loc Location) Token {
	return Token{Kind: TokenKeyword, Keyword: k, Location: loc}
}

func operatorToken(o Operator, loc Location) Token {
	return Token{Kind: TokenOperator, Operator: o, Location: loc}
}

func newlineToken(loc Location) Token {
	return Token{Kind: TokenNewline, Location: loc}
}

func indentationToken(width int, loc Location) Token {
	return Token{Kind: TokenIndentation, Int: int64(width), Location: loc}
}

// Width is the column width of an indentation token.
func (t Token) Width() int {
	return int(t.Int)
}

func (t Token) IsKeyword(k Keyword) bool {
	return t.Kind == TokenKeyword && t.Keyword == k
}

func (t Token) IsOperator(o Operator) bool {
	return t.Kind == TokenOperator && t.Operator == o
}

func (t Token) IsLiteral() bool {
	switch t.Kind {
	case TokenString, TokenInteger, TokenFloat, TokenImaginary:
		return true
	}
	return false
}

// Equal compares two tokens structurally, ignoring where they were read.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TokenKeyword:
		return t.Keyword == other.Keyword
	case TokenOperator:
		return t.Operator == other.Operator
	case TokenBareword, TokenString:
		return t.Text == other.Text
	case TokenInteger, TokenIndentation:
		return t.Int == other.Int
	case TokenFloat, TokenImaginary:
		return t.Float == other.Float
	}
	return true
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "<eof>"
	case TokenNewline:
		return "<newline>"
	case TokenIndentation:
		return fmt.Sprintf("<indentation:%d>", t.Int)
	case TokenKeyword:
		return t.Keyword.String()
	case TokenOperator:
		return t.Operator.String()
	case TokenBareword:
		return t.Text
	case TokenString:
		return strconv.Quote(t.Text)
	case TokenInteger:
		return strconv.FormatInt(t.Int, 10)
	case TokenFloat:
		return formatFloat(t.Float)
	case TokenImaginary:
		return formatFloat(t.Float) + "j"
	}
	return "<unknown>"
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'N' || c == 'I' {
			return s
		}
	}
	return s + ".0"
}
