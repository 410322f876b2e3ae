package lib

import "fmt"

// LexError reports source text that could not be tokenized.
type LexError struct {
	Location Location
	Msg      string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Error at line %d:%d: %s", e.Location.Line, e.Location.Col, e.Msg)
}

// ParseError reports a token that does not fit the grammar at the point it
// was read.
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	loc := e.Token.Location
	if loc.Line == 0 {
		return fmt.Sprintf("Parse error: %s (got %s)", e.Msg, e.Token)
	}
	return fmt.Sprintf("Parse error at line %d:%d: %s (got %s)", loc.Line, loc.Col, e.Msg, e.Token)
}

func parseErrorf(tok Token, format string, args ...interface{}) error {
	return &ParseError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}
