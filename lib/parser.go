package lib

// Parse tokenizes and parses src into a Program. Tokens are produced on
// demand as the parser pulls them; the first lexical or grammar error
// aborts the whole parse.
func Parse(src string) (Program, error) {
	p := newParser(newTokenCursor(src))
	return p.scan()
}

// ParseTokens parses an already tokenized program.
func ParseTokens(tokens []Token) (Program, error) {
	src := &sliceSource[Token]{items: tokens}
	p := newParser(newCursor[Token](src, Token{Kind: TokenEOF}))
	return p.scan()
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (Expression, error) {
	p := newParser(newTokenCursor(src))
	expr, err := p.scanExpression()
	if err != nil {
		return nil, err
	}
	tok, err := p.reader.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenNewline && tok.Kind != TokenEOF {
		return nil, parseErrorf(tok, "Expected end of expression")
	}
	return expr, nil
}

func newTokenCursor(src string) *cursor[Token] {
	return newCursor[Token](newLexer(src, defaultLexicon()), Token{Kind: TokenEOF})
}

type statementFunc func(p *parser, level int) (Statement, error)

type parser struct {
	reader tokenReader

	// Block statements consume their whole colon block, including the
	// newline that ends it. Inline statements stop before the newline or
	// semicolon that ends them.
	blockStatements  map[Keyword]statementFunc
	inlineStatements map[Keyword]statementFunc
}

func newParser(reader tokenReader) *parser {
	return &parser{
		reader: reader,
		blockStatements: map[Keyword]statementFunc{
			KeywordFor:   (*parser).scanFor,
			KeywordIf:    (*parser).scanIf,
			KeywordWith:  (*parser).scanWith,
			KeywordWhile: (*parser).scanWhile,
			KeywordClass: (*parser).scanClass,
			KeywordDef:   (*parser).scanDef,
			KeywordTry:   (*parser).scanTry,
		},
		inlineStatements: map[Keyword]statementFunc{
			KeywordImport:   (*parser).scanImport,
			KeywordFrom:     (*parser).scanFrom,
			KeywordPrint:    (*parser).scanPrint,
			KeywordExec:     (*parser).scanExec,
			KeywordRaise:    (*parser).scanRaise,
			KeywordBreak:    (*parser).scanBreak,
			KeywordContinue: (*parser).scanContinue,
			KeywordReturn:   (*parser).scanReturn,
			KeywordPass:     (*parser).scanPass,
		},
	}
}

func (p *parser) scan() (Program, error) {
	statements := []Statement{}

	for {
		tok, err := p.reader.Peek()
		if err != nil {
			return Program{}, err
		}
		if tok.Kind == TokenEOF {
			break
		}

		statements, err = p.appendStatement(statements, 0, false)
		if err != nil {
			return Program{}, err
		}
		statements, err = p.scanSemicolonRun(statements, 0)
		if err != nil {
			return Program{}, err
		}
	}

	return Program{Statements: statements}, nil
}

func (p *parser) appendStatement(statements []Statement, level int, oneLine bool) ([]Statement, error) {
	stmt, err := p.scanStatement(level, oneLine)
	if err != nil {
		return nil, err
	}
	if _, null := stmt.(NullStatement); stmt == nil || null {
		return statements, nil
	}
	return append(statements, stmt), nil
}

func (p *parser) scanStatement(level int, oneLine bool) (Statement, error) {
	tok, err := p.reader.Peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == TokenKeyword {
		if fn, ok := p.inlineStatements[tok.Keyword]; ok {
			_, _ = p.reader.Next()
			stmt, err := fn(p, level)
			if err != nil {
				return nil, err
			}
			return stmt, p.requireStatementEnd()
		}
		if fn, ok := p.blockStatements[tok.Keyword]; ok {
			if oneLine {
				return nil, parseErrorf(tok, "'%s' statement must start its own line", tok.Keyword)
			}
			_, _ = p.reader.Next()
			stmt, err := fn(p, level)
			if err != nil {
				return nil, err
			}
			// The block consumed its closing newline; put one back so the
			// caller sees the same separator as after an inline statement.
			p.reader.PushBack(newlineToken(tok.Location))
			return stmt, nil
		}
	}

	if tok.Kind == TokenNewline && !oneLine {
		_, _ = p.reader.Next()
		return NullStatement{}, p.scanLineStart(level)
	}

	stmt, err := p.scanExpressionStatement()
	if err != nil {
		return nil, err
	}
	return stmt, p.requireStatementEnd()
}

// scanLineStart checks the indentation of a line reached after a newline
// outside of any block loop. Blank lines are accepted at any width.
func (p *parser) scanLineStart(level int) error {
	indent, err := p.reader.Peek()
	if err != nil {
		return err
	}
	if indent.Kind == TokenEOF {
		return nil
	}
	if indent.Kind != TokenIndentation {
		return parseErrorf(indent, "Expected indentation at start of line")
	}
	_, _ = p.reader.Next()

	next, err := p.reader.Peek()
	if err != nil {
		return err
	}
	if next.Kind == TokenNewline || next.Kind == TokenEOF {
		return nil
	}
	if indent.Width() > level {
		return parseErrorf(indent, "Unexpected indent")
	}
	if indent.Width() < level {
		return parseErrorf(indent, "Unindent does not match any outer indentation level")
	}
	return nil
}

func (p *parser) requireStatementEnd() error {
	tok, err := p.reader.Peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenNewline || tok.Kind == TokenEOF || tok.IsOperator(OpSemicolon) {
		return nil
	}
	return parseErrorf(tok, "Expected newline or semicolon following statement")
}

// scanSemicolonRun reads "; stmt; stmt" following a statement. A trailing
// semicolon before the end of the line is allowed.
func (p *parser) scanSemicolonRun(statements []Statement, level int) ([]Statement, error) {
	for {
		tok, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if !tok.IsOperator(OpSemicolon) {
			return statements, nil
		}
		_, _ = p.reader.Next()

		after, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if after.Kind == TokenNewline || after.Kind == TokenEOF {
			return statements, nil
		}
		statements, err = p.appendStatement(statements, level, true)
		if err != nil {
			return nil, err
		}
	}
}

// scanColonBlock reads ": body" for a block statement whose own line is
// indented to level. The body is either the rest of the line or an
// indented block. On return the newline ending the block has been
// consumed and the indentation of the following line is next.
func (p *parser) scanColonBlock(level int) ([]Statement, error) {
	if _, err := p.requireOperator(OpColon, "block"); err != nil {
		return nil, err
	}

	tok, err := p.reader.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenNewline {
		return p.scanInlineBlock(level)
	}
	_, _ = p.reader.Next()

	indent, err := p.reader.Next()
	if err != nil {
		return nil, err
	}
	for indent.Kind == TokenIndentation {
		next, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if next.Kind != TokenNewline {
			break
		}
		_, _ = p.reader.Next()
		if indent, err = p.reader.Next(); err != nil {
			return nil, err
		}
	}
	if indent.Kind != TokenIndentation {
		return nil, parseErrorf(indent, "Expected an indented block")
	}
	if next, err := p.reader.Peek(); err != nil {
		return nil, err
	} else if next.Kind == TokenEOF {
		return nil, parseErrorf(next, "Expected an indented block")
	}
	if indent.Width() <= level {
		return nil, parseErrorf(indent, "Block must indent further than the line that opens it")
	}
	blockLevel := indent.Width()

	statements, err := p.appendStatement([]Statement{}, blockLevel, false)
	if err != nil {
		return nil, err
	}

	for {
		statements, err = p.scanSemicolonRun(statements, blockLevel)
		if err != nil {
			return nil, err
		}

		tok, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return statements, nil
		}
		if tok.Kind != TokenNewline {
			return nil, parseErrorf(tok, "Expected newline or semicolon")
		}
		_, _ = p.reader.Next()

		indent, err := p.reader.Next()
		if err != nil {
			return nil, err
		}
		if indent.Kind == TokenEOF {
			return statements, nil
		}
		if indent.Kind != TokenIndentation {
			return nil, parseErrorf(indent, "Expected indentation at start of line")
		}

		next, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == TokenNewline {
			// blank line
			continue
		}
		if next.Kind == TokenEOF || indent.Width() <= level {
			p.reader.PushBack(indent)
			return statements, nil
		}
		if indent.Width() < blockLevel {
			return nil, parseErrorf(indent, "Statement in indented block indented less than previous statement")
		}
		if indent.Width() > blockLevel {
			return nil, parseErrorf(indent, "Statement in indented block indented more than previous statement")
		}

		statements, err = p.appendStatement(statements, blockLevel, false)
		if err != nil {
			return nil, err
		}
	}
}

// scanInlineBlock reads a block written on the same line as its colon:
// "while x: a; b".
func (p *parser) scanInlineBlock(level int) ([]Statement, error) {
	statements := []Statement{}
	for {
		var err error
		statements, err = p.appendStatement(statements, level, true)
		if err != nil {
			return nil, err
		}

		tok, err := p.reader.Next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.IsOperator(OpSemicolon):
			after, err := p.reader.Peek()
			if err != nil {
				return nil, err
			}
			if after.Kind == TokenNewline {
				_, _ = p.reader.Next()
				return statements, nil
			}
			if after.Kind == TokenEOF {
				return statements, nil
			}
		case tok.Kind == TokenNewline, tok.Kind == TokenEOF:
			return statements, nil
		default:
			return nil, parseErrorf(tok, "Expected newline or semicolon")
		}
	}
}

// scanContinuation checks whether the line after a block is a clause of the
// same statement, such as else or except, written at the statement's own
// level. The clause keyword is consumed when it matches; otherwise the
// indentation is left for the caller.
func (p *parser) scanContinuation(level int, kw Keyword) (bool, error) {
	indent, err := p.reader.Peek()
	if err != nil {
		return false, err
	}
	if indent.Kind != TokenIndentation {
		return false, nil
	}
	_, _ = p.reader.Next()

	next, err := p.reader.Peek()
	if err != nil {
		return false, err
	}
	if indent.Width() == level && next.IsKeyword(kw) {
		_, _ = p.reader.Next()
		return true, nil
	}
	p.reader.PushBack(indent)
	return false, nil
}

func (p *parser) scanElseBlock(level int) ([]Statement, error) {
	found, err := p.scanContinuation(level, KeywordElse)
	if err != nil || !found {
		return nil, err
	}
	return p.scanColonBlock(level)
}

// Reads after "while"
func (p *parser) scanWhile(level int) (Statement, error) {
	condition, err := p.scanExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.scanColonBlock(level)
	if err != nil {
		return nil, err
	}
	elseBlock, err := p.scanElseBlock(level)
	if err != nil {
		return nil, err
	}
	return WhileStatement{Condition: condition, Body: body, Else: elseBlock}, nil
}

// Reads after "for"
func (p *parser) scanFor(level int) (Statement, error) {
	target, err := p.scanTargetList()
	if err != nil {
		return nil, err
	}
	if _, err := p.requireKeyword(KeywordIn, "for loop"); err != nil {
		return nil, err
	}
	collection, err := p.scanExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.scanColonBlock(level)
	if err != nil {
		return nil, err
	}
	elseBlock, err := p.scanElseBlock(level)
	if err != nil {
		return nil, err
	}
	return ForStatement{
		Target:     target,
		Collection: collection,
		Body:       body,
		Else:       elseBlock,
	}, nil
}

// Reads after "if"
func (p *parser) scanIf(level int) (Statement, error) {
	stmt := IfStatement{}
	for {
		condition, err := p.scanExpression()
		if err != nil {
			return nil, err
		}
		body, err := p.scanColonBlock(level)
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, IfBranch{Condition: condition, Body: body})

		elif, err := p.scanContinuation(level, KeywordElif)
		if err != nil {
			return nil, err
		}
		if !elif {
			break
		}
	}

	elseBlock, err := p.scanElseBlock(level)
	if err != nil {
		return nil, err
	}
	stmt.Else = elseBlock
	return stmt, nil
}

// Reads after "with"
func (p *parser) scanWith(level int) (Statement, error) {
	manager, err := p.scanExpression()
	if err != nil {
		return nil, err
	}
	stmt := WithStatement{ContextManager: manager}

	as, err := p.checkKeyword(KeywordAs)
	if err != nil {
		return nil, err
	}
	if as {
		if stmt.Name, err = p.requireBareword("with statement"); err != nil {
			return nil, err
		}
	}

	if stmt.Body, err = p.scanColonBlock(level); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Reads after "class"
func (p *parser) scanClass(level int) (Statement, error) {
	name, err := p.requireBareword("class name")
	if err != nil {
		return nil, err
	}
	stmt := ClassStatement{Name: name}

	paren, err := p.checkOperator(OpLParen)
	if err != nil {
		return nil, err
	}
	if paren {
		if stmt.Bases, err = p.scanArgumentList(); err != nil {
			return nil, err
		}
	}

	if stmt.Body, err = p.scanColonBlock(level); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Reads "a, b, c)" after an opening parenthesis.
func (p *parser) scanArgumentList() ([]Expression, error) {
	var args []Expression
	for {
		closed, err := p.checkOperator(OpRParen)
		if err != nil {
			return nil, err
		}
		if closed {
			return args, nil
		}

		arg, err := p.scanExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok, err := p.reader.Next()
		if err != nil {
			return nil, err
		}
		if tok.IsOperator(OpRParen) {
			return args, nil
		}
		if !tok.IsOperator(OpComma) {
			return nil, parseErrorf(tok, "Expected ',' or ')' in argument list")
		}
	}
}

// Reads after "def"
func (p *parser) scanDef(level int) (Statement, error) {
	name, err := p.requireBareword("function name")
	if err != nil {
		return nil, err
	}
	stmt := DefStatement{Name: name}

	if _, err := p.requireOperator(OpLParen, "function definition"); err != nil {
		return nil, err
	}

	for {
		tok, err := p.reader.Next()
		if err != nil {
			return nil, err
		}
		if tok.IsOperator(OpRParen) {
			break
		}
		if stmt.StarKwargs != "" {
			return nil, parseErrorf(tok, "No parameters may follow **%s", stmt.StarKwargs)
		}

		switch {
		case tok.IsOperator(OpExponent):
			if stmt.StarKwargs, err = p.requireBareword("** parameter"); err != nil {
				return nil, err
			}
		case tok.IsOperator(OpMultiply):
			if stmt.StarArgs != "" {
				return nil, parseErrorf(tok, "Only one * parameter is allowed")
			}
			if stmt.StarArgs, err = p.requireBareword("* parameter"); err != nil {
				return nil, err
			}
		case tok.Kind == TokenBareword:
			if stmt.StarArgs != "" {
				return nil, parseErrorf(tok, "Parameter %s follows *%s", tok.Text, stmt.StarArgs)
			}
			hasDefault, err := p.checkOperator(OpAssign)
			if err != nil {
				return nil, err
			}
			if hasDefault {
				value, err := p.scanExpression()
				if err != nil {
					return nil, err
				}
				stmt.Defaults = append(stmt.Defaults, DefaultParam{Name: tok.Text, Value: value})
			} else if len(stmt.Defaults) > 0 {
				return nil, parseErrorf(tok, "Non-default parameter follows default parameter")
			} else {
				stmt.Params = append(stmt.Params, tok.Text)
			}
		default:
			return nil, parseErrorf(tok, "Expected parameter name")
		}

		sep, err := p.reader.Next()
		if err != nil {
			return nil, err
		}
		if sep.IsOperator(OpRParen) {
			break
		}
		if !sep.IsOperator(OpComma) {
			return nil, parseErrorf(sep, "Expected ',' or ')' in parameter list")
		}
	}

	if stmt.Body, err = p.scanColonBlock(level); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Reads after "try"
func (p *parser) scanTry(level int) (Statement, error) {
	body, err := p.scanColonBlock(level)
	if err != nil {
		return nil, err
	}
	stmt := TryStatement{Body: body}

	for {
		except, err := p.scanContinuation(level, KeywordExcept)
		if err != nil {
			return nil, err
		}
		if !except {
			break
		}
		handler, err := p.scanExceptHandler(level)
		if err != nil {
			return nil, err
		}
		stmt.Handlers = append(stmt.Handlers, handler)
	}

	if len(stmt.Handlers) > 0 {
		if stmt.Else, err = p.scanElseBlock(level); err != nil {
			return nil, err
		}
	}

	finally, err := p.scanContinuation(level, KeywordFinally)
	if err != nil {
		return nil, err
	}
	if finally {
		if stmt.Finally, err = p.scanColonBlock(level); err != nil {
			return nil, err
		}
	}

	if len(stmt.Handlers) == 0 && stmt.Finally == nil {
		tok, _ := p.reader.Peek()
		return nil, parseErrorf(tok, "Expected 'except' or 'finally' after try block")
	}
	return stmt, nil
}

// Reads after "except"
func (p *parser) scanExceptHandler(level int) (ExceptHandler, error) {
	handler := ExceptHandler{}

	tok, err := p.reader.Peek()
	if err != nil {
		return ExceptHandler{}, err
	}
	if !tok.IsOperator(OpColon) {
		if handler.Type, err = p.scanExpression(); err != nil {
			return ExceptHandler{}, err
		}
		named, err := p.checkKeyword(KeywordAs)
		if err != nil {
			return ExceptHandler{}, err
		}
		if !named {
			if named, err = p.checkOperator(OpComma); err != nil {
				return ExceptHandler{}, err
			}
		}
		if named {
			if handler.Name, err = p.requireBareword("except clause"); err != nil {
				return ExceptHandler{}, err
			}
		}
	}

	if handler.Body, err = p.scanColonBlock(level); err != nil {
		return ExceptHandler{}, err
	}
	return handler, nil
}

// Reads after "import"
func (p *parser) scanImport(level int) (Statement, error) {
	group := ImportGroup{}
	for {
		module, err := p.scanModuleName()
		if err != nil {
			return nil, err
		}
		stmt := ImportStatement{Module: module, Level: AbsoluteImport}

		as, err := p.checkKeyword(KeywordAs)
		if err != nil {
			return nil, err
		}
		if as {
			if stmt.Alias, err = p.requireBareword("import alias"); err != nil {
				return nil, err
			}
		}
		group.Imports = append(group.Imports, stmt)

		more, err := p.checkOperator(OpComma)
		if err != nil {
			return nil, err
		}
		if !more {
			return group, nil
		}
	}
}

// Reads a dotted module path such as "a.b.c".
func (p *parser) scanModuleName() (string, error) {
	name, err := p.requireBareword("module name")
	if err != nil {
		return "", err
	}
	for {
		dot, err := p.checkOperator(OpDot)
		if err != nil {
			return "", err
		}
		if !dot {
			return name, nil
		}
		part, err := p.requireBareword("module name")
		if err != nil {
			return "", err
		}
		name += "." + part
	}
}

// Reads after "from"
func (p *parser) scanFrom(level int) (Statement, error) {
	dots := 0
	for {
		tok, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if tok.IsOperator(OpDot) {
			dots++
		} else if tok.IsOperator(OpDoubleDot) {
			dots += 2
		} else {
			break
		}
		_, _ = p.reader.Next()
	}
	stmt := ImportStatement{Level: dots - 1}

	tok, err := p.reader.Peek()
	if err != nil {
		return nil, err
	}
	if tok.IsKeyword(KeywordImport) {
		if stmt.Level < 0 {
			return nil, parseErrorf(tok, "Invalid relative import statement")
		}
		_, _ = p.reader.Next()
	} else {
		if stmt.Module, err = p.scanModuleName(); err != nil {
			return nil, err
		}
		if _, err := p.requireKeyword(KeywordImport, "from import statement"); err != nil {
			return nil, err
		}
	}

	star, err := p.checkOperator(OpMultiply)
	if err != nil {
		return nil, err
	}
	if star {
		stmt.Names = []ImportName{{Name: "*"}}
		return ImportGroup{Imports: []ImportStatement{stmt}}, nil
	}

	paren, err := p.checkOperator(OpLParen)
	if err != nil {
		return nil, err
	}

	for {
		if paren {
			if err := p.skipLineBreaks(); err != nil {
				return nil, err
			}
		}
		name, err := p.requireBareword("from import statement")
		if err != nil {
			return nil, err
		}
		imported := ImportName{Name: name}

		as, err := p.checkKeyword(KeywordAs)
		if err != nil {
			return nil, err
		}
		if as {
			if imported.Alias, err = p.requireBareword("from import statement"); err != nil {
				return nil, err
			}
		}
		stmt.Names = append(stmt.Names, imported)

		if paren {
			if err := p.skipLineBreaks(); err != nil {
				return nil, err
			}
		}
		more, err := p.checkOperator(OpComma)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		if paren {
			if err := p.skipLineBreaks(); err != nil {
				return nil, err
			}
			tok, err := p.reader.Peek()
			if err != nil {
				return nil, err
			}
			if tok.IsOperator(OpRParen) {
				break
			}
		}
	}

	if paren {
		if _, err := p.requireOperator(OpRParen, "from import statement"); err != nil {
			return nil, err
		}
	}
	return ImportGroup{Imports: []ImportStatement{stmt}}, nil
}

// skipLineBreaks discards newlines and indentation inside brackets.
func (p *parser) skipLineBreaks() error {
	for {
		tok, err := p.reader.Peek()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNewline && tok.Kind != TokenIndentation {
			return nil
		}
		_, _ = p.reader.Next()
	}
}

// Reads after "print"
func (p *parser) scanPrint(level int) (Statement, error) {
	stmt := PrintStatement{}
	for {
		end, err := p.atStatementEnd()
		if err != nil {
			return nil, err
		}
		if end {
			return stmt, nil
		}

		value, err := p.scanExpression()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, value)
		stmt.TrailingComma = false

		comma, err := p.checkOperator(OpComma)
		if err != nil {
			return nil, err
		}
		if !comma {
			return stmt, nil
		}
		stmt.TrailingComma = true
	}
}

// Reads after "exec"
func (p *parser) scanExec(level int) (Statement, error) {
	code, err := p.scanExpression()
	if err != nil {
		return nil, err
	}
	stmt := ExecStatement{Code: code}

	in, err := p.checkKeyword(KeywordIn)
	if err != nil {
		return nil, err
	}
	if in {
		if stmt.Globals, err = p.scanExpression(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// Reads after "raise"
func (p *parser) scanRaise(level int) (Statement, error) {
	value, err := p.scanOptionalExpression()
	if err != nil {
		return nil, err
	}
	return RaiseStatement{Value: value}, nil
}

// Reads after "return"
func (p *parser) scanReturn(level int) (Statement, error) {
	value, err := p.scanOptionalExpression()
	if err != nil {
		return nil, err
	}
	return ReturnStatement{Value: value}, nil
}

func (p *parser) scanBreak(level int) (Statement, error) {
	return BreakStatement{}, nil
}

func (p *parser) scanContinue(level int) (Statement, error) {
	return ContinueStatement{}, nil
}

func (p *parser) scanPass(level int) (Statement, error) {
	return PassStatement{}, nil
}

func (p *parser) scanOptionalExpression() (Expression, error) {
	end, err := p.atStatementEnd()
	if err != nil || end {
		return nil, err
	}
	return p.scanExpressionList()
}

func (p *parser) atStatementEnd() (bool, error) {
	tok, err := p.reader.Peek()
	if err != nil {
		return false, err
	}
	return tok.Kind == TokenNewline || tok.Kind == TokenEOF || tok.IsOperator(OpSemicolon), nil
}

// scanExpressionStatement reads an expression, or an assignment chain
// "a = b = value".
func (p *parser) scanExpressionStatement() (Statement, error) {
	value, err := p.scanExpressionList()
	if err != nil {
		return nil, err
	}

	var targets []Expression
	for {
		assign, err := p.checkOperator(OpAssign)
		if err != nil {
			return nil, err
		}
		if !assign {
			break
		}
		targets = append(targets, value)
		if value, err = p.scanExpressionList(); err != nil {
			return nil, err
		}
	}

	if len(targets) == 0 {
		return ExpressionStatement{Value: value}, nil
	}
	return AssignStatement{Targets: targets, Value: value}, nil
}

// scanTargetList reads the target of a for loop or comprehension clause.
// Whether it is really assignable is left to later stages.
func (p *parser) scanTargetList() (Expression, error) {
	return p.scanExpressionList()
}

// scanExpressionList reads "a" or "a, b, ..." (an unparenthesized tuple).
func (p *parser) scanExpressionList() (Expression, error) {
	first, err := p.scanExpression()
	if err != nil {
		return nil, err
	}

	comma, err := p.checkOperator(OpComma)
	if err != nil || !comma {
		return first, err
	}

	tuple := TupleLiteral{Elements: []Expression{first}}
	for {
		tok, err := p.reader.Peek()
		if err != nil {
			return nil, err
		}
		if !startsExpression(tok) {
			return tuple, nil
		}
		elem, err := p.scanExpression()
		if err != nil {
			return nil, err
		}
		tuple.Elements = append(tuple.Elements, elem)

		comma, err := p.checkOperator(OpComma)
		if err != nil {
			return nil, err
		}
		if !comma {
			return tuple, nil
		}
	}
}

func startsExpression(tok Token) bool {
	return tok.IsLiteral() ||
		tok.Kind == TokenBareword ||
		tok.IsOperator(OpLParen) ||
		tok.IsOperator(OpLBracket) ||
		tok.IsOperator(OpLBrace)
}

// scanExpression reads a primary expression. Operators are not parsed.
func (p *parser) scanExpression() (Expression, error) {
	tok, err := p.reader.Next()
	if err != nil {
		return nil, err
	}

	if lit, ok := literalFromToken(tok); ok {
		return lit, nil
	}

	switch {
	case tok.Kind == TokenBareword:
		return Variable{Name: tok.Text}, nil
	case tok.IsOperator(OpLParen):
		return p.scanParenthetical()
	case tok.IsOperator(OpLBrace):
		return nil, parseErrorf(tok, "Dict and set literals are not supported")
	case tok.IsOperator(OpLBracket):
		return nil, parseErrorf(tok, "List literals are not supported")
	}
	return nil, parseErrorf(tok, "Unexpected token in expression context")
}

// Reads after "(": an empty tuple, a parenthesized expression, a tuple or
// a generator expression.
func (p *parser) scanParenthetical() (Expression, error) {
	closed, err := p.checkOperator(OpRParen)
	if err != nil {
		return nil, err
	}
	if closed {
		return TupleLiteral{}, nil
	}

	expr, err := p.scanExpression()
	if err != nil {
		return nil, err
	}

	tok, err := p.reader.Next()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.IsOperator(OpRParen):
		return expr, nil
	case tok.IsOperator(OpComma):
		tuple := TupleLiteral{Elements: []Expression{expr}}
		for {
			closed, err := p.checkOperator(OpRParen)
			if err != nil {
				return nil, err
			}
			if closed {
				return tuple, nil
			}

			elem, err := p.scanExpression()
			if err != nil {
				return nil, err
			}
			tuple.Elements = append(tuple.Elements, elem)

			next, err := p.reader.Next()
			if err != nil {
				return nil, err
			}
			if next.IsOperator(OpRParen) {
				return tuple, nil
			}
			if !next.IsOperator(OpComma) {
				return nil, parseErrorf(next, "Unexpected token in tuple literal")
			}
		}
	case tok.IsKeyword(KeywordFor):
		p.reader.PushBack(tok)
		clauses, err := p.scanComprehension(OpRParen, "generator")
		if err != nil {
			return nil, err
		}
		return GeneratorExpression{Body: expr, Clauses: clauses}, nil
	}
	return nil, parseErrorf(tok, "Unexpected token following opening parenthesis")
}

// scanComprehension reads "for x in y if z ..." clauses up to and
// including the closing operator.
func (p *parser) scanComprehension(closing Operator, name string) ([]ComprehensionClause, error) {
	var clauses []ComprehensionClause
	for {
		tok, err := p.reader.Next()
		if err != nil {
			return nil, err
		}

		switch {
		case tok.IsOperator(closing):
			return clauses, nil
		case tok.IsKeyword(KeywordFor):
			target, err := p.scanTargetList()
			if err != nil {
				return nil, err
			}
			if _, err := p.requireKeyword(KeywordIn, name); err != nil {
				return nil, err
			}
			collection, err := p.scanExpression()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, ForClause{Target: target, Collection: collection})
		case tok.IsKeyword(KeywordIf):
			condition, err := p.scanExpression()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, IfClause{Condition: condition})
		default:
			return nil, parseErrorf(tok, "Unexpected token within %s", name)
		}
	}
}

func (p *parser) requireOperator(op Operator, context string) (Token, error) {
	tok, err := p.reader.Next()
	if err != nil {
		return Token{}, err
	}
	if !tok.IsOperator(op) {
		return Token{}, parseErrorf(tok, "%s: expected '%s'", context, op)
	}
	return tok, nil
}

func (p *parser) requireKeyword(kw Keyword, context string) (Token, error) {
	tok, err := p.reader.Next()
	if err != nil {
		return Token{}, err
	}
	if !tok.IsKeyword(kw) {
		return Token{}, parseErrorf(tok, "%s: expected '%s'", context, kw)
	}
	return tok, nil
}

func (p *parser) requireBareword(context string) (string, error) {
	tok, err := p.reader.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != TokenBareword {
		return "", parseErrorf(tok, "%s: expected name", context)
	}
	return tok.Text, nil
}

func (p *parser) checkOperator(op Operator) (bool, error) {
	tok, err := p.reader.Peek()
	if err != nil || !tok.IsOperator(op) {
		return false, err
	}
	_, _ = p.reader.Next()
	return true, nil
}

func (p *parser) checkKeyword(kw Keyword) (bool, error) {
	tok, err := p.reader.Peek()
	if err != nil || !tok.IsKeyword(kw) {
		return false, err
	}
	_, _ = p.reader.Next()
	return true, nil
}
