package lib

// Node is the plain data form of a token or tree node, suitable for JSON
// or YAML encoding.
type Node map[string]interface{}

func DumpTokens(tokens []Token) []Node {
	out := make([]Node, 0, len(tokens))
	for _, tok := range tokens {
		n := Node{
			"kind": tok.Kind.String(),
			"line": tok.Location.Line,
			"col":  tok.Location.Col,
		}
		switch tok.Kind {
		case TokenKeyword, TokenOperator, TokenBareword:
			n["text"] = tok.String()
		case TokenString:
			n["value"] = tok.Text
		case TokenInteger:
			n["value"] = tok.Int
		case TokenIndentation:
			n["width"] = tok.Width()
		case TokenFloat, TokenImaginary:
			n["value"] = tok.Float
		}
		out = append(out, n)
	}
	return out
}

func DumpProgram(prog Program) Node {
	return Node{
		"type":       "Program",
		"statements": dumpStatements(prog.Statements),
	}
}

func dumpStatements(stmts []Statement) []Node {
	if stmts == nil {
		return nil
	}
	out := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, dumpStatement(s))
	}
	return out
}

func dumpStatement(stmt Statement) Node {
	switch s := stmt.(type) {
	case ImportGroup:
		imports := []Node{}
		for _, imp := range s.Imports {
			n := Node{"type": "Import", "module": imp.Module, "level": imp.Level}
			if imp.Alias != "" {
				n["alias"] = imp.Alias
			}
			if imp.Names != nil {
				names := []Node{}
				for _, name := range imp.Names {
					names = append(names, Node{"name": name.Name, "alias": name.Alias})
				}
				n["names"] = names
			}
			imports = append(imports, n)
		}
		return Node{"type": "ImportGroup", "imports": imports}
	case WhileStatement:
		return Node{
			"type":      "While",
			"condition": dumpExpression(s.Condition),
			"body":      dumpStatements(s.Body),
			"else":      dumpStatements(s.Else),
		}
	case ForStatement:
		return Node{
			"type":       "For",
			"target":     dumpExpression(s.Target),
			"collection": dumpExpression(s.Collection),
			"body":       dumpStatements(s.Body),
			"else":       dumpStatements(s.Else),
		}
	case IfStatement:
		branches := []Node{}
		for _, b := range s.Branches {
			branches = append(branches, Node{
				"condition": dumpExpression(b.Condition),
				"body":      dumpStatements(b.Body),
			})
		}
		return Node{"type": "If", "branches": branches, "else": dumpStatements(s.Else)}
	case DefStatement:
		defaults := []Node{}
		for _, d := range s.Defaults {
			defaults = append(defaults, Node{"name": d.Name, "value": dumpExpression(d.Value)})
		}
		return Node{
			"type":       "Def",
			"name":       s.Name,
			"params":     s.Params,
			"defaults":   defaults,
			"starArgs":   s.StarArgs,
			"starKwargs": s.StarKwargs,
			"body":       dumpStatements(s.Body),
		}
	case WithStatement:
		return Node{
			"type":           "With",
			"contextManager": dumpExpression(s.ContextManager),
			"name":           s.Name,
			"body":           dumpStatements(s.Body),
		}
	case ClassStatement:
		return Node{
			"type":  "Class",
			"name":  s.Name,
			"bases": dumpExpressions(s.Bases),
			"body":  dumpStatements(s.Body),
		}
	case TryStatement:
		handlers := []Node{}
		for _, h := range s.Handlers {
			handlers = append(handlers, Node{
				"type": dumpExpression(h.Type),
				"name": h.Name,
				"body": dumpStatements(h.Body),
			})
		}
		return Node{
			"type":     "Try",
			"body":     dumpStatements(s.Body),
			"handlers": handlers,
			"else":     dumpStatements(s.Else),
			"finally":  dumpStatements(s.Finally),
		}
	case ReturnStatement:
		return Node{"type": "Return", "value": dumpExpression(s.Value)}
	case RaiseStatement:
		return Node{"type": "Raise", "value": dumpExpression(s.Value)}
	case PrintStatement:
		return Node{"type": "Print", "values": dumpExpressions(s.Values), "trailingComma": s.TrailingComma}
	case ExecStatement:
		return Node{"type": "Exec", "code": dumpExpression(s.Code), "globals": dumpExpression(s.Globals)}
	case ExpressionStatement:
		return Node{"type": "Expression", "value": dumpExpression(s.Value)}
	case AssignStatement:
		return Node{"type": "Assign", "targets": dumpExpressions(s.Targets), "value": dumpExpression(s.Value)}
	case PassStatement:
		return Node{"type": "Pass"}
	case BreakStatement:
		return Node{"type": "Break"}
	case ContinueStatement:
		return Node{"type": "Continue"}
	}
	return Node{"type": "Null"}
}

func dumpExpressions(exprs []Expression) []Node {
	out := []Node{}
	for _, e := range exprs {
		out = append(out, dumpExpression(e))
	}
	return out
}

func dumpExpression(expr Expression) Node {
	switch e := expr.(type) {
	case nil:
		return nil
	case StringLiteral:
		return Node{"type": "String", "value": e.Value}
	case IntegerLiteral:
		return Node{"type": "Integer", "value": e.Value}
	case FloatLiteral:
		return Node{"type": "Float", "value": e.Value}
	case ImaginaryLiteral:
		return Node{"type": "Imaginary", "value": e.Value}
	case Variable:
		return Node{"type": "Variable", "name": e.Name}
	case TupleLiteral:
		return Node{"type": "Tuple", "elements": dumpExpressions(e.Elements)}
	case GeneratorExpression:
		clauses := []Node{}
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case ForClause:
				clauses = append(clauses, Node{
					"type":       "For",
					"target":     dumpExpression(c.Target),
					"collection": dumpExpression(c.Collection),
				})
			case IfClause:
				clauses = append(clauses, Node{"type": "If", "condition": dumpExpression(c.Condition)})
			}
		}
		return Node{"type": "Generator", "body": dumpExpression(e.Body), "clauses": clauses}
	}
	return nil
}
