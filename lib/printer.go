package lib

import (
	"strconv"
	"strings"
)

// Format renders prog as source text, one statement per line with tab
// indentation. Parsing the result yields the same tree.
func Format(prog Program) string {
	pr := &printer{}
	pr.statements(prog.Statements)
	return pr.out.String()
}

// FormatExpression renders a single expression.
func FormatExpression(expr Expression) string {
	return formatExpr(expr)
}

type printer struct {
	out   strings.Builder
	depth int
}

func (pr *printer) line(s string) {
	pr.out.WriteString(strings.Repeat("\t", pr.depth))
	pr.out.WriteString(s)
	pr.out.WriteString("\n")
}

func (pr *printer) block(header string, body []Statement) {
	pr.line(header + ":")
	pr.depth++
	pr.statements(body)
	pr.depth--
}

func (pr *printer) statements(stmts []Statement) {
	for _, stmt := range stmts {
		pr.statement(stmt)
	}
}

func (pr *printer) statement(stmt Statement) {
	switch s := stmt.(type) {
	case ImportGroup:
		pr.line(formatImportGroup(s))
	case WhileStatement:
		pr.block("while "+formatExpr(s.Condition), s.Body)
		pr.elseBlock(s.Else)
	case ForStatement:
		pr.block("for "+formatTarget(s.Target)+" in "+formatExpr(s.Collection), s.Body)
		pr.elseBlock(s.Else)
	case IfStatement:
		for i, branch := range s.Branches {
			keyword := "elif "
			if i == 0 {
				keyword = "if "
			}
			pr.block(keyword+formatExpr(branch.Condition), branch.Body)
		}
		pr.elseBlock(s.Else)
	case DefStatement:
		pr.block("def "+s.Name+"("+formatParams(s)+")", s.Body)
	case WithStatement:
		header := "with " + formatExpr(s.ContextManager)
		if s.Name != "" {
			header += " as " + s.Name
		}
		pr.block(header, s.Body)
	case ClassStatement:
		header := "class " + s.Name
		if len(s.Bases) > 0 {
			header += "(" + formatExprs(s.Bases) + ")"
		}
		pr.block(header, s.Body)
	case TryStatement:
		pr.block("try", s.Body)
		for _, h := range s.Handlers {
			header := "except"
			if h.Type != nil {
				header += " " + formatExpr(h.Type)
				if h.Name != "" {
					header += " as " + h.Name
				}
			}
			pr.block(header, h.Body)
		}
		pr.elseBlock(s.Else)
		if s.Finally != nil {
			pr.block("finally", s.Finally)
		}
	case ReturnStatement:
		pr.line(withOptional("return", s.Value))
	case RaiseStatement:
		pr.line(withOptional("raise", s.Value))
	case PrintStatement:
		text := "print"
		if len(s.Values) > 0 {
			text += " " + formatExprs(s.Values)
			if s.TrailingComma {
				text += ","
			}
		}
		pr.line(text)
	case ExecStatement:
		text := "exec " + formatExpr(s.Code)
		if s.Globals != nil {
			text += " in " + formatExpr(s.Globals)
		}
		pr.line(text)
	case ExpressionStatement:
		pr.line(formatTarget(s.Value))
	case AssignStatement:
		parts := []string{}
		for _, target := range s.Targets {
			parts = append(parts, formatTarget(target))
		}
		parts = append(parts, formatTarget(s.Value))
		pr.line(strings.Join(parts, " = "))
	case PassStatement:
		pr.line("pass")
	case BreakStatement:
		pr.line("break")
	case ContinueStatement:
		pr.line("continue")
	}
}

func (pr *printer) elseBlock(body []Statement) {
	if body != nil {
		pr.block("else", body)
	}
}

func withOptional(keyword string, value Expression) string {
	if value == nil {
		return keyword
	}
	return keyword + " " + formatTarget(value)
}

func formatImportGroup(g ImportGroup) string {
	if len(g.Imports) == 1 && g.Imports[0].Names != nil {
		imp := g.Imports[0]
		from := imp.Module
		if imp.Level >= 0 {
			from = strings.Repeat(".", imp.Level+1) + from
		}
		names := []string{}
		for _, n := range imp.Names {
			names = append(names, withAlias(n.Name, n.Alias))
		}
		return "from " + from + " import " + strings.Join(names, ", ")
	}

	modules := []string{}
	for _, imp := range g.Imports {
		modules = append(modules, withAlias(imp.Module, imp.Alias))
	}
	return "import " + strings.Join(modules, ", ")
}

func withAlias(name string, alias string) string {
	if alias == "" {
		return name
	}
	return name + " as " + alias
}

func formatParams(def DefStatement) string {
	params := append([]string{}, def.Params...)
	for _, d := range def.Defaults {
		params = append(params, d.Name+"="+formatExpr(d.Value))
	}
	if def.StarArgs != "" {
		params = append(params, "*"+def.StarArgs)
	}
	if def.StarKwargs != "" {
		params = append(params, "**"+def.StarKwargs)
	}
	return strings.Join(params, ", ")
}

// formatTarget writes a non-empty tuple without parentheses, the way it
// appears as a for target or on either side of an assignment.
func formatTarget(expr Expression) string {
	if tuple, ok := expr.(TupleLiteral); ok && len(tuple.Elements) > 1 {
		return formatExprs(tuple.Elements)
	}
	return formatExpr(expr)
}

func formatExprs(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, formatExpr(e))
	}
	return strings.Join(parts, ", ")
}

func formatExpr(expr Expression) string {
	switch e := expr.(type) {
	case StringLiteral:
		return quoteString(e.Value)
	case IntegerLiteral:
		return strconv.FormatInt(e.Value, 10)
	case FloatLiteral:
		return formatDecimal(e.Value)
	case ImaginaryLiteral:
		return formatDecimal(e.Value) + "j"
	case Variable:
		return e.Name
	case TupleLiteral:
		switch len(e.Elements) {
		case 0:
			return "()"
		case 1:
			return "(" + formatExpr(e.Elements[0]) + ",)"
		}
		return "(" + formatExprs(e.Elements) + ")"
	case GeneratorExpression:
		parts := []string{formatExpr(e.Body)}
		for _, clause := range e.Clauses {
			switch c := clause.(type) {
			case ForClause:
				parts = append(parts, "for "+formatTarget(c.Target)+" in "+formatExpr(c.Collection))
			case IfClause:
				parts = append(parts, "if "+formatExpr(c.Condition))
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
	return ""
}

// formatDecimal writes a float without an exponent, since the lexer does
// not read signed exponents.
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\a", `\a`,
)

func quoteString(s string) string {
	return "'" + stringEscaper.Replace(s) + "'"
}
