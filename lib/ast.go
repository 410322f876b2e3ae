package lib

// Program is the result of a parse: the top level statements in source
// order.
type Program struct {
	Statements []Statement
}

type Statement interface {
	isStatement()
}

func (s ImportGroup) isStatement()         {}
func (s WhileStatement) isStatement()      {}
func (s ForStatement) isStatement()        {}
func (s IfStatement) isStatement()         {}
func (s DefStatement) isStatement()        {}
func (s WithStatement) isStatement()       {}
func (s ClassStatement) isStatement()      {}
func (s TryStatement) isStatement()        {}
func (s ReturnStatement) isStatement()     {}
func (s PrintStatement) isStatement()      {}
func (s ExecStatement) isStatement()       {}
func (s RaiseStatement) isStatement()      {}
func (s ExpressionStatement) isStatement() {}
func (s AssignStatement) isStatement()     {}
func (s PassStatement) isStatement()       {}
func (s BreakStatement) isStatement()      {}
func (s ContinueStatement) isStatement()   {}
func (s NullStatement) isStatement()       {}

// ImportGroup is every import named by one import or from statement.
type ImportGroup struct {
	Imports []ImportStatement
}

// AbsoluteImport is the Level of any import that is not relative.
const AbsoluteImport = -1

// ImportStatement imports Module, or when Names is set, names from Module.
// Level is the number of leading dots of a from import minus one, so
// "from . import x" has level 0 and "from a import x" has AbsoluteImport.
// Module is empty for "from . import x".
type ImportStatement struct {
	Module string
	Alias  string
	Level  int
	Names  []ImportName
}

type ImportName struct {
	Name  string
	Alias string
}

type WhileStatement struct {
	Condition Expression
	Body      []Statement
	Else      []Statement
}

type ForStatement struct {
	Target     Expression
	Collection Expression
	Body       []Statement
	Else       []Statement
}

type IfStatement struct {
	Branches []IfBranch
	Else     []Statement
}

// IfBranch is the if clause or one of the elif clauses of an if statement.
type IfBranch struct {
	Condition Expression
	Body      []Statement
}

type DefStatement struct {
	Name       string
	Params     []string
	Defaults   []DefaultParam
	StarArgs   string
	StarKwargs string
	Body       []Statement
}

type DefaultParam struct {
	Name  string
	Value Expression
}

type WithStatement struct {
	ContextManager Expression
	Name           string
	Body           []Statement
}

type ClassStatement struct {
	Name  string
	Bases []Expression
	Body  []Statement
}

type TryStatement struct {
	Body     []Statement
	Handlers []ExceptHandler
	Else     []Statement
	Finally  []Statement
}

// ExceptHandler is one except clause. A bare "except:" has a nil Type.
type ExceptHandler struct {
	Type Expression
	Name string
	Body []Statement
}

// ReturnStatement returns Value, which is nil for a bare return.
type ReturnStatement struct {
	Value Expression
}

type PrintStatement struct {
	Values        []Expression
	TrailingComma bool
}

type ExecStatement struct {
	Code    Expression
	Globals Expression
}

// RaiseStatement raises Value, or re-raises when Value is nil.
type RaiseStatement struct {
	Value Expression
}

type ExpressionStatement struct {
	Value Expression
}

// AssignStatement is "t1 = t2 = ... = value".
type AssignStatement struct {
	Targets []Expression
	Value   Expression
}

type PassStatement struct{}

type BreakStatement struct{}

type ContinueStatement struct{}

// NullStatement stands for a line with no statement on it. The parser
// drops it rather than adding it to a statement list.
type NullStatement struct{}

type Expression interface {
	isExpression()
}

func (e StringLiteral) isExpression()       {}
func (e IntegerLiteral) isExpression()      {}
func (e FloatLiteral) isExpression()        {}
func (e ImaginaryLiteral) isExpression()    {}
func (e Variable) isExpression()            {}
func (e TupleLiteral) isExpression()        {}
func (e GeneratorExpression) isExpression() {}

type StringLiteral struct {
	Value string
}

type IntegerLiteral struct {
	Value int64
}

type FloatLiteral struct {
	Value float64
}

// ImaginaryLiteral is a pure imaginary number; Value is its magnitude.
type ImaginaryLiteral struct {
	Value float64
}

type Variable struct {
	Name string
}

type TupleLiteral struct {
	Elements []Expression
}

type GeneratorExpression struct {
	Body    Expression
	Clauses []ComprehensionClause
}

// ComprehensionClause is either a ForClause or an IfClause.
type ComprehensionClause interface {
	isClause()
}

func (c ForClause) isClause() {}
func (c IfClause) isClause()  {}

type ForClause struct {
	Target     Expression
	Collection Expression
}

type IfClause struct {
	Condition Expression
}

// literalFromToken converts a literal token into its expression node.
func literalFromToken(tok Token) (Expression, bool) {
	switch tok.Kind {
	case TokenString:
		return StringLiteral{Value: tok.Text}, true
	case TokenInteger:
		return IntegerLiteral{Value: tok.Int}, true
	case TokenFloat:
		return FloatLiteral{Value: tok.Float}, true
	case TokenImaginary:
		return ImaginaryLiteral{Value: tok.Float}, true
	}
	return nil, false
}
