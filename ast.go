// ast.go — the Expr and Stmt node families.
//
// Pure data: nodes are built bottom-up by the parser and never mutated after
// construction. Every recursive field is an exclusively-owned subtree (no
// sharing, no cycles). Nodes keep the Token that best attributes them for
// diagnostics — operators keep their operator token, calls keep the closing
// paren, declarations keep the name.
//
// Textual renderings (diagnostic S-expression form and the canonical source
// form) live in printer.go.
package lox

// Expr is the expression variant family. The empty marker method keeps the
// closed set closed: only types in this file can be Exprs.
type Expr interface{ exprNode() }

// LiteralExpr carries an already-decoded runtime value (number, string,
// boolean, or nil).
type LiteralExpr struct {
	Value Value
}

// GroupingExpr is an explicitly parenthesized sub-expression. Kept as its own
// node so the canonical printer can reproduce the parentheses.
type GroupingExpr struct {
	Inner Expr
}

// UnaryExpr is prefix "-" or "!".
type UnaryExpr struct {
	Operator Token
	Operand  Expr
}

// BinaryExpr covers arithmetic, comparison, and equality operators.
type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// LogicalExpr is short-circuit "and"/"or". Separate from BinaryExpr because
// the right operand is evaluated conditionally.
type LogicalExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// VariableExpr reads the binding named by Name.
type VariableExpr struct {
	Name Token
}

// AssignExpr writes the nearest visible binding named by Name. Assignment is
// an expression; it evaluates to the assigned value.
type AssignExpr struct {
	Name  Token
	Value Expr
}

// CallExpr invokes Callee with Args evaluated left to right. Paren is the
// closing ')' token, used to attribute call-site runtime errors.
type CallExpr struct {
	Callee Expr
	Paren  Token
	Args   []Expr
}

func (*LiteralExpr) exprNode()  {}
func (*GroupingExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*LogicalExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*AssignExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}

// Stmt is the statement variant family.
type Stmt interface{ stmtNode() }

// ExpressionStmt evaluates Expr for its value (surfaced by the REPL) and side
// effects.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt writes the human-readable rendering of its operand to the
// interpreter's output.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares Name in the innermost scope. Initializer may be nil, in
// which case the variable starts out nil.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

// BlockStmt owns an ordered statement sequence executed in a child scope.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt; Else may be nil.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

// WhileStmt re-evaluates Condition before each iteration. `for` loops are
// desugared into this shape at parse time and have no node of their own.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// FunctionStmt declares a named function. Body is the statement list of the
// function's block; Params are the parameter name tokens.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

// ReturnStmt; Value may be nil (returns nil). Keyword is kept for diagnostics.
type ReturnStmt struct {
	Keyword Token
	Value   Expr
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
