// printer.go — textual renderings of values and ASTs.
//
// Three distinct renderings live here, each with its own contract:
//
//  1. FormatValue — the observable `print` contract: strings bare, numbers
//     in default decimal form (no trailing ".0"), true/false, nil, and
//     functions as an opaque placeholder. This output is stable and tested.
//  2. ExprString / StmtString — compact Lisp-style S-expressions for
//     diagnostics and position-insensitive AST comparison in tests, e.g.
//     "(* (- 123) (group 45.67))".
//  3. Pretty — the canonical source form. Pretty output re-parses to a
//     structurally equivalent AST for any parser-produced program: parens
//     are emitted exactly for Grouping nodes, so precedence shapes survive
//     the round trip, and the grammar guarantees a dangling else can only
//     reach an if through a Block (which prints its braces).
package lox

import (
	"strconv"
	"strings"
)

/* ---------- value rendering ---------- */

// FormatValue renders v the way `print` shows it.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTNum:
		return formatNumber(v.Data.(float64))
	case VTStr:
		return v.Data.(string)
	case VTFun:
		switch f := v.Data.(type) {
		case *Native:
			return "<native fn>"
		case *UserFun:
			return "<fn " + f.Decl.Name.Lexeme + ">"
		default:
			return "<fn>"
		}
	default:
		return "<unknown>"
	}
}

// formatNumber drops a trailing ".0": 123.0 renders as "123", 45.67 as
// "45.67". Plain decimal notation at every magnitude — the language has no
// exponent syntax, so an exponent form could never re-lex.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// quoteString wraps s in double quotes verbatim. The scanner has no escape
// sequences, so a scanned string can never contain '"' and the raw form
// re-lexes to the identical literal.
func quoteString(s string) string {
	return `"` + s + `"`
}

/* ---------- diagnostic S-expression form ---------- */

// ExprString renders an expression as a Lisp-style S-expression. String
// literals are quoted here (unlike FormatValue) so shapes stay unambiguous.
func ExprString(e Expr) string {
	switch x := e.(type) {
	case *LiteralExpr:
		return x.Value.String()
	case *GroupingExpr:
		return "(group " + ExprString(x.Inner) + ")"
	case *UnaryExpr:
		return "(" + x.Operator.Lexeme + " " + ExprString(x.Operand) + ")"
	case *BinaryExpr:
		return "(" + x.Operator.Lexeme + " " + ExprString(x.Left) + " " + ExprString(x.Right) + ")"
	case *LogicalExpr:
		return "(" + x.Operator.Lexeme + " " + ExprString(x.Left) + " " + ExprString(x.Right) + ")"
	case *VariableExpr:
		return x.Name.Lexeme
	case *AssignExpr:
		return "(= " + x.Name.Lexeme + " " + ExprString(x.Value) + ")"
	case *CallExpr:
		var b strings.Builder
		b.WriteString("(call " + ExprString(x.Callee))
		for _, a := range x.Args {
			b.WriteString(" " + ExprString(a))
		}
		b.WriteString(")")
		return b.String()
	default:
		return "(?)"
	}
}

// StmtString renders a statement as an S-expression.
func StmtString(s Stmt) string {
	switch x := s.(type) {
	case *ExpressionStmt:
		return "(expr " + ExprString(x.Expr) + ")"
	case *PrintStmt:
		return "(print " + ExprString(x.Expr) + ")"
	case *VarStmt:
		if x.Initializer == nil {
			return "(var " + x.Name.Lexeme + ")"
		}
		return "(var " + x.Name.Lexeme + " " + ExprString(x.Initializer) + ")"
	case *BlockStmt:
		var b strings.Builder
		b.WriteString("(block")
		for _, inner := range x.Statements {
			b.WriteString(" " + StmtString(inner))
		}
		b.WriteString(")")
		return b.String()
	case *IfStmt:
		out := "(if " + ExprString(x.Condition) + " " + StmtString(x.Then)
		if x.Else != nil {
			out += " " + StmtString(x.Else)
		}
		return out + ")"
	case *WhileStmt:
		return "(while " + ExprString(x.Condition) + " " + StmtString(x.Body) + ")"
	case *FunctionStmt:
		var b strings.Builder
		b.WriteString("(fun " + x.Name.Lexeme + " (")
		for i, p := range x.Params {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(p.Lexeme)
		}
		b.WriteString(")")
		for _, inner := range x.Body {
			b.WriteString(" " + StmtString(inner))
		}
		b.WriteString(")")
		return b.String()
	case *ReturnStmt:
		if x.Value == nil {
			return "(return)"
		}
		return "(return " + ExprString(x.Value) + ")"
	default:
		return "(?)"
	}
}

// ProgramString joins the statements' S-expressions with newlines;
// convenient for whole-program shape assertions.
func ProgramString(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = StmtString(s)
	}
	return strings.Join(parts, "\n")
}

/* ---------- canonical source form ---------- */

// Pretty renders a parsed program back to canonical Lox source.
func Pretty(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		prettyStmt(&b, s, 0)
	}
	return b.String()
}

func indentTo(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func prettyStmt(b *strings.Builder, s Stmt, depth int) {
	indentTo(b, depth)
	switch x := s.(type) {
	case *ExpressionStmt:
		b.WriteString(prettyExpr(x.Expr) + ";\n")
	case *PrintStmt:
		b.WriteString("print " + prettyExpr(x.Expr) + ";\n")
	case *VarStmt:
		if x.Initializer == nil {
			b.WriteString("var " + x.Name.Lexeme + ";\n")
		} else {
			b.WriteString("var " + x.Name.Lexeme + " = " + prettyExpr(x.Initializer) + ";\n")
		}
	case *BlockStmt:
		b.WriteString("{\n")
		for _, inner := range x.Statements {
			prettyStmt(b, inner, depth+1)
		}
		indentTo(b, depth)
		b.WriteString("}\n")
	case *IfStmt:
		b.WriteString("if (" + prettyExpr(x.Condition) + ")\n")
		prettyStmt(b, x.Then, depth+1)
		if x.Else != nil {
			indentTo(b, depth)
			b.WriteString("else\n")
			prettyStmt(b, x.Else, depth+1)
		}
	case *WhileStmt:
		b.WriteString("while (" + prettyExpr(x.Condition) + ")\n")
		prettyStmt(b, x.Body, depth+1)
	case *FunctionStmt:
		b.WriteString("fun " + x.Name.Lexeme + "(")
		for i, p := range x.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Lexeme)
		}
		b.WriteString(") {\n")
		for _, inner := range x.Body {
			prettyStmt(b, inner, depth+1)
		}
		indentTo(b, depth)
		b.WriteString("}\n")
	case *ReturnStmt:
		if x.Value == nil {
			b.WriteString("return;\n")
		} else {
			b.WriteString("return " + prettyExpr(x.Value) + ";\n")
		}
	}
}

func prettyExpr(e Expr) string {
	switch x := e.(type) {
	case *LiteralExpr:
		switch x.Value.Tag {
		case VTStr:
			return quoteString(x.Value.Data.(string))
		default:
			return FormatValue(x.Value)
		}
	case *GroupingExpr:
		return "(" + prettyExpr(x.Inner) + ")"
	case *UnaryExpr:
		return x.Operator.Lexeme + prettyExpr(x.Operand)
	case *BinaryExpr:
		return prettyExpr(x.Left) + " " + x.Operator.Lexeme + " " + prettyExpr(x.Right)
	case *LogicalExpr:
		return prettyExpr(x.Left) + " " + x.Operator.Lexeme + " " + prettyExpr(x.Right)
	case *VariableExpr:
		return x.Name.Lexeme
	case *AssignExpr:
		return x.Name.Lexeme + " = " + prettyExpr(x.Value)
	case *CallExpr:
		var b strings.Builder
		b.WriteString(prettyExpr(x.Callee) + "(")
		for i, a := range x.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(prettyExpr(a))
		}
		b.WriteString(")")
		return b.String()
	default:
		return ""
	}
}
