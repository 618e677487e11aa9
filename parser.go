// parser.go — recursive-descent parser for Lox.
//
// OVERVIEW
// --------
// Consumes the token stream produced by lexer.go and builds the typed AST of
// ast.go. A program is a sequence of declarations; a declaration is a
// function declaration, a variable declaration, or a statement.
//
// Expression grammar, lowest to highest precedence:
//
//	assignment → logic_or → logic_and → equality → comparison
//	           → term (+ -) → factor (* /) → unary (! -) → call → primary
//
// Every binary level is left-associative via a loop folding into a
// left-leaning Binary/Logical node; unary and assignment recurse for right
// associativity.
//
// ERROR RECOVERY (panic mode)
// ---------------------------
// On a syntax error the failing declaration is discarded and the parser
// advances token-by-token until a statement boundary: just past a ';' or in
// front of a token that begins a declaration (class/fun/var/for/if/while/
// print/return). Recovery runs per declaration at top level AND inside
// blocks, so one bad statement neither aborts its enclosing block nor leaks
// the block's '}' into the outer parse. All syntax errors found across one
// parse are collected and returned together; parsing never stops at the
// first error. Two kinds of
// error are recorded WITHOUT entering panic mode because the parser is still
// in a consistent state: an invalid assignment target (reported at the '='
// token) and a parameter/argument list exceeding 255 entries.
//
// Corner cases pinned down here:
//   - A token stream holding only EOF parses as a single no-op `nil`
//     expression statement rather than an empty program.
//   - `for` is desugared at parse time into initializer + while with the
//     increment appended to the loop body; the body subtree is assembled
//     once, never duplicated.
//
// INTERACTIVE MODE
// ----------------
// The REPL needs to distinguish "wrong" from "not finished yet". In
// interactive mode an error produced at the EOF token is flagged Incomplete;
// IsIncomplete (errors.go) lets the driver prompt for a continuation line.
//
// Dependencies: lexer.go (tokens), ast.go (nodes), errors.go (*ParseError).
package lox

import "errors"

// maxArity caps parameter and argument list length.
const maxArity = 255

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parser consumes a token stream and produces statements plus collected
// syntax errors.
type Parser struct {
	toks        []Token
	i           int
	errs        []*ParseError
	interactive bool
}

// NewParser creates a parser over toks. The slice must be terminated by an
// EOF token (lexer.Scan guarantees this).
func NewParser(toks []Token) *Parser { return &Parser{toks: toks} }

// Parse parses a whole program. It returns the statements that parsed
// cleanly and every syntax error encountered; the two are independent — a
// program with errors may still yield the statements around them.
func (p *Parser) Parse() ([]Stmt, []*ParseError) {
	if len(p.toks) == 1 {
		// Empty input is a single no-op statement, not an empty program.
		return []Stmt{&ExpressionStmt{Expr: &LiteralExpr{Value: Nil}}}, nil
	}

	var program []Stmt
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		program = append(program, stmt)
	}
	return program, p.errs
}

// ParseSource scans and parses src in one call. Multiple syntax errors are
// joined into a single error value; the driver can also call the Lexer and
// Parser separately to keep them structured.
func ParseSource(src string) ([]Stmt, error) {
	toks, err := ScanSource(src)
	if err != nil {
		return nil, err
	}
	stmts, perrs := NewParser(toks).Parse()
	if len(perrs) > 0 {
		joined := make([]error, len(perrs))
		for i, e := range perrs {
			joined[i] = e
		}
		return stmts, errors.Join(joined...)
	}
	return stmts, nil
}

// ParseSourceInteractive parses in REPL-friendly mode: errors caused purely
// by running out of input satisfy IsIncomplete instead of reading as hard
// failures.
func ParseSourceInteractive(src string) ([]Stmt, error) {
	toks, err := ScanSource(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks, interactive: true}
	stmts, perrs := p.Parse()
	for _, e := range perrs {
		if e.Incomplete {
			return nil, e
		}
	}
	if len(perrs) > 0 {
		return stmts, perrs[0]
	}
	return stmts, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *Parser) prev() Token { return p.toks[p.i-1] }

func (p *Parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.i++
	}
	return p.prev()
}

// need consumes a token of type t or fails with msg at the current token.
func (p *Parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *Parser) errAt(tok Token, msg string) *ParseError {
	return &ParseError{
		Token:      tok,
		Msg:        msg,
		Incomplete: p.interactive && tok.Type == EOF,
	}
}

func (p *Parser) record(err error) {
	if pe, ok := err.(*ParseError); ok {
		p.errs = append(p.errs, pe)
		return
	}
	p.errs = append(p.errs, &ParseError{Token: p.peek(), Msg: err.Error()})
}

// synchronize discards tokens until a statement boundary so parsing can
// resume without cascading errors.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.prev().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}

// ─────────────────────────────── declarations ───────────────────────────────

func (p *Parser) declaration() (Stmt, error) {
	switch {
	case p.match(FUN):
		return p.function()
	case p.match(VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) function() (Stmt, error) {
	name, err := p.need(ID, "expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(RROUND) {
		for {
			if len(params) >= maxArity {
				// recorded, not thrown: the parse is still coherent
				p.record(p.errAt(p.peek(), "cannot have more than 255 parameters"))
			}
			param, err := p.need(ID, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.need(LCURLY, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockStatements()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.need(ID, "expected variable name")
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: init}, nil
}

// ──────────────────────────────── statements ────────────────────────────────

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(PRINT):
		return p.printStatement()
	case p.match(LCURLY):
		stmts, err := p.blockStatements()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	case p.match(IF):
		return p.ifStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(FOR):
		return p.forStatement()
	case p.match(RETURN):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after value"); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: expr}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: expr}, nil
}

// blockStatements parses declarations until '}'. The caller has consumed '{'.
// Recovery is per declaration, as in Parse: a bad statement inside the block
// is recorded and skipped without giving up on the block, so the trailing '}'
// closes it instead of leaking into the outer parse.
func (p *Parser) blockStatements() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RCURLY) && !p.atEnd() {
		s, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, s)
	}
	if _, err := p.need(RCURLY, "expected '}' after block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.need(LROUND, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.need(LROUND, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: cond, Body: body}, nil
}

// forStatement desugars `for (init; cond; incr) body` into
//
//	{ init; while (cond) { body; incr; } }
//
// There is no For node; the evaluator only ever sees the while form. The
// parsed body subtree is placed into the new block once.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.need(LROUND, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		// no initializer
	case p.match(VAR):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RROUND) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(RROUND, "expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExpressionStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: Bool(true)}
	}
	var loop Stmt = &WhileStmt{Condition: cond, Body: body}
	if init != nil {
		loop = &BlockStmt{Statements: []Stmt{init, loop}}
	}
	return loop, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.prev()
	var value Expr
	var err error
	if !p.check(SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

// ─────────────────────────────── expressions ────────────────────────────────

func (p *Parser) expression() (Expr, error) { return p.assignment() }

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		equals := p.prev()
		value, err := p.assignment() // right-associative
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: v.Name, Value: value}, nil
		}
		// Only a bare variable reference may be assigned to. Recorded, not
		// thrown: the expression itself parsed fine.
		p.record(p.errAt(equals, "invalid assignment target"))
		return expr, nil
	}
	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(EQ, NEQ) {
		op := p.prev()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(GREATER, GREATER_EQ, LESS, LESS_EQ) {
		op := p.prev()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(MINUS, PLUS) {
		op := p.prev()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(DIV, MULT) {
		op := p.prev()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: op, Operand: operand}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(LROUND) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RROUND) {
		for {
			if len(args) >= maxArity {
				p.record(p.errAt(p.peek(), "cannot have more than 255 arguments"))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(COMMA) {
				break
			}
		}
	}
	paren, err := p.need(RROUND, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(FALSE):
		return &LiteralExpr{Value: Bool(false)}, nil
	case p.match(TRUE):
		return &LiteralExpr{Value: Bool(true)}, nil
	case p.match(NIL):
		return &LiteralExpr{Value: Nil}, nil
	case p.match(NUMBER):
		return &LiteralExpr{Value: Num(p.prev().Literal.(float64))}, nil
	case p.match(STRING):
		return &LiteralExpr{Value: Str(p.prev().Literal.(string))}, nil
	case p.match(ID):
		return &VariableExpr{Name: p.prev()}, nil
	case p.match(LROUND):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: inner}, nil
	default:
		return nil, p.errAt(p.peek(), "expected expression")
	}
}
