// interpreter_exec.go — statement execution.
//
// Executes statements for effect against the current environment chain.
// There is no explicit state machine; control flow is the recursive call
// structure itself. Recursion depth is bounded by AST nesting and by
// language-level recursive calls — unbounded recursion exhausts the Go stack,
// which is an accepted failure mode of this engine, not a guarded one.
//
// The `return` statement performs a non-local exit from arbitrarily deep
// statement execution back to the enclosing function-call boundary. It rides
// the ordinary error channel as a dedicated *returnSignal value so that the
// unwind is exact: every intermediate frame treats it as "stop executing",
// and UserFun.Call (interpreter.go) is the single interception point that
// turns it back into a success value. It is not a diagnostic and never
// reaches the API surface; Interpret converts a stray top-level return into
// an early program exit carrying its value.
package lox

import "fmt"

// returnSignal carries a return value up to the function-call boundary.
// It implements error only to travel the propagation channel.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return outside function" }

// Execute runs one statement. Expression statements yield their value (the
// REPL surfaces it); every other statement yields Nil.
func (ip *Interpreter) Execute(stmt Stmt) (Value, error) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return ip.Evaluate(s.Expr)

	case *PrintStmt:
		v, err := ip.Evaluate(s.Expr)
		if err != nil {
			return Nil, err
		}
		fmt.Fprintln(ip.Stdout, FormatValue(v))
		return Nil, nil

	case *VarStmt:
		value := Nil
		if s.Initializer != nil {
			var err error
			value, err = ip.Evaluate(s.Initializer)
			if err != nil {
				return Nil, err
			}
		}
		ip.env.Define(s.Name.Lexeme, value)
		return Nil, nil

	case *BlockStmt:
		return Nil, ip.executeBlock(s.Statements, NewEnv(ip.env))

	case *IfStmt:
		cond, err := ip.Evaluate(s.Condition)
		if err != nil {
			return Nil, err
		}
		if cond.Truthy() {
			_, err = ip.Execute(s.Then)
		} else if s.Else != nil {
			_, err = ip.Execute(s.Else)
		}
		return Nil, err

	case *WhileStmt:
		for {
			cond, err := ip.Evaluate(s.Condition)
			if err != nil {
				return Nil, err
			}
			if !cond.Truthy() {
				return Nil, nil
			}
			if _, err := ip.Execute(s.Body); err != nil {
				return Nil, err
			}
		}

	case *FunctionStmt:
		// the closure captures the environment active right here
		fn := &UserFun{Decl: s, Closure: ip.env}
		ip.env.Define(s.Name.Lexeme, FunVal(fn))
		return Nil, nil

	case *ReturnStmt:
		value := Nil
		if s.Value != nil {
			var err error
			value, err = ip.Evaluate(s.Value)
			if err != nil {
				return Nil, err
			}
		}
		return Nil, &returnSignal{value: value}

	default:
		// unreachable with parser-produced ASTs
		return Nil, nil
	}
}

// executeBlock runs stmts in env, restoring the previous current-environment
// pointer on every exit path — success, runtime error, or return unwind.
func (ip *Interpreter) executeBlock(stmts []Stmt, env *Env) error {
	prev := ip.env
	ip.env = env
	defer func() { ip.env = prev }()

	for _, s := range stmts {
		if _, err := ip.Execute(s); err != nil {
			return err
		}
	}
	return nil
}
