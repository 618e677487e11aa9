// interpreter_ops.go — expression evaluation and operator semantics.
//
// Operator policy (all failures are *RuntimeError attributed to the operator
// token):
//   - Arithmetic (+ - * /) needs two numbers, except + which also takes two
//     strings (concatenation). Any other mix is ErrExpectedNumber.
//   - Comparison (< <= > >=) needs two numbers, same error policy.
//   - == and != use structural equality and never fail.
//   - Division by zero follows IEEE float semantics (±Inf, NaN) on purpose;
//     it is not an error.
//   - `and`/`or` short-circuit and yield the last operand actually
//     evaluated, uncoerced — `nil or "x"` is the string "x", not true.
//   - Calls attribute NotCallable/InvalidArity to the closing paren token.
//
// Variable references resolve by walking the frame chain at evaluation time
// (O(depth) per access). There is no static-resolution pass; this is a
// documented simplification, not an oversight.
package lox

// Evaluate reduces an expression to a runtime value.
func (ip *Interpreter) Evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil

	case *GroupingExpr:
		return ip.Evaluate(e.Inner)

	case *UnaryExpr:
		return ip.evalUnary(e)

	case *BinaryExpr:
		return ip.evalBinary(e)

	case *LogicalExpr:
		return ip.evalLogical(e)

	case *VariableExpr:
		if v, ok := ip.env.Fetch(e.Name.Lexeme); ok {
			return v, nil
		}
		return Nil, runtimeErr(e.Name, ErrUndeclaredIdentifier)

	case *AssignExpr:
		value, err := ip.Evaluate(e.Value)
		if err != nil {
			return Nil, err
		}
		if !ip.env.Assign(e.Name.Lexeme, value) {
			return Nil, runtimeErr(e.Name, ErrUndeclaredIdentifier)
		}
		// assignment is an expression: it yields the assigned value
		return value, nil

	case *CallExpr:
		return ip.evalCall(e)

	default:
		// unreachable with parser-produced ASTs
		return Nil, nil
	}
}

func (ip *Interpreter) evalUnary(e *UnaryExpr) (Value, error) {
	operand, err := ip.Evaluate(e.Operand)
	if err != nil {
		return Nil, err
	}
	switch e.Operator.Type {
	case MINUS:
		if operand.Tag != VTNum {
			return Nil, runtimeErr(e.Operator, ErrExpectedNumber)
		}
		return Num(-operand.Data.(float64)), nil
	default: // BANG
		return Bool(!operand.Truthy()), nil
	}
}

func (ip *Interpreter) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := ip.Evaluate(e.Left)
	if err != nil {
		return Nil, err
	}
	right, err := ip.Evaluate(e.Right)
	if err != nil {
		return Nil, err
	}

	switch e.Operator.Type {
	case PLUS:
		if left.Tag == VTStr && right.Tag == VTStr {
			return Str(left.Data.(string) + right.Data.(string)), nil
		}
		return evalArithmetic(e.Operator, left, right)
	case MINUS, MULT, DIV:
		return evalArithmetic(e.Operator, left, right)
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return evalComparison(e.Operator, left, right)
	case EQ:
		return Bool(left.Equal(right)), nil
	default: // NEQ
		return Bool(!left.Equal(right)), nil
	}
}

func evalArithmetic(op Token, left, right Value) (Value, error) {
	if left.Tag != VTNum || right.Tag != VTNum {
		return Nil, runtimeErr(op, ErrExpectedNumber)
	}
	l, r := left.Data.(float64), right.Data.(float64)
	switch op.Type {
	case PLUS:
		return Num(l + r), nil
	case MINUS:
		return Num(l - r), nil
	case MULT:
		return Num(l * r), nil
	default: // DIV; x/0 yields ±Inf or NaN by design
		return Num(l / r), nil
	}
}

func evalComparison(op Token, left, right Value) (Value, error) {
	if left.Tag != VTNum || right.Tag != VTNum {
		return Nil, runtimeErr(op, ErrExpectedNumber)
	}
	l, r := left.Data.(float64), right.Data.(float64)
	switch op.Type {
	case LESS:
		return Bool(l < r), nil
	case LESS_EQ:
		return Bool(l <= r), nil
	case GREATER:
		return Bool(l > r), nil
	default: // GREATER_EQ
		return Bool(l >= r), nil
	}
}

func (ip *Interpreter) evalLogical(e *LogicalExpr) (Value, error) {
	left, err := ip.Evaluate(e.Left)
	if err != nil {
		return Nil, err
	}
	if e.Operator.Type == OR {
		if left.Truthy() {
			return left, nil
		}
	} else {
		if !left.Truthy() {
			return left, nil
		}
	}
	return ip.Evaluate(e.Right)
}

func (ip *Interpreter) evalCall(e *CallExpr) (Value, error) {
	callee, err := ip.Evaluate(e.Callee)
	if err != nil {
		return Nil, err
	}
	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := ip.Evaluate(a)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}
	if callee.Tag != VTFun {
		return Nil, runtimeErr(e.Paren, ErrNotCallable)
	}
	fn := callee.Data.(Callable)
	if len(args) != fn.Arity() {
		return Nil, arityErr(e.Paren, fn.Arity(), len(args))
	}
	return fn.Call(ip, args)
}
