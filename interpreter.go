// interpreter.go — PUBLIC API SURFACE for the Lox interpreter.
//
// OVERVIEW
// ========
// This file exposes the public surface of the Lox runtime: the value model,
// lexical environments, the callable abstraction, and the Interpreter entry
// points. The statement/expression walking lives in interpreter_exec.go and
// interpreter_ops.go.
//
// VALUES
// ------
// `Value` is a small tagged sum: nil, boolean, number (float64), string, and
// function. Truthiness is the language invariant, not Go's: only nil and
// false are falsy — 0 and "" are truthy. Equality is structural for the
// scalar kinds, nil equals nil, and function values are NEVER equal, not
// even to themselves (an intentional, observable policy).
//
// ENVIRONMENTS & CLOSURES
// -----------------------
// Lox code evaluates in environments (`*Env`) forming a lexical chain via a
// parent link. Define binds in the innermost frame (shadowing); Assign and
// Fetch walk outward to the nearest binding. A frame is referenced both by
// the interpreter's current-environment pointer and by every closure that
// captured it at definition time; Go's garbage collector keeps a frame alive
// for exactly as long as any of those referrers exists, which is the whole
// lifetime requirement — evaluation is single-threaded, so no locking.
//
// ENTRY POINTS
// ------------
//   - NewInterpreter() — globals pre-populated with the core natives
//     (builtin_core.go) and an injectable Stdout for `print`.
//   - Interpret(stmts) — execute a parsed program, returning the last
//     successfully produced value (the REPL echoes it).
//   - RunSource(name, src) — scan + parse + interpret in one call, with all
//     diagnostics wrapped as caret snippets labeled by name.
//
// The Interpreter's Globals persist across calls, so a REPL driver can feed
// it one input at a time without losing bindings.
//
// ERRORS
// ------
// All failures surface as explicit error returns carrying the structured
// types of errors.go. The `return` control transfer travels the same channel
// as a private *returnSignal and is intercepted at the function-call
// boundary; it never escapes to a caller of this API.
package lox

import (
	"fmt"
	"io"
	"os"
)

////////////////////////////////////////////////////////////////////////////////
//                              PUBLIC TYPES & CTORS
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates the runtime kinds a Value may hold. The tag determines
// which Go type Value.Data carries.
type ValueTag int

const (
	VTNil  ValueTag = iota // nil (no payload)
	VTBool                 // bool
	VTNum                  // float64
	VTStr                  // string
	VTFun                  // Callable (native or user-defined)
)

// Value is the universal runtime carrier used by the evaluator.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Value       { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value     { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value      { return Value{Tag: VTStr, Data: s} }
func FunVal(c Callable) Value { return Value{Tag: VTFun, Data: c} }

// Truthy maps every value to a boolean for conditionals: nil and false are
// falsy, everything else (including 0 and "") is truthy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTNil:
		return false
	case VTBool:
		return v.Data.(bool)
	default:
		return true
	}
}

// Equal implements the language's == operator. Structural for scalars,
// nil == nil, and functions compare unequal to everything including
// themselves.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTNil:
		return true
	case VTBool:
		return v.Data.(bool) == o.Data.(bool)
	case VTNum:
		return v.Data.(float64) == o.Data.(float64)
	case VTStr:
		return v.Data.(string) == o.Data.(string)
	default:
		// functions: never equal
		return false
	}
}

// String renders a debug representation (strings quoted). The print
// statement uses FormatValue (printer.go) instead, which leaves strings
// bare.
func (v Value) String() string {
	if v.Tag == VTStr {
		return fmt.Sprintf("%q", v.Data.(string))
	}
	return FormatValue(v)
}

// Env is a lexical environment frame with a parent link. Lookups walk
// parent-ward.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new, empty frame enclosed by parent (which may be nil for
// the global frame).
func NewEnv(parent *Env) *Env { return &Env{parent: parent, table: make(map[string]Value)} }

// Define binds name to v in this frame, shadowing any outer binding. It
// never fails; redefining in the same frame overwrites.
func (e *Env) Define(name string, v Value) { e.table[name] = v }

// Assign overwrites the nearest existing binding of name, walking outward.
// It reports whether a binding was found; on false nothing was created.
func (e *Env) Assign(name string, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return true
		}
	}
	return false
}

// Fetch reads the nearest visible binding of name, walking outward.
func (e *Env) Fetch(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Callable is the capability shared by native and user-defined functions so
// the evaluator can invoke either uniformly.
type Callable interface {
	// Arity returns the fixed number of arguments the callable accepts.
	Arity() int
	// Call executes with exactly Arity() arguments (the evaluator enforces
	// the count beforehand) and returns a value or propagates an error.
	Call(ip *Interpreter, args []Value) (Value, error)
}

// Native wraps a host-provided computation. Natives never fail.
type Native struct {
	Name   string
	ArityN int
	Impl   func(args []Value) Value
}

func (n *Native) Arity() int { return n.ArityN }

func (n *Native) Call(_ *Interpreter, args []Value) (Value, error) {
	return n.Impl(args), nil
}

// UserFun is a user-defined function plus the environment frame that was
// active at its definition site. Capturing that frame — not the caller's —
// is what makes closures lexical rather than dynamic.
type UserFun struct {
	Decl    *FunctionStmt
	Closure *Env
}

func (f *UserFun) Arity() int { return len(f.Decl.Params) }

// Call runs the body in a fresh frame enclosing the definition-time
// environment, with parameters bound to the argument values. A returnSignal
// raised anywhere in the body is intercepted here — exactly once — and
// converted back into an ordinary value; genuine errors pass through.
func (f *UserFun) Call(ip *Interpreter, args []Value) (Value, error) {
	env := NewEnv(f.Closure)
	for i, p := range f.Decl.Params {
		env.Define(p.Lexeme, args[i])
	}
	if err := ip.executeBlock(f.Decl.Body, env); err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.value, nil
		}
		return Nil, err
	}
	return Nil, nil
}

////////////////////////////////////////////////////////////////////////////////
//                               PUBLIC INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter walks the AST, reading and writing lexical environments.
//
// Public fields:
//   - Globals — the global frame; persists for the Interpreter's lifetime,
//     so successive Interpret calls within one session share state.
//   - Stdout  — destination of `print`; defaults to os.Stdout. Tests point
//     it at a buffer.
type Interpreter struct {
	Globals *Env
	Stdout  io.Writer

	env *Env // current innermost frame during execution
}

// NewInterpreter constructs an engine whose globals carry the core natives.
func NewInterpreter() *Interpreter {
	globals := NewEnv(nil)
	registerCoreBuiltins(globals)
	return &Interpreter{Globals: globals, Stdout: os.Stdout, env: globals}
}

// Interpret executes a parsed program statement by statement and returns the
// value of the last statement that produced one. Execution stops at the
// first runtime error. A stray top-level `return` ends the program early
// with its value; it is not an error (see interpreter_exec.go).
func (ip *Interpreter) Interpret(stmts []Stmt) (Value, error) {
	last := Nil
	for _, s := range stmts {
		v, err := ip.Execute(s)
		if err != nil {
			if ret, ok := err.(*returnSignal); ok {
				return ret.value, nil
			}
			return Nil, err
		}
		last = v
	}
	return last, nil
}

// RunSource scans, parses, and interprets src. Every diagnostic — lexical,
// syntax (possibly several), or runtime — comes back wrapped as a
// caret-annotated snippet labeled with name.
func (ip *Interpreter) RunSource(name, src string) (Value, error) {
	stmts, err := ParseSource(src)
	if err != nil {
		return Nil, wrapAll(err, name, src)
	}
	v, err := ip.Interpret(stmts)
	if err != nil {
		return Nil, WrapErrorWithName(err, name, src)
	}
	return v, nil
}
