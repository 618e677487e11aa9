// builtin_core.go
//
// Builtins surfaced:
//  1. clock() -> Num
//
// Conventions:
//   - Natives are registered into the global frame as Callable values; they
//     take fully evaluated arguments and never fail.
//   - Arity is fixed and enforced by the evaluator before Call runs, so
//     implementations may index args without checking.
package lox

import "time"

func registerCoreBuiltins(globals *Env) {
	// clock() -> Num
	// Seconds since the Unix epoch, with sub-second precision. The one
	// native the language ships by default; it establishes the pattern for
	// hosts to add more.
	globals.Define("clock", FunVal(&Native{
		Name:   "clock",
		ArityN: 0,
		Impl: func(_ []Value) Value {
			return Num(float64(time.Now().UnixNano()) / 1e9)
		},
	}))
}
