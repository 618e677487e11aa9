// errors.go — structured diagnostics and caret-snippet rendering.
//
// What this file does
// -------------------
// Defines the closed error taxonomy shared by the scanner, parser, and
// evaluator, and turns those structured errors into readable, Python-style
// snippets with a caret pointing at the offending column:
//
//	RUNTIME ERROR at 3:9: undeclared identifier 'y'
//
//	   2 | var x = 1;
//	   3 | print y;
//	       |       ^
//	   4 | print x;
//
// Taxonomy
// --------
//   - *LexError   — the scanner hit an invalid character or an unterminated
//     string. Carries 1-based Line and 0-based Col.
//   - *ParseError — the parser could not match the grammar at a token. The
//     parser collects these across panic-mode recoveries; a whole parse may
//     yield several. Incomplete marks errors caused purely by running out of
//     input in interactive mode (REPL continuation probe).
//   - *RuntimeError — evaluation-time failure with a closed Detail set:
//     ErrExpectedNumber, ErrUndeclaredIdentifier, ErrInvalidArity,
//     ErrNotCallable. Carries the offending token for source attribution.
//     Not recoverable inside the core; it aborts the current top-level
//     statement and is surfaced to the driver.
//
// The non-local `return` transfer deliberately does NOT live here: it is not
// a diagnostic and must never reach a user (see returnSignal in
// interpreter_exec.go).
//
// Behavior guarantees
// -------------------
//   - WrapErrorWithSource/WrapErrorWithName recognize the three structured
//     kinds and return a fully formatted plain-text snippet; anything else is
//     returned unchanged.
//   - Line/column are clamped so the caret renders safely on short or empty
//     sources.
package lox

import (
	"errors"
	"fmt"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// LexError is a scanner failure at a source position.
type LexError struct {
	Line int // 1-based
	Col  int // 0-based
	Msg  string

	// Incomplete is set when the failure is an artifact of truncated input
	// (unterminated string at EOF); the REPL uses it to prompt for more.
	Incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// ParseError is a grammar mismatch at a token.
type ParseError struct {
	Token Token // the token the parser could not accept
	Msg   string

	// Incomplete marks interactive-mode errors at EOF; see IsIncomplete.
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Token.Line, e.Token.Col+1, e.Msg)
}

// ErrorDetail enumerates the runtime failure kinds.
type ErrorDetail int

const (
	ErrExpectedNumber ErrorDetail = iota
	ErrUndeclaredIdentifier
	ErrInvalidArity
	ErrNotCallable
)

// RuntimeError is an evaluation-time failure attributed to a token.
type RuntimeError struct {
	Token  Token
	Detail ErrorDetail
	Msg    string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Token.Line, e.Token.Col+1, e.Msg)
}

// IsIncomplete reports whether err (or any error it joins/wraps) is a
// lex/parse error caused purely by truncated input. The REPL keeps reading
// continuation lines while this holds.
func IsIncomplete(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Incomplete {
		return true
	}
	var le *LexError
	if errors.As(err, &le) && le.Incomplete {
		return true
	}
	return false
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes the structured kinds above
// and leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	// Fall back to a name-less header (won't show "in <src>").
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with an origin label ("<repl>",
// a file path, ...) included in the header.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Col is 0-based; render as 1-based.
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Token.Line, e.Token.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "RUNTIME ERROR", srcName, e.Token.Line, e.Token.Col+1, e.Msg))
	default:
		return err
	}
}

//// END_OF_PUBLIC

// wrapAll wraps every structured error inside err (which may be an
// errors.Join of several parse errors) as a caret snippet.
func wrapAll(err error, name, src string) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts := joined.Unwrap()
		wrapped := make([]error, len(parts))
		for i, e := range parts {
			wrapped[i] = WrapErrorWithName(e, name, src)
		}
		return errors.Join(wrapped...)
	}
	return WrapErrorWithName(err, name, src)
}

/* ===========================
   PRIVATE: constructors & rendering
   =========================== */

// runtimeErr builds a *RuntimeError with the canonical message for detail.
func runtimeErr(tok Token, detail ErrorDetail) *RuntimeError {
	var msg string
	switch detail {
	case ErrExpectedNumber:
		msg = fmt.Sprintf("operand of '%s' must be a number", tok.Lexeme)
	case ErrUndeclaredIdentifier:
		msg = fmt.Sprintf("undeclared identifier '%s'", tok.Lexeme)
	case ErrNotCallable:
		msg = "can only call functions"
	default:
		msg = "runtime error"
	}
	return &RuntimeError{Token: tok, Detail: detail, Msg: msg}
}

// arityErr is the ErrInvalidArity constructor; it needs the counts.
func arityErr(tok Token, want, got int) *RuntimeError {
	return &RuntimeError{
		Token:  tok,
		Detail: ErrInvalidArity,
		Msg:    fmt.Sprintf("expected %d arguments but got %d", want, got),
	}
}

// prettyErrorStringLabeled builds a Python-like snippet with a header and a
// caret. It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
