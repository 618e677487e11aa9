package lox

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustContain(t *testing.T, s string, substrings ...string) {
	t.Helper()
	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			t.Fatalf("output missing %q:\n%s", sub, s)
		}
	}
}

// --- message formats -------------------------------------------------------

func Test_Errors_Messages_Carry_Positions(t *testing.T) {
	le := &LexError{Line: 2, Col: 4, Msg: "unexpected character @"}
	// columns render 1-based even though tokens store them 0-based
	if got := le.Error(); got != "LEXICAL ERROR at 2:5: unexpected character @" {
		t.Fatalf("got %q", got)
	}

	pe := &ParseError{Token: Token{Line: 1, Col: 6}, Msg: "expected expression"}
	if got := pe.Error(); got != "PARSE ERROR at 1:7: expected expression" {
		t.Fatalf("got %q", got)
	}

	re := &RuntimeError{Token: Token{Line: 3, Col: 0}, Msg: "undeclared identifier 'y'"}
	if got := re.Error(); got != "RUNTIME ERROR at 3:1: undeclared identifier 'y'" {
		t.Fatalf("got %q", got)
	}
}

// --- caret snippets --------------------------------------------------------

func Test_Errors_Snippet_Points_At_The_Column(t *testing.T) {
	src := "var x = 1;\nprint nosuch;\nprint x;"
	_, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := NewInterpreter()
	_, err = ip.RunSource("demo.lox", src)
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	out := err.Error()
	mustContain(t, out,
		"RUNTIME ERROR in demo.lox at 2:7: undeclared identifier 'nosuch'",
		"   1 | var x = 1;",
		"   2 | print nosuch;",
		"   3 | print x;",
	)
	// the caret sits under column 7
	mustContain(t, out, "     |       ^")
}

func Test_Errors_Snippet_On_First_And_Last_Line(t *testing.T) {
	// no previous line to show
	err := WrapErrorWithSource(&LexError{Line: 1, Col: 0, Msg: "unexpected character @"}, "@ oops")
	mustContain(t, err.Error(),
		"LEXICAL ERROR at 1:1",
		"   1 | @ oops",
		"     | ^",
	)
	if strings.Contains(err.Error(), "   0 |") {
		t.Fatalf("must not render a line 0:\n%s", err.Error())
	}

	// no next line to show either
	err = WrapErrorWithSource(&ParseError{Token: Token{Line: 1, Col: 5, Type: EOF}, Msg: "expected ';' after value"}, "print")
	if strings.Contains(err.Error(), "   2 |") {
		t.Fatalf("must not render past the end:\n%s", err.Error())
	}
}

func Test_Errors_Snippet_Clamps_Out_Of_Range_Positions(t *testing.T) {
	// defensive: rendering must not panic on positions past the source
	err := WrapErrorWithSource(&LexError{Line: 99, Col: 99, Msg: "boom"}, "x")
	mustContain(t, err.Error(), "LEXICAL ERROR", "boom")

	err = WrapErrorWithSource(&LexError{Line: 1, Col: 0, Msg: "boom"}, "")
	mustContain(t, err.Error(), "boom")
}

func Test_Errors_Wrap_Leaves_Foreign_Errors_Alone(t *testing.T) {
	plain := &LexError{Line: 1, Col: 0, Msg: "x"}
	if got := WrapErrorWithSource(plain, "src"); got == error(plain) {
		t.Fatalf("structured errors must be rewritten")
	}
	errIn := errOpaque{}
	if got := WrapErrorWithSource(errIn, "src"); got != errIn {
		t.Fatalf("foreign errors must pass through unchanged, got %v", got)
	}
}

type errOpaque struct{}

func (errOpaque) Error() string { return "opaque" }

func Test_Errors_RunSource_Wraps_Every_Parse_Error(t *testing.T) {
	ip := NewInterpreter()
	_, err := ip.RunSource("bad.lox", "var = 1; +;")
	if err == nil {
		t.Fatalf("expected errors")
	}
	out := err.Error()
	mustContain(t, out,
		"PARSE ERROR in bad.lox at 1:5: expected variable name",
		"PARSE ERROR in bad.lox at 1:10: expected expression",
	)
}
