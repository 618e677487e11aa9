package lox

import (
	"errors"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustScan(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := ScanSource(src)
	if err != nil {
		t.Fatalf("scan error: %v\nsource: %q", err, src)
	}
	return toks
}

// wantKinds checks the token type sequence, including the trailing EOF.
func wantKinds(t *testing.T, src string, kinds ...TokenType) {
	t.Helper()
	toks := mustScan(t, src)
	if len(toks) != len(kinds) {
		t.Fatalf("%q: want %d tokens, got %d: %v", src, len(kinds), len(toks), toks)
	}
	for i, k := range kinds {
		if toks[i].Type != k {
			t.Fatalf("%q: token %d is %v, want %v", src, i, toks[i].Type, k)
		}
	}
}

// --- tokens ----------------------------------------------------------------

func Test_Lexer_Punctuation_And_Operators(t *testing.T) {
	wantKinds(t, "(){};,.",
		LROUND, RROUND, LCURLY, RCURLY, SEMICOLON, COMMA, PERIOD, EOF)
	wantKinds(t, "+ - * /", PLUS, MINUS, MULT, DIV, EOF)
	wantKinds(t, "= == ! != < <= > >=",
		ASSIGN, EQ, BANG, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ, EOF)
}

func Test_Lexer_Two_Char_Operators_Are_Greedy(t *testing.T) {
	// "===" must scan as "==" then "=", never three "="
	wantKinds(t, "===", EQ, ASSIGN, EOF)
	wantKinds(t, "!==", NEQ, ASSIGN, EOF)
	wantKinds(t, "<=>", LESS_EQ, GREATER, EOF)
}

func Test_Lexer_Keywords_And_Identifiers(t *testing.T) {
	wantKinds(t, "and class else false for fun if nil or print return true var while",
		AND, CLASS, ELSE, FALSE, FOR, FUN, IF, NIL, OR, PRINT, RETURN, TRUE, VAR, WHILE, EOF)
	// prefixes of keywords are plain identifiers
	wantKinds(t, "orchid fortune classes _if if2", ID, ID, ID, ID, ID, EOF)

	toks := mustScan(t, "foo_bar2")
	if toks[0].Type != ID || toks[0].Lexeme != "foo_bar2" {
		t.Fatalf("identifier lexeme wrong: %v", toks[0])
	}
}

func Test_Lexer_Numbers(t *testing.T) {
	toks := mustScan(t, "123 45.67 0.5")
	for i, want := range []float64{123, 45.67, 0.5} {
		if toks[i].Type != NUMBER {
			t.Fatalf("token %d: %v", i, toks[i])
		}
		if got := toks[i].Literal.(float64); got != want {
			t.Fatalf("token %d: literal %g, want %g", i, got, want)
		}
	}
}

func Test_Lexer_Dot_Without_Digit_Is_Not_A_Fraction(t *testing.T) {
	// "123." is a number followed by a period; methods may hang off it one day
	wantKinds(t, "123.", NUMBER, PERIOD, EOF)
	wantKinds(t, "123.foo", NUMBER, PERIOD, ID, EOF)
}

func Test_Lexer_Strings(t *testing.T) {
	toks := mustScan(t, `"hello world"`)
	if toks[0].Type != STRING || toks[0].Literal.(string) != "hello world" {
		t.Fatalf("string token wrong: %v", toks[0])
	}

	// strings may span lines; the literal keeps the newline
	toks = mustScan(t, "\"a\nb\"")
	if got := toks[0].Literal.(string); got != "a\nb" {
		t.Fatalf("multi-line literal wrong: %q", got)
	}

	toks = mustScan(t, `""`)
	if got := toks[0].Literal.(string); got != "" {
		t.Fatalf("empty literal wrong: %q", got)
	}
}

func Test_Lexer_Comments_And_Whitespace(t *testing.T) {
	wantKinds(t, "1 // the rest is ignored ;;;;\n2", NUMBER, NUMBER, EOF)
	wantKinds(t, "// only a comment", EOF)
	wantKinds(t, " \t\r\n ", EOF)
	// a lone slash is division
	wantKinds(t, "1 / 2", NUMBER, DIV, NUMBER, EOF)
}

// --- positions -------------------------------------------------------------

func Test_Lexer_Positions(t *testing.T) {
	toks := mustScan(t, "var x = 1;\n  print x;")

	wantPos := func(i, line, col int, lexeme string) {
		t.Helper()
		tok := toks[i]
		if tok.Line != line || tok.Col != col || tok.Lexeme != lexeme {
			t.Fatalf("token %d: got %q at %d:%d, want %q at %d:%d",
				i, tok.Lexeme, tok.Line, tok.Col, lexeme, line, col)
		}
	}
	wantPos(0, 1, 0, "var")
	wantPos(1, 1, 4, "x")
	wantPos(2, 1, 6, "=")
	wantPos(3, 1, 8, "1")
	wantPos(4, 1, 9, ";")
	wantPos(5, 2, 2, "print")
	wantPos(6, 2, 8, "x")
}

func Test_Lexer_Multiline_String_Position_Is_Its_Start(t *testing.T) {
	toks := mustScan(t, "\n\"a\nb\" x")
	if toks[0].Line != 2 || toks[0].Col != 0 {
		t.Fatalf("string starts at %d:%d, want 2:0", toks[0].Line, toks[0].Col)
	}
	// the token after the string continues on the string's last line
	if toks[1].Lexeme != "x" || toks[1].Line != 3 {
		t.Fatalf("following token wrong: %v", toks[1])
	}
}

// --- errors ----------------------------------------------------------------

func Test_Lexer_Unexpected_Character(t *testing.T) {
	_, err := ScanSource("var x = 1;\nvar y = @;")
	if err == nil {
		t.Fatalf("expected error")
	}
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("want *LexError, got %T", err)
	}
	if le.Line != 2 || le.Col != 8 {
		t.Fatalf("error at %d:%d, want 2:8", le.Line, le.Col)
	}
	if le.Incomplete {
		t.Fatalf("a bad character is never an incomplete input")
	}
}

func Test_Lexer_Unterminated_String_Is_Incomplete(t *testing.T) {
	_, err := ScanSource(`var s = "oops`)
	if err == nil {
		t.Fatalf("expected error")
	}
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("want *LexError, got %T", err)
	}
	if !le.Incomplete {
		t.Fatalf("unterminated string at EOF must read as incomplete")
	}
	if !IsIncomplete(err) {
		t.Fatalf("IsIncomplete must see through the error")
	}
}
