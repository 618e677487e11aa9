// lexer.go — scanner for Lox source.
//
// Turns a source string into a flat []Token terminated by an explicit EOF
// token. Tokens carry their kind, the raw lexeme, a decoded literal value for
// strings and numbers, and a 1-based line plus 0-based column for diagnostics.
// Tokens are immutable once produced and cheap to copy.
//
// The scanner is deliberately boring: a byte cursor with one character of
// lookahead. `//` comments run to end of line, strings may span lines, numbers
// are doubles with an optional fractional part, and identifiers fall back to
// the keywords table. The only failure modes are an unexpected character and
// an unterminated string; both surface as *LexError (errors.go). An
// unterminated string that runs into end of input is flagged incomplete so the
// REPL can prompt for a continuation line instead of reporting a hard error.
package lox

import "strconv"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND    // "("
	RROUND    // ")"
	LCURLY    // "{"
	RCURLY    // "}"
	COMMA     // ","
	PERIOD    // "."
	SEMICOLON // ";"

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	BANG   // "!"
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Literals & identifiers
	ID
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	TRUE
	VAR
	WHILE
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // float64 for NUMBER, string for STRING, else nil
	Line    int         // 1-based
	Col     int         // 0-based column of the first byte
}

// keywords map
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Lexer scans a Lox source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// ScanSource is a convenience wrapper: scan src in one call.
func ScanSource(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

// Scan tokenizes the whole source. On success it returns the token slice
// terminated by an EOF token; on failure it returns the first *LexError.
func (l *Lexer) Scan() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line, Col: l.col})
	return l.tokens, nil
}

//// END_OF_PUBLIC

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekNext() (byte, bool) {
	if l.cur+1 >= len(l.src) {
		return 0, false
	}
	return l.src[l.cur+1], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

// matchNext consumes the next byte iff it equals expected.
func (l *Lexer) matchNext(expected byte) bool {
	ch, ok := l.peek()
	if !ok || ch != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) scanToken() error {
	ch, _ := l.advance()
	switch ch {
	case '(':
		l.addToken(LROUND, nil)
	case ')':
		l.addToken(RROUND, nil)
	case '{':
		l.addToken(LCURLY, nil)
	case '}':
		l.addToken(RCURLY, nil)
	case ',':
		l.addToken(COMMA, nil)
	case '.':
		l.addToken(PERIOD, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '+':
		l.addToken(PLUS, nil)
	case '-':
		l.addToken(MINUS, nil)
	case '*':
		l.addToken(MULT, nil)
	case '!':
		if l.matchNext('=') {
			l.addToken(NEQ, nil)
		} else {
			l.addToken(BANG, nil)
		}
	case '=':
		if l.matchNext('=') {
			l.addToken(EQ, nil)
		} else {
			l.addToken(ASSIGN, nil)
		}
	case '<':
		if l.matchNext('=') {
			l.addToken(LESS_EQ, nil)
		} else {
			l.addToken(LESS, nil)
		}
	case '>':
		if l.matchNext('=') {
			l.addToken(GREATER_EQ, nil)
		} else {
			l.addToken(GREATER, nil)
		}
	case '/':
		if l.matchNext('/') {
			// comment runs to end of line
			for {
				c, ok := l.peek()
				if !ok || c == '\n' {
					break
				}
				l.advance()
			}
		} else {
			l.addToken(DIV, nil)
		}
	case ' ', '\r', '\t', '\n':
		// whitespace; advance() already tracked the newline
	case '"':
		return l.scanString()
	default:
		switch {
		case isDigit(ch):
			l.scanNumber()
		case isAlpha(ch):
			l.scanIdentifier()
		default:
			return &LexError{
				Line: l.tokStartLine,
				Col:  l.tokStartCol,
				Msg:  "unexpected character " + string(ch),
			}
		}
	}
	return nil
}

func (l *Lexer) scanString() error {
	for {
		c, ok := l.peek()
		if !ok {
			return &LexError{
				Line:       l.tokStartLine,
				Col:        l.tokStartCol,
				Msg:        "unterminated string literal",
				Incomplete: true,
			}
		}
		l.advance()
		if c == '"' {
			break
		}
	}
	// trim surrounding quotes
	value := l.src[l.start+1 : l.cur-1]
	l.addToken(STRING, value)
	return nil
}

func (l *Lexer) scanNumber() {
	for {
		c, ok := l.peek()
		if !ok || !isDigit(c) {
			break
		}
		l.advance()
	}
	// fractional part only when a digit follows the dot
	if c, ok := l.peek(); ok && c == '.' {
		if n, ok := l.peekNext(); ok && isDigit(n) {
			l.advance()
			for {
				c, ok := l.peek()
				if !ok || !isDigit(c) {
					break
				}
				l.advance()
			}
		}
	}
	value := parseFloat(l.src[l.start:l.cur])
	l.addToken(NUMBER, value)
}

func (l *Lexer) scanIdentifier() {
	for {
		c, ok := l.peek()
		if !ok || !isAlphaNum(c) {
			break
		}
		l.advance()
	}
	lexeme := l.src[l.start:l.cur]
	if kw, ok := keywords[lexeme]; ok {
		l.addToken(kw, nil)
		return
	}
	l.addToken(ID, nil)
}

func parseFloat(s string) float64 {
	// lexeme shape guaranteed by scanNumber
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
