package compiler

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// keywords maps source spellings to their reserved TokenType. Operators are
// spelled as words too, so this table defines every reserved word in the language.
var keywords = map[string]TokenType{
	"looksmaxxing": LET,
	"skibidi":      FUNC,
	"edge":         WHILE,
	"sus":          IF,
	"sussy":        ELSE,
	"sigma":        RETURN,
	"rizz":         PLUS,
	"fanumtax":     MINUS,
	"gyatt":        STAR,
	"mog":          SLASH,
}

// maxLiteral is the largest integer literal accepted; every value is a C int.
const maxLiteral = math.MaxInt32

// LexError reports the first character the lexer could not turn into a token.
type LexError struct {
	Offset int
	Char   rune
	Reason string // empty for an unrecognized character
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Offset)
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src string
	pos int // byte offset of the next character to consume
}

func newLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// peek returns the byte at the current position without advancing.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the byte one position ahead of the current position.
func (l *Lexer) peek2() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.peek() {
		case ' ', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// errorAt builds a LexError for the (possibly multi-byte) character at offset.
func (l *Lexer) errorAt(offset int) *LexError {
	r, _ := utf8.DecodeRuneInString(l.src[offset:])
	return &LexError{Offset: offset, Char: r}
}

// scanWord collects a run of lowercase letters and resolves it against keywords.
func (l *Lexer) scanWord() Token {
	start := l.pos
	for l.pos < len(l.src) && isLower(l.peek()) {
		l.pos++
	}
	lexeme := l.src[start:l.pos]
	tt := IDENTIFIER
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return Token{Type: tt, Lexeme: lexeme, Offset: start}
}

// scanInt accumulates a run of decimal digits left to right.
func (l *Lexer) scanInt() (Token, error) {
	start := l.pos
	var value int64
	for l.pos < len(l.src) && isDigit(l.peek()) {
		value = value*10 + int64(l.peek()-'0')
		if value > maxLiteral {
			return Token{}, &LexError{Offset: start, Char: rune(l.src[start]), Reason: "integer literal out of range"}
		}
		l.pos++
	}
	return Token{Type: INTEGER, Lexeme: l.src[start:l.pos], Value: value, Offset: start}, nil
}

// pair consumes a two-character token whose second character must be want.
func (l *Lexer) pair(want byte, tt TokenType) (Token, error) {
	start := l.pos
	if l.peek2() != want {
		return Token{}, l.errorAt(start)
	}
	l.pos += 2
	return Token{Type: tt, Lexeme: l.src[start:l.pos], Offset: start}, nil
}

// single consumes a one-character token.
func (l *Lexer) single(tt TokenType) Token {
	start := l.pos
	l.pos++
	return Token{Type: tt, Lexeme: l.src[start:l.pos], Offset: start}
}

// nextToken skips whitespace and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return Token{Type: EOF, Offset: l.pos}, nil
	}

	ch := l.peek()
	switch {
	case isLower(ch):
		return l.scanWord(), nil
	case isDigit(ch):
		return l.scanInt()
	}

	switch ch {
	case '(':
		return l.single(LPAREN), nil
	case ')':
		return l.single(RPAREN), nil
	case ',':
		return l.single(COMMA), nil
	case '|':
		return l.single(PIPE), nil
	case '=':
		if l.peek2() == '=' { // lookahead: distinguish = vs ==
			return l.pair('=', EQUALS)
		}
		return l.single(ASSIGN), nil
	case '!':
		return l.pair('=', NOT_EQ)
	case '>':
		return l.pair('>', LBLOCK)
	case '<':
		return l.pair('<', RBLOCK)
	default:
		return Token{}, l.errorAt(l.pos)
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a *LexError on the first character that starts no token.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
