package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / function name
	INTEGER    // decimal integer literal

	// Keywords
	LET    // "looksmaxxing"
	FUNC   // "skibidi"
	WHILE  // "edge"
	IF     // "sus"
	ELSE   // "sussy"
	RETURN // "sigma"

	// Arithmetic operators (spelled as words in source)
	PLUS  // "rizz"
	MINUS // "fanumtax"
	STAR  // "gyatt"
	SLASH // "mog"

	// Comparison
	EQUALS // ==
	NOT_EQ // !=

	// Paired delimiters
	LPAREN // (
	RPAREN // )
	LBLOCK // >>
	RBLOCK // <<

	// Punctuation
	ASSIGN // =
	COMMA  // ,
	PIPE   // | (statement terminator)
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	LET:        "LET",
	FUNC:       "FUNC",
	WHILE:      "WHILE",
	IF:         "IF",
	ELSE:       "ELSE",
	RETURN:     "RETURN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	EQUALS:     "EQUALS",
	NOT_EQ:     "NOT_EQ",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBLOCK:     "LBLOCK",
	RBLOCK:     "RBLOCK",
	ASSIGN:     "ASSIGN",
	COMMA:      "COMMA",
	PIPE:       "PIPE",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Value  int64  // numeric value, INTEGER only
	Offset int    // byte offset of the first character
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  offset %d", t.Type, t.Lexeme, t.Offset)
}
