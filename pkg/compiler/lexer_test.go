package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF, Offset: 0},
			},
		},
		{
			name:  "Punctuation",
			input: "( ) , | = == != >> <<",
			expected: []Token{
				{Type: LPAREN, Lexeme: "(", Offset: 0},
				{Type: RPAREN, Lexeme: ")", Offset: 2},
				{Type: COMMA, Lexeme: ",", Offset: 4},
				{Type: PIPE, Lexeme: "|", Offset: 6},
				{Type: ASSIGN, Lexeme: "=", Offset: 8},
				{Type: EQUALS, Lexeme: "==", Offset: 10},
				{Type: NOT_EQ, Lexeme: "!=", Offset: 13},
				{Type: LBLOCK, Lexeme: ">>", Offset: 16},
				{Type: RBLOCK, Lexeme: "<<", Offset: 19},
				{Type: EOF, Offset: 21},
			},
		},
		{
			name:  "Keywords and Identifiers",
			input: "looksmaxxing skibidi edge sus sussy sigma counter",
			expected: []Token{
				{Type: LET, Lexeme: "looksmaxxing", Offset: 0},
				{Type: FUNC, Lexeme: "skibidi", Offset: 13},
				{Type: WHILE, Lexeme: "edge", Offset: 21},
				{Type: IF, Lexeme: "sus", Offset: 26},
				{Type: ELSE, Lexeme: "sussy", Offset: 30},
				{Type: RETURN, Lexeme: "sigma", Offset: 36},
				{Type: IDENTIFIER, Lexeme: "counter", Offset: 42},
				{Type: EOF, Offset: 49},
			},
		},
		{
			name:  "Word Operators",
			input: "rizz fanumtax gyatt mog",
			expected: []Token{
				{Type: PLUS, Lexeme: "rizz", Offset: 0},
				{Type: MINUS, Lexeme: "fanumtax", Offset: 5},
				{Type: STAR, Lexeme: "gyatt", Offset: 14},
				{Type: SLASH, Lexeme: "mog", Offset: 20},
				{Type: EOF, Offset: 23},
			},
		},
		{
			name:  "Keyword Prefix Is An Identifier",
			input: "suss rizzler",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "suss", Offset: 0},
				{Type: IDENTIFIER, Lexeme: "rizzler", Offset: 5},
				{Type: EOF, Offset: 12},
			},
		},
		{
			name:  "Integers",
			input: "0 123 007",
			expected: []Token{
				{Type: INTEGER, Lexeme: "0", Value: 0, Offset: 0},
				{Type: INTEGER, Lexeme: "123", Value: 123, Offset: 2},
				{Type: INTEGER, Lexeme: "007", Value: 7, Offset: 6},
				{Type: EOF, Offset: 9},
			},
		},
		{
			name:  "Adjacent Tokens",
			input: "x=1|f(a,b)",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "x", Offset: 0},
				{Type: ASSIGN, Lexeme: "=", Offset: 1},
				{Type: INTEGER, Lexeme: "1", Value: 1, Offset: 2},
				{Type: PIPE, Lexeme: "|", Offset: 3},
				{Type: IDENTIFIER, Lexeme: "f", Offset: 4},
				{Type: LPAREN, Lexeme: "(", Offset: 5},
				{Type: IDENTIFIER, Lexeme: "a", Offset: 6},
				{Type: COMMA, Lexeme: ",", Offset: 7},
				{Type: IDENTIFIER, Lexeme: "b", Offset: 8},
				{Type: RPAREN, Lexeme: ")", Offset: 9},
				{Type: EOF, Offset: 10},
			},
		},
		{
			name:  "Digits End A Word",
			input: "abc12",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "abc", Offset: 0},
				{Type: INTEGER, Lexeme: "12", Value: 12, Offset: 3},
				{Type: EOF, Offset: 5},
			},
		},
		{
			name:  "Newlines And Carriage Returns",
			input: "a\r\n  b\n",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "a", Offset: 0},
				{Type: IDENTIFIER, Lexeme: "b", Offset: 5},
				{Type: EOF, Offset: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
		char   rune
		reason string
	}{
		{name: "Bang Without Equals", input: "a ! b", offset: 2, char: '!'},
		{name: "Single Open Bracket", input: "sus x > y", offset: 6, char: '>'},
		{name: "Single Close Bracket", input: "<", offset: 0, char: '<'},
		{name: "Uppercase Letter", input: "looksmaxxing X = 1|", offset: 13, char: 'X'},
		{name: "Tab", input: "x\t= 1|", offset: 1, char: '\t'},
		{name: "Underscore", input: "_", offset: 0, char: '_'},
		{name: "Semicolon", input: "x = 1;", offset: 5, char: ';'},
		{name: "Multibyte Character", input: "x = é", offset: 4, char: 'é'},
		{name: "Literal Out Of Range", input: "x = 2147483648|", offset: 4, char: '2', reason: "integer literal out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			require.Error(t, err)

			var lexErr *LexError
			require.True(t, errors.As(err, &lexErr), "want *LexError, got %T", err)
			assert.Equal(t, tt.offset, lexErr.Offset)
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.reason, lexErr.Reason)
		})
	}
}

func TestLexLargestLiteral(t *testing.T) {
	tokens, err := Lex("2147483647")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, int64(2147483647), tokens[0].Value)
}

func TestLexReturnsTokensBeforeError(t *testing.T) {
	tokens, err := Lex("x = 1 ?")
	require.Error(t, err)
	assert.Len(t, tokens, 3)
	assert.EqualError(t, err, `unexpected character '?' at offset 6`)
}
