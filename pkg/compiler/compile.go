package compiler

import "fmt"

// Result carries every artifact of a successful pipeline run so callers can
// dump the intermediate stages.
type Result struct {
	Tokens  []Token
	Program *Program
	C       string
}

// Compile runs src through Lex, Parse, Analyze and Generate, stopping at the
// first failing stage. The returned error wraps the stage's *LexError,
// *ParseError or *SemanticError.
func Compile(src string) (*Result, error) {
	res, err := Check(src)
	if err != nil {
		return nil, err
	}

	res.C, err = Generate(res.Program)
	if err != nil {
		return nil, fmt.Errorf("codegen error: %w", err)
	}

	return res, nil
}

// Check runs the front end only: Lex, Parse and Analyze. The Result has no C text.
func Check(src string) (*Result, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, fmt.Errorf("lex error: %w", err)
	}

	prog, err := Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if err := Analyze(prog); err != nil {
		return nil, fmt.Errorf("semantic error: %w", err)
	}

	return &Result{Tokens: tokens, Program: prog}, nil
}
