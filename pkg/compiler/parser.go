package compiler

import "fmt"

// ParseError reports the first token that did not fit the grammar.
type ParseError struct {
	Expected string
	Found    Token
	Offset   int
}

func (e *ParseError) Error() string {
	if e.Found.Type == EOF {
		return fmt.Sprintf("offset %d: expected %s, found end of input", e.Offset, e.Expected)
	}
	return fmt.Sprintf("offset %d: expected %s, found %s (%q)", e.Offset, e.Expected, e.Found.Type, e.Found.Lexeme)
}

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	program        = statement* EOF
//	statement      = callStmt | assignment | definition | returnStmt | if | while | function
//	callStmt       = IDENTIFIER "(" ... expression "|"      (IDENTIFIER followed by "(")
//	assignment     = IDENTIFIER "=" expression "|"
//	definition     = "looksmaxxing" IDENTIFIER "=" expression "|"
//	returnStmt     = "sigma" expression? "|"
//	if             = "sus" expression block ("sussy" block)?
//	while          = "edge" expression block
//	function       = "skibidi" IDENTIFIER "(" (","? IDENTIFIER)* ")" block
//	block          = ">>" statement* "<<"
//	expression     = additive
//	additive       = multiplicative (("rizz" | "fanumtax") multiplicative)*
//	multiplicative = equality (("gyatt" | "mog") equality)*
//	equality       = primary (("==" | "!=") primary)*
//	primary        = INTEGER | IDENTIFIER | IDENTIFIER "(" (expression ","?)* ")" | "(" expression ")"
//
// Equality sits below multiplication, so it binds tighter than every other
// binary operator: a gyatt b == c parses as a * (b == c).
type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token at the given offset from the current position.
// Past the end it returns an EOF positioned after the last real token.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		end := 0
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1]
			end = last.Offset + len(last.Lexeme)
		}
		return Token{Type: EOF, Offset: end}
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(expected string, found Token) error {
	return &ParseError{Expected: expected, Found: found, Offset: found.Offset}
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorf(tt.String(), tok)
	}
	return p.advance(), nil
}

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseAdditive()
}

// parseAdditive handles rizz and fanumtax (+ and -)
func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		tt := p.peek().Type
		if tt != PLUS && tt != MINUS {
			break
		}
		op := binaryOps[p.advance().Type]
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}

	return expr, nil
}

// parseMultiplicative handles gyatt and mog (* and /)
func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for {
		tt := p.peek().Type
		if tt != STAR && tt != SLASH {
			break
		}
		op := binaryOps[p.advance().Type]
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}

	return expr, nil
}

// parseEquality handles == and !=
func (p *Parser) parseEquality() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == EQUALS || p.peek().Type == NOT_EQ {
		op := binaryOps[p.advance().Type]
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}

	return expr, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.advance()
		return &NumberLit{Value: tok.Value}, nil

	case IDENTIFIER:
		p.advance()
		if p.peek().Type == LPAREN {
			p.advance()
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return &CallExpr{Name: tok.Lexeme, Args: args}, nil
		}
		return &VarRef{Name: tok.Lexeme}, nil

	case LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.errorf("expression", tok)
}

// parseCallArgs parses arguments up to and including the closing ")".
// The opening "(" must already have been consumed. A comma after an
// argument is optional, so f(a, b) and f(a b) are equivalent.
func (p *Parser) parseCallArgs() ([]Expr, error) {
	var args []Expr
	for p.peek().Type != RPAREN {
		if p.peek().Type == EOF {
			return nil, p.errorf(RPAREN.String(), p.peek())
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().Type == COMMA {
			p.advance()
		}
	}
	p.advance() // )
	return args, nil
}

// parseParams parses a parameter list up to and including the closing ")".
// A comma before a name is optional.
func (p *Parser) parseParams() ([]string, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	var params []string
	for p.peek().Type != RPAREN {
		if p.peek().Type == COMMA {
			p.advance()
		}
		name, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Lexeme)
	}
	p.advance() // )
	return params, nil
}

// parseBlock parses >> statement* <<
func (p *Parser) parseBlock() ([]Stmt, error) {
	if _, err := p.expect(LBLOCK); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for p.peek().Type != RBLOCK {
		if p.peek().Type == EOF {
			return nil, p.errorf(RBLOCK.String(), p.peek())
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // <<
	return stmts, nil
}

// parseTerminated parses an expression followed by the "|" terminator.
func (p *Parser) parseTerminated() (Expr, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(PIPE); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseAssignment(isDefinition bool) (Stmt, error) {
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseTerminated()
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: name.Lexeme, Value: value, IsDefinition: isDefinition}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	if p.peek().Type == PIPE {
		p.advance()
		return &ReturnStmt{}, nil
	}
	value, err := p.parseTerminated()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Value: value}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []Stmt
	if p.peek().Type == ELSE {
		p.advance()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{Condition: cond, Body: body, ElseBody: elseBody}, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) parseFunctionDecl() (Stmt, error) {
	name, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{Name: name.Lexeme, Params: params, Body: body}, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case IDENTIFIER:
		// name(...) is a call evaluated for effect; anything else is name = expr|
		if p.peekAt(1).Type == LPAREN {
			value, err := p.parseTerminated()
			if err != nil {
				return nil, err
			}
			return &DiscardStmt{Value: value}, nil
		}
		return p.parseAssignment(false)
	case LET:
		p.advance()
		return p.parseAssignment(true)
	case RETURN:
		p.advance()
		return p.parseReturn()
	case IF:
		p.advance()
		return p.parseIf()
	case WHILE:
		p.advance()
		return p.parseWhile()
	case FUNC:
		p.advance()
		return p.parseFunctionDecl()
	}
	return nil, p.errorf("statement", tok)
}

// Parse builds a Program from the tokens produced by Lex. It stops at the
// first token that does not fit the grammar and returns a *ParseError.
func Parse(tokens []Token) (*Program, error) {
	p := NewParser(tokens)
	prog := &Program{}
	for p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}
