package compiler

import (
	"fmt"
	"strings"
)

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNotEq
)

// cTokens maps each BinaryOp to the C operator emitted for it.
var cTokens = [...]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpEq:    "==",
	OpNotEq: "!=",
}

func (op BinaryOp) String() string {
	if int(op) >= 0 && int(op) < len(cTokens) {
		return cTokens[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// binaryOps maps operator tokens to their AST operator.
var binaryOps = map[TokenType]BinaryOp{
	PLUS:   OpAdd,
	MINUS:  OpSub,
	STAR:   OpMul,
	SLASH:  OpDiv,
	EQUALS: OpEq,
	NOT_EQ: OpNotEq,
}

//  Expression nodes

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// NumberLit is an integer constant.
//
//	looksmaxxing x = 10|
//	                 ^^  NumberLit{Value: 10}
type NumberLit struct {
	Value int64
}

func (*NumberLit) exprNode()        {}
func (n *NumberLit) String() string { return fmt.Sprintf("%d", n.Value) }

// VarRef is a read of a named variable.
type VarRef struct {
	Name string
}

func (*VarRef) exprNode()        {}
func (v *VarRef) String() string { return v.Name }

// BinaryExpr represents Left Op Right.
//
//	x rizz 1
//	^ ^^^^ ^
//	| |    |
//	| |    Right
//	| Op
//	Left
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// CallExpr represents name(args)
type CallExpr struct {
	Name string
	Args []Expr
}

func (*CallExpr) exprNode() {}
func (c *CallExpr) String() string {
	return fmt.Sprintf("Call(%s, args=%v)", c.Name, c.Args)
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// Assignment binds Value to Name. IsDefinition is set for the declaration
// form (looksmaxxing name = expr|) and clear for a plain reassignment.
type Assignment struct {
	Name         string
	Value        Expr
	IsDefinition bool
}

func (*Assignment) stmtNode() {}
func (a *Assignment) String() string {
	if a.IsDefinition {
		return fmt.Sprintf("Define(%s = %s)", a.Name, a.Value)
	}
	return fmt.Sprintf("Assign(%s = %s)", a.Name, a.Value)
}

// DiscardStmt is an expression evaluated only for its side effects, e.g. print(x)|.
type DiscardStmt struct {
	Value Expr
}

func (*DiscardStmt) stmtNode() {}
func (d *DiscardStmt) String() string {
	return fmt.Sprintf("Discard(%s)", d.Value)
}

// IfStmt represents sus cond >> body << [sussy >> elseBody <<].
// An empty ElseBody means there was no else clause.
type IfStmt struct {
	Condition Expr
	Body      []Stmt
	ElseBody  []Stmt
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if len(i.ElseBody) > 0 {
		return fmt.Sprintf("If(%s then %s else %s)", i.Condition, blockString(i.Body), blockString(i.ElseBody))
	}
	return fmt.Sprintf("If(%s then %s)", i.Condition, blockString(i.Body))
}

// WhileStmt represents edge cond >> body <<
type WhileStmt struct {
	Condition Expr
	Body      []Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("While(%s do %s)", w.Condition, blockString(w.Body))
}

// FunctionDecl represents skibidi name(params) >> body <<
type FunctionDecl struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (*FunctionDecl) stmtNode() {}
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("Function(%s, params=%v, body=%s)", f.Name, f.Params, blockString(f.Body))
}

// ReturnStmt represents sigma [expr]|. A nil Value returns 0.
type ReturnStmt struct {
	Value Expr
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "Return()"
	}
	return fmt.Sprintf("Return(%s)", r.Value)
}

// Program is the root of the AST: the ordered top-level statements.
type Program struct {
	Stmts []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Stmts {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func blockString(stmts []Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, "; ") + "]"
}
