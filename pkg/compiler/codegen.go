package compiler

import (
	"fmt"
	"strings"
)

// preamble opens every generated translation unit. print is a macro so a
// call statement can still be assigned to the discard variable.
const preamble = `#include <stdio.h>
#define print(num) printf("%d\n", (num))
int ` + DiscardName + ` = 0;
int main() {
`

// cReserved are identifiers a source program may spell but C cannot accept
// as a variable or function name.
var cReserved = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "typeof": true,
	"union": true, "unsigned": true, "void": true, "volatile": true, "while": true,
	"asm": true, "main": true, "printf": true,
}

// cName returns the C spelling of a source identifier. Reserved names get a
// trailing underscore, which no source identifier can contain.
func cName(name string) string {
	if cReserved[name] {
		return name + "_"
	}
	return name
}

// CodeGen walks a validated AST and emits C source text.
type CodeGen struct {
	out   strings.Builder
	depth int // current brace nesting, for indentation
	temps int // temporaries issued so far
}

// temp returns a fresh C variable name. The leading underscore keeps it out
// of the source identifier space.
func (cg *CodeGen) temp() string {
	name := fmt.Sprintf("_t%d", cg.temps)
	cg.temps++
	return name
}

// refersTo reports whether e reads the variable name.
func refersTo(e Expr, name string) bool {
	switch n := e.(type) {
	case *VarRef:
		return n.Name == name
	case *BinaryExpr:
		return refersTo(n.Left, name) || refersTo(n.Right, name)
	case *CallExpr:
		for _, arg := range n.Args {
			if refersTo(arg, name) {
				return true
			}
		}
	}
	return false
}

// endsInReturn reports whether the last statement of body is a return.
func endsInReturn(body []Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*ReturnStmt)
	return ok
}

func newCodeGen() *CodeGen {
	return &CodeGen{}
}

func (cg *CodeGen) line(format string, args ...any) {
	cg.out.WriteString(strings.Repeat("    ", cg.depth))
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

// block emits stmts one level deeper than the current line.
func (cg *CodeGen) block(stmts []Stmt) error {
	cg.depth++
	defer func() { cg.depth-- }()
	for _, s := range stmts {
		if err := cg.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (cg *CodeGen) genStmt(s Stmt) error {
	switch n := s.(type) {

	case *Assignment:
		value, err := cg.genExpr(n.Value)
		if err != nil {
			return err
		}
		if n.IsDefinition {
			// A C declaration is in scope inside its own initializer, so a
			// value that reads the shadowed outer binding is evaluated first.
			if refersTo(n.Value, n.Name) {
				tmp := cg.temp()
				cg.line("int %s = %s;", tmp, value)
				value = tmp
			}
			cg.line("int %s = %s;", cName(n.Name), value)
		} else {
			cg.line("%s = %s;", cName(n.Name), value)
		}

	case *DiscardStmt:
		value, err := cg.genExpr(n.Value)
		if err != nil {
			return err
		}
		cg.line("%s = %s;", DiscardName, value)

	case *FunctionDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = "int " + cName(p)
		}
		cg.line("int %s(%s) {", cName(n.Name), strings.Join(params, ", "))
		if err := cg.block(n.Body); err != nil {
			return err
		}
		if !endsInReturn(n.Body) {
			cg.depth++
			cg.line("return 0;")
			cg.depth--
		}
		cg.line("}")

	case *IfStmt:
		cond, err := cg.genExpr(n.Condition)
		if err != nil {
			return err
		}
		cg.line("if (%s) {", cond)
		if err := cg.block(n.Body); err != nil {
			return err
		}
		if len(n.ElseBody) > 0 {
			cg.line("} else {")
			if err := cg.block(n.ElseBody); err != nil {
				return err
			}
		}
		cg.line("}")

	case *WhileStmt:
		cond, err := cg.genExpr(n.Condition)
		if err != nil {
			return err
		}
		cg.line("while (%s) {", cond)
		if err := cg.block(n.Body); err != nil {
			return err
		}
		cg.line("}")

	case *ReturnStmt:
		if n.Value == nil {
			cg.line("return 0;")
			return nil
		}
		value, err := cg.genExpr(n.Value)
		if err != nil {
			return err
		}
		cg.line("return %s;", value)

	default:
		return fmt.Errorf("codegen: unexpected statement %T", s)
	}
	return nil
}

func (cg *CodeGen) genExpr(e Expr) (string, error) {
	switch n := e.(type) {

	case *NumberLit:
		return fmt.Sprintf("%d", n.Value), nil

	case *VarRef:
		return cName(n.Name), nil

	case *BinaryExpr:
		left, err := cg.genExpr(n.Left)
		if err != nil {
			return "", err
		}
		right, err := cg.genExpr(n.Right)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s) %s (%s)", left, n.Op, right), nil

	case *CallExpr:
		args := make([]string, len(n.Args))
		for i, arg := range n.Args {
			s, err := cg.genExpr(arg)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s(%s)", cName(n.Name), strings.Join(args, ", ")), nil
	}
	return "", fmt.Errorf("codegen: unexpected expression %T", e)
}

// Generate emits a complete C translation unit for prog. Every top-level
// statement lands inside main; functions become GNU C nested functions so
// they see the bindings of the block that declares them.
//
// prog must already have passed Analyze. An error here means an AST node
// type the generator does not know, which is a bug rather than bad input.
func Generate(prog *Program) (string, error) {
	cg := newCodeGen()
	cg.out.WriteString(preamble)
	if err := cg.block(prog.Stmts); err != nil {
		return "", err
	}
	cg.out.WriteString("}\n")
	return cg.out.String(), nil
}
