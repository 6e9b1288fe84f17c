package compiler

import "fmt"

// SemanticErrorKind classifies a SemanticError.
type SemanticErrorKind int

const (
	DuplicateFunction SemanticErrorKind = iota
	UndefinedVariable
	UndefinedFunction
	ArityMismatch
	ReassignUndeclared
	IdentifierKindClash
	DuplicateVariable
)

var semanticErrorNames = [...]string{
	DuplicateFunction:   "DuplicateFunction",
	UndefinedVariable:   "UndefinedVariable",
	UndefinedFunction:   "UndefinedFunction",
	ArityMismatch:       "ArityMismatch",
	ReassignUndeclared:  "ReassignUndeclared",
	IdentifierKindClash: "IdentifierKindClash",
	DuplicateVariable:   "DuplicateVariable",
}

func (k SemanticErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(semanticErrorNames) {
		return semanticErrorNames[k]
	}
	return fmt.Sprintf("SemanticErrorKind(%d)", int(k))
}

// SemanticError is the first scope or arity violation found in a Program.
type SemanticError struct {
	Kind SemanticErrorKind
	Name string

	// Want and Got are the declared and supplied argument counts for ArityMismatch.
	Want, Got int
}

func (e *SemanticError) Error() string {
	switch e.Kind {
	case DuplicateFunction:
		return fmt.Sprintf("function %q already defined", e.Name)
	case UndefinedVariable:
		return fmt.Sprintf("variable %q not defined", e.Name)
	case UndefinedFunction:
		return fmt.Sprintf("function %q not defined", e.Name)
	case ArityMismatch:
		return fmt.Sprintf("function %q takes %d argument(s), called with %d", e.Name, e.Want, e.Got)
	case ReassignUndeclared:
		return fmt.Sprintf("assignment to undeclared variable %q", e.Name)
	case IdentifierKindClash:
		return fmt.Sprintf("%q is already used for a variable or function", e.Name)
	case DuplicateVariable:
		return fmt.Sprintf("variable %q already declared in this block", e.Name)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Name)
}

// Analyze checks every identifier reference and call in prog against the
// scopes they appear in. It rewrites nothing; a nil result means the
// program may be handed to Generate.
func Analyze(prog *Program) error {
	_, err := AnalyzeScope(prog)
	return err
}

// AnalyzeScope is Analyze, also returning the top-level scope as it stood
// after the last statement.
func AnalyzeScope(prog *Program) (*Scope, error) {
	scope := NewRootScope()
	if err := analyzeStmts(prog.Stmts, scope); err != nil {
		return nil, err
	}
	return scope, nil
}

// analyzeStmts walks stmts in order, declaring into scope as it goes.
// Callers hand nested blocks a copy from scope.enter().
func analyzeStmts(stmts []Stmt, scope *Scope) error {
	for _, s := range stmts {
		if err := analyzeStmt(s, scope); err != nil {
			return err
		}
	}
	return nil
}

func analyzeStmt(s Stmt, scope *Scope) error {
	switch n := s.(type) {

	case *Assignment:
		if err := analyzeExpr(n.Value, scope); err != nil {
			return err
		}
		if !n.IsDefinition {
			if !scope.HasVar(n.Name) {
				return &SemanticError{Kind: ReassignUndeclared, Name: n.Name}
			}
			return nil
		}
		if _, isFunc := scope.Func(n.Name); isFunc {
			return &SemanticError{Kind: IdentifierKindClash, Name: n.Name}
		}
		if scope.DeclaredHere(n.Name) {
			return &SemanticError{Kind: DuplicateVariable, Name: n.Name}
		}
		scope.DeclareVar(n.Name)

	case *DiscardStmt:
		return analyzeExpr(n.Value, scope)

	case *FunctionDecl:
		if scope.HasVar(n.Name) {
			return &SemanticError{Kind: IdentifierKindClash, Name: n.Name}
		}
		if _, exists := scope.Func(n.Name); exists {
			return &SemanticError{Kind: DuplicateFunction, Name: n.Name}
		}
		// Registered before the body so the function can call itself.
		scope.DeclareFunc(n.Name, len(n.Params))

		body := scope.enter()
		for _, param := range n.Params {
			if _, isFunc := body.Func(param); isFunc {
				return &SemanticError{Kind: IdentifierKindClash, Name: param}
			}
			if body.DeclaredHere(param) {
				return &SemanticError{Kind: DuplicateVariable, Name: param}
			}
			body.DeclareVar(param)
		}
		return analyzeStmts(n.Body, body)

	case *IfStmt:
		if err := analyzeExpr(n.Condition, scope); err != nil {
			return err
		}
		if err := analyzeStmts(n.Body, scope.enter()); err != nil {
			return err
		}
		return analyzeStmts(n.ElseBody, scope.enter())

	case *WhileStmt:
		if err := analyzeExpr(n.Condition, scope); err != nil {
			return err
		}
		return analyzeStmts(n.Body, scope.enter())

	case *ReturnStmt:
		if n.Value != nil {
			return analyzeExpr(n.Value, scope)
		}

	default:
		return fmt.Errorf("semantic: unexpected statement %T", s)
	}
	return nil
}

func analyzeExpr(e Expr, scope *Scope) error {
	switch n := e.(type) {

	case *NumberLit:
		return nil

	case *VarRef:
		if !scope.HasVar(n.Name) {
			return &SemanticError{Kind: UndefinedVariable, Name: n.Name}
		}
		return nil

	case *BinaryExpr:
		if err := analyzeExpr(n.Left, scope); err != nil {
			return err
		}
		return analyzeExpr(n.Right, scope)

	case *CallExpr:
		arity, ok := scope.Func(n.Name)
		if !ok {
			return &SemanticError{Kind: UndefinedFunction, Name: n.Name}
		}
		if arity != len(n.Args) {
			return &SemanticError{Kind: ArityMismatch, Name: n.Name, Want: arity, Got: len(n.Args)}
		}
		for _, arg := range n.Args {
			if err := analyzeExpr(arg, scope); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("semantic: unexpected expression %T", e)
}
