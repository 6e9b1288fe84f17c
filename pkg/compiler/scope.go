package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// DiscardName is the C variable that receives the value of a call statement.
// Source identifiers are lowercase letters only, so it can never be spelled in source.
const DiscardName = "_"

// builtins are the functions every program can call, with their arity.
var builtins = map[string]int{
	"print": 1,
}

// Scope is the set of names visible at one point of the program.
//
// A nested block works on a copy made by enter, so declarations inside an
// if, while or function body never leak back into the enclosing block.
type Scope struct {
	vars  map[string]struct{}
	funcs map[string]int // name -> arity

	// local holds the variables declared in this block itself, as opposed
	// to those inherited from enclosing blocks.
	local map[string]struct{}
}

// NewRootScope returns the scope a program starts in: the builtins and the
// discard binding.
func NewRootScope() *Scope {
	s := &Scope{
		vars:  map[string]struct{}{DiscardName: {}},
		funcs: make(map[string]int, len(builtins)),
		local: make(map[string]struct{}),
	}
	for name, arity := range builtins {
		s.funcs[name] = arity
	}
	return s
}

// enter returns a copy of s for analysing a nested block.
func (s *Scope) enter() *Scope {
	c := &Scope{
		vars:  make(map[string]struct{}, len(s.vars)),
		funcs: make(map[string]int, len(s.funcs)),
		local: make(map[string]struct{}),
	}
	for name := range s.vars {
		c.vars[name] = struct{}{}
	}
	for name, arity := range s.funcs {
		c.funcs[name] = arity
	}
	return c
}

// DeclareVar adds name to the variables of this block.
func (s *Scope) DeclareVar(name string) {
	s.vars[name] = struct{}{}
	s.local[name] = struct{}{}
}

// DeclareFunc registers name with the given arity.
func (s *Scope) DeclareFunc(name string, arity int) {
	s.funcs[name] = arity
}

// HasVar reports whether name is a visible variable.
func (s *Scope) HasVar(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// DeclaredHere reports whether name was declared in this very block.
func (s *Scope) DeclaredHere(name string) bool {
	_, ok := s.local[name]
	return ok
}

// Func returns the arity of the function name and whether it is visible.
func (s *Scope) Func(name string) (int, bool) {
	arity, ok := s.funcs[name]
	return arity, ok
}

// String returns a deterministically ordered dump of the scope.
func (s *Scope) String() string {
	var sb strings.Builder

	vars := make([]string, 0, len(s.vars))
	for name := range s.vars {
		vars = append(vars, name)
	}
	sort.Strings(vars)
	sb.WriteString("Variables:\n")
	for _, name := range vars {
		marker := ""
		if s.DeclaredHere(name) {
			marker = " (local)"
		}
		fmt.Fprintf(&sb, "  %s%s\n", name, marker)
	}

	funcs := make([]string, 0, len(s.funcs))
	for name := range s.funcs {
		funcs = append(funcs, name)
	}
	sort.Strings(funcs)
	sb.WriteString("Functions:\n")
	for _, name := range funcs {
		fmt.Fprintf(&sb, "  %-20s  arity %d\n", name, s.funcs[name])
	}
	return sb.String()
}
