package sema

import (
	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/source"
	"lev/internal/types"
)

// Decl describes a variable at the point it is introduced.
type Decl struct {
	Name    string
	Type    types.Type
	Mutable bool
	Span    source.Span
}

// Binding is a name bound to a stack slot.
type Binding struct {
	Name    string
	Type    types.Type
	Mutable bool
	Slot    ir.Slot
	Span    source.Span
}

// Decl returns the declaration the binding was created from.
func (b *Binding) Decl() Decl {
	return Decl{Name: b.Name, Type: b.Type, Mutable: b.Mutable, Span: b.Span}
}

// Scope is one lexical level. trail holds the statements being lowered in it,
// innermost last.
type Scope struct {
	bindings map[string]*Binding
	order    []string
	trail    []ast.StmtID
}

func newScope() *Scope {
	return &Scope{bindings: make(map[string]*Binding)}
}

// Lookup finds name in this scope only.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Names returns bound names in binding order.
func (s *Scope) Names() []string {
	return append([]string(nil), s.order...)
}

// Trail returns the statements currently being lowered in this scope.
func (s *Scope) Trail() []ast.StmtID {
	return append([]ast.StmtID(nil), s.trail...)
}

func (s *Scope) bind(b *Binding) {
	if _, ok := s.bindings[b.Name]; !ok {
		s.order = append(s.order, b.Name)
	}
	s.bindings[b.Name] = b
}
