package sema

import (
	"fmt"

	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/types"
)

// Context is the scope stack used while lowering one compilation unit.
// Scopes are only reachable through the stack, never held across push/pop.
type Context struct {
	b      ir.Builder
	tree   *ast.Builder
	scopes []*Scope
}

func NewContext(b ir.Builder, tree *ast.Builder) *Context {
	return &Context{b: b, tree: tree}
}

// CreateScope pushes a new innermost scope.
func (c *Context) CreateScope() {
	c.scopes = append(c.scopes, newScope())
}

// PopCurrentScope drops the innermost scope. Popping an empty stack is a
// lowering bug and panics.
func (c *Context) PopCurrentScope() {
	if len(c.scopes) == 0 {
		panic(fmt.Errorf("sema: pop of empty scope stack"))
	}
	c.scopes[len(c.scopes)-1] = nil
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// CurrentScope returns the innermost scope or nil.
func (c *Context) CurrentScope() *Scope {
	if len(c.scopes) == 0 {
		return nil
	}
	return c.scopes[len(c.scopes)-1]
}

// Depth is the number of open scopes.
func (c *Context) Depth() int {
	return len(c.scopes)
}

func (c *Context) mustCurrent(op string) *Scope {
	s := c.CurrentScope()
	if s == nil {
		panic(fmt.Errorf("sema: %s with no open scope", op))
	}
	return s
}

// AssignVariable stores value under decl.Name in the current scope. A name not
// yet bound there gets a fresh stack slot; a bound one is overwritten in place.
func (c *Context) AssignVariable(decl Decl, value ir.Value) *Binding {
	s := c.mustCurrent("AssignVariable")
	if b, ok := s.Lookup(decl.Name); ok {
		c.b.Store(b.Slot, value)
		return b
	}
	slot := c.b.AllocateStackSlot(decl.Type, decl.Name)
	c.b.Store(slot, value)
	b := &Binding{
		Name:    decl.Name,
		Type:    decl.Type,
		Mutable: decl.Mutable,
		Slot:    slot,
		Span:    decl.Span,
	}
	s.bind(b)
	return b
}

// DeclaredInCurrentScope reports whether name is already bound at the innermost level.
func (c *Context) DeclaredInCurrentScope(name string) bool {
	s := c.CurrentScope()
	if s == nil {
		return false
	}
	_, ok := s.Lookup(name)
	return ok
}

// LookupVariable resolves name from the innermost scope outwards.
func (c *Context) LookupVariable(name string) (*Binding, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i].Lookup(name); ok {
			return b, true
		}
	}
	return nil, false
}

// GetVariableDeclaration is LookupVariable reduced to the declaration.
func (c *Context) GetVariableDeclaration(name string) (Decl, bool) {
	b, ok := c.LookupVariable(name)
	if !ok {
		return Decl{}, false
	}
	return b.Decl(), true
}

// AddContext records stmt as being lowered in the current scope.
func (c *Context) AddContext(stmt ast.StmtID) {
	s := c.mustCurrent("AddContext")
	s.trail = append(s.trail, stmt)
}

// PopContext drops the most recent trail entry of the current scope.
func (c *Context) PopContext() {
	s := c.mustCurrent("PopContext")
	if len(s.trail) == 0 {
		panic(fmt.Errorf("sema: pop of empty statement trail"))
	}
	s.trail = s.trail[:len(s.trail)-1]
}

// AppropriateExprType answers which type an expression lowered right now
// should take. Inside a variable declaration it is the declared type, inside
// a return the result type of the nearest enclosing function. ok is false
// when the context fixes no type and literals fall back to their defaults.
func (c *Context) AppropriateExprType() (types.Type, bool) {
	top, ok := c.trailTop()
	if !ok {
		return types.Type{}, false
	}
	switch c.tree.Stmts.Get(top).Kind {
	case ast.StmtVarDecl:
		data, _ := c.tree.Stmts.VarDecl(top)
		if data.Type.IsInferred() {
			return types.Type{}, false
		}
		return data.Type, true
	case ast.StmtReturn:
		return c.EnclosingResult()
	case ast.StmtFnDecl, ast.StmtBlock, ast.StmtAssign, ast.StmtControl:
		return types.Type{}, false
	default:
		return types.Type{}, false
	}
}

// EnclosingResult walks the trails outwards to the nearest function
// declaration and returns its result type.
func (c *Context) EnclosingResult() (types.Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		trail := c.scopes[i].trail
		for j := len(trail) - 1; j >= 0; j-- {
			if fn, ok := c.tree.Stmts.FnDecl(trail[j]); ok {
				return fn.Result, true
			}
		}
	}
	return types.Type{}, false
}

func (c *Context) trailTop() (ast.StmtID, bool) {
	s := c.CurrentScope()
	if s == nil || len(s.trail) == 0 {
		return ast.NoStmtID, false
	}
	return s.trail[len(s.trail)-1], true
}
