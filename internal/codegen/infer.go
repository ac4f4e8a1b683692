package codegen

import (
	"lev/internal/ast"
	"lev/internal/types"
)

// naturalType returns the type id has regardless of context. Numeric
// literals have none: they adapt to whatever they are combined with.
func (c *Compiler) naturalType(id ast.ExprID) (types.Type, bool) {
	e := c.tree.Exprs.Get(id)
	if e == nil {
		return types.Type{}, false
	}
	switch e.Kind {
	case ast.ExprLit:
		lit, _ := c.tree.Exprs.Literal(id)
		if lit.Kind == ast.ExprLitBool {
			return types.TypeBool, true
		}
		return types.Type{}, false
	case ast.ExprIdent:
		data, _ := c.tree.Exprs.Ident(id)
		if b, ok := c.ctx.LookupVariable(data.Name.Text); ok {
			return b.Type, true
		}
		return types.Type{}, false
	case ast.ExprUnary:
		data, _ := c.tree.Exprs.Unary(id)
		if data.Op == ast.ExprUnaryNot {
			return types.TypeBool, true
		}
		return c.naturalType(data.Operand)
	case ast.ExprBinary:
		data, _ := c.tree.Exprs.Binary(id)
		if data.Op.IsComparison() || data.Op.IsLogical() {
			return types.TypeBool, true
		}
		if t, ok := c.naturalType(data.Left); ok {
			return t, true
		}
		return c.naturalType(data.Right)
	case ast.ExprCall:
		call, _ := c.tree.Exprs.Call(id)
		if sig, ok := c.funcs[call.Callee.Text]; ok {
			return sig.result, true
		}
		return types.Type{}, false
	default:
		return types.Type{}, false
	}
}

// hasFloatLiteral reports whether a float literal occurs anywhere under id.
func (c *Compiler) hasFloatLiteral(id ast.ExprID) bool {
	if lit, ok := c.tree.Exprs.Literal(id); ok {
		return lit.Kind == ast.ExprLitFloat
	}
	for _, child := range c.tree.ExprChildren(id) {
		if c.hasFloatLiteral(child) {
			return true
		}
	}
	return false
}
