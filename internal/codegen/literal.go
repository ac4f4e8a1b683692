package codegen

import (
	"math"
	"strconv"

	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/source"
	"lev/internal/types"
)

// lowerLiteral types a literal by context: the wanted builtin type when
// there is one, otherwise i32 for integers, f32 for floats and bool.
func (c *Compiler) lowerLiteral(id ast.ExprID, want types.Type) (ir.Value, types.Type, error) {
	lit, _ := c.tree.Exprs.Literal(id)
	switch lit.Kind {
	case ast.ExprLitBool:
		return c.b.Constant(types.TypeBool, ir.BoolBits(lit.Token.Text == "true")), types.TypeBool, nil
	case ast.ExprLitString:
		return ir.NoValue, types.Type{}, errUnimplemented(lit.Token.Span, "string literal")
	case ast.ExprLitInt, ast.ExprLitFloat:
		return c.lowerNumberLiteral(lit, want, false, lit.Token.Span)
	default:
		return ir.NoValue, types.Type{}, errIllFormed(lit.Token.Span, "unknown literal %q", lit.Token.Text)
	}
}

// lowerNumberLiteral folds an optional leading minus into the constant so
// that e.g. -128 fits i8.
func (c *Compiler) lowerNumberLiteral(lit *ast.ExprLiteralData, want types.Type, negate bool, span source.Span) (ir.Value, types.Type, error) {
	t := want
	if t.IsInferred() {
		t = types.TypeI32
		if lit.Kind == ast.ExprLitFloat {
			t = types.TypeF32
		}
	}
	kind := "integer"
	if lit.Kind == ast.ExprLitFloat {
		kind = "float"
	}
	if !t.IsBuiltin() || t.IsBool() {
		return ir.NoValue, types.Type{}, errIllFormed(span, "mismatched types: expected %s, found %s literal", t, kind)
	}
	text := lit.Token.Text
	shown := text
	if negate {
		shown = "-" + text
	}

	if t.IsFloat() {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return ir.NoValue, types.Type{}, errIllFormed(span, "invalid %s literal %s", kind, shown)
		}
		if negate {
			f = -f
		}
		if t.Builtin == types.F32 && math.Abs(f) > math.MaxFloat32 {
			return ir.NoValue, types.Type{}, errIllFormed(span, "literal %s is out of range for %s", shown, t)
		}
		return c.b.Constant(t, ir.FloatBits(t, f)), t, nil
	}

	if lit.Kind == ast.ExprLitFloat {
		return ir.NoValue, types.Type{}, errIllFormed(span, "mismatched types: expected %s, found float literal", t)
	}
	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil || !intFits(t, u, negate) {
		return ir.NoValue, types.Type{}, errIllFormed(span, "literal %s is out of range for %s", shown, t)
	}
	if negate {
		u = -u
	}
	return c.b.Constant(t, ir.IntBits(t, u)), t, nil
}

// intFits reports whether the magnitude u (negated when neg) is representable in t.
func intFits(t types.Type, u uint64, neg bool) bool {
	w := t.Width()
	if t.IsSigned() {
		limit := uint64(1) << (w - 1)
		if neg {
			return u <= limit
		}
		return u < limit
	}
	if neg {
		return u == 0
	}
	return w == 64 || u < uint64(1)<<w
}

func negZero() float64 {
	return math.Copysign(0, -1)
}
