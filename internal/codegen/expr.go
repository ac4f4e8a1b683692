package codegen

import (
	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/types"
)

// lowerExpr lowers id and returns its value and type. A non-inferred want
// is the type the context demands; the result must match it exactly.
func (c *Compiler) lowerExpr(id ast.ExprID, want types.Type) (ir.Value, types.Type, error) {
	e := c.tree.Exprs.Get(id)
	if e == nil {
		return ir.NoValue, types.Type{}, errIllFormed(c.cur.span, "missing expression")
	}

	var (
		v   ir.Value
		got types.Type
		err error
	)
	switch e.Kind {
	case ast.ExprLit:
		v, got, err = c.lowerLiteral(id, want)
	case ast.ExprIdent:
		v, got, err = c.lowerIdent(id)
	case ast.ExprUnary:
		v, got, err = c.lowerUnary(id, want)
	case ast.ExprBinary:
		v, got, err = c.lowerBinary(id, want)
	case ast.ExprCall:
		v, got, err = c.lowerCall(id)
	default:
		return ir.NoValue, types.Type{}, errIllFormed(e.Span, "unknown expression %s", e.Kind)
	}
	if err != nil {
		return ir.NoValue, types.Type{}, err
	}
	if !want.IsInferred() && got != want {
		return ir.NoValue, types.Type{}, errIllFormed(e.Span, "mismatched types: expected %s, found %s", want, got)
	}
	return v, got, nil
}

func (c *Compiler) lowerIdent(id ast.ExprID) (ir.Value, types.Type, error) {
	data, _ := c.tree.Exprs.Ident(id)
	name := data.Name.Text
	b, ok := c.ctx.LookupVariable(name)
	if !ok {
		return ir.NoValue, types.Type{}, errUndefined(name, data.Name.Span)
	}
	return c.b.Load(b.Slot), b.Type, nil
}

func (c *Compiler) lowerUnary(id ast.ExprID, want types.Type) (ir.Value, types.Type, error) {
	e := c.tree.Exprs.Get(id)
	data, _ := c.tree.Exprs.Unary(id)
	spec := unarySpecTable[data.Op]

	switch data.Op {
	case ast.ExprUnaryMinus:
		if lit, ok := c.tree.Exprs.Literal(data.Operand); ok && lit.Kind != ast.ExprLitBool {
			return c.lowerNumberLiteral(lit, want, true, e.Span)
		}
		operandWant := types.Type{}
		if !want.IsInferred() {
			operandWant = want
		}
		v, t, err := c.lowerExpr(data.Operand, operandWant)
		if err != nil {
			return ir.NoValue, types.Type{}, err
		}
		if t.Family()&spec.Operand == 0 {
			return ir.NoValue, types.Type{}, errIllFormed(e.Span, "cannot apply unary '-' to %s", t)
		}
		if t.IsFloat() {
			zero := c.b.Constant(t, ir.FloatBits(t, negZero()))
			return c.b.BinaryOp(ir.OpFSub, t, zero, v), t, nil
		}
		zero := c.b.Constant(t, 0)
		return c.b.BinaryOp(ir.OpSub, t, zero, v), t, nil

	case ast.ExprUnaryNot:
		v, _, err := c.lowerExpr(data.Operand, types.TypeBool)
		if err != nil {
			return ir.NoValue, types.Type{}, err
		}
		f := c.b.Constant(types.TypeBool, ir.BoolBits(false))
		return c.b.Compare(ir.ICmpEq, types.TypeBool, v, f), types.TypeBool, nil

	default:
		return ir.NoValue, types.Type{}, errUnimplemented(e.Span, "unary operator %s", data.Op)
	}
}

func (c *Compiler) lowerBinary(id ast.ExprID, want types.Type) (ir.Value, types.Type, error) {
	e := c.tree.Exprs.Get(id)
	data, _ := c.tree.Exprs.Binary(id)
	spec, ok := binarySpecTable[data.Op]
	if !ok {
		return ir.NoValue, types.Type{}, errUnimplemented(e.Span, "binary operator %s", data.Op)
	}

	if spec.Flags&binaryFlagShortCircuit != 0 {
		return c.lowerLogical(data)
	}

	// Тип операндов: для арифметики его задаёт контекст, для сравнений
	// только сами операнды.
	var opType types.Type
	if spec.Result == binaryResultOperand && !want.IsInferred() {
		opType = want
		if opType.Family()&spec.Operands == 0 {
			return ir.NoValue, types.Type{}, errIllFormed(e.Span, "operator '%s' cannot produce %s", data.Op, want)
		}
	} else if t, ok := c.naturalType(data.Left); ok {
		opType = t
	} else if t, ok := c.naturalType(data.Right); ok {
		opType = t
	} else if c.hasFloatLiteral(data.Left) || c.hasFloatLiteral(data.Right) {
		opType = types.TypeF32
	}

	l, lt, err := c.lowerExpr(data.Left, opType)
	if err != nil {
		return ir.NoValue, types.Type{}, err
	}
	if lt.Family()&spec.Operands == 0 {
		return ir.NoValue, types.Type{}, errIllFormed(e.Span, "operator '%s' expects %s operands, found %s", data.Op, familyName(spec.Operands), lt)
	}
	r, _, err := c.lowerExpr(data.Right, lt)
	if err != nil {
		return ir.NoValue, types.Type{}, err
	}

	if spec.Flags&binaryFlagComparison != 0 {
		pred, ok := comparePred(data.Op, lt)
		if !ok {
			return ir.NoValue, types.Type{}, errUnimplemented(e.Span, "comparison %s on %s", data.Op, lt)
		}
		return c.b.Compare(pred, lt, l, r), types.TypeBool, nil
	}
	op, ok := arithOp(data.Op, lt)
	if !ok {
		return ir.NoValue, types.Type{}, errUnimplemented(e.Span, "operator %s on %s", data.Op, lt)
	}
	return c.b.BinaryOp(op, lt, l, r), lt, nil
}

// lowerLogical lowers `and`/`or` with short-circuit evaluation through a
// bool stack slot.
func (c *Compiler) lowerLogical(data *ast.ExprBinaryData) (ir.Value, types.Type, error) {
	l, _, err := c.lowerExpr(data.Left, types.TypeBool)
	if err != nil {
		return ir.NoValue, types.Type{}, err
	}
	label := data.Op.String()
	slot := c.b.AllocateStackSlot(types.TypeBool, label+".tmp")
	c.b.Store(slot, l)

	rhs := c.b.CreateBlock(label + ".rhs")
	end := c.b.CreateBlock(label + ".end")
	if data.Op == ast.ExprBinaryLogicalAnd {
		c.condBranch(l, rhs, end)
	} else {
		c.condBranch(l, end, rhs)
	}

	c.b.SetInsertionPoint(rhs)
	r, _, err := c.lowerExpr(data.Right, types.TypeBool)
	if err != nil {
		return ir.NoValue, types.Type{}, err
	}
	c.b.Store(slot, r)
	c.branch(end)

	c.b.MoveBlockToEnd(end)
	c.b.SetInsertionPoint(end)
	return c.b.Load(slot), types.TypeBool, nil
}

func (c *Compiler) lowerCall(id ast.ExprID) (ir.Value, types.Type, error) {
	e := c.tree.Exprs.Get(id)
	call, _ := c.tree.Exprs.Call(id)
	name := call.Callee.Text
	sig, ok := c.funcs[name]
	if !ok {
		return ir.NoValue, types.Type{}, &Error{
			Kind: UndefinedVariable,
			Name: name,
			Span: call.Callee.Span,
			Msg:  "undefined function '" + name + "'",
		}
	}
	if len(call.Args) != len(sig.params) {
		return ir.NoValue, types.Type{}, errIllFormed(e.Span, "function '%s' takes %d arguments, %d given", name, len(sig.params), len(call.Args))
	}
	args := make([]ir.Value, len(call.Args))
	for i, a := range call.Args {
		v, _, err := c.lowerExpr(a, sig.params[i].Type)
		if err != nil {
			return ir.NoValue, types.Type{}, err
		}
		args[i] = v
	}
	return c.b.Call(sig.id, args), sig.result, nil
}
