package codegen

import (
	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/types"
)

// binaryResult describes how to derive the result type for an operator.
type binaryResult uint8

const (
	binaryResultOperand binaryResult = iota // тип операндов
	binaryResultBool
)

type binaryFlags uint8

const (
	binaryFlagNone         binaryFlags = 0
	binaryFlagShortCircuit binaryFlags = 1 << iota
	binaryFlagComparison
)

// binarySpec lists the operand families an operator accepts.
type binarySpec struct {
	Operands types.FamilyMask
	Result   binaryResult
	Flags    binaryFlags
}

var binarySpecTable = map[ast.ExprBinaryOp]binarySpec{
	ast.ExprBinaryAdd:        {Operands: types.FamilyNumeric},
	ast.ExprBinarySub:        {Operands: types.FamilyNumeric},
	ast.ExprBinaryMul:        {Operands: types.FamilyNumeric},
	ast.ExprBinaryDiv:        {Operands: types.FamilyNumeric},
	ast.ExprBinaryEq:         {Operands: types.FamilyNumeric | types.FamilyBool, Result: binaryResultBool, Flags: binaryFlagComparison},
	ast.ExprBinaryNotEq:      {Operands: types.FamilyNumeric | types.FamilyBool, Result: binaryResultBool, Flags: binaryFlagComparison},
	ast.ExprBinaryLess:       {Operands: types.FamilyNumeric, Result: binaryResultBool, Flags: binaryFlagComparison},
	ast.ExprBinaryLessEq:     {Operands: types.FamilyNumeric, Result: binaryResultBool, Flags: binaryFlagComparison},
	ast.ExprBinaryGreater:    {Operands: types.FamilyNumeric, Result: binaryResultBool, Flags: binaryFlagComparison},
	ast.ExprBinaryGreaterEq:  {Operands: types.FamilyNumeric, Result: binaryResultBool, Flags: binaryFlagComparison},
	ast.ExprBinaryLogicalAnd: {Operands: types.FamilyBool, Result: binaryResultBool, Flags: binaryFlagShortCircuit},
	ast.ExprBinaryLogicalOr:  {Operands: types.FamilyBool, Result: binaryResultBool, Flags: binaryFlagShortCircuit},
}

type unarySpec struct {
	Operand types.FamilyMask
}

var unarySpecTable = map[ast.ExprUnaryOp]unarySpec{
	ast.ExprUnaryMinus: {Operand: types.FamilySignedInt | types.FamilyFloat},
	ast.ExprUnaryNot:   {Operand: types.FamilyBool},
}

// arithOp picks the IR operation for op on operands of type t.
func arithOp(op ast.ExprBinaryOp, t types.Type) (ir.BinaryOp, bool) {
	float := t.IsFloat()
	switch op {
	case ast.ExprBinaryAdd:
		if float {
			return ir.OpFAdd, true
		}
		return ir.OpAdd, true
	case ast.ExprBinarySub:
		if float {
			return ir.OpFSub, true
		}
		return ir.OpSub, true
	case ast.ExprBinaryMul:
		if float {
			return ir.OpFMul, true
		}
		return ir.OpMul, true
	case ast.ExprBinaryDiv:
		switch {
		case float:
			return ir.OpFDiv, true
		case t.IsSigned():
			return ir.OpSDiv, true
		default:
			return ir.OpUDiv, true
		}
	default:
		return 0, false
	}
}

// comparePred picks the predicate for op on operands of type t.
// bool compares as an unsigned one-bit integer.
func comparePred(op ast.ExprBinaryOp, t types.Type) (ir.Predicate, bool) {
	if t.IsFloat() {
		switch op {
		case ast.ExprBinaryEq:
			return ir.FCmpOEq, true
		case ast.ExprBinaryNotEq:
			return ir.FCmpUNe, true
		case ast.ExprBinaryLess:
			return ir.FCmpOLt, true
		case ast.ExprBinaryLessEq:
			return ir.FCmpOLe, true
		case ast.ExprBinaryGreater:
			return ir.FCmpOGt, true
		case ast.ExprBinaryGreaterEq:
			return ir.FCmpOGe, true
		default:
			return 0, false
		}
	}
	signed := !t.IsBool() && t.IsSigned()
	switch op {
	case ast.ExprBinaryEq:
		return ir.ICmpEq, true
	case ast.ExprBinaryNotEq:
		return ir.ICmpNe, true
	case ast.ExprBinaryLess:
		return pick(signed, ir.ICmpSLt, ir.ICmpULt), true
	case ast.ExprBinaryLessEq:
		return pick(signed, ir.ICmpSLe, ir.ICmpULe), true
	case ast.ExprBinaryGreater:
		return pick(signed, ir.ICmpSGt, ir.ICmpUGt), true
	case ast.ExprBinaryGreaterEq:
		return pick(signed, ir.ICmpSGe, ir.ICmpUGe), true
	default:
		return 0, false
	}
}

func pick(cond bool, a, b ir.Predicate) ir.Predicate {
	if cond {
		return a
	}
	return b
}

func familyName(f types.FamilyMask) string {
	switch {
	case f == types.FamilyNumeric:
		return "numeric"
	case f == types.FamilyBool:
		return "bool"
	case f == types.FamilySignedInt|types.FamilyFloat:
		return "signed numeric"
	default:
		return "numeric or bool"
	}
}
