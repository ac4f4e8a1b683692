package ir

import (
	"lev/internal/types"
)

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrConst materializes a constant.
	InstrConst InstrKind = iota
	// InstrLoad reads a stack slot.
	InstrLoad
	// InstrStore writes a stack slot.
	InstrStore
	// InstrBinary is an arithmetic or logical operation.
	InstrBinary
	// InstrCompare produces a bool from two operands.
	InstrCompare
	// InstrParam reads an incoming function argument.
	InstrParam
	// InstrCall calls a function of the same module.
	InstrCall
)

// Instr represents one instruction. Only the payload matching Kind is set.
type Instr struct {
	Kind InstrKind
	Dst  Value // NoValue for store
	Type types.Type

	Const   ConstInstr
	Load    LoadInstr
	Store   StoreInstr
	Binary  BinaryInstr
	Compare CompareInstr
	Param   ParamInstr
	Call    CallInstr
}

// ConstInstr holds the literal bits: integers are two's complement
// truncated to the type width, floats are IEEE-754 float64 bits, bool is 0/1.
type ConstInstr struct {
	Bits uint64
}

type LoadInstr struct {
	Slot Slot
}

type StoreInstr struct {
	Slot  Slot
	Value Value
}

// BinaryOp enumerates arithmetic and logical operations.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpSDiv: "sdiv", OpUDiv: "udiv",
	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv",
	OpAnd: "and", OpOr: "or",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsFloat reports whether op works on floating point operands.
func (op BinaryOp) IsFloat() bool { return op >= OpFAdd && op <= OpFDiv }

type BinaryInstr struct {
	Op          BinaryOp
	Left, Right Value
}

// Predicate enumerates comparison predicates.
type Predicate uint8

const (
	ICmpEq Predicate = iota
	ICmpNe
	ICmpSLt
	ICmpSLe
	ICmpSGt
	ICmpSGe
	ICmpULt
	ICmpULe
	ICmpUGt
	ICmpUGe
	FCmpOEq
	FCmpONe
	FCmpOLt
	FCmpOLe
	FCmpOGt
	FCmpOGe
	FCmpUNe
)

var predicateNames = [...]string{
	ICmpEq: "eq", ICmpNe: "ne",
	ICmpSLt: "slt", ICmpSLe: "sle", ICmpSGt: "sgt", ICmpSGe: "sge",
	ICmpULt: "ult", ICmpULe: "ule", ICmpUGt: "ugt", ICmpUGe: "uge",
	FCmpOEq: "oeq", FCmpONe: "one",
	FCmpOLt: "olt", FCmpOLe: "ole", FCmpOGt: "ogt", FCmpOGe: "oge",
	FCmpUNe: "une",
}

func (p Predicate) String() string {
	if int(p) < len(predicateNames) {
		return predicateNames[p]
	}
	return "?"
}

// IsFloat reports whether p compares floating point operands.
func (p Predicate) IsFloat() bool { return p >= FCmpOEq }

// CompareInstr compares two operands of type Instr.Type.
type CompareInstr struct {
	Pred        Predicate
	Left, Right Value
}

type ParamInstr struct {
	Index int
}

type CallInstr struct {
	Callee FuncID
	Args   []Value
}

// Operands returns the values read by the instruction.
func (ins *Instr) Operands() []Value {
	switch ins.Kind {
	case InstrStore:
		return []Value{ins.Store.Value}
	case InstrBinary:
		return []Value{ins.Binary.Left, ins.Binary.Right}
	case InstrCompare:
		return []Value{ins.Compare.Left, ins.Compare.Right}
	case InstrCall:
		return ins.Call.Args
	case InstrConst, InstrLoad, InstrParam:
		return nil
	default:
		return nil
	}
}
