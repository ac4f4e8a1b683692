package ir

import (
	"fmt"

	"fortio.org/safecast"

	"lev/internal/source"
	"lev/internal/types"
)

// Builder is the boundary the lowering engine talks to. It hands out
// opaque handles and never exposes partially built functions.
type Builder interface {
	DeclareFunction(name string, params []Param, result types.Type, span source.Span) FuncID
	// BeginFunction directs subsequent block and value requests at fn.
	BeginFunction(fn FuncID)

	CreateBlock(label string) BlockID
	SetInsertionPoint(b BlockID)
	InsertionPoint() BlockID
	// MoveBlockToEnd moves b after every block created so far.
	MoveBlockToEnd(b BlockID)
	// Terminated reports whether the insertion block already has a terminator.
	Terminated() bool

	AllocateStackSlot(t types.Type, name string) Slot
	Load(slot Slot) Value
	Store(slot Slot, v Value)
	Param(index int) Value
	Constant(t types.Type, bits uint64) Value
	BinaryOp(op BinaryOp, t types.Type, l, r Value) Value
	Compare(pred Predicate, t types.Type, l, r Value) Value
	Call(fn FuncID, args []Value) Value
	ValueType(v Value) types.Type

	ConditionalBranch(cond Value, then, els BlockID)
	UnconditionalBranch(target BlockID)
	ReturnValue(v Value)
	ReturnVoid()
	MarkUnreachable()
}

// ModuleBuilder builds an in-memory Module. Instructions and terminators
// aimed at an already terminated block are dropped.
type ModuleBuilder struct {
	m   *Module
	f   *Func
	cur BlockID
}

var _ Builder = (*ModuleBuilder)(nil)

func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{m: &Module{}, cur: NoBlockID}
}

// Module returns the module built so far.
func (mb *ModuleBuilder) Module() *Module {
	return mb.m
}

func (mb *ModuleBuilder) DeclareFunction(name string, params []Param, result types.Type, span source.Span) FuncID {
	raw, err := safecast.Conv[int32](len(mb.m.Funcs))
	if err != nil {
		panic(fmt.Errorf("ir: func id overflow: %w", err))
	}
	id := FuncID(raw)
	mb.m.Funcs = append(mb.m.Funcs, &Func{
		ID:     id,
		Name:   name,
		Span:   span,
		Params: append([]Param(nil), params...),
		Result: result,
		Entry:  NoBlockID,
	})
	return id
}

func (mb *ModuleBuilder) BeginFunction(fn FuncID) {
	if fn < 0 || int(fn) >= len(mb.m.Funcs) {
		panic(fmt.Errorf("ir: unknown function %d", fn))
	}
	mb.f = mb.m.Funcs[fn]
	mb.cur = NoBlockID
}

func (mb *ModuleBuilder) fn() *Func {
	if mb.f == nil {
		panic(fmt.Errorf("ir: no function is being built"))
	}
	return mb.f
}

func (mb *ModuleBuilder) CreateBlock(label string) BlockID {
	f := mb.fn()
	raw, err := safecast.Conv[int32](len(f.Blocks))
	if err != nil {
		panic(fmt.Errorf("ir: block id overflow: %w", err))
	}
	id := BlockID(raw)
	f.Blocks = append(f.Blocks, Block{ID: id, Label: label, Term: Terminator{Kind: TermNone}})
	f.Layout = append(f.Layout, id)
	if f.Entry == NoBlockID {
		f.Entry = id
	}
	return id
}

func (mb *ModuleBuilder) SetInsertionPoint(b BlockID) {
	if mb.fn().Block(b) == nil {
		panic(fmt.Errorf("ir: unknown block bb%d in %s", b, mb.f.Name))
	}
	mb.cur = b
}

func (mb *ModuleBuilder) InsertionPoint() BlockID {
	return mb.cur
}

func (mb *ModuleBuilder) MoveBlockToEnd(b BlockID) {
	f := mb.fn()
	for i, id := range f.Layout {
		if id == b {
			f.Layout = append(append(f.Layout[:i:i], f.Layout[i+1:]...), b)
			return
		}
	}
	panic(fmt.Errorf("ir: unknown block bb%d in %s", b, f.Name))
}

func (mb *ModuleBuilder) curBlock() *Block {
	blk := mb.fn().Block(mb.cur)
	if blk == nil {
		panic(fmt.Errorf("ir: no insertion point in %s", mb.f.Name))
	}
	return blk
}

func (mb *ModuleBuilder) Terminated() bool {
	return mb.curBlock().Terminated()
}

func (mb *ModuleBuilder) AllocateStackSlot(t types.Type, name string) Slot {
	f := mb.fn()
	raw, err := safecast.Conv[int32](len(f.Slots))
	if err != nil {
		panic(fmt.Errorf("ir: slot id overflow: %w", err))
	}
	f.Slots = append(f.Slots, SlotInfo{Name: name, Type: t})
	return Slot(raw)
}

func (mb *ModuleBuilder) newValue(t types.Type) Value {
	f := mb.fn()
	raw, err := safecast.Conv[int32](len(f.Values))
	if err != nil {
		panic(fmt.Errorf("ir: value id overflow: %w", err))
	}
	f.Values = append(f.Values, t)
	return Value(raw)
}

func (mb *ModuleBuilder) emit(ins *Instr) {
	b := mb.curBlock()
	if b.Terminated() {
		return
	}
	b.Instrs = append(b.Instrs, *ins)
}

func (mb *ModuleBuilder) setTerm(t *Terminator) {
	b := mb.curBlock()
	if b.Terminated() {
		return
	}
	b.Term = *t
}

func (mb *ModuleBuilder) slotType(slot Slot) types.Type {
	f := mb.fn()
	if slot < 0 || int(slot) >= len(f.Slots) {
		panic(fmt.Errorf("ir: unknown slot s%d in %s", slot, f.Name))
	}
	return f.Slots[slot].Type
}

func (mb *ModuleBuilder) Load(slot Slot) Value {
	t := mb.slotType(slot)
	dst := mb.newValue(t)
	mb.emit(&Instr{Kind: InstrLoad, Dst: dst, Type: t, Load: LoadInstr{Slot: slot}})
	return dst
}

func (mb *ModuleBuilder) Store(slot Slot, v Value) {
	t := mb.slotType(slot)
	mb.emit(&Instr{Kind: InstrStore, Dst: NoValue, Type: t, Store: StoreInstr{Slot: slot, Value: v}})
}

func (mb *ModuleBuilder) Param(index int) Value {
	f := mb.fn()
	if index < 0 || index >= len(f.Params) {
		panic(fmt.Errorf("ir: %s has no parameter %d", f.Name, index))
	}
	t := f.Params[index].Type
	dst := mb.newValue(t)
	mb.emit(&Instr{Kind: InstrParam, Dst: dst, Type: t, Param: ParamInstr{Index: index}})
	return dst
}

func (mb *ModuleBuilder) Constant(t types.Type, bits uint64) Value {
	dst := mb.newValue(t)
	mb.emit(&Instr{Kind: InstrConst, Dst: dst, Type: t, Const: ConstInstr{Bits: bits}})
	return dst
}

func (mb *ModuleBuilder) BinaryOp(op BinaryOp, t types.Type, l, r Value) Value {
	dst := mb.newValue(t)
	mb.emit(&Instr{Kind: InstrBinary, Dst: dst, Type: t, Binary: BinaryInstr{Op: op, Left: l, Right: r}})
	return dst
}

// Compare records the operand type in Instr.Type; the result is bool.
func (mb *ModuleBuilder) Compare(pred Predicate, t types.Type, l, r Value) Value {
	dst := mb.newValue(types.TypeBool)
	mb.emit(&Instr{Kind: InstrCompare, Dst: dst, Type: t, Compare: CompareInstr{Pred: pred, Left: l, Right: r}})
	return dst
}

func (mb *ModuleBuilder) Call(fn FuncID, args []Value) Value {
	if fn < 0 || int(fn) >= len(mb.m.Funcs) {
		panic(fmt.Errorf("ir: call to unknown function %d", fn))
	}
	t := mb.m.Funcs[fn].Result
	dst := mb.newValue(t)
	mb.emit(&Instr{Kind: InstrCall, Dst: dst, Type: t, Call: CallInstr{Callee: fn, Args: append([]Value(nil), args...)}})
	return dst
}

func (mb *ModuleBuilder) ValueType(v Value) types.Type {
	return mb.fn().ValueType(v)
}

func (mb *ModuleBuilder) ConditionalBranch(cond Value, then, els BlockID) {
	mb.setTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: then, Else: els}})
}

func (mb *ModuleBuilder) UnconditionalBranch(target BlockID) {
	mb.setTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}})
}

func (mb *ModuleBuilder) ReturnValue(v Value) {
	mb.setTerm(&Terminator{Kind: TermReturn, Return: ReturnTerm{HasValue: true, Value: v}})
}

func (mb *ModuleBuilder) ReturnVoid() {
	mb.setTerm(&Terminator{Kind: TermReturn})
}

func (mb *ModuleBuilder) MarkUnreachable() {
	mb.setTerm(&Terminator{Kind: TermUnreachable})
}
