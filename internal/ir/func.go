package ir

import (
	"lev/internal/source"
	"lev/internal/types"
)

type Block struct {
	ID     BlockID
	Label  string
	Instrs []Instr
	Term   Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// Param is one declared function parameter.
type Param struct {
	Name string
	Type types.Type
}

// SlotInfo describes a stack allocation. Backends hoist all slots to the entry block.
type SlotInfo struct {
	Name string
	Type types.Type
}

type Func struct {
	ID   FuncID
	Name string
	Span source.Span

	Params []Param
	Result types.Type

	Slots  []SlotInfo
	Values []types.Type // тип каждого SSA-значения
	Blocks []Block      // по BlockID
	Layout []BlockID    // порядок вывода блоков
	Entry  BlockID
}

// Block returns the block with the given id or nil.
func (f *Func) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}

// ValueType returns the type of v.
func (f *Func) ValueType(v Value) types.Type {
	if v < 0 || int(v) >= len(f.Values) {
		return types.Type{}
	}
	return f.Values[v]
}

// Module is the lowering result for one compilation unit.
type Module struct {
	Funcs []*Func
}

// Func looks a function up by name.
func (m *Module) Func(name string) (*Func, bool) {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
