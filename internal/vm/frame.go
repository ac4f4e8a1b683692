package vm

import (
	"lev/internal/ir"
	"lev/internal/source"
)

// SlotState holds the runtime state of a stack slot.
type SlotState struct {
	V      Value
	IsInit bool
	Name   string
}

// Frame represents a function activation record on the call stack.
type Frame struct {
	Func   *ir.Func
	BB     ir.BlockID
	IP     int // индекс инструкции в блоке; len(Instrs) — терминатор
	Slots  []SlotState
	Values []Value
	Args   []Value
	Span   source.Span

	// retDst is the caller value receiving this frame's result.
	retDst ir.Value
}

// NewFrame creates a frame positioned at the entry block of fn.
func NewFrame(fn *ir.Func, args []Value) *Frame {
	slots := make([]SlotState, len(fn.Slots))
	for i, s := range fn.Slots {
		slots[i] = SlotState{Name: s.Name}
	}
	return &Frame{
		Func:   fn,
		BB:     fn.Entry,
		Slots:  slots,
		Values: make([]Value, len(fn.Values)),
		Args:   args,
		Span:   fn.Span,
		retDst: ir.NoValue,
	}
}

// CurrentBlock returns the block being executed.
func (f *Frame) CurrentBlock() *ir.Block {
	return f.Func.Block(f.BB)
}

// CurrentInstr returns the current instruction, or nil at the terminator.
func (f *Frame) CurrentInstr() *ir.Instr {
	block := f.CurrentBlock()
	if block == nil || f.IP >= len(block.Instrs) {
		return nil
	}
	return &block.Instrs[f.IP]
}
