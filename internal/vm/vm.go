package vm

import (
	"fmt"

	"lev/internal/ir"
	"lev/internal/source"
)

// DefaultMaxDepth bounds recursion when Options.MaxDepth is zero.
const DefaultMaxDepth = 1024

// Options configures VM execution.
type Options struct {
	Trace    *Tracer
	MaxDepth int
}

// VM is a direct IR interpreter.
type VM struct {
	M        *ir.Module
	Stack    []Frame
	Files    *source.FileSet
	Trace    *Tracer
	MaxDepth int
	Halted   bool
	Steps    uint64

	result Value
}

// New creates a VM for m. files is used only to render panics.
func New(m *ir.Module, files *source.FileSet, opts Options) *VM {
	vm := &VM{
		M:        m,
		Files:    files,
		Trace:    opts.Trace,
		MaxDepth: opts.MaxDepth,
	}
	if vm.MaxDepth <= 0 {
		vm.MaxDepth = DefaultMaxDepth
	}
	return vm
}

// RunMain executes `main` with no arguments and returns its result.
func (vm *VM) RunMain() (Value, error) {
	fn, ok := vm.M.Func("main")
	if !ok {
		return Value{}, &VMError{Code: PanicNoEntry, Message: "function main is not defined"}
	}
	if len(fn.Params) != 0 {
		return Value{}, &VMError{Code: PanicNoEntry, Message: fmt.Sprintf("main takes %d parameters, want none", len(fn.Params)), Span: fn.Span}
	}
	return vm.Call(fn.Name, nil)
}

// Call runs the named function to completion.
func (vm *VM) Call(name string, args []Value) (Value, error) {
	fn, ok := vm.M.Func(name)
	if !ok {
		return Value{}, &VMError{Code: PanicNoEntry, Message: fmt.Sprintf("function %s is not defined", name)}
	}
	if len(args) != len(fn.Params) {
		return Value{}, &VMError{Code: PanicNoEntry, Message: fmt.Sprintf("%s takes %d arguments, %d given", name, len(fn.Params), len(args))}
	}
	for i, a := range args {
		if a.Type != fn.Params[i].Type {
			return Value{}, &VMError{Code: PanicTypeMismatch, Message: fmt.Sprintf("argument %d of %s: expected %s, got %s", i, name, fn.Params[i].Type, a.Type)}
		}
	}

	vm.Stack = vm.Stack[:0]
	vm.Halted = false
	vm.result = Value{}
	vm.Stack = append(vm.Stack, *NewFrame(fn, args))

	for !vm.Halted && len(vm.Stack) > 0 {
		if err := vm.Step(); err != nil {
			return Value{}, err
		}
	}
	return vm.result, nil
}

// Step executes one instruction or terminator of the top frame.
func (vm *VM) Step() *VMError {
	if len(vm.Stack) == 0 {
		vm.Halted = true
		return nil
	}
	vm.Steps++
	fr := &vm.Stack[len(vm.Stack)-1]
	blk := fr.CurrentBlock()
	if blk == nil {
		return vm.failf(PanicUnimplemented, "%s: no block bb%d", fr.Func.Name, fr.BB)
	}
	if fr.IP < len(blk.Instrs) {
		ins := &blk.Instrs[fr.IP]
		if vm.Trace != nil {
			vm.Trace.TraceInstr(len(vm.Stack)-1, vm.M, fr.Func, fr.BB, ins)
		}
		fr.IP++
		return vm.execInstr(fr, ins)
	}
	if vm.Trace != nil {
		vm.Trace.TraceTerm(len(vm.Stack)-1, fr.Func, fr.BB, &blk.Term)
	}
	return vm.execTerminator(fr, &blk.Term)
}
