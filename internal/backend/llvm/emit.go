// Package llvm renders an ir.Module as textual LLVM IR.
package llvm

import (
	"cmp"
	"fmt"
	"strings"

	"lev/internal/ir"
)

// DefaultTriple is used when Options.Triple is empty.
const DefaultTriple = "x86_64-unknown-linux-gnu"

type Options struct {
	SourceName string // ModuleID and source_filename; omitted when empty
	Triple     string
}

// signature is a function type already spelled in LLVM terms.
type signature struct {
	ret    string
	params []string
}

type moduleEmitter struct {
	mod  *ir.Module
	out  strings.Builder
	sigs map[ir.FuncID]signature
}

// EmitModule returns the LLVM assembly for mod. Signatures are resolved
// up front so calls can reference functions defined later.
func EmitModule(mod *ir.Module, opts Options) (string, error) {
	if mod == nil {
		return "", nil
	}
	me := &moduleEmitter{mod: mod, sigs: make(map[ir.FuncID]signature, len(mod.Funcs))}
	for _, f := range mod.Funcs {
		if f == nil {
			continue
		}
		sig, err := signatureOf(f)
		if err != nil {
			return "", fmt.Errorf("function %s: %w", f.Name, err)
		}
		me.sigs[f.ID] = sig
	}

	if opts.SourceName != "" {
		fmt.Fprintf(&me.out, "; ModuleID = '%s'\nsource_filename = %q\n", opts.SourceName, opts.SourceName)
	}
	fmt.Fprintf(&me.out, "target triple = %q\n", cmp.Or(opts.Triple, DefaultTriple))
	for _, f := range mod.Funcs {
		if f == nil {
			continue
		}
		me.out.WriteByte('\n')
		if err := me.function(f); err != nil {
			return "", err
		}
	}
	return me.out.String(), nil
}

func signatureOf(f *ir.Func) (signature, error) {
	ret, err := llvmType(f.Result)
	if err != nil {
		return signature{}, err
	}
	sig := signature{ret: ret, params: make([]string, 0, len(f.Params))}
	for _, p := range f.Params {
		t, err := llvmType(p.Type)
		if err != nil {
			return signature{}, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		sig.params = append(sig.params, t)
	}
	return sig, nil
}
