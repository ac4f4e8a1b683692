package codegen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/ast"
	"lev/internal/codegen"
	"lev/internal/ir"
	"lev/internal/lexer"
	"lev/internal/parser"
	"lev/internal/source"
)

func tryCompile(t *testing.T, src string) (*ir.Module, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lev", []byte(src)))
	toks, err := lexer.Tokenize(file)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	tree := ast.NewBuilder(ast.Hints{})
	stmts, err := parser.Parse(toks, tree)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	mb := ir.NewModuleBuilder()
	err = codegen.Compile(mb, tree, stmts)
	return mb.Module(), err
}

func compile(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, err := tryCompile(t, src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := ir.Validate(m); err != nil {
		t.Fatalf("Validate: %v\n%s", err, ir.DumpString(m))
	}
	return m
}

func compileError(t *testing.T, src string) *codegen.Error {
	t.Helper()
	_, err := tryCompile(t, src)
	var cerr *codegen.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *codegen.Error, got %v", err)
	}
	return cerr
}

func TestCompileMain(t *testing.T) {
	m := compile(t, "fn main() -> i32:\n    let variable: i32 = 5\n    return variable\n")
	want := `fn main() -> i32:
  slots:
    s0: i32 variable
  bb0 entry:
    %0 = const i32 5
    store s0, %0
    %1 = load i32 s0
    return %1
`
	be.Equal(t, ir.DumpString(m), want)
}

func TestArithmeticDispatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"signed div", "fn f(a: i32, b: i32) -> i32:\n    return a / b\n", "sdiv i32"},
		{"unsigned div", "fn f(a: u16, b: u16) -> u16:\n    return a / b\n", "udiv u16"},
		{"float add", "fn f(a: f64) -> f64:\n    return a + 1\n", "fadd f64"},
		{"unsigned compare", "fn f(a: u8) -> bool:\n    return a < 3\n", "cmp ult u8"},
		{"signed compare", "fn f(a: i64) -> bool:\n    return a >= 3\n", "cmp sge i64"},
		{"float compare", "fn f(a: f32) -> bool:\n    return a != 0.5\n", "cmp une f32"},
		{"negation", "fn f(a: i32) -> i32:\n    return -a\n", "sub i32"},
		{"not", "fn f(a: bool) -> bool:\n    return not a\n", "cmp eq bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dump := ir.DumpString(compile(t, tt.src))
			if !strings.Contains(dump, tt.want) {
				t.Fatalf("dump does not contain %q:\n%s", tt.want, dump)
			}
		})
	}
}

func TestLiteralTyping(t *testing.T) {
	dump := ir.DumpString(compile(t, "fn f() -> i64:\n    let a = 7\n    let b: f64 = 2\n    let c = 1.5\n    return -9223372036854775808\n"))
	for _, want := range []string{
		"s0: i32 a",
		"s1: f64 b",
		"s2: f32 c",
		"const f64 2",
		"const i64 -9223372036854775808",
	} {
		if !strings.Contains(dump, want) {
			t.Fatalf("dump does not contain %q:\n%s", want, dump)
		}
	}
}

func TestControlFlowSharesOneMergeBlock(t *testing.T) {
	src := `fn f(a: bool, b: bool) -> i32:
    let mut x: i32 = 0
    if a:
        x = 1
    else if b:
        x = 2
    else:
        x = 3
    return x
`
	m := compile(t, src)
	f, ok := m.Func("f")
	be.True(t, ok)

	var merges []ir.BlockID
	for _, blk := range f.Blocks {
		if blk.Label == "merge" {
			merges = append(merges, blk.ID)
		}
	}
	be.Equal(t, len(merges), 1)
	be.Equal(t, len(ir.Predecessors(f, merges[0])), 3)
	be.Equal(t, f.Layout[len(f.Layout)-1], merges[0])
}

func TestControlWithoutElseFallsThrough(t *testing.T) {
	src := "fn f(a: i32) -> i32:\n    if a > 0:\n        return 1\n    return 0\n"
	f, _ := compile(t, src).Func("f")
	var merge ir.BlockID = ir.NoBlockID
	for _, blk := range f.Blocks {
		if blk.Label == "merge" {
			merge = blk.ID
		}
	}
	be.Equal(t, len(ir.Predecessors(f, merge)), 1)
}

func TestAllBranchesReturnMakesMergeUnreachable(t *testing.T) {
	src := "fn f(a: bool) -> i32:\n    if a:\n        return 1\n    else:\n        return 2\n"
	f, _ := compile(t, src).Func("f")
	for _, blk := range f.Blocks {
		if blk.Label == "merge" {
			be.Equal(t, blk.Term.Kind, ir.TermUnreachable)
		}
	}
}

func TestCodeAfterReturnIsChecked(t *testing.T) {
	cerr := compileError(t, "fn f() -> i32:\n    return 1\n    return y\n")
	be.Equal(t, cerr.Kind, codegen.UndefinedVariable)
	be.Equal(t, cerr.Name, "y")
}

func TestShortCircuit(t *testing.T) {
	src := "fn f(a: i32, b: i32) -> bool:\n    return b != 0 and a / b > 1\n"
	f, _ := compile(t, src).Func("f")
	labels := map[string]int{}
	for _, blk := range f.Blocks {
		labels[blk.Label]++
	}
	be.Equal(t, labels["and.rhs"], 1)
	be.Equal(t, labels["and.end"], 1)
}

func TestCallsMayReferToLaterFunctions(t *testing.T) {
	src := "fn main() -> i32:\n    return twice(21)\n\nfn twice(x: i32) -> i32:\n    return x * 2\n"
	dump := ir.DumpString(compile(t, src))
	if !strings.Contains(dump, "call i32 twice(") {
		t.Fatalf("missing call:\n%s", dump)
	}
}

func TestImmutability(t *testing.T) {
	cerr := compileError(t, "fn main() -> i32:\n    let x: i32 = 5\n    x = 6\n    return x\n")
	be.Equal(t, cerr.Kind, codegen.AssignmentToImmutableVariable)
	be.Equal(t, cerr.Name, "x")
	be.Equal(t, cerr.Span.Line, uint32(3))
	be.Equal(t, cerr.Decl.Line, uint32(2))
	be.Equal(t, cerr.Decl.Len(), uint32(1))

	compile(t, "fn main() -> i32:\n    let mut x: i32 = 5\n    x = 6\n    return x\n")
}

func TestUndefinedVariableSpan(t *testing.T) {
	cerr := compileError(t, "fn main() -> i32:\n    let a: i32 = 1\n    return a + nope\n")
	be.Equal(t, cerr.Kind, codegen.UndefinedVariable)
	be.Equal(t, cerr.Name, "nope")
	be.Equal(t, cerr.Span.Line, uint32(3))
	be.Equal(t, cerr.Span.Len(), uint32(4))
	be.Equal(t, cerr.Error(), "undefined variable 'nope'")
}

func TestShadowingInInnerBlock(t *testing.T) {
	src := `fn f(c: bool) -> i32:
    let x: i32 = 1
    if c:
        let x: i64 = 2
        let y: i64 = x
    return x
`
	m := compile(t, src)
	f, _ := m.Func("f")
	be.Equal(t, f.Result.String(), "i32")
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind codegen.ErrorKind
		msg  string
	}{
		{"redeclaration", "fn f() -> i32:\n    let a = 1\n    let a = 2\n    return a\n", codegen.IllFormed, "already declared"},
		{"missing return", "fn f() -> i32:\n    let a = 1\n", codegen.IllFormed, "missing return"},
		{"literal range", "fn f() -> u8:\n    return 256\n", codegen.IllFormed, "out of range for u8"},
		{"negative unsigned", "fn f() -> u8:\n    return -1\n", codegen.IllFormed, "out of range"},
		{"float into int", "fn f() -> i32:\n    return 1.5\n", codegen.IllFormed, "found float literal"},
		{"mismatch", "fn f(a: i64) -> i32:\n    return a\n", codegen.IllFormed, "expected i32, found i64"},
		{"bool arithmetic", "fn f(a: bool) -> bool:\n    return a + a\n", codegen.IllFormed, "cannot produce bool"},
		{"string", "fn f() -> i32:\n    let s = \"x\"\n    return 0\n", codegen.Unimplemented, "string literal"},
		{"top level let", "let a = 1\n", codegen.Unimplemented, "top-level VariableDeclaration"},
		{"user type", "fn f(p: Point) -> i32:\n    return 0\n", codegen.Unimplemented, "user-defined type 'Point'"},
		{"arity", "fn g(a: i32) -> i32:\n    return a\nfn f() -> i32:\n    return g()\n", codegen.IllFormed, "takes 1 arguments"},
		{"undefined function", "fn f() -> i32:\n    return g()\n", codegen.UndefinedVariable, "undefined function 'g'"},
		{"duplicate function", "fn f() -> i32:\n    return 0\nfn f() -> i32:\n    return 1\n", codegen.IllFormed, "already declared"},
		{"condition type", "fn f() -> i32:\n    if 1:\n        return 1\n    return 0\n", codegen.IllFormed, "expected bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cerr := compileError(t, tt.src)
			be.Equal(t, cerr.Kind, tt.kind)
			if !strings.Contains(cerr.Error(), tt.msg) {
				t.Fatalf("error %q does not contain %q", cerr.Error(), tt.msg)
			}
		})
	}
}
