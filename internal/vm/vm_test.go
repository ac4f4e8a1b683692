package vm_test

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
	"lev/internal/types"
	"lev/internal/vm"
)

func build(t *testing.T, src string) *ir.Module {
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
	if err := codegen.Compile(mb, tree, stmts); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := ir.Validate(mb.Module()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return mb.Module()
}

func runMain(t *testing.T, src string) vm.Value {
	t.Helper()
	res, err := vm.New(build(t, src), nil, vm.Options{}).RunMain()
	if err != nil {
		t.Fatalf("RunMain: %v", err)
	}
	return res
}

func TestMainReturnsVariable(t *testing.T) {
	res := runMain(t, "fn main() -> i32:\n    let variable: i32 = 5\n    return variable\n")
	be.Equal(t, res.Type, types.TypeI32)
	be.Equal(t, res.Int(), int64(5))
}

func TestArithmeticPrecedence(t *testing.T) {
	res := runMain(t, "fn main() -> i32:\n    let variable: i32 = 5 + 2 * 10\n    return variable\n")
	be.Equal(t, res.Int(), int64(25))
}

func TestPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"left associative",
			"fn main() -> i32:\n    return 20 - 5 - 3\n",
			"12:i32",
		},
		{
			"else if chain",
			`fn pick(n: i32) -> i32:
    let mut r: i32 = 0
    if n < 0:
        r = -1
    else if n == 0:
        r = 0
    else:
        r = 1
    return r

fn main() -> i32:
    return pick(-7) * 100 + pick(0) * 10 + pick(3)
`,
			"-99:i32",
		},
		{
			"recursion",
			`fn fact(n: i64) -> i64:
    if n <= 1:
        return 1
    return n * fact(n - 1)

fn main() -> i64:
    return fact(20)
`,
			"2432902008176640000:i64",
		},
		{
			"unsigned wraps",
			"fn main() -> u8:\n    let a: u8 = 200\n    return a + 100\n",
			"44:u8",
		},
		{
			"signed division truncates",
			"fn main() -> i8:\n    let a: i8 = -7\n    return a / 2\n",
			"-3:i8",
		},
		{
			"min over minus one wraps",
			"fn main() -> i8:\n    let a: i8 = -128\n    return a / -1\n",
			"-128:i8",
		},
		{
			"float",
			"fn main() -> f64:\n    let x = 1.5\n    let y: f64 = 2\n    return y * 2.25\n",
			"4.5:f64",
		},
		{
			"short circuit skips division",
			"fn main() -> bool:\n    let b: i32 = 0\n    return b != 0 and 10 / b > 1\n",
			"false:bool",
		},
		{
			"or",
			"fn main() -> bool:\n    return false or not false\n",
			"true:bool",
		},
		{
			"compound assignment",
			"fn main() -> i32:\n    let mut x: i32 = 3\n    x += 4\n    x *= 2\n    return x\n",
			"14:i32",
		},
		{
			"shadowing",
			`fn main() -> i32:
    let x: i32 = 1
    if true:
        let x: i32 = 50
        if x > 10:
            return x + 1
    return x
`,
			"51:i32",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, runMain(t, tt.src).String(), tt.want)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	m := build(t, "fn div(a: i32, b: i32) -> i32:\n    return a / b\n\nfn main() -> i32:\n    return div(1, 0)\n")
	_, err := vm.New(m, nil, vm.Options{}).RunMain()
	var verr *vm.VMError
	be.True(t, errors.As(err, &verr))
	be.Equal(t, verr.Code, vm.PanicDivisionByZero)
	be.Equal(t, len(verr.Backtrace), 2)
	be.Equal(t, verr.Backtrace[0].FuncName, "div")
	be.Equal(t, verr.Backtrace[1].FuncName, "main")
}

func TestStackOverflow(t *testing.T) {
	m := build(t, "fn loop(n: i32) -> i32:\n    return loop(n + 1)\n\nfn main() -> i32:\n    return loop(0)\n")
	_, err := vm.New(m, nil, vm.Options{MaxDepth: 64}).RunMain()
	var verr *vm.VMError
	be.True(t, errors.As(err, &verr))
	be.Equal(t, verr.Code, vm.PanicStackOverflow)
	be.Equal(t, verr.Code.String(), "VM1008")
}

func TestCallWithArguments(t *testing.T) {
	m := build(t, "fn add(a: i32, b: i32) -> i32:\n    return a + b\n")
	machine := vm.New(m, nil, vm.Options{})
	res, err := machine.Call("add", []vm.Value{vm.MakeInt(types.TypeI32, 40), vm.MakeInt(types.TypeI32, 2)})
	be.Err(t, err, nil)
	be.Equal(t, res.Int(), int64(42))

	_, err = machine.Call("add", []vm.Value{vm.MakeInt(types.TypeI64, 1), vm.MakeInt(types.TypeI32, 2)})
	be.Err(t, err)

	_, err = machine.RunMain()
	be.Err(t, err)
}

func TestTrace(t *testing.T) {
	var sb strings.Builder
	m := build(t, "fn main() -> i32:\n    return 5\n")
	_, err := vm.New(m, nil, vm.Options{Trace: vm.NewTracer(&sb)}).RunMain()
	be.Err(t, err, nil)
	be.Equal(t, sb.String(), "[main bb0] %0 = const i32 5\n[main bb0] return %0\n")
}
