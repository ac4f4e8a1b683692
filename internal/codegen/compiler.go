// Package codegen lowers a parsed program into IR through an ir.Builder,
// resolving names and literal types with a sema.Context.
package codegen

import (
	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/sema"
	"lev/internal/source"
	"lev/internal/types"
)

type funcSig struct {
	id     ir.FuncID
	name   string
	params []ast.FnParam
	result types.Type
	span   source.Span
}

// Compiler lowers one compilation unit. It is single use and not safe for
// concurrent calls.
type Compiler struct {
	b     ir.Builder
	tree  *ast.Builder
	ctx   *sema.Context
	funcs map[string]*funcSig

	cur       *funcSig
	reachable map[ir.BlockID]bool
}

func New(b ir.Builder, tree *ast.Builder) *Compiler {
	return &Compiler{
		b:     b,
		tree:  tree,
		ctx:   sema.NewContext(b, tree),
		funcs: make(map[string]*funcSig),
	}
}

// Compile lowers stmts into b and returns the first error as *Error.
func Compile(b ir.Builder, tree *ast.Builder, stmts []ast.StmtID) error {
	return New(b, tree).Compile(stmts)
}

// Compile declares every top-level function first, so calls may refer to
// functions defined later, then lowers the bodies in source order.
func (c *Compiler) Compile(stmts []ast.StmtID) error {
	c.ctx.CreateScope()
	defer c.ctx.PopCurrentScope()

	for _, id := range stmts {
		if err := c.declareFunc(id); err != nil {
			return err
		}
	}
	for _, id := range stmts {
		if err := c.lowerFunc(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) declareFunc(id ast.StmtID) error {
	st := c.tree.Stmts.Get(id)
	fn, ok := c.tree.Stmts.FnDecl(id)
	if !ok {
		return errUnimplemented(st.Span, "top-level %s", st.Kind)
	}
	name := fn.Name.Text
	if prev, dup := c.funcs[name]; dup {
		return errIllFormed(fn.Name.Span, "function '%s' is already declared at line %d", name, prev.span.Line)
	}
	if err := c.checkStorable(fn.Result, st.Span); err != nil {
		return err
	}
	params := make([]ir.Param, len(fn.Params))
	seen := make(map[string]bool, len(fn.Params))
	for i, p := range fn.Params {
		if seen[p.Name.Text] {
			return errIllFormed(p.Name.Span, "duplicate parameter '%s'", p.Name.Text)
		}
		seen[p.Name.Text] = true
		if err := c.checkStorable(p.Type, p.Name.Span); err != nil {
			return err
		}
		params[i] = ir.Param{Name: p.Name.Text, Type: p.Type}
	}
	c.funcs[name] = &funcSig{
		id:     c.b.DeclareFunction(name, params, fn.Result, st.Span),
		name:   name,
		params: fn.Params,
		result: fn.Result,
		span:   st.Span,
	}
	return nil
}

// checkStorable rejects types the backend has no representation for.
func (c *Compiler) checkStorable(t types.Type, span source.Span) error {
	switch t.Kind {
	case types.KindBuiltin:
		return nil
	case types.KindUserDefined:
		return errUnimplemented(span, "user-defined type '%s'", t.Name)
	case types.KindGeneric:
		return errUnimplemented(span, "generic type")
	case types.KindInferred:
		return errIllFormed(span, "missing type")
	default:
		return errIllFormed(span, "unknown type %s", t.Label())
	}
}

func (c *Compiler) lowerFunc(id ast.StmtID) error {
	fn, _ := c.tree.Stmts.FnDecl(id)
	sig := c.funcs[fn.Name.Text]
	c.cur = sig
	c.reachable = make(map[ir.BlockID]bool)
	defer func() { c.cur = nil }()

	c.ctx.AddContext(id)
	defer c.ctx.PopContext()

	c.b.BeginFunction(sig.id)
	entry := c.b.CreateBlock("entry")
	c.reachable[entry] = true
	c.b.SetInsertionPoint(entry)

	c.ctx.CreateScope()
	defer c.ctx.PopCurrentScope()
	for i, p := range sig.params {
		c.ctx.AssignVariable(sema.Decl{
			Name: p.Name.Text,
			Type: p.Type,
			Span: p.Name.Span,
		}, c.b.Param(i))
	}

	if err := c.lowerBlock(fn.Body); err != nil {
		return err
	}
	if !c.b.Terminated() {
		if c.isReachable() {
			return errIllFormed(sig.span, "missing return in function '%s' returning %s", sig.name, sig.result)
		}
		c.b.MarkUnreachable()
	}
	return nil
}

// isReachable reports whether control can reach the insertion block.
func (c *Compiler) isReachable() bool {
	return c.reachable[c.b.InsertionPoint()]
}

func (c *Compiler) branch(target ir.BlockID) {
	if c.isReachable() && !c.b.Terminated() {
		c.reachable[target] = true
	}
	c.b.UnconditionalBranch(target)
}

func (c *Compiler) condBranch(cond ir.Value, then, els ir.BlockID) {
	if c.isReachable() && !c.b.Terminated() {
		c.reachable[then] = true
		c.reachable[els] = true
	}
	c.b.ConditionalBranch(cond, then, els)
}

// ensureOpen moves the insertion point to a fresh unreachable block when the
// current one is already terminated, so statements after a return are still
// checked.
func (c *Compiler) ensureOpen() {
	if c.b.Terminated() {
		c.b.SetInsertionPoint(c.b.CreateBlock("dead"))
	}
}
