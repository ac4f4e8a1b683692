package codegen

import (
	"fmt"

	"lev/internal/ast"
	"lev/internal/sema"
)

// lowerBlock lowers a block statement inside its own scope.
func (c *Compiler) lowerBlock(id ast.StmtID) error {
	blk, ok := c.tree.Stmts.Block(id)
	if !ok {
		st := c.tree.Stmts.Get(id)
		if st == nil {
			return errIllFormed(c.cur.span, "missing block")
		}
		return errIllFormed(st.Span, "expected block, found %s", st.Kind)
	}
	c.ctx.CreateScope()
	defer c.ctx.PopCurrentScope()
	for _, s := range blk.Stmts {
		c.ensureOpen()
		if err := c.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) lowerStmt(id ast.StmtID) error {
	st := c.tree.Stmts.Get(id)
	c.ctx.AddContext(id)
	defer c.ctx.PopContext()

	switch st.Kind {
	case ast.StmtVarDecl:
		return c.lowerVarDecl(id)
	case ast.StmtReturn:
		return c.lowerReturn(id)
	case ast.StmtAssign:
		return c.lowerAssign(id)
	case ast.StmtControl:
		return c.lowerControl(id)
	case ast.StmtBlock:
		return c.lowerBlock(id)
	case ast.StmtFnDecl:
		return errUnimplemented(st.Span, "nested function declaration")
	default:
		return errIllFormed(st.Span, "unknown statement %s", st.Kind)
	}
}

func (c *Compiler) lowerVarDecl(id ast.StmtID) error {
	st := c.tree.Stmts.Get(id)
	decl, _ := c.tree.Stmts.VarDecl(id)
	name := decl.Name.Text

	if c.ctx.DeclaredInCurrentScope(name) {
		prev, _ := c.ctx.GetVariableDeclaration(name)
		return &Error{
			Kind: IllFormed,
			Name: name,
			Span: decl.Name.Span,
			Msg:  fmt.Sprintf("variable '%s' is already declared in this scope at line %d", name, prev.Span.Line),
		}
	}
	if !decl.Type.IsInferred() {
		if err := c.checkStorable(decl.Type, st.Span); err != nil {
			return err
		}
	}

	want, _ := c.ctx.AppropriateExprType()
	v, got, err := c.lowerExpr(decl.Init, want)
	if err != nil {
		return err
	}
	typ := decl.Type
	if typ.IsInferred() {
		typ = got
	}
	c.ctx.AssignVariable(sema.Decl{
		Name:    name,
		Type:    typ,
		Mutable: decl.Mutable,
		Span:    decl.Name.Span,
	}, v)
	return nil
}

func (c *Compiler) lowerAssign(id ast.StmtID) error {
	as, _ := c.tree.Stmts.Assign(id)
	name := as.Name.Text
	b, ok := c.ctx.LookupVariable(name)
	if !ok {
		return errUndefined(name, as.Name.Span)
	}
	if !b.Mutable {
		return errImmutable(name, as.Name.Span, b.Span)
	}
	v, _, err := c.lowerExpr(as.Value, b.Type)
	if err != nil {
		return err
	}
	c.b.Store(b.Slot, v)
	return nil
}

func (c *Compiler) lowerReturn(id ast.StmtID) error {
	st := c.tree.Stmts.Get(id)
	ret, _ := c.tree.Stmts.Return(id)
	want, ok := c.ctx.AppropriateExprType()
	if !ok {
		want = c.cur.result
	}
	if !ret.Value.IsValid() {
		return errIllFormed(st.Span, "missing return value in function '%s' returning %s", c.cur.name, want)
	}
	v, _, err := c.lowerExpr(ret.Value, want)
	if err != nil {
		return err
	}
	c.b.ReturnValue(v)
	return nil
}
