package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lev/internal/ast"
	"lev/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every node span belongs to sf and lies within its content
// 2) expression spans are non-empty and cover their sub-expressions
// 3) let, return and assignment spans cover their expressions
// 4) sibling statements appear in source order
func CheckSpanInvariants(b *ast.Builder, stmts []ast.StmtID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := spanChecker{b: b, file: sf.ID, size: size}
	return c.stmtList(stmts)
}

type spanChecker struct {
	b    *ast.Builder
	file source.FileID
	size uint32
}

func (c *spanChecker) bounds(sp source.Span, what string) error {
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if sp.End < sp.Start || sp.End > c.size {
		return fmt.Errorf("%s span %v out of bounds (content %d bytes)", what, sp, c.size)
	}
	return nil
}

func (c *spanChecker) stmtList(ids []ast.StmtID) error {
	for i, id := range ids {
		st := c.b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		if i == 0 {
			continue
		}
		if prev := c.b.Stmts.Get(ids[i-1]).Span; st.Span.Start <= prev.Start {
			return fmt.Errorf("%s at %v is not after %v", st.Kind, st.Span, prev)
		}
	}
	for _, id := range ids {
		if err := c.stmt(id, c.b.Stmts.Get(id)); err != nil {
			return err
		}
	}
	return nil
}

func (c *spanChecker) stmt(id ast.StmtID, st *ast.Stmt) error {
	if err := c.bounds(st.Span, st.Kind.String()); err != nil {
		return err
	}
	children, exprs := c.b.StmtChildren(id)
	for _, e := range exprs {
		if err := c.expr(e); err != nil {
			return err
		}
		switch st.Kind {
		case ast.StmtVarDecl, ast.StmtReturn, ast.StmtAssign:
			if sp := c.b.Exprs.Get(e).Span; !covers(st.Span, sp) {
				return fmt.Errorf("%s span %v does not cover expression %v", st.Kind, st.Span, sp)
			}
		}
	}
	if st.Kind == ast.StmtBlock {
		return c.stmtList(children)
	}
	for _, child := range children {
		cst := c.b.Stmts.Get(child)
		if cst == nil {
			return fmt.Errorf("nil statement for id=%d", child)
		}
		if err := c.stmt(child, cst); err != nil {
			return err
		}
	}
	return nil
}

func (c *spanChecker) expr(id ast.ExprID) error {
	e := c.b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	if err := c.bounds(e.Span, e.Kind.String()); err != nil {
		return err
	}
	if e.Span.End == e.Span.Start {
		return fmt.Errorf("empty %s span: %v", e.Kind, e.Span)
	}
	for _, child := range c.b.ExprChildren(id) {
		if err := c.expr(child); err != nil {
			return err
		}
		if sp := c.b.Exprs.Get(child).Span; !covers(e.Span, sp) {
			return fmt.Errorf("%s span %v does not cover operand %v", e.Kind, e.Span, sp)
		}
	}
	return nil
}

func covers(outer, inner source.Span) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}
