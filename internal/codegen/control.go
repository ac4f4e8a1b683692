package codegen

import (
	"lev/internal/ast"
	"lev/internal/ir"
	"lev/internal/types"
)

// lowerControl lowers if / else if / else as a chain of conditional
// branches. Every branch that falls through jumps to one shared merge block,
// which is placed after the last emitted block.
func (c *Compiler) lowerControl(id ast.StmtID) error {
	ctl, _ := c.tree.Stmts.Control(id)
	merge := c.b.CreateBlock("merge")

	for _, br := range ctl.Branches() {
		cond, err := c.lowerCondition(br.Cond)
		if err != nil {
			return err
		}
		then := c.b.CreateBlock("then")
		els := c.b.CreateBlock("else")
		c.condBranch(cond, then, els)

		c.b.SetInsertionPoint(then)
		if err := c.lowerBlock(br.Body); err != nil {
			return err
		}
		c.branch(merge)

		c.b.SetInsertionPoint(els)
	}
	if ctl.Else.IsValid() {
		if err := c.lowerBlock(ctl.Else); err != nil {
			return err
		}
	}
	c.branch(merge)

	c.b.MoveBlockToEnd(merge)
	c.b.SetInsertionPoint(merge)
	if !c.reachable[merge] {
		c.b.MarkUnreachable()
	}
	return nil
}

// lowerCondition evaluates a branch condition and coerces it with
// `compare eq cond, true`.
func (c *Compiler) lowerCondition(id ast.ExprID) (ir.Value, error) {
	v, _, err := c.lowerExpr(id, types.TypeBool)
	if err != nil {
		return ir.NoValue, err
	}
	t := c.b.Constant(types.TypeBool, ir.BoolBits(true))
	return c.b.Compare(ir.ICmpEq, types.TypeBool, v, t), nil
}
