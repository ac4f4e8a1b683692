package ast

// ExprChildren returns the direct sub-expressions of id in evaluation order.
func (b *Builder) ExprChildren(id ExprID) []ExprID {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprUnary:
		u, _ := b.Exprs.Unary(id)
		return []ExprID{u.Operand}
	case ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return []ExprID{bin.Left, bin.Right}
	case ExprCall:
		call, _ := b.Exprs.Call(id)
		return call.Args
	case ExprLit, ExprIdent:
		return nil
	default:
		return nil
	}
}

// StmtChildren returns the direct child statements and expressions of id
// in source order.
func (b *Builder) StmtChildren(id StmtID) (stmts []StmtID, exprs []ExprID) {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil, nil
	}
	switch st.Kind {
	case StmtVarDecl:
		d, _ := b.Stmts.VarDecl(id)
		return nil, []ExprID{d.Init}
	case StmtFnDecl:
		fn, _ := b.Stmts.FnDecl(id)
		return []StmtID{fn.Body}, nil
	case StmtBlock:
		blk, _ := b.Stmts.Block(id)
		return blk.Stmts, nil
	case StmtReturn:
		ret, _ := b.Stmts.Return(id)
		if ret.Value.IsValid() {
			return nil, []ExprID{ret.Value}
		}
		return nil, nil
	case StmtAssign:
		as, _ := b.Stmts.Assign(id)
		return nil, []ExprID{as.Value}
	case StmtControl:
		c, _ := b.Stmts.Control(id)
		for _, br := range c.Branches() {
			exprs = append(exprs, br.Cond)
			stmts = append(stmts, br.Body)
		}
		if c.Else.IsValid() {
			stmts = append(stmts, c.Else)
		}
		return stmts, exprs
	default:
		return nil, nil
	}
}
