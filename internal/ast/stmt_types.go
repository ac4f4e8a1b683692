package ast

import (
	"lev/internal/source"
	"lev/internal/token"
	"lev/internal/types"
)

// StmtKind enumerates statement variants.
type StmtKind uint8

const (
	StmtVarDecl StmtKind = iota + 1
	StmtFnDecl
	StmtBlock
	StmtReturn
	StmtAssign
	StmtControl
)

func (k StmtKind) String() string {
	switch k {
	case StmtVarDecl:
		return "VariableDeclaration"
	case StmtFnDecl:
		return "FunctionDeclaration"
	case StmtBlock:
		return "Block"
	case StmtReturn:
		return "Return"
	case StmtAssign:
		return "Assignment"
	case StmtControl:
		return "Control"
	default:
		return "Stmt(?)"
	}
}

// Stmt is the arena header of a statement. Span covers the statement's
// header line only (`let x = 1`, `fn f() -> i32:`, `if c:`).
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtVarDeclData struct {
	Name    token.Token
	Type    types.Type // types.Inferred() без аннотации
	Init    ExprID
	Mutable bool
}

// FnParam is one `name: type` entry of a function signature.
type FnParam struct {
	Name token.Token
	Type types.Type
}

type StmtFnDeclData struct {
	Name   token.Token
	Params []FnParam
	Result types.Type
	Body   StmtID // всегда StmtBlock
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtReturnData struct {
	Value ExprID // NoExprID для голого return
}

type StmtAssignData struct {
	Name  token.Token
	Value ExprID
}

// Branch is a condition with the block it guards.
type Branch struct {
	Cond ExprID
	Body StmtID
}

type StmtControlData struct {
	If      Branch
	ElseIfs []Branch
	Else    StmtID // NoStmtID без else
}

// Branches returns the if branch followed by the else-if branches in source order.
func (c *StmtControlData) Branches() []Branch {
	out := make([]Branch, 0, 1+len(c.ElseIfs))
	out = append(out, c.If)
	return append(out, c.ElseIfs...)
}
