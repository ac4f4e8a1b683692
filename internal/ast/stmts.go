package ast

import (
	"lev/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena    *Arena[Stmt]
	VarDecls *Arena[StmtVarDeclData]
	FnDecls  *Arena[StmtFnDeclData]
	Blocks   *Arena[StmtBlockData]
	Returns  *Arena[StmtReturnData]
	Assigns  *Arena[StmtAssignData]
	Controls *Arena[StmtControlData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		VarDecls: NewArena[StmtVarDeclData](capHint / 2),
		FnDecls:  NewArena[StmtFnDeclData](capHint / 8),
		Blocks:   NewArena[StmtBlockData](capHint / 4),
		Returns:  NewArena[StmtReturnData](capHint / 4),
		Assigns:  NewArena[StmtAssignData](capHint / 4),
		Controls: NewArena[StmtControlData](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt { return s.Arena.Get(uint32(id)) }

func (s *Stmts) header(id StmtID, kind StmtKind) (PayloadID, bool) {
	if st := s.Get(id); st != nil && st.Kind == kind {
		return st.Payload, true
	}
	return NoPayloadID, false
}

func (s *Stmts) NewVarDecl(span source.Span, data StmtVarDeclData) StmtID {
	return s.new(StmtVarDecl, span, s.VarDecls.Allocate(data))
}

func (s *Stmts) VarDecl(id StmtID) (*StmtVarDeclData, bool) {
	pid, ok := s.header(id, StmtVarDecl)
	return variantOf(s.VarDecls, pid, ok)
}

func (s *Stmts) NewFnDecl(span source.Span, data StmtFnDeclData) StmtID {
	data.Params = append([]FnParam(nil), data.Params...)
	return s.new(StmtFnDecl, span, s.FnDecls.Allocate(data))
}

func (s *Stmts) FnDecl(id StmtID) (*StmtFnDeclData, bool) {
	pid, ok := s.header(id, StmtFnDecl)
	return variantOf(s.FnDecls, pid, ok)
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: append([]StmtID(nil), stmts...)}))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	pid, ok := s.header(id, StmtBlock)
	return variantOf(s.Blocks, pid, ok)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	pid, ok := s.header(id, StmtReturn)
	return variantOf(s.Returns, pid, ok)
}

func (s *Stmts) NewAssign(span source.Span, data StmtAssignData) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(data))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	pid, ok := s.header(id, StmtAssign)
	return variantOf(s.Assigns, pid, ok)
}

func (s *Stmts) NewControl(span source.Span, data StmtControlData) StmtID {
	data.ElseIfs = append([]Branch(nil), data.ElseIfs...)
	return s.new(StmtControl, span, s.Controls.Allocate(data))
}

func (s *Stmts) Control(id StmtID) (*StmtControlData, bool) {
	pid, ok := s.header(id, StmtControl)
	return variantOf(s.Controls, pid, ok)
}
