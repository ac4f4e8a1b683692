package parser

import (
	"lev/internal/ast"
	"lev/internal/token"
)

// parseLetStmt: 'let' ['mut'] name [':' type] '=' expr
func (p *Parser) parseLetStmt() (ast.StmtID, error) {
	kw := p.advance()

	var isMut bool
	if p.at(token.KwMut) {
		isMut = true
		p.advance()
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoStmtID, err
	}
	typ, err := p.parseTypeAnnotation()
	if err != nil {
		return ast.NoStmtID, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return ast.NoStmtID, err
	}
	init, err := p.parseExpr()
	if err != nil {
		return ast.NoStmtID, err
	}
	span := kw.Span.Cover(p.exprSpan(init))
	if err := p.endSimpleStmt(); err != nil {
		return ast.NoStmtID, err
	}

	return p.arenas.Stmts.NewVarDecl(span, ast.StmtVarDeclData{
		Name:    name,
		Type:    typ,
		Init:    init,
		Mutable: isMut,
	}), nil
}
