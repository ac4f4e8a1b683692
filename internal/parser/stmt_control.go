package parser

import (
	"lev/internal/ast"
	"lev/internal/source"
	"lev/internal/token"
)

// parseControlStmt: 'if' cond ':' block ('else' 'if' cond ':' block)* ['else' ':' block]
// Ветки собираются в порядке исходника; терминальный else - не больше одного.
func (p *Parser) parseControlStmt() (ast.StmtID, error) {
	kw := p.advance()
	first, header, err := p.parseBranch(kw.Span)
	if err != nil {
		return ast.NoStmtID, err
	}
	data := ast.StmtControlData{If: first}

	for p.at(token.KwElse) {
		elseTok := p.advance()
		if p.at(token.KwIf) {
			p.advance()
			br, _, err := p.parseBranch(elseTok.Span)
			if err != nil {
				return ast.NoStmtID, err
			}
			data.ElseIfs = append(data.ElseIfs, br)
			continue
		}
		if _, err := p.expect(token.Colon); err != nil {
			return ast.NoStmtID, err
		}
		if data.Else, err = p.parseBlock(); err != nil {
			return ast.NoStmtID, err
		}
		break
	}

	return p.arenas.Stmts.NewControl(header, data), nil
}

// parseBranch: cond ':' block. Возвращает span заголовка от start до ':'.
func (p *Parser) parseBranch(start source.Span) (ast.Branch, source.Span, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return ast.Branch{}, source.Span{}, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return ast.Branch{}, source.Span{}, err
	}
	header := p.headerSpan(start)
	body, err := p.parseBlock()
	if err != nil {
		return ast.Branch{}, source.Span{}, err
	}
	return ast.Branch{Cond: cond, Body: body}, header, nil
}
