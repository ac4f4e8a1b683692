package parser

import (
	"slices"

	"lev/internal/ast"
	"lev/internal/source"
	"lev/internal/token"
)

// Parser — состояние парсера на один поток токенов
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// Parse builds top-level statements from tokens into b.
// The first error aborts parsing and is returned as *Error.
func Parse(tokens []token.Token, b *ast.Builder) ([]ast.StmtID, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		var sp source.Span
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1].Span
			sp = source.Span{File: last.File, Start: last.End, End: last.End, Line: last.Line}
		}
		tokens = append(slices.Clip(tokens), token.Token{Kind: token.EOF, Span: sp})
	}
	p := Parser{
		toks:   tokens,
		arenas: b,
	}
	return p.parseItems()
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseDeclaration.
func (p *Parser) parseItems() ([]ast.StmtID, error) {
	var out []ast.StmtID
	for {
		p.skipNewlines()
		if p.at(token.EOF) {
			return out, nil
		}
		id, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
}

// parseDeclaration выбирает распознаватель по первому токену.
func (p *Parser) parseDeclaration() (ast.StmtID, error) {
	if p.at(token.KwFn) {
		return p.parseFnDecl()
	}
	return p.parseStatement()
}

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд; за EOF не выходит.
func (p *Parser) peekN(n int) token.Token {
	i := min(p.pos+n, len(p.toks)-1)
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		if !tok.IsLayout() {
			p.lastSpan = tok.Span
		}
	}
	return tok
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// expect — ожидаем конкретный токен.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, &Error{
		Kind:     UnexpectedToken,
		Got:      p.peek(),
		Expected: k,
		Span:     p.getDiagnosticSpan(),
	}
}

// unexpected — ошибка "ожидали категорию want".
func (p *Parser) unexpected(want string) error {
	return &Error{
		Kind: UnexpectedToken,
		Got:  p.peek(),
		Want: want,
		Span: p.getDiagnosticSpan(),
	}
}

func (p *Parser) unimplemented(what string) error {
	return &Error{
		Kind: Unimplemented,
		Got:  p.peek(),
		Want: what,
		Span: p.getDiagnosticSpan(),
	}
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// EOF и Dedent стоят на следующей строке, поэтому указываем сразу за lastSpan.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Dedent) && p.lastSpan.Line != 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
			Line:  p.lastSpan.Line,
		}
	}
	return peek.Span
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	return p.arenas.Exprs.Get(id).Span
}
