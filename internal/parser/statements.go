package parser

import (
	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/token"
)

// parseStmtList parses statements until the current token is one of stop,
// a footer belonging to an enclosing block (left untouched for that level
// to consume rather than swallowed as a bogus statement), or EOF is
// reached (an unclosed block, reported at finalizeBlocks time).
func (p *Parser) parseStmtList(stop ...token.Kind) []ast.Stmt {
	var out []ast.Stmt
	for {
		p.skipNewlines()
		if p.at(token.EOF) || p.atAnyOf(stop) || p.atEnclosingFooter() {
			return out
		}
		before := p.cur()
		if s := p.parseStmt(); s != nil {
			out = append(out, s)
		}
		p.skipNewlines()
		// Guarantee forward progress: a failed production that consumed
		// nothing would otherwise loop forever.
		if p.cur() == before && !p.at(token.EOF) {
			p.advance()
		}
	}
}

func (p *Parser) atAnyOf(kinds []token.Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			return true
		}
	}
	return false
}

// atEnclosingFooter reports whether the current token is the footer of a
// block that is still open further out on the stack. A body under
// construction stops here rather than feeding an enclosing footer to
// parseStmt as a bogus statement.
func (p *Parser) atEnclosingFooter() bool {
	kind, ok := footerBlockKind(p.cur().Kind)
	if !ok {
		return false
	}
	return p.blocks.has(kind)
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.POUR:
		return p.parseFor()
	case token.TANT:
		return p.parseWhile()
	case token.SI:
		return p.parseIf()
	case token.ID:
		return p.parseAssignOrCall()
	default:
		p.errExpected(token.ID)
		p.syncPastLine()
		return nil
	}
}

// parseAssignOrCall disambiguates "ident(" — always a statement-position
// call, since calls are never assignable — from a general assignment
// "lhs <-- rhs".
func (p *Parser) parseAssignOrCall() ast.Stmt {
	if p.at(token.ID) && p.toks.PeekAt(1).Kind == token.LPAREN {
		return p.parseCallStmt()
	}

	pos := p.cur().Pos
	lhs := p.parseExpr()
	if _, ok := p.expect(token.L_ARROW); !ok {
		p.syncPastLine()
		return ast.NewAssign(pos, lhs, lhs)
	}
	rhs := p.parseExpr()
	return ast.NewAssign(pos, lhs, rhs)
}

func (p *Parser) parseCallStmt() ast.Stmt {
	pos := p.cur().Pos
	name := p.expectID()
	p.expect(token.LPAREN)

	var inputs []ast.Expr
	if !p.at(token.BANG) && !p.at(token.RPAREN) {
		inputs = p.parseExprList()
	}
	p.expect(token.BANG)

	var outputs []ast.Expr
	if !p.at(token.RPAREN) {
		outputs = p.parseExprList()
	}
	p.expect(token.RPAREN)

	return ast.NewCallStmt(pos, name.Lexeme, inputs, outputs)
}

func (p *Parser) parseExprList() []ast.Expr {
	list := []ast.Expr{p.parseExpr()}
	for p.at(token.COMMA) {
		p.advance()
		list = append(list, p.parseExpr())
	}
	return list
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.POUR)
	v := p.expectID()
	p.expect(token.ALLANT)
	p.expect(token.DE)
	start := p.parseExpr()
	p.expect(token.A)
	end := p.parseExpr()

	step, stepSet := 0, false
	if p.at(token.PAR) {
		p.advance()
		p.expect(token.PAS)
		p.expect(token.DE)
		step = p.expectIntLiteral()
		stepSet = true
	}

	p.expect(token.FAIRE)
	p.skipNewlines()

	h := p.blocks.push(blockPour, pos)
	body := p.parseStmtList(token.FINPOUR)
	p.expectFooter(token.FINPOUR, h)

	return ast.NewForStmt(pos, v.Lexeme, start, end, step, stepSet, body)
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.TANT)
	p.expect(token.QUE)
	cond := p.parseExpr()
	p.expect(token.FAIRE)
	p.skipNewlines()

	h := p.blocks.push(blockTantQue, pos)
	body := p.parseStmtList(token.FINTQ)
	p.expectFooter(token.FINTQ, h)

	return ast.NewWhileStmt(pos, cond, body)
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur().Pos
	p.expect(token.SI)
	cond := p.parseExpr()
	p.skipNewlines()

	h := p.blocks.push(blockSi, pos)

	var branches []ast.IfBranch
	body := p.parseStmtList(token.SINONSI, token.SINON, token.FINSI)
	branches = append(branches, ast.IfBranch{Cond: cond, Body: body})

	for p.at(token.SINONSI) {
		p.advance()
		c := p.parseExpr()
		p.skipNewlines()
		b := p.parseStmtList(token.SINONSI, token.SINON, token.FINSI)
		branches = append(branches, ast.IfBranch{Cond: c, Body: b})
	}

	if p.at(token.SINON) {
		p.advance()
		p.skipNewlines()
		b := p.parseStmtList(token.FINSI)
		branches = append(branches, ast.IfBranch{Cond: nil, Body: b})
	}

	p.expectFooter(token.FINSI, h)

	return ast.NewIfStmt(pos, branches)
}
