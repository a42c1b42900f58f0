package parser

import (
	"strconv"

	"github.com/dekarrin/algoc/internal/ast"
	"github.com/dekarrin/algoc/internal/diag"
	"github.com/dekarrin/algoc/internal/token"
)

// parseExpr is the entry point for expression parsing: the lowest
// precedence level, logical Ou.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.OU) {
		pos := p.cur().Pos
		p.advance()
		right := p.parseAnd()
		left = ast.NewBinary(pos, ast.OpOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.ET) {
		pos := p.cur().Pos
		p.advance()
		right := p.parseEquality()
		left = ast.NewBinary(pos, ast.OpAnd, left, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.EQUALS) {
		pos := p.cur().Pos
		p.advance()
		right := p.parseRelational()
		left = ast.NewBinary(pos, ast.OpEq, left, right)
	}
	return left
}

var relOps = map[token.Kind]ast.BinOp{
	token.LT:  ast.OpLt,
	token.GT:  ast.OpGt,
	token.LTE: ast.OpLte,
	token.GTE: ast.OpGte,
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		op, ok := relOps[p.cur().Kind]
		if !ok {
			return left
		}
		pos := p.cur().Pos
		p.advance()
		right := p.parseAdditive()
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := ast.OpAdd
		if p.at(token.MINUS) {
			op = ast.OpSub
		}
		pos := p.cur().Pos
		p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinary(pos, op, left, right)
	}
	return left
}

var mulOps = map[token.Kind]ast.BinOp{
	token.STAR:    ast.OpMul,
	token.SLASH:   ast.OpDiv,
	token.PERCENT: ast.OpMod,
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		op, ok := mulOps[p.cur().Kind]
		if !ok {
			return left
		}
		pos := p.cur().Pos
		p.advance()
		right := p.parseUnary()
		left = ast.NewBinary(pos, op, left, right)
	}
}

var unaryOps = map[token.Kind]ast.UnOp{
	token.PLUS:  ast.UnPlus,
	token.MINUS: ast.UnMinus,
	token.CARET: ast.UnAddr,
	token.AMP:   ast.UnDeref,
	token.NON:   ast.UnNot,
}

func (p *Parser) parseUnary() ast.Expr {
	if op, ok := unaryOps[p.cur().Kind]; ok {
		pos := p.cur().Pos
		p.advance()
		return ast.NewUnary(pos, op, p.parseUnary())
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	e := p.parsePrimary()
	for {
		switch {
		case p.at(token.LBRACKET):
			pos := p.cur().Pos
			p.advance()
			idx := []ast.Expr{p.parseExpr()}
			for p.at(token.COMMA) {
				p.advance()
				idx = append(idx, p.parseExpr())
			}
			p.expect(token.RBRACKET)
			e = ast.NewTableIndex(pos, e, idx)
		case p.at(token.DOT):
			pos := p.cur().Pos
			p.advance()
			field := p.expectID()
			e = ast.NewAttribute(pos, e, field.Lexeme)
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case token.LIT_INT:
		p.advance()
		v, _ := strconv.Atoi(tok.Lexeme)
		return ast.NewLitInt(tok.Pos, v)
	case token.LIT_FLOAT:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return ast.NewLitFloat(tok.Pos, v)
	case token.LIT_CHAR:
		p.advance()
		return p.litCharFromToken(tok)
	case token.VRAI:
		p.advance()
		return ast.NewLitBool(tok.Pos, true)
	case token.FAUX:
		p.advance()
		return ast.NewLitBool(tok.Pos, false)
	case token.ID:
		if p.toks.PeekAt(1).Kind == token.LPAREN {
			return p.parseCallExpr()
		}
		p.advance()
		return ast.NewIdent(tok.Pos, tok.Lexeme)
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return ast.NewParen(tok.Pos, inner)
	default:
		p.errExpected(token.ID)
		// Keep the parser moving with a harmless placeholder; the
		// emitter never runs when the parse reported an error.
		return ast.NewLitInt(tok.Pos, 0)
	}
}

func (p *Parser) litCharFromToken(tok token.Token) ast.Expr {
	if tok.Lexeme == "bad" {
		p.sink.Add(diag.Diagnostic{
			Code:      diag.MalformedCharLiteral,
			Category:  diag.Syntactic,
			Positions: []int{tok.Pos},
			Message:   "littéral caractère mal formé",
		})
		return ast.NewLitChar(tok.Pos, 0)
	}
	return ast.NewLitChar(tok.Pos, tok.Lexeme[0])
}

// parseCallExpr parses a call in expression position. If it encounters a
// "!" output separator — legal only in statement position — it reports
// StatementCallInExpr, discards the declared outputs, and returns a Call
// built from the inputs parsed so far so the surrounding expression parse
// can still complete.
func (p *Parser) parseCallExpr() ast.Expr {
	pos := p.cur().Pos
	name := p.expectID()
	p.expect(token.LPAREN)

	var args []ast.Expr
	if !p.at(token.RPAREN) && !p.at(token.BANG) {
		args = p.parseExprList()
	}

	if p.at(token.BANG) {
		bangPos := p.cur().Pos
		p.sink.Add(diag.Diagnostic{
			Code:      diag.StatementCallInExpr,
			Category:  diag.Syntactic,
			Positions: []int{bangPos},
			Message:   "un appel avec séparateur '!' n'est valide qu'en position d'instruction",
		})
		p.advance()
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			p.advance()
		}
	}

	p.expect(token.RPAREN)
	return ast.NewCall(pos, name.Lexeme, args)
}
