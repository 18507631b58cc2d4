package parser

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/token"
)

// binopPriority maps each binary operator token to its precedence level;
// higher binds tighter. Levels not present are not binary operators.
var binopPriority = map[token.Token]int{
	token.EQL: 1, token.NEQ: 1,
	token.LE: 2, token.GE: 2, token.LT: 2, token.GT: 2,
	token.PLUS: 3, token.MINUS: 3,
	token.STAR: 4, token.SLASH: 4, token.PERCENT: 4,
}

var binopKind = map[token.Token]ast.BinOp{
	token.EQL: ast.BinEq, token.NEQ: ast.BinNeq,
	token.LE: ast.BinLe, token.GE: ast.BinGe, token.LT: ast.BinLt, token.GT: ast.BinGt,
	token.PLUS: ast.BinAdd, token.MINUS: ast.BinSub,
	token.STAR: ast.BinMul, token.SLASH: ast.BinDiv, token.PERCENT: ast.BinMod,
}

const maxPriority = 4

// parseExpr parses a full expression, including the `as` conversion
// postfix and binary operators by precedence climbing.
func (p *parser) parseExpr() ast.Expr {
	return p.parseSubExpr(1)
}

// parseSubExpr implements precedence climbing: it parses a unary/primary
// operand, then repeatedly folds in binary operators whose priority is >=
// the current limit.
func (p *parser) parseSubExpr(limit int) ast.Expr {
	left := p.parseConversion()
	for {
		prio, ok := binopPriority[p.tok]
		if !ok || prio < limit {
			return left
		}
		op, opPos := binopKind[p.tok], p.pos
		p.next()
		right := p.parseSubExpr(prio + 1)
		left = &ast.BinOpExpr{Left: left, Op: op, OpPos: opPos, Right: right}
	}
}

// parseConversion parses a unary-prefixed operand followed by zero or more
// postfix `as type` conversions, binding looser than unary prefix so that
// `-x as T` means `(-x) as T`.
func (p *parser) parseConversion() ast.Expr {
	x := p.parseUnary()
	for p.tok == token.AS {
		p.next()
		target := p.parseType()
		end := p.pos
		x = &ast.ConversionExpr{X: x, Target: target, End_: end}
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	var op ast.UnaryOp
	switch p.tok {
	case token.PLUS:
		op = ast.UnaryPlus
	case token.MINUS:
		op = ast.UnaryMinus
	case token.BANG:
		op = ast.UnaryNot
	case token.STAR:
		op = ast.UnaryDeref
	case token.AMP:
		op = ast.UnaryAddr
	case token.SIZEOF:
		op = ast.UnarySizeof
	default:
		return p.parsePrimary()
	}
	pos := p.pos
	p.next()
	right := p.parseUnary()
	return &ast.UnaryOpExpr{OpPos: pos, Op: op, Right: right}
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.pos
	switch p.tok {
	case token.INT:
		v := p.val
		p.next()
		return &ast.IntLitExpr{Start_: pos, End_: p.pos, Value: v.Int, Width: v.Width, Signed: v.Signed}
	case token.TRUE, token.FALSE:
		v := p.tok == token.TRUE
		p.next()
		return &ast.BoolLitExpr{Start_: pos, End_: p.pos, Value: v}
	case token.STRING:
		v := p.val
		p.next()
		return &ast.StringLitExpr{Start_: pos, End_: p.pos, Value: v.Str}
	case token.CHAR:
		v := p.val
		p.next()
		r := rune(0)
		for _, c := range v.Str {
			r = c
			break
		}
		return &ast.CharLitExpr{Start_: pos, End_: p.pos, Value: r}
	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		end := p.expect(token.RPAREN)
		return &ast.ParenExpr{Start_: pos, End_: end + 1, X: x}
	case token.IDENT:
		name := p.val.Raw
		p.next()
		ident := &ast.IdentExpr{Start_: pos, Name: name}
		switch p.tok {
		case token.LPAREN:
			return p.parseCall(ident)
		case token.LBRACK:
			return p.parseSubscript(ident)
		default:
			return ident
		}
	default:
		p.errorf(pos, "expected: expression, found %#v", p.tok)
		return nil
	}
}

func (p *parser) parseCall(ident *ast.IdentExpr) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN {
		args = append(args, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	end := p.expect(token.RPAREN)
	return &ast.CallExpr{Ident: ident, Args: args, End_: end + 1}
}

func (p *parser) parseSubscript(ident *ast.IdentExpr) ast.Expr {
	p.expect(token.LBRACK)
	idx := p.parseExpr()
	end := p.expect(token.RBRACK)
	return &ast.SubscriptExpr{Ident: ident, Index: idx, End_: end + 1}
}
