package parser

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
)

var assignKind = map[token.Token]ast.AssignKind{
	token.ASSIGN:     ast.Assign,
	token.PLUS_EQ:    ast.AddAssign,
	token.MINUS_EQ:   ast.SubAssign,
	token.STAR_EQ:    ast.MulAssign,
	token.SLASH_EQ:   ast.DivAssign,
	token.PERCENT_EQ: ast.ModAssign,
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.SEMI:
		pos := p.pos
		p.next()
		return &ast.EmptyStmt{Start_: pos}
	case token.LBRACE:
		return p.parseBlock()
	case token.LOOP:
		return p.parseLoop()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.IF:
		return p.parseIf()
	case token.BREAK:
		pos := p.pos
		p.next()
		semi := p.expect(token.SEMI)
		return &ast.BreakStmt{Start_: pos, Semi_: semi}
	case token.CONTINUE:
		pos := p.pos
		p.next()
		semi := p.expect(token.SEMI)
		return &ast.ContinueStmt{Start_: pos, Semi_: semi}
	case token.RETURN:
		return p.parseReturn()
	case token.LET:
		return p.parseVarDecl()
	case token.INC, token.DEC:
		return p.parseIncDec()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseBlock() *ast.BlockStmt {
	start := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.tok != token.RBRACE && p.tok != token.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	end := p.expect(token.RBRACE)
	return &ast.BlockStmt{Start_: start, End_: end, Stmts: stmts}
}

func (p *parser) parseLoop() ast.Stmt {
	start := p.expect(token.LOOP)
	body := p.parseStmt()
	return &ast.LoopStmt{Start_: start, Body: body}
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	body := p.parseStmt()
	return &ast.WhileStmt{Start_: start, Cond: cond, Body: body}
}

func (p *parser) parseFor() ast.Stmt {
	start := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	if p.tok != token.SEMI {
		init = p.parseForClauseStmt()
	} else {
		p.next()
	}

	var cond ast.Expr
	if p.tok != token.SEMI {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)

	var step ast.Stmt
	if p.tok != token.RPAREN {
		step = p.parseForClauseStmtNoSemi()
	}
	p.expect(token.RPAREN)

	body := p.parseStmt()
	return &ast.ForStmt{Start_: start, Init: init, Cond: cond, Step: step, Body: body}
}

// parseForClauseStmt parses a for-loop init clause: a let-declaration or
// an assignment, consuming its own trailing ';'.
func (p *parser) parseForClauseStmt() ast.Stmt {
	if p.tok == token.LET {
		return p.parseVarDecl()
	}
	lhs := p.parseExpr()
	s := p.finishAssignOrIncDec(lhs, token.SEMI)
	return s
}

// parseForClauseStmtNoSemi parses a for-loop step clause: an assignment or
// inc/dec, not followed by a semicolon (the enclosing ')' follows instead).
func (p *parser) parseForClauseStmtNoSemi() ast.Stmt {
	if p.tok == token.INC || p.tok == token.DEC {
		opPos, kind := p.pos, incDecKind(p.tok)
		p.next()
		target := p.parseUnary()
		return &ast.IncDecStmt{OpPos: opPos, Kind: kind, Target: target, Semi_: p.pos}
	}
	lhs := p.parseExpr()
	return p.finishAssignOrIncDec(lhs, token.RPAREN)
}

func (p *parser) parseIf() ast.Stmt {
	start := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.tok == token.ELSE {
		p.next()
		els = p.parseStmt()
	}
	return &ast.IfStmt{Start_: start, Cond: cond, Then: then, Else: els}
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.expect(token.RETURN)
	var x ast.Expr
	if p.tok != token.SEMI {
		x = p.parseExpr()
	}
	semi := p.expect(token.SEMI)
	return &ast.ReturnStmt{Start_: start, X: x, Semi_: semi}
}

func (p *parser) parseVarDecl() ast.Stmt {
	start := p.expect(token.LET)
	mut := false
	if p.tok == token.MUT {
		mut = true
		p.next()
	}
	namePos := p.pos
	if p.tok != token.IDENT {
		p.errorf(namePos, "expected: identifier, found %#v", p.tok)
	}
	name := p.val.Raw
	p.next()

	var ty types.Type
	if p.tok == token.COLON {
		p.next()
		ty = p.parseType()
	}

	var init ast.Initializer
	if p.tok == token.ASSIGN {
		p.next()
		init = p.parseInitializer()
	}
	semi := p.expect(token.SEMI)
	return &ast.VarDeclStmt{Start_: start, Mut: mut, Name: name, Type: ty, Init: init, Semi_: semi}
}

func (p *parser) parseInitializer() ast.Initializer {
	if p.tok == token.LBRACE {
		start := p.pos
		p.next()
		var items []ast.Expr
		for p.tok != token.RBRACE {
			items = append(items, p.parseExpr())
			if p.tok != token.COMMA {
				break
			}
			p.next()
		}
		end := p.expect(token.RBRACE)
		return &ast.InitList{Start_: start, End_: end, Items: items}
	}
	return p.parseExpr()
}

func (p *parser) parseIncDec() ast.Stmt {
	opPos, kind := p.pos, incDecKind(p.tok)
	p.next()
	target := p.parseUnary()
	semi := p.expect(token.SEMI)
	return &ast.IncDecStmt{OpPos: opPos, Kind: kind, Target: target, Semi_: semi}
}

func incDecKind(tok token.Token) ast.IncDecKind {
	if tok == token.INC {
		return ast.Inc
	}
	return ast.Dec
}

// parseSimpleStmt parses an assignment or an expression statement, the two
// forms that begin with a bare expression.
func (p *parser) parseSimpleStmt() ast.Stmt {
	x := p.parseExpr()
	return p.finishAssignOrIncDec(x, token.SEMI)
}

func (p *parser) finishAssignOrIncDec(x ast.Expr, terminator token.Token) ast.Stmt {
	if kind, ok := assignKind[p.tok]; ok {
		opPos := p.pos
		p.next()
		rhs := p.parseExpr()
		semi := p.pos
		if terminator == token.SEMI {
			semi = p.expect(token.SEMI)
		}
		return &ast.AssignStmt{Lhs: x, Kind: kind, OpPos: opPos, Rhs: rhs, Semi_: semi}
	}

	if !ast.IsValidStmt(x) {
		start, _ := x.Span()
		p.errorf(start, "expected: statement")
	}
	semi := p.pos
	if terminator == token.SEMI {
		semi = p.expect(token.SEMI)
	}
	return &ast.ExprStmt{X: x, Semi_: semi}
}
