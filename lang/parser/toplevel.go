package parser

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
)

// parseFile parses a whole translation unit: a sequence of extern
// prototypes and function definitions, terminated by end of file.
func (p *parser) parseFile(filename string) *ast.File {
	var decls []ast.Decl
	for p.tok != token.EOF {
		decls = append(decls, p.parseTopDecl())
	}
	return &ast.File{Name: filename, Decls: decls, EOF: p.pos}
}

func (p *parser) parseTopDecl() ast.Decl {
	switch p.tok {
	case token.EXTERN:
		return p.parseExternDecl()
	case token.FUNC:
		return p.parseFuncDef()
	default:
		p.errorf(p.pos, "expected: 'extern' or 'func', found %#v", p.tok)
		return nil
	}
}

func (p *parser) parseExternDecl() *ast.FuncDecl {
	start := p.expect(token.EXTERN)
	decl := p.parsePrototype(start)
	decl.End_ = p.expect(token.SEMI)
	return decl
}

func (p *parser) parseFuncDef() *ast.FuncDef {
	start := p.expect(token.FUNC)
	decl := p.parsePrototype(start)
	body := p.parseBlock()
	decl.End_, _ = body.Span()
	return &ast.FuncDef{Decl: decl, Body: body}
}

// parsePrototype parses `linkage? name ( params ) ( -> type )?`, where
// start was already consumed by the caller. linkage, if present, is the
// single keyword `private`.
func (p *parser) parsePrototype(start token.Pos) *ast.FuncDecl {
	private := false
	if p.tok == token.PRIVATE {
		private = true
		p.next()
	}

	namePos := p.pos
	if p.tok != token.IDENT {
		p.errorf(namePos, "expected: function name, found %#v", p.tok)
	}
	name := p.val.Raw
	p.next()

	p.expect(token.LPAREN)
	var params []ast.Param
	variadic := false
	for p.tok != token.RPAREN {
		if p.tok == token.ELLIPSIS {
			p.next()
			variadic = true
			break
		}
		params = append(params, p.parseParam())
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	end := p.expect(token.RPAREN)

	retType := p.types.Builtin(types.Void)
	var ret types.Type = retType
	if p.tok == token.ARROW {
		p.next()
		ret = p.parseType()
	}

	return &ast.FuncDecl{
		Start_:     start,
		Private:    private,
		Name:       name,
		Params:     params,
		Variadic:   variadic,
		ReturnType: ret,
		End_:       end,
	}
}

func (p *parser) parseParam() ast.Param {
	mut := false
	if p.tok == token.MUT {
		mut = true
		p.next()
	}
	namePos := p.pos
	if p.tok != token.IDENT {
		p.errorf(namePos, "expected: parameter name, found %#v", p.tok)
	}
	name := p.val.Raw
	p.next()
	p.expect(token.COLON)
	ty := p.parseType()
	return ast.Param{Mut: mut, Name: name, Type: ty}
}
