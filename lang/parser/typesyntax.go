package parser

import (
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
)

// parseType parses the type grammar: optional leading `*` (pointer), a
// builtin type name, and an optional trailing `[N]` (array), combined as
// `*T[N] -> Array(Pointer(T), N)`, `*T -> Pointer(T)`, `T[N] -> Array(T,
// N)`, `T -> Builtin(T)`.
func (p *parser) parseType() types.Type {
	pointer := false
	if p.tok == token.STAR {
		pointer = true
		p.next()
	}

	pos := p.pos
	if !p.tok.IsType() {
		p.errorf(pos, "expected: type name, found %#v", p.tok)
	}
	kind, ok := types.LookupBuiltin(p.tok.String())
	if !ok {
		p.errorf(pos, "expected: type name, found %#v", p.tok)
	}
	p.next()

	var t types.Type = p.types.Builtin(kind)
	if pointer {
		t = p.types.PointerTo(t)
	}

	if p.tok == token.LBRACK {
		p.next()
		sizePos := p.pos
		if p.tok != token.INT {
			p.errorf(sizePos, "expected: array size, found %#v", p.tok)
		}
		size := p.val.Int
		p.next()
		p.expect(token.RBRACK)
		t = p.types.ArrayOf(t, size)
	}
	return t
}
