package codegen

import (
	"golang.org/x/exp/maps"

	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// variable is one binding in a scope: its storage slot, whether it was
// declared mut, and the sign stack of its declared type.
type variable struct {
	Slot    llir.Value
	Mutable bool
	Type    types.Type
	Sign    SignStack
}

// scope is a flat symbol table. Entering a BlockStmt clones the current
// table (maps.Clone, an O(n) copy) so declarations inside are visible
// only within; the clone is discarded on exit and the outer table (as it
// stood before entry) becomes current again.
type scope struct {
	vars map[string]*variable
}

func newScope() *scope { return &scope{vars: make(map[string]*variable)} }

func (s *scope) clone() *scope { return &scope{vars: maps.Clone(s.vars)} }

func (s *scope) lookup(name string) (*variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// define registers name in the current table. ok is false if name is
// already bound in this exact table (same-scope redefinition).
func (s *scope) define(name string, v *variable) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = v
	return true
}

// enterBlock clones cg's scope, runs fn with the clone current, then
// restores the outer scope regardless of how fn returns.
func (cg *Context) enterBlock(fn func()) {
	outer := cg.scope
	cg.scope = outer.clone()
	defer func() { cg.scope = outer }()
	fn()
}
