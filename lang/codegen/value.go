package codegen

import (
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// SignStack is a LIFO sequence of per-indirection-level signedness flags.
// Its depth always equals 1 + the number of pointer levels wrapping a
// type's innermost non-pointer type: [signed] for i32, [signed, unsigned]
// for *i32, and so on. The top (last) entry describes the outermost type;
// each dereference pops one entry.
type SignStack []bool

// top reports the signedness of the outermost type. It panics if empty,
// which indicates a compiler bug (see Context.internal).
func (s SignStack) top() bool {
	if len(s) == 0 {
		panic(errInternal{msg: "codegen: empty sign stack"})
	}
	return s[len(s)-1]
}

// pop returns the stack with its top entry removed, for one level of
// pointer dereference.
func (s SignStack) pop() SignStack {
	if len(s) == 0 {
		panic(errInternal{msg: "codegen: pop of empty sign stack"})
	}
	return s[:len(s)-1]
}

// push returns a new stack with signed pushed on top, for taking the
// address of a value: the result is one pointer level deeper, always
// unsigned at that new outermost level.
func (s SignStack) push(signed bool) SignStack {
	out := make(SignStack, len(s)+1)
	copy(out, s)
	out[len(s)] = signed
	return out
}

// signStackOf derives the fresh sign stack for t: the innermost scalar's
// own signedness at the bottom, then one unsigned entry per wrapping
// pointer level, per the §3 depth invariant.
func signStackOf(t types.Type) SignStack {
	depth := types.IndirectionDepth(t)
	base := t
	for {
		p, ok := base.(types.Pointer)
		if !ok {
			break
		}
		base = p.Elem
	}
	stack := make(SignStack, depth)
	stack[0] = base.Signed()
	for i := 1; i < depth; i++ {
		stack[i] = false
	}
	return stack
}

// Value is the result of lowering an expression: the backend IR value
// together with the signedness metadata llir.Value itself does not carry.
type Value struct {
	IR   llir.Value
	Sign SignStack
	Type types.Type
}
