// Package types implements the language's static type system: builtin
// scalars, pointers and arrays, each projecting to a backend llir.Type, a
// signedness flag, and an Itanium-style mangled name token.
package types

import (
	"fmt"

	"github.com/twk-lang/twk/llir"
)

// Kind enumerates the builtin scalar kinds.
type Kind int

const (
	Void Kind = iota
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	Bool
	Char
)

var kindNames = [...]string{
	Void: "void", I8: "i8", U8: "u8", I16: "i16", U16: "u16",
	I32: "i32", U32: "u32", I64: "i64", U64: "u64", Bool: "bool", Char: "char",
}

func (k Kind) String() string { return kindNames[k] }

// Type is any of Builtin, Pointer, or Array.
type Type interface {
	fmt.Stringer

	// Lower projects the type to its backend representation.
	Lower() llir.Type

	// Signed reports whether arithmetic on this type is signed.
	Signed() bool

	// Mangle returns the Itanium-style mangled code for this type.
	Mangle() string

	// Size returns the type's size in bytes.
	Size() uint64

	typ()
}

// Builtin is one of the scalar kinds.
type Builtin struct {
	Kind Kind
}

// Pointer is a pointer to Elem.
type Pointer struct {
	Elem Type
}

// Array is a fixed-size array of Elem.
type Array struct {
	Elem Type
	Size uint64
}

func (Builtin) typ() {}
func (Pointer) typ() {}
func (Array) typ()   {}

func (b Builtin) String() string { return b.Kind.String() }
func (p Pointer) String() string { return "*" + p.Elem.String() }
func (a Array) String() string   { return fmt.Sprintf("%s[%d]", a.Elem.String(), a.Size) }

var builtinBits = [...]int{
	Void: 0, I8: 8, U8: 8, I16: 16, U16: 16, I32: 32, U32: 32, I64: 64, U64: 64, Bool: 1, Char: 32,
}

func (b Builtin) Lower() llir.Type {
	if b.Kind == Void {
		return llir.Void
	}
	return llir.Type{Kind: llir.KindInt, Bits: builtinBits[b.Kind]}
}
func (p Pointer) Lower() llir.Type { return llir.PointerTo(p.Elem.Lower()) }
func (a Array) Lower() llir.Type   { return llir.ArrayOf(a.Elem.Lower(), a.Size) }

func (b Builtin) Signed() bool {
	switch b.Kind {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}
func (Pointer) Signed() bool { return false }
func (Array) Signed() bool   { return false }

var builtinMangle = [...]string{
	Void: "v", I8: "c", U8: "h", I16: "s", U16: "t",
	I32: "i", U32: "j", I64: "l", U64: "m", Bool: "b", Char: "Di",
}

func (b Builtin) Mangle() string { return builtinMangle[b.Kind] }
func (p Pointer) Mangle() string { return "P" + p.Elem.Mangle() }
func (a Array) Mangle() string   { return fmt.Sprintf("A%d_%s", a.Size, a.Elem.Mangle()) }

func (b Builtin) Size() uint64 { return b.Lower().Size() }
func (p Pointer) Size() uint64 { return 8 }
func (a Array) Size() uint64   { return a.Size * a.Elem.Size() }

// Equal reports whether two Type values describe the same backend shape
// (the equality codegen actually cares about: same Lower() projection).
func Equal(a, b Type) bool { return a.Lower().Equal(b.Lower()) }

// IndirectionDepth returns 1 + the number of Pointer levels wrapping t's
// innermost non-pointer type, the depth of its codegen.SignStack.
func IndirectionDepth(t Type) int {
	depth := 1
	for {
		p, ok := t.(Pointer)
		if !ok {
			return depth
		}
		depth++
		t = p.Elem
	}
}

// LookupBuiltin maps a lowercase type-keyword spelling to its Kind, for use
// by the parser's type-syntax grammar. ok is false for non-type spellings.
func LookupBuiltin(name string) (Kind, bool) {
	for k := Void; k <= Char; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Void, false
}
