package llir

import "fmt"

// Value is anything that can be used as an instruction operand: an
// instruction result, a constant, or a function/global reference.
type Value interface {
	Type() Type
	String() string
}

// ConstInt is a constant integer value of a given width.
type ConstInt struct {
	Ty  Type
	Val uint64
}

func (c ConstInt) Type() Type     { return c.Ty }
func (c ConstInt) String() string { return fmt.Sprintf("%s %d", c.Ty, c.Val) }

// ConstNull is a constant null pointer of a given pointer type.
type ConstNull struct {
	Ty Type
}

func (c ConstNull) Type() Type     { return c.Ty }
func (c ConstNull) String() string { return fmt.Sprintf("%s null", c.Ty) }

// GlobalString is a reference to a module-level, null-terminated static
// string constant; its Type is a pointer to an array of i8.
type GlobalString struct {
	Name string
	Data string // decoded contents, not including the trailing NUL
}

func (g *GlobalString) Type() Type {
	return PointerTo(ArrayOf(I8, uint64(len(g.Data))+1))
}
func (g *GlobalString) String() string { return "@" + g.Name }

// FuncRef is a reference to a declared or defined Function, usable as a
// Call target.
type FuncRef struct {
	Fn *Function
}

func (f FuncRef) Type() Type     { return PointerTo(Void) }
func (f FuncRef) String() string { return "@" + f.Fn.Name }

// Instruction is both a Value (its result, if any) and a node in a
// BasicBlock's instruction list.
type Instruction struct {
	ID       int // SSA numbering, unique within the owning Function
	Op       Opcode
	ResultTy Type
	Operands []Value

	// Alloca-specific: the type of the storage slot (ResultTy is always a
	// pointer to it).
	AllocType Type

	// GEP-specific: the base type being indexed.
	BaseType Type

	// Call-specific.
	Callee *Function

	// Branch-specific targets.
	Then, Else *BasicBlock
}

func (in *Instruction) Type() Type     { return in.ResultTy }
func (in *Instruction) String() string { return fmt.Sprintf("%%%d", in.ID) }
