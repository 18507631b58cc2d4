package llir

import "fmt"

// Builder emits instructions into a current insertion block of a current
// function. Codegen constructs one Builder per compiled file and repositions it
// with SetBlock as it moves between functions and blocks.
type Builder struct {
	Module *Module
	fn     *Function
	blk    *BasicBlock
}

// NewBuilder creates a Builder that emits into m.
func NewBuilder(m *Module) *Builder { return &Builder{Module: m} }

// SetBlock repositions the builder's insertion point.
func (b *Builder) SetBlock(blk *BasicBlock) {
	b.blk = blk
	b.fn = blk.Fn
}

// Block returns the builder's current insertion block.
func (b *Builder) Block() *BasicBlock { return b.blk }

func (b *Builder) emit(op Opcode, ty Type, operands ...Value) *Instruction {
	if b.blk.Terminated() {
		panic("llir: emit into a terminated block")
	}
	in := &Instruction{ID: b.fn.nextValueID(), Op: op, ResultTy: ty, Operands: operands}
	return b.blk.append(in)
}

// Alloca reserves a stack slot of type ty, returning a pointer to it.
func (b *Builder) Alloca(ty Type, name string) *Instruction {
	in := b.emit(OpAlloca, PointerTo(ty))
	in.AllocType = ty
	_ = name
	return in
}

// Load reads through a pointer value.
func (b *Builder) Load(ptr Value) *Instruction {
	if ptr.Type().Kind != KindPointer {
		panic("llir: Load of non-pointer value")
	}
	return b.emit(OpLoad, *ptr.Type().Elem, ptr)
}

// Store writes val through ptr.
func (b *Builder) Store(val, ptr Value) *Instruction {
	if ptr.Type().Kind != KindPointer {
		panic("llir: Store to non-pointer value")
	}
	return b.emit(OpStore, Void, val, ptr)
}

// GEP computes the address of index elements of base's pointee, or of one
// array element at index within an array value. The resulting type is a
// pointer to the pointee's (or array's) element type.
func (b *Builder) GEP(base Value, index Value) *Instruction {
	elemTy := *base.Type().Elem
	baseTy := elemTy
	if elemTy.Kind == KindArray {
		elemTy = *elemTy.Elem
	}
	in := b.emit(OpGEP, PointerTo(elemTy), base, index)
	in.BaseType = baseTy
	return in
}

func (b *Builder) binop(op Opcode, ty Type, lhs, rhs Value) *Instruction {
	return b.emit(op, ty, lhs, rhs)
}

func (b *Builder) Add(lhs, rhs Value) *Instruction { return b.binop(OpAdd, lhs.Type(), lhs, rhs) }
func (b *Builder) Sub(lhs, rhs Value) *Instruction { return b.binop(OpSub, lhs.Type(), lhs, rhs) }
func (b *Builder) Mul(lhs, rhs Value) *Instruction { return b.binop(OpMul, lhs.Type(), lhs, rhs) }
func (b *Builder) SDiv(lhs, rhs Value) *Instruction { return b.binop(OpSDiv, lhs.Type(), lhs, rhs) }
func (b *Builder) UDiv(lhs, rhs Value) *Instruction { return b.binop(OpUDiv, lhs.Type(), lhs, rhs) }
func (b *Builder) SRem(lhs, rhs Value) *Instruction { return b.binop(OpSRem, lhs.Type(), lhs, rhs) }
func (b *Builder) URem(lhs, rhs Value) *Instruction { return b.binop(OpURem, lhs.Type(), lhs, rhs) }

// ICmp emits the comparison opcode matching op directly (one of the
// OpICmp* constants), always producing i1.
func (b *Builder) ICmp(op Opcode, lhs, rhs Value) *Instruction {
	return b.emit(op, I1, lhs, rhs)
}

func (b *Builder) SExt(val Value, to Type) *Instruction    { return b.emit(OpSExt, to, val) }
func (b *Builder) ZExt(val Value, to Type) *Instruction    { return b.emit(OpZExt, to, val) }
func (b *Builder) Trunc(val Value, to Type) *Instruction   { return b.emit(OpTrunc, to, val) }
func (b *Builder) Bitcast(val Value, to Type) *Instruction { return b.emit(OpBitcast, to, val) }

// Br emits an unconditional branch to target.
func (b *Builder) Br(target *BasicBlock) *Instruction {
	in := b.emit(OpBr, Void)
	in.Then = target
	return in
}

// CondBr emits a conditional branch: thenBlk if cond != 0, else elseBlk.
func (b *Builder) CondBr(cond Value, thenBlk, elseBlk *BasicBlock) *Instruction {
	in := b.emit(OpCondBr, Void, cond)
	in.Then, in.Else = thenBlk, elseBlk
	return in
}

// Ret emits a value-returning terminator.
func (b *Builder) Ret(val Value) *Instruction { return b.emit(OpRet, Void, val) }

// RetVoid emits a void-returning terminator.
func (b *Builder) RetVoid() *Instruction { return b.emit(OpRetVoid, Void) }

// Call emits a call to fn with the given arguments.
func (b *Builder) Call(fn *Function, args ...Value) *Instruction {
	if !fn.Variadic && len(args) != len(fn.Params) {
		panic(fmt.Sprintf("llir: call to %s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args)))
	}
	in := b.emit(OpCall, fn.RetType, args...)
	in.Callee = fn
	return in
}
