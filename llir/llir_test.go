package llir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildAdd builds a function `add(a: i32, b: i32) -> i32 { return a + b; }`.
func buildAdd(m *Module) *Function {
	fn := m.DeclareFunc("add", []Param{{Name: "a", Ty: I32}, {Name: "b", Ty: I32}}, false, I32)
	entry := fn.NewBlock("entry")
	b := NewBuilder(m)
	b.SetBlock(entry)

	aSlot := b.Alloca(I32, "a")
	bSlot := b.Alloca(I32, "b")
	b.Store(Param{Name: "a", Ty: I32}, aSlot)
	b.Store(Param{Name: "b", Ty: I32}, bSlot)

	av := b.Load(aSlot)
	bv := b.Load(bSlot)
	sum := b.Add(av, bv)
	b.Ret(sum)
	return fn
}

func TestInterpretAdd(t *testing.T) {
	m := NewModule("test")
	buildAdd(m)

	got, err := addViaJIT(m, 3, 4)
	require.NoError(t, err)
	require.Equal(t, int32(7), got)
}

func addViaJIT(m *Module, a, b int32) (int32, error) {
	// JIT always calls with zero arguments today (entry points are niladic
	// `main`-style functions); exercise add() directly through the
	// interpreter's call path instead via a synthetic caller.
	fn := m.DeclareFunc("call_add", nil, false, I32)
	entry := fn.NewBlock("entry")
	bld := NewBuilder(m)
	bld.SetBlock(entry)
	res := bld.Call(m.Lookup("add"), ConstInt{Ty: I32, Val: uint64(uint32(a))}, ConstInt{Ty: I32, Val: uint64(uint32(b))})
	bld.Ret(res)
	return m.JIT("call_add")
}

func TestDivisionBySignAndZero(t *testing.T) {
	m := NewModule("test")
	fn := m.DeclareFunc("divz", nil, false, I32)
	entry := fn.NewBlock("entry")
	b := NewBuilder(m)
	b.SetBlock(entry)
	res := b.SDiv(ConstInt{Ty: I32, Val: 10}, ConstInt{Ty: I32, Val: 0})
	b.Ret(res)

	_, err := m.JIT("divz")
	require.Error(t, err)
}

func TestWriteIRDeterministic(t *testing.T) {
	m := NewModule("test")
	buildAdd(m)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, WriteIR(&buf1, m))
	require.NoError(t, WriteIR(&buf2, m))
	require.Equal(t, buf1.String(), buf2.String())
	require.Contains(t, buf1.String(), "define i32 @add(i32 %a, i32 %b) {")
}

func TestWriteObjectListsFunctions(t *testing.T) {
	m := NewModule("test")
	buildAdd(m)

	var buf bytes.Buffer
	require.NoError(t, WriteObject(&buf, m))
	require.Contains(t, buf.String(), "FUNC   add")
}

func TestTypeSizeAndEquality(t *testing.T) {
	require.Equal(t, uint64(4), I32.Size())
	require.Equal(t, uint64(8), PointerTo(I32).Size())
	require.True(t, PointerTo(I32).Equal(PointerTo(I32)))
	require.False(t, PointerTo(I32).Equal(PointerTo(I64)))
	require.Equal(t, uint64(12), ArrayOf(I32, 3).Size())
}
