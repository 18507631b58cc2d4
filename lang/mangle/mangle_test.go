package mangle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twk-lang/twk/lang/types"
)

func TestDefMangling(t *testing.T) {
	var m Mangler

	got := m.Def("add", []types.Type{types.Builtin{Kind: types.I32}, types.Builtin{Kind: types.I32}}, false)
	require.Equal(t, "_Z3addii", got)

	got = m.Def("main", nil, false)
	require.Equal(t, "_Z4main", got)

	got = m.Def("printf", []types.Type{types.Pointer{Elem: types.Builtin{Kind: types.I8}}}, true)
	require.Equal(t, "_Z6printfPcv", got)
}

func TestCallMangling(t *testing.T) {
	var m Mangler
	got := m.Call("add", []types.Type{types.Builtin{Kind: types.I32}, types.Builtin{Kind: types.U32}}, false)
	require.Equal(t, "_Z3addij", got)
}

func TestNestedPointerAndArrayCodes(t *testing.T) {
	var m Mangler
	ty := types.Pointer{Elem: types.Array{Elem: types.Builtin{Kind: types.I8}, Size: 4}}
	got := m.Def("f", []types.Type{ty}, false)
	require.Equal(t, "_Z1fPA4_c", got)
}
