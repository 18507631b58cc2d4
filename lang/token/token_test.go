package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupIdent(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := (tok >= kwStart && tok <= kwEnd) || (tok >= typeStart && tok <= typeEnd)
		val := LookupIdent(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, IDENT, val)
		}
	}
}

func TestLookupPunct(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok >= punctStart && tok <= ELLIPSIS
		val := LookupPunct(tok.String())
		if expect {
			require.Equal(t, tok, val)
		} else {
			require.Equal(t, ILLEGAL, val)
		}
	}
}

func TestIsAugBinop(t *testing.T) {
	require.True(t, PLUS_EQ.IsAugBinop())
	require.True(t, PERCENT_EQ.IsAugBinop())
	require.False(t, ASSIGN.IsAugBinop())
	require.False(t, PLUS.IsAugBinop())
}

func TestIsAssign(t *testing.T) {
	require.True(t, ASSIGN.IsAssign())
	require.True(t, STAR_EQ.IsAssign())
	require.False(t, EQL.IsAssign())
}

func TestLiteral(t *testing.T) {
	val := Value{Raw: "ident", Str: "hi"}
	require.Equal(t, "ident", IDENT.Literal(val))
	require.Equal(t, `"hi"`, STRING.Literal(val))
	require.Equal(t, "'hi'", CHAR.Literal(val))
	require.Equal(t, "", ILLEGAL.Literal(val))
}

func TestIsType(t *testing.T) {
	require.True(t, I32.IsType())
	require.True(t, BOOL.IsType())
	require.False(t, IDENT.IsType())
}
