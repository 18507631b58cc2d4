package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twk-lang/twk/lang/token"
)

func scanAll(t *testing.T, src string) []TokenAndValue {
	t.Helper()
	fs := token.NewFileSet()
	f := fs.AddFile("test.twk", -1, len(src))

	var s Scanner
	var el ErrorList
	s.Init(f, []byte(src), el.Add)

	var out []TokenAndValue
	var val token.Value
	for {
		tok := s.Scan(&val)
		out = append(out, TokenAndValue{Token: tok, Value: val})
		if tok == token.EOF {
			break
		}
	}
	require.Empty(t, el, "unexpected scan errors: %v", el.Err())
	return out
}

func TestScanIdentsAndKeywords(t *testing.T) {
	toks := scanAll(t, "func main let mut x")
	require.Equal(t, []token.Token{
		token.FUNC, token.IDENT, token.LET, token.MUT, token.IDENT, token.EOF,
	}, tokenKinds(toks))
}

func TestScanIntLiterals(t *testing.T) {
	toks := scanAll(t, "0 42 0x2A 0b101010 0o52")
	for _, tv := range toks[:len(toks)-1] {
		require.Equal(t, token.INT, tv.Token)
	}
	require.Equal(t, uint64(0), toks[0].Value.Int)
	require.Equal(t, uint64(42), toks[1].Value.Int)
	require.Equal(t, uint64(42), toks[2].Value.Int)
	require.Equal(t, uint64(42), toks[3].Value.Int)
	require.Equal(t, uint64(42), toks[4].Value.Int)
}

func TestScanIntLiteralWidth(t *testing.T) {
	toks := scanAll(t, "4294967296")
	require.Equal(t, 64, toks[0].Value.Width)
	toks = scanAll(t, "42")
	require.Equal(t, 32, toks[0].Value.Width)
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello\n\x41\101"`)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "hello\nAA", toks[0].Value.Str)
}

func TestScanChar(t *testing.T) {
	toks := scanAll(t, `'a' '\n' '\0'`)
	require.Equal(t, "a", toks[0].Value.Str)
	require.Equal(t, "\n", toks[1].Value.Str)
	require.Equal(t, "\x00", toks[2].Value.Str)
}

func TestScanComments(t *testing.T) {
	toks := scanAll(t, "x // line comment\n/* block\ncomment */ y")
	require.Equal(t, []token.Token{token.IDENT, token.IDENT, token.EOF}, tokenKinds(toks))
}

func TestScanOperators(t *testing.T) {
	toks := scanAll(t, "+ - * / % == != <= >= < > = += -= ++ -- -> ...")
	require.Equal(t, []token.Token{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQL, token.NEQ, token.LE, token.GE, token.LT, token.GT,
		token.ASSIGN, token.PLUS_EQ, token.MINUS_EQ, token.INC, token.DEC,
		token.ARROW, token.ELLIPSIS, token.EOF,
	}, tokenKinds(toks))
}

func tokenKinds(toks []TokenAndValue) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Token
	}
	return out
}
