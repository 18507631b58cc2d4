package diag_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twk-lang/twk/internal/diag"
	"github.com/twk-lang/twk/lang/token"
)

func TestPrintIncludesSourceLineAndCaret(t *testing.T) {
	src := []byte("func main() -> i32 {\n  return x;\n}\n")
	fs := token.NewFileSet()
	file := fs.AddFile("t.twk", -1, len(src))
	file.SetLinesForContent(src)
	pos := file.Pos(30) // the 'x' on line 2

	var buf bytes.Buffer
	diag.Print(&buf, fs, src, pos, errors.New("undefined: 'x'"))

	out := buf.String()
	require.Contains(t, out, "t.twk:2:")
	require.Contains(t, out, "undefined: 'x'")
	require.Contains(t, out, "  return x;")
	require.Contains(t, out, "^")
}
