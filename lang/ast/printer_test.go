package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrinterIndentsNestedNodes(t *testing.T) {
	file := &File{
		Name: "t.twk",
		Decls: []Decl{
			&FuncDef{
				Decl: &FuncDecl{Name: "main"},
				Body: &BlockStmt{Stmts: []Stmt{&ReturnStmt{}}},
			},
		},
	}

	var buf bytes.Buffer
	p := Printer{Output: &buf}
	require.NoError(t, p.Print(file))

	out := buf.String()
	require.Contains(t, out, "file t.twk")
	require.Contains(t, out, ". func main")
	require.Contains(t, out, ". . . return")
}
