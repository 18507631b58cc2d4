package ast

import (
	"fmt"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkVisitsChildrenWithReturnedVisitor(t *testing.T) {
	ident := &IdentExpr{Name: "x"}
	blk := &BlockStmt{Stmts: []Stmt{
		&ExprStmt{X: &CallExpr{Ident: ident, Args: nil}},
		&ReturnStmt{},
	}}

	var visited []Node
	Walk(VisitorFunc(func(n Node, dir VisitDirection) Visitor {
		if dir == VisitEnter {
			visited = append(visited, n)
		}
		return VisitorFunc(func(n Node, dir VisitDirection) Visitor { return nil })
	}), blk)

	require.Len(t, visited, 1)
	require.Equal(t, blk, visited[0])
}

func TestIsValidStmt(t *testing.T) {
	call := &CallExpr{Ident: &IdentExpr{Name: "f"}}
	require.True(t, IsValidStmt(call))
	require.True(t, IsValidStmt(&ParenExpr{X: call}))
	require.False(t, IsValidStmt(&IdentExpr{Name: "x"}))
}

func TestIsAssignable(t *testing.T) {
	require.True(t, IsAssignable(&IdentExpr{Name: "x"}))
	require.True(t, IsAssignable(&SubscriptExpr{Ident: &IdentExpr{Name: "a"}}))
	require.False(t, IsAssignable(&IntLitExpr{}))
}

func TestFormatWidthAndTruncation(t *testing.T) {
	n := &IdentExpr{Name: "abc"}
	got := fmt.Sprintf("%5v", n)
	require.Equal(t, "  abc", got)
	got = fmt.Sprintf("%-5v", n)
	require.Equal(t, "abc  ", got)
	got = fmt.Sprintf("%2v", n)
	require.Equal(t, "ab", got)
}

func TestFileSpanFallsBackToEOF(t *testing.T) {
	f := &File{EOF: token.Pos(5)}
	start, end := f.Span()
	require.Equal(t, token.Pos(5), start)
	require.Equal(t, token.Pos(5), end)
}
