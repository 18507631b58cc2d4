package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/token"
)

func TestParseFileReturnStmt(t *testing.T) {
	src := `func main() -> i32 { return 42; }`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Decls, 1)

	def, ok := f.Decls[0].(*ast.FuncDef)
	require.True(t, ok)
	require.Equal(t, "main", def.Decl.Name)
	require.Len(t, def.Body.Stmts, 1)

	ret, ok := def.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	lit, ok := ret.X.(*ast.IntLitExpr)
	require.True(t, ok)
	require.EqualValues(t, 42, lit.Value)
}

func TestParseExternDecl(t *testing.T) {
	src := `extern puts(s: *char) -> i32;
func main() -> i32 { return puts("hi"); }`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Decls, 2)

	decl, ok := f.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.False(t, decl.Private)
	require.Equal(t, "puts", decl.Name)
	require.Len(t, decl.Params, 1)
}

func TestParseExternPrivateLinkage(t *testing.T) {
	src := `extern private helper(x: i32) -> i32;
func main() -> i32 { return helper(1); }`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)

	decl, ok := f.Decls[0].(*ast.FuncDecl)
	require.True(t, ok)
	require.True(t, decl.Private)
	require.Equal(t, "helper", decl.Name)
}

func TestParseVariadicExtern(t *testing.T) {
	src := `extern printf(fmt: *char, ...) -> i32;
func main() -> i32 { return 0; }`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	decl := f.Decls[0].(*ast.FuncDecl)
	require.True(t, decl.Variadic)
}

func TestParseAssignAndIncDec(t *testing.T) {
	src := `func main() -> i32 {
		let mut x: i32 = 1;
		x += 2;
		++x;
		return x;
	}`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	def := f.Decls[0].(*ast.FuncDef)
	require.Len(t, def.Body.Stmts, 4)

	vd := def.Body.Stmts[0].(*ast.VarDeclStmt)
	require.True(t, vd.Mut)
	require.Equal(t, "x", vd.Name)

	as := def.Body.Stmts[1].(*ast.AssignStmt)
	require.Equal(t, ast.AddAssign, as.Kind)

	inc := def.Body.Stmts[2].(*ast.IncDecStmt)
	require.Equal(t, ast.Inc, inc.Kind)
}

func TestParseConversionBindsTighterThanComparison(t *testing.T) {
	src := `func main() -> i32 {
		return -1 as i32 == 1;
	}`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	def := f.Decls[0].(*ast.FuncDef)
	ret := def.Body.Stmts[0].(*ast.ReturnStmt)

	bin, ok := ret.X.(*ast.BinOpExpr)
	require.True(t, ok)
	require.Equal(t, ast.BinEq, bin.Op)

	conv, ok := bin.Left.(*ast.ConversionExpr)
	require.True(t, ok)
	_, ok = conv.X.(*ast.UnaryOpExpr)
	require.True(t, ok)
}

func TestParseIfWhileForLoop(t *testing.T) {
	src := `func main() -> i32 {
		if (1 == 1) { return 1; } else { return 0; }
		while (1 == 1) { break; }
		for (let mut i: i32 = 0; i == 0; ++i) { continue; }
		loop { break; }
		return 0;
	}`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	def := f.Decls[0].(*ast.FuncDef)
	require.Len(t, def.Body.Stmts, 5)

	_, ok := def.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	_, ok = def.Body.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	forStmt, ok := def.Body.Stmts[2].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Step)
	_, ok = def.Body.Stmts[3].(*ast.LoopStmt)
	require.True(t, ok)
}

func TestParseArrayInitList(t *testing.T) {
	src := `func main() -> i32 {
		let xs: i32[3] = {1, 2, 3};
		return xs[0];
	}`
	fs := token.NewFileSet()
	f, err := ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)
	def := f.Decls[0].(*ast.FuncDef)
	vd := def.Body.Stmts[0].(*ast.VarDeclStmt)
	list, ok := vd.Init.(*ast.InitList)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
}

func TestParseErrorBareIdentStmt(t *testing.T) {
	src := `func main() -> i32 { x; return 0; }`
	fs := token.NewFileSet()
	_, err := ParseFile(fs, "t.twk", []byte(src))
	require.Error(t, err)
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	src := `func main( -> i32 { return 0; }`
	fs := token.NewFileSet()
	_, err := ParseFile(fs, "t.twk", []byte(src))
	require.Error(t, err)
}
