package codegen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/twk-lang/twk/lang/codegen"
	"github.com/twk-lang/twk/lang/parser"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// compile parses src, compiles it, and returns the populated module. It
// fails the test immediately on a parse error or a *codegen.Error.
func compile(t *testing.T, src string) *llir.Module {
	t.Helper()
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)

	file := fs.File(f.EOF)
	mod := llir.NewModule("t")
	reg := types.NewRegistry()
	err = codegen.CompileFile(context.Background(), file, f, mod, reg)
	require.NoError(t, err)
	return mod
}

// run compiles src and JITs main, returning its i32 result.
func run(t *testing.T, src string) int32 {
	t.Helper()
	mod := compile(t, src)
	got, err := mod.JIT("main")
	require.NoError(t, err)
	return got
}

// compileErr parses and compiles src, returning the *codegen.Error it is
// expected to produce.
func compileErr(t *testing.T, src string) *codegen.Error {
	t.Helper()
	fs := token.NewFileSet()
	f, err := parser.ParseFile(fs, "t.twk", []byte(src))
	require.NoError(t, err)

	file := fs.File(f.EOF)
	mod := llir.NewModule("t")
	reg := types.NewRegistry()
	cerr := codegen.CompileFile(context.Background(), file, f, mod, reg)
	require.Error(t, cerr)
	ce, ok := cerr.(*codegen.Error)
	require.True(t, ok, "expected *codegen.Error, got %T", cerr)
	return ce
}

func TestReturnLiteral(t *testing.T) {
	got := run(t, `func main() -> i32 { return 42; }`)
	require.EqualValues(t, 42, got)
}

func TestArithmeticAndPrecedence(t *testing.T) {
	got := run(t, `func main() -> i32 { return 2 + 3 * 4; }`)
	require.EqualValues(t, 14, got)
}

func TestSignedDivisionAndMod(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let a: i32 = 0 - 7;
		let b: i32 = 2;
		return a / b + a % b;
	}`)
	require.EqualValues(t, (-7/2)+(-7%2), got)
}

func TestUnsignedComparisonUsesCombinedSign(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let a: u32 = 1;
		let b: u32 = 2;
		if (a < b) { return 1; }
		return 0;
	}`)
	require.EqualValues(t, 1, got)
}

func TestVariablesAssignmentAndLoop(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let mut sum: i32 = 0;
		let mut i: i32 = 0;
		while (i < 5) {
			sum += i;
			++i;
		}
		return sum;
	}`)
	require.EqualValues(t, 10, got)
}

func TestForLoopBreakContinue(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let mut sum: i32 = 0;
		for (let mut i: i32 = 0; i < 10; ++i) {
			if (i == 5) { break; }
			if (i % 2 == 0) { continue; }
			sum += i;
		}
		return sum;
	}`)
	require.EqualValues(t, 1+3, got)
}

func TestArrayInitAndSubscript(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let xs: i32[3] = {10, 20, 30};
		return xs[0] + xs[1] + xs[2];
	}`)
	require.EqualValues(t, 60, got)
}

func TestArraySubscriptAssignment(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let mut xs: i32[2] = {1, 2};
		xs[0] = 41;
		return xs[0] + xs[1];
	}`)
	require.EqualValues(t, 43, got)
}

func TestPointerAddrAndDeref(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let mut x: i32 = 1;
		let p: *i32 = &x;
		*p = 41;
		return x + *p;
	}`)
	require.EqualValues(t, 82, got)
}

func TestConversionNarrowing(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let x: i32 = 300;
		let y: i8 = x as i8;
		return y as i32;
	}`)
	require.EqualValues(t, 44, got)
}

func TestSizeofDoesNotEvaluateOperand(t *testing.T) {
	got := run(t, `func main() -> i32 {
		let x: i32 = 0;
		return sizeof x as i32;
	}`)
	require.EqualValues(t, 4, got)
}

func TestForwardReferenceCallWithinTranslationUnit(t *testing.T) {
	got := run(t, `
	func main() -> i32 { return helper(40, 2); }
	func helper(a: i32, b: i32) -> i32 { return a + b; }
	`)
	require.EqualValues(t, 42, got)
}

func TestRecursiveCall(t *testing.T) {
	got := run(t, `
	func fact(n: i32) -> i32 {
		if (n <= 1) { return 1; }
		return n * fact(n - 1);
	}
	func main() -> i32 { return fact(5); }
	`)
	require.EqualValues(t, 120, got)
}

func TestExternDeclarationRegisteredWithoutDefinition(t *testing.T) {
	mod := compile(t, `
	extern puts(s: *char) -> i32;
	func main() -> i32 { return 0; }
	`)
	fn := mod.Lookup(mod.Order[0])
	require.NotNil(t, fn)
}

func TestErrorTypeInferenceRequiresInitializer(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 { let x; return 0; }`)
	require.Equal(t, "type inference requires an initializer", ce.Msg)
}

func TestErrorAssignmentOfReadOnlyVariable(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 {
		let x: i32 = 1;
		x = 2;
		return x;
	}`)
	require.Equal(t, "assignment of read-only variable", ce.Msg)
}

func TestErrorAddrOfReadOnlyVariable(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 {
		let x: i32 = 1;
		let p: *i32 = &x;
		return 0;
	}`)
	require.Equal(t, "assignment of read-only variable", ce.Msg)
}

func TestErrorLeftHandSideRequiresAssignable(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 {
		1 = 2;
		return 0;
	}`)
	require.Equal(t, "left-hand side value requires assignable", ce.Msg)
}

func TestErrorIncompatibleResultType(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 {
		let x: i32 = 1;
		let p: *i32 = &x;
		return p;
	}`)
	require.Contains(t, ce.Msg, "incompatible type for result type")
}

func TestErrorRedefinition(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 {
		let x: i32 = 1;
		let x: i32 = 2;
		return x;
	}`)
	require.Equal(t, "redefinition of 'x'", ce.Msg)
}

func TestErrorUndefinedFunction(t *testing.T) {
	ce := compileErr(t, `func main() -> i32 { return nope(); }`)
	require.Equal(t, "undefined function 'nope'", ce.Msg)
}
