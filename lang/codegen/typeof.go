package codegen

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/types"
)

// typeOf computes e's static type without emitting any IR and without
// evaluating e, for sizeof's "without evaluating x" rule: it walks the
// same shape genExpr does, but only ever reads from the scope and the
// function index, never calls the builder.
func (cg *Context) typeOf(e ast.Expr) types.Type {
	switch n := e.(type) {
	case *ast.IdentExpr:
		v, ok := cg.scope.lookup(n.Name)
		if !ok {
			start, _ := n.Span()
			cg.errorf(start, "undefined: '%s'", n.Name)
		}
		return v.Type
	case *ast.IntLitExpr:
		return cg.Types.Builtin(intKind(n.Width, n.Signed))
	case *ast.BoolLitExpr:
		return cg.Types.Builtin(types.Bool)
	case *ast.CharLitExpr:
		return cg.Types.Builtin(types.Char)
	case *ast.StringLitExpr:
		return cg.Types.PointerTo(cg.Types.Builtin(types.I8))
	case *ast.BinOpExpr:
		switch n.Op {
		case ast.BinEq, ast.BinNeq, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
			return cg.Types.Builtin(types.Bool)
		default:
			return cg.typeOf(n.Left)
		}
	case *ast.UnaryOpExpr:
		switch n.Op {
		case ast.UnaryPlus, ast.UnaryMinus:
			return cg.typeOf(n.Right)
		case ast.UnaryNot:
			return cg.Types.Builtin(types.Bool)
		case ast.UnaryDeref:
			t := cg.typeOf(n.Right)
			ptr, ok := t.(types.Pointer)
			if !ok {
				start, _ := n.Span()
				cg.errorf(start, "cannot dereference non-pointer type '%s'", t)
			}
			return ptr.Elem
		case ast.UnaryAddr:
			return cg.Types.PointerTo(cg.typeOf(n.Right))
		case ast.UnarySizeof:
			return cg.Types.Builtin(types.U64)
		default:
			cg.internal("codegen: unexpected unary op %v", n.Op)
			return nil
		}
	case *ast.ConversionExpr:
		return n.Target
	case *ast.SubscriptExpr:
		v, ok := cg.scope.lookup(n.Ident.Name)
		if !ok {
			start, _ := n.Ident.Span()
			cg.errorf(start, "undefined: '%s'", n.Ident.Name)
		}
		arr, ok := v.Type.(types.Array)
		if !ok {
			start, _ := n.Span()
			cg.errorf(start, "cannot subscript non-array type '%s'", v.Type)
		}
		return arr.Elem
	case *ast.CallExpr:
		argTypes := make([]types.Type, len(n.Args))
		for i, a := range n.Args {
			argTypes[i] = cg.typeOf(a)
		}
		start, _ := n.Span()
		cand := cg.resolveCall(start, n.Ident.Name, argTypes)
		return cand.decl.ReturnType
	case *ast.ParenExpr:
		return cg.typeOf(n.X)
	default:
		cg.internal("codegen: unexpected expr %T", e)
		return nil
	}
}
