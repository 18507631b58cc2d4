package codegen

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// genExpr lowers e to a Value, dispatching on its concrete AST type via an
// exhaustive switch; an unhandled variant is an internal compiler error,
// never a user-facing diagnostic.
func (cg *Context) genExpr(e ast.Expr) Value {
	switch n := e.(type) {
	case *ast.IdentExpr:
		return cg.genIdent(n)
	case *ast.IntLitExpr:
		return cg.genIntLit(n)
	case *ast.BoolLitExpr:
		return cg.genBoolLit(n)
	case *ast.CharLitExpr:
		return cg.genCharLit(n)
	case *ast.StringLitExpr:
		return cg.genStringLit(n)
	case *ast.BinOpExpr:
		return cg.genBinOp(n)
	case *ast.UnaryOpExpr:
		return cg.genUnaryOp(n)
	case *ast.ConversionExpr:
		return cg.genConversion(n)
	case *ast.SubscriptExpr:
		return cg.genLoad(cg.genAddr(n))
	case *ast.CallExpr:
		return cg.genCall(n)
	case *ast.ParenExpr:
		return cg.genExpr(n.X)
	default:
		cg.internal("codegen: unexpected expr %T", e)
		return Value{}
	}
}

func (cg *Context) genIdent(n *ast.IdentExpr) Value {
	v, ok := cg.scope.lookup(n.Name)
	if !ok {
		start, _ := n.Span()
		cg.errorf(start, "undefined: '%s'", n.Name)
	}
	return Value{IR: cg.Builder.Load(v.Slot), Sign: v.Sign, Type: v.Type}
}

func (cg *Context) genIntLit(n *ast.IntLitExpr) Value {
	kind := intKind(n.Width, n.Signed)
	ty := cg.Types.Builtin(kind)
	return Value{
		IR:   llir.ConstInt{Ty: ty.Lower(), Val: n.Value},
		Sign: SignStack{n.Signed},
		Type: ty,
	}
}

func intKind(width int, signed bool) types.Kind {
	switch {
	case width <= 8:
		if signed {
			return types.I8
		}
		return types.U8
	case width <= 16:
		if signed {
			return types.I16
		}
		return types.U16
	case width <= 32:
		if signed {
			return types.I32
		}
		return types.U32
	default:
		if signed {
			return types.I64
		}
		return types.U64
	}
}

func (cg *Context) genBoolLit(n *ast.BoolLitExpr) Value {
	ty := cg.Types.Builtin(types.Bool)
	val := uint64(0)
	if n.Value {
		val = 1
	}
	return Value{IR: llir.ConstInt{Ty: ty.Lower(), Val: val}, Sign: SignStack{false}, Type: ty}
}

func (cg *Context) genCharLit(n *ast.CharLitExpr) Value {
	ty := cg.Types.Builtin(types.Char)
	return Value{IR: llir.ConstInt{Ty: ty.Lower(), Val: uint64(n.Value)}, Sign: SignStack{false}, Type: ty}
}

func (cg *Context) genStringLit(n *ast.StringLitExpr) Value {
	g := cg.Module.InternString(n.Value)
	elemTy := cg.Types.Builtin(types.I8)
	charPtr := cg.Types.PointerTo(elemTy)
	zero := llir.ConstInt{Ty: llir.I32, Val: 0}
	decayed := cg.Builder.GEP(g, zero)
	return Value{IR: decayed, Sign: signStackOf(charPtr), Type: charPtr}
}

func (cg *Context) genBinOp(n *ast.BinOpExpr) Value {
	lhs := cg.genExpr(n.Left)
	rhs := cg.genExpr(n.Right)
	start, _ := n.Span()

	if !lhs.Type.Lower().Equal(rhs.Type.Lower()) {
		cg.errorf(start, "incompatible operand types for binary operator '%s'", n.Op)
	}
	signed := lhs.Sign.top() || rhs.Sign.top()

	switch n.Op {
	case ast.BinAdd:
		return Value{IR: cg.Builder.Add(lhs.IR, rhs.IR), Sign: SignStack{signed}, Type: lhs.Type}
	case ast.BinSub:
		return Value{IR: cg.Builder.Sub(lhs.IR, rhs.IR), Sign: SignStack{signed}, Type: lhs.Type}
	case ast.BinMul:
		return Value{IR: cg.Builder.Mul(lhs.IR, rhs.IR), Sign: SignStack{signed}, Type: lhs.Type}
	case ast.BinDiv:
		return cg.genDivMod(signed, true, lhs, rhs)
	case ast.BinMod:
		return cg.genDivMod(signed, false, lhs, rhs)
	case ast.BinEq, ast.BinNeq, ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return cg.genCompare(n.Op, signed, lhs, rhs)
	default:
		cg.internal("codegen: unexpected binop %v", n.Op)
		return Value{}
	}
}

func (cg *Context) genDivMod(signed, isDiv bool, lhs, rhs Value) Value {
	var ir *llir.Instruction
	switch {
	case isDiv && signed:
		ir = cg.Builder.SDiv(lhs.IR, rhs.IR)
	case isDiv && !signed:
		ir = cg.Builder.UDiv(lhs.IR, rhs.IR)
	case !isDiv && signed:
		ir = cg.Builder.SRem(lhs.IR, rhs.IR)
	default:
		ir = cg.Builder.URem(lhs.IR, rhs.IR)
	}
	return Value{IR: ir, Sign: SignStack{signed}, Type: lhs.Type}
}

var cmpOpcode = map[ast.BinOp][2]llir.Opcode{
	ast.BinEq: {llir.OpICmpEQ, llir.OpICmpEQ},
	ast.BinNeq: {llir.OpICmpNE, llir.OpICmpNE},
	ast.BinLt: {llir.OpICmpSLT, llir.OpICmpULT},
	ast.BinLe: {llir.OpICmpSLE, llir.OpICmpULE},
	ast.BinGt: {llir.OpICmpSGT, llir.OpICmpUGT},
	ast.BinGe: {llir.OpICmpSGE, llir.OpICmpUGE},
}

func (cg *Context) genCompare(op ast.BinOp, signed bool, lhs, rhs Value) Value {
	pair := cmpOpcode[op]
	opcode := pair[1]
	if signed {
		opcode = pair[0]
	}
	boolTy := cg.Types.Builtin(types.Bool)
	return Value{IR: cg.Builder.ICmp(opcode, lhs.IR, rhs.IR), Sign: SignStack{false}, Type: boolTy}
}

func (cg *Context) genUnaryOp(n *ast.UnaryOpExpr) Value {
	switch n.Op {
	case ast.UnaryPlus:
		return cg.genExpr(n.Right)
	case ast.UnaryMinus:
		v := cg.genExpr(n.Right)
		zero := llir.ConstInt{Ty: v.IR.Type(), Val: 0}
		return Value{IR: cg.Builder.Sub(zero, v.IR), Sign: v.Sign, Type: v.Type}
	case ast.UnaryNot:
		v := cg.genExpr(n.Right)
		zero := llir.ConstInt{Ty: v.IR.Type(), Val: 0}
		boolTy := cg.Types.Builtin(types.Bool)
		return Value{IR: cg.Builder.ICmp(llir.OpICmpEQ, v.IR, zero), Sign: SignStack{false}, Type: boolTy}
	case ast.UnaryDeref:
		v := cg.genExpr(n.Right)
		ptr, ok := v.Type.(types.Pointer)
		if !ok {
			start, _ := n.Span()
			cg.errorf(start, "cannot dereference non-pointer type '%s'", v.Type)
		}
		return Value{IR: cg.Builder.Load(v.IR), Sign: v.Sign.pop(), Type: ptr.Elem}
	case ast.UnaryAddr:
		start, _ := n.Span()
		if !ast.IsAssignable(n.Right) {
			cg.errorf(start, "left-hand side value requires assignable")
		}
		cg.checkMutable(start, n.Right)
		addr := cg.genAddr(n.Right)
		return addr
	case ast.UnarySizeof:
		t := cg.typeOf(n.Right)
		u64 := cg.Types.Builtin(types.U64)
		return Value{IR: llir.ConstInt{Ty: u64.Lower(), Val: t.Size()}, Sign: SignStack{false}, Type: u64}
	default:
		cg.internal("codegen: unexpected unary op %v", n.Op)
		return Value{}
	}
}

// genAddr evaluates an assignable expression as an address: the pointer
// value that a load/store operates through, without loading it. Its sign
// stack is one level deeper than the pointee's, per §3.
func (cg *Context) genAddr(e ast.Expr) Value {
	switch n := ast.Unwrap(e).(type) {
	case *ast.IdentExpr:
		v, ok := cg.scope.lookup(n.Name)
		if !ok {
			start, _ := n.Span()
			cg.errorf(start, "undefined: '%s'", n.Name)
		}
		ptrTy := cg.Types.PointerTo(v.Type)
		return Value{IR: v.Slot, Sign: v.Sign.push(false), Type: ptrTy}
	case *ast.UnaryOpExpr:
		if n.Op != ast.UnaryDeref {
			cg.internal("codegen: genAddr of non-assignable unary op %v", n.Op)
		}
		return cg.genExpr(n.Right)
	case *ast.SubscriptExpr:
		return cg.genSubscriptAddr(n)
	default:
		cg.internal("codegen: genAddr of non-assignable expr %T", e)
		return Value{}
	}
}

func (cg *Context) genSubscriptAddr(n *ast.SubscriptExpr) Value {
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
	idx := cg.genExpr(n.Index)
	gep := cg.Builder.GEP(v.Slot, idx.IR)
	ptrTy := cg.Types.PointerTo(arr.Elem)
	return Value{IR: gep, Sign: signStackOf(ptrTy), Type: ptrTy}
}

func (cg *Context) genLoad(addr Value) Value {
	ptr, ok := addr.Type.(types.Pointer)
	if !ok {
		cg.internal("codegen: genLoad of non-pointer address")
	}
	return Value{IR: cg.Builder.Load(addr.IR), Sign: addr.Sign.pop(), Type: ptr.Elem}
}

func (cg *Context) genConversion(n *ast.ConversionExpr) Value {
	v := cg.genExpr(n.X)
	target := n.Target
	srcTy, dstTy := v.IR.Type(), target.Lower()

	var ir llir.Value = v.IR
	switch {
	case srcTy.Kind == llir.KindInt && dstTy.Kind == llir.KindInt:
		switch {
		case dstTy.Bits > srcTy.Bits:
			if v.Sign.top() {
				ir = cg.Builder.SExt(v.IR, dstTy)
			} else {
				ir = cg.Builder.ZExt(v.IR, dstTy)
			}
		case dstTy.Bits < srcTy.Bits:
			ir = cg.Builder.Trunc(v.IR, dstTy)
		default:
			ir = cg.Builder.Bitcast(v.IR, dstTy)
		}
	default:
		ir = cg.Builder.Bitcast(v.IR, dstTy)
	}
	return Value{IR: ir, Sign: signStackOf(target), Type: target}
}

func (cg *Context) genCall(n *ast.CallExpr) Value {
	args := make([]Value, len(n.Args))
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = cg.genExpr(a)
		argTypes[i] = args[i].Type
	}

	start, _ := n.Span()
	cand := cg.resolveCall(start, n.Ident.Name, argTypes)

	irArgs := make([]llir.Value, len(args))
	for i, a := range args {
		irArgs[i] = a.IR
	}
	call := cg.Builder.Call(cand.fn, irArgs...)
	return Value{IR: call, Sign: signStackOf(cand.decl.ReturnType), Type: cand.decl.ReturnType}
}
