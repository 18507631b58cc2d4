package codegen

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// genStmt lowers s into the current block. It never returns a value; the
// caller tracks block termination via llir.BasicBlock.Terminated.
func (cg *Context) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.EmptyStmt:
	case *ast.BlockStmt:
		cg.genBlock(n)
	case *ast.ExprStmt:
		cg.genExpr(n.X)
	case *ast.ReturnStmt:
		cg.genReturn(n)
	case *ast.VarDeclStmt:
		cg.genVarDecl(n)
	case *ast.AssignStmt:
		cg.genAssign(n)
	case *ast.IncDecStmt:
		cg.genIncDec(n)
	case *ast.IfStmt:
		cg.genIf(n)
	case *ast.LoopStmt:
		cg.genLoop(n)
	case *ast.WhileStmt:
		cg.genWhile(n)
	case *ast.ForStmt:
		cg.genFor(n)
	case *ast.BreakStmt:
		cg.genBreak(n)
	case *ast.ContinueStmt:
		cg.genContinue(n)
	default:
		cg.internal("codegen: unexpected stmt %T", s)
	}
}

// genBlock lowers each statement in turn, short-circuiting as soon as the
// current block is terminated: any statements after a return/break/
// continue are unreachable and are not lowered.
func (cg *Context) genBlock(n *ast.BlockStmt) {
	cg.enterBlock(func() {
		for _, stmt := range n.Stmts {
			if cg.Builder.Block().Terminated() {
				return
			}
			cg.genStmt(stmt)
		}
	})
}

func (cg *Context) genReturn(n *ast.ReturnStmt) {
	if n.X == nil {
		cg.Builder.Br(cg.epi)
		return
	}
	v := cg.genExpr(n.X)
	if cg.retSlot == nil || !v.IR.Type().Equal(cg.retType.Lower()) {
		start, _ := n.Span()
		cg.errorf(start, "incompatible type for result type")
	}
	cg.Builder.Store(v.IR, cg.retSlot)
	cg.Builder.Br(cg.epi)
}

func (cg *Context) genVarDecl(n *ast.VarDeclStmt) {
	start, _ := n.Span()

	if n.Type == nil && n.Init == nil {
		cg.errorf(start, "type inference requires an initializer")
	}

	if list, ok := n.Init.(*ast.InitList); ok {
		cg.genArrayVarDecl(n, list)
		return
	}

	var declType types.Type
	var val Value
	if n.Init != nil {
		val = cg.genExpr(n.Init.(ast.Expr))
	}

	if n.Type != nil {
		declType = n.Type
		if n.Init != nil && !typesCompatible(declType, val.Type) {
			cg.errorf(start, "incompatible initializer type for '%s'", n.Name)
		}
	} else {
		declType = val.Type
	}

	slot := cg.Builder.Alloca(declType.Lower(), n.Name)
	sign := signStackOf(declType)
	if n.Init != nil {
		cg.Builder.Store(val.IR, slot)
	}
	if !cg.scope.define(n.Name, &variable{Slot: slot, Mutable: n.Mut, Type: declType, Sign: sign}) {
		cg.errorf(start, "redefinition of '%s'", n.Name)
	}
}

func (cg *Context) genArrayVarDecl(n *ast.VarDeclStmt, list *ast.InitList) {
	start, _ := n.Span()

	elems := make([]Value, len(list.Items))
	for i, it := range list.Items {
		elems[i] = cg.genExpr(it)
	}

	var arrType types.Array
	if n.Type != nil {
		arr, ok := n.Type.(types.Array)
		if !ok {
			cg.errorf(start, "incompatible initializer type for '%s'", n.Name)
		}
		if arr.Size != uint64(len(elems)) {
			cg.errorf(start, "initializer list length does not match array type for '%s'", n.Name)
		}
		arrType = arr
	} else {
		if len(elems) == 0 {
			cg.errorf(start, "type inference requires an initializer")
		}
		arrType = types.Array{Elem: elems[0].Type, Size: uint64(len(elems))}
	}

	slot := cg.Builder.Alloca(arrType.Lower(), n.Name)
	for i, el := range elems {
		idx := llir.ConstInt{Ty: llir.I32, Val: uint64(i)}
		gep := cg.Builder.GEP(slot, idx)
		cg.Builder.Store(el.IR, gep)
	}
	if !cg.scope.define(n.Name, &variable{Slot: slot, Mutable: n.Mut, Type: arrType, Sign: signStackOf(arrType)}) {
		cg.errorf(start, "redefinition of '%s'", n.Name)
	}
}

// typesCompatible reports whether a value of type b may be assigned where a
// is expected: equal backend type, and for integers equal bit width (already
// implied by backend-type equality for this type system, but stated
// explicitly for clarity at call sites).
func typesCompatible(a, b types.Type) bool {
	return a.Lower().Equal(b.Lower())
}

func (cg *Context) genAssign(n *ast.AssignStmt) {
	start, _ := n.Span()
	if !ast.IsAssignable(n.Lhs) {
		cg.errorf(start, "left-hand side value requires assignable")
	}

	cg.checkMutable(start, n.Lhs)
	addr := cg.genAddr(n.Lhs)

	rhs := cg.genExpr(n.Rhs)

	if n.Kind == ast.Assign {
		cg.Builder.Store(rhs.IR, addr.IR)
		return
	}

	cur := cg.genLoad(addr)
	signed := cur.Sign.top() || rhs.Sign.top()
	var result llir.Value
	switch n.Kind {
	case ast.AddAssign:
		result = cg.Builder.Add(cur.IR, rhs.IR)
	case ast.SubAssign:
		result = cg.Builder.Sub(cur.IR, rhs.IR)
	case ast.MulAssign:
		result = cg.Builder.Mul(cur.IR, rhs.IR)
	case ast.DivAssign:
		result = cg.genDivMod(signed, true, cur, rhs).IR
	case ast.ModAssign:
		result = cg.genDivMod(signed, false, cur, rhs).IR
	default:
		cg.internal("codegen: unexpected assign kind %v", n.Kind)
	}
	cg.Builder.Store(result, addr.IR)
}

// checkMutable raises "assignment of read-only variable" when e's
// assignable base is an identifier or subscript bound to an immutable
// variable. A dereference target carries no such check: mutability is a
// property of the named binding, not of what it points to.
func (cg *Context) checkMutable(pos token.Pos, e ast.Expr) {
	var name string
	switch n := ast.Unwrap(e).(type) {
	case *ast.IdentExpr:
		name = n.Name
	case *ast.SubscriptExpr:
		name = n.Ident.Name
	default:
		return
	}
	if v, ok := cg.scope.lookup(name); ok && !v.Mutable {
		cg.errorf(pos, "assignment of read-only variable")
	}
}

func (cg *Context) genIncDec(n *ast.IncDecStmt) {
	start, _ := n.Span()
	if !ast.IsAssignable(n.Target) {
		cg.errorf(start, "left-hand side value requires assignable")
	}
	cg.checkMutable(start, n.Target)

	addr := cg.genAddr(n.Target)
	cur := cg.genLoad(addr)
	one := llir.ConstInt{Ty: cur.IR.Type(), Val: 1}
	var result llir.Value
	if n.Kind == ast.Inc {
		result = cg.Builder.Add(cur.IR, one)
	} else {
		result = cg.Builder.Sub(cur.IR, one)
	}
	cg.Builder.Store(result, addr.IR)
}

func (cg *Context) genIf(n *ast.IfStmt) {
	thenBlk := cg.fn.NewBlock("if.then")
	mergeBlk := cg.fn.NewBlock("if.merge")
	elseBlk := mergeBlk
	if n.Else != nil {
		elseBlk = cg.fn.NewBlock("if.else")
	}

	cond := cg.genExpr(n.Cond)
	zero := llir.ConstInt{Ty: cond.IR.Type(), Val: 0}
	boolVal := cg.Builder.ICmp(llir.OpICmpNE, cond.IR, zero)
	cg.Builder.CondBr(boolVal, thenBlk, elseBlk)

	cg.Builder.SetBlock(thenBlk)
	cg.genStmt(n.Then)
	if !cg.Builder.Block().Terminated() {
		cg.Builder.Br(mergeBlk)
	}

	if n.Else != nil {
		cg.Builder.SetBlock(elseBlk)
		cg.genStmt(n.Else)
		if !cg.Builder.Block().Terminated() {
			cg.Builder.Br(mergeBlk)
		}
	}

	cg.Builder.SetBlock(mergeBlk)
}

func (cg *Context) genLoop(n *ast.LoopStmt) {
	bodyBlk := cg.fn.NewBlock("loop.body")
	endBlk := cg.fn.NewBlock("loop.end")

	cg.Builder.Br(bodyBlk)
	cg.Builder.SetBlock(bodyBlk)

	cg.loops = append(cg.loops, loopTargets{breakTo: endBlk, continueTo: bodyBlk})
	cg.genStmt(n.Body)
	cg.loops = cg.loops[:len(cg.loops)-1]

	if !cg.Builder.Block().Terminated() {
		cg.Builder.Br(bodyBlk)
	}
	cg.Builder.SetBlock(endBlk)
}

func (cg *Context) genWhile(n *ast.WhileStmt) {
	condBlk := cg.fn.NewBlock("while.cond")
	bodyBlk := cg.fn.NewBlock("while.body")
	endBlk := cg.fn.NewBlock("while.end")

	cg.Builder.Br(condBlk)
	cg.Builder.SetBlock(condBlk)
	cond := cg.genExpr(n.Cond)
	zero := llir.ConstInt{Ty: cond.IR.Type(), Val: 0}
	boolVal := cg.Builder.ICmp(llir.OpICmpNE, cond.IR, zero)
	cg.Builder.CondBr(boolVal, bodyBlk, endBlk)

	cg.Builder.SetBlock(bodyBlk)
	cg.loops = append(cg.loops, loopTargets{breakTo: endBlk, continueTo: condBlk})
	cg.genStmt(n.Body)
	cg.loops = cg.loops[:len(cg.loops)-1]
	if !cg.Builder.Block().Terminated() {
		cg.Builder.Br(condBlk)
	}

	cg.Builder.SetBlock(endBlk)
}

func (cg *Context) genFor(n *ast.ForStmt) {
	cg.enterBlock(func() {
		if n.Init != nil {
			cg.genStmt(n.Init)
		}

		condBlk := cg.fn.NewBlock("for.cond")
		bodyBlk := cg.fn.NewBlock("for.body")
		stepBlk := cg.fn.NewBlock("for.step")
		endBlk := cg.fn.NewBlock("for.end")

		cg.Builder.Br(condBlk)
		cg.Builder.SetBlock(condBlk)
		if n.Cond != nil {
			cond := cg.genExpr(n.Cond)
			zero := llir.ConstInt{Ty: cond.IR.Type(), Val: 0}
			boolVal := cg.Builder.ICmp(llir.OpICmpNE, cond.IR, zero)
			cg.Builder.CondBr(boolVal, bodyBlk, endBlk)
		} else {
			cg.Builder.Br(bodyBlk)
		}

		cg.Builder.SetBlock(bodyBlk)
		cg.loops = append(cg.loops, loopTargets{breakTo: endBlk, continueTo: stepBlk})
		cg.genStmt(n.Body)
		cg.loops = cg.loops[:len(cg.loops)-1]
		if !cg.Builder.Block().Terminated() {
			cg.Builder.Br(stepBlk)
		}

		cg.Builder.SetBlock(stepBlk)
		if n.Step != nil {
			cg.genStmt(n.Step)
		}
		if !cg.Builder.Block().Terminated() {
			cg.Builder.Br(condBlk)
		}

		cg.Builder.SetBlock(endBlk)
	})
}

// genBreak/genContinue: outside any loop this is a silent no-op, the
// core raises no diagnostic.
func (cg *Context) genBreak(n *ast.BreakStmt) {
	if len(cg.loops) == 0 {
		return
	}
	cg.Builder.Br(cg.loops[len(cg.loops)-1].breakTo)
}

func (cg *Context) genContinue(n *ast.ContinueStmt) {
	if len(cg.loops) == 0 {
		return
	}
	cg.Builder.Br(cg.loops[len(cg.loops)-1].continueTo)
}
