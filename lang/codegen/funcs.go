package codegen

import (
	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// genFuncDef lowers one function definition's body: entry block, one
// alloca+store per parameter, a return slot when the declared return type
// is non-void, the body itself against a shared epilogue block, then the
// epilogue that loads the slot and returns.
func (cg *Context) genFuncDef(def *ast.FuncDef) {
	cand := cg.lookupExact(def.Decl)
	fn := cand.fn

	outerFn, outerEpi, outerRetSlot, outerRetType := cg.fn, cg.epi, cg.retSlot, cg.retType
	outerScope, outerLoops := cg.scope, cg.loops
	defer func() {
		cg.fn, cg.epi, cg.retSlot, cg.retType = outerFn, outerEpi, outerRetSlot, outerRetType
		cg.scope, cg.loops = outerScope, outerLoops
	}()

	cg.fn = fn
	cg.retType = def.Decl.ReturnType
	cg.scope = newScope()
	cg.loops = nil

	entry := fn.NewBlock("entry")
	cg.epi = fn.NewBlock("epilogue")
	cg.Builder.SetBlock(entry)

	if !isVoid(def.Decl.ReturnType) {
		cg.retSlot = cg.Builder.Alloca(def.Decl.ReturnType.Lower(), "retval")
	} else {
		cg.retSlot = nil
	}

	for _, p := range def.Decl.Params {
		slot := cg.Builder.Alloca(p.Type.Lower(), p.Name)
		cg.Builder.Store(llir.Param{Name: p.Name, Ty: p.Type.Lower()}, slot)
		cg.scope.define(p.Name, &variable{
			Slot: slot, Mutable: p.Mut, Type: p.Type, Sign: signStackOf(p.Type),
		})
	}

	cg.genStmt(def.Body)
	if !cg.Builder.Block().Terminated() {
		cg.Builder.Br(cg.epi)
	}

	cg.Builder.SetBlock(cg.epi)
	if cg.retSlot != nil {
		cg.Builder.Ret(cg.Builder.Load(cg.retSlot))
	} else {
		cg.Builder.RetVoid()
	}
}

func (cg *Context) lookupExact(decl *ast.FuncDecl) *funcCandidate {
	for _, c := range cg.funcsByName[decl.Name] {
		if c.decl == decl {
			return c
		}
	}
	cg.internal("codegen: function definition %q was not pre-registered", decl.Name)
	return nil
}

func isVoid(t types.Type) bool {
	b, ok := t.(types.Builtin)
	return ok && b.Kind == types.Void
}
