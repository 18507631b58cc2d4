// Package codegen lowers a lang/ast tree into the llir backend IR: symbol
// table and lexical scoping, expression and statement translation, sign
// tracking for arithmetic and comparisons, and per-function assembly
// (mangled name, entry block, parameter slots, shared epilogue).
package codegen

import (
	"context"
	"fmt"

	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/mangle"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// Error is a codegen-time failure: a type mismatch, unknown operator,
// assignment to a read-only binding, redefinition, or a missing
// type-inference initializer. It always carries the position of the AST
// node that triggered it.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// errInternal is raised by panic for invariants that should be
// unreachable (an empty sign stack, an unhandled AST variant); these
// indicate a compiler bug, not a user-facing diagnostic, and are never
// wrapped as an *Error.
type errInternal struct{ msg string }

func (e errInternal) Error() string { return e.msg }

// Context bundles everything codegen needs for one translation unit: the
// instruction builder, the backend module it's filling in, the type
// registry, the position/filename the file was parsed with, and the name
// mangler. It is created once per file and passed by pointer through
// every codegen call; it is never stored in a package-level global.
type Context struct {
	Builder *llir.Builder
	Module  *llir.Module
	Types   *types.Registry
	Mangle  mangle.Mangler
	File    *token.File

	fn      *llir.Function
	epi     *llir.BasicBlock
	retSlot *llir.Instruction
	retType types.Type

	scope     *scope
	loops     []loopTargets
	funcsByName map[string][]*funcCandidate
}

// funcCandidate is one declared function under a bare (unmangled) name,
// indexed during the forward-declaration pass so call sites can resolve
// an identifier against the declaration whose parameter types match the
// call's resolved argument types, before that function's own body (if
// any) has been lowered.
type funcCandidate struct {
	decl     *ast.FuncDecl
	params   []types.Type
	variadic bool
	fn       *llir.Function
}

type loopTargets struct {
	breakTo, continueTo *llir.BasicBlock
}

// CompileFile lowers every top-level declaration in f into mod, using reg
// for type interning. It returns the first *Error encountered. A
// translation unit that fails to compile leaves in mod every prototype
// registered by the first pass, the functions already lowered, and the
// part of the failing function emitted before the error.
func CompileFile(ctx context.Context, file *token.File, f *ast.File, mod *llir.Module, reg *types.Registry) (err error) {
	cg := &Context{
		Builder:     llir.NewBuilder(mod),
		Module:      mod,
		Types:       reg,
		File:        file,
		scope:       newScope(),
		funcsByName: make(map[string][]*funcCandidate),
	}

	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()

	// Pass 1: register every top-level declaration (extern prototypes and
	// function definitions' headers) so calls can resolve forward
	// references within the same translation unit.
	for _, decl := range f.Decls {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cg.registerDecl(decl)
	}

	// Pass 2: lower each function definition's body.
	for _, decl := range f.Decls {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if def, ok := decl.(*ast.FuncDef); ok {
			cg.genFuncDef(def)
		}
	}
	return nil
}

func (cg *Context) errorf(pos token.Pos, format string, args ...any) {
	panic(&Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (cg *Context) internal(format string, args ...any) {
	panic(errInternal{msg: fmt.Sprintf(format, args...)})
}

func (cg *Context) registerDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		cg.declareProto(n)
	case *ast.FuncDef:
		cg.declareProto(n.Decl)
	default:
		cg.internal("codegen: unexpected decl %T", d)
	}
}

func (cg *Context) declareProto(decl *ast.FuncDecl) *llir.Function {
	paramTypes := make([]types.Type, len(decl.Params))
	for i, p := range decl.Params {
		paramTypes[i] = p.Type
	}
	name := cg.Mangle.Def(decl.Name, paramTypes, decl.Variadic)

	params := make([]llir.Param, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = llir.Param{Name: p.Name, Ty: p.Type.Lower()}
	}
	fn := cg.Module.DeclareFunc(name, params, decl.Variadic, decl.ReturnType.Lower())

	cg.funcsByName[decl.Name] = append(cg.funcsByName[decl.Name], &funcCandidate{
		decl: decl, params: paramTypes, variadic: decl.Variadic, fn: fn,
	})
	return fn
}

// resolveCall finds the declared function named name whose fixed
// parameters match argTypes: exactly, for a non-variadic candidate, or as
// a prefix, for a variadic one (whose tail arguments may be anything).
func (cg *Context) resolveCall(pos token.Pos, name string, argTypes []types.Type) *funcCandidate {
	for _, c := range cg.funcsByName[name] {
		if c.variadic {
			if len(argTypes) < len(c.params) {
				continue
			}
		} else if len(argTypes) != len(c.params) {
			continue
		}
		match := true
		for i, pt := range c.params {
			if !types.Equal(pt, argTypes[i]) {
				match = false
				break
			}
		}
		if match {
			return c
		}
	}
	cg.errorf(pos, "undefined function '%s'", name)
	return nil
}
