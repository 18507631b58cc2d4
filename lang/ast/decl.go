package ast

import (
	"fmt"
	"go/token"

	"github.com/twk-lang/twk/lang/types"
)

// Param is one formal parameter of a function prototype.
type Param struct {
	Mut  bool
	Name string
	Type types.Type
}

// FuncDecl is a function prototype: `extern linkage? name(params) -> ret;`
// or the header shared by a FuncDef. linkage? is the single keyword
// `private`, recorded in Private; codegen and the llir emitters do not
// read it, so private and other functions are emitted alike.
type FuncDecl struct {
	Start_     token.Pos
	Private    bool
	Name       string
	Params     []Param
	Variadic   bool
	ReturnType types.Type
	End_       token.Pos
}

func (*FuncDecl) decl() {}
func (n *FuncDecl) Span() (token.Pos, token.Pos) { return n.Start_, n.End_ }
func (n *FuncDecl) Walk(_ Visitor)               {}
func (n *FuncDecl) Format(f fmt.State, verb rune) {
	format(f, verb, n, "extern "+n.Name, map[string]int{"params": len(n.Params)})
}

// FuncDef is a function definition: a FuncDecl header plus a body.
type FuncDef struct {
	Decl *FuncDecl
	Body *BlockStmt
}

func (*FuncDef) decl() {}
func (n *FuncDef) Span() (token.Pos, token.Pos) {
	start, _ := n.Decl.Span()
	_, end := n.Body.Span()
	return start, end
}
func (n *FuncDef) Walk(v Visitor) {
	Walk(v, n.Decl)
	Walk(v, n.Body)
}
func (n *FuncDef) Format(f fmt.State, verb rune) {
	format(f, verb, n, "func "+n.Decl.Name, map[string]int{"params": len(n.Decl.Params)})
}
