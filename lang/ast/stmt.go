package ast

import (
	"fmt"
	"go/token"

	"github.com/twk-lang/twk/lang/types"
)

// AssignKind identifies the operator of an AssignStmt.
type AssignKind int

const (
	Assign AssignKind = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
)

func (k AssignKind) String() string {
	return [...]string{"=", "+=", "-=", "*=", "/=", "%="}[k]
}

// IncDecKind identifies whether an IncDecStmt increments or decrements.
type IncDecKind int

const (
	Inc IncDecKind = iota
	Dec
)

func (k IncDecKind) String() string {
	if k == Inc {
		return "++"
	}
	return "--"
}

// Initializer is either a single Expr or an InitList (bracketed list),
// used for both variable-definition initializers and (transitively)
// array-literal syntax.
type Initializer interface {
	Node
	init()
}

// InitList is a `{ e1, e2, ... }`-style bracketed initializer list.
type InitList struct {
	Start_, End_ token.Pos
	Items        []Expr
}

func (*InitList) init() {}
func (n *InitList) Span() (token.Pos, token.Pos) { return n.Start_, n.End_ }
func (n *InitList) Walk(v Visitor) {
	for _, it := range n.Items {
		Walk(v, it)
	}
}
func (n *InitList) Format(f fmt.State, verb rune) {
	format(f, verb, n, "init-list", map[string]int{"items": len(n.Items)})
}

func (*NilExpr) init()       {}
func (*IdentExpr) init()     {}
func (*IntLitExpr) init()    {}
func (*BoolLitExpr) init()   {}
func (*StringLitExpr) init() {}
func (*CharLitExpr) init()   {}
func (*BinOpExpr) init()     {}
func (*UnaryOpExpr) init()   {}
func (*ConversionExpr) init() {}
func (*SubscriptExpr) init() {}
func (*CallExpr) init()      {}
func (*ParenExpr) init()     {}

type (
	// EmptyStmt is a bare `;`.
	EmptyStmt struct {
		Start_ token.Pos
	}

	// BlockStmt is a `{ ... }` compound statement, the unit of scope entry.
	BlockStmt struct {
		Start_, End_ token.Pos
		Stmts        []Stmt
	}

	// ExprStmt is an expression used as a statement (a call, typically).
	ExprStmt struct {
		X     Expr
		Semi_ token.Pos
	}

	// ReturnStmt is `return expr? ;`.
	ReturnStmt struct {
		Start_ token.Pos
		X      Expr // nil for a bare `return;`
		Semi_  token.Pos
	}

	// VarDeclStmt is `let mut? name (: type)? (= init)? ;`.
	VarDeclStmt struct {
		Start_ token.Pos
		Mut    bool
		Name   string
		Type   types.Type  // nil if omitted (inferred from Init)
		Init   Initializer // nil if omitted
		Semi_  token.Pos
	}

	// AssignStmt is `lhs op= rhs ;`.
	AssignStmt struct {
		Lhs   Expr
		Kind  AssignKind
		OpPos token.Pos
		Rhs   Expr
		Semi_ token.Pos
	}

	// IncDecStmt is prefix `++x;` / `--x;`.
	IncDecStmt struct {
		OpPos  token.Pos
		Kind   IncDecKind
		Target Expr
		Semi_  token.Pos
	}

	// IfStmt is `if (cond) then (else else_)?`.
	IfStmt struct {
		Start_ token.Pos
		Cond   Expr
		Then   Stmt
		Else   Stmt // nil if absent
	}

	// LoopStmt is `loop body`, an unconditional loop.
	LoopStmt struct {
		Start_ token.Pos
		Body   Stmt
	}

	// WhileStmt is `while (cond) body`.
	WhileStmt struct {
		Start_ token.Pos
		Cond   Expr
		Body   Stmt
	}

	// ForStmt is `for (init?; cond?; step?) body`.
	ForStmt struct {
		Start_ token.Pos
		Init   Stmt // nil if absent
		Cond   Expr // nil if absent
		Step   Stmt // nil if absent
		Body   Stmt
	}

	// BreakStmt is `break;`.
	BreakStmt struct {
		Start_, Semi_ token.Pos
	}

	// ContinueStmt is `continue;`.
	ContinueStmt struct {
		Start_, Semi_ token.Pos
	}
)

func (*EmptyStmt) BlockEnding() bool    { return false }
func (*BlockStmt) BlockEnding() bool    { return false }
func (*ExprStmt) BlockEnding() bool     { return false }
func (*ReturnStmt) BlockEnding() bool   { return true }
func (*VarDeclStmt) BlockEnding() bool  { return false }
func (*AssignStmt) BlockEnding() bool   { return false }
func (*IncDecStmt) BlockEnding() bool   { return false }
func (*IfStmt) BlockEnding() bool       { return false }
func (*LoopStmt) BlockEnding() bool     { return false }
func (*WhileStmt) BlockEnding() bool    { return false }
func (*ForStmt) BlockEnding() bool      { return false }
func (*BreakStmt) BlockEnding() bool    { return true }
func (*ContinueStmt) BlockEnding() bool { return true }

func (n *EmptyStmt) Span() (token.Pos, token.Pos)   { return n.Start_, n.Start_ + 1 }
func (n *BlockStmt) Span() (token.Pos, token.Pos)   { return n.Start_, n.End_ }
func (n *ExprStmt) Span() (token.Pos, token.Pos) {
	start, _ := n.X.Span()
	return start, n.Semi_
}
func (n *ReturnStmt) Span() (token.Pos, token.Pos)  { return n.Start_, n.Semi_ }
func (n *VarDeclStmt) Span() (token.Pos, token.Pos) { return n.Start_, n.Semi_ }
func (n *AssignStmt) Span() (token.Pos, token.Pos) {
	start, _ := n.Lhs.Span()
	return start, n.Semi_
}
func (n *IncDecStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Target.Span()
	if n.OpPos < end {
		return n.OpPos, n.Semi_
	}
	return n.OpPos, n.Semi_
}
func (n *IfStmt) Span() (token.Pos, token.Pos) {
	if n.Else != nil {
		_, end := n.Else.Span()
		return n.Start_, end
	}
	_, end := n.Then.Span()
	return n.Start_, end
}
func (n *LoopStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.Start_, end
}
func (n *WhileStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.Start_, end
}
func (n *ForStmt) Span() (token.Pos, token.Pos) {
	_, end := n.Body.Span()
	return n.Start_, end
}
func (n *BreakStmt) Span() (token.Pos, token.Pos)    { return n.Start_, n.Semi_ }
func (n *ContinueStmt) Span() (token.Pos, token.Pos) { return n.Start_, n.Semi_ }

func (n *EmptyStmt) Walk(_ Visitor) {}
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.X) }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
}
func (n *VarDeclStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
}
func (n *AssignStmt) Walk(v Visitor) {
	Walk(v, n.Lhs)
	Walk(v, n.Rhs)
}
func (n *IncDecStmt) Walk(v Visitor) { Walk(v, n.Target) }
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (n *LoopStmt) Walk(v Visitor) { Walk(v, n.Body) }
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}
func (n *ForStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	if n.Step != nil {
		Walk(v, n.Step)
	}
	Walk(v, n.Body)
}
func (n *BreakStmt) Walk(_ Visitor)    {}
func (n *ContinueStmt) Walk(_ Visitor) {}

func (n *EmptyStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "empty", nil) }
func (n *BlockStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *ExprStmt) Format(f fmt.State, verb rune)    { format(f, verb, n, "expr-stmt", nil) }
func (n *ReturnStmt) Format(f fmt.State, verb rune)  { format(f, verb, n, "return", nil) }
func (n *VarDeclStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "let "+n.Name, nil) }
func (n *AssignStmt) Format(f fmt.State, verb rune) {
	format(f, verb, n, "assign "+n.Kind.String(), nil)
}
func (n *IncDecStmt) Format(f fmt.State, verb rune) { format(f, verb, n, n.Kind.String(), nil) }
func (n *IfStmt) Format(f fmt.State, verb rune)     { format(f, verb, n, "if", nil) }
func (n *LoopStmt) Format(f fmt.State, verb rune)   { format(f, verb, n, "loop", nil) }
func (n *WhileStmt) Format(f fmt.State, verb rune)  { format(f, verb, n, "while", nil) }
func (n *ForStmt) Format(f fmt.State, verb rune)    { format(f, verb, n, "for", nil) }
func (n *BreakStmt) Format(f fmt.State, verb rune)    { format(f, verb, n, "break", nil) }
func (n *ContinueStmt) Format(f fmt.State, verb rune) { format(f, verb, n, "continue", nil) }

// IsValidStmt reports whether e may legally appear as the sole content of
// an ExprStmt: only function calls (possibly parenthesized).
func IsValidStmt(e Expr) bool {
	_, ok := Unwrap(e).(*CallExpr)
	return ok
}
