package ast

import (
	"fmt"
	"go/token"

	"github.com/twk-lang/twk/lang/types"
)

// UnaryOp identifies a unary prefix operator.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
	UnaryDeref  // *expr
	UnaryAddr   // &expr
	UnarySizeof // sizeof expr
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryPlus:
		return "+"
	case UnaryMinus:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryDeref:
		return "*"
	case UnaryAddr:
		return "&"
	case UnarySizeof:
		return "sizeof"
	default:
		return "?"
	}
}

// BinOp identifies a binary infix operator.
type BinOp int

const (
	BinEq BinOp = iota
	BinNeq
	BinLe
	BinGe
	BinLt
	BinGt
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinMod
)

func (op BinOp) String() string {
	return [...]string{"==", "!=", "<=", ">=", "<", ">", "+", "-", "*", "/", "%"}[op]
}

type (
	// NilExpr represents the literal absence of a value; unused in surface
	// syntax today but retained as the zero Expr for optional fields.
	NilExpr struct {
		Start_ token.Pos
	}

	// IdentExpr references a named variable or function.
	IdentExpr struct {
		Start_ token.Pos
		Name   string
	}

	// IntLitExpr is an integer literal, pre-classified by the scanner into
	// the tightest fitting builtin width/signedness.
	IntLitExpr struct {
		Start_, End_ token.Pos
		Value        uint64
		Width        int
		Signed       bool
	}

	// BoolLitExpr is a `true`/`false` literal.
	BoolLitExpr struct {
		Start_, End_ token.Pos
		Value        bool
	}

	// StringLitExpr is a string literal; it has static storage and decays to
	// a pointer to its first element.
	StringLitExpr struct {
		Start_, End_ token.Pos
		Value        string
	}

	// CharLitExpr is a single-code-point character literal.
	CharLitExpr struct {
		Start_, End_ token.Pos
		Value        rune
	}

	// BinOpExpr is a left-associative binary operator application.
	BinOpExpr struct {
		Left  Expr
		Op    BinOp
		OpPos token.Pos
		Right Expr
	}

	// UnaryOpExpr is a prefix unary operator application.
	UnaryOpExpr struct {
		OpPos token.Pos
		Op    UnaryOp
		Right Expr
	}

	// ConversionExpr is a postfix `expr as type` cast.
	ConversionExpr struct {
		X       Expr
		AsPos   token.Pos
		Target  types.Type
		End_    token.Pos
	}

	// SubscriptExpr indexes an array-typed identifier: `ident[index]`.
	SubscriptExpr struct {
		Ident *IdentExpr
		Index Expr
		End_  token.Pos
	}

	// CallExpr calls a named function with a list of argument expressions.
	CallExpr struct {
		Ident *IdentExpr
		Args  []Expr
		End_  token.Pos
	}

	// ParenExpr is a parenthesized expression, kept only to preserve the
	// span of the enclosing parentheses; it has no effect on codegen.
	ParenExpr struct {
		Start_, End_ token.Pos
		X            Expr
	}
)

func (*NilExpr) expr()        {}
func (*IdentExpr) expr()      {}
func (*IntLitExpr) expr()     {}
func (*BoolLitExpr) expr()    {}
func (*StringLitExpr) expr()  {}
func (*CharLitExpr) expr()    {}
func (*BinOpExpr) expr()      {}
func (*UnaryOpExpr) expr()    {}
func (*ConversionExpr) expr() {}
func (*SubscriptExpr) expr()  {}
func (*CallExpr) expr()       {}
func (*ParenExpr) expr()      {}

func (n *NilExpr) Span() (token.Pos, token.Pos)       { return n.Start_, n.Start_ }
func (n *IdentExpr) Span() (token.Pos, token.Pos)      { return n.Start_, n.Start_ + token.Pos(len(n.Name)) }
func (n *IntLitExpr) Span() (token.Pos, token.Pos)     { return n.Start_, n.End_ }
func (n *BoolLitExpr) Span() (token.Pos, token.Pos)    { return n.Start_, n.End_ }
func (n *StringLitExpr) Span() (token.Pos, token.Pos)  { return n.Start_, n.End_ }
func (n *CharLitExpr) Span() (token.Pos, token.Pos)    { return n.Start_, n.End_ }
func (n *BinOpExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Left.Span()
	_, end := n.Right.Span()
	return start, end
}
func (n *UnaryOpExpr) Span() (token.Pos, token.Pos) {
	_, end := n.Right.Span()
	return n.OpPos, end
}
func (n *ConversionExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.X.Span()
	return start, n.End_
}
func (n *SubscriptExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Ident.Span()
	return start, n.End_
}
func (n *CallExpr) Span() (token.Pos, token.Pos) {
	start, _ := n.Ident.Span()
	return start, n.End_
}
func (n *ParenExpr) Span() (token.Pos, token.Pos) { return n.Start_, n.End_ }

func (n *NilExpr) Walk(_ Visitor)       {}
func (n *IdentExpr) Walk(_ Visitor)     {}
func (n *IntLitExpr) Walk(_ Visitor)    {}
func (n *BoolLitExpr) Walk(_ Visitor)   {}
func (n *StringLitExpr) Walk(_ Visitor) {}
func (n *CharLitExpr) Walk(_ Visitor)   {}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (n *UnaryOpExpr) Walk(v Visitor) { Walk(v, n.Right) }
func (n *ConversionExpr) Walk(v Visitor) { Walk(v, n.X) }
func (n *SubscriptExpr) Walk(v Visitor) {
	Walk(v, n.Ident)
	Walk(v, n.Index)
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Ident)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *ParenExpr) Walk(v Visitor) { Walk(v, n.X) }

func (n *NilExpr) Format(f fmt.State, verb rune)    { format(f, verb, n, "nil", nil) }
func (n *IdentExpr) Format(f fmt.State, verb rune)  { format(f, verb, n, n.Name, nil) }
func (n *IntLitExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("%d", n.Value), nil)
}
func (n *BoolLitExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("%t", n.Value), nil)
}
func (n *StringLitExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("%q", n.Value), nil)
}
func (n *CharLitExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, fmt.Sprintf("%q", n.Value), nil)
}
func (n *BinOpExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "binop "+n.Op.String(), nil) }
func (n *UnaryOpExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "unop "+n.Op.String(), nil)
}
func (n *ConversionExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "as", nil) }
func (n *SubscriptExpr) Format(f fmt.State, verb rune)  { format(f, verb, n, "subscript", nil) }
func (n *CallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call "+n.Ident.Name, map[string]int{"args": len(n.Args)})
}
func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "paren", nil) }

// IsAssignable reports whether e is a valid assignment target: an
// identifier, a subscript expression, or a unary `*` dereference.
func IsAssignable(e Expr) bool {
	switch n := Unwrap(e).(type) {
	case *IdentExpr, *SubscriptExpr:
		return true
	case *UnaryOpExpr:
		return n.Op == UnaryDeref
	default:
		return false
	}
}

// Unwrap strips any enclosing ParenExpr wrappers from e.
func Unwrap(e Expr) Expr {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}
