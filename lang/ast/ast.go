// Package ast defines the abstract syntax tree produced by lang/parser.
//
// Every node carries its own Start/End token.Pos fields, populated once at
// construction time by the parser; there is no identity-keyed side table
// mapping nodes to positions.
package ast

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Node is any node in the tree.
type Node interface {
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each child node to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	Node

	// BlockEnding reports whether the statement may only appear as the
	// last statement of a block (return, break, continue).
	BlockEnding() bool
}

// Decl is a top-level declaration (extern prototype or function
// definition).
type Decl interface {
	Node
	decl()
}

// File is the root node of a parsed translation unit.
type File struct {
	Name  string
	Decls []Decl
	EOF   token.Pos
}

func (n *File) Format(f fmt.State, verb rune) {
	format(f, verb, n, "file "+n.Name, map[string]int{"decls": len(n.Decls)})
}
func (n *File) Span() (start, end token.Pos) {
	if len(n.Decls) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Decls[0].Span()
	return start, n.EOF
}
func (n *File) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d)
	}
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
