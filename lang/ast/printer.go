package ast

import (
	"fmt"
	"go/token"
	"io"
	"strings"
)

// Printer controls pretty-printing of AST nodes as an indented tree, one
// line per node.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// FileSet resolves node positions for printing. If nil, positions are
	// omitted.
	FileSet *token.FileSet

	// NodeFmt is the format string used to print each node. The verb must
	// be `s` or `v`; a width and the `#`/`-` flags are supported, same as
	// Node.Format itself. Defaults to "%v".
	NodeFmt string
}

// Print pretty-prints n as an indented tree rooted at n.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output, fs: p.FileSet, nodeFmt: p.NodeFmt}
	if pp.nodeFmt == "" {
		pp.nodeFmt = "%v"
	}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w       io.Writer
	fs      *token.FileSet
	nodeFmt string
	depth   int
	err     error
}

func (p *printer) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit || p.err != nil {
		p.depth--
		return nil
	}

	p.depth++
	p.printNode(n, p.depth-1)
	return p
}

func (p *printer) printNode(n Node, indent int) {
	if p.err != nil {
		return
	}

	format := "%s"
	args := []interface{}{strings.Repeat(". ", indent)}
	if p.fs != nil {
		start, end := n.Span()
		format += "[%s:%s] "
		args = append(args, p.fs.Position(start), p.fs.Position(end))
	}
	format += p.nodeFmt + "\n"
	args = append(args, n)

	_, p.err = fmt.Fprintf(p.w, format, args...)
}
