package maincmd

import (
	"context"

	"github.com/mna/mainer"

	"github.com/twk-lang/twk/lang/ast"
	"github.com/twk-lang/twk/lang/parser"
	"github.com/twk-lang/twk/lang/scanner"
)

// Parse implements the `parse` debug subcommand.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

// ParseFiles parses each of files and prints the resulting syntax tree as
// an indented node dump with source positions.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	fs, parsed, err := parser.ParseFiles(ctx, files...)
	for _, f := range parsed {
		printer := ast.Printer{Output: stdio.Stdout, FileSet: fs}
		if perr := printer.Print(f); perr != nil {
			return perr
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
