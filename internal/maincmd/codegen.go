package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/twk-lang/twk/internal/diag"
	"github.com/twk-lang/twk/lang/codegen"
	"github.com/twk-lang/twk/lang/parser"
	"github.com/twk-lang/twk/lang/scanner"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
	"github.com/twk-lang/twk/llir"
)

// Codegen implements the `codegen` debug subcommand.
func (c *Cmd) Codegen(ctx context.Context, stdio mainer.Stdio, args []string) error {
	mod, err := CodegenFiles(ctx, stdio, args...)
	if err != nil {
		return err
	}
	return llir.WriteIR(stdio.Stdout, mod)
}

// CodegenFiles parses and compiles each of files into one backend module,
// printing a diagnostic to stdio.Stderr for the first file that fails to
// parse or compile.
func CodegenFiles(ctx context.Context, stdio mainer.Stdio, files ...string) (*llir.Module, error) {
	fs := token.NewFileSet()
	mod := llir.NewModule("main")
	reg := types.NewRegistry()

	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return nil, err
		}
		f, err := parser.ParseFile(fs, name, src)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			return nil, err
		}
		file := fs.File(f.EOF)
		if err := codegen.CompileFile(ctx, file, f, mod, reg); err != nil {
			printCompileError(stdio, fs, src, err)
			return nil, err
		}
	}
	return mod, nil
}

// printCompileError formats err (a *codegen.Error when available) as a
// file:line:col diagnostic with source context.
func printCompileError(stdio mainer.Stdio, fs *token.FileSet, src []byte, err error) {
	ce, ok := err.(*codegen.Error)
	if !ok {
		fmt.Fprintln(stdio.Stderr, err)
		return
	}
	diag.Print(stdio.Stderr, fs, src, ce.Pos, ce)
}
