package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/twk-lang/twk/lang/scanner"
)

// Tokenize implements the `tokenize` debug subcommand.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles scans each of files and prints the resulting token stream,
// one token per line.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	fs, toksByFile, err := scanner.ScanFiles(ctx, files...)
	for _, toks := range toksByFile {
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s: %s", fs.Position(tok.Value.Pos), tok.Token)
			if lit := tok.Token.Literal(tok.Value); lit != "" {
				fmt.Fprintf(stdio.Stdout, " %s", lit)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
	}
	return err
}
