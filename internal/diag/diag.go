// Package diag formats compiler diagnostics as file:line:col: message,
// followed by the offending source line and a caret under the column.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/twk-lang/twk/lang/token"
)

// Print writes one diagnostic for err, which occurred at pos within fs, to
// w: the position line, the source line it occurred on (read from src,
// the same bytes the file was parsed from), and a caret under the column.
func Print(w io.Writer, fs *token.FileSet, src []byte, pos token.Pos, err error) {
	position := fs.Position(pos)
	fmt.Fprintf(w, "%s: %s\n", position, err)

	line := sourceLine(src, position.Line)
	if line == "" {
		return
	}
	fmt.Fprintln(w, line)
	col := position.Column - 1
	if col < 0 {
		col = 0
	}
	fmt.Fprintln(w, strings.Repeat(" ", col)+"^")
}

// sourceLine returns the text of the n'th (1-indexed) line of src.
func sourceLine(src []byte, n int) string {
	if n < 1 {
		return ""
	}
	start := len(src)
	line := 1
	for i, b := range src {
		if line == n {
			start = i
			break
		}
		if b == '\n' {
			line++
		}
	}
	if line != n {
		return ""
	}
	end := start
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return string(src[start:end])
}
