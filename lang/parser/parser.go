// Package parser implements a recursive-descent, panic-and-recover parser
// producing a lang/ast tree from a token stream.
package parser

import (
	"context"
	"fmt"
	"go/scanner"
	"os"

	"github.com/twk-lang/twk/lang/ast"
	lexer "github.com/twk-lang/twk/lang/scanner"
	"github.com/twk-lang/twk/lang/token"
	"github.com/twk-lang/twk/lang/types"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// ParseFiles parses each of files into an *ast.File, sharing one FileSet.
// It returns every file it could successfully parse alongside an error
// that, if non-nil, is a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) (*token.FileSet, []*ast.File, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	fs := token.NewFileSet()
	var el ErrorList
	out := make([]*ast.File, 0, len(files))
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			el.Add(token.Position{Filename: name}, err.Error())
			continue
		}
		f, perr := ParseFile(fs, name, src)
		if perr != nil {
			el.Add(token.Position{Filename: name}, perr.Error())
			continue
		}
		out = append(out, f)
	}
	el.Sort()
	return fs, out, el.Err()
}

// ParseFile parses a single translation unit's source into an *ast.File.
// It returns (nil, err) if any parse error was recorded; partial output is
// never returned to the caller.
func ParseFile(fs *token.FileSet, filename string, src []byte) (f *ast.File, err error) {
	file := fs.AddFile(filename, -1, len(src))

	var el ErrorList
	p := &parser{file: file, types: types.NewRegistry()}
	p.scan.Init(file, src, el.Add)
	p.err = el.Add

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(errPanicMode); !ok {
				panic(r)
			}
		}
		el.Sort()
		if e := el.Err(); e != nil {
			f, err = nil, e
		}
	}()

	p.next()
	f = p.parseFile(filename)
	if p.tok != token.EOF {
		p.errorf(p.pos, "expected: end of file")
	}
	return f, nil
}

// errPanicMode is the panic value used to unwind out of ParseFile after a
// syntax error; parsing stops at the first error.
type errPanicMode struct{}

// parser holds the mutable state of one parse.
type parser struct {
	scan  lexer.Scanner
	file  *token.File
	types *types.Registry
	err   func(token.Position, string)

	tok token.Token
	val token.Value
	pos token.Pos
}

func (p *parser) next() {
	p.tok = p.scan.Scan(&p.val)
	p.pos = p.val.Pos
}

// error records a diagnostic at pos and unwinds parsing via panic; the
// caller never observes control flow past this call.
func (p *parser) error(pos token.Pos, msg string) {
	p.err(p.file.Position(pos), msg)
	panic(errPanicMode{})
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.error(pos, fmt.Sprintf(format, args...))
}

// expect consumes the current token if it matches want, else raises a
// parse error anchored to the current position.
func (p *parser) expect(want token.Token) token.Pos {
	pos := p.pos
	if p.tok != want {
		p.errorf(pos, "expected: %#v, found %#v", want, p.tok)
	}
	p.next()
	return pos
}
