// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"go/scanner"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/twk-lang/twk/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token kind with its associated literal value.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles tokenizes the given source files and returns the resulting
// token streams grouped by input file, along with any scan errors
// encountered. The returned error, if non-nil, is a scanner.ErrorList.
func ScanFiles(ctx context.Context, files ...string) (*token.FileSet, [][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	fs := token.NewFileSet()
	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		fsf := fs.AddFile(file, -1, len(b))
		s.Init(fsf, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{Token: tok, Value: tokVal})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return fs, tokensByFile, el.Err()
}

// Scanner tokenizes a single source file for the parser to consume.
type Scanner struct {
	file *token.File
	src  []byte
	err  func(pos token.Position, msg string)

	sb          strings.Builder
	invalidByte byte
	cur         rune
	off         int
	roff        int
}

var (
	bom      = [2]byte{0xEF, 0xBB}
	hashBang = [2]byte{'#', '!'}
)

// Init initializes the scanner to tokenize a new file. It panics if the
// file size does not match the length of src.
func (s *Scanner) Init(file *token.File, src []byte, errHandler func(token.Position, string)) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}

	s.file = file
	s.src = src
	s.err = errHandler

	s.sb.Reset()
	s.invalidByte = 0
	s.cur = ' '
	s.off = 0
	s.roff = 0

	if len(src) >= len(bom) && bytes.Equal(src[:len(bom)], bom[:]) {
		s.off += len(bom)
		s.roff += len(bom)
	}
	if len(src)-s.roff >= len(hashBang) && bytes.Equal(src[s.roff:s.roff+len(hashBang)], hashBang[:]) {
		for s.cur != '\n' && s.cur != -1 {
			s.advance()
		}
	}
	s.advance()
}

func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		s.off = len(s.src)
		if s.cur == '\n' {
			s.file.AddLine(s.off)
		}
		s.cur = -1
		return
	}

	s.off = s.roff
	if s.cur == '\n' {
		s.file.AddLine(s.off)
	}

	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		s.err(s.file.Position(s.file.Pos(off)), msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

func (s *Scanner) advanceIf(matches ...byte) bool {
	for _, m := range matches {
		if s.cur == rune(m) {
			s.advance()
			return true
		}
	}
	return false
}

// Scan returns the next token in the source file, filling tokVal with its
// literal payload.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.file.Pos(s.off)
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.IDENT
		if len(lit) > 1 {
			tok = token.LookupIdent(lit)
		}
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDecimal(cur):
		lit, base := s.number()
		tok = token.INT
		*tokVal = token.Value{Raw: lit, Pos: pos}
		width, signed, val, err := classifyInt(lit, base)
		if err != nil {
			s.error(start, err.Error())
		}
		tokVal.Int, tokVal.Width, tokVal.Signed = val, width, signed

	default:
		s.advance()
		switch cur {
		case '=':
			tok = token.ASSIGN
			if s.advanceIf('=') {
				tok = token.EQL
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '"':
			lit, val := s.shortString('"')
			tok = token.STRING
			*tokVal = token.Value{Raw: lit, Pos: pos, Str: val}

		case '\'':
			lit, val := s.charLit()
			tok = token.CHAR
			*tokVal = token.Value{Raw: lit, Pos: pos, Str: val}

		case '(', ')', '{', '}', '[', ']', ',', ';':
			tok = token.LookupPunct(string(cur))
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '+':
			tok = token.PLUS
			if s.advanceIf('+') {
				tok = token.INC
			} else if s.advanceIf('=') {
				tok = token.PLUS_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '-':
			tok = token.MINUS
			if s.advanceIf('-') {
				tok = token.DEC
			} else if s.advanceIf('=') {
				tok = token.MINUS_EQ
			} else if s.advanceIf('>') {
				tok = token.ARROW
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '*':
			tok = token.STAR
			if s.advanceIf('=') {
				tok = token.STAR_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '/':
			tok = token.SLASH
			if s.advanceIf('=') {
				tok = token.SLASH_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '%':
			tok = token.PERCENT
			if s.advanceIf('=') {
				tok = token.PERCENT_EQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '&':
			tok = token.AMP
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '!':
			tok = token.BANG
			if s.advanceIf('=') {
				tok = token.NEQ
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '<':
			tok = token.LT
			if s.advanceIf('=') {
				tok = token.LE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '>':
			tok = token.GT
			if s.advanceIf('=') {
				tok = token.GE
			}
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case ':':
			tok = token.COLON
			*tokVal = token.Value{Raw: tok.String(), Pos: pos}

		case '.':
			tok = token.ILLEGAL
			raw := "."
			if s.advanceIf('.') && s.advanceIf('.') {
				tok, raw = token.ELLIPSIS, "..."
			} else {
				s.errorf(start, "illegal character %#U", cur)
			}
			*tokVal = token.Value{Raw: raw, Pos: pos}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Raw: "", Pos: pos}

		default:
			if cur == utf8.RuneError && s.invalidByte > 0 {
				cur = rune(s.invalidByte)
				s.invalidByte = 0
			}
			s.errorf(start, "illegal character %#U", cur)
			tok = token.ILLEGAL
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		case s.cur == '/' && s.peek() == '*':
			start := s.off
			s.advance()
			s.advance()
			depth := 1
			for depth > 0 {
				if s.cur == -1 {
					s.error(start, "comment not terminated")
					return
				}
				if s.cur == '/' && s.peek() == '*' {
					s.advance()
					s.advance()
					depth++
					continue
				}
				if s.cur == '*' && s.peek() == '/' {
					s.advance()
					s.advance()
					depth--
					continue
				}
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}

func isDecimal(rn rune) bool { return '0' <= rn && rn <= '9' }
