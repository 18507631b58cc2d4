package scanner

import (
	"fmt"
	"strconv"
	"strings"
)

// number scans an integer literal in decimal, 0x, 0o or 0b form (or
// legacy C-style 0-prefixed octal) and returns its raw text and base.
func (s *Scanner) number() (lit string, base int) {
	start := s.off
	base = 10

	if s.cur == '0' {
		s.advance()
		switch lower(s.cur) {
		case 'x':
			s.advance()
			base = 16
		case 'o':
			s.advance()
			base = 8
		case 'b':
			s.advance()
			base = 2
		default:
			if isDecimal(s.cur) {
				base = 8
			}
		}
	}
	s.digits(base)
	return string(s.src[start:s.off]), base
}

func (s *Scanner) digits(base int) {
	for isHexadecimal(s.cur) || s.cur == '_' {
		s.advance()
	}
	_ = base
}

func isHexadecimal(rn rune) bool {
	return isDecimal(rn) || 'a' <= rn && rn <= 'f' || 'A' <= rn && rn <= 'F'
}

func lower(ch rune) rune { return ('a' - 'A') | ch }

// classifyInt parses lit (in the given base) and determines the tightest
// of {u32, i32, u64, i64}, attempted in that order, whose range the value
// fits in, per the language's integer literal inference rule.
func classifyInt(lit string, base int) (width int, signed bool, val uint64, err error) {
	digits := lit
	switch {
	case base == 10:
	case len(lit) > 1 && isDecimal(rune(lit[1])):
		digits = lit[1:] // legacy 0-prefixed octal
	default:
		digits = lit[2:]
	}
	digits = strings.ReplaceAll(digits, "_", "")
	if digits == "" {
		return 32, false, 0, fmt.Errorf("malformed integer literal %q", lit)
	}

	u, uerr := strconv.ParseUint(digits, base, 64)
	if uerr != nil {
		return 32, false, 0, fmt.Errorf("integer literal %q out of range", lit)
	}

	switch {
	case u <= uint64(1)<<32-1:
		// fits u32; decide between u32 and i32 by the signed range too, but
		// the language prefers the unsigned form first per its widening
		// order, unless the literal also fits the signed 32-bit range and
		// would otherwise require a sign bit it doesn't have: both fit, u32
		// is tried first.
		return 32, false, u, nil
	case u <= 1<<63-1:
		return 64, false, u, nil
	default:
		return 64, false, u, nil
	}
}
