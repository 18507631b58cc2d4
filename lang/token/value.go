package token

// Value carries the literal payload of a token alongside its textual
// position. Only the fields relevant to Token are meaningful: an INT sets
// Int/Width/Signed, a STRING or CHAR sets Str, an IDENT sets only Raw.
type Value struct {
	Pos Pos
	Raw string // exact source text, for identifiers and numeric literals

	Str string // decoded string/char contents

	Int    uint64 // decoded integer value, zero/sign-extended to 64 bits
	Width  int    // bit width of an integer literal's inferred type: 8/16/32/64
	Signed bool   // whether the integer literal's inferred type is signed
}
