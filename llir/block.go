package llir

// BasicBlock is a straight-line sequence of instructions ending in exactly
// one terminator (branch, conditional branch, or return).
type BasicBlock struct {
	Name  string
	Fn    *Function
	Insns []*Instruction
}

// Terminated reports whether the block already ends in a terminator
// instruction, i.e. whether further instructions would be unreachable.
func (b *BasicBlock) Terminated() bool {
	if len(b.Insns) == 0 {
		return false
	}
	return b.Insns[len(b.Insns)-1].Op.IsTerminator()
}

func (b *BasicBlock) append(in *Instruction) *Instruction {
	b.Insns = append(b.Insns, in)
	return in
}
