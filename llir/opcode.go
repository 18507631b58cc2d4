package llir

// Opcode identifies the operation an Instruction performs.
type Opcode uint8

//nolint:revive
const (
	OpNop Opcode = iota

	// memory
	OpAlloca
	OpLoad
	OpStore
	OpGEP

	// arithmetic (order mirrors token.Token's additive/multiplicative group)
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem

	// comparisons, always producing i1
	OpICmpEQ
	OpICmpNE
	OpICmpSLT
	OpICmpULT
	OpICmpSLE
	OpICmpULE
	OpICmpSGT
	OpICmpUGT
	OpICmpSGE
	OpICmpUGE

	// conversions
	OpSExt
	OpZExt
	OpTrunc
	OpBitcast

	// control flow (block terminators)
	OpBr
	OpCondBr
	OpRet
	OpRetVoid

	// calls
	OpCall
)

var opcodeNames = [...]string{
	OpNop:     "nop",
	OpAlloca:  "alloca",
	OpLoad:    "load",
	OpStore:   "store",
	OpGEP:     "getelementptr",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpSDiv:    "sdiv",
	OpUDiv:    "udiv",
	OpSRem:    "srem",
	OpURem:    "urem",
	OpICmpEQ:  "icmp eq",
	OpICmpNE:  "icmp ne",
	OpICmpSLT: "icmp slt",
	OpICmpULT: "icmp ult",
	OpICmpSLE: "icmp sle",
	OpICmpULE: "icmp ule",
	OpICmpSGT: "icmp sgt",
	OpICmpUGT: "icmp ugt",
	OpICmpSGE: "icmp sge",
	OpICmpUGE: "icmp uge",
	OpSExt:    "sext",
	OpZExt:    "zext",
	OpTrunc:   "trunc",
	OpBitcast: "bitcast",
	OpBr:      "br",
	OpCondBr:  "br",
	OpRet:     "ret",
	OpRetVoid: "ret void",
	OpCall:    "call",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "unknown opcode"
}

// IsTerminator reports whether op ends a basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case OpBr, OpCondBr, OpRet, OpRetVoid:
		return true
	default:
		return false
	}
}
