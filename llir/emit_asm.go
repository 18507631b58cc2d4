package llir

import (
	"fmt"
	"io"
)

// WriteAsm renders m as a deterministic pseudo-assembly text: one
// register-machine-style mnemonic per instruction, labeled blocks, and a
// trailing .data section for string constants. It is not a real ISA; it
// exists so the `--emit asm` CLI path has something concrete to show
// without a native code generator.
func WriteAsm(w io.Writer, m *Module) error {
	bw := &errWriter{w: w}
	for _, name := range m.Order {
		fn := m.Funcs[name]
		if fn.Declared() {
			fmt.Fprintf(bw, "\t.extern %s\n", fn.Name)
			continue
		}
		fmt.Fprintf(bw, "\t.globl %s\n%s:\n", fn.Name, fn.Name)
		for _, b := range fn.Blocks {
			fmt.Fprintf(bw, "%s.%s:\n", fn.Name, b.Name)
			for _, in := range b.Insns {
				writeInsnAsm(bw, in)
			}
		}
	}
	if len(m.Strings) > 0 {
		fmt.Fprint(bw, "\t.section .data\n")
		for _, g := range m.Strings {
			fmt.Fprintf(bw, "%s:\n\t.asciz \"%s\"\n", g.Name, escapeIR(g.Data))
		}
	}
	return bw.err
}

func writeInsnAsm(w io.Writer, in *Instruction) {
	switch in.Op {
	case OpAlloca:
		fmt.Fprintf(w, "\tsub sp, sp, #%d\t; %%%d\n", in.AllocType.Size(), in.ID)
	case OpStore:
		fmt.Fprintf(w, "\tstr %s, [%s]\n", in.Operands[0], in.Operands[1])
	case OpLoad:
		fmt.Fprintf(w, "\tldr %%%d, [%s]\n", in.ID, in.Operands[0])
	case OpGEP:
		fmt.Fprintf(w, "\tlea %%%d, [%s + %s * %d]\n", in.ID, in.Operands[0], in.Operands[1], in.BaseType.Size())
	case OpBr:
		fmt.Fprintf(w, "\tjmp %s\n", in.Then.Name)
	case OpCondBr:
		fmt.Fprintf(w, "\tcmp %s, #0\n\tjne %s\n\tjmp %s\n", in.Operands[0], in.Then.Name, in.Else.Name)
	case OpRet:
		fmt.Fprintf(w, "\tmov rax, %s\n\tret\n", in.Operands[0])
	case OpRetVoid:
		fmt.Fprint(w, "\tret\n")
	case OpCall:
		for _, a := range in.Operands {
			fmt.Fprintf(w, "\tpush %s\n", a)
		}
		fmt.Fprintf(w, "\tcall %s\n\tmov %%%d, rax\n", in.Callee.Name, in.ID)
	default:
		fmt.Fprintf(w, "\t%s %%%d", asmMnemonic(in.Op), in.ID)
		for _, o := range in.Operands {
			fmt.Fprintf(w, ", %s", o)
		}
		fmt.Fprint(w, "\n")
	}
}

func asmMnemonic(op Opcode) string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "imul"
	case OpSDiv, OpUDiv:
		return "div"
	case OpSRem, OpURem:
		return "mod"
	case OpSExt, OpZExt, OpTrunc, OpBitcast:
		return "mov"
	default:
		return "cmp"
	}
}
