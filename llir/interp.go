package llir

import (
	"fmt"
	"math"
)

// JIT executes the function named name within m and returns its i32 return
// value, interpreting the IR directly rather than generating native code.
// name is either a registered symbol name or the bare name of a
// parameterless function registered under its mangled form _Z<len><name>.
// It is a reference backend standing in for a real code generator.
func (m *Module) JIT(name string) (int32, error) {
	fn := m.Lookup(name)
	if fn == nil {
		fn = m.Lookup(fmt.Sprintf("_Z%d%s", len(name), name))
	}
	if fn == nil {
		return 0, fmt.Errorf("llir: no such function %q", name)
	}
	if fn.Declared() {
		return 0, fmt.Errorf("llir: function %q has no definition", name)
	}

	interp := &interpreter{m: m, calls: map[*Function]int{}}
	ret, err := interp.call(fn, nil)
	if err != nil {
		return 0, err
	}
	switch v := ret.(type) {
	case int64:
		return int32(v), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("llir: function %q did not return an integer", name)
	}
}

// interpreter walks basic blocks, evaluating each instruction in order and
// following terminators, operating directly over SSA instructions instead
// of a flat bytecode stream.
type interpreter struct {
	m     *Module
	calls map[*Function]int // recursion guard
}

const maxCallDepth = 1 << 16

// cell is a mutable memory slot backing an Alloca.
type cell struct {
	ty    Type
	val   uint64 // scalar payload; for arrays/aggregates, see elems
	elems []cell
}

func zeroCell(ty Type) cell {
	if ty.Kind == KindArray {
		elems := make([]cell, ty.Count)
		for i := range elems {
			elems[i] = zeroCell(*ty.Elem)
		}
		return cell{ty: ty, elems: elems}
	}
	return cell{ty: ty}
}

func (interp *interpreter) call(fn *Function, args []uint64) (any, error) {
	interp.calls[fn]++
	defer func() { interp.calls[fn]-- }()
	if interp.calls[fn] > maxCallDepth {
		return nil, fmt.Errorf("llir: call depth exceeded in %q", fn.Name)
	}

	frame := map[int]*cell{}
	vals := map[int]uint64{}
	paramVals := args

	blk := fn.Blocks[0]
	for {
		next, result, returning, err := interp.runBlock(blk, frame, vals, paramVals, fn)
		if err != nil {
			return nil, err
		}
		if returning {
			return result, nil
		}
		blk = next
	}
}

// runBlock executes one basic block's instructions in order. It returns
// either the successor block to continue at, or (if the block's
// terminator was a Ret/RetVoid) the function's result.
func (interp *interpreter) runBlock(blk *BasicBlock, frame map[int]*cell, vals map[int]uint64, paramVals []uint64, fn *Function) (next *BasicBlock, result any, returning bool, err error) {
	for _, in := range blk.Insns {
		switch in.Op {
		case OpAlloca:
			c := zeroCell(in.AllocType)
			frame[in.ID] = &c

		case OpStore:
			val := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			if ptrCell := interp.cellFor(in.Operands[1], frame); ptrCell != nil {
				ptrCell.val = val
			}

		case OpLoad:
			if ptrCell := interp.cellFor(in.Operands[0], frame); ptrCell != nil {
				vals[in.ID] = ptrCell.val
			}

		case OpGEP:
			idx := interp.evalOperand(in.Operands[1], vals, paramVals, fn)
			baseCell := interp.cellFor(in.Operands[0], frame)
			if baseCell != nil && baseCell.elems != nil && int(idx) < len(baseCell.elems) {
				frame[in.ID] = &baseCell.elems[idx]
			} else {
				frame[in.ID] = baseCell
			}

		case OpAdd, OpSub, OpMul, OpSDiv, OpUDiv, OpSRem, OpURem:
			lhs := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			rhs := interp.evalOperand(in.Operands[1], vals, paramVals, fn)
			v, derr := evalArith(in.Op, in.ResultTy, lhs, rhs)
			if derr != nil {
				return nil, nil, false, derr
			}
			vals[in.ID] = v

		case OpICmpEQ, OpICmpNE, OpICmpSLT, OpICmpULT, OpICmpSLE, OpICmpULE, OpICmpSGT, OpICmpUGT, OpICmpSGE, OpICmpUGE:
			lhs := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			rhs := interp.evalOperand(in.Operands[1], vals, paramVals, fn)
			vals[in.ID] = b2u(evalCmp(in.Op, in.Operands[0].Type(), lhs, rhs))

		case OpSExt:
			v := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			vals[in.ID] = signExtend(v, in.Operands[0].Type().Bits)

		case OpZExt, OpBitcast:
			vals[in.ID] = interp.evalOperand(in.Operands[0], vals, paramVals, fn)

		case OpTrunc:
			v := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			vals[in.ID] = v & maskFor(in.ResultTy.Bits)

		case OpCall:
			callArgs := make([]uint64, len(in.Operands))
			for i, o := range in.Operands {
				callArgs[i] = interp.evalOperand(o, vals, paramVals, fn)
			}
			res, cerr := interp.call(in.Callee, callArgs)
			if cerr != nil {
				return nil, nil, false, cerr
			}
			if iv, ok := res.(int64); ok {
				vals[in.ID] = uint64(iv)
			}

		case OpBr:
			return in.Then, nil, false, nil

		case OpCondBr:
			cond := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			if cond != 0 {
				return in.Then, nil, false, nil
			}
			return in.Else, nil, false, nil

		case OpRet:
			v := interp.evalOperand(in.Operands[0], vals, paramVals, fn)
			return nil, int64(v), true, nil

		case OpRetVoid:
			return nil, nil, true, nil
		}
	}
	return nil, nil, false, fmt.Errorf("llir: block %q in %q falls through without a terminator", blk.Name, fn.Name)
}

func (interp *interpreter) cellFor(v Value, frame map[int]*cell) *cell {
	if in, ok := v.(*Instruction); ok {
		return frame[in.ID]
	}
	return nil
}

func (interp *interpreter) evalOperand(v Value, vals map[int]uint64, params []uint64, fn *Function) uint64 {
	switch o := v.(type) {
	case ConstInt:
		return o.Val
	case ConstNull:
		return 0
	case Param:
		for i, p := range fn.Params {
			if p.Name == o.Name {
				return params[i]
			}
		}
		return 0
	case *Instruction:
		return vals[o.ID]
	default:
		return 0
	}
}

func maskFor(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return (uint64(1) << bits) - 1
}

func signExtend(v uint64, fromBits int) uint64 {
	if fromBits >= 64 {
		return v
	}
	shift := 64 - fromBits
	return uint64(int64(v<<shift) >> shift)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func evalArith(op Opcode, ty Type, lhs, rhs uint64) (uint64, error) {
	mask := maskFor(ty.Bits)
	switch op {
	case OpAdd:
		return (lhs + rhs) & mask, nil
	case OpSub:
		return (lhs - rhs) & mask, nil
	case OpMul:
		return (lhs * rhs) & mask, nil
	case OpUDiv:
		if rhs == 0 {
			return 0, fmt.Errorf("llir: division by zero")
		}
		return (lhs / rhs) & mask, nil
	case OpURem:
		if rhs == 0 {
			return 0, fmt.Errorf("llir: division by zero")
		}
		return (lhs % rhs) & mask, nil
	case OpSDiv:
		if rhs == 0 {
			return 0, fmt.Errorf("llir: division by zero")
		}
		a, b := signExtend(lhs, ty.Bits), signExtend(rhs, ty.Bits)
		return uint64(int64(a)/int64(b)) & mask, nil
	case OpSRem:
		if rhs == 0 {
			return 0, fmt.Errorf("llir: division by zero")
		}
		a, b := signExtend(lhs, ty.Bits), signExtend(rhs, ty.Bits)
		return uint64(int64(a)%int64(b)) & mask, nil
	default:
		return 0, fmt.Errorf("llir: unhandled arithmetic opcode %s", op)
	}
}

func evalCmp(op Opcode, ty Type, lhs, rhs uint64) bool {
	switch op {
	case OpICmpEQ:
		return lhs == rhs
	case OpICmpNE:
		return lhs != rhs
	case OpICmpULT:
		return lhs < rhs
	case OpICmpULE:
		return lhs <= rhs
	case OpICmpUGT:
		return lhs > rhs
	case OpICmpUGE:
		return lhs >= rhs
	case OpICmpSLT:
		return int64(signExtend(lhs, ty.Bits)) < int64(signExtend(rhs, ty.Bits))
	case OpICmpSLE:
		return int64(signExtend(lhs, ty.Bits)) <= int64(signExtend(rhs, ty.Bits))
	case OpICmpSGT:
		return int64(signExtend(lhs, ty.Bits)) > int64(signExtend(rhs, ty.Bits))
	case OpICmpSGE:
		return int64(signExtend(lhs, ty.Bits)) >= int64(signExtend(rhs, ty.Bits))
	default:
		return false
	}
}
