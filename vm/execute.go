package vm

import (
	"fmt"

	"github.com/lookbusy1344/arm2-workbench/isa"
)

// execute performs the effect of one decoded instruction, per spec.md §4.7.
// flushed is set to true when the pipeline must be discarded (a taken
// branch), signalling engine.Step to skip the decode step this cycle.
func (v *VM) execute(inst *isa.Instruction, flushed *bool) error {
	if !isa.EvaluateCondition(inst.Cond, v.Regs.Flags()) {
		return nil
	}

	switch inst.Kind {
	case isa.KindProcessing:
		return v.executeProcessing(inst)
	case isa.KindMultiply:
		v.executeMultiply(inst)
		return nil
	case isa.KindTransfer:
		return v.executeTransfer(inst)
	case isa.KindBranch:
		v.executeBranch(inst)
		*flushed = true
		v.Pipeline.Flush()
		return nil
	}
	return fmt.Errorf("unexecutable instruction kind %v", inst.Kind)
}

// executeProcessing implements the ten data-processing opcodes of spec.md
// §4.7, including the Tst/Teq/Cmp compare forms that discard their result
// and always set flags.
func (v *VM) executeProcessing(inst *isa.Instruction) error {
	op1 := v.Regs.Read(inst.Rn)
	op2, shifterCarry := isa.Evaluate(inst.Operand2, v.Regs)

	var result uint32
	var aluCarry bool
	aluCarrySet := false

	switch inst.Op {
	case isa.OpAnd, isa.OpTst:
		result = op1 & op2
	case isa.OpEor, isa.OpTeq:
		result = op1 ^ op2
	case isa.OpOrr:
		result = op1 | op2
	case isa.OpMov:
		result = op2
	case isa.OpSub, isa.OpCmp:
		result = op1 - op2
		aluCarry = op1 >= op2
		aluCarrySet = true
	case isa.OpRsb:
		result = op2 - op1
		aluCarry = op2 >= op1
		aluCarrySet = true
	case isa.OpAdd:
		result = op1 + op2
		aluCarry = result < op1
		aluCarrySet = true
	}

	if !inst.Op.IsCompare() {
		v.Regs.Write(inst.Rd, result)
	}

	if inst.SetCond {
		v.Regs.CPSR.Z = result == 0
		v.Regs.CPSR.N = result&0x80000000 != 0
		if aluCarrySet {
			v.Regs.CPSR.C = aluCarry
		} else {
			v.Regs.CPSR.C = shifterCarry
		}
	}

	return nil
}

// executeMultiply implements Mul/Mla, per spec.md §4.7: unsigned wraparound
// arithmetic, and only the Z and N flags ever updated.
func (v *VM) executeMultiply(inst *isa.Instruction) {
	result := v.Regs.Read(inst.Rm) * v.Regs.Read(inst.Rs)
	if inst.Accumulate {
		result += v.Regs.Read(inst.Rn)
	}
	v.Regs.Write(inst.Rd, result)

	if inst.SetCond {
		v.Regs.CPSR.Z = result == 0
		v.Regs.CPSR.N = result&0x80000000 != 0
	}
}

// executeTransfer implements Ldr/Str addressing and the GPIO side channel,
// per spec.md §4.7 and §6: an address below 65536 hits real memory; a
// recognised GPIO address produces a diagnostic message instead of a memory
// effect; anything else is reported as an out-of-bounds access but does not
// abort execution.
func (v *VM) executeTransfer(inst *isa.Instruction) error {
	offset, _ := isa.Evaluate(inst.Operand2, v.Regs)
	base := v.Regs.Read(inst.Rn)

	offsetAddr := base + offset
	if !inst.Up {
		offsetAddr = base - offset
	}

	addr := base
	if inst.Preindexed {
		addr = offsetAddr
	}

	var reportErr error

	switch {
	case addr < MemorySize:
		if inst.Load {
			val, err := v.Memory.ReadWord(addr)
			if err != nil {
				reportErr = err
			} else {
				v.Regs.Write(inst.Rd, val)
			}
		} else {
			if err := v.Memory.WriteWord(addr, v.Regs.Read(inst.Rd)); err != nil {
				reportErr = err
			}
		}

	default:
		if msg, ok := gpioMessage(addr); ok {
			if v.ReportGPIO {
				fmt.Fprintln(v.Output, msg)
			}
			if inst.Load {
				v.Regs.Write(inst.Rd, addr)
			}
		} else {
			reportErr = &OutOfBoundsMemoryError{Address: addr, Write: !inst.Load}
		}
	}

	if !inst.Preindexed {
		v.Regs.Write(inst.Rn, offsetAddr)
	}

	return reportErr
}

// executeBranch implements Branch, per spec.md §4.7: the target is PC
// (already address-of-this-instruction+8, by pipeline convention) plus the
// sign-extended word offset shifted left by 2.
func (v *VM) executeBranch(inst *isa.Instruction) {
	v.Regs.PC = v.Regs.PC + uint32(inst.BranchOffset*4)
}
