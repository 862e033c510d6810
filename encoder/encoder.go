package encoder

import (
	"fmt"

	"github.com/lookbusy1344/arm2-workbench/isa"
)

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// Encode maps an instruction variant to its 32-bit word, per spec.md §4.5.
// Halt always encodes as all zeros; Branch's 24-bit signed offset is masked
// before placement.
func Encode(inst isa.Instruction) (uint32, error) {
	cond := uint32(inst.Cond) << isa.CondShift

	switch inst.Kind {
	case isa.KindHalt:
		return 0, nil

	case isa.KindProcessing:
		word := cond |
			(boolBit(inst.Operand2.Immediate) << isa.IShift) |
			(uint32(inst.Op) << isa.OpcodeShift) |
			(boolBit(inst.SetCond) << isa.SShift) |
			(uint32(inst.Rn) << isa.RnShift) |
			(uint32(inst.Rd) << isa.RdShift) |
			packOperand2(inst.Operand2)
		return word, nil

	case isa.KindMultiply:
		word := cond |
			(boolBit(inst.Accumulate) << isa.AShift) |
			(boolBit(inst.SetCond) << isa.SShift) |
			(uint32(inst.Rd) << isa.RnShift) | // Rd (mult dest) sits at bit position 16
			(uint32(inst.Rn) << isa.RdShift) | // Rn (accumulate operand) sits at bit position 12
			(uint32(inst.Rs) << isa.RsShift) |
			(isa.MultiplyPattern << 4) |
			uint32(inst.Rm)
		return word, nil

	case isa.KindTransfer:
		word := cond |
			(1 << 26) | // class bits 27..26 = 01
			(boolBit(inst.Operand2.Immediate) << isa.IShift) |
			(boolBit(inst.Preindexed) << isa.PShift) |
			(boolBit(inst.Up) << isa.UShift) |
			(boolBit(inst.Load) << isa.LShift) |
			(uint32(inst.Rn) << isa.RnShift) |
			(uint32(inst.Rd) << isa.RdShift) |
			packOperand2(inst.Operand2)
		return word, nil

	case isa.KindBranch:
		word := cond |
			(1 << 27) | // class bits 27..26 = 10
			(uint32(inst.BranchOffset) & isa.Mask24Bit)
		return word, nil
	}

	return 0, fmt.Errorf("encoder: unknown instruction kind %v", inst.Kind)
}
