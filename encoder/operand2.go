// Package encoder implements the codec: bit-exact encoding of isa.Instruction
// values to 32-bit words and decoding back, per spec.md §4.1 and §4.5.
package encoder

import "github.com/lookbusy1344/arm2-workbench/isa"

// packOperand2 packs the low 12 bits of an operand-2 field, per spec.md
// §4.1. The immediate/register shape is not recorded in these 12 bits — the
// caller is responsible for placing the outer instruction's I bit.
func packOperand2(op2 isa.Operand2) uint32 {
	if op2.Immediate {
		return (uint32(op2.ImmRotate) << isa.ImmRotateShift) | uint32(op2.ImmValue)
	}

	if op2.Shift.ByRegister {
		return (uint32(op2.Shift.Reg) << isa.RegShiftShift) |
			(uint32(op2.Shift.Type) << isa.ShiftTypeShift) |
			(1 << 4) |
			uint32(op2.Reg)
	}

	return (uint32(op2.Shift.Amount) << isa.ConstShiftShift) |
		(uint32(op2.Shift.Type) << isa.ShiftTypeShift) |
		uint32(op2.Reg)
}

// unpackOperand2 is the inverse of packOperand2. immediate tells it which
// shape the outer instruction's I bit selected, since the 12 bits alone do
// not self-describe that choice (spec.md §9, "Operand-2 discriminant").
func unpackOperand2(bits uint32, immediate bool) isa.Operand2 {
	if immediate {
		return isa.Operand2{
			Immediate: true,
			ImmValue:  uint8(bits & isa.Mask8Bit),
			ImmRotate: uint8((bits >> isa.ImmRotateShift) & isa.Mask4Bit),
		}
	}

	reg := uint8(bits & isa.Mask4Bit)
	shiftType := isa.ShiftKind((bits >> isa.ShiftTypeShift) & isa.Mask2Bit)
	byRegister := (bits>>4)&1 != 0

	if byRegister {
		return isa.Operand2{
			Reg: reg,
			Shift: isa.Shift{
				Type:       shiftType,
				ByRegister: true,
				Reg:        uint8((bits >> isa.RegShiftShift) & isa.Mask4Bit),
			},
		}
	}

	return isa.Operand2{
		Reg: reg,
		Shift: isa.Shift{
			Type:   shiftType,
			Amount: uint8((bits >> isa.ConstShiftShift) & isa.Mask5Bit),
		},
	}
}
