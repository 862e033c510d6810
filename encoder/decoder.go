package encoder

import "github.com/lookbusy1344/arm2-workbench/isa"

// Decode is the inverse of Encode, per spec.md §4.5: it classifies a
// 32-bit word by bits 27..26 and populates the instruction model. A word of
// all zeros is Halt, checked before the general classification so that the
// degenerate "ANDEQ R0,R0,R0" encoding the grammar can never actually
// produce is reserved for the pseudo-op instead (spec.md §9, Open Question
// (a)).
func Decode(word uint32) (isa.Instruction, error) {
	if word == 0 {
		return isa.Halt(), nil
	}

	cond := isa.Cond((word >> isa.CondShift) & isa.Mask4Bit)
	class := isa.ClassBits((word >> 26) & isa.Mask2Bit)

	switch class {
	case isa.ClassProcessingOrMultiply:
		// Multiply words never set the I bit, so an immediate operand-2 whose
		// bits 7..4 happen to be 1001 stays a processing instruction.
		if (word>>isa.IShift)&1 == 0 && (word>>4)&isa.Mask4Bit == isa.MultiplyPattern {
			return decodeMultiply(word, cond), nil
		}
		return decodeProcessing(word, cond), nil

	case isa.ClassTransfer:
		return decodeTransfer(word, cond), nil

	case isa.ClassBranch:
		return decodeBranch(word, cond), nil

	default:
		return isa.Instruction{}, &BadInstructionShapeError{Word: word}
	}
}

func decodeProcessing(word uint32, cond isa.Cond) isa.Instruction {
	immediate := (word>>isa.IShift)&1 != 0
	return isa.Instruction{
		Cond:     cond,
		Kind:     isa.KindProcessing,
		Op:       isa.Op((word >> isa.OpcodeShift) & isa.Mask4Bit),
		SetCond:  (word>>isa.SShift)&1 != 0,
		Rn:       uint8((word >> isa.RnShift) & isa.Mask4Bit),
		Rd:       uint8((word >> isa.RdShift) & isa.Mask4Bit),
		Operand2: unpackOperand2(word&isa.Mask12Bit, immediate),
	}
}

func decodeMultiply(word uint32, cond isa.Cond) isa.Instruction {
	return isa.Instruction{
		Cond:       cond,
		Kind:       isa.KindMultiply,
		Accumulate: (word>>isa.AShift)&1 != 0,
		SetCond:    (word>>isa.SShift)&1 != 0,
		Rd:         uint8((word >> isa.RnShift) & isa.Mask4Bit), // position 16
		Rn:         uint8((word >> isa.RdShift) & isa.Mask4Bit), // position 12
		Rs:         uint8((word >> isa.RsShift) & isa.Mask4Bit),
		Rm:         uint8(word & isa.Mask4Bit),
	}
}

func decodeTransfer(word uint32, cond isa.Cond) isa.Instruction {
	immediate := (word>>isa.IShift)&1 != 0
	return isa.Instruction{
		Cond:       cond,
		Kind:       isa.KindTransfer,
		Preindexed: (word>>isa.PShift)&1 != 0,
		Up:         (word>>isa.UShift)&1 != 0,
		Load:       (word>>isa.LShift)&1 != 0,
		Rn:         uint8((word >> isa.RnShift) & isa.Mask4Bit),
		Rd:         uint8((word >> isa.RdShift) & isa.Mask4Bit),
		Operand2:   unpackOperand2(word&isa.Mask12Bit, immediate),
	}
}

func decodeBranch(word uint32, cond isa.Cond) isa.Instruction {
	offsetBits := word & isa.Mask24Bit
	// Sign-extend the 24-bit field by shifting it to straddle bit 31 and
	// back with an arithmetic shift.
	offset := int32(offsetBits<<8) >> 8
	return isa.Instruction{
		Cond:         cond,
		Kind:         isa.KindBranch,
		BranchOffset: offset,
	}
}
