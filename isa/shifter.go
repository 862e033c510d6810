package isa

// RegisterReader is the minimal register-file view the barrel shifter
// needs: reading register 15 must yield "address of current instruction +
// 8", per the ARM pipeline convention spec.md §9 describes. The execution
// engine's register file satisfies this directly; it is the pipeline
// driver, not this package, that makes register 15 behave that way.
type RegisterReader interface {
	Read(reg uint8) uint32
}

// Evaluate resolves an operand-2 value into its 32-bit result and the
// carry-out of the barrel shifter, per spec.md §4.3.
func Evaluate(op2 Operand2, regs RegisterReader) (result uint32, carryOut bool) {
	if op2.Immediate {
		value := uint32(op2.ImmValue)
		rotate := uint(op2.ImmRotate) * 2
		if rotate == 0 {
			return value, false
		}
		result = (value >> rotate) | (value << (32 - rotate))
		carryOut = (value>>(rotate-1))&1 != 0
		return result, carryOut
	}

	x := regs.Read(op2.Reg)
	var amount uint
	if op2.Shift.ByRegister {
		amount = uint(regs.Read(op2.Shift.Reg) & 0xFF)
	} else {
		amount = uint(op2.Shift.Amount)
	}
	return ApplyShift(op2.Shift.Type, x, amount)
}

// ApplyShift performs the shift rule R(t, n) of spec.md §4.3: a shift
// amount of 0 always yields the unchanged value with no carry. For LSL, LSR
// and ASR, amounts at or beyond the 32-bit width saturate, with the carry
// taken from the last bit shifted out; ROR takes its amount modulo 32.
func ApplyShift(t ShiftKind, x uint32, n uint) (result uint32, carryOut bool) {
	if n == 0 {
		return x, false
	}

	switch t {
	case ShiftLSL:
		if n > 32 {
			return 0, false
		}
		if n == 32 {
			return 0, x&1 != 0
		}
		return x << n, (x>>(32-n))&1 != 0

	case ShiftLSR:
		if n > 32 {
			return 0, false
		}
		if n == 32 {
			return 0, (x>>31)&1 != 0
		}
		return x >> n, (x>>(n-1))&1 != 0

	case ShiftASR:
		negative := (x>>31)&1 != 0
		if n >= 32 {
			if negative {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
		result = uint32(int32(x) >> n)
		return result, (x>>(n-1))&1 != 0

	case ShiftROR:
		m := n % 32
		if m == 0 {
			result = x
		} else {
			result = (x >> m) | (x << (32 - m))
		}
		return result, (x>>((n-1)%32))&1 != 0
	}

	return x, false
}
