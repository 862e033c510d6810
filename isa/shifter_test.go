package isa_test

import (
	"testing"

	"github.com/lookbusy1344/arm2-workbench/isa"
)

func TestApplyShiftZeroAmount(t *testing.T) {
	for _, kind := range []isa.ShiftKind{isa.ShiftLSL, isa.ShiftLSR, isa.ShiftASR, isa.ShiftROR} {
		result, carry := isa.ApplyShift(kind, 0xDEADBEEF, 0)
		if result != 0xDEADBEEF || carry {
			t.Errorf("ApplyShift(%v, x, 0) = (0x%X, %v), want (x, false)", kind, result, carry)
		}
	}
}

func TestApplyShiftLSL(t *testing.T) {
	result, carry := isa.ApplyShift(isa.ShiftLSL, 1, 31)
	if result != 0x80000000 || carry {
		t.Errorf("LSL by 31: got (0x%X, %v)", result, carry)
	}

	result, carry = isa.ApplyShift(isa.ShiftLSL, 1, 32)
	if result != 0 || !carry {
		t.Errorf("LSL by 32: got (0x%X, %v), want (0, true)", result, carry)
	}

	result, carry = isa.ApplyShift(isa.ShiftLSL, 1, 33)
	if result != 0 || carry {
		t.Errorf("LSL by 33: got (0x%X, %v), want (0, false)", result, carry)
	}
}

func TestApplyShiftLSR(t *testing.T) {
	result, carry := isa.ApplyShift(isa.ShiftLSR, 0x80000000, 32)
	if result != 0 || !carry {
		t.Errorf("LSR by 32: got (0x%X, %v), want (0, true)", result, carry)
	}
}

func TestApplyShiftASRSignExtends(t *testing.T) {
	result, carry := isa.ApplyShift(isa.ShiftASR, 0x80000000, 31)
	if result != 0xFFFFFFFF || carry {
		t.Errorf("ASR negative by 31: got (0x%X, %v), want (0xFFFFFFFF, false) since bit 30 is clear", result, carry)
	}

	result, carry = isa.ApplyShift(isa.ShiftASR, 0x80000000, 40)
	if result != 0xFFFFFFFF || !carry {
		t.Errorf("ASR negative saturating: got (0x%X, %v), want (0xFFFFFFFF, true)", result, carry)
	}

	result, carry = isa.ApplyShift(isa.ShiftASR, 0x7FFFFFFF, 40)
	if result != 0 || carry {
		t.Errorf("ASR positive saturating: got (0x%X, %v), want (0, false)", result, carry)
	}
}

func TestApplyShiftROR(t *testing.T) {
	result, carry := isa.ApplyShift(isa.ShiftROR, 1, 1)
	if result != 0x80000000 || !carry {
		t.Errorf("ROR by 1: got (0x%X, %v)", result, carry)
	}

	result, carry = isa.ApplyShift(isa.ShiftROR, 0x12345678, 32)
	if result != 0x12345678 || carry {
		t.Errorf("ROR by 32: got (0x%X, %v)", result, carry)
	}
}

type regFile [13]uint32

func (r regFile) Read(n uint8) uint32 {
	if n <= 12 {
		return r[n]
	}
	return 0
}

func TestEvaluateRegisterShift(t *testing.T) {
	regs := regFile{1: 0xFF, 2: 4}
	op2 := isa.Operand2{Reg: 1, Shift: isa.Shift{Type: isa.ShiftLSL, ByRegister: true, Reg: 2}}

	result, _ := isa.Evaluate(op2, regs)
	if result != 0xFF0 {
		t.Errorf("got 0x%X, want 0xFF0", result)
	}
}

func TestEvaluateRegisterShiftMasksToLowByte(t *testing.T) {
	regs := regFile{1: 1, 2: 0x100} // low byte of r2 is 0
	op2 := isa.Operand2{Reg: 1, Shift: isa.Shift{Type: isa.ShiftLSL, ByRegister: true, Reg: 2}}

	result, carry := isa.Evaluate(op2, regs)
	if result != 1 || carry {
		t.Errorf("got (0x%X, %v), want (1, false) since shift amount 0x100 & 0xFF == 0", result, carry)
	}
}
