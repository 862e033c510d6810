package vm_test

import (
	"bytes"
	"testing"

	"github.com/lookbusy1344/arm2-workbench/parser"
	"github.com/lookbusy1344/arm2-workbench/vm"
)

func assembleAndRun(t *testing.T, src string) *vm.VM {
	t.Helper()
	image, err := parser.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	m := vm.NewVM()
	var output bytes.Buffer
	m.Output = &output
	if err := m.LoadImage(image); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return m
}

func TestS1ImmediateMove(t *testing.T) {
	m := assembleAndRun(t, "mov r1,#0x1\nandeq r0,r0,r0")
	if got := m.Regs.Read(1); got != 1 {
		t.Errorf("R1 = %d, want 1", got)
	}
	if m.Regs.PC != 8 {
		t.Errorf("PC = %d, want 8", m.Regs.PC)
	}
	for n := uint8(0); n <= 12; n++ {
		if n == 1 {
			continue
		}
		if got := m.Regs.Read(n); got != 0 {
			t.Errorf("R%d = %d, want 0", n, got)
		}
	}
}

func TestS2AddWithRegisterOperand(t *testing.T) {
	m := assembleAndRun(t, "mov r1,#2\nmov r2,#3\nadd r3,r1,r2\nandeq r0,r0,r0")
	if got := m.Regs.Read(1); got != 2 {
		t.Errorf("R1 = %d, want 2", got)
	}
	if got := m.Regs.Read(2); got != 3 {
		t.Errorf("R2 = %d, want 3", got)
	}
	if got := m.Regs.Read(3); got != 5 {
		t.Errorf("R3 = %d, want 5", got)
	}
}

func TestS3MultiplyAccumulate(t *testing.T) {
	m := assembleAndRun(t, "mov r1,#3\nmov r2,#4\nmov r4,#5\nmla r3,r1,r2,r4\nandeq r0,r0,r0")
	if got := m.Regs.Read(3); got != 17 {
		t.Errorf("R3 = %d, want 17", got)
	}
}

func TestS4LiteralPool(t *testing.T) {
	m := assembleAndRun(t, "ldr r2,=0x20200020\nandeq r0,r0,r0")
	if got := m.Regs.Read(2); got != 0x20200020 {
		t.Errorf("R2 = 0x%X, want 0x20200020", got)
	}
}

func TestS5BackwardBranch(t *testing.T) {
	m := assembleAndRun(t, "mov r1,#0\nloop:\nadd r1,r1,#1\ncmp r1,#3\nblt loop\nandeq r0,r0,r0")
	if got := m.Regs.Read(1); got != 3 {
		t.Errorf("R1 = %d, want 3", got)
	}
	if !m.Regs.CPSR.Z {
		t.Error("expected CPSR Z flag set")
	}
}

func TestS6GPIOWrite(t *testing.T) {
	src := "ldr r0,=0x20200000\nmov r1,#1\nstr r1,[r0]\nandeq r0,r0,r0"
	image, err := parser.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	m := vm.NewVM()
	var output bytes.Buffer
	m.Output = &output
	if err := m.LoadImage(image); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := output.String()
	want := "One GPIO pin from 0 to 9 has been accessed\n"
	if got != want {
		t.Errorf("GPIO output = %q, want %q", got, want)
	}

	_, err = m.Memory.ReadWord(0x20200000)
	if err == nil {
		t.Fatal("expected out-of-bounds read at the GPIO pseudo-address, since it is not backed by memory")
	}
}

func TestPC8RuleAfterFetch(t *testing.T) {
	image, err := parser.Assemble("mov r1,#1\nmov r2,#2\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	m := vm.NewVM()
	if err := m.LoadImage(image); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	// After Step 1: word at address 0 has been fetched, PC advanced to 4.
	if _, err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if m.Regs.PC != 4 {
		t.Fatalf("PC after first fetch = %d, want 4", m.Regs.PC)
	}

	// After Step 2: instruction at address 0 is decoded, address 4 fetched,
	// PC advances to 8 == address(0) + 8.
	if _, err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if m.Regs.PC != 8 {
		t.Fatalf("PC after second fetch = %d, want 8 (address(0)+8)", m.Regs.PC)
	}
}

func TestOutOfBoundsMemoryIsNonFatal(t *testing.T) {
	image, err := parser.Assemble("ldr r0,=0x30000\nstr r0,[r0]\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	m := vm.NewVM()
	var diagnostics bytes.Buffer
	m.Diagnostics = &diagnostics
	if err := m.LoadImage(image); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run should not abort on an out-of-bounds access: %v", err)
	}
	if diagnostics.Len() == 0 {
		t.Error("expected a diagnostic for the out-of-bounds write")
	}
}

func TestHaltConvergence(t *testing.T) {
	m := assembleAndRun(t, "mov r1,#1\nmov r2,#1\nmov r3,#1\nandeq r0,r0,r0")
	if m.Cycles == 0 {
		t.Error("expected at least one cycle to have run")
	}
}
