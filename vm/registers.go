package vm

import "github.com/lookbusy1344/arm2-workbench/isa"

// Register slot numbers, grounded on the teacher's vm/cpu.go register
// aliases but restricted to this ISA's 17-slot file (spec.md §3).
const (
	PC   = 15
	CPSR = 16
)

// CPSRFlags holds the four condition flags, grounded on the teacher's
// vm.CPSR type.
type CPSRFlags struct {
	N, Z, C, V bool
}

// ToUint32 packs the flags into bits 31..28, matching real CPSR layout.
func (f CPSRFlags) ToUint32() uint32 {
	var v uint32
	if f.N {
		v |= 1 << 31
	}
	if f.Z {
		v |= 1 << 30
	}
	if f.C {
		v |= 1 << 29
	}
	if f.V {
		v |= 1 << 28
	}
	return v
}

// FromUint32 unpacks bits 31..28 into flags.
func (f *CPSRFlags) FromUint32(v uint32) {
	f.N = v&(1<<31) != 0
	f.Z = v&(1<<30) != 0
	f.C = v&(1<<29) != 0
	f.V = v&(1<<28) != 0
}

// Registers is the 17x32-bit register file of spec.md §3: slots 0-12
// general purpose, 13-14 reserved, 15 PC, 16 CPSR.
type Registers struct {
	R    [13]uint32
	PC   uint32
	CPSR CPSRFlags
}

// Read returns the value of register n. Reading register 15 returns the
// raw PC value, which by the time an instruction executes already equals
// "address of this instruction + 8" — see VM.Step in engine.go.
func (r *Registers) Read(n uint8) uint32 {
	switch {
	case n <= 12:
		return r.R[n]
	case n == PC:
		return r.PC
	case n == CPSR:
		return r.CPSR.ToUint32()
	default:
		return 0 // slots 13-14 are reserved and unused
	}
}

// Write sets the value of register n. Writing register 15 branches by
// setting the PC directly.
func (r *Registers) Write(n uint8, v uint32) {
	switch {
	case n <= 12:
		r.R[n] = v
	case n == PC:
		r.PC = v
	case n == CPSR:
		r.CPSR.FromUint32(v)
	}
}

// Flags returns the evaluator-facing view of the condition flags.
func (r *Registers) Flags() isa.Flags {
	return isa.Flags{N: r.CPSR.N, Z: r.CPSR.Z, C: r.CPSR.C, V: r.CPSR.V}
}
