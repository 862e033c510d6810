package vm

import (
	"fmt"
	"io"
)

// dumpRegisterOrder is the fixed register-dump order of spec.md §6: the
// thirteen general registers, then PC, then CPSR.
var dumpRegisterOrder = []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, PC, CPSR}

// DumpRegisters writes one "$<i>: <decimal_signed> (0x<hex>)" line per
// register, in the order spec.md §6 fixes.
func (v *VM) DumpRegisters(w io.Writer) error {
	return v.DumpRegistersFormat(w, "both")
}

// DumpRegistersFormat is DumpRegisters with the config.Display.NumberFormat
// knob applied: "hex" or "dec" print only that representation, anything
// else (including the "both" default) prints spec.md §6's full line.
func (v *VM) DumpRegistersFormat(w io.Writer, numberFormat string) error {
	for _, n := range dumpRegisterOrder {
		value := v.Regs.Read(n)
		var line string
		switch numberFormat {
		case "hex":
			line = fmt.Sprintf("$%d: 0x%x\n", n, value)
		case "dec":
			line = fmt.Sprintf("$%d: %d\n", n, int32(value))
		default:
			line = fmt.Sprintf("$%d: %d (0x%x)\n", n, int32(value), value)
		}
		if _, err := fmt.Fprint(w, line); err != nil {
			return err
		}
	}
	return nil
}

// DumpMemory writes one "0x<addr>: 0x<word>" line per non-zero 4-byte-aligned
// memory word, in ascending address order. Per spec.md §6 the printed word
// preserves the on-disk byte pattern (the order the bytes were written in),
// rather than the little-endian integer ReadWord interprets them as.
func (v *VM) DumpMemory(w io.Writer) error {
	for _, addr := range v.Memory.NonZeroWords() {
		displayWord := v.Memory.diskOrderWord(addr)
		if _, err := fmt.Fprintf(w, "0x%x: 0x%x\n", addr, displayWord); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes the full register dump followed by the non-zero memory words,
// per spec.md §6's "emulate" CLI contract.
func (v *VM) Dump(w io.Writer) error {
	if err := v.DumpRegisters(w); err != nil {
		return err
	}
	return v.DumpMemory(w)
}

// diskOrderWord reads the four bytes at addr in the order they are stored
// and packs them as a big-endian number, the inverse byte order of
// ReadWord's little-endian interpretation.
func (m *Memory) diskOrderWord(addr uint32) uint32 {
	return uint32(m.bytes[addr])<<24 |
		uint32(m.bytes[addr+1])<<16 |
		uint32(m.bytes[addr+2])<<8 |
		uint32(m.bytes[addr+3])
}
