package vm

import "fmt"

// MemorySize is the fixed size of the simulated machine's memory, per
// spec.md §3.
const MemorySize = 65536

// GPIO pseudo-addresses, grounded on original_source/src/emulate/gpio.rs
// and spec.md §6. These are not backed by memory; accessing them produces
// a diagnostic message instead of a memory effect.
const (
	GPIOPinLow  = 0x20200000
	GPIOPinMid  = 0x20200004
	GPIOPinHigh = 0x20200008
	GPIOPinOn   = 0x2020001C
	GPIOPinOff  = 0x20200028
)

// gpioMessage returns the diagnostic message for a recognised GPIO address
// and whether the address was recognised at all.
func gpioMessage(addr uint32) (string, bool) {
	switch addr {
	case GPIOPinLow:
		return "One GPIO pin from 0 to 9 has been accessed", true
	case GPIOPinMid:
		return "One GPIO pin from 10 to 19 has been accessed", true
	case GPIOPinHigh:
		return "One GPIO pin from 20 to 29 has been accessed", true
	case GPIOPinOn:
		return "PIN ON", true
	case GPIOPinOff:
		return "PIN OFF", true
	default:
		return "", false
	}
}

// Memory is the fixed 64 KiB byte array of spec.md §3. Reads and writes are
// word-sized at arbitrary byte offsets, interpreted little-endian.
type Memory struct {
	bytes [MemorySize]byte
}

// NewMemory returns a zero-initialized memory.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadWord reads a little-endian 32-bit word at addr. Out-of-range reads
// fail.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if uint64(addr)+4 > MemorySize {
		return 0, &OutOfBoundsMemoryError{Address: addr, Write: false}
	}
	return uint32(m.bytes[addr]) |
		uint32(m.bytes[addr+1])<<8 |
		uint32(m.bytes[addr+2])<<16 |
		uint32(m.bytes[addr+3])<<24, nil
}

// WriteWord writes a little-endian 32-bit word at addr. Out-of-range writes
// are reported but not fatal — the caller decides how to surface that.
func (m *Memory) WriteWord(addr, value uint32) error {
	if uint64(addr)+4 > MemorySize {
		return &OutOfBoundsMemoryError{Address: addr, Write: true}
	}
	m.bytes[addr] = byte(value)
	m.bytes[addr+1] = byte(value >> 8)
	m.bytes[addr+2] = byte(value >> 16)
	m.bytes[addr+3] = byte(value >> 24)
	return nil
}

// LoadImage copies a flat binary image into memory starting at address 0,
// per spec.md §6 ("word at offset 0 is the entry point").
func (m *Memory) LoadImage(data []byte) error {
	if len(data) > MemorySize {
		return fmt.Errorf("image of %d bytes exceeds %d-byte memory", len(data), MemorySize)
	}
	copy(m.bytes[:], data)
	return nil
}

// NonZeroWords returns the addresses (ascending, 4-byte aligned) of every
// word in memory that is not zero, for the register-dump's memory section.
func (m *Memory) NonZeroWords() []uint32 {
	var addrs []uint32
	for addr := uint32(0); addr+4 <= MemorySize; addr += 4 {
		word, _ := m.ReadWord(addr)
		if word != 0 {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}
