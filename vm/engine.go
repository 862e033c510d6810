package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/lookbusy1344/arm2-workbench/encoder"
	"github.com/lookbusy1344/arm2-workbench/isa"
)

// DefaultMaxCycles bounds runaway execution. spec.md has no non-goal
// against an implementation defensively bounding a loop — only against
// architectural features (exceptions, interrupts) this ISA doesn't have —
// so this guard is config-adjustable but always present.
const DefaultMaxCycles = 1_000_000

// VM is the simulated machine of spec.md §3: a register file, memory, and
// a two-stage pipeline, driven by Step/Run (C9) through the per-instruction
// semantics of execute.go (C8).
type VM struct {
	Regs     *Registers
	Memory   *Memory
	Pipeline Pipeline

	// Output receives GPIO side-channel messages (spec.md §6). Defaults to
	// stdout; tests substitute a buffer.
	Output io.Writer

	// Diagnostics receives non-fatal OutOfBoundsMemory reports (spec.md
	// §7). Defaults to stderr.
	Diagnostics io.Writer

	MaxCycles uint64
	Cycles    uint64

	// ReportGPIO, when false, suppresses GPIO side-channel messages
	// without changing the emulated memory effect (config.Display option).
	ReportGPIO bool
}

// NewVM returns a zero-initialized VM ready to load a program.
func NewVM() *VM {
	return &VM{
		Regs:        &Registers{},
		Memory:      NewMemory(),
		Output:      os.Stdout,
		Diagnostics: os.Stderr,
		MaxCycles:   DefaultMaxCycles,
		ReportGPIO:  true,
	}
}

// LoadImage loads a flat binary image at address 0 and resets the program
// counter and pipeline, per spec.md §6 ("PC starts at 0").
func (v *VM) LoadImage(data []byte) error {
	if err := v.Memory.LoadImage(data); err != nil {
		return err
	}
	v.Regs.PC = 0
	v.Pipeline.Flush()
	return nil
}

// Step runs one pipeline cycle, per spec.md §4.8:
//  1. If decoded holds Halt, terminate successfully.
//  2. If decoded holds any other instruction, execute it.
//  3. If the pipeline was not flushed and fetched holds a word, decode it.
//     If decoding just produced Halt, stop here: the halt check in step 1
//     of the next cycle will terminate without a further fetch.
//  4. Fetch the word at PC into fetched and advance PC by 4.
func (v *VM) Step() (halted bool, err error) {
	flushed := false

	if v.Pipeline.Decoded != nil {
		if v.Pipeline.Decoded.Kind == isa.KindHalt {
			return true, nil
		}
		if execErr := v.execute(v.Pipeline.Decoded, &flushed); execErr != nil {
			type fataler interface{ Fatal() bool }
			if fe, ok := execErr.(fataler); ok && !fe.Fatal() {
				fmt.Fprintln(v.Diagnostics, execErr)
			} else {
				return false, execErr
			}
		}
	}

	if !flushed && v.Pipeline.Fetched != nil {
		decoded, decErr := encoder.Decode(*v.Pipeline.Fetched)
		if decErr != nil {
			return false, decErr
		}
		v.Pipeline.Decoded = &decoded
	}

	if v.Pipeline.Decoded != nil && v.Pipeline.Decoded.Kind == isa.KindHalt {
		return false, nil
	}

	word, fetchErr := v.Memory.ReadWord(v.Regs.PC)
	if fetchErr != nil {
		return false, fetchErr
	}
	v.Pipeline.Fetched = &word
	v.Regs.PC += 4
	v.Cycles++

	return false, nil
}

// Run drives Step until the program halts, a fatal error occurs, or
// MaxCycles is exceeded.
func (v *VM) Run() error {
	for {
		halted, err := v.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
		if v.MaxCycles > 0 && v.Cycles > v.MaxCycles {
			return fmt.Errorf("maximum cycles exceeded (%d)", v.MaxCycles)
		}
	}
}
