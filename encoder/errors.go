package encoder

import "fmt"

// BadInstructionShapeError reports a 32-bit word that matches no decodable
// pattern, per spec.md §4.5 and §7.
type BadInstructionShapeError struct {
	Word uint32
}

func (e *BadInstructionShapeError) Error() string {
	return fmt.Sprintf("word 0x%08X does not match any decodable instruction shape", e.Word)
}

// Fatal reports whether this error kind aborts the current run.
func (e *BadInstructionShapeError) Fatal() bool { return true }
