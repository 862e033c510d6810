package vm

import "fmt"

// OutOfBoundsMemoryError reports an executed load/store that targets an
// address neither in memory nor a recognised GPIO address. Per spec.md §7
// this is the one error kind that is reported but not fatal: execution
// continues, the access is simply ignored.
type OutOfBoundsMemoryError struct {
	Address uint32
	Write   bool
}

func (e *OutOfBoundsMemoryError) Error() string {
	verb := "read"
	if e.Write {
		verb = "write"
	}
	return fmt.Sprintf("out-of-bounds memory %s at 0x%08X", verb, e.Address)
}

// Fatal is always false for OutOfBoundsMemoryError — the sole non-fatal
// error kind spec.md §7 defines.
func (e *OutOfBoundsMemoryError) Fatal() bool { return false }
