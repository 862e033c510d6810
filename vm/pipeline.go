package vm

import "github.com/lookbusy1344/arm2-workbench/isa"

// Pipeline is the two scratch slots of spec.md §3: a fetched word awaiting
// decode, and a decoded instruction awaiting execution. Flushed on any
// taken branch.
type Pipeline struct {
	Fetched *uint32
	Decoded *isa.Instruction
}

// Flush empties both slots, per spec.md §3 and §4.8.
func (p *Pipeline) Flush() {
	p.Fetched = nil
	p.Decoded = nil
}
