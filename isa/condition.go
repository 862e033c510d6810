package isa

// Flags is the subset of CPSR condition bits the evaluator consults.
type Flags struct {
	N, Z, C, V bool
}

// EvaluateCondition decides whether a conditional instruction fires given
// the current flags, per spec.md §4.4. Cmp's own carry semantics (the
// ¬borrow convention) are resolved by the execution engine before flags
// reach here; this function only implements the fixed truth table.
func EvaluateCondition(cond Cond, f Flags) bool {
	switch cond {
	case CondEQ:
		return f.Z
	case CondNE:
		return !f.Z
	case CondGE:
		return f.N == f.V
	case CondLT:
		return f.N != f.V
	case CondGT:
		return !f.Z && f.N == f.V
	case CondLE:
		return f.Z || f.N != f.V
	case CondAL:
		return true
	default:
		return false
	}
}
