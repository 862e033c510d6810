package parser

// SymbolTable is the label -> word-address map of spec.md §3, populated in
// pass 1 and consulted read-only by pass 2.
type SymbolTable struct {
	addresses map[string]uint32
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{addresses: make(map[string]uint32)}
}

// Define records a label at the current word address. Returns false if the
// label was already defined.
func (st *SymbolTable) Define(label string, addr uint32) bool {
	if _, exists := st.addresses[label]; exists {
		return false
	}
	st.addresses[label] = addr
	return true
}

// Lookup returns the address of a label and whether it was found.
func (st *SymbolTable) Lookup(label string) (uint32, bool) {
	addr, ok := st.addresses[label]
	return addr, ok
}
