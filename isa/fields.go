package isa

// Bit-field positions and sizes, grounded on the teacher's
// vm/arch_constants.go. This is the single table both the encoder and the
// decoder consult, per spec.md §3's "Bit-field table" — positions are bit
// indices, sizes are widths.
const (
	CondShift = 28 // Cond: 4 bits at 28
	IShift    = 25 // I (immediate flag): 1 bit at 25
	SShift    = 20 // S (set cond): 1 bit at 20
	RnShift   = 16 // Rn: 4 bits at 16
	RdShift   = 12 // Rd: 4 bits at 12

	OpcodeShift = 21 // Opcode (processing): 4 bits at 21

	PShift = 24 // P (preindex): 1 bit at 24
	UShift = 23 // U (up bit): 1 bit at 23
	LShift = 20 // L (load): 1 bit at 20

	AShift = 21 // A (accumulate): 1 bit at 21
	RsShift = 8 // Rs: 4 bits at 8
	RmShift = 0 // Rm: 4 bits at 0

	BranchOffsetShift = 0  // Branch offset: 24 bits at 0
	ImmValueShift     = 0  // Imm value: 8 bits at 0
	ImmRotateShift    = 8  // Imm rotate: 4 bits at 8
	ShiftTypeShift    = 5  // Shift type: 2 bits at 5
	ConstShiftShift   = 7  // Const shift amount: 5 bits at 7
	RegShiftShift     = 8  // Register shift register: 4 bits at 8

	Mask2Bit  = 0x3
	Mask3Bit  = 0x7
	Mask4Bit  = 0xF
	Mask5Bit  = 0x1F
	Mask8Bit  = 0xFF
	Mask12Bit = 0xFFF
	Mask24Bit = 0xFFFFFF
)

// ClassBits are the bits 27..26 the decoder inspects to classify a word.
type ClassBits uint8

const (
	ClassProcessingOrMultiply ClassBits = 0b00
	ClassTransfer             ClassBits = 0b01
	ClassBranch               ClassBits = 0b10
	ClassReserved             ClassBits = 0b11
)

// MultiplyPattern is the constant bit pattern (bits 7..4) that marks a
// ClassProcessingOrMultiply word as a multiply rather than a data
// processing instruction.
const MultiplyPattern = 0b1001
