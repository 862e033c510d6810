// Package isa holds the instruction model shared by the encoder, the
// assembler, and the execution engine: the tagged-union instruction type,
// the operand-2 shapes, the barrel shifter, and the condition evaluator.
// Nothing in this package knows about bit layouts or text syntax — that is
// the encoder's and parser's job respectively.
package isa

// Cond is an ARM condition code. Only the subset this ISA's grammar can
// express is represented; the numeric values match the real ARM encoding
// so the encoder can place them directly into bits 31..28.
type Cond uint8

const (
	CondEQ Cond = 0
	CondNE Cond = 1
	CondGE Cond = 10
	CondLT Cond = 11
	CondGT Cond = 12
	CondLE Cond = 13
	CondAL Cond = 14
)

func (c Cond) String() string {
	switch c {
	case CondEQ:
		return "EQ"
	case CondNE:
		return "NE"
	case CondGE:
		return "GE"
	case CondLT:
		return "LT"
	case CondGT:
		return "GT"
	case CondLE:
		return "LE"
	case CondAL:
		return "AL"
	default:
		return "??"
	}
}

// Op is a data-processing opcode. Values match the ARM opcode field so the
// encoder can place them directly into bits 24..21.
type Op uint8

const (
	OpAnd Op = 0x0
	OpEor Op = 0x1
	OpSub Op = 0x2
	OpRsb Op = 0x3
	OpAdd Op = 0x4
	OpTst Op = 0x8
	OpTeq Op = 0x9
	OpCmp Op = 0xA
	OpOrr Op = 0xC
	OpMov Op = 0xD
)

func (o Op) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpEor:
		return "EOR"
	case OpSub:
		return "SUB"
	case OpRsb:
		return "RSB"
	case OpAdd:
		return "ADD"
	case OpTst:
		return "TST"
	case OpTeq:
		return "TEQ"
	case OpCmp:
		return "CMP"
	case OpOrr:
		return "ORR"
	case OpMov:
		return "MOV"
	default:
		return "???"
	}
}

// IsCompare reports whether the opcode is one of the Tst/Teq/Cmp family,
// which always set flags, never write Rd, and take the single-register
// parser form (Rn, operand2).
func (o Op) IsCompare() bool {
	return o == OpTst || o == OpTeq || o == OpCmp
}

// ShiftKind is one of the four barrel-shifter operations.
type ShiftKind uint8

const (
	ShiftLSL ShiftKind = 0
	ShiftLSR ShiftKind = 1
	ShiftASR ShiftKind = 2
	ShiftROR ShiftKind = 3
)

func (s ShiftKind) String() string {
	switch s {
	case ShiftLSL:
		return "LSL"
	case ShiftLSR:
		return "LSR"
	case ShiftASR:
		return "ASR"
	case ShiftROR:
		return "ROR"
	default:
		return "???"
	}
}

// Shift is the shift applied to a register operand-2, either by a constant
// amount encoded in the instruction or by the low byte of another register.
type Shift struct {
	Type       ShiftKind
	ByRegister bool
	Amount     uint8 // 0..31, valid when !ByRegister
	Reg        uint8 // 0..15, valid when ByRegister
}

// Operand2 is the 12-bit second operand of a processing or transfer
// instruction: either an 8-bit value rotated right by an even amount, or a
// register optionally shifted. In this model the immediate/register
// discriminant is the Immediate field of Operand2 itself; Instruction has no
// separate tag for it. Only in the encoded word does the shape live outside
// the 12 operand bits, as the outer instruction's I bit (bit 25).
type Operand2 struct {
	Immediate bool
	ImmValue  uint8 // 0..255, valid when Immediate
	ImmRotate uint8 // 0..15 (rotation is 2*ImmRotate bits), valid when Immediate
	Reg       uint8 // 0..15, valid when !Immediate
	Shift     Shift // valid when !Immediate
}

// Kind discriminates the five instruction arms.
type Kind uint8

const (
	KindProcessing Kind = iota
	KindMultiply
	KindTransfer
	KindBranch
	KindHalt
)

func (k Kind) String() string {
	switch k {
	case KindProcessing:
		return "Processing"
	case KindMultiply:
		return "Multiply"
	case KindTransfer:
		return "Transfer"
	case KindBranch:
		return "Branch"
	case KindHalt:
		return "Halt"
	default:
		return "Unknown"
	}
}

// Instruction is the tagged-union instruction model: one struct with a Kind
// discriminant and a field set whose meaning depends on Kind, mirroring the
// teacher's Instruction/InstructionType pattern but fully decoded rather
// than carrying a raw opcode word.
type Instruction struct {
	Cond Cond
	Kind Kind

	// Processing: opcode, Rd = result, Rn = first operand, Operand2 = second.
	// Multiply reuses Rd (destination) and Rn (accumulate operand).
	// Transfer reuses Rn (base register) and Rd (data register), and
	// Operand2 as the address offset.
	Op       Op
	SetCond  bool
	Rn       uint8
	Rd       uint8
	Operand2 Operand2

	// Multiply only.
	Accumulate bool
	Rs         uint8
	Rm         uint8

	// Transfer only.
	Preindexed bool
	Up         bool
	Load       bool

	// Branch only: signed word offset (not yet shifted left by 2).
	BranchOffset int32
}

// Halt is the canonical zero-valued Halt instruction: cond is forced to Eq
// because the all-zero encoding requires a zero condition field.
func Halt() Instruction {
	return Instruction{Cond: CondEQ, Kind: KindHalt}
}
