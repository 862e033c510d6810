// Package parser implements the two-pass assembler of spec.md §4.6: a
// source line splitter, a label-address symbol table, and a flat tokeniser
// plus switch-on-mnemonic instruction parser, following the teacher's
// hand-written recursive-descent style rather than a combinator library.
package parser

import (
	"strings"

	"github.com/lookbusy1344/arm2-workbench/encoder"
	"github.com/lookbusy1344/arm2-workbench/isa"
)

// line is a retained (non-blank, non-label) source line together with the
// word address it will be assembled at.
type line struct {
	pos     Position
	text    string
	address uint32
}

// Assemble runs the full two-pass algorithm of spec.md §4.6 over source
// text and returns the little-endian binary image: the code buffer
// followed by the literal pool.
func Assemble(source string) ([]byte, error) {
	retained, symbols, err := pass1(source)
	if err != nil {
		return nil, err
	}
	return pass2(retained, symbols)
}

// pass1 walks the lines in order, skipping blanks, recording label
// addresses, and retaining every other line with its eventual address.
func pass1(source string) ([]line, *SymbolTable, error) {
	symbols := NewSymbolTable()
	var retained []line

	wordCounter := uint32(0)
	for i, raw := range strings.Split(source, "\n") {
		pos := Position{Line: i + 1}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}

		if strings.HasSuffix(text, ":") {
			label := strings.TrimSuffix(text, ":")
			if !symbols.Define(label, wordCounter) {
				return nil, nil, &DuplicateLabelError{Pos: pos, Label: label}
			}
			continue
		}

		retained = append(retained, line{pos: pos, text: text, address: wordCounter})
		wordCounter += 4
	}

	return retained, symbols, nil
}

// pass2 parses each retained line into an instruction (and optional literal
// pool word), encodes it, and concatenates the code buffer with the pool
// buffer.
func pass2(retained []line, symbols *SymbolTable) ([]byte, error) {
	instructionCount := uint32(len(retained))
	nextFreeAddress := instructionCount * 4

	var code []byte
	var pool []byte

	for _, ln := range retained {
		inst, poolWord, err := parseLine(ln, symbols, nextFreeAddress)
		if err != nil {
			return nil, err
		}

		word, err := encoder.Encode(inst)
		if err != nil {
			return nil, err
		}
		code = appendLittleEndian(code, word)

		if poolWord != nil {
			pool = appendLittleEndian(pool, *poolWord)
			nextFreeAddress += 4
		}
	}

	return append(code, pool...), nil
}

func appendLittleEndian(buf []byte, word uint32) []byte {
	return append(buf, byte(word), byte(word>>8), byte(word>>16), byte(word>>24))
}

// parseLine dispatches on mnemonic to produce one instruction and, for the
// ldr-pseudo-immediate case, an optional literal pool word.
func parseLine(ln line, symbols *SymbolTable, nextFreeAddress uint32) (isa.Instruction, *uint32, error) {
	mnemonic, rest := splitMnemonic(ln.text)
	fields := splitTopLevelFields(rest)

	switch {
	case mnemonic == "andeq":
		if len(fields) == 3 && fields[0] == "r0" && fields[1] == "r0" && fields[2] == "r0" {
			return isa.Halt(), nil, nil
		}
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "andeq only valid as the halt pseudo-op \"andeq r0,r0,r0\""}

	case mnemonic == "lsl":
		return parseLslPseudo(ln, fields)

	case mnemonic == "mul":
		return parseMultiply(ln, fields, false)
	case mnemonic == "mla":
		return parseMultiply(ln, fields, true)

	case mnemonic == "ldr":
		return parseTransfer(ln, fields, symbols, nextFreeAddress, true)
	case mnemonic == "str":
		return parseTransfer(ln, fields, symbols, nextFreeAddress, false)

	default:
		if op, ok := processingOpcodes[mnemonic]; ok {
			return parseProcessing(ln, fields, op)
		}
		if inst, poolWord, ok, err := tryParseBranch(ln, mnemonic, fields, symbols); ok || err != nil {
			return inst, poolWord, err
		}
	}

	return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "unrecognised mnemonic"}
}

// parseProcessing handles the two/three-operand and compare-class forms of
// spec.md §4.6's "Processing" rule.
func parseProcessing(ln line, fields []string, op isa.Op) (isa.Instruction, *uint32, error) {
	inst := isa.Instruction{Cond: isa.CondAL, Kind: isa.KindProcessing, Op: op}

	switch {
	case op == isa.OpMov:
		if len(fields) < 2 {
			return inst, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "mov requires Rd,<operand2>"}
		}
		rd, ok := parseRegister(fields[0])
		if !ok {
			return inst, nil, &BadRegisterError{Pos: ln.pos, Token: fields[0]}
		}
		op2, err := parseOperand2(ln, fields[1:])
		if err != nil {
			return inst, nil, err
		}
		inst.Rd = rd
		inst.Operand2 = op2
		return inst, nil, nil

	case op.IsCompare():
		if len(fields) < 2 {
			return inst, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "compare opcode requires Rn,<operand2>"}
		}
		rn, ok := parseRegister(fields[0])
		if !ok {
			return inst, nil, &BadRegisterError{Pos: ln.pos, Token: fields[0]}
		}
		op2, err := parseOperand2(ln, fields[1:])
		if err != nil {
			return inst, nil, err
		}
		inst.SetCond = true
		inst.Rn = rn
		inst.Operand2 = op2
		return inst, nil, nil

	default:
		if len(fields) < 3 {
			return inst, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "expected Rd,Rn,<operand2>"}
		}
		rd, ok := parseRegister(fields[0])
		if !ok {
			return inst, nil, &BadRegisterError{Pos: ln.pos, Token: fields[0]}
		}
		rn, ok := parseRegister(fields[1])
		if !ok {
			return inst, nil, &BadRegisterError{Pos: ln.pos, Token: fields[1]}
		}
		op2, err := parseOperand2(ln, fields[2:])
		if err != nil {
			return inst, nil, err
		}
		inst.Rd = rd
		inst.Rn = rn
		inst.Operand2 = op2
		return inst, nil, nil
	}
}

// parseOperand2 consumes one or two remaining comma-separated fields into
// an Operand2: "#imm", "Rm", or "Rm" followed by a shift descriptor
// ("lsl #n", "lsl rN", ...).
func parseOperand2(ln line, fields []string) (isa.Operand2, error) {
	if len(fields) == 0 {
		return isa.Operand2{}, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "missing operand-2"}
	}

	first := fields[0]
	if strings.HasPrefix(first, "#") {
		value, ok := parseSignedLiteral(first)
		if !ok {
			return isa.Operand2{}, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad literal " + first}
		}
		return isa.ImmediateFromValue(uint32(int32(value)))
	}

	reg, ok := parseRegister(first)
	if !ok {
		return isa.Operand2{}, &BadRegisterError{Pos: ln.pos, Token: first}
	}

	if len(fields) == 1 {
		return isa.Operand2{Reg: reg, Shift: isa.Shift{Type: isa.ShiftLSL, Amount: 0}}, nil
	}

	return parseShiftedOperand2(ln, reg, fields[1])
}

// parseShiftedOperand2 parses a shift descriptor field such as "lsl #4" or
// "lsl r3" following a bare register operand.
func parseShiftedOperand2(ln line, reg uint8, descriptor string) (isa.Operand2, error) {
	parts := strings.Fields(descriptor)
	if len(parts) != 2 {
		return isa.Operand2{}, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad shift descriptor " + descriptor}
	}

	kind, ok := shiftMnemonics[strings.ToLower(parts[0])]
	if !ok {
		return isa.Operand2{}, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "unknown shift operation " + parts[0]}
	}

	if strings.HasPrefix(parts[1], "#") {
		amount, ok := parseSignedLiteral(parts[1])
		if !ok || amount < 0 || amount > 31 {
			return isa.Operand2{}, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad shift amount " + parts[1]}
		}
		return isa.Operand2{Reg: reg, Shift: isa.Shift{Type: kind, Amount: uint8(amount)}}, nil
	}

	sreg, ok := parseRegister(parts[1])
	if !ok {
		return isa.Operand2{}, &BadRegisterError{Pos: ln.pos, Token: parts[1]}
	}
	return isa.Operand2{Reg: reg, Shift: isa.Shift{Type: kind, ByRegister: true, Reg: sreg}}, nil
}

// parseLslPseudo desugars `lsl rN,#imm` to `mov rN,rN,lsl #imm`, per
// spec.md §4.6.
func parseLslPseudo(ln line, fields []string) (isa.Instruction, *uint32, error) {
	if len(fields) != 2 {
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "lsl requires rN,#imm"}
	}
	reg, ok := parseRegister(fields[0])
	if !ok {
		return isa.Instruction{}, nil, &BadRegisterError{Pos: ln.pos, Token: fields[0]}
	}
	amount, ok := parseSignedLiteral(fields[1])
	if !ok || amount < 0 || amount > 31 {
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad shift amount " + fields[1]}
	}

	return isa.Instruction{
		Cond:     isa.CondAL,
		Kind:     isa.KindProcessing,
		Op:       isa.OpMov,
		Rd:       reg,
		Operand2: isa.Operand2{Reg: reg, Shift: isa.Shift{Type: isa.ShiftLSL, Amount: uint8(amount)}},
	}, nil, nil
}

// parseMultiply handles `mul Rd,Rm,Rs` and `mla Rd,Rm,Rs,Rn`.
func parseMultiply(ln line, fields []string, accumulate bool) (isa.Instruction, *uint32, error) {
	want := 3
	if accumulate {
		want = 4
	}
	if len(fields) != want {
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad multiply operand count"}
	}

	regs := make([]uint8, want)
	for i, f := range fields {
		r, ok := parseRegister(f)
		if !ok {
			return isa.Instruction{}, nil, &BadRegisterError{Pos: ln.pos, Token: f}
		}
		regs[i] = r
	}

	inst := isa.Instruction{
		Cond:       isa.CondAL,
		Kind:       isa.KindMultiply,
		Accumulate: accumulate,
		Rd:         regs[0],
		Rm:         regs[1],
		Rs:         regs[2],
	}
	if accumulate {
		inst.Rn = regs[3]
	}
	return inst, nil, nil
}

// parseTransfer handles the `ldr`/`str` forms of spec.md §4.6: the
// `ldr Rd,=<expr>` literal-pool pseudo-op, `[Rn]`, `[Rn,<offset>]`, and
// `[Rn],<offset>`.
func parseTransfer(ln line, fields []string, symbols *SymbolTable, nextFreeAddress uint32, load bool) (isa.Instruction, *uint32, error) {
	if len(fields) < 2 {
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "transfer requires Rd,<address>"}
	}
	rd, ok := parseRegister(fields[0])
	if !ok {
		return isa.Instruction{}, nil, &BadRegisterError{Pos: ln.pos, Token: fields[0]}
	}

	if load && strings.HasPrefix(fields[1], "=") {
		return parseLiteralPoolLoad(ln, rd, fields[1][1:], nextFreeAddress)
	}

	addrField := fields[1]
	if !strings.HasPrefix(addrField, "[") || !strings.HasSuffix(addrField, "]") {
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "expected [Rn] addressing"}
	}
	inner := splitTopLevelFields(strings.TrimSuffix(strings.TrimPrefix(addrField, "["), "]"))

	rn, ok := parseRegister(inner[0])
	if !ok {
		return isa.Instruction{}, nil, &BadRegisterError{Pos: ln.pos, Token: inner[0]}
	}

	inst := isa.Instruction{Cond: isa.CondAL, Kind: isa.KindTransfer, Rn: rn, Rd: rd, Load: load, Up: true}

	switch {
	case len(fields) == 3:
		// Post-indexed: "[Rn]", "<offset>"
		up, op2, err := parseTransferOffset(ln, fields[2])
		if err != nil {
			return inst, nil, err
		}
		inst.Preindexed = false
		inst.Up = up
		inst.Operand2 = op2

	case len(inner) == 2:
		// Pre-indexed with offset inside the brackets: "[Rn,<offset>]"
		up, op2, err := parseTransferOffset(ln, inner[1])
		if err != nil {
			return inst, nil, err
		}
		inst.Preindexed = true
		inst.Up = up
		inst.Operand2 = op2

	default:
		// "[Rn]" alone: pre-indexed, zero offset.
		inst.Preindexed = true
		inst.Operand2 = isa.Operand2{Immediate: true}
	}

	return inst, nil, nil
}

// parseTransferOffset parses a transfer offset field, returning the up bit
// (true unless the literal carries a leading '-') and its operand-2 form.
func parseTransferOffset(ln line, field string) (bool, isa.Operand2, error) {
	if strings.HasPrefix(field, "#") {
		value, ok := parseSignedLiteral(field)
		if !ok {
			return true, isa.Operand2{}, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad offset " + field}
		}
		up := value >= 0
		magnitude := value
		if !up {
			magnitude = -magnitude
		}
		op2, err := isa.ImmediateFromValue(uint32(magnitude))
		if err != nil {
			return true, isa.Operand2{}, err
		}
		return up, op2, nil
	}

	reg, ok := parseRegister(field)
	if !ok {
		return true, isa.Operand2{}, &BadRegisterError{Pos: ln.pos, Token: field}
	}
	return true, isa.Operand2{Reg: reg, Shift: isa.Shift{Type: isa.ShiftLSL, Amount: 0}}, nil
}

// parseLiteralPoolLoad implements spec.md §4.6's `ldr Rd,=<expr>` rule: a
// small value is replaced by an equivalent `mov`; a larger one is appended
// to the literal pool and loaded PC-relative.
func parseLiteralPoolLoad(ln line, rd uint8, exprText string, nextFreeAddress uint32) (isa.Instruction, *uint32, error) {
	if strings.HasPrefix(exprText, "-") {
		if magnitude, ok := parseUnsignedExpr(exprText[1:]); ok {
			return isa.Instruction{}, nil, &isa.OperandOutOfRangeError{Value: -magnitude}
		}
	}

	value, ok := parseUnsignedExpr(exprText)
	if !ok {
		return isa.Instruction{}, nil, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "bad literal-pool expression " + exprText}
	}

	if value <= 0xFF {
		op2, err := isa.ImmediateFromValue(value)
		if err != nil {
			return isa.Instruction{}, nil, err
		}
		return isa.Instruction{Cond: isa.CondAL, Kind: isa.KindProcessing, Op: isa.OpMov, Rd: rd, Operand2: op2}, nil, nil
	}

	offset := int64(nextFreeAddress) - int64(ln.address+8)
	up := offset >= 0
	magnitude := offset
	if !up {
		magnitude = -magnitude
	}
	op2, err := isa.ImmediateFromValue(uint32(magnitude))
	if err != nil {
		return isa.Instruction{}, nil, err
	}

	inst := isa.Instruction{
		Cond:       isa.CondAL,
		Kind:       isa.KindTransfer,
		Preindexed: true,
		Up:         up,
		Load:       true,
		Rn:         vmPC,
		Rd:         rd,
		Operand2:   op2,
	}
	return inst, &value, nil
}

// vmPC is register 15, the program counter, used as the base register for
// literal-pool loads.
const vmPC = 15

// tryParseBranch recognises a `b{cond} <target>` mnemonic, returning ok=false
// if the mnemonic is not a branch form at all (so the caller can fall
// through to "unrecognised mnemonic").
func tryParseBranch(ln line, mnemonic string, fields []string, symbols *SymbolTable) (isa.Instruction, *uint32, bool, error) {
	if !strings.HasPrefix(mnemonic, "b") {
		return isa.Instruction{}, nil, false, nil
	}
	suffix := mnemonic[1:]
	cond, ok := conditionSuffixes[suffix]
	if !ok {
		return isa.Instruction{}, nil, false, nil
	}
	if len(fields) != 1 {
		return isa.Instruction{}, nil, true, &SyntaxError{Pos: ln.pos, Text: ln.text, Cause: "branch requires a single target"}
	}

	target := fields[0]
	var targetAddr uint32
	if addr, found := symbols.Lookup(target); found {
		targetAddr = addr
	} else if numeric, isNum := parseUnsignedExpr(target); isNum {
		targetAddr = numeric
	} else {
		return isa.Instruction{}, nil, true, &UnknownLabelError{Pos: ln.pos, Label: target}
	}

	offset := (int64(targetAddr) - int64(ln.address) - 8) >> 2
	inst := isa.Instruction{Cond: cond, Kind: isa.KindBranch, BranchOffset: int32(offset)}
	return inst, nil, true, nil
}
