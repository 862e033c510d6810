package parser

import (
	"strconv"
	"strings"

	"github.com/lookbusy1344/arm2-workbench/isa"
)

// splitMnemonic separates a trimmed instruction line into its mnemonic and
// the raw operand text that follows it.
func splitMnemonic(line string) (mnemonic, rest string) {
	i := strings.IndexFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// splitTopLevelFields splits a comma-separated operand list, treating a
// bracketed address expression ("[r0,#4]") as a single field even though it
// contains a comma.
func splitTopLevelFields(text string) []string {
	if text == "" {
		return nil
	}

	var fields []string
	depth := 0
	start := 0
	for i, r := range text {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				fields = append(fields, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	fields = append(fields, strings.TrimSpace(text[start:]))
	return fields
}

// parseRegister resolves a register token (r0..r12, r15, r16) to its slot
// number, per spec.md §6.
func parseRegister(tok string) (uint8, bool) {
	if len(tok) < 2 || tok[0] != 'r' {
		return 0, false
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, false
	}
	if n < 0 || n > 16 || n == 13 || n == 14 {
		return 0, false
	}
	return uint8(n), true
}

// parseSignedLiteral parses a spec.md §6 literal: "#<dec>", "#0x<hex>",
// "#-<dec>", "#-0x<hex>" (the minus binds outside the radix prefix).
func parseSignedLiteral(tok string) (int64, bool) {
	if !strings.HasPrefix(tok, "#") {
		return 0, false
	}
	body := tok[1:]

	negative := false
	if strings.HasPrefix(body, "-") {
		negative = true
		body = body[1:]
	}

	var value int64
	var err error
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		var v uint64
		v, err = strconv.ParseUint(body[2:], 16, 64)
		value = int64(v)
	} else {
		var v int64
		v, err = strconv.ParseInt(body, 10, 64)
		value = v
	}
	if err != nil {
		return 0, false
	}

	if negative {
		value = -value
	}
	return value, true
}

// parseUnsignedExpr parses the numeric expression following "=" in an
// `ldr Rd,=<expr>` literal-pool pseudo-op, or a bare numeric branch target.
// Unlike parseSignedLiteral it has no "#" prefix and no sign: per spec.md
// §9 open question (c) the literal pool has no representation for negative
// values.
func parseUnsignedExpr(tok string) (uint32, bool) {
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		v, err := strconv.ParseUint(tok[2:], 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// shiftMnemonics maps the lowercase shift-operation keyword to its ShiftKind.
var shiftMnemonics = map[string]isa.ShiftKind{
	"lsl": isa.ShiftLSL,
	"lsr": isa.ShiftLSR,
	"asr": isa.ShiftASR,
	"ror": isa.ShiftROR,
}

// conditionSuffixes maps a branch mnemonic's condition suffix to its Cond
// value. The empty suffix (bare "b") is Al.
var conditionSuffixes = map[string]isa.Cond{
	"":   isa.CondAL,
	"eq": isa.CondEQ,
	"ne": isa.CondNE,
	"ge": isa.CondGE,
	"lt": isa.CondLT,
	"gt": isa.CondGT,
	"le": isa.CondLE,
	"al": isa.CondAL,
}

// processingOpcodes maps a processing mnemonic to its opcode.
var processingOpcodes = map[string]isa.Op{
	"and": isa.OpAnd,
	"eor": isa.OpEor,
	"sub": isa.OpSub,
	"rsb": isa.OpRsb,
	"add": isa.OpAdd,
	"tst": isa.OpTst,
	"teq": isa.OpTeq,
	"cmp": isa.OpCmp,
	"orr": isa.OpOrr,
	"mov": isa.OpMov,
}
