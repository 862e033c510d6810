package parser_test

import (
	"bytes"
	"testing"

	"github.com/lookbusy1344/arm2-workbench/parser"
)

func TestAssembleS1ImmediateMove(t *testing.T) {
	image, err := parser.Assemble("mov r1,#0x1\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := []byte{0x01, 0x10, 0xa0, 0xe3, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(image, want) {
		t.Errorf("got % x, want % x", image, want)
	}
}

func TestAssembleS2AddRegisters(t *testing.T) {
	image, err := parser.Assemble("mov r1,#2\nmov r2,#3\nadd r3,r1,r2\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(image) != 16 {
		t.Fatalf("expected 16-byte image, got %d bytes", len(image))
	}
}

func TestAssembleS3MultiplyAccumulate(t *testing.T) {
	_, err := parser.Assemble("mov r1,#3\nmov r2,#4\nmov r4,#5\nmla r3,r1,r2,r4\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
}

func TestAssembleS4LiteralPool(t *testing.T) {
	image, err := parser.Assemble("ldr r2,=0x20200020\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(image) != 12 {
		t.Fatalf("expected two code words plus one pool word (12 bytes), got %d", len(image))
	}
	pool := image[8:12]
	want := []byte{0x20, 0x00, 0x20, 0x20}
	if !bytes.Equal(pool, want) {
		t.Errorf("pool word = % x, want % x", pool, want)
	}
}

func TestAssembleS5BackwardBranch(t *testing.T) {
	src := "mov r1,#0\nloop:\nadd r1,r1,#1\ncmp r1,#3\nblt loop\nandeq r0,r0,r0"
	image, err := parser.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(image) != 20 {
		t.Fatalf("expected 20-byte image, got %d", len(image))
	}
}

func TestAssembleS6GPIOWrite(t *testing.T) {
	src := "ldr r0,=0x20200000\nmov r1,#1\nstr r1,[r0]\nandeq r0,r0,r0"
	if _, err := parser.Assemble(src); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
}

func TestAssembleUnknownLabel(t *testing.T) {
	_, err := parser.Assemble("b missing\nandeq r0,r0,r0")
	if err == nil {
		t.Fatal("expected an UnknownLabelError")
	}
	if _, ok := err.(*parser.UnknownLabelError); !ok {
		t.Errorf("expected *parser.UnknownLabelError, got %T", err)
	}
}

func TestAssembleBadSyntax(t *testing.T) {
	_, err := parser.Assemble("frobnicate r1,r2")
	if err == nil {
		t.Fatal("expected a SyntaxError")
	}
	if _, ok := err.(*parser.SyntaxError); !ok {
		t.Errorf("expected *parser.SyntaxError, got %T", err)
	}
}

func TestAssembleBadRegister(t *testing.T) {
	_, err := parser.Assemble("mov r99,#1")
	if err == nil {
		t.Fatal("expected a BadRegisterError")
	}
	if _, ok := err.(*parser.BadRegisterError); !ok {
		t.Errorf("expected *parser.BadRegisterError, got %T", err)
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	_, err := parser.Assemble("loop:\nmov r1,#1\nloop:\nandeq r0,r0,r0")
	if err == nil {
		t.Fatal("expected a DuplicateLabelError")
	}
	if _, ok := err.(*parser.DuplicateLabelError); !ok {
		t.Errorf("expected *parser.DuplicateLabelError, got %T", err)
	}
}

func TestAssembleLslPseudoOp(t *testing.T) {
	a, err := parser.Assemble("mov r1,#1\nlsl r1,#4\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	b, err := parser.Assemble("mov r1,#1\nmov r1,r1,lsl #4\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("lsl pseudo-op and its desugaring encoded differently: % x vs % x", a, b)
	}
}

func TestAssembleBlankLinesIgnored(t *testing.T) {
	a, err := parser.Assemble("mov r1,#1\n\n\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	b, err := parser.Assemble("mov r1,#1\nandeq r0,r0,r0")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("blank lines should not affect the resulting image")
	}
}
