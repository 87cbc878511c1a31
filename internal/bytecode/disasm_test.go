package bytecode_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wrenfield/lurac/internal/bytecode"
	"github.com/wrenfield/lurac/internal/value"
)

func TestDisassembleZeroOperandInstruction(t *testing.T) {
	c := bytecode.NewChunk()
	c.WriteOp(bytecode.OpReturn, 1)

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")

	if !strings.Contains(buf.String(), "OP_RETURN") {
		t.Fatalf("output missing OP_RETURN: %s", buf.String())
	}
}

func TestDisassembleConstantInstructionShowsValue(t *testing.T) {
	c := bytecode.NewChunk()
	idx := c.AddConstant(value.Number(42))
	c.WriteOp(bytecode.OpConstant, 1)
	c.Write(byte(idx), 1)

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")

	if !strings.Contains(buf.String(), "42") {
		t.Fatalf("output missing constant value: %s", buf.String())
	}
}

func TestDisassembleJumpShowsForwardTarget(t *testing.T) {
	c := bytecode.NewChunk()
	c.WriteOp(bytecode.OpJump, 1)
	c.Write(0, 1)
	c.Write(1, 1) // jump = 1, target = offset(0) + 3 + 1 = 4
	c.WriteOp(bytecode.OpReturn, 1)

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")

	if !strings.Contains(buf.String(), "-> 4") {
		t.Fatalf("output missing jump target 4: %s", buf.String())
	}
}

func TestDisassembleLoopShowsBackwardTarget(t *testing.T) {
	c := bytecode.NewChunk()
	c.WriteOp(bytecode.OpNil, 1) // offset 0
	c.WriteOp(bytecode.OpLoop, 1)
	c.Write(0, 1)
	c.Write(4, 1) // at offset 1, jump = 4, target = offset(1) + 3 - 4 = 0

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")

	if !strings.Contains(buf.String(), "-> 0") {
		t.Fatalf("output missing loop target 0: %s", buf.String())
	}
}
