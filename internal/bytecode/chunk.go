// Package bytecode defines the instruction set and the Chunk value
// object that holds compiled code, its constant pool, and its line
// map.
package bytecode

import "github.com/wrenfield/lurac/internal/value"

// MaxConstants is the per-chunk constant pool limit: constants are
// addressed by a single operand byte.
const MaxConstants = 256

// MaxJump is the largest forward/backward branch distance a two-byte
// jump operand can express.
const MaxJump = 65535

// Chunk is an append-only bundle of bytecode, constants, and a
// parallel line map. len(Lines) == len(Code) always holds; every
// OP_CONSTANT/OP_GET_GLOBAL/OP_SET_GLOBAL/OP_DEFINE_GLOBAL is followed
// by one operand byte, every OP_JUMP/OP_JUMP_IF_FALSE/OP_LOOP by two
// big-endian operand bytes.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	Lines     []int
}

// NewChunk returns an empty Chunk.
func NewChunk() *Chunk {
	return &Chunk{}
}

// Write appends one byte of code, recording the source line it came
// from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp appends one opcode byte.
func (c *Chunk) WriteOp(op OpCode, line int) {
	c.Write(byte(op), line)
}

// AddConstant appends v to the constant pool and returns its index.
// The caller is responsible for checking the index against
// MaxConstants before emitting an operand byte for it.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Count returns the number of bytes currently written.
func (c *Chunk) Count() int {
	return len(c.Code)
}
