package bytecode

// OpCode is a single bytecode instruction. Every opcode is one byte;
// operand widths are fixed per opcode (see Chunk's doc comment).
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump
	OpJumpIfFalse
	OpLoop
	OpReturn
)

var names = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpPrint:        "OP_PRINT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpReturn:       "OP_RETURN",
}

func (op OpCode) String() string {
	if int(op) < len(names) && names[op] != "" {
		return names[op]
	}
	return "OP_UNKNOWN"
}

// operandBytes per opcode in the disassembler's own tiny table, used
// only for display width — the compiler and VM each know their own
// operand widths directly.
var operandBytes = [...]int{
	OpConstant:     1,
	OpNil:          0,
	OpTrue:         0,
	OpFalse:        0,
	OpPop:          0,
	OpDefineGlobal: 1,
	OpGetGlobal:    1,
	OpSetGlobal:    1,
	OpEqual:        0,
	OpGreater:      0,
	OpLess:         0,
	OpAdd:          0,
	OpSubtract:     0,
	OpMultiply:     0,
	OpDivide:       0,
	OpNot:          0,
	OpNegate:       0,
	OpPrint:        0,
	OpJump:         2,
	OpJumpIfFalse:  2,
	OpLoop:         2,
	OpReturn:       0,
}
