// Package compiler lowers the statement tree of internal/ast into a
// bytecode.Chunk: a single post-order walk with no intermediate
// representation beyond the AST and the Chunk itself, per spec.md
// §4.2. Forward jumps (if/while) are emitted with a placeholder
// operand and back-patched once the target address is known; loop
// jumps are emitted with the already-known backward offset.
package compiler

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/wrenfield/lurac/internal/ast"
	"github.com/wrenfield/lurac/internal/bytecode"
	"github.com/wrenfield/lurac/internal/diag"
	"github.com/wrenfield/lurac/internal/token"
	"github.com/wrenfield/lurac/internal/value"
)

// compiler walks a statement tree and emits bytecode into a Chunk.
type compiler struct {
	chunk    *bytecode.Chunk
	hadError bool
	errOut   io.Writer
	line     int // line of the AST node currently being emitted
}

// Compile lowers stmts into a Chunk. ok is false if a compile-time
// error (jump too far, too many constants, a rejected construct) was
// encountered; diagnostics are written to errOut (os.Stderr if nil).
func Compile(stmts []ast.Stmt, errOut io.Writer) (chunk *bytecode.Chunk, ok bool) {
	if errOut == nil {
		errOut = os.Stderr
	}
	c := &compiler{chunk: bytecode.NewChunk(), errOut: errOut, line: 1}

	for _, s := range stmts {
		c.statement(s)
	}
	c.emitOp(bytecode.OpReturn)

	return c.chunk, !c.hadError
}

// --- statements ---

func (c *compiler) statement(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		c.expression(s.Expr)
		c.emitOp(bytecode.OpPop)

	case *ast.VarDecl:
		c.line = s.Name.Line
		if s.Initializer != nil {
			c.expression(s.Initializer)
		} else {
			c.emitOp(bytecode.OpNil)
		}
		idx := c.identifierConstant(s.Name.Lexeme)
		c.emitByte(byte(bytecode.OpDefineGlobal))
		c.emitByte(idx)

	case *ast.Block:
		for _, inner := range s.Stmts {
			c.statement(inner)
		}

	case *ast.If:
		c.compileIf(s)

	case *ast.While:
		c.compileWhile(s)

	case *ast.Function:
		c.errorf("function declaration: user-defined functions are not supported; only 'print' is callable")

	case *ast.Return:
		c.line = s.Keyword.Line
		if s.Value != nil {
			c.expression(s.Value)
		} else {
			c.emitOp(bytecode.OpNil)
		}
		c.emitOp(bytecode.OpReturn)

	default:
		c.errorf("internal error: unhandled statement type %T", s)
	}
}

func (c *compiler) compileIf(s *ast.If) {
	c.expression(s.Cond)

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement(s.Then)

	elseJump := c.emitJump(bytecode.OpJump)
	c.patchJump(thenJump)

	c.emitOp(bytecode.OpPop)
	if s.Else != nil {
		c.statement(s.Else)
	}
	c.patchJump(elseJump)
}

func (c *compiler) compileWhile(s *ast.While) {
	loopStart := c.chunk.Count()

	c.expression(s.Cond)
	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)

	c.statement(s.Body)
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

// --- expressions ---

func (c *compiler) expression(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Binary:
		c.line = e.Op.Line
		c.compileBinary(e)

	case *ast.Logical:
		c.line = e.Op.Line
		c.compileLogical(e)

	case *ast.Grouping:
		c.expression(e.Inner)

	case *ast.Literal:
		c.compileLiteral(e)

	case *ast.Unary:
		c.line = e.Op.Line
		c.expression(e.Right)
		switch e.Op.Kind {
		case token.Minus:
			c.emitOp(bytecode.OpNegate)
		case token.Not, token.Bang:
			c.emitOp(bytecode.OpNot)
		}

	case *ast.Variable:
		c.line = e.Name.Line
		idx := c.identifierConstant(e.Name.Lexeme)
		c.emitByte(byte(bytecode.OpGetGlobal))
		c.emitByte(idx)

	case *ast.Assignment:
		c.line = e.Name.Line
		c.expression(e.Value)
		idx := c.identifierConstant(e.Name.Lexeme)
		c.emitByte(byte(bytecode.OpSetGlobal))
		c.emitByte(idx)

	case *ast.Call:
		c.compileCall(e)

	default:
		c.errorf("internal error: unhandled expression type %T", e)
	}
}

func (c *compiler) compileBinary(e *ast.Binary) {
	c.expression(e.Left)
	c.expression(e.Right)

	switch e.Op.Kind {
	case token.Plus:
		c.emitOp(bytecode.OpAdd)
	case token.Minus:
		c.emitOp(bytecode.OpSubtract)
	case token.Star:
		c.emitOp(bytecode.OpMultiply)
	case token.Slash:
		c.emitOp(bytecode.OpDivide)
	case token.EqualEqual:
		c.emitOp(bytecode.OpEqual)
	case token.Greater:
		c.emitOp(bytecode.OpGreater)
	case token.Less:
		c.emitOp(bytecode.OpLess)
	case token.BangEqual:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.GreaterEqual:
		c.emitOp(bytecode.OpLess)
		c.emitOp(bytecode.OpNot)
	case token.LessEqual:
		c.emitOp(bytecode.OpGreater)
		c.emitOp(bytecode.OpNot)
	default:
		c.errorf("internal error: unhandled binary operator %s", e.Op.Kind)
	}
}

// compileLogical implements and/or short-circuiting with the same
// JUMP_IF_FALSE/JUMP machinery as if/while — no new opcodes.
func (c *compiler) compileLogical(e *ast.Logical) {
	c.expression(e.Left)

	if e.Op.Kind == token.And {
		endJump := c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
		c.expression(e.Right)
		c.patchJump(endJump)
		return
	}

	// or
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)
	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)
	c.expression(e.Right)
	c.patchJump(endJump)
}

func (c *compiler) compileLiteral(lit *ast.Literal) {
	switch lit.Lexeme {
	case "nil":
		c.emitOp(bytecode.OpNil)
		return
	case "true":
		c.emitOp(bytecode.OpTrue)
		return
	case "false":
		c.emitOp(bytecode.OpFalse)
		return
	}

	if n, ok := parseNumber(lit.Lexeme); ok {
		c.emitConstant(value.Number(n))
		return
	}

	c.emitConstant(value.String(stripQuotes(lit.Lexeme)))
}

func (c *compiler) compileCall(e *ast.Call) {
	name, isVar := e.Callee.(*ast.Variable)
	if !isVar || name.Name.Lexeme != "print" {
		c.line = e.ClosingParen.Line
		c.errorf("calls are not supported; only 'print(...)' is callable")
		return
	}

	for _, arg := range e.Arguments {
		c.expression(arg)
		c.emitOp(bytecode.OpPrint)
	}
	// The call expression itself yields a value, consumed by the
	// enclosing expression-statement's POP.
	c.emitOp(bytecode.OpNil)
}

// --- byte/constant emission ---

func (c *compiler) emitByte(b byte)           { c.chunk.Write(b, c.line) }
func (c *compiler) emitOp(op bytecode.OpCode) { c.chunk.WriteOp(op, c.line) }

func (c *compiler) emitConstant(v value.Value) {
	idx := c.makeConstant(v)
	c.emitByte(byte(bytecode.OpConstant))
	c.emitByte(idx)
}

func (c *compiler) identifierConstant(name string) byte {
	return c.makeConstant(value.String(name))
}

func (c *compiler) makeConstant(v value.Value) byte {
	idx := c.chunk.AddConstant(v)
	if idx >= bytecode.MaxConstants {
		c.errorf("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

// emitJump writes op followed by a two-byte placeholder operand and
// returns the offset of the first placeholder byte, for patchJump.
func (c *compiler) emitJump(op bytecode.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunk.Count() - 2
}

// patchJump back-fills the two-byte operand at offset with the
// distance from just after it to the current end of the chunk.
func (c *compiler) patchJump(offset int) {
	jump := c.chunk.Count() - offset - 2
	if jump > bytecode.MaxJump {
		c.errorf("Too much code to jump over.")
		return
	}
	c.chunk.Code[offset] = byte((jump >> 8) & 0xff)
	c.chunk.Code[offset+1] = byte(jump & 0xff)
}

// emitLoop writes OP_LOOP with the already-known backward offset to
// loopStart.
func (c *compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)

	offset := c.chunk.Count() - loopStart + 2
	if offset > bytecode.MaxJump {
		c.errorf("Loop body too large.")
		return
	}
	c.emitByte(byte((offset >> 8) & 0xff))
	c.emitByte(byte(offset & 0xff))
}

func (c *compiler) errorf(format string, args ...interface{}) {
	c.hadError = true
	diag.CompileError(c.errOut, c.line, fmt.Sprintf(format, args...))
}

// parseNumber attempts to parse the entire lexeme as a decimal
// number: digits with at most one '.'. Anything else (signs,
// exponents, hex, "inf"/"nan") is not a number; strconv.ParseFloat
// then rejects any remaining malformed form such as a lone ".".
func parseNumber(lexeme string) (float64, bool) {
	dots := 0
	for i := 0; i < len(lexeme); i++ {
		switch c := lexeme[i]; {
		case c == '.':
			dots++
		case c < '0' || c > '9':
			return 0, false
		}
	}
	if lexeme == "" || dots > 1 {
		return 0, false
	}
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// stripQuotes removes one surrounding pair of ASCII double quotes, if
// present — the lexer already strips them for genuine string tokens,
// so this only matters for AST built some other way.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
