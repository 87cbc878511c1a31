package compiler_test

import (
	"bytes"
	"testing"

	"github.com/wrenfield/lurac/internal/ast"
	"github.com/wrenfield/lurac/internal/bytecode"
	"github.com/wrenfield/lurac/internal/compiler"
	"github.com/wrenfield/lurac/internal/parser"
)

func compileSource(t *testing.T, src string) (*bytecode.Chunk, string, bool) {
	t.Helper()
	p := parser.New(src, &bytes.Buffer{})
	stmts := p.Parse()
	if p.HadError() {
		t.Fatalf("parse error for %q", src)
	}
	var errOut bytes.Buffer
	chunk, ok := compiler.Compile(stmts, &errOut)
	return chunk, errOut.String(), ok
}

func TestCompileSimpleArithmetic(t *testing.T) {
	chunk, _, ok := compileSource(t, "print(1 + 2)")
	if !ok {
		t.Fatalf("compile failed")
	}
	containsOp(t, chunk, bytecode.OpAdd)
	containsOp(t, chunk, bytecode.OpPrint)
	containsOp(t, chunk, bytecode.OpReturn)
}

func TestCompileCompoundComparisonsReuseOpcodes(t *testing.T) {
	cases := []struct {
		src string
		ops []bytecode.OpCode
	}{
		{"print(1 != 2)", []bytecode.OpCode{bytecode.OpEqual, bytecode.OpNot}},
		{"print(1 >= 2)", []bytecode.OpCode{bytecode.OpLess, bytecode.OpNot}},
		{"print(1 <= 2)", []bytecode.OpCode{bytecode.OpGreater, bytecode.OpNot}},
	}
	for _, tc := range cases {
		chunk, _, ok := compileSource(t, tc.src)
		if !ok {
			t.Fatalf("compile failed for %q", tc.src)
		}
		for _, op := range tc.ops {
			containsOp(t, chunk, op)
		}
	}
}

func TestCompileAndOrUseJumpsNotNewOpcodes(t *testing.T) {
	chunk, _, ok := compileSource(t, "print(a and b or c)")
	if !ok {
		t.Fatalf("compile failed")
	}
	containsOp(t, chunk, bytecode.OpJumpIfFalse)
	containsOp(t, chunk, bytecode.OpJump)
}

func TestCompileIfEmitsJumpsAndPatchesThem(t *testing.T) {
	chunk, _, ok := compileSource(t, "if a then local x = 1 else local x = 2 end")
	if !ok {
		t.Fatalf("compile failed")
	}
	for _, b := range chunk.Code {
		if b == 0xff {
			t.Fatalf("unpatched jump placeholder left in code: %v", chunk.Code)
		}
	}
}

func TestCompileWhileEmitsLoop(t *testing.T) {
	chunk, _, ok := compileSource(t, "while a do a = 0 end")
	if !ok {
		t.Fatalf("compile failed")
	}
	containsOp(t, chunk, bytecode.OpLoop)
}

func TestCompileFunctionDeclarationIsRejected(t *testing.T) {
	_, errOut, ok := compileSource(t, "function f() return 1 end")
	if ok {
		t.Fatalf("expected function declaration to be rejected")
	}
	if errOut == "" {
		t.Fatalf("expected a diagnostic message")
	}
}

func TestCompileNonPrintCallIsRejected(t *testing.T) {
	_, errOut, ok := compileSource(t, "foo(1)")
	if ok {
		t.Fatalf("expected a non-print call to be rejected")
	}
	if errOut == "" {
		t.Fatalf("expected a diagnostic message")
	}
}

func TestCompileLiteralClassification(t *testing.T) {
	cases := []struct {
		lexeme string
		op     bytecode.OpCode
	}{
		{"nil", bytecode.OpNil},
		{"true", bytecode.OpTrue},
		{"false", bytecode.OpFalse},
	}
	for _, tc := range cases {
		stmts := []ast.Stmt{&ast.ExpressionStmt{Expr: &ast.Literal{Lexeme: tc.lexeme}}}
		var errOut bytes.Buffer
		chunk, ok := compiler.Compile(stmts, &errOut)
		if !ok {
			t.Fatalf("compile failed for %q: %s", tc.lexeme, errOut.String())
		}
		containsOp(t, chunk, tc.op)
	}
}

func TestCompileNumberAndStringLiteralsBecomeConstants(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.ExpressionStmt{Expr: &ast.Literal{Lexeme: "42"}},
		&ast.ExpressionStmt{Expr: &ast.Literal{Lexeme: "hello"}},
	}
	var errOut bytes.Buffer
	chunk, ok := compiler.Compile(stmts, &errOut)
	if !ok {
		t.Fatalf("compile failed: %s", errOut.String())
	}
	if len(chunk.Constants) != 2 {
		t.Fatalf("got %d constants, want 2", len(chunk.Constants))
	}
	if !chunk.Constants[0].IsNumber() || chunk.Constants[0].AsNumber() != 42 {
		t.Fatalf("constant 0 = %#v, want Number(42)", chunk.Constants[0])
	}
	if !chunk.Constants[1].IsString() || chunk.Constants[1].AsString() != "hello" {
		t.Fatalf("constant 1 = %#v, want String(hello)", chunk.Constants[1])
	}
}

func containsOp(t *testing.T, chunk *bytecode.Chunk, want bytecode.OpCode) {
	t.Helper()
	for _, b := range chunk.Code {
		if bytecode.OpCode(b) == want {
			return
		}
	}
	t.Fatalf("chunk code %v does not contain %s", chunk.Code, want)
}
