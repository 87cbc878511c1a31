package diag_test

import (
	"bytes"
	"testing"

	"github.com/wrenfield/lurac/internal/diag"
	"github.com/wrenfield/lurac/internal/token"
)

func TestParseErrorAtLexeme(t *testing.T) {
	var buf bytes.Buffer
	tok := token.Token{Kind: token.Plus, Lexeme: "+", Line: 3}
	diag.ParseError(&buf, tok, "Expect expression.")

	want := "[line 3] Error at '+': Expect expression.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestParseErrorAtEnd(t *testing.T) {
	var buf bytes.Buffer
	tok := token.Token{Kind: token.EOF, Line: 7}
	diag.ParseError(&buf, tok, "Expect end of input.")

	want := "[line 7] Error at end: Expect end of input.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestParseErrorOnErrorToken(t *testing.T) {
	var buf bytes.Buffer
	tok := token.Token{Kind: token.Error, Lexeme: "Unexpected character.", Line: 1}
	diag.ParseError(&buf, tok, "Unexpected character.")

	want := "[line 1] Error: Unexpected character.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestCompileError(t *testing.T) {
	var buf bytes.Buffer
	diag.CompileError(&buf, 5, "Too many constants in one chunk.")

	want := "[line 5] Error: Too many constants in one chunk.\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	diag.RuntimeError(&buf, 2, "Operands must be numbers.")

	want := "Operands must be numbers.\n[line 2] in script\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
