// Package diag centralizes the diagnostic wire formats spec.md §6/§7
// mandate, so the parser, compiler, and VM all produce byte-identical
// output instead of three independent fmt.Fprintf call sites.
package diag

import (
	"fmt"
	"io"

	"github.com/wrenfield/lurac/internal/token"
)

// ParseError prints a scan/parse diagnostic in the form:
//
//	[line N] Error at 'lexeme': message
//
// or, at end of input / on a scanner error token, the equivalent
// "at end" / bare forms.
func ParseError(w io.Writer, tok token.Token, message string) {
	fmt.Fprintf(w, "[line %d] Error", tok.Line)

	switch tok.Kind {
	case token.EOF:
		fmt.Fprint(w, " at end")
	case token.Error:
		// Nothing extra: the lexeme already is the diagnostic.
	default:
		fmt.Fprintf(w, " at '%s'", tok.Lexeme)
	}

	fmt.Fprintf(w, ": %s\n", message)
}

// CompileError prints a compile-time diagnostic (jump too far, too
// many constants, malformed literal, and the like).
func CompileError(w io.Writer, line int, message string) {
	fmt.Fprintf(w, "[line %d] Error: %s\n", line, message)
}

// RuntimeError prints the runtime-error trailer spec.md §6 mandates:
//
//	<msg>
//	[line N] in script
func RuntimeError(w io.Writer, line int, message string) {
	fmt.Fprintf(w, "%s\n[line %d] in script\n", message, line)
}
