// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser.
package token

// Kind enumerates every token class the scanner can produce.
type Kind int

const (
	// Single-character tokens.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Break
	Do
	Else
	ElseIf
	End
	False
	For
	Function
	If
	In
	Local
	Nil
	Not
	Or
	Repeat
	Return
	Then
	True
	Until
	While

	Error
	EOF
)

var names = map[Kind]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";",
	Slash: "/", Star: "*",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "and", Break: "break", Do: "do", Else: "else", ElseIf: "elseif",
	End: "end", False: "false", For: "for", Function: "function",
	If: "if", In: "in", Local: "local", Nil: "nil", Not: "not", Or: "or",
	Repeat: "repeat", Return: "return", Then: "then", True: "true",
	Until: "until", While: "while",
	Error: "ERROR", EOF: "EOF",
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps every reserved word's lexeme to its Kind.
var Keywords = map[string]Kind{
	"and": And, "break": Break, "do": Do, "else": Else, "elseif": ElseIf,
	"end": End, "false": False, "for": For, "function": Function,
	"if": If, "in": In, "local": Local, "nil": Nil, "not": Not, "or": Or,
	"repeat": Repeat, "return": Return, "then": Then, "true": True,
	"until": Until, "while": While,
}

// Token is a single lexical unit: its kind, its verbatim (or, for
// strings, already-unquoted) source slice, and its position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return t.Lexeme
}
