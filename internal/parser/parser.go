// Package parser implements the recursive-descent, precedence-climbing
// parser of spec.md §6: declarations and statements by straight
// recursive descent, expressions by a Pratt-style precedence table
// (grounded on bluven-glox/compiler.go's ParseRule table), producing
// the internal/ast node set instead of emitting bytecode directly.
package parser

import (
	"io"
	"os"

	"github.com/wrenfield/lurac/internal/ast"
	"github.com/wrenfield/lurac/internal/diag"
	"github.com/wrenfield/lurac/internal/lexer"
	"github.com/wrenfield/lurac/internal/token"
)

// precedence levels, low to high, matching spec.md §6's grammar shape.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < <= > >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // not -
	precCall                  // ()
	precPrimary
)

type (
	prefixFn func(canAssign bool) ast.Expr
	infixFn  func(left ast.Expr, canAssign bool) ast.Expr
)

type rule struct {
	prefix prefixFn
	infix  infixFn
	prec   precedence
}

// Parser consumes a token stream and builds the AST of internal/ast.
type Parser struct {
	lex               *lexer.Lexer
	current, previous token.Token

	hadError  bool
	panicMode bool
	errOut    io.Writer

	rules map[token.Kind]rule
}

// New returns a Parser over source, reporting diagnostics to errOut
// (os.Stderr if nil).
func New(source string, errOut io.Writer) *Parser {
	if errOut == nil {
		errOut = os.Stderr
	}
	p := &Parser{lex: lexer.New(source), errOut: errOut}
	p.buildRules()
	return p
}

// HadError reports whether any scan/parse error was seen.
func (p *Parser) HadError() bool { return p.hadError }

// Parse consumes the entire token stream and returns the top-level
// statement list. Parsing always runs to completion (best-effort
// recovery via synchronize); check HadError afterward.
func (p *Parser) Parse() []ast.Stmt {
	p.advance()

	var stmts []ast.Stmt
	for !p.check(token.EOF) {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.EOF, "Expect end of input.")
	return stmts
}

// --- token plumbing ---

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.Scan()
		if p.current.Kind != token.Error {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(k token.Kind, message string) token.Token {
	if p.current.Kind == k {
		tok := p.current
		p.advance()
		return tok
	}
	p.errorAtCurrent(message)
	return p.current
}

// --- declarations & statements ---

func (p *Parser) declaration() ast.Stmt {
	var stmt ast.Stmt
	switch {
	case p.match(token.Function):
		stmt = p.functionDeclaration()
	case p.match(token.Local):
		stmt = p.varDeclaration()
	default:
		stmt = p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	return &ast.VarDecl{Name: name, Initializer: init}
}

func (p *Parser) functionDeclaration() ast.Stmt {
	name := p.consume(token.Identifier, "Expect function name.")

	p.consume(token.LeftParen, "Expect '(' after function name.")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if len(params) > 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	var body []ast.Stmt
	for !p.check(token.End) && !p.check(token.EOF) {
		body = append(body, p.declaration())
	}
	p.consume(token.End, "Expect 'end' after function body.")

	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.Do):
		body := p.blockUntil(token.End)
		p.consume(token.End, "Expect 'end' after 'do' block.")
		return &ast.Block{Stmts: body}
	case p.match(token.Return):
		return p.returnStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) blockUntil(terminators ...token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atAny(terminators) && !p.check(token.EOF) {
		stmts = append(stmts, p.declaration())
	}
	return stmts
}

func (p *Parser) atAny(kinds []token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

// ifStatement does not handle `elseif`: the then-block stops there
// (matching the grammar's own block-terminator set) but nothing
// consumes the token, so `end` fails to match and a parse error is
// reported, the same as the reference parser this core is modeled on.
func (p *Parser) ifStatement() ast.Stmt {
	cond := p.expression()
	p.consume(token.Then, "Expect 'then' after condition.")

	thenStmts := p.blockUntil(token.Else, token.ElseIf, token.End)
	thenBlock := &ast.Block{Stmts: thenStmts}

	var elseStmt ast.Stmt
	if p.match(token.Else) {
		elseStmts := p.blockUntil(token.End)
		elseStmt = &ast.Block{Stmts: elseStmts}
	}
	p.consume(token.End, "Expect 'end' after 'if'.")

	return &ast.If{Cond: cond, Then: thenBlock, Else: elseStmt}
}

func (p *Parser) whileStatement() ast.Stmt {
	cond := p.expression()
	p.consume(token.Do, "Expect 'do' after condition.")
	body := &ast.Block{Stmts: p.blockUntil(token.End)}
	p.consume(token.End, "Expect 'end' after 'while' body.")
	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous
	var value ast.Expr
	if !p.atStatementEnd() {
		value = p.expression()
	}
	return &ast.Return{Keyword: keyword, Value: value}
}

// atStatementEnd reports whether the current token can't start an
// expression, used by `return` to detect a bare, value-less return.
func (p *Parser) atStatementEnd() bool {
	switch p.current.Kind {
	case token.EOF, token.End, token.Else, token.ElseIf, token.Semicolon:
		return true
	default:
		return false
	}
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.match(token.Semicolon)
	return &ast.ExpressionStmt{Expr: expr}
}

// --- expressions ---

func (p *Parser) expression() ast.Expr {
	return p.parsePrecedence(precAssignment)
}

func (p *Parser) parsePrecedence(prec precedence) ast.Expr {
	p.advance()

	prefixRule := p.getRule(p.previous.Kind).prefix
	if prefixRule == nil {
		p.error("Expect expression.")
		return &ast.Literal{Lexeme: "nil"}
	}

	canAssign := prec <= precAssignment
	left := prefixRule(canAssign)

	for prec <= p.getRule(p.current.Kind).prec {
		p.advance()
		infixRule := p.getRule(p.previous.Kind).infix
		left = infixRule(left, canAssign)
	}

	if canAssign && p.match(token.Equal) {
		p.error("Invalid assignment target.")
	}

	return left
}

func (p *Parser) grouping(canAssign bool) ast.Expr {
	inner := p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
	return &ast.Grouping{Inner: inner}
}

func (p *Parser) number(canAssign bool) ast.Expr {
	return &ast.Literal{Lexeme: p.previous.Lexeme}
}

func (p *Parser) stringLiteral(canAssign bool) ast.Expr {
	return &ast.Literal{Lexeme: p.previous.Lexeme}
}

func (p *Parser) literalKeyword(canAssign bool) ast.Expr {
	return &ast.Literal{Lexeme: p.previous.Lexeme}
}

func (p *Parser) unary(canAssign bool) ast.Expr {
	op := p.previous
	right := p.parsePrecedence(precUnary)
	return &ast.Unary{Op: op, Right: right}
}

func (p *Parser) binary(left ast.Expr, canAssign bool) ast.Expr {
	op := p.previous
	r := p.getRule(op.Kind)
	right := p.parsePrecedence(r.prec + 1)
	return &ast.Binary{Left: left, Op: op, Right: right}
}

func (p *Parser) and(left ast.Expr, canAssign bool) ast.Expr {
	op := p.previous
	right := p.parsePrecedence(precAnd)
	return &ast.Logical{Left: left, Op: op, Right: right}
}

func (p *Parser) or(left ast.Expr, canAssign bool) ast.Expr {
	op := p.previous
	right := p.parsePrecedence(precOr)
	return &ast.Logical{Left: left, Op: op, Right: right}
}

func (p *Parser) variable(canAssign bool) ast.Expr {
	name := p.previous
	if canAssign && p.match(token.Equal) {
		value := p.expression()
		return &ast.Assignment{Name: name, Value: value}
	}
	return &ast.Variable{Name: name}
}

func (p *Parser) call(left ast.Expr, canAssign bool) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			args = append(args, p.expression())
			if len(args) > 255 {
				p.errorAtCurrent("Can't have more than 255 arguments.")
			}
			if !p.match(token.Comma) {
				break
			}
		}
	}
	closing := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: left, ClosingParen: closing, Arguments: args}
}

// --- rule table ---

func (p *Parser) getRule(k token.Kind) rule { return p.rules[k] }

func (p *Parser) buildRules() {
	p.rules = map[token.Kind]rule{
		token.LeftParen:    {prefix: p.grouping, infix: p.call, prec: precCall},
		token.Minus:        {prefix: p.unary, infix: p.binary, prec: precTerm},
		token.Plus:         {infix: p.binary, prec: precTerm},
		token.Slash:        {infix: p.binary, prec: precFactor},
		token.Star:         {infix: p.binary, prec: precFactor},
		token.Not:          {prefix: p.unary},
		token.Bang:         {prefix: p.unary},
		token.BangEqual:    {infix: p.binary, prec: precEquality},
		token.EqualEqual:   {infix: p.binary, prec: precEquality},
		token.Greater:      {infix: p.binary, prec: precComparison},
		token.GreaterEqual: {infix: p.binary, prec: precComparison},
		token.Less:         {infix: p.binary, prec: precComparison},
		token.LessEqual:    {infix: p.binary, prec: precComparison},
		token.Identifier:   {prefix: p.variable},
		token.String:       {prefix: p.stringLiteral},
		token.Number:       {prefix: p.number},
		token.And:          {infix: p.and, prec: precAnd},
		token.Or:           {infix: p.or, prec: precOr},
		token.False:        {prefix: p.literalKeyword},
		token.Nil:          {prefix: p.literalKeyword},
		token.True:         {prefix: p.literalKeyword},
	}
}

// --- error handling ---

func (p *Parser) errorAtCurrent(message string) { p.errorAt(p.current, message) }
func (p *Parser) error(message string)          { p.errorAt(p.previous, message) }

func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	diag.ParseError(p.errOut, tok, message)
}

// synchronize advances past the erroneous statement until a statement
// starter keyword or a semicolon, then resumes parsing.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.Semicolon {
			return
		}

		switch p.current.Kind {
		case token.Function, token.Local, token.For, token.If, token.While,
			token.Return, token.Do:
			return
		}

		p.advance()
	}
}
