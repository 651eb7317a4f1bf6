// Package parser is a recursive-descent parser producing owo syntax trees.
//
// Errors inside a declaration abandon that declaration only: the parser
// skips ahead to the next statement boundary and keeps going, so a single
// pass can report several independent problems.
package parser

import (
	"fmt"

	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/lexer"
)

// Diagnostic is shared with the lexer so callers can report both uniformly.
type Diagnostic = lexer.Diagnostic

const maxArguments = 255

// parseError aborts the current declaration; the diagnostic has already
// been recorded when it is returned.
type parseError struct {
	diag Diagnostic
}

func (e *parseError) Error() string { return e.diag.String() }

type Parser struct {
	tokens      []lexer.Token
	current     int
	diagnostics []Diagnostic
}

// New creates a parser over tokens, which must end with an EOF token.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(append([]lexer.Token(nil), tokens...), lexer.Token{Kind: lexer.EOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse turns tokens into statements. A non-empty diagnostic list means the
// program must not be run.
func Parse(tokens []lexer.Token) ([]ast.Statement, []Diagnostic) {
	return New(tokens).Parse()
}

// ParseSource scans and parses source, returning lexical diagnostics ahead
// of parse diagnostics.
func ParseSource(source string) ([]ast.Statement, []Diagnostic) {
	tokens, lexDiags := lexer.Scan(source)
	stmts, parseDiags := Parse(tokens)
	if len(lexDiags) == 0 {
		return stmts, parseDiags
	}
	return stmts, append(append([]Diagnostic(nil), lexDiags...), parseDiags...)
}

func (p *Parser) Parse() ([]ast.Statement, []Diagnostic) {
	stmts := make([]ast.Statement, 0)
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.diagnostics
}

//-----------------------------------------------------------------------------
// Token cursor
//-----------------------------------------------------------------------------

func (p *Parser) peek() lexer.Token     { return p.tokens[p.current] }
func (p *Parser) previous() lexer.Token { return p.tokens[p.current-1] }
func (p *Parser) atEnd() bool           { return p.peek().Kind == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.Kind, message string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), message)
}

//-----------------------------------------------------------------------------
// Diagnostics and recovery
//-----------------------------------------------------------------------------

// errorAt records a diagnostic and returns it as an error. Callers decide
// whether the error aborts the declaration.
func (p *Parser) errorAt(tok lexer.Token, message string) *parseError {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Kind == lexer.EOF {
		where = "at end"
	}
	diag := Diagnostic{Line: tok.Line, Where: where, Message: message}
	p.diagnostics = append(p.diagnostics, diag)
	return &parseError{diag: diag}
}

// synchronize discards tokens until just past a ';' or just before a
// keyword that starts a declaration or statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == lexer.Semicolon {
			return
		}
		switch p.peek().Kind {
		case lexer.Class, lexer.Fun, lexer.Var, lexer.For, lexer.If, lexer.While, lexer.Return:
			return
		}
		p.advance()
	}
}
