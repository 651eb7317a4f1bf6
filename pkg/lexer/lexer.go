// Package lexer turns owo source text into tokens.
package lexer

import (
	"fmt"
	"strconv"
)

// Diagnostic is a non-fatal problem found while scanning or parsing. Where is
// empty for lexical errors, "at end" for the end marker and "at 'x'" otherwise.
type Diagnostic struct {
	Line    int
	Where   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", d.Line, d.Where, d.Message)
}

// Lexer holds the scanning state for a single source string.
type Lexer struct {
	source      string
	tokens      []Token
	diagnostics []Diagnostic
	start       int
	current     int
	line        int
}

// New prepares a lexer for source.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1}
}

// Scan tokenizes source in one pass. Lexical errors never stop the scan; the
// returned tokens always end with an EOF marker.
func Scan(source string) ([]Token, []Diagnostic) {
	return New(source).ScanTokens()
}

// ScanTokens runs the lexer to completion.
func (l *Lexer) ScanTokens() ([]Token, []Diagnostic) {
	for !l.atEnd() {
		l.start = l.current
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Kind: EOF, Line: l.line})
	return l.tokens, l.diagnostics
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.add(LeftParen)
	case ')':
		l.add(RightParen)
	case '{':
		l.add(LeftBrace)
	case '}':
		l.add(RightBrace)
	case ',':
		l.add(Comma)
	case '.':
		l.add(Dot)
	case '-':
		l.add(Minus)
	case '+':
		l.add(Plus)
	case ';':
		l.add(Semicolon)
	case '*':
		l.add(Star)
	case '?':
		l.add(Question)
	case ':':
		l.add(Colon)
	case '^':
		l.add(BitXor)
	case '~':
		l.add(BitNot)
	case '%':
		l.add(Percent)
	case '&':
		l.addEither('&', AndAnd, BitAnd)
	case '|':
		l.addEither('|', OrOr, BitOr)
	case '!':
		l.addEither('=', BangEqual, Bang)
	case '=':
		l.addEither('=', EqualEqual, Equal)
	case '<':
		switch {
		case l.match('='):
			l.add(LessEqual)
		case l.match('<'):
			l.add(LeftShift)
		default:
			l.add(Less)
		}
	case '>':
		switch {
		case l.match('='):
			l.add(GreaterEqual)
		case l.match('>'):
			l.add(RightShift)
		default:
			l.add(Greater)
		}
	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.atEnd() {
				l.advance()
			}
			return
		}
		l.add(Slash)
	case ' ', '\r', '\t':
	case '\n':
		l.line++
	case '"':
		l.string()
	default:
		switch {
		case isDigit(c):
			l.number()
		case isAlpha(c):
			l.identifier()
		default:
			l.errorf("Unexpected character: %c", c)
		}
	}
}

func (l *Lexer) string() {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.atEnd() {
		l.errorf("Unterminated string.")
		return
	}
	l.advance()
	l.addLiteral(String, l.source[l.start+1:l.current-1])
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	value, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
	if err != nil {
		l.errorf("Invalid number literal '%s'.", l.source[l.start:l.current])
		return
	}
	l.addLiteral(Number, value)
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	text := l.source[l.start:l.current]
	if kind, ok := LookupKeyword(text); ok {
		l.add(kind)
		return
	}
	l.add(Identifier)
}

func (l *Lexer) add(kind Kind) {
	l.addLiteral(kind, nil)
}

func (l *Lexer) addEither(next byte, matched, single Kind) {
	if l.match(next) {
		l.add(matched)
		return
	}
	l.add(single)
}

func (l *Lexer) addLiteral(kind Kind, literal any) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Lexeme:  l.source[l.start:l.current],
		Literal: literal,
		Line:    l.line,
	})
}

func (l *Lexer) errorf(format string, args ...any) {
	l.diagnostics = append(l.diagnostics, Diagnostic{
		Line:    l.line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *Lexer) atEnd() bool { return l.current >= len(l.source) }

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
