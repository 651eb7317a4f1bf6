package lexer

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	// Single-character punctuation.
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
	Question
	Colon
	Percent
	BitAnd
	BitOr
	BitXor
	BitNot

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	LeftShift
	RightShift
	AndAnd
	OrOr

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	Break
	Class
	Continue
	Else
	False
	For
	Fun
	If
	Nil
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = map[Kind]string{
	LeftParen:    "LEFT_PAREN",
	RightParen:   "RIGHT_PAREN",
	LeftBrace:    "LEFT_BRACE",
	RightBrace:   "RIGHT_BRACE",
	Comma:        "COMMA",
	Dot:          "DOT",
	Minus:        "MINUS",
	Plus:         "PLUS",
	Semicolon:    "SEMICOLON",
	Slash:        "SLASH",
	Star:         "STAR",
	Question:     "QUESTION",
	Colon:        "COLON",
	Percent:      "PERCENTAGE",
	BitAnd:       "AND",
	BitOr:        "OR",
	BitXor:       "XOR",
	BitNot:       "NOT",
	Bang:         "BANG",
	BangEqual:    "BANG_EQUAL",
	Equal:        "EQUAL",
	EqualEqual:   "EQUAL_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	LeftShift:    "LEFT_SHIFT",
	RightShift:   "RIGHT_SHIFT",
	AndAnd:       "AND_AND",
	OrOr:         "OR_OR",
	Identifier:   "IDENTIFIER",
	String:       "STRING",
	Number:       "NUMBER",
	Break:        "BREAK",
	Class:        "CLASS",
	Continue:     "CONTINUE",
	Else:         "ELSE",
	False:        "FALSE",
	For:          "FOR",
	Fun:          "FUN",
	If:           "IF",
	Nil:          "NIL",
	Return:       "RETURN",
	Super:        "SUPER",
	This:         "THIS",
	True:         "TRUE",
	Var:          "VAR",
	While:        "WHILE",
	EOF:          "EOF",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_TOKEN_%d", int(k))
}

// keywords maps reserved words to their token kinds. `and`/`or` are spelled
// aliases of `&&`/`||`.
var keywords = map[string]Kind{
	"and":      AndAnd,
	"break":    Break,
	"class":    Class,
	"continue": Continue,
	"else":     Else,
	"false":    False,
	"for":      For,
	"fun":      Fun,
	"if":       If,
	"nil":      Nil,
	"or":       OrOr,
	"return":   Return,
	"super":    Super,
	"this":     This,
	"true":     True,
	"var":      Var,
	"while":    While,
}

// LookupKeyword reports the keyword kind for an identifier-shaped word.
func LookupKeyword(word string) (Kind, bool) {
	kind, ok := keywords[word]
	return kind, ok
}

// Token is a single lexical unit. Literal holds a float64 for numbers, a
// string for strings and nil otherwise.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

// String renders the token the way `owo tokens` prints it.
func (t Token) String() string {
	literal := "nil"
	switch v := t.Literal.(type) {
	case string:
		literal = v
	case float64:
		literal = fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%s %s %s (line %d)", t.Kind, t.Lexeme, literal, t.Line)
}

// Synthetic builds a token that did not come from source text, such as the
// name token of a native function.
func Synthetic(kind Kind, lexeme string) Token {
	return Token{Kind: kind, Lexeme: lexeme}
}
