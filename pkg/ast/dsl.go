package ast

import (
	"fmt"

	"github.com/fasihh/owo-lang/pkg/lexer"
)

// Helpers for building trees by hand, mostly in tests. Synthesized tokens
// carry line 1.

var operatorKinds = map[string]lexer.Kind{
	"+":  lexer.Plus,
	"-":  lexer.Minus,
	"*":  lexer.Star,
	"/":  lexer.Slash,
	"%":  lexer.Percent,
	"!":  lexer.Bang,
	"~":  lexer.BitNot,
	"&":  lexer.BitAnd,
	"|":  lexer.BitOr,
	"^":  lexer.BitXor,
	"<<": lexer.LeftShift,
	">>": lexer.RightShift,
	"&&": lexer.AndAnd,
	"||": lexer.OrOr,
	"==": lexer.EqualEqual,
	"!=": lexer.BangEqual,
	"<":  lexer.Less,
	"<=": lexer.LessEqual,
	">":  lexer.Greater,
	">=": lexer.GreaterEqual,
}

// Op returns the token for an operator spelling; it panics on unknown input.
func Op(op string) lexer.Token {
	kind, ok := operatorKinds[op]
	if !ok {
		panic(fmt.Sprintf("ast: unknown operator %q", op))
	}
	return lexer.Token{Kind: kind, Lexeme: op, Line: 1}
}

// Name returns an identifier token.
func Name(name string) lexer.Token {
	return lexer.Token{Kind: lexer.Identifier, Lexeme: name, Line: 1}
}

func Num(value float64) *Literal { return NewLiteral(value) }

func Str(value string) *Literal { return NewLiteral(value) }

func Bool(value bool) *Literal { return NewLiteral(value) }

func Nil() *Literal { return NewLiteral(nil) }

func ID(name string) *Variable { return NewVariable(Name(name)) }

func Group(inner Expression) *Grouping { return NewGrouping(inner) }

func Un(op string, right Expression) *Unary { return NewUnary(Op(op), right) }

func Bin(op string, left, right Expression) *Binary { return NewBinary(left, Op(op), right) }

func Tern(cond, then, otherwise Expression) *Ternary { return NewTernary(cond, then, otherwise) }

func Set(name string, value Expression) *Assign { return NewAssign(Name(name), value) }

func CallExpr(callee Expression, args ...Expression) *Call {
	paren := lexer.Token{Kind: lexer.RightParen, Lexeme: ")", Line: 1}
	return NewCall(callee, paren, args)
}

func Expr(exprs ...Expression) *ExpressionStatement { return NewExpressionStatement(exprs) }

// Var declares a single name; pass a nil initializer for `var name;`.
func Var(name string, init Expression) *VarStatement {
	return NewVarStatement([]VarDeclarator{{Name: Name(name), Initializer: init}})
}

func BlockOf(stmts ...Statement) *Block { return NewBlock(stmts) }

func IfStmt(cond Expression, then, otherwise Statement) *If { return NewIf(cond, then, otherwise) }

func Fn(name string, params []string, body ...Statement) *Function {
	tokens := make([]lexer.Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, Name(p))
	}
	return NewFunction(Name(name), tokens, body)
}

func Ret(value Expression) *Return {
	return NewReturn(lexer.Token{Kind: lexer.Return, Lexeme: "return", Line: 1}, value)
}
