package ast

import (
	"strconv"
	"strings"
)

// Print renders statements in a parenthesized prefix form, one top-level
// statement per line.
func Print(stmts []Statement) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(PrintStatement(stmt))
	}
	return b.String()
}

func PrintStatement(stmt Statement) string {
	switch s := stmt.(type) {
	case *ExpressionStatement:
		return parenthesize("expr", s.Expressions...)
	case *VarStatement:
		parts := make([]string, 0, len(s.Declarations))
		for _, decl := range s.Declarations {
			if decl.Initializer == nil {
				parts = append(parts, decl.Name.Lexeme)
				continue
			}
			parts = append(parts, "("+decl.Name.Lexeme+" "+PrintExpression(decl.Initializer)+")")
		}
		return "(var " + strings.Join(parts, " ") + ")"
	case *Block:
		return "(block" + printBody(s.Statements) + ")"
	case *If:
		out := "(if " + PrintExpression(s.Condition) + " " + PrintStatement(s.Then)
		if s.Else != nil {
			out += " " + PrintStatement(s.Else)
		}
		return out + ")"
	case *Function:
		params := make([]string, 0, len(s.Params))
		for _, p := range s.Params {
			params = append(params, p.Lexeme)
		}
		return "(fun " + s.Name.Lexeme + " (" + strings.Join(params, " ") + ")" + printBody(s.Body) + ")"
	case *Return:
		if s.Value == nil {
			return "(return)"
		}
		return parenthesize("return", s.Value)
	default:
		return "(?stmt)"
	}
}

func PrintExpression(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		return printLiteral(e.Value)
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Ternary:
		return parenthesize("?:", e.Condition, e.Then, e.Else)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		return parenthesize("call "+PrintExpression(e.Callee), e.Arguments...)
	default:
		return "(?expr)"
	}
}

func printBody(stmts []Statement) string {
	var b strings.Builder
	for _, stmt := range stmts {
		b.WriteByte(' ')
		b.WriteString(PrintStatement(stmt))
	}
	return b.String()
}

func parenthesize(name string, exprs ...Expression) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteByte(' ')
		b.WriteString(PrintExpression(expr))
	}
	b.WriteByte(')')
	return b.String()
}

func printLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return "?"
	}
}
