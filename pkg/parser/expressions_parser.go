package parser

import (
	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/lexer"
)

// Precedence, loosest first:
//
//	assignment > ternary > equality > bitwise > logical > comparison >
//	additive > multiplicative > unary > call > primary
//
// Logical && and || sit between bitwise and comparison; this ordering is
// part of the language and must not be normalized.

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.Equal) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if variable, ok := expr.(*ast.Variable); ok {
		return ast.NewAssign(variable.Name, value), nil
	}
	p.errorAt(equals, "Invalid assignment target.")
	return expr, nil
}

func (p *Parser) ternary() (ast.Expression, error) {
	cond, err := p.equality()
	if err != nil {
		return nil, err
	}
	if !p.match(lexer.Question) {
		return cond, nil
	}
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Colon, "Expected ':' after true branch."); err != nil {
		return nil, err
	}
	otherwise, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ast.NewTernary(cond, then, otherwise), nil
}

// binaryLevel parses a left-associative level whose operands come from next.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), kinds ...lexer.Kind) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.bitwise, lexer.BangEqual, lexer.EqualEqual)
}

func (p *Parser) bitwise() (ast.Expression, error) {
	return p.binaryLevel(p.logical, lexer.BitAnd, lexer.BitOr, lexer.BitXor, lexer.LeftShift, lexer.RightShift)
}

func (p *Parser) logical() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, lexer.AndAnd, lexer.OrOr)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.term, lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binaryLevel(p.factor, lexer.Minus, lexer.Plus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binaryLevel(p.unary, lexer.Star, lexer.Slash, lexer.Percent)
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(lexer.Bang, lexer.Minus, lexer.BitNot) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(op, right), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.LeftParen) {
		if expr, err = p.finishCall(expr); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	args := make([]ast.Expression, 0)
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArguments {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, args), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(lexer.False):
		return ast.NewLiteral(false), nil
	case p.match(lexer.True):
		return ast.NewLiteral(true), nil
	case p.match(lexer.Nil):
		return ast.NewLiteral(nil), nil
	case p.match(lexer.Number, lexer.String):
		return ast.NewLiteral(p.previous().Literal), nil
	case p.match(lexer.Identifier):
		return ast.NewVariable(p.previous()), nil
	case p.match(lexer.LeftParen):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(inner), nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}
