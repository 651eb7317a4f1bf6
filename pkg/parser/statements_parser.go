package parser

import (
	"github.com/fasihh/owo-lang/pkg/ast"
	"github.com/fasihh/owo-lang/pkg/lexer"
)

// declaration is the recovery boundary: any fatal error below it is
// swallowed here after resynchronizing.
func (p *Parser) declaration() ast.Statement {
	var (
		stmt ast.Statement
		err  error
	)
	switch {
	case p.match(lexer.Var):
		stmt, err = p.varDeclaration()
	case p.match(lexer.Fun):
		stmt, err = p.function()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	decls := make([]ast.VarDeclarator, 0, 1)
	for {
		name, err := p.consume(lexer.Identifier, "Expect variable name.")
		if err != nil {
			return nil, err
		}
		decl := ast.VarDeclarator{Name: name}
		if p.match(lexer.Equal) {
			init, err := p.expression()
			if err != nil {
				return nil, err
			}
			decl.Initializer = init
		}
		decls = append(decls, decl)
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarStatement(decls), nil
}

func (p *Parser) function() (ast.Statement, error) {
	name, err := p.consume(lexer.Identifier, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after function name."); err != nil {
		return nil, err
	}
	params := make([]lexer.Token, 0)
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= maxArguments {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(lexer.Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LeftBrace, "Expect '{' before function body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunction(name, params, body), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(stmts), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var otherwise ast.Statement
	if p.match(lexer.Else) {
		if otherwise, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIf(cond, then, otherwise), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(lexer.Semicolon) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturn(keyword, value), nil
}

// block parses declarations up to the closing brace; the opening brace has
// already been consumed. Declarations inside recover on their own.
func (p *Parser) block() ([]ast.Statement, error) {
	stmts := make([]ast.Statement, 0)
	for !p.check(lexer.RightBrace) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(lexer.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	exprs := make([]ast.Expression, 0, 1)
	for {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.match(lexer.Comma) {
			break
		}
	}
	if _, err := p.consume(lexer.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(exprs), nil
}
