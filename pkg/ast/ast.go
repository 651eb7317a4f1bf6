// Package ast defines the owo syntax tree. Nodes are immutable once the
// parser hands them out; Expression and Statement are closed sets sealed by
// unexported marker methods.
package ast

import "github.com/fasihh/owo-lang/pkg/lexer"

type NodeType string

const (
	NodeLiteral             NodeType = "Literal"
	NodeGrouping            NodeType = "Grouping"
	NodeUnary               NodeType = "Unary"
	NodeBinary              NodeType = "Binary"
	NodeTernary             NodeType = "Ternary"
	NodeVariable            NodeType = "Variable"
	NodeAssign              NodeType = "Assign"
	NodeCall                NodeType = "Call"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeVarStatement        NodeType = "VarStatement"
	NodeBlock               NodeType = "Block"
	NodeIf                  NodeType = "If"
	NodeFunction            NodeType = "Function"
	NodeReturn              NodeType = "Return"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// Literal holds a float64, string, bool or nil.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any `json:"value"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

type Grouping struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGrouping(inner Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: inner}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewUnary(op lexer.Token, right Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: op, Right: right}
}

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator lexer.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinary(left Expression, op lexer.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: op, Right: right}
}

type Ternary struct {
	nodeImpl
	expressionMarker

	Condition Expression `json:"condition"`
	Then      Expression `json:"then"`
	Else      Expression `json:"else"`
}

func NewTernary(cond, then, otherwise Expression) *Ternary {
	return &Ternary{nodeImpl: newNodeImpl(NodeTernary), Condition: cond, Then: then, Else: otherwise}
}

type Variable struct {
	nodeImpl
	expressionMarker

	Name lexer.Token `json:"name"`
}

func NewVariable(name lexer.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type Assign struct {
	nodeImpl
	expressionMarker

	Name  lexer.Token `json:"name"`
	Value Expression  `json:"value"`
}

func NewAssign(name lexer.Token, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

// Call keeps the closing paren token so runtime errors can report a line.
type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     lexer.Token  `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee Expression, paren lexer.Token, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: args}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

// ExpressionStatement evaluates a comma-separated list of expressions.
type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expressions []Expression `json:"expressions"`
}

func NewExpressionStatement(exprs []Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expressions: exprs}
}

// VarDeclarator is one `name [= initializer]` entry of a var statement.
type VarDeclarator struct {
	Name        lexer.Token `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

type VarStatement struct {
	nodeImpl
	statementMarker

	Declarations []VarDeclarator `json:"declarations"`
}

func NewVarStatement(decls []VarDeclarator) *VarStatement {
	return &VarStatement{nodeImpl: newNodeImpl(NodeVarStatement), Declarations: decls}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(stmts []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: stmts}
}

type If struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIf(cond Expression, then, otherwise Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: cond, Then: then, Else: otherwise}
}

type Function struct {
	nodeImpl
	statementMarker

	Name   lexer.Token   `json:"name"`
	Params []lexer.Token `json:"params"`
	Body   []Statement   `json:"body"`
}

func NewFunction(name lexer.Token, params []lexer.Token, body []Statement) *Function {
	return &Function{nodeImpl: newNodeImpl(NodeFunction), Name: name, Params: params, Body: body}
}

// Return carries its keyword token for error locations; Value may be nil.
type Return struct {
	nodeImpl
	statementMarker

	Keyword lexer.Token `json:"keyword"`
	Value   Expression  `json:"value,omitempty"`
}

func NewReturn(keyword lexer.Token, value Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Keyword: keyword, Value: value}
}
