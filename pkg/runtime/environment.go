package runtime

import (
	"sort"

	"github.com/fasihh/owo-lang/pkg/lexer"
)

// Environment provides lexical scoping for owo runtime values. The token
// arguments only locate errors.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define adds a binding to the current scope. A name may be declared once
// per scope; shadowing an outer binding is fine.
func (e *Environment) Define(name string, value Value, tok lexer.Token) error {
	if _, ok := e.values[name]; ok {
		return NewRuntimeError(ErrAlreadyDeclared, tok, "Variable '%s' has already been declared.", name)
	}
	e.values[name] = value
	return nil
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string, tok lexer.Token) (Value, error) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, nil
		}
	}
	return nil, NewRuntimeError(ErrUndefinedVariable, tok, "Undefined variable '%s'.", name)
}

// Assign updates an existing binding in the first scope where it appears.
// It never creates a binding.
func (e *Environment) Assign(name string, value Value, tok lexer.Token) error {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = value
			return nil
		}
	}
	return NewRuntimeError(ErrUndefinedVariable, tok, "Undefined variable '%s'.", name)
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasInCurrentScope reports whether the binding exists in the current scope.
func (e *Environment) HasInCurrentScope(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Has reports whether the binding exists anywhere in the scope chain.
func (e *Environment) Has(name string) bool {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			return true
		}
	}
	return false
}
