package lang

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Environment is one scope in a chain of name bindings.
// The zero value is not usable; construct with [NewEnvironment].
type Environment struct {
	values    map[string]Literal
	enclosing *Environment
}

// NewEnvironment returns an empty global scope.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Literal)}
}

// Child returns a new scope nested inside e.
func (e *Environment) Child() *Environment {
	return &Environment{values: make(map[string]Literal), enclosing: e}
}

// Enclosing returns the parent scope, or nil for a global scope.
func (e *Environment) Enclosing() *Environment { return e.enclosing }

// Define binds name to value in this scope, replacing any existing binding
// of the same name here. Bindings in enclosing scopes are shadowed, not
// modified.
func (e *Environment) Define(name string, value Literal) {
	if value == nil {
		value = Nil{}
	}

	e.values[name] = value
}

// Get returns the value bound to name in the nearest scope that binds it.
func (e *Environment) Get(name string) (Literal, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// Lookup is like Get but returns [ErrUndefinedVariable] for unbound names.
func (e *Environment) Lookup(name string) (Literal, error) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}

	return nil, ErrUndefinedVariable.With(slog.String("name", name))
}

// Names returns the names visible from this scope in sorted order.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})

	for env := e; env != nil; env = env.enclosing {
		for name := range env.values {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// All yields every binding visible from this scope in name order.
// Shadowed bindings are omitted.
func (e *Environment) All() iter.Seq2[string, Literal] {
	return func(yield func(string, Literal) bool) {
		for _, name := range e.Names() {
			v, _ := e.Get(name)
			if !yield(name, v) {
				return
			}
		}
	}
}

// Len returns the number of bindings in this scope alone.
func (e *Environment) Len() int { return len(e.values) }
