package match

import (
	"go/types"

	"dispatch-generator/internal/analyze"
)

// Oracle answers the type relationship questions the analyzer needs. It must
// be a pure function of its arguments: no caching invalidation, no writes.
// The go/types-backed TypeOracle is the production implementation; tests or
// alternative hosts can substitute their own.
type Oracle interface {
	// ConvertibleTo reports whether a value of type from can be safely
	// passed where type to is expected.
	ConvertibleTo(from, to types.Type) bool
	// CommonReturn reports whether two result lists are compatible for
	// dispatch: identical tuples, or both empty.
	CommonReturn(a, b []types.Type) bool
	// Callable reports whether the method can be invoked from code hosted
	// in the given package.
	Callable(m *analyze.MethodInfo, from *types.Package) bool
}

// TypeOracle implements Oracle on top of the go/types assignability
// relation. Stateless and reentrant.
type TypeOracle struct{}

// ConvertibleTo reports Go assignability of from to to. Assignability covers
// both the error-hierarchy direction (concrete error to broader error
// interface) and plain parameter compatibility.
func (TypeOracle) ConvertibleTo(from, to types.Type) bool {
	if from == nil || to == nil {
		return false
	}

	return types.AssignableTo(from, to)
}

// CommonReturn reports whether two result lists are dispatch-compatible:
// exactly identical result types, or both producing no value. Covariant
// widening is not attempted.
func (TypeOracle) CommonReturn(a, b []types.Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !types.Identical(a[i], b[i]) {
			return false
		}
	}

	return true
}

// Callable reports whether m can be invoked from code generated into the
// package from: exported methods always, unexported ones only from their own
// package.
func (TypeOracle) Callable(m *analyze.MethodInfo, from *types.Package) bool {
	if m.Exported() {
		return true
	}

	return m.Pkg != nil && from != nil && m.Pkg == from
}
