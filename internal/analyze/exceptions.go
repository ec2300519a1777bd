package analyze

import (
	"go/types"
)

// ExceptionTypeSet is the ordered list of distinct error types a specific
// handler services. Order is preserved from the directive so that rendering
// stays deterministic.
type ExceptionTypeSet []types.Type

// ResolveExceptionTypes resolves the set of error types a specific handler
// services. Explicit directive type arguments are kept in the order written,
// with duplicates removed. When no explicit arguments were given the set
// defaults to the singleton of the handler's own first parameter type, so the
// result is always non-empty for any method that passed classification.
func ResolveExceptionTypes(m *MethodInfo) ExceptionTypeSet {
	var set ExceptionTypeSet

	for _, t := range m.ExplicitTypes {
		if t == nil {
			continue
		}

		if !set.Contains(t) {
			set = append(set, t)
		}
	}

	if len(set) == 0 && m.ParamCount() > 0 {
		set = ExceptionTypeSet{m.ExceptionParam()}
	}

	return set
}

// Contains reports whether the set holds a type identical to t.
func (s ExceptionTypeSet) Contains(t types.Type) bool {
	for _, member := range s {
		if types.Identical(member, t) {
			return true
		}
	}

	return false
}

// Intersects reports whether the two sets share at least one identical type.
func (s ExceptionTypeSet) Intersects(other ExceptionTypeSet) bool {
	for _, t := range s {
		if other.Contains(t) {
			return true
		}
	}

	return false
}
