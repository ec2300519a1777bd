package plan

import (
	"go/types"

	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/match"
)

// ArgRef is one projected argument: the entry-point parameter forwarded into
// a handler slot. Projection is positional, never by name; Name is carried
// only for rendering.
type ArgRef struct {
	// Index is the entry-point parameter index.
	Index int
	// Name is the entry-point parameter name.
	Name string
}

// Entry is one handler in a dispatch plan.
type Entry struct {
	// Method is the handler to invoke.
	Method *analyze.MethodInfo
	// Types is the resolved error type set serviced by a specific handler.
	// Empty for fallback entries, which service anything still unmatched.
	Types analyze.ExceptionTypeSet
	// Args lists, in handler parameter order, the entry-point parameters
	// forwarded to the handler. For specific entries the handler's first
	// parameter is bound to the post-narrowing error value and Args covers
	// positions 1..k-1; for fallback entries Args covers positions 0..k-1.
	// Trailing entry-point parameters the handler omits are not listed.
	Args []ArgRef
}

// Plan is the derived dispatch plan for one entry point. Plans are rebuilt
// from scratch every generation pass and carry no identity beyond it.
type Plan struct {
	// Entry is the declaration-only entry-point stub.
	Entry *analyze.MethodInfo
	// Specifics are the eligible specific handlers in declaration order.
	// The synthesized dispatch tests them sequentially, first match wins,
	// so this order is load-bearing.
	Specifics []Entry
	// Fallback is the single optional fallback handler, invoked only when
	// no specific entry matched. Nil when no eligible fallback exists; the
	// synthesized dispatch then lets the error propagate unhandled.
	Fallback *Entry
}

// Select simulates the synthesized dispatch for an error of dynamic type
// thrown: the first specific entry one of whose set members thrown is
// convertible to, else the fallback, else nil. Used by tests and the plan
// inspection command; generation never calls it.
func (p *Plan) Select(thrown types.Type, oracle match.Oracle) *Entry {
	for i := range p.Specifics {
		for _, t := range p.Specifics[i].Types {
			if oracle.ConvertibleTo(thrown, t) {
				return &p.Specifics[i]
			}
		}
	}

	return p.Fallback
}
