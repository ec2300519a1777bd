package plan

import (
	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/match"
)

// Builder constructs dispatch plans. It is a pure function of its inputs:
// no state persists across Build calls.
type Builder struct {
	analyzer *match.Analyzer
}

// NewBuilder creates a Builder using the given eligibility analyzer.
func NewBuilder(analyzer *match.Analyzer) *Builder {
	return &Builder{analyzer: analyzer}
}

// Build derives the dispatch plan for one entry point:
//
//  1. keep the specifics passing IsValidHandler, in declaration order; the
//     synthesized dispatch is sequential first-match-wins, so no reordering
//     by specificity, arity, or set size happens;
//  2. resolve each survivor's error type set and project its arguments
//     positionally from the entry point's parameters;
//  3. keep the first fallback passing IsValidFallback; later eligible
//     fallbacks are dropped silently.
func (b *Builder) Build(entry *analyze.MethodInfo, specifics, fallbacks []*analyze.MethodInfo) Plan {
	p := Plan{Entry: entry}

	for _, m := range specifics {
		if !b.analyzer.IsValidHandler(entry, m) {
			continue
		}

		p.Specifics = append(p.Specifics, Entry{
			Method: m,
			Types:  analyze.ResolveExceptionTypes(m),
			Args:   projectArgs(entry, m, 1),
		})
	}

	for _, m := range fallbacks {
		if b.analyzer.IsValidFallback(entry, m) {
			fb := Entry{
				Method: m,
				Args:   projectArgs(entry, m, 0),
			}
			p.Fallback = &fb

			break
		}
	}

	return p
}

// projectArgs binds the handler's parameters from start up to its parameter
// count to the entry point's parameters at the same positions. Trailing
// entry-point parameters the handler does not declare are simply not passed.
func projectArgs(entry, handler *analyze.MethodInfo, start int) []ArgRef {
	var args []ArgRef

	for i := start; i < handler.ParamCount(); i++ {
		args = append(args, ArgRef{Index: i, Name: entry.Params[i].Name})
	}

	return args
}
