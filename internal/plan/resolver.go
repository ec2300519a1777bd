package plan

import (
	"fmt"
	"go/types"

	"dispatch-generator/internal/analyze"
	"dispatch-generator/internal/common"
	"dispatch-generator/internal/diagnostic"
	"dispatch-generator/internal/match"
)

// Config controls per-container resolution.
type Config struct {
	// OverlapInfo emits a non-blocking info diagnostic when two specific
	// entries' error type sets intersect. Resolution order is unaffected:
	// first match wins either way.
	OverlapInfo bool
	// Oracle overrides the type oracle. Defaults to match.TypeOracle.
	Oracle match.Oracle
}

// Result is the per-container outcome: either a set of dispatch plans or the
// diagnostics explaining why generation was skipped. A skipped container
// never affects its siblings.
type Result struct {
	Container   *analyze.ContainerInfo
	Plans       []Plan
	Diagnostics diagnostic.Diagnostics
}

// Skipped reports whether generation was suppressed for this container.
func (r *Result) Skipped() bool {
	return len(r.Plans) == 0 &&
		(len(r.Diagnostics.Errors) > 0 || len(r.Diagnostics.Warnings) > 0)
}

// Resolve runs the full per-container pipeline: structural gating,
// classification, and plan construction for every entry point. Resolution is
// synchronous and free of shared state, so independent containers may be
// resolved concurrently.
func Resolve(c *analyze.ContainerInfo, cfg Config) Result {
	res := Result{Container: c}

	if len(c.Problems) > 0 {
		for _, p := range c.Problems {
			res.Diagnostics.Add(p)
		}

		return res
	}

	if c.Nested {
		res.Diagnostics.AddError(
			diagnostic.CodeNestedContainer,
			fmt.Sprintf("container type %s is declared in a nested scope; generation skipped", c.Name),
			c.Name, "",
		)

		return res
	}

	if !c.MultiPart {
		res.Diagnostics.AddWarning(
			diagnostic.CodeNotMultiPart,
			fmt.Sprintf("container type %s does not permit multi-part contribution; generation skipped", c.Name),
			c.Name, "",
		)

		return res
	}

	oracle := cfg.Oracle
	if oracle == nil {
		oracle = match.TypeOracle{}
	}

	builder := NewBuilder(match.NewAnalyzer(oracle, c.Pkg))
	classified := analyze.Classify(c.Methods)

	var plans []Plan

	for _, entry := range classified.EntryPoints {
		p := builder.Build(entry, classified.Specifics, classified.Fallbacks)

		checkNarrowing(&res.Diagnostics, c.Name, &p, oracle)

		if cfg.OverlapInfo {
			reportOverlaps(&res.Diagnostics, c.Name, &p)
		}

		plans = append(plans, p)
	}

	// A narrowing mismatch would render a dispatch body that does not
	// compile, so the whole container is skipped instead.
	if res.Diagnostics.HasErrors() {
		return res
	}

	res.Plans = plans

	return res
}

var errIface = types.Universe.Lookup("error").Type()

// checkNarrowing verifies every specific entry's handler can receive the
// value its case clause binds: the single set member for a singleton set,
// the switch operand's own type for a multi-type set.
func checkNarrowing(diags *diagnostic.Diagnostics, container string, p *Plan, oracle match.Oracle) {
	for i := range p.Specifics {
		e := &p.Specifics[i]
		slot := e.Method.ExceptionParam()

		narrowed := operandType(p.Entry)
		if common.IsSingle(e.Types) {
			narrowed = e.Types[0]
		}

		if oracle.ConvertibleTo(narrowed, slot) {
			continue
		}

		diags.AddError(
			diagnostic.CodeNarrowingMismatch,
			fmt.Sprintf("handler %s's first parameter cannot receive the matched value for its error type set; generation skipped",
				e.Method.Name),
			container, p.Entry.Name,
		)
	}
}

// operandType is the static type of the synthesized switch operand: the
// entry point's own error parameter when that is an interface, the error
// interface otherwise (the renderer wraps concrete operands in error()).
func operandType(entry *analyze.MethodInfo) types.Type {
	if t := entry.ExceptionParam(); types.IsInterface(t) {
		return t
	}

	return errIface
}

// reportOverlaps files an info diagnostic for every pair of specific entries
// whose error type sets intersect.
func reportOverlaps(diags *diagnostic.Diagnostics, container string, p *Plan) {
	if !common.IsMultiple(p.Specifics) {
		return
	}

	for i := range p.Specifics {
		for j := i + 1; j < len(p.Specifics); j++ {
			if !p.Specifics[i].Types.Intersects(p.Specifics[j].Types) {
				continue
			}

			diags.AddInfo(
				diagnostic.CodeOverlappingSets,
				fmt.Sprintf("handlers %s and %s claim overlapping error types; %s wins by declaration order",
					p.Specifics[i].Method.Name, p.Specifics[j].Method.Name, p.Specifics[i].Method.Name),
				container, p.Entry.Name,
			)
		}
	}
}
