package match

import (
	"go/types"

	"dispatch-generator/internal/analyze"
)

// Analyzer decides whether a candidate method may serve a given entry point.
// Both predicates are total: any (entry, candidate) pair gets a yes/no
// answer, never a panic or partial result.
type Analyzer struct {
	oracle Oracle
	// host is the package the synthesized dispatch body is generated into.
	host *types.Package
}

// NewAnalyzer creates an Analyzer using the given oracle, generating into
// the host package.
func NewAnalyzer(oracle Oracle, host *types.Package) *Analyzer {
	return &Analyzer{oracle: oracle, host: host}
}

// IsValidHandler reports whether candidate may serve entry as a specific
// handler:
//
//  1. return types are common (identical, or both produce no value);
//  2. candidate is callable from the generated dispatch body;
//  3. candidate declares no more parameters than entry;
//  4. every type in candidate's resolved error type set is convertible to
//     entry's first parameter type (the catch-hierarchy direction); a single
//     unrelated claimed type rejects the candidate outright;
//  5. for each position i in 1..k-1, entry's parameter i is convertible to
//     candidate's parameter i (the value in hand must fit the declared slot).
//
// A candidate with no parameters beyond the error passes rule 5 vacuously.
func (a *Analyzer) IsValidHandler(entry, candidate *analyze.MethodInfo) bool {
	if !a.sharedRules(entry, candidate) {
		return false
	}

	entryErr := entry.ExceptionParam()
	for _, t := range analyze.ResolveExceptionTypes(candidate) {
		if !a.oracle.ConvertibleTo(t, entryErr) {
			return false
		}
	}

	return a.paramsConvertible(entry, candidate, 1)
}

// IsValidFallback reports whether candidate may serve entry as the fallback
// handler. Same return-type, callability, and arity rules as IsValidHandler;
// parameter convertibility is checked from position 0, since a fallback must
// accept exactly what the entry point's own error parameter declares, not a
// narrowed subset.
func (a *Analyzer) IsValidFallback(entry, candidate *analyze.MethodInfo) bool {
	if !a.sharedRules(entry, candidate) {
		return false
	}

	return a.paramsConvertible(entry, candidate, 0)
}

// sharedRules checks return commonality, callability, and arity.
func (a *Analyzer) sharedRules(entry, candidate *analyze.MethodInfo) bool {
	if !a.oracle.CommonReturn(entry.Results, candidate.Results) {
		return false
	}

	if !a.oracle.Callable(candidate, a.host) {
		return false
	}

	return candidate.ParamCount() <= entry.ParamCount()
}

// paramsConvertible checks entry.param[i] -> candidate.param[i] for each
// position from start up to the candidate's parameter count.
func (a *Analyzer) paramsConvertible(entry, candidate *analyze.MethodInfo, start int) bool {
	for i := start; i < candidate.ParamCount(); i++ {
		if !a.oracle.ConvertibleTo(entry.Params[i].Type, candidate.Params[i].Type) {
			return false
		}
	}

	return true
}
