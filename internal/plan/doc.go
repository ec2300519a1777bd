// Package plan builds dispatch plans: per entry point, the ordered list of
// eligible specific handlers, at most one fallback, and the positional
// argument projections the renderer must honor.
//
// Key pieces:
//   - Plan / Entry: the immutable dispatch plan model
//   - Builder: composes classification, resolution, and eligibility
//   - Resolve: per-container pipeline with structural gating diagnostics
package plan
