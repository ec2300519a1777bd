// Package match answers type compatibility questions and decides handler
// eligibility.
//
// Key pieces:
//   - Oracle: the narrow type-relationship interface over go/types
//   - TypeOracle: the go/types-backed Oracle
//   - Analyzer: IsValidHandler / IsValidFallback eligibility predicates
package match
