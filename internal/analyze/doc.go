// Package analyze defines the symbol model for dispatch generation and the
// go/packages-backed loader that discovers tagged container types.
//
// Key pieces:
//   - MethodInfo / ContainerInfo: the per-pass symbol model
//   - Classify: partitions tagged methods into role buckets
//   - ResolveExceptionTypes: resolves a specific handler's error type set
//   - Loader: discovers containers from directive comments in Go source
package analyze
