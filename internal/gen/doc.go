// Package gen renders dispatch plans into generated Go source and drives the
// per-container pipeline.
//
// Key pieces:
//   - Generator: concurrent driver over discovered containers
//   - renderContainer: dispatch plan to formatted Go source
//   - WriteFiles: filesystem output
package gen
