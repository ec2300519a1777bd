// Package diagnostic defines the diagnostic model shared by the analysis
// pipeline: severities, stable codes, per-container aggregation, and
// formatting helpers.
package diagnostic
