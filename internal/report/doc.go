// Package report aggregates a validation run into per-layer statistics and
// renders it as a human-readable text report or as JSON.
package report
