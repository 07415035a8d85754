// Package rules implements the per-document checks of a validation run.
//
// CheckSchema verifies required fields and their consistency with the
// containing layer. Resolver checks composition references against the
// filesystem and the layer registry. Both return violations as values;
// neither keeps state between documents.
package rules
