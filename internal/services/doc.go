// Package services holds the validation engine that ties metadata
// extraction, the schema checker and the composition resolver together
// for every document of a scanned corpus.
package services
