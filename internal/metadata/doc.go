// Package metadata extracts the structured header embedded at the start of
// each corpus document.
//
// # Metadata Format
//
// The header is a YAML block delimited by "---" lines, the opening one at
// byte offset 0:
//
//	---
//	id: o-checkout-form
//	name: Checkout form
//	version: "1.2"
//	layer: L3
//	category: commerce
//	description: Address and payment capture.
//	tags: [forms, checkout]
//	composes:
//	  - ../molecules/address-fields.md
//	  - ../atoms/button.md
//	---
//
// # Typed Fields
//
// The block is decoded into a Metadata map whose values are a tagged union
// (Value) of string, ordered list or nested mapping. Scalars keep their
// literal text, so "version: 1.0" is the string "1.0", and a key with no
// value is an empty list. No field semantics are checked here; see
// internal/rules.
//
// # Usage
//
//	meta, err := metadata.Extract(content, filePath)
//	if errors.Is(err, metadata.ErrMissingMetadataBlock) {
//	    // document has no header at all
//	}
package metadata
