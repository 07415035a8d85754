package metadata

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestExtract_AllFields tests extraction of a complete header
func TestExtract_AllFields(t *testing.T) {
	content := `---
id: o-checkout-form
name: "Checkout form"
version: 1.0
layer: L3
category: commerce
description: 'Address and payment capture'
tags: [forms, "checkout", 'payments']
composes:
  - ../molecules/address-fields.md
  - ../atoms/button.md
---
# Checkout form

Body text with a colon: not metadata.
`

	meta, err := Extract(content, "organisms/checkout-form.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	scalars := map[string]string{
		"id":          "o-checkout-form",
		"name":        "Checkout form",
		"version":     "1.0",
		"layer":       "L3",
		"category":    "commerce",
		"description": "Address and payment capture",
	}
	for field, want := range scalars {
		got, ok := meta.String(field)
		if !ok {
			t.Errorf("Expected %s to be a string", field)
			continue
		}
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	tags := meta.Strings("tags")
	if strings.Join(tags, ",") != "forms,checkout,payments" {
		t.Errorf("Expected tags [forms checkout payments], got %v", tags)
	}

	composes := meta.Strings("composes")
	if len(composes) != 2 || composes[0] != "../molecules/address-fields.md" || composes[1] != "../atoms/button.md" {
		t.Errorf("Unexpected composes: %v", composes)
	}

	if meta.Has("# Checkout form") {
		t.Error("Body must not be parsed as metadata")
	}
}

// TestExtract_EmptyValueIsEmptyList tests that "key:" with no value opens an empty list
func TestExtract_EmptyValueIsEmptyList(t *testing.T) {
	content := "---\ncomposes:\ntags:\n---\n"

	meta, err := Extract(content, "atoms/a.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, field := range []string{"composes", "tags"} {
		v, ok := meta[field]
		if !ok {
			t.Fatalf("Expected %s to be declared", field)
		}
		if v.Kind() != KindList || !v.IsEmpty() {
			t.Errorf("Expected %s to be an empty list, got %s %q", field, v.Kind(), v.Text())
		}
	}
}

// TestExtract_NestedMapping tests indented key/value lines under a top-level key
func TestExtract_NestedMapping(t *testing.T) {
	content := `---
id: m-search
owner:
  team: design-system
  contact: ds@example.com
---
`

	meta, err := Extract(content, "molecules/search.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	owner := meta["owner"]
	if owner.Kind() != KindMap {
		t.Fatalf("Expected owner to be a map, got %s", owner.Kind())
	}
	want := "{team: design-system, contact: ds@example.com}"
	if got := owner.Text(); got != want {
		t.Errorf("owner = %q, want %q", got, want)
	}
}

// TestExtract_CommentsAndBlankLines tests that comments and blank lines are ignored
func TestExtract_CommentsAndBlankLines(t *testing.T) {
	content := "---\n# identity\nid: a-button\n\n# composition\ncomposes: []\n---\n"

	meta, err := Extract(content, "atoms/button.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(meta) != 2 {
		t.Errorf("Expected 2 fields, got %d", len(meta))
	}
}

// TestExtract_NonStringListItems tests that structured list items survive decoding
func TestExtract_NonStringListItems(t *testing.T) {
	content := "---\ncomposes:\n  - ../atoms/a.md\n  - {path: ../atoms/b.md}\n  - [nested]\n---\n"

	meta, err := Extract(content, "molecules/m.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items := meta["composes"].Items()
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[1].Kind() != KindMap || items[2].Kind() != KindList {
		t.Errorf("Expected map and list items, got %s and %s", items[1].Kind(), items[2].Kind())
	}
	if got := meta.Strings("composes"); len(got) != 1 {
		t.Errorf("Expected one string item, got %v", got)
	}
}

// TestExtract_FieldOrderIrrelevant tests that fields may arrive in any order
func TestExtract_FieldOrderIrrelevant(t *testing.T) {
	a, err := Extract("---\nid: a-x\ntags: [b, a]\n---\n", "a.md")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Extract("---\ntags: [b, a]\nid: a-x\n---\n", "a.md")
	if err != nil {
		t.Fatal(err)
	}
	if a.Strings("tags")[0] != "b" || b.Strings("tags")[0] != "b" {
		t.Error("List order must be preserved")
	}
	idA, _ := a.String("id")
	idB, _ := b.String("id")
	if idA != idB {
		t.Errorf("Expected same id, got %q and %q", idA, idB)
	}
}

// TestExtract_CRLF tests Windows line endings
func TestExtract_CRLF(t *testing.T) {
	content := "---\r\nid: a-x\r\nname: X\r\n---\r\nbody\r\n"

	meta, err := Extract(content, "a.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if id, _ := meta.String("id"); id != "a-x" {
		t.Errorf("id = %q, want a-x", id)
	}
}

// TestExtract_EmptyBlock tests a header with no fields
func TestExtract_EmptyBlock(t *testing.T) {
	meta, err := Extract("---\n---\nbody\n", "a.md")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(meta) != 0 {
		t.Errorf("Expected no fields, got %d", len(meta))
	}
}

// TestExtract_MissingBlock tests documents without an opening marker
func TestExtract_MissingBlock(t *testing.T) {
	tests := map[string]string{
		"no header":         "# Title\n\nid: a-x\n",
		"empty file":        "",
		"leading blank":     "\n---\nid: a-x\n---\n",
		"marker not at top": "intro\n---\nid: a-x\n---\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(content, "a.md")
			if !errors.Is(err, ErrMissingMetadataBlock) {
				t.Errorf("Expected ErrMissingMetadataBlock, got: %v", err)
			}
			var metaErr *MetadataError
			if !errors.As(err, &metaErr) {
				t.Fatalf("Expected MetadataError, got: %T", err)
			}
			if metaErr.FilePath != "a.md" {
				t.Errorf("FilePath = %q, want a.md", metaErr.FilePath)
			}
		})
	}
}

// TestExtract_UnterminatedBlock tests documents whose header is never closed
func TestExtract_UnterminatedBlock(t *testing.T) {
	for _, content := range []string{"---", "---\n", "---\nid: a-x\nname: X\n"} {
		_, err := Extract(content, "a.md")
		if !errors.Is(err, ErrUnterminatedMetadataBlock) {
			t.Errorf("Extract(%q): expected ErrUnterminatedMetadataBlock, got: %v", content, err)
		}
	}
}

// TestExtract_Malformed tests YAML that cannot be decoded into fields
func TestExtract_Malformed(t *testing.T) {
	tests := map[string]string{
		"bad syntax":     "---\nid: a-x\ntags: [unclosed\n---\n",
		"top-level list": "---\n- a\n- b\n---\n",
		"top-level text": "---\njust text\n---\n",
		"duplicate key":  "---\nid: a-x\nid: a-y\n---\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(content, "a.md")
			if !errors.Is(err, ErrMalformedMetadata) {
				t.Errorf("Expected ErrMalformedMetadata, got: %v", err)
			}
		})
	}
}

// TestExtract_OversizedBlock tests the size limit
func TestExtract_OversizedBlock(t *testing.T) {
	content := "---\ndescription: " + strings.Repeat("x", MaxMetadataSize) + "\n---\n"

	_, err := Extract(content, "a.md")
	if !errors.Is(err, ErrMalformedMetadata) {
		t.Fatalf("Expected ErrMalformedMetadata, got: %v", err)
	}
	if !strings.Contains(err.Error(), "maximum size") {
		t.Errorf("Expected size message, got: %v", err)
	}
}

// TestExtract_RecursiveAlias tests anchors that contain an alias to themselves
func TestExtract_RecursiveAlias(t *testing.T) {
	tests := map[string]string{
		"list":    "---\ncomposes: &x [*x]\n---\n",
		"mapping": "---\nmeta: &m\n  inner: *m\n---\n",
		"nested":  "---\ncomposes: &x [[a, [*x]]]\n---\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Extract(content, "a.md")
			if !errors.Is(err, ErrMalformedMetadata) {
				t.Fatalf("Expected ErrMalformedMetadata, got: %v", err)
			}
			if !strings.Contains(err.Error(), "refers to itself") {
				t.Errorf("Expected recursion message, got: %v", err)
			}
		})
	}
}

// TestExtract_AliasReuse tests that a non-recursive alias expands to its anchor value
func TestExtract_AliasReuse(t *testing.T) {
	content := "---\nid: &ident a-button\nname: *ident\ncomposes: &refs [../primitives/color.md]\ntags: *refs\n---\n"

	meta, err := Extract(content, "a.md")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got, _ := meta.String("name"); got != "a-button" {
		t.Errorf("name = %q, want %q", got, "a-button")
	}
	if got := meta.Strings("tags"); len(got) != 1 || got[0] != "../primitives/color.md" {
		t.Errorf("tags = %v, want [../primitives/color.md]", got)
	}
}

// TestExtract_AliasExpansionLimit tests that nested aliases cannot multiply without bound
func TestExtract_AliasExpansionLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("---\nl0: &l0 [x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 9; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	b.WriteString("---\n")

	_, err := Extract(b.String(), "a.md")
	if !errors.Is(err, ErrMalformedMetadata) {
		t.Fatalf("Expected ErrMalformedMetadata, got: %v", err)
	}
	if !strings.Contains(err.Error(), "expands to more than") {
		t.Errorf("Expected expansion message, got: %v", err)
	}
}

// TestMetadataError_Format tests error rendering with line and hint
func TestMetadataError_Format(t *testing.T) {
	err := &MetadataError{
		Err:      ErrMalformedMetadata,
		FilePath: "atoms/a.md",
		Line:     3,
		Field:    "id",
		Message:  "field declared more than once",
		Hint:     "Merge them.",
	}

	want := "metadata error in atoms/a.md (line 3) [field: id]: field declared more than once\n\nHint: Merge them."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestValue_Text tests message rendering of each variant
func TestValue_Text(t *testing.T) {
	v := MapValue([]string{"a", "b"}, map[string]Value{
		"a": StringValue("x"),
		"b": StringList("y", "z"),
	})
	if got := v.Text(); got != "{a: x, b: [y, z]}" {
		t.Errorf("Text() = %q", got)
	}
	if (Value{}).Kind().String() != "invalid" || !(Value{}).IsEmpty() {
		t.Error("zero Value must be invalid and empty")
	}
	if got := StringValue("solo").Strings(); len(got) != 1 || got[0] != "solo" {
		t.Errorf("Strings() of a string = %v", got)
	}
}
