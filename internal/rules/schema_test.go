package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/strata/internal/layers"
	"github.com/vvka-141/strata/internal/metadata"
	"github.com/vvka-141/strata/pkg/strata"
)

func mustLayer(t *testing.T, name string) layers.Layer {
	t.Helper()
	l, ok := layers.Default().Lookup(name)
	require.True(t, ok, "unknown layer %s", name)
	return l
}

func validMeta(id, layerToken string) metadata.Metadata {
	return metadata.Metadata{
		FieldID:          metadata.StringValue(id),
		FieldName:        metadata.StringValue("Example"),
		FieldVersion:     metadata.StringValue("1.0.0"),
		FieldLayer:       metadata.StringValue(layerToken),
		FieldCategory:    metadata.StringValue("ui"),
		FieldDescription: metadata.StringValue("An example document"),
		FieldTags:        metadata.StringList("a", "b"),
	}
}

func kinds(violations []strata.Violation) []strata.ViolationKind {
	out := make([]strata.ViolationKind, len(violations))
	for i, v := range violations {
		out[i] = v.Kind
	}
	return out
}

func TestCheckSchema_Valid(t *testing.T) {
	got := CheckSchema(validMeta("m-search", "L2"), "molecules/search.md", mustLayer(t, "molecules"))
	assert.Empty(t, got)
}

func TestCheckSchema_AllMissingFieldsReported(t *testing.T) {
	got := CheckSchema(metadata.Metadata{}, "atoms/empty.md", mustLayer(t, "atoms"))

	require.Len(t, got, len(RequiredFields))
	for i, field := range RequiredFields {
		assert.Equal(t, strata.KindMissingField, got[i].Kind)
		assert.Contains(t, got[i].Message, `"`+field+`"`)
		assert.Equal(t, "atoms/empty.md", got[i].Path)
	}
}

func TestCheckSchema_SomeMissing(t *testing.T) {
	meta := validMeta("a-button", "L1")
	delete(meta, FieldVersion)
	delete(meta, FieldTags)

	got := CheckSchema(meta, "atoms/button.md", mustLayer(t, "atoms"))
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, `"version"`)
	assert.Contains(t, got[1].Message, `"tags"`)
}

func TestCheckSchema_EmptyValueCountsAsPresent(t *testing.T) {
	meta := validMeta("a-button", "L1")
	meta[FieldTags] = metadata.ListValue()

	assert.Empty(t, CheckSchema(meta, "atoms/button.md", mustLayer(t, "atoms")))
}

func TestCheckSchema_PrefixMismatch(t *testing.T) {
	got := CheckSchema(validMeta("x-foo", "L0"), "primitives/foo.md", mustLayer(t, "primitives"))

	require.Len(t, got, 1)
	assert.Equal(t, strata.KindPrefixMismatch, got[0].Kind)
	assert.Contains(t, got[0].Message, `prefix "x-"`)
	assert.Contains(t, got[0].Message, `expected "p-"`)
}

// A prefix mismatch is reported exactly once whatever else is wrong.
func TestCheckSchema_PrefixMismatchIndependentOfOtherFields(t *testing.T) {
	cases := map[string]metadata.Metadata{
		"only id":         {FieldID: metadata.StringValue("x-foo")},
		"wrong layer":     validMeta("x-foo", "L5"),
		"id without dash": validMeta("foo", "L0"),
		"all valid":       validMeta("x-foo", "L0"),
	}

	for name, meta := range cases {
		t.Run(name, func(t *testing.T) {
			got := CheckSchema(meta, "primitives/foo.md", mustLayer(t, "primitives"))
			n := 0
			for _, v := range got {
				if v.Kind == strata.KindPrefixMismatch {
					n++
				}
			}
			assert.Equal(t, 1, n)
		})
	}
}

func TestCheckSchema_PrefixOfSiblingLayer(t *testing.T) {
	// "pt-" belongs to patterns; primitives expects "p-".
	got := CheckSchema(validMeta("pt-grid", "L0"), "primitives/grid.md", mustLayer(t, "primitives"))
	require.Len(t, got, 1)
	assert.Equal(t, strata.KindPrefixMismatch, got[0].Kind)
	assert.Contains(t, got[0].Message, `prefix "pt-"`)
}

func TestCheckSchema_LayerFieldMismatch(t *testing.T) {
	got := CheckSchema(validMeta("o-header", "L2"), "organisms/header.md", mustLayer(t, "organisms"))

	require.Len(t, got, 1)
	assert.Equal(t, strata.KindLayerFieldMismatch, got[0].Kind)
	assert.Contains(t, got[0].Message, `"L2"`)
	assert.Contains(t, got[0].Message, `"L3"`)
}

func TestCheckSchema_NonStringFields(t *testing.T) {
	meta := validMeta("o-header", "L3")
	meta[FieldID] = metadata.StringList("o-header")
	meta[FieldLayer] = metadata.StringList("L3")

	got := CheckSchema(meta, "organisms/header.md", mustLayer(t, "organisms"))
	assert.Equal(t, []strata.ViolationKind{strata.KindPrefixMismatch, strata.KindLayerFieldMismatch}, kinds(got))
}

func TestCheckSchema_EveryLayerToken(t *testing.T) {
	for _, l := range layers.Default().Layers() {
		meta := validMeta(l.Prefix+"thing", l.Token())
		assert.Empty(t, CheckSchema(meta, l.Name+"/thing.md", l), l.Name)
	}
}
