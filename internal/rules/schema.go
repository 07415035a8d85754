package rules

import (
	"strings"

	"github.com/vvka-141/strata/internal/layers"
	"github.com/vvka-141/strata/internal/metadata"
	"github.com/vvka-141/strata/pkg/strata"
)

// Metadata field names checked by CheckSchema.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldVersion     = "version"
	FieldLayer       = "layer"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldTags        = "tags"
)

// RequiredFields lists the fields every document must declare, in the order
// missing ones are reported.
var RequiredFields = []string{
	FieldID,
	FieldName,
	FieldVersion,
	FieldLayer,
	FieldCategory,
	FieldDescription,
	FieldTags,
}

// CheckSchema verifies that meta declares every required field, that the
// identifier carries the layer's prefix and that the layer field holds the
// layer's level token. Version, category and tags are not interpreted.
func CheckSchema(meta metadata.Metadata, filePath string, layer layers.Layer) []strata.Violation {
	var violations []strata.Violation

	for _, field := range RequiredFields {
		if !meta.Has(field) {
			violations = append(violations, strata.NewViolation(filePath, strata.KindMissingField,
				"missing required field %q", field))
		}
	}

	if v, ok := meta[FieldID]; ok {
		id := v.Text()
		if s, isString := v.AsString(); !isString || !strings.HasPrefix(s, layer.Prefix) {
			violations = append(violations, strata.NewViolation(filePath, strata.KindPrefixMismatch,
				"id %q has prefix %q, expected %q for layer %s", id, idPrefix(id), layer.Prefix, layer.Name))
		}
	}

	if v, ok := meta[FieldLayer]; ok {
		if s, isString := v.AsString(); !isString || s != layer.Token() {
			violations = append(violations, strata.NewViolation(filePath, strata.KindLayerFieldMismatch,
				"layer field %q does not match %q (%s is level %d)", v.Text(), layer.Token(), layer.Name, layer.Level))
		}
	}

	return violations
}

// idPrefix returns the identifier up to and including its first "-".
func idPrefix(id string) string {
	if i := strings.Index(id, "-"); i >= 0 {
		return id[:i+1]
	}
	return id
}
