package metadata

import "strings"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindString Kind = iota + 1
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is one decoded metadata value: a string, an ordered list of values,
// or a nested mapping. The zero Value is invalid.
type Value struct {
	kind   Kind
	str    string
	items  []Value
	fields map[string]Value
	keys   []string
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ListValue returns a list Value holding items in order.
func ListValue(items ...Value) Value {
	return Value{kind: KindList, items: items}
}

// StringList returns a list Value of string items.
func StringList(items ...string) Value {
	values := make([]Value, len(items))
	for i, s := range items {
		values[i] = StringValue(s)
	}
	return ListValue(values...)
}

// MapValue returns a mapping Value. keys fixes the iteration order and must
// list every key of fields.
func MapValue(keys []string, fields map[string]Value) Value {
	return Value{kind: KindMap, keys: keys, fields: fields}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string and true when v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Items returns the list items, or nil when v is not a list.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.items
}

// Strings returns the string items of a list in order, skipping non-string
// items. A string Value yields a one-element slice.
func (v Value) Strings() []string {
	switch v.kind {
	case KindString:
		return []string{v.str}
	case KindList:
		out := make([]string, 0, len(v.items))
		for _, item := range v.items {
			if s, ok := item.AsString(); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// IsEmpty reports whether v is an empty list, empty mapping or empty string.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindList:
		return len(v.items) == 0
	case KindMap:
		return len(v.fields) == 0
	default:
		return true
	}
}

// Text renders v for messages: strings as-is, lists as "[a, b]".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			parts[i] = item.Text()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.keys))
		for i, k := range v.keys {
			parts[i] = k + ": " + v.fields[k].Text()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// Metadata maps top-level field names to their values.
type Metadata map[string]Value

// Has reports whether the field is declared, whatever its value.
func (m Metadata) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// String returns a field's value when it is a string.
func (m Metadata) String(name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Strings returns the string items of a list field (or a lone string).
func (m Metadata) Strings(name string) []string {
	v, ok := m[name]
	if !ok {
		return nil
	}
	return v.Strings()
}
