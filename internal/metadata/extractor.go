package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MaxMetadataSize bounds the metadata block in bytes.
	MaxMetadataSize = 16 * 1024

	// BlockMarker opens and closes the metadata block.
	BlockMarker = "---"

	// MaxValueNodes bounds the number of values built from one block,
	// counting every alias expansion.
	MaxValueNodes = 10000
)

// Extract decodes the metadata block at the start of a document.
//
// Algorithm:
//  1. The first line must be the "---" marker (byte offset 0)
//  2. The block ends at the next "---" line
//  3. The block is decoded as YAML into a node tree
//  4. The top-level mapping is converted to typed Values
//
// Error cases (all *MetadataError):
//   - No opening marker → ErrMissingMetadataBlock
//   - No closing marker → ErrUnterminatedMetadataBlock
//   - Oversized block, invalid YAML, non-mapping top level or duplicate
//     keys → ErrMalformedMetadata
func Extract(content string, filePath string) (Metadata, error) {
	block, err := isolateBlock(content, filePath)
	if err != nil {
		return nil, err
	}

	if len(block) > MaxMetadataSize {
		return nil, &MetadataError{
			Err:      ErrMalformedMetadata,
			FilePath: filePath,
			Message:  fmt.Sprintf("metadata block exceeds maximum size of %d bytes (got %d bytes)", MaxMetadataSize, len(block)),
			Hint:     "Keep the header to identity and composition fields; move prose into the document body.",
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, wrapYAMLError(err, filePath)
	}

	// An empty block decodes to a zero node: no fields declared.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Metadata{}, nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
			return Metadata{}, nil
		}
		return nil, &MetadataError{
			Err:      ErrMalformedMetadata,
			FilePath: filePath,
			Line:     top.Line + 1,
			Message:  "metadata block must be a mapping of field names to values",
			Hint:     "Write one \"key: value\" pair per line.",
		}
	}

	c := &converter{filePath: filePath, expanding: make(map[*yaml.Node]bool)}
	root, err := c.convert(top)
	if err != nil {
		return nil, err
	}

	meta := make(Metadata, len(root.keys))
	for _, k := range root.keys {
		meta[k] = root.fields[k]
	}
	return meta, nil
}

// isolateBlock returns the text between the opening and closing markers.
func isolateBlock(content, filePath string) (string, error) {
	first, rest, found := strings.Cut(content, "\n")
	if !isMarker(first) {
		return "", &MetadataError{
			Err:      ErrMissingMetadataBlock,
			FilePath: filePath,
			Message:  "document does not start with a \"---\" metadata block",
			Hint:     "Add a YAML header delimited by \"---\" lines at the very top of the file.",
		}
	}
	if !found {
		return "", unterminated(filePath)
	}

	offset := 0
	for offset <= len(rest) {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if isMarker(line) {
			return rest[:offset], nil
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return "", unterminated(filePath)
}

func unterminated(filePath string) error {
	return &MetadataError{
		Err:      ErrUnterminatedMetadataBlock,
		FilePath: filePath,
		Line:     1,
		Message:  "metadata block opened with \"---\" is never closed",
		Hint:     "End the header with a line containing only \"---\".",
	}
}

func isMarker(line string) bool {
	return strings.TrimRight(line, " \t\r") == BlockMarker
}

// converter maps yaml nodes onto the Value union. Aliases are expanded in
// place; an alias reached while its anchor is still being expanded is a
// cycle.
type converter struct {
	filePath  string
	expanding map[*yaml.Node]bool
	built     int
}

func (c *converter) convert(n *yaml.Node) (Value, error) {
	c.built++
	if c.built > MaxValueNodes {
		return Value{}, &MetadataError{
			Err:      ErrMalformedMetadata,
			FilePath: c.filePath,
			Line:     n.Line + 1,
			Message:  fmt.Sprintf("metadata expands to more than %d values", MaxValueNodes),
			Hint:     "Avoid nested YAML aliases; write the values out.",
		}
	}

	if n.Anchor != "" {
		c.expanding[n] = true
		defer delete(c.expanding, n)
	}

	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil || c.expanding[n.Alias] {
			return Value{}, &MetadataError{
				Err:      ErrMalformedMetadata,
				FilePath: c.filePath,
				Line:     n.Line + 1,
				Message:  fmt.Sprintf("alias *%s refers to itself", n.Value),
				Hint:     "Remove the recursive anchor.",
			}
		}
		return c.convert(n.Alias)

	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return ListValue(), nil
		}
		return StringValue(n.Value), nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := c.convert(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return ListValue(items...), nil

	case yaml.MappingNode:
		keys := make([]string, 0, len(n.Content)/2)
		fields := make(map[string]Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			key := keyNode.Value
			if _, dup := fields[key]; dup {
				return Value{}, &MetadataError{
					Err:      ErrMalformedMetadata,
					FilePath: c.filePath,
					Line:     keyNode.Line + 1,
					Field:    key,
					Message:  "field declared more than once",
					Hint:     "Merge the duplicate declarations into one field.",
				}
			}
			val, err := c.convert(valNode)
			if err != nil {
				return Value{}, err
			}
			keys = append(keys, key)
			fields[key] = val
		}
		return MapValue(keys, fields), nil

	default:
		return Value{}, &MetadataError{
			Err:      ErrMalformedMetadata,
			FilePath: c.filePath,
			Line:     n.Line + 1,
			Message:  "unsupported metadata value",
		}
	}
}
