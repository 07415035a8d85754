package metadata

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrMissingMetadataBlock means the document does not start with "---".
	ErrMissingMetadataBlock = errors.New("missing metadata block")

	// ErrUnterminatedMetadataBlock means no closing "---" line was found.
	ErrUnterminatedMetadataBlock = errors.New("unterminated metadata block")

	// ErrMalformedMetadata means the block could not be decoded into fields.
	ErrMalformedMetadata = errors.New("malformed metadata")
)

// MetadataError represents a structured error with context and helpful hints.
// It includes file path, optional line number, and an actionable suggestion.
// Err holds one of the package sentinels and is exposed through Unwrap.
type MetadataError struct {
	Err      error
	FilePath string // Path to the file with the error
	Line     int    // Line number in the file (0 if unknown)
	Field    string // Field name if applicable
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *MetadataError) Error() string {
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.FilePath, e.Line)
	}

	msg := fmt.Sprintf("metadata error in %s: %s", location, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("metadata error in %s [field: %s]: %s", location, e.Field, e.Message)
	}

	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}

	return msg
}

func (e *MetadataError) Unwrap() error { return e.Err }

// yamlLineRegex picks the line number out of yaml.v3 error messages.
var yamlLineRegex = regexp.MustCompile(`line (\d+): (.*)`)

// wrapYAMLError converts a yaml.v3 decode error to a MetadataError.
// Line numbers reported by yaml are relative to the block, which begins on
// the second line of the file.
func wrapYAMLError(err error, filePath string) error {
	me := &MetadataError{
		Err:      ErrMalformedMetadata,
		FilePath: filePath,
		Message:  err.Error(),
		Hint: "The metadata block must be a YAML mapping, e.g.\n" +
			"  ---\n" +
			"  id: a-button\n" +
			"  tags: [ui, input]\n" +
			"  ---",
	}
	if m := yamlLineRegex.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			me.Line = n + 1
			me.Message = m[2]
		}
	}
	return me
}
