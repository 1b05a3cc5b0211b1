package vitae

import (
	"fmt"
	"strings"
)

// WarningCode identifies a kind of non-fatal issue found while parsing.
type WarningCode string

const (
	// WarnDroppedFragments means fragments with unusable geometry were skipped
	WarnDroppedFragments WarningCode = "dropped_fragments"

	// WarnCharacterLevel means the document stores text one glyph at a time,
	// which makes line and word reconstruction less reliable
	WarnCharacterLevel WarningCode = "character_level"

	// WarnNoSections means no section titles were recognised, so every line
	// was treated as profile text
	WarnNoSections WarningCode = "no_sections"

	// WarnEmbeddedResume means an embedded resume was present but could not
	// be decoded, so the text was parsed instead
	WarnEmbeddedResume WarningCode = "embedded_resume_invalid"

	// WarnMultiColumn means the layout looks like several columns, which
	// the line grouper reads across rather than down
	WarnMultiColumn WarningCode = "multi_column"
)

// Warning is a non-fatal issue encountered during parsing.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Message string      `json:"message" yaml:"message"`
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single human-readable line.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
