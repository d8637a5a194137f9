package form

import (
	"fmt"
	"strings"
)

// Diagnostic codes.
const (
	CodeInvalidPath       = "invalid-path"
	CodeUnresolvedSegment = "unresolved-segment"
	// CodeFormKeyCollision marks a path whose root-level form field is
	// already taken by another path.
	CodeFormKeyCollision = "form-key-collision"
)

// Diagnostic reports a requested path that was skipped.
type Diagnostic struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Segment string `json:"segment,omitempty"`
	Message string `json:"message"`
	// Suggestions are sibling property names close to Segment.
	Suggestions []string `json:"suggestions,omitempty"`
}

// String returns a one-line description.
func (d Diagnostic) String() string {
	msg := fmt.Sprintf("[%s] %s: %s", d.Code, d.Path, d.Message)
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}
	return msg
}
