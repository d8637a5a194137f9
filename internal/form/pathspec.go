package form

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/kform/internal/fieldpath"
)

// PathOptions customizes how a requested path is rendered.
type PathOptions struct {
	// Title replaces the schema title and makes the label visible.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Required overrides the required flag inherited from the source schema.
	Required *bool `json:"required,omitempty" yaml:"required,omitempty"`
	// ShowDescription set to false drops the description from the node.
	ShowDescription *bool `json:"showDescription,omitempty" yaml:"showDescription,omitempty"`
	// UIHints are merged into the node's hints; caller values win.
	UIHints map[string]any `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// PathEntry is one requested path with its options.
type PathEntry struct {
	Path    fieldpath.Path
	Options PathOptions
}

// PathSpec is the ordered list of paths a form is built from.
type PathSpec struct {
	entries []PathEntry
}

// NewPathSpec returns an empty spec.
func NewPathSpec() *PathSpec {
	return &PathSpec{}
}

// PathsOf builds a spec from plain paths without options.
func PathsOf(paths ...string) *PathSpec {
	spec := NewPathSpec()
	for _, p := range paths {
		spec.Add(p, PathOptions{})
	}
	return spec
}

// Add appends a path and returns s for chaining.
func (s *PathSpec) Add(path string, opts PathOptions) *PathSpec {
	s.entries = append(s.entries, PathEntry{Path: fieldpath.Parse(path), Options: opts})
	return s
}

// Entries returns the paths in the order they were added.
func (s *PathSpec) Entries() []PathEntry {
	if s == nil {
		return nil
	}
	return s.entries
}

// Len returns the number of requested paths.
func (s *PathSpec) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Paths returns the requested paths in dot notation.
func (s *PathSpec) Paths() []string {
	out := make([]string, 0, s.Len())
	for _, e := range s.Entries() {
		out = append(out, e.Path.String())
	}
	return out
}

// UnmarshalYAML accepts a sequence of paths or an ordered mapping from path
// to options. Mapping order is kept, which is why this decodes nodes rather
// than a Go map.
func (s *PathSpec) UnmarshalYAML(node *yaml.Node) error {
	s.entries = nil

	switch node.Kind {
	case yaml.SequenceNode:
		for _, item := range node.Content {
			var path string
			if err := item.Decode(&path); err != nil {
				return fmt.Errorf("line %d: field path must be a string: %w", item.Line, err)
			}
			s.Add(path, PathOptions{})
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			var opts PathOptions
			if valueNode.Tag != "!!null" {
				if err := valueNode.Decode(&opts); err != nil {
					return fmt.Errorf("line %d: invalid options for %q: %w", valueNode.Line, keyNode.Value, err)
				}
			}
			s.Add(keyNode.Value, opts)
		}
	default:
		return fmt.Errorf("line %d: fields must be a list or a mapping", node.Line)
	}
	return nil
}
