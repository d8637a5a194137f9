// Package schema models Kubernetes-style OpenAPI v3 schema nodes.
//
// The same Schema type is used for the source schemas read from OpenAPI
// documents or CRDs and for the reduced schemas produced by the form
// projector. Keys the model does not interpret are kept in Extra and written
// back out unchanged.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"sigs.k8s.io/yaml"
)

// JSON schema type names.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

// Schema is a single node of an OpenAPI v3 schema tree.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Title                string             `json:"title,omitempty"`
	Description          string             `json:"description,omitempty"`
	Format               string             `json:"format,omitempty"`
	Ref                  string             `json:"$ref,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *SchemaOrBool      `json:"additionalProperties,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	OneOf                []*Schema          `json:"oneOf,omitempty"`
	AnyOf                []*Schema          `json:"anyOf,omitempty"`
	AllOf                []*Schema          `json:"allOf,omitempty"`
	Default              any                `json:"default,omitempty"`
	IntOrString          bool               `json:"x-kubernetes-int-or-string,omitempty"`

	// Extra holds every key not modelled above, e.g. "pattern" or
	// "x-kubernetes-group-version-kind".
	Extra map[string]any `json:"-"`
}

// SchemaOrBool is the value of additionalProperties: either a boolean or a
// schema every extra key is validated against.
type SchemaOrBool struct {
	Allows bool
	Schema *Schema
}

// plain has Schema's fields without its methods, so encoding/json can be
// reused from inside MarshalJSON/UnmarshalJSON.
type plain Schema

var knownKeys = map[string]struct{}{
	"type": {}, "title": {}, "description": {}, "format": {}, "$ref": {},
	"properties": {}, "items": {}, "required": {}, "additionalProperties": {},
	"enum": {}, "oneOf": {}, "anyOf": {}, "allOf": {}, "default": {},
	"x-kubernetes-int-or-string": {},
}

// UnmarshalJSON decodes the modelled keys and collects the rest in Extra.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if _, known := knownKeys[key]; known {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return fmt.Errorf("failed to decode schema key %q: %w", key, err)
		}
		if p.Extra == nil {
			p.Extra = map[string]any{}
		}
		p.Extra[key] = decoded
	}
	*s = Schema(p)
	return nil
}

// MarshalJSON encodes the modelled keys followed by Extra.
func (s Schema) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(plain(s))
	if err != nil || len(s.Extra) == 0 {
		return data, err
	}
	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range s.Extra {
		if _, known := knownKeys[key]; known {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

// UnmarshalJSON accepts either a boolean or a schema object.
func (s *SchemaOrBool) UnmarshalJSON(data []byte) error {
	var allows bool
	if err := json.Unmarshal(data, &allows); err == nil {
		*s = SchemaOrBool{Allows: allows}
		return nil
	}
	var nested Schema
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}
	*s = SchemaOrBool{Allows: true, Schema: &nested}
	return nil
}

// MarshalJSON writes the schema when present, the boolean otherwise.
func (s SchemaOrBool) MarshalJSON() ([]byte, error) {
	if s.Schema != nil {
		return json.Marshal(s.Schema)
	}
	return json.Marshal(s.Allows)
}

// Load decodes a schema from JSON or YAML.
func Load(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return &s, nil
}

// LoadFile reads and decodes a schema file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return Load(data)
}

// NewObject returns an empty object node.
func NewObject() *Schema {
	return &Schema{Type: TypeObject, Properties: map[string]*Schema{}}
}

// NewArrayOfObjects returns an array node whose items are an empty object.
func NewArrayOfObjects() *Schema {
	return &Schema{Type: TypeArray, Items: NewObject()}
}

// Property returns the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil || s.Properties == nil {
		return nil
	}
	return s.Properties[name]
}

// SetProperty adds or replaces a property, allocating the map if needed.
func (s *Schema) SetProperty(name string, child *Schema) {
	if s.Properties == nil {
		s.Properties = map[string]*Schema{}
	}
	s.Properties[name] = child
}

// PropertyNames returns the property names in sorted order.
func (s *Schema) PropertyNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRequired reports whether name is listed in required.
func (s *Schema) IsRequired(name string) bool {
	return s != nil && slices.Contains(s.Required, name)
}

// SetRequired adds or removes name from required.
func (s *Schema) SetRequired(name string, required bool) {
	idx := slices.Index(s.Required, name)
	switch {
	case required && idx < 0:
		s.Required = append(s.Required, name)
	case !required && idx >= 0:
		s.Required = slices.Delete(s.Required, idx, idx+1)
		if len(s.Required) == 0 {
			s.Required = nil
		}
	}
}

// AdditionalSchema returns the schema of additionalProperties, or nil.
func (s *Schema) AdditionalSchema() *Schema {
	if s == nil || s.AdditionalProperties == nil {
		return nil
	}
	return s.AdditionalProperties.Schema
}

// HasEnum reports whether the node restricts values to an enum.
func (s *Schema) HasEnum() bool {
	return s != nil && len(s.Enum) > 0
}
