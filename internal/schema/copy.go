package schema

import "slices"

// DeepCopy returns an independent copy of the subtree rooted at s.
func (s *Schema) DeepCopy() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, child := range s.Properties {
			out.Properties[name] = child.DeepCopy()
		}
	}
	out.Items = s.Items.DeepCopy()
	out.Required = slices.Clone(s.Required)
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = &SchemaOrBool{
			Allows: s.AdditionalProperties.Allows,
			Schema: s.AdditionalProperties.Schema.DeepCopy(),
		}
	}
	out.Enum = copyValues(s.Enum)
	out.OneOf = copySchemas(s.OneOf)
	out.AnyOf = copySchemas(s.AnyOf)
	out.AllOf = copySchemas(s.AllOf)
	out.Default = copyValue(s.Default)
	if s.Extra != nil {
		out.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = copyValue(v)
		}
	}
	return &out
}

func copySchemas(in []*Schema) []*Schema {
	if in == nil {
		return nil
	}
	out := make([]*Schema, len(in))
	for i, s := range in {
		out[i] = s.DeepCopy()
	}
	return out
}

func copyValues(in []any) []any {
	if in == nil {
		return nil
	}
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, item := range typed {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		return copyValues(typed)
	default:
		return typed
	}
}
