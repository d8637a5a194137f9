package schema

// Kind classifies a schema node by the shape of values it describes.
type Kind int

const (
	// KindScalar is a string, number, integer, boolean or untyped leaf.
	KindScalar Kind = iota
	// KindObject is an object with a fixed set of properties.
	KindObject
	// KindMap is an object with arbitrary string keys sharing one value
	// schema (additionalProperties), e.g. labels or annotations.
	KindMap
	// KindArray is an array; its element schema is in Items.
	KindArray
	// KindUnion is a oneOf/anyOf alternative between schemas.
	KindUnion
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// Kind computes the node's shape.
func (s *Schema) Kind() Kind {
	switch {
	case s == nil:
		return KindScalar
	case s.Type == TypeArray || s.Items != nil:
		return KindArray
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return KindUnion
	case s.AdditionalSchema() != nil && len(s.Properties) == 0 && (s.Type == TypeObject || s.Type == ""):
		return KindMap
	case s.Type == TypeObject || len(s.Properties) > 0:
		return KindObject
	default:
		return KindScalar
	}
}

// IsQuantity reports whether the node models a Kubernetes quantity: a value
// that is either a string or a number. Both the oneOf/anyOf encoding and the
// x-kubernetes-int-or-string marker are recognized.
func (s *Schema) IsQuantity() bool {
	if s == nil {
		return false
	}
	if s.IntOrString {
		return true
	}
	branches := s.OneOf
	if len(branches) == 0 {
		branches = s.AnyOf
	}
	if len(branches) != 2 {
		return false
	}
	var hasString, hasNumber bool
	for _, b := range branches {
		if b == nil {
			return false
		}
		switch b.Type {
		case TypeString:
			hasString = true
		case TypeNumber, TypeInteger:
			hasNumber = true
		}
	}
	return hasString && hasNumber
}

// FieldKind names the form field a node is rendered with.
func (s *Schema) FieldKind() string {
	switch s.Kind() {
	case KindArray:
		return "ArrayField"
	case KindObject, KindMap:
		return "ObjectField"
	}
	switch s.Type {
	case TypeNumber, TypeInteger:
		return "NumberField"
	case TypeBoolean:
		return "BooleanField"
	default:
		return "StringField"
	}
}
