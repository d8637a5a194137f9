// Package fieldpath addresses values inside unstructured objects with
// dot-separated paths such as "metadata.annotations".
//
// Paths are split once at the boundary and carried around as a Path value.
// The mutating helpers refuse to walk through the segments "__proto__",
// "constructor" and "prototype"; such calls are silent no-ops so that form
// definitions coming from untrusted configuration can never smuggle keys
// through into objects that end up in a browser.
package fieldpath

import (
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
)

// Separator splits a path into segments.
const Separator = "."

// FormKeySeparator joins segments of a hoisted form field key.
const FormKeySeparator = "_"

var forbiddenSegments = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// Path is an ordered list of object property names.
type Path []string

// Parse splits a dot-separated path. Empty input yields an empty Path.
func Parse(s string) Path {
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, Separator))
}

// String joins the segments back into dot notation.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// FormKey returns the flat key a hoisted map field is stored under,
// e.g. "metadata.annotations" -> "metadata_annotations".
func (p Path) FormKey() string {
	return strings.Join(p, FormKeySeparator)
}

// Last returns the final segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// HasPrefix reports whether prefix is a (not necessarily strict) prefix of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// IsValid reports whether the path is non-empty, has no empty segments and
// contains none of the forbidden segments.
func (p Path) IsValid() bool {
	if len(p) == 0 {
		return false
	}
	for _, seg := range p {
		if seg == "" || IsForbidden(seg) {
			return false
		}
	}
	return true
}

// IsForbidden reports whether a single segment is rejected by the guard.
func IsForbidden(segment string) bool {
	_, ok := forbiddenSegments[segment]
	return ok
}

// Get returns the value at path. Missing values, paths through non-objects
// and guarded paths all report found == false.
func Get(obj map[string]any, p Path) (any, bool) {
	if obj == nil || !p.IsValid() {
		return nil, false
	}
	val, found, err := unstructured.NestedFieldNoCopy(obj, p...)
	if err != nil || !found {
		return nil, false
	}
	return val, true
}

// GetMap returns the value at path when it is a JSON object.
func GetMap(obj map[string]any, p Path) (map[string]any, bool) {
	val, found := Get(obj, p)
	if !found {
		return nil, false
	}
	m, ok := val.(map[string]any)
	return m, ok
}

// Set writes a copy of value at path, creating intermediate objects as
// needed. Go values are stored in their JSON form, so an int becomes int64
// and a []string becomes []any. It returns false without touching obj when
// the path is guarded, an existing intermediate value is not an object, or
// value has no JSON encoding.
func Set(obj map[string]any, p Path, value any) bool {
	if obj == nil || !p.IsValid() {
		return false
	}
	converted, ok := jsonValue(value)
	if !ok {
		return false
	}
	return unstructured.SetNestedField(obj, converted, p...) == nil
}

// jsonValue converts v to the types unstructured content holds.
func jsonValue(v any) (any, bool) {
	data, err := utiljson.Marshal(v)
	if err != nil {
		return nil, false
	}
	var out any
	if err := utiljson.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

// Delete removes the value at path. It returns false when the path is
// guarded or nothing was there to remove.
func Delete(obj map[string]any, p Path) bool {
	if obj == nil || !p.IsValid() {
		return false
	}
	if _, found := Get(obj, p); !found {
		return false
	}
	unstructured.RemoveNestedField(obj, p...)
	return true
}

// Merge deep-merges src into dst. Nested objects are merged key by key;
// any other value in src replaces the one in dst. Guarded keys are skipped.
func Merge(dst, src map[string]any) {
	if dst == nil {
		return
	}
	for k, v := range src {
		if IsForbidden(k) {
			continue
		}
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			Merge(dstMap, srcMap)
			continue
		}
		dst[k] = copyValue(v)
	}
}

// copyValue clones nested objects and arrays and shares scalars. Unlike
// runtime.DeepCopyJSONValue it accepts any scalar type, since hints decoded
// by yaml.v3 carry plain ints.
func copyValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, item := range typed {
			if IsForbidden(k) {
				continue
			}
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = copyValue(item)
		}
		return out
	default:
		return typed
	}
}
