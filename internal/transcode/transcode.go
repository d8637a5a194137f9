// Package transcode moves object data between its Kubernetes shape and the
// flattened shape edited by a projected form.
//
// Map fields listed in a form.Mapping live nested in the source object, e.g.
// metadata.annotations, and at the top of the form object as an array of
// {key, value} records under their form key, e.g. metadata_annotations.
// Entries whose data does not have the expected shape are left as found.
package transcode

import (
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	utiljson "k8s.io/apimachinery/pkg/util/json"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/kform/internal/fieldpath"
	"github.com/renato0307/kform/internal/form"
	"github.com/renato0307/kform/internal/logging"
)

// Record field names.
const (
	KeyField   = "key"
	ValueField = "value"
)

// ToFormData converts a source object to form data. Each mapped map field is
// replaced by a sorted array of records at its form key; a missing or null
// field becomes an empty array. The input is not modified.
func ToFormData(obj any, m *form.Mapping) (map[string]any, error) {
	out, err := Normalize(obj)
	if err != nil {
		return nil, err
	}

	for _, entry := range m.Entries() {
		path := fieldpath.Parse(entry.Source)
		if !path.IsValid() {
			continue
		}

		value, found := fieldpath.Get(out, path)
		switch typed := value.(type) {
		case nil:
			if found {
				fieldpath.Delete(out, path)
			}
			out[entry.FormKey] = []any{}
		case map[string]any:
			// a single-segment path shares its key with the form field
			fieldpath.Delete(out, path)
			out[entry.FormKey] = toRecords(typed)
		default:
			logging.Debug("Skipping mapped field that is not an object",
				"path", entry.Source, "type", fmt.Sprintf("%T", value))
		}
	}
	return out, nil
}

// ToSourceData converts form data back to a source object. Each record array
// is folded into an object at its nested path; later duplicate keys win.
// The input is not modified.
func ToSourceData(formData any, m *form.Mapping) (map[string]any, error) {
	out, err := Normalize(formData)
	if err != nil {
		return nil, err
	}

	for _, entry := range m.Entries() {
		path := fieldpath.Parse(entry.Source)
		raw, ok := out[entry.FormKey]
		if !ok || !path.IsValid() {
			continue
		}
		records, ok := raw.([]any)
		if !ok && raw != nil {
			logging.Debug("Skipping form field that is not an array",
				"formKey", entry.FormKey, "type", fmt.Sprintf("%T", raw))
			continue
		}

		delete(out, entry.FormKey)
		if !fieldpath.Set(out, path, fromRecords(records)) {
			logging.Debug("Skipping form field whose path cannot be written", "path", entry.Source)
			out[entry.FormKey] = raw
		}
	}
	return out, nil
}

// Normalize deep-copies obj into plain JSON values: maps, slices, strings,
// bools, int64 and float64. It accepts JSON or YAML documents as bytes,
// unstructured objects, typed runtime objects and anything encoding/json
// can marshal. A nil input becomes an empty object.
func Normalize(obj any) (map[string]any, error) {
	switch typed := obj.(type) {
	case nil:
		return map[string]any{}, nil
	case []byte:
		data, err := yaml.YAMLToJSON(typed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		return decode(data)
	case *unstructured.Unstructured:
		return roundTrip(typed.Object)
	case runtime.Object:
		converted, err := runtime.DefaultUnstructuredConverter.ToUnstructured(typed)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %T: %w", obj, err)
		}
		return roundTrip(converted)
	default:
		return roundTrip(obj)
	}
}

func roundTrip(obj any) (map[string]any, error) {
	data, err := utiljson.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := utiljson.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("expected an object: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func toRecords(m map[string]any) []any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	records := make([]any, 0, len(keys))
	for _, k := range keys {
		records = append(records, map[string]any{KeyField: k, ValueField: m[k]})
	}
	return records
}

// fromRecords skips records that are not objects or lack a string key.
func fromRecords(records []any) map[string]any {
	out := make(map[string]any, len(records))
	for _, r := range records {
		record, ok := r.(map[string]any)
		if !ok {
			continue
		}
		key, ok := record[KeyField].(string)
		if !ok || fieldpath.IsForbidden(key) {
			continue
		}
		out[key] = record[ValueField]
	}
	return out
}
