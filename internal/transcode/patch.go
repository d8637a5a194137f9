package transcode

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	utiljson "k8s.io/apimachinery/pkg/util/json"

	"github.com/renato0307/kform/internal/form"
)

// MergePatch returns the JSON merge patch (RFC 7386) that turns original
// into the object described by formData. The result can be applied with
// `kubectl patch --type merge`.
func MergePatch(original, formData any, m *form.Mapping) ([]byte, error) {
	before, err := Normalize(original)
	if err != nil {
		return nil, err
	}
	after, err := ToSourceData(formData, m)
	if err != nil {
		return nil, err
	}

	beforeJSON, err := utiljson.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original object: %w", err)
	}
	afterJSON, err := utiljson.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("failed to encode edited object: %w", err)
	}

	patch, err := jsonpatch.CreateMergePatch(beforeJSON, afterJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge patch: %w", err)
	}
	return patch, nil
}

// ApplyMergePatch applies a merge patch to obj and returns the result.
func ApplyMergePatch(obj any, patch []byte) (map[string]any, error) {
	normalized, err := Normalize(obj)
	if err != nil {
		return nil, err
	}
	doc, err := utiljson.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to encode object: %w", err)
	}
	patched, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to apply merge patch: %w", err)
	}
	return decode(patched)
}
