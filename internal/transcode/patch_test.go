package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/kform/internal/form"
)

func TestMergePatch(t *testing.T) {
	mapping := form.MappingOf(map[string]string{"metadata.labels": "metadata_labels"})
	original := map[string]any{
		"metadata": map[string]any{
			"name":   "web",
			"labels": map[string]any{"app": "web", "tier": "frontend"},
		},
		"spec": map[string]any{"replicas": 1},
	}

	formData, err := ToFormData(original, mapping)
	require.NoError(t, err)

	formData["metadata_labels"] = []any{
		map[string]any{"key": "app", "value": "web"},
		map[string]any{"key": "env", "value": "prod"},
	}
	formData["spec"].(map[string]any)["replicas"] = 3

	patch, err := MergePatch(original, formData, mapping)
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "metadata": {"labels": {"env": "prod", "tier": null}},
	  "spec": {"replicas": 3}
	}`, string(patch))

	patched, err := ApplyMergePatch(original, patch)
	require.NoError(t, err)
	want, err := ToSourceData(formData, mapping)
	require.NoError(t, err)
	assert.Equal(t, want, patched)
}

func TestMergePatch_NoChanges(t *testing.T) {
	mapping := form.MappingOf(map[string]string{"metadata.labels": "metadata_labels"})
	original := map[string]any{
		"metadata": map[string]any{"labels": map[string]any{"app": "web"}},
	}

	formData, err := ToFormData(original, mapping)
	require.NoError(t, err)

	patch, err := MergePatch(original, formData, mapping)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(patch))
}
