package transcode

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/renato0307/kform/internal/form"
	"github.com/renato0307/kform/internal/openapi"
)

var annotationsMapping = form.MappingOf(map[string]string{
	"metadata.annotations": "metadata_annotations",
})

func TestToFormData(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		mapping *form.Mapping
		want    map[string]any
	}{
		{
			name: "hoists annotations",
			input: map[string]any{
				"metadata": map[string]any{"annotations": map[string]any{"a": "1", "b": "2"}},
			},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata": map[string]any{},
				"metadata_annotations": []any{
					map[string]any{"key": "a", "value": "1"},
					map[string]any{"key": "b", "value": "2"},
				},
			},
		},
		{
			name:    "missing map becomes empty array",
			input:   map[string]any{"metadata": map[string]any{"name": "web"}},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata":             map[string]any{"name": "web"},
				"metadata_annotations": []any{},
			},
		},
		{
			name:    "null map is removed",
			input:   map[string]any{"metadata": map[string]any{"annotations": nil}},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata":             map[string]any{},
				"metadata_annotations": []any{},
			},
		},
		{
			name:    "non-object is left as found",
			input:   map[string]any{"metadata": map[string]any{"annotations": "oops"}},
			mapping: annotationsMapping,
			want:    map[string]any{"metadata": map[string]any{"annotations": "oops"}},
		},
		{
			name:    "nil input",
			input:   nil,
			mapping: annotationsMapping,
			want:    map[string]any{"metadata_annotations": []any{}},
		},
		{
			name: "numbers are normalized",
			input: map[string]any{
				"spec": map[string]any{"limits": map[string]any{"cpu": 2, "memory": "1Gi"}},
			},
			mapping: form.MappingOf(map[string]string{"spec.limits": "spec_limits"}),
			want: map[string]any{
				"spec": map[string]any{},
				"spec_limits": []any{
					map[string]any{"key": "cpu", "value": int64(2)},
					map[string]any{"key": "memory", "value": "1Gi"},
				},
			},
		},
		{
			name:    "empty mapping is a deep copy",
			input:   map[string]any{"a": []any{"x"}},
			mapping: form.NewMapping(),
			want:    map[string]any{"a": []any{"x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFormData(tt.input, tt.mapping)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToFormData() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToSourceData(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		mapping *form.Mapping
		want    map[string]any
	}{
		{
			name: "folds records into nested object",
			input: map[string]any{
				"metadata_annotations": []any{map[string]any{"key": "x", "value": "y"}},
			},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata": map[string]any{"annotations": map[string]any{"x": "y"}},
			},
		},
		{
			name: "later duplicate keys win",
			input: map[string]any{
				"metadata_annotations": []any{
					map[string]any{"key": "x", "value": "1"},
					map[string]any{"key": "x", "value": "2"},
				},
			},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata": map[string]any{"annotations": map[string]any{"x": "2"}},
			},
		},
		{
			name: "bad records are skipped",
			input: map[string]any{
				"metadata_annotations": []any{
					"junk",
					map[string]any{"value": "no key"},
					map[string]any{"key": "__proto__", "value": "polluted"},
					map[string]any{"key": "ok", "value": "1"},
				},
			},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata": map[string]any{"annotations": map[string]any{"ok": "1"}},
			},
		},
		{
			name:    "non-array is left as found",
			input:   map[string]any{"metadata_annotations": "oops"},
			mapping: annotationsMapping,
			want:    map[string]any{"metadata_annotations": "oops"},
		},
		{
			name:    "absent form key is ignored",
			input:   map[string]any{"metadata": map[string]any{"name": "web"}},
			mapping: annotationsMapping,
			want:    map[string]any{"metadata": map[string]any{"name": "web"}},
		},
		{
			name: "unwritable path is left as found",
			input: map[string]any{
				"metadata":             "scalar",
				"metadata_annotations": []any{},
			},
			mapping: annotationsMapping,
			want: map[string]any{
				"metadata":             "scalar",
				"metadata_annotations": []any{},
			},
		},
		{
			name:    "single segment path",
			input:   map[string]any{"data": []any{map[string]any{"key": "a", "value": "b"}}},
			mapping: form.MappingOf(map[string]string{"data": "data"}),
			want:    map[string]any{"data": map[string]any{"a": "b"}},
		},
		{
			name:    "empty array writes empty object",
			input:   map[string]any{"metadata_annotations": []any{}},
			mapping: annotationsMapping,
			want:    map[string]any{"metadata": map[string]any{"annotations": map[string]any{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSourceData(tt.input, tt.mapping)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToSourceData() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	mapping := form.MappingOf(map[string]string{
		"metadata.labels":      "metadata_labels",
		"metadata.annotations": "metadata_annotations",
		"spec.selector":        "spec_selector",
	})
	source := map[string]any{
		"apiVersion": "v1",
		"kind":       "Service",
		"metadata": map[string]any{
			"name":        "web",
			"labels":      map[string]any{"app": "web", "tier": "frontend"},
			"annotations": map[string]any{"owner": "team-a"},
		},
		"spec": map[string]any{
			"selector": map[string]any{"app": "web"},
			"ports":    []any{map[string]any{"port": int64(80)}},
		},
	}

	formData, err := ToFormData(source, mapping)
	require.NoError(t, err)
	for _, e := range mapping.Entries() {
		assert.IsType(t, []any{}, formData[e.FormKey])
	}
	assert.NotContains(t, formData["metadata"], "labels")

	back, err := ToSourceData(formData, mapping)
	require.NoError(t, err)
	if diff := cmp.Diff(source, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_ProjectedMapping(t *testing.T) {
	doc, err := openapi.LoadFile("../openapi/testdata/core-v1.json")
	require.NoError(t, err)
	configMap, err := doc.ResolveGVK("", "v1", "ConfigMap")
	require.NoError(t, err)

	result := form.Project(configMap, form.PathsOf("metadata.name", "metadata.labels", "metadata.annotations", "data"))
	require.Empty(t, result.Diagnostics)
	require.Equal(t, 3, result.Mapping.Len())

	source := map[string]any{
		"apiVersion": "v1",
		"kind":       "ConfigMap",
		"metadata": map[string]any{
			"name":        "settings",
			"labels":      map[string]any{"app": "web"},
			"annotations": map[string]any{"owner": "team-a", "note": ""},
		},
		"data": map[string]any{"LOG_LEVEL": "debug", "PORT": "8080"},
	}

	formData, err := ToFormData(source, result.Mapping)
	require.NoError(t, err)
	for _, e := range result.Mapping.Entries() {
		assert.IsType(t, []any{}, formData[e.FormKey], e.FormKey)
	}

	back, err := ToSourceData(formData, result.Mapping)
	require.NoError(t, err)
	if diff := cmp.Diff(source, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToFormData_DoesNotModifyInput(t *testing.T) {
	source := map[string]any{
		"metadata": map[string]any{"annotations": map[string]any{"a": "1"}},
	}

	_, err := ToFormData(source, annotationsMapping)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"a": "1"}, source["metadata"].(map[string]any)["annotations"])
}

func TestToFormData_TypedObject(t *testing.T) {
	cm := &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{Name: "settings", Labels: map[string]string{"app": "web"}},
		Data:       map[string]string{"mode": "fast"},
	}
	mapping := form.MappingOf(map[string]string{
		"metadata.labels": "metadata_labels",
		"data":            "data",
	})

	got, err := ToFormData(cm, mapping)
	require.NoError(t, err)

	assert.Equal(t, "ConfigMap", got["kind"])
	assert.Equal(t, []any{map[string]any{"key": "app", "value": "web"}}, got["metadata_labels"])
	assert.Equal(t, []any{map[string]any{"key": "mode", "value": "fast"}}, got["data"])
	assert.Equal(t, "settings", got["metadata"].(map[string]any)["name"])
}

func TestToFormData_Unstructured(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]any{
		"metadata": map[string]any{"annotations": map[string]any{"a": "1"}},
	}}

	got, err := ToFormData(obj, annotationsMapping)
	require.NoError(t, err)

	assert.Equal(t, []any{map[string]any{"key": "a", "value": "1"}}, got["metadata_annotations"])
	assert.Contains(t, obj.GetAnnotations(), "a")
}

func TestNormalize(t *testing.T) {
	got, err := Normalize([]byte("metadata:\n  name: web\nspec:\n  replicas: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"metadata": map[string]any{"name": "web"},
		"spec":     map[string]any{"replicas": int64(3)},
	}, got)

	_, err = Normalize([]any{"not", "an", "object"})
	assert.Error(t, err)

	_, err = Normalize(func() {})
	assert.Error(t, err)
}
