package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/kform/internal/schema"
)

func loadCoreDocument(t *testing.T) *Document {
	t.Helper()
	doc, err := LoadFile("testdata/core-v1.json")
	require.NoError(t, err)
	return doc
}

func TestParseRejectsDocumentsWithoutSchemas(t *testing.T) {
	_, err := Parse([]byte(`{"openapi":"3.0.0","paths":{}}`))
	assert.Error(t, err)
}

func TestForGVK(t *testing.T) {
	doc := loadCoreDocument(t)

	name, ok := doc.ForGVK("", "v1", "ConfigMap")
	require.True(t, ok)
	assert.Equal(t, "io.k8s.api.core.v1.ConfigMap", name)

	_, ok = doc.ForGVK("apps", "v1", "Deployment")
	assert.False(t, ok)
}

func TestResolveInlinesAllOfReferences(t *testing.T) {
	doc := loadCoreDocument(t)

	cm, err := doc.ResolveGVK("", "v1", "ConfigMap")
	require.NoError(t, err)

	metadata := cm.Property("metadata")
	require.NotNil(t, metadata)
	assert.Equal(t, schema.TypeObject, metadata.Type)
	assert.Empty(t, metadata.AllOf)
	assert.Equal(t, "Standard object's metadata.", metadata.Description, "site description wins over the component's")
	assert.Equal(t, schema.KindMap, metadata.Property("annotations").Kind())

	owner := metadata.Property("ownerReferences").Items
	require.NotNil(t, owner)
	assert.Equal(t, []string{"apiVersion", "kind", "name", "uid"}, owner.Required)
}

func TestResolveDoesNotMutateDocument(t *testing.T) {
	doc := loadCoreDocument(t)

	_, err := doc.Resolve("io.k8s.api.core.v1.ConfigMap")
	require.NoError(t, err)

	raw := doc.Components.Schemas["io.k8s.api.core.v1.ConfigMap"].Property("metadata")
	require.Len(t, raw.AllOf, 1)
	assert.NotEmpty(t, raw.AllOf[0].Ref)
}

func TestResolveCutsCycles(t *testing.T) {
	doc := loadCoreDocument(t)

	props, err := doc.Resolve("io.k8s.apiextensions.v1.JSONSchemaProps")
	require.NoError(t, err)

	nested := props.Property("properties").AdditionalSchema()
	require.NotNil(t, nested)
	assert.Equal(t, schema.TypeObject, nested.Type)
	assert.Empty(t, nested.Properties)
	assert.Equal(t, true, nested.Extra[preserveUnknownFields])
}

func TestResolveUnknownName(t *testing.T) {
	doc := loadCoreDocument(t)
	_, err := doc.Resolve("io.k8s.api.core.v1.Missing")
	assert.Error(t, err)

	_, err = doc.ResolveGVK("apps", "v1", "Deployment")
	assert.ErrorContains(t, err, "apps/v1/Deployment")
}
