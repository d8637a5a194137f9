package k8s

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/rest"

	"github.com/renato0307/kform/internal/schema"
)

const coreV1Document = `{
  "openapi": "3.0.0",
  "components": {
    "schemas": {
      "io.k8s.api.core.v1.ConfigMap": {
        "type": "object",
        "properties": {
          "metadata": {"allOf": [{"$ref": "#/components/schemas/io.k8s.apimachinery.pkg.apis.meta.v1.ObjectMeta"}]},
          "data": {"type": "object", "additionalProperties": {"type": "string"}}
        },
        "x-kubernetes-group-version-kind": [{"group": "", "version": "v1", "kind": "ConfigMap"}]
      },
      "io.k8s.apimachinery.pkg.apis.meta.v1.ObjectMeta": {
        "type": "object",
        "properties": {"name": {"type": "string"}}
      }
    }
  }
}`

// fakeAPIServer serves the OpenAPI v3 discovery endpoints for core/v1 only.
func fakeAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/openapi/v3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paths": {
		  "api/v1": {"serverRelativeURL": "/openapi/v3/api/v1?hash=ABC"},
		  "apis/apps/v1": {"serverRelativeURL": "/openapi/v3/apis/apps/v1?hash=DEF"},
		  "version": {"serverRelativeURL": "/openapi/v3/version?hash=GHI"}
		}}`))
	})
	mux.HandleFunc("/openapi/v3/api/v1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(coreV1Document))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestFetcher(t *testing.T) *OpenAPIFetcher {
	t.Helper()
	server := fakeAPIServer(t)
	fetcher, err := NewOpenAPIFetcherForConfig(&rest.Config{Host: server.URL})
	require.NoError(t, err)
	return fetcher
}

func TestOpenAPIFetcher_GroupVersions(t *testing.T) {
	fetcher := newTestFetcher(t)

	gvs, err := fetcher.GroupVersions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"apps/v1", "v1"}, gvs)
}

func TestOpenAPIFetcher_SchemaFor(t *testing.T) {
	fetcher := newTestFetcher(t)

	s, err := fetcher.SchemaFor(context.Background(), "v1", "ConfigMap")

	require.NoError(t, err)
	assert.Equal(t, schema.KindMap, s.Property("data").Kind())
	assert.Equal(t, schema.TypeString, s.Property("metadata").Property("name").Type)
}

func TestOpenAPIFetcher_UnknownGroupVersion(t *testing.T) {
	fetcher := newTestFetcher(t)

	_, err := fetcher.Fetch(context.Background(), "batch/v1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch/v1")
}

func TestOpenAPIFetcher_ContextCancelled(t *testing.T) {
	fetcher := newTestFetcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, "v1")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := withContext(ctx, func() (int, error) {
		time.Sleep(time.Second)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	v, err := withContext(context.Background(), func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestDocumentPath(t *testing.T) {
	tests := []struct {
		groupVersion string
		want         string
	}{
		{"v1", "api/v1"},
		{"apps/v1", "apis/apps/v1"},
		{"example.com/v1alpha1", "apis/example.com/v1alpha1"},
	}

	for _, tt := range tests {
		t.Run(tt.groupVersion, func(t *testing.T) {
			assert.Equal(t, tt.want, documentPath(tt.groupVersion))
		})
	}
}
