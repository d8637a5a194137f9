package k8s

import (
	"context"
	"fmt"
	"slices"
	"strings"

	k8sschema "k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	k8sopenapi "k8s.io/client-go/openapi"
	"k8s.io/client-go/rest"

	"github.com/renato0307/kform/internal/logging"
	"github.com/renato0307/kform/internal/openapi"
	"github.com/renato0307/kform/internal/schema"
)

// OpenAPIFetcher downloads OpenAPI v3 documents from a live API server.
type OpenAPIFetcher struct {
	client k8sopenapi.Client
}

// NewOpenAPIFetcher connects to the cluster selected by kubeconfig and
// contextName (see RESTConfig).
func NewOpenAPIFetcher(kubeconfig, contextName string) (*OpenAPIFetcher, error) {
	config, err := RESTConfig(kubeconfig, contextName)
	if err != nil {
		return nil, err
	}
	return NewOpenAPIFetcherForConfig(config)
}

// NewOpenAPIFetcherForConfig uses an existing client config.
func NewOpenAPIFetcherForConfig(config *rest.Config) (*OpenAPIFetcher, error) {
	config = rest.CopyConfig(config)
	if config.Timeout == 0 {
		config.Timeout = OpenAPIFetchTimeout
	}

	client, err := discovery.NewDiscoveryClientForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating discovery client: %w", err)
	}
	return &OpenAPIFetcher{client: client.OpenAPIV3()}, nil
}

// GroupVersions lists the group versions the server publishes schemas for,
// e.g. "v1" or "apps/v1".
func (f *OpenAPIFetcher) GroupVersions(ctx context.Context) ([]string, error) {
	paths, err := f.paths(ctx)
	if err != nil {
		return nil, err
	}

	gvs := make([]string, 0, len(paths))
	for p := range paths {
		switch {
		case strings.HasPrefix(p, "api/"):
			gvs = append(gvs, strings.TrimPrefix(p, "api/"))
		case strings.HasPrefix(p, "apis/"):
			gvs = append(gvs, strings.TrimPrefix(p, "apis/"))
		}
	}
	slices.Sort(gvs)
	return gvs, nil
}

// Fetch downloads the document of one group version.
func (f *OpenAPIFetcher) Fetch(ctx context.Context, groupVersion string) (*openapi.Document, error) {
	defer logging.Start("fetch openapi").End("groupVersion", groupVersion)

	paths, err := f.paths(ctx)
	if err != nil {
		return nil, err
	}
	gv, ok := paths[documentPath(groupVersion)]
	if !ok {
		return nil, fmt.Errorf("server publishes no OpenAPI v3 document for %s", groupVersion)
	}

	data, err := withContext(ctx, func() ([]byte, error) {
		return gv.Schema(OpenAPIContentType)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download OpenAPI document for %s: %w", groupVersion, err)
	}
	return openapi.Parse(data)
}

// SchemaFor fetches the schema of a kind, with references inlined.
func (f *OpenAPIFetcher) SchemaFor(ctx context.Context, groupVersion, kind string) (*schema.Schema, error) {
	doc, err := f.Fetch(ctx, groupVersion)
	if err != nil {
		return nil, err
	}
	gv, err := k8sschema.ParseGroupVersion(groupVersion)
	if err != nil {
		return nil, err
	}
	return doc.ResolveGVK(gv.Group, gv.Version, kind)
}

func (f *OpenAPIFetcher) paths(ctx context.Context) (map[string]k8sopenapi.GroupVersion, error) {
	paths, err := withContext(ctx, f.client.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAPI v3 paths: %w", err)
	}
	return paths, nil
}

// withContext runs fn in the background and gives up when ctx is done. The
// discovery client has no context parameter of its own; the request is
// still bounded by the rest config timeout.
func withContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}

// documentPath maps "v1" to "api/v1" and "apps/v1" to "apis/apps/v1".
func documentPath(groupVersion string) string {
	if strings.Contains(groupVersion, "/") {
		return "apis/" + groupVersion
	}
	return "api/" + groupVersion
}
