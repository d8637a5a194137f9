package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	k8sschema "k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/renato0307/kform/internal/config"
	"github.com/renato0307/kform/internal/form"
	"github.com/renato0307/kform/internal/k8s"
	"github.com/renato0307/kform/internal/logging"
	"github.com/renato0307/kform/internal/openapi"
	"github.com/renato0307/kform/internal/schema"
	"github.com/renato0307/kform/internal/transcode"
)

// stdinPath as an object argument reads the object from standard input.
const stdinPath = "-"

// loadForm reads a definition, loads its schema and projects it.
func loadForm(ctx context.Context, path string, opts *rootOptions) (*config.Definition, *form.Result, error) {
	def, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	source, err := loadSchema(ctx, def.Schema, opts)
	if err != nil {
		return nil, nil, err
	}

	result := form.Project(source, &def.Fields)
	for _, d := range result.Diagnostics {
		logging.Warn("Field skipped", "definition", path, "diagnostic", d.String())
	}
	return def, result, nil
}

// loadSchema resolves a schema source. Files may hold a CRD, an OpenAPI v3
// document or a bare schema; without a file the schema is downloaded.
func loadSchema(ctx context.Context, src config.SchemaSource, opts *rootOptions) (*schema.Schema, error) {
	if src.FromCluster() {
		fetcher, err := k8s.NewOpenAPIFetcher(opts.kubeconfig, opts.context)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, opts.timeout)
		defer cancel()
		return fetcher.SchemaFor(ctx, src.GroupVersion, src.Kind)
	}

	data, err := os.ReadFile(src.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	if openapi.IsCRD(data) {
		return openapi.LoadCRD(data, src.CRDVersion)
	}

	if doc, err := openapi.Parse(data); err == nil {
		if src.GroupVersion == "" {
			return nil, fmt.Errorf("%s is an OpenAPI document: schema.groupVersion and schema.kind are required", src.File)
		}
		gv, err := k8sschema.ParseGroupVersion(src.GroupVersion)
		if err != nil {
			return nil, err
		}
		return doc.ResolveGVK(gv.Group, gv.Version, src.Kind)
	}

	return schema.Load(data)
}

// readObject reads a YAML or JSON object from path, or from stdin when path
// is stdinPath.
func readObject(path string, stdin io.Reader) (map[string]any, error) {
	var data []byte
	var err error
	if path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return transcode.Normalize(data)
}
