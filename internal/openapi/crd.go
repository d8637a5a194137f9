package openapi

import (
	"encoding/json"
	"fmt"
	"os"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"sigs.k8s.io/yaml"

	"github.com/renato0307/kform/internal/schema"
)

// LoadCRD decodes a CustomResourceDefinition and returns the OpenAPI v3
// schema of the requested version. An empty version selects the storage
// version.
func LoadCRD(data []byte, version string) (*schema.Schema, error) {
	var crd apiextensionsv1.CustomResourceDefinition
	if err := yaml.Unmarshal(data, &crd); err != nil {
		return nil, fmt.Errorf("failed to parse CustomResourceDefinition: %w", err)
	}
	if crd.Kind != "" && crd.Kind != "CustomResourceDefinition" {
		return nil, fmt.Errorf("expected a CustomResourceDefinition, got %s", crd.Kind)
	}

	for _, v := range crd.Spec.Versions {
		if (version == "" && v.Storage) || v.Name == version {
			if v.Schema == nil || v.Schema.OpenAPIV3Schema == nil {
				return nil, fmt.Errorf("CRD %s version %s has no openAPIV3Schema", crd.Name, v.Name)
			}
			return FromJSONSchemaProps(v.Schema.OpenAPIV3Schema)
		}
	}

	if version == "" {
		return nil, fmt.Errorf("CRD %s has no storage version", crd.Name)
	}
	return nil, fmt.Errorf("CRD %s has no version %q", crd.Name, version)
}

// LoadCRDFile reads a CRD manifest and extracts a version's schema.
func LoadCRDFile(path, version string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CRD %s: %w", path, err)
	}
	return LoadCRD(data, version)
}

// FromJSONSchemaProps converts an apiextensions schema. Keys without a
// dedicated field in schema.Schema (pattern, x-kubernetes-list-type, ...)
// land in Extra.
func FromJSONSchemaProps(props *apiextensionsv1.JSONSchemaProps) (*schema.Schema, error) {
	if props == nil {
		return nil, fmt.Errorf("nil JSONSchemaProps")
	}
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSONSchemaProps: %w", err)
	}
	var out schema.Schema
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode JSONSchemaProps: %w", err)
	}
	return &out, nil
}

// IsCRD reports whether a manifest declares kind CustomResourceDefinition.
func IsCRD(data []byte) bool {
	var meta struct {
		Kind string `json:"kind"`
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return false
	}
	return meta.Kind == "CustomResourceDefinition"
}
