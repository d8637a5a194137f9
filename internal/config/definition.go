// Package config reads form definition files.
package config

import (
	"github.com/renato0307/kform/internal/form"
)

// Definition describes one form: where its schema comes from and which
// fields it edits.
type Definition struct {
	// Schema selects the source schema
	Schema SchemaSource `json:"schema" yaml:"schema"`

	// Fields are the requested paths, in display order
	Fields form.PathSpec `json:"fields" yaml:"fields"`
}

// SchemaSource locates the source schema, either in a file or on a cluster.
type SchemaSource struct {
	// File is an OpenAPI v3 document, a bare schema or a CRD manifest.
	// Relative paths are resolved against the definition file.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// CRDVersion picks the CRD version to use; empty means the storage version
	CRDVersion string `json:"crdVersion,omitempty" yaml:"crdVersion,omitempty"`

	// GroupVersion and Kind select the schema inside an OpenAPI document or
	// on the cluster, e.g. apps/v1 and Deployment
	GroupVersion string `json:"groupVersion,omitempty" yaml:"groupVersion,omitempty"`
	Kind         string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// FromCluster reports whether the schema must be downloaded.
func (s SchemaSource) FromCluster() bool {
	return s.File == ""
}
