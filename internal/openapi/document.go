// Package openapi reads the schema sources a form can be projected from:
// Kubernetes OpenAPI v3 documents (as served under /openapi/v3) and
// CustomResourceDefinitions.
package openapi

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/renato0307/kform/internal/logging"
	"github.com/renato0307/kform/internal/schema"
)

const (
	// refPrefix is how component schemas are referenced.
	refPrefix = "#/components/schemas/"

	// gvkExtension lists the group/version/kind triples a component describes.
	gvkExtension = "x-kubernetes-group-version-kind"

	// preserveUnknownFields marks a node whose children are not described.
	preserveUnknownFields = "x-kubernetes-preserve-unknown-fields"
)

// Document is the subset of an OpenAPI v3 document the projector needs.
type Document struct {
	Components Components `json:"components"`
}

// Components holds the named schemas of a document.
type Components struct {
	Schemas map[string]*schema.Schema `json:"schemas"`
}

// Parse decodes an OpenAPI v3 document from JSON or YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("OpenAPI document has no components.schemas")
	}
	return &doc, nil
}

// LoadFile reads and parses an OpenAPI v3 document.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI document %s: %w", path, err)
	}
	return Parse(data)
}

// Names returns all component names in sorted order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.Components.Schemas))
	for name := range d.Components.Schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ForGVK returns the component name whose x-kubernetes-group-version-kind
// extension lists the given triple. The core group is the empty string.
func (d *Document) ForGVK(group, version, kind string) (string, bool) {
	for _, name := range d.Names() {
		entries, ok := d.Components.Schemas[name].Extra[gvkExtension].([]any)
		if !ok {
			continue
		}
		for _, entry := range entries {
			gvk, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if gvk["group"] == group && gvk["version"] == version && gvk["kind"] == kind {
				return name, true
			}
		}
	}
	return "", false
}

// Resolve returns a copy of the named component with every $ref inlined.
func (d *Document) Resolve(name string) (*schema.Schema, error) {
	root, ok := d.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %q not found in OpenAPI document", name)
	}
	r := &resolver{doc: d, stack: map[string]bool{name: true}}
	return r.inline(root.DeepCopy()), nil
}

// ResolveGVK is ForGVK followed by Resolve.
func (d *Document) ResolveGVK(group, version, kind string) (*schema.Schema, error) {
	name, ok := d.ForGVK(group, version, kind)
	if !ok {
		return nil, fmt.Errorf("no schema for %s in OpenAPI document", formatGVK(group, version, kind))
	}
	return d.Resolve(name)
}

type resolver struct {
	doc   *Document
	stack map[string]bool
}

// inline rewrites s in place. s must already be a private copy.
func (r *resolver) inline(s *schema.Schema) *schema.Schema {
	if s == nil {
		return nil
	}

	if s.Ref != "" {
		return r.follow(s, s.Ref)
	}
	// Kubernetes wraps references in a single-element allOf so that the
	// description and default can sit next to them.
	if len(s.AllOf) == 1 && s.AllOf[0].Ref != "" && s.Type == "" && len(s.Properties) == 0 {
		return r.follow(s, s.AllOf[0].Ref)
	}

	for name, child := range s.Properties {
		s.Properties[name] = r.inline(child)
	}
	s.Items = r.inline(s.Items)
	if s.AdditionalProperties != nil {
		s.AdditionalProperties.Schema = r.inline(s.AdditionalProperties.Schema)
	}
	for i := range s.OneOf {
		s.OneOf[i] = r.inline(s.OneOf[i])
	}
	for i := range s.AnyOf {
		s.AnyOf[i] = r.inline(s.AnyOf[i])
	}
	for i := range s.AllOf {
		s.AllOf[i] = r.inline(s.AllOf[i])
	}
	return s
}

// follow replaces the referencing node with the referenced component,
// keeping the referencing node's own annotations.
func (r *resolver) follow(site *schema.Schema, ref string) *schema.Schema {
	name, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		logging.Warn("unsupported schema reference", "ref", ref)
		return site
	}
	if r.stack[name] {
		return &schema.Schema{
			Type:        schema.TypeObject,
			Title:       site.Title,
			Description: site.Description,
			Extra:       map[string]any{preserveUnknownFields: true},
		}
	}
	target, ok := r.doc.Components.Schemas[name]
	if !ok {
		logging.Warn("unresolved schema reference", "ref", ref)
		return site
	}

	r.stack[name] = true
	resolved := r.inline(target.DeepCopy())
	delete(r.stack, name)

	if site.Title != "" {
		resolved.Title = site.Title
	}
	if site.Description != "" {
		resolved.Description = site.Description
	}
	if site.Default != nil {
		resolved.Default = site.Default
	}
	return resolved
}

func formatGVK(group, version, kind string) string {
	if group == "" {
		return version + "/" + kind
	}
	return group + "/" + version + "/" + kind
}
