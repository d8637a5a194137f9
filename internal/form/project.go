package form

import (
	"github.com/sahilm/fuzzy"

	"github.com/renato0307/kform/internal/fieldpath"
	"github.com/renato0307/kform/internal/logging"
	"github.com/renato0307/kform/internal/schema"
)

// maxSuggestions caps the property names offered for an unresolved segment.
const maxSuggestions = 3

// Result is the output of Project.
type Result struct {
	Schema      *schema.Schema `json:"schema"`
	UIHints     *Hints         `json:"uiSchema"`
	Mapping     *Mapping       `json:"mapping"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
}

// cursor points at the same position in the three trees being walked.
type cursor struct {
	source *schema.Schema
	target *schema.Schema
	ui     *Hints
}

// level is what one path segment hands to the next.
type level struct {
	next cursor
	stop bool
}

type projector struct {
	source *schema.Schema
	result *Result

	// requested holds the options of every requested path, last one wins
	requested map[string]PathOptions
	// prefixes holds every strict prefix of a requested path
	prefixes map[string]bool
	// rootKeys maps each root-level target property to the path owning it
	rootKeys map[string]string
}

// Project builds a reduced form schema from source, keeping only the nodes
// reachable through the requested paths.
//
// Every intermediate node on a path becomes an untitled, label-less section
// unless it is requested itself. Leaves are deep copies of their source node,
// except quantities, which collapse to plain strings. A leaf that is a map
// with nothing requested beneath it is hoisted to the root under its form
// key and recorded in the returned Mapping. Arrays are transparent: segments
// continue into their element schema.
//
// Paths that cannot be resolved are skipped and reported in
// Result.Diagnostics. Source is never modified.
func Project(source *schema.Schema, spec *PathSpec) *Result {
	defer logging.Start("project form").End("paths", spec.Len())

	p := newProjector(source, spec)
	for _, entry := range spec.Entries() {
		p.project(entry.Path)
	}
	return p.result
}

func newProjector(source *schema.Schema, spec *PathSpec) *projector {
	p := &projector{
		source: source,
		result: &Result{
			Schema:  schema.NewObject(),
			UIHints: NewHints(),
			Mapping: NewMapping(),
		},
		requested: map[string]PathOptions{},
		prefixes:  map[string]bool{},
		rootKeys:  map[string]string{},
	}
	for _, entry := range spec.Entries() {
		p.requested[entry.Path.String()] = entry.Options
		if !entry.Path.IsValid() {
			continue
		}
		for i := 1; i < len(entry.Path); i++ {
			p.prefixes[entry.Path[:i].String()] = true
		}
	}
	return p
}

func (p *projector) project(path fieldpath.Path) {
	if !path.IsValid() {
		p.result.Diagnostics = append(p.result.Diagnostics, Diagnostic{
			Code:    CodeInvalidPath,
			Path:    path.String(),
			Message: "path has empty or reserved segments",
		})
		logging.Warn("Skipping invalid field path", "path", path.String())
		return
	}

	c := cursor{source: p.source, target: p.result.Schema, ui: p.result.UIHints}
	for i := range path {
		lvl := p.step(c, path, i)
		if lvl.stop {
			return
		}
		c = lvl.next
	}
}

// step resolves path[i] below c.
func (p *projector) step(c cursor, path fieldpath.Path, i int) level {
	c = throughArrays(c)

	segment := path[i]
	current := path[:i+1]
	key := current.String()

	child := c.source.Property(segment)
	if child == nil && c.source.Kind() == schema.KindMap {
		child = c.source.AdditionalSchema()
	}
	if child == nil {
		p.unresolved(path, i, c.source)
		return level{stop: true}
	}

	opts, explicit := p.requested[key]
	terminal := i == len(path)-1 && !p.prefixes[key]

	if terminal && child.Kind() == schema.KindMap {
		p.hoist(c.source, segment, current, child, opts)
		return level{stop: true}
	}
	if i == 0 && !p.claimRootKey(segment, path) {
		return level{stop: true}
	}

	ui := c.ui.Child(segment)
	c.ui.addOrder(segment)

	var target *schema.Schema
	if terminal {
		target = leafSchema(child)
		c.target.SetProperty(segment, target)
		applyWidgets(ui, child)
	} else {
		target = c.target.Property(segment)
		if target == nil {
			target = skeleton(child)
			c.target.SetProperty(segment, target)
		}
		if explicit {
			target.Title = child.Title
			target.Description = child.Description
		} else {
			target.Title = ""
			ui.SetLabelVisible(false)
		}
	}

	if c.source.IsRequired(segment) {
		c.target.SetRequired(segment, true)
	}
	if explicit {
		applyOptions(target, ui, opts)
		if opts.Required != nil {
			c.target.SetRequired(segment, *opts.Required)
		}
	}

	return level{next: cursor{source: child, target: target, ui: ui}}
}

// hoist replaces a map leaf with a root-level array of {key, value} records.
func (p *projector) hoist(parent *schema.Schema, segment string, path fieldpath.Path, child *schema.Schema, opts PathOptions) {
	formKey := path.FormKey()
	if !p.claimRootKey(formKey, path) {
		return
	}
	p.result.Mapping.Set(path.String(), formKey)

	value := leafSchema(child.AdditionalSchema())
	node := &schema.Schema{
		Type:        schema.TypeArray,
		Title:       child.Title,
		Description: child.Description,
		Items: &schema.Schema{
			Type: schema.TypeObject,
			Properties: map[string]*schema.Schema{
				"key":   {Type: schema.TypeString},
				"value": value,
			},
		},
	}

	root := p.result.Schema
	root.SetProperty(formKey, node)
	ui := p.result.UIHints.Child(formKey)
	p.result.UIHints.addOrder(formKey)

	if parent.IsRequired(segment) {
		root.SetRequired(formKey, true)
	}
	applyOptions(node, ui, opts)
	if opts.Required != nil {
		root.SetRequired(formKey, *opts.Required)
	}

	logging.Debug("Hoisted map field", "path", path.String(), "formKey", formKey)
}

// claimRootKey records path as the owner of a root-level property. Top-level
// segments are owned by their first segment so every path through them
// shares the property; hoisted fields are owned by their full path.
func (p *projector) claimRootKey(name string, path fieldpath.Path) bool {
	owner := path[0]
	if name != owner {
		owner = path.String()
	}
	existing, taken := p.rootKeys[name]
	if !taken || existing == owner {
		p.rootKeys[name] = owner
		return true
	}

	p.result.Diagnostics = append(p.result.Diagnostics, Diagnostic{
		Code:    CodeFormKeyCollision,
		Path:    path.String(),
		Message: "form field " + name + " is already used by " + existing,
	})
	logging.Warn("Skipping field path whose form key is taken",
		"path", path.String(), "formKey", name, "owner", existing)
	return false
}

func (p *projector) unresolved(path fieldpath.Path, i int, parent *schema.Schema) {
	segment := path[i]

	var suggestions []string
	for _, m := range fuzzy.Find(segment, parent.PropertyNames()) {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == maxSuggestions {
			break
		}
	}

	p.result.Diagnostics = append(p.result.Diagnostics, Diagnostic{
		Code:        CodeUnresolvedSegment,
		Path:        path.String(),
		Segment:     segment,
		Message:     "no property " + segment + " under " + orRoot(path[:i].String()),
		Suggestions: suggestions,
	})
	logging.Warn("Skipping unresolvable field path",
		"path", path.String(), "segment", segment, "suggestions", suggestions)
}

// throughArrays descends from array nodes into their element schema, keeping
// the target and hint trees aligned.
func throughArrays(c cursor) cursor {
	for c.source.Kind() == schema.KindArray && c.source.Items != nil {
		c.source = c.source.Items
		if c.target.Items == nil {
			c.target.Items = skeleton(c.source)
		}
		c.target = c.target.Items
		c.ui = c.ui.Child(ItemsKey)
	}
	return c
}

// skeleton is the empty container a path passes through.
func skeleton(src *schema.Schema) *schema.Schema {
	if src.Kind() == schema.KindArray {
		items := schema.NewObject()
		if src.Items != nil {
			items = skeleton(src.Items)
		}
		return &schema.Schema{Type: schema.TypeArray, Items: items}
	}
	return schema.NewObject()
}

// leafSchema copies a terminal node. Quantities become plain strings.
func leafSchema(src *schema.Schema) *schema.Schema {
	if src == nil {
		return &schema.Schema{Type: schema.TypeString}
	}
	if src.IsQuantity() {
		return &schema.Schema{
			Type:        schema.TypeString,
			Title:       src.Title,
			Description: src.Description,
		}
	}
	return src.DeepCopy()
}

// applyWidgets picks a select widget for enum-constrained leaves.
func applyWidgets(ui *Hints, src *schema.Schema) {
	switch {
	case src.HasEnum():
		ui.SetComponent(src.FieldKind(), WidgetEnumSelect)
	case src.Kind() == schema.KindArray && src.Items.HasEnum():
		ui.SetComponent(src.FieldKind(), WidgetMultiEnumSelect)
	}
}

func applyOptions(target *schema.Schema, ui *Hints, opts PathOptions) {
	if opts.Title != "" {
		target.Title = opts.Title
		ui.SetTitle(opts.Title)
		ui.SetLabelVisible(true)
	}
	if opts.ShowDescription != nil && !*opts.ShowDescription {
		target.Description = ""
	}
	if len(opts.UIHints) > 0 {
		ui.Merge(opts.UIHints)
	}
}

func orRoot(path string) string {
	if path == "" {
		return "the root"
	}
	return path
}
