package form

import (
	"encoding/json"
	"slices"

	"github.com/renato0307/kform/internal/fieldpath"
	"github.com/renato0307/kform/internal/logging"
)

// Hint keys understood by the form renderer.
const (
	KeyOptions    = "ui:options"
	KeyTitle      = "ui:title"
	KeyComponents = "ui:components"
	KeyOrder      = "ui:order"

	// OptionLabel inside ui:options toggles the field label.
	OptionLabel = "label"

	// ItemsKey holds the hints of an array's elements.
	ItemsKey = "items"
)

// Widgets selected for enum-constrained fields.
const (
	WidgetEnumSelect      = "EnumSelect"
	WidgetMultiEnumSelect = "MultiEnumSelect"
)

// Hints is a node of the UI hint tree. Its children mirror the nesting of
// the source schema; array elements live under ItemsKey.
type Hints struct {
	values   map[string]any
	children map[string]*Hints
	// order lists object properties in the order they were first requested
	order []string
}

// NewHints returns an empty node.
func NewHints() *Hints {
	return &Hints{
		values:   map[string]any{},
		children: map[string]*Hints{},
	}
}

// Child returns the named child, creating it if needed.
func (h *Hints) Child(name string) *Hints {
	if child, ok := h.children[name]; ok {
		return child
	}
	child := NewHints()
	h.children[name] = child
	return child
}

// Lookup follows names from h without creating nodes.
func (h *Hints) Lookup(names ...string) (*Hints, bool) {
	node := h
	for _, name := range names {
		child, ok := node.children[name]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Children returns the child names in sorted order.
func (h *Hints) Children() []string {
	names := make([]string, 0, len(h.children))
	for name := range h.children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Order returns the property order of this object node.
func (h *Hints) Order() []string {
	if custom, ok := h.values[KeyOrder].([]any); ok {
		out := make([]string, 0, len(custom))
		for _, v := range custom {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return slices.Clone(h.order)
}

func (h *Hints) addOrder(name string) {
	if !slices.Contains(h.order, name) {
		h.order = append(h.order, name)
	}
}

// Value returns one of the node's own hints.
func (h *Hints) Value(key string) (any, bool) {
	v, ok := h.values[key]
	return v, ok
}

// SetLabelVisible sets ui:options.label.
func (h *Hints) SetLabelVisible(visible bool) {
	opts, ok := h.values[KeyOptions].(map[string]any)
	if !ok {
		opts = map[string]any{}
		h.values[KeyOptions] = opts
	}
	opts[OptionLabel] = visible
}

// LabelVisible returns ui:options.label and whether it was set at all.
func (h *Hints) LabelVisible() (visible, set bool) {
	opts, ok := h.values[KeyOptions].(map[string]any)
	if !ok {
		return false, false
	}
	visible, set = opts[OptionLabel].(bool)
	return visible, set
}

// SetTitle sets ui:title.
func (h *Hints) SetTitle(title string) {
	h.values[KeyTitle] = title
}

// Title returns ui:title.
func (h *Hints) Title() string {
	title, _ := h.values[KeyTitle].(string)
	return title
}

// SetComponent renders fields of the given kind with widget.
func (h *Hints) SetComponent(fieldKind, widget string) {
	components, ok := h.values[KeyComponents].(map[string]any)
	if !ok {
		components = map[string]any{}
		h.values[KeyComponents] = components
	}
	components[fieldKind] = widget
}

// Component returns the widget override for a field kind.
func (h *Hints) Component(fieldKind string) string {
	components, _ := h.values[KeyComponents].(map[string]any)
	widget, _ := components[fieldKind].(string)
	return widget
}

// Merge deep-merges caller hints into the node. Caller values win.
func (h *Hints) Merge(custom map[string]any) {
	fieldpath.Merge(h.values, custom)
}

// ToMap renders the subtree as plain JSON-compatible maps that share nothing
// with h. A caller hint named like a child is merged into the child's map
// when it is an object, and dropped otherwise.
func (h *Hints) ToMap() map[string]any {
	out := make(map[string]any, len(h.values)+len(h.children)+1)
	fieldpath.Merge(out, h.values)
	if _, custom := h.values[KeyOrder]; !custom && len(h.order) > 0 {
		order := make([]any, len(h.order))
		for i, name := range h.order {
			order[i] = name
		}
		out[KeyOrder] = order
	}
	for name, child := range h.children {
		rendered := child.ToMap()
		switch custom := h.values[name].(type) {
		case nil:
		case map[string]any:
			fieldpath.Merge(rendered, custom)
		default:
			logging.Warn("Dropping UI hint that collides with a field", "key", name)
		}
		out[name] = rendered
	}
	return out
}

// MarshalJSON encodes the subtree.
func (h *Hints) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.ToMap())
}
