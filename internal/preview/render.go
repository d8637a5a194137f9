// Package preview draws a projected form in the terminal, the way a form
// renderer would lay it out: sections for objects, one line per input, and
// hidden labels for implicit sections.
package preview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/renato0307/kform/internal/form"
	"github.com/renato0307/kform/internal/schema"
)

const indentWidth = 2

// Options control what Render includes.
type Options struct {
	Descriptions bool
	Diagnostics  bool
}

type renderer struct {
	theme *Theme
	opts  Options
	lines []string
}

// Render lays out result as text, one line per form element.
func Render(result *form.Result, theme *Theme, opts Options) string {
	r := &renderer{theme: theme, opts: opts}
	r.object(result.Schema, result.UIHints, 0)

	if opts.Diagnostics && len(result.Diagnostics) > 0 {
		r.lines = append(r.lines, "")
		for _, d := range result.Diagnostics {
			r.lines = append(r.lines, r.theme.Diagnostic.Render("! "+d.String()))
		}
	}
	return strings.Join(r.lines, "\n")
}

func (r *renderer) object(s *schema.Schema, ui *form.Hints, depth int) {
	for _, name := range fieldOrder(s, ui) {
		r.field(name, s.Properties[name], child(ui, name), s.IsRequired(name), depth)
	}
}

func (r *renderer) field(name string, s *schema.Schema, ui *form.Hints, required bool, depth int) {
	label := ui.Title()
	if label == "" {
		label = s.Title
	}
	if label == "" {
		label = name
	}
	visible, set := ui.LabelVisible()
	showLabel := !set || visible

	heading := r.theme.Label.Render(label)
	if required {
		heading += r.theme.Required.Render("*")
	}

	switch s.Kind() {
	case schema.KindObject, schema.KindMap:
		if !showLabel {
			r.object(s, ui, depth)
			return
		}
		r.add(depth, r.theme.Section.Render("▸ ")+heading)
		r.description(s, depth+1)
		r.object(s, ui, depth+1)
	case schema.KindArray:
		items := s.Items
		switch {
		case isKeyValue(items):
			r.add(depth, r.labelled(heading, showLabel, r.theme.Widget.Render("[key = value, ...]")))
			r.description(s, depth+1)
		case items.Kind() == schema.KindObject:
			r.add(depth, r.labelled(heading, showLabel, r.theme.Widget.Render("[+ add item]")))
			r.description(s, depth+1)
			r.object(items, child(ui, form.ItemsKey), depth+1)
		default:
			r.add(depth, r.labelled(heading, showLabel, r.theme.Widget.Render(widget(s, ui))))
			r.description(s, depth+1)
		}
	default:
		r.add(depth, r.labelled(heading, showLabel, r.theme.Widget.Render(widget(s, ui))))
		r.description(s, depth+1)
	}
}

func (r *renderer) labelled(heading string, showLabel bool, w string) string {
	if !showLabel {
		return w
	}
	return heading + ": " + w
}

func (r *renderer) description(s *schema.Schema, depth int) {
	if r.opts.Descriptions && s.Description != "" {
		r.add(depth, r.theme.Description.Render(s.Description))
	}
}

func (r *renderer) add(depth int, line string) {
	r.lines = append(r.lines, strings.Repeat(" ", depth*indentWidth)+line)
}

// widget describes the input a scalar or scalar array is edited with.
func widget(s *schema.Schema, ui *form.Hints) string {
	switch ui.Component(s.FieldKind()) {
	case form.WidgetEnumSelect:
		return "‹" + joinValues(s.Enum, " | ") + "›"
	case form.WidgetMultiEnumSelect:
		return "{" + joinValues(s.Items.Enum, ", ") + "}"
	}

	switch s.Kind() {
	case schema.KindArray:
		return "[" + widget(s.Items, form.NewHints()) + ", ...]"
	case schema.KindUnion:
		return "[value]"
	}
	switch s.Type {
	case schema.TypeBoolean:
		return "[ ]"
	case schema.TypeNumber, schema.TypeInteger:
		return "[0]"
	default:
		return "[____]"
	}
}

// isKeyValue reports whether items is the record of a hoisted map field.
func isKeyValue(items *schema.Schema) bool {
	return items.Kind() == schema.KindObject &&
		slices.Equal(items.PropertyNames(), []string{"key", "value"})
}

// fieldOrder lists properties in request order, then any others by name.
func fieldOrder(s *schema.Schema, ui *form.Hints) []string {
	var names []string
	for _, name := range ui.Order() {
		if _, ok := s.Properties[name]; ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, name := range s.PropertyNames() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func child(ui *form.Hints, name string) *form.Hints {
	if c, ok := ui.Lookup(name); ok {
		return c
	}
	return form.NewHints()
}

func joinValues(values []any, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, sep)
}
