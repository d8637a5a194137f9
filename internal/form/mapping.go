package form

import (
	"encoding/json"
	"slices"
)

// MappingEntry pairs a nested source path with the flat form key it is
// hoisted to.
type MappingEntry struct {
	Source  string
	FormKey string
}

// Mapping is the ordered set of hoisted map fields.
type Mapping struct {
	keys   []string
	values map[string]string
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: map[string]string{}}
}

// MappingOf builds a mapping from a Go map. Entries are sorted by source path.
func MappingOf(m map[string]string) *Mapping {
	out := NewMapping()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		out.Set(k, m[k])
	}
	return out
}

// Set records source -> formKey. Re-setting a source keeps its position.
func (m *Mapping) Set(source, formKey string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	if _, ok := m.values[source]; !ok {
		m.keys = append(m.keys, source)
	}
	m.values[source] = formKey
}

// Get returns the form key of a source path.
func (m *Mapping) Get(source string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[source]
	return v, ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Entries returns the entries in insertion order.
func (m *Mapping) Entries() []MappingEntry {
	if m == nil {
		return nil
	}
	out := make([]MappingEntry, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, MappingEntry{Source: k, FormKey: m.values[k]})
	}
	return out
}

// ToMap returns the entries as a plain map.
func (m *Mapping) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	for _, e := range m.Entries() {
		out[e.Source] = e.FormKey
	}
	return out
}

// MarshalJSON encodes the mapping as a JSON object.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// UnmarshalJSON decodes a JSON object; entries end up sorted by source path.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = *MappingOf(raw)
	return nil
}
