package extract

// FieldMap maps field names to extracted content, preserving insertion order.
// Catalog entries are emitted in this order, so it must be stable.
type FieldMap struct {
	keys   []string
	values map[string]string
}

// NewFieldMap creates an empty field map.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]string)}
}

// Set stores content under a field name. Re-setting an existing name updates
// the content in place without changing its position.
func (m *FieldMap) Set(name, content string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = content
}

// Get returns the content for a field name.
func (m *FieldMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Keys returns field names in insertion order.
func (m *FieldMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of fields.
func (m *FieldMap) Len() int { return len(m.keys) }
