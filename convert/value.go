package convert

// undefinedValue is the type of Undefined
type undefinedValue struct{}

// Undefined is "no value" as distinct from nil
// Renders and decodes exactly like nil
var Undefined = undefinedValue{}

// String returns "undefined"
func (undefinedValue) String() string {
	return "undefined"
}

// Entry is one key/value pair of a Map
type Entry struct {
	Key   string
	Value any
}

// Map is a string-keyed map that keeps insertion order (zero value ready to use)
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates a Map from entries, later duplicates overwrite in place
func NewMap(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set stores value under key, appending new keys
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns a copy of the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Entries returns the pairs in insertion order
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	entries := make([]Entry, 0, len(m.keys))
	for _, k := range m.keys {
		entries = append(entries, Entry{Key: k, Value: m.values[k]})
	}
	return entries
}

// Len returns the number of keys
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
