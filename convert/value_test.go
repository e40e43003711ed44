package convert

import (
	"reflect"
	"testing"
)

func TestMapOrder(t *testing.T) {
	m := &Map{}
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	if !reflect.DeepEqual(m.Keys(), []string{"b", "a"}) {
		t.Errorf("Keys() = %v, want [b a]", m.Keys())
	}
	if v, _ := m.Get("b"); v != 3 {
		t.Errorf("Get(b) = %v, want 3", v)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if m.Has("c") {
		t.Error("Has(c) should be false")
	}
}

func TestNilMap(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Keys() != nil || m.Entries() != nil || m.Has("x") {
		t.Error("nil *Map should behave as empty")
	}
}

func TestMapKeysIsACopy(t *testing.T) {
	m := NewMap(Entry{"a", 1})
	keys := m.Keys()
	keys[0] = "z"
	if m.Keys()[0] != "a" {
		t.Error("mutating Keys() result changed the map")
	}
}
