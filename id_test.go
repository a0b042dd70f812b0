// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"testing"
)

func (m *dataMap[I, D]) check(t *testing.T) {
	t.Helper()
	if n := m.idMap.Len() - m.idMap.Rem(); n != len(m.data) {
		t.Fatalf("dataMap: set ids\nhave %d\nwant %d", n, len(m.data))
	}
	for i, e := range m.data {
		if !m.idMap.IsSet(e.id) || m.ids[e.id] != i {
			t.Fatalf("dataMap: entry %d (id %d) not mapped", i, e.id)
		}
	}
}

func TestDataMap(t *testing.T) {
	var m dataMap[ID, string]
	var ids []ID
	for i := range 100 {
		id := m.insert(string(rune('a' + i%26)))
		if int(id) != i {
			t.Fatalf("dataMap.insert\nhave %d\nwant %d", id, i)
		}
		ids = append(ids, id)
	}
	m.check(t)
	if n := m.len(); n != 100 {
		t.Fatalf("dataMap.len\nhave %d\nwant 100", n)
	}
	for _, i := range [...]int{0, 99, 50, 27} {
		want := string(rune('a' + i%26))
		if s := m.remove(ids[i]); s != want {
			t.Fatalf("dataMap.remove(%d)\nhave %s\nwant %s", i, s, want)
		}
		if m.contains(ids[i]) {
			t.Fatalf("dataMap.contains(%d): removed id still present", i)
		}
		m.check(t)
	}
	for _, i := range [...]int{1, 26, 98} {
		if s, want := *m.get(ids[i]), string(rune('a'+i%26)); s != want {
			t.Fatalf("dataMap.get(%d)\nhave %s\nwant %s", i, s, want)
		}
	}
	// Freed ids are reused lowest first.
	if id := m.insert("z"); id != 0 {
		t.Fatalf("dataMap.insert: reuse\nhave %d\nwant 0", id)
	}
	m.check(t)
	for _, id := range [...]ID{-1, 27, 128, 1000} {
		if m.contains(id) {
			t.Fatalf("dataMap.contains(%d)\nhave true\nwant false", id)
		}
	}
}
