// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"github.com/gviegas/anim/internal/bitvec"
)

// dataEntry is what a dataMap stores.
type dataEntry[D any] struct {
	data D
	id   int
}

// dataMap stores data of type D densely, addressed by
// identifiers of type I that remain valid until removed.
type dataMap[I ~int, D any] struct {
	// Index into data of each identifier.
	ids   []int
	idMap bitvec.V[uint32]
	data  []dataEntry[D]
}

// insert inserts data into m.
// It returns an I value that identifies data in m.
func (m *dataMap[I, D]) insert(data D) I {
	if m.idMap.Rem() == 0 {
		n := max(1, len(m.ids)/32)
		m.idMap.Grow(n)
		m.ids = append(m.ids, make([]int, n*32)...)
	}
	idx, ok := m.idMap.Search()
	if !ok {
		panic("unexpected failure from bitvec.V.Search")
	}
	m.idMap.Set(idx)
	m.ids[idx] = len(m.data)
	m.data = append(m.data, dataEntry[D]{data, idx})
	return I(idx)
}

// contains reports whether id identifies data in m.
func (m *dataMap[I, _]) contains(id I) bool {
	return id >= 0 && int(id) < len(m.ids) && m.idMap.IsSet(int(id))
}

// remove removes the data identified by id.
// It returns the removed data.
// id must belong to m.
func (m *dataMap[I, D]) remove(id I) D {
	d := m.ids[id]
	data := m.data[d].data
	last := len(m.data) - 1
	if d < last {
		m.data[d] = m.data[last]
		m.ids[m.data[d].id] = d
	}
	m.ids[id] = -1
	m.idMap.Unset(int(id))
	m.data[last] = dataEntry[D]{}
	m.data = m.data[:last]
	return data
}

// get returns a pointer to the data identified by id.
// id must belong to m.
func (m *dataMap[I, D]) get(id I) *D { return &m.data[m.ids[id]].data }

// len returns the number of elements in m.
func (m *dataMap[_, _]) len() int { return len(m.data) }
