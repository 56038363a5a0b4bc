package store

import (
	"bytes"

	"github.com/google/btree"
)

// mergeIterator walks the cached items of a btree together with the
// iterator of the store below it. Cached values shadow the parent and
// deleted markers hide parent keys.
type mergeIterator struct {
	local     []btree.Item
	parent    Iterator
	ascending bool

	key   []byte
	value []byte
	valid bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(local []btree.Item, parent Iterator, ascending bool) *mergeIterator {
	it := &mergeIterator{
		local:     local,
		parent:    parent,
		ascending: ascending,
	}
	it.advance()
	return it
}

// before reports whether key a comes first in iteration order.
func (m *mergeIterator) before(a, b []byte) bool {
	cmp := bytes.Compare(a, b)
	if m.ascending {
		return cmp < 0
	}
	return cmp > 0
}

// advance moves to the next visible key, skipping deleted entries.
func (m *mergeIterator) advance() {
	for {
		hasLocal := len(m.local) > 0
		hasParent := m.parent.Valid()

		switch {
		case !hasLocal && !hasParent:
			m.valid = false
			m.key, m.value = nil, nil
			return
		case !hasLocal:
			m.set(m.parent.Key(), m.parent.Value())
			m.parent.Next()
			return
		}

		item := m.local[0]
		lkey := item.(keyer).Key()
		if hasParent {
			pkey := m.parent.Key()
			if m.before(pkey, lkey) {
				m.set(pkey, m.parent.Value())
				m.parent.Next()
				return
			}
			if bytes.Equal(pkey, lkey) {
				// cached version wins
				m.parent.Next()
			}
		}
		m.local = m.local[1:]
		if s, ok := item.(setItem); ok {
			m.set(s.key, s.value)
			return
		}
	}
}

func (m *mergeIterator) set(key, value []byte) {
	m.key, m.value, m.valid = key, value, true
}

// Valid implements Iterator
func (m *mergeIterator) Valid() bool {
	return m.valid
}

// Next implements Iterator. Panics when called on an invalid iterator.
func (m *mergeIterator) Next() {
	if !m.valid {
		panic("iterator is not valid")
	}
	m.advance()
}

// Key implements Iterator
func (m *mergeIterator) Key() []byte {
	if !m.valid {
		panic("iterator is not valid")
	}
	return m.key
}

// Value implements Iterator
func (m *mergeIterator) Value() []byte {
	if !m.valid {
		panic("iterator is not valid")
	}
	return m.value
}

// Close releases the parent iterator.
func (m *mergeIterator) Close() {
	m.parent.Close()
	m.local = nil
	m.valid = false
}
