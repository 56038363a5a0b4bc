package store

import (
	"bytes"
	"sort"
	"testing"

	weave "github.com/iov-one/nftescrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. The in-memory btree and the iavl commit store both use it
// from their package tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a cleanup function.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite binds the suite to a store constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet checks that cache layers read through to their parent and only
// publish writes on Write.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("maker"), []byte("alice")
	s.AssertGetHas(t, base, k, nil, false)
	base.Set(k, v)
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("taker"), []byte("bob")
	cache.Set(k2, v2)
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	cache.Write()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// a discarded cache leaves no trace
	k3, v3 := []byte("vault"), []byte("nft")
	c2 := base.CacheWrap()
	c2.Set(k3, v3)
	c2.Delete(k)
	c2.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	c3 := base.CacheWrap()
	c3.Delete(k)
	c3.Write()
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := [][]byte{[]byte("k0"), []byte("k1"), []byte("k2"), []byte("k3")}
	vs := [][]byte{[]byte("v0"), []byte("v1"), []byte("v2"), []byte("v3"), []byte("v4")}

	parent, cleanup := s.makeBase()
	defer cleanup()

	applyOps(parent, SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2]))
	child := parent.CacheWrap()
	applyOps(child, SetOp(ks[1], vs[4]), SetOp(ks[3], vs[3]), DelOp(ks[2]))

	// parent is unaffected
	s.AssertGetHas(t, parent, ks[1], vs[1], true)
	s.AssertGetHas(t, parent, ks[2], vs[2], true)
	s.AssertGetHas(t, parent, ks[3], nil, false)

	// the child shows changes
	childView := []Model{weave.Pair(ks[1], vs[4]), weave.Pair(ks[2], nil), weave.Pair(ks[3], vs[3])}
	for _, q := range childView {
		s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
	}

	child.Write()
	for _, q := range childView {
		s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
	}
}

// IteratorWithConflicts checks that iteration merges a cache with its
// parent, honoring overwrites and deletes in both directions.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	a := weave.Pair([]byte("a"), []byte("1"))
	a2 := weave.Pair([]byte("a"), []byte("2"))
	b := weave.Pair([]byte("b"), []byte("1"))
	b2 := weave.Pair([]byte("b"), []byte("2"))
	c := weave.Pair([]byte("c"), []byte("1"))
	d := weave.Pair([]byte("d"), []byte("1"))

	all := []Model{a, b, c}
	overwritten := []Model{a2, b2, c, d}

	cases := map[string]struct {
		pre     []Op
		child   []Op
		queries []rangeQuery
	}{
		"iterate in child only": {
			child: setOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, all},
				{b.Key, c.Key, false, all[1:2]},
				{nil, nil, true, reverse(all)},
			},
		},
		"iterate over parent only": {
			pre: setOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, all},
				{b.Key, nil, false, all[1:]},
				{nil, nil, true, reverse(all)},
			},
		},
		"simple combination": {
			pre:   setOps(a, c),
			child: setOps(b),
			queries: []rangeQuery{
				{nil, nil, false, all},
				{nil, c.Key, true, reverse(all[:2])},
			},
		},
		"overwrite data should show child data": {
			pre:   setOps(a, b, c),
			child: setOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, overwritten},
				{b.Key, d.Key, false, overwritten[1:3]},
				{nil, nil, true, reverse(overwritten)},
			},
		},
		"deleted keys are skipped": {
			pre:   setOps(a, c, d),
			child: []Op{DelOp(a.Key), DelOp(b.Key), DelOp(d.Key)},
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			applyOps(base, tc.pre...)
			child := base.CacheWrap()
			applyOps(child, tc.child...)

			for _, q := range tc.queries {
				var iter Iterator
				if q.reverse {
					iter = child.ReverseIterator(q.start, q.end)
				} else {
					iter = child.Iterator(q.start, q.end)
				}
				got := drain(iter)
				require.Equal(t, len(q.expected), len(got), "%v", got)
				for i := range q.expected {
					assert.Equal(t, q.expected[i].Key, got[i].Key)
					assert.Equal(t, q.expected[i].Value, got[i].Value)
				}
			}
		})
	}
}

// AssertGetHas checks both Get and Has for a single key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	assert.Equal(t, val, kv.Get(key))
	assert.Equal(t, has, kv.Has(key))
}

// range query checks the results of iteration
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

func applyOps(db SetDeleter, ops ...Op) {
	for _, op := range ops {
		op.Apply(db)
	}
}

func setOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func drain(iter Iterator) []Model {
	defer iter.Close()
	var res []Model
	for ; iter.Valid(); iter.Next() {
		res = append(res, weave.Pair(iter.Key(), iter.Value()))
	}
	return res
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

// sortModels returns a copy of the models sorted by key
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}
