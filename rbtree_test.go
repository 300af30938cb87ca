package dict_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iku50/dict"
)

func newIntDict(opts ...dict.Option) *dict.Dict[int, int] {
	return dict.NewOrdered[int, int](opts...)
}

func insertKeys(t *testing.T, d *dict.Dict[int, int], keys ...int) []*dict.Node[int, int] {
	t.Helper()
	nodes := make([]*dict.Node[int, int], 0, len(keys))
	for _, k := range keys {
		n := dict.NewNode[int, int](k)
		require.NoError(t, d.Insert(n, k))
		require.NoError(t, d.Verify(), "after insert %d", k)
		nodes = append(nodes, n)
	}
	return nodes
}

func keysOf[V any](d *dict.Dict[int, V]) []int {
	var keys []int
	for k := range d.All() {
		keys = append(keys, k)
	}
	return keys
}

func TestInsertCase1(t *testing.T) {
	tree := newIntDict()
	insertKeys(t, tree, 1)
	assert.Equal(t, 1, tree.Len())
	t.Log(tree.String())
}

func TestInsertRedUncle(t *testing.T) {
	tree := newIntDict()
	insertKeys(t, tree, 1, 0, 2, 4)
	assert.Equal(t, []int{0, 1, 2, 4}, keysOf(tree))
	t.Log(tree.String())
}

func TestInsertInnerChild(t *testing.T) {
	tree := newIntDict()
	insertKeys(t, tree, 3, 1, 2)
	assert.Equal(t, 2, tree.Stats().Height)
	t.Log(tree.String())
}

func TestInsertOuterChild(t *testing.T) {
	tree := newIntDict()
	insertKeys(t, tree, 3, 2, 1)
	assert.Equal(t, 2, tree.Stats().Height)
	t.Log(tree.String())
}

func TestDeleteLeaf(t *testing.T) {
	tree := newIntDict()
	nodes := insertKeys(t, tree, 1, 0, 2)
	got, err := tree.Delete(nodes[1])
	require.NoError(t, err)
	assert.Same(t, nodes[1], got)
	assert.False(t, got.IsAttached())
	assert.Nil(t, tree.Lookup(0))
	require.NoError(t, tree.Verify())
}

func TestDeleteTwoChildren(t *testing.T) {
	tree := newIntDict()
	nodes := insertKeys(t, tree, 1, 0, 2, 4)
	_, err := tree.Delete(nodes[0])
	require.NoError(t, err)
	assert.Nil(t, tree.Lookup(1))
	assert.Equal(t, []int{0, 2, 4}, keysOf(tree))
	require.NoError(t, tree.Verify())
	t.Log(tree.String())
}

func TestDeleteSuccessorIsRightChild(t *testing.T) {
	tree := newIntDict()
	nodes := insertKeys(t, tree, 5, 2, 8, 7, 9)
	_, err := tree.Delete(nodes[2])
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 7, 9}, keysOf(tree))
	require.NoError(t, tree.Verify())
}

func TestScenario(t *testing.T) {
	tree := newIntDict()
	insertKeys(t, tree, 5, 3, 8, 1, 4, 7, 9, 2, 6, 0)

	require.NoError(t, tree.Verify())
	assert.Equal(t, 0, tree.First().Key())
	assert.Equal(t, 9, tree.Last().Key())
	assert.Equal(t, 4, tree.LowerBound(4).Key())
	assert.Equal(t, 3, tree.StrictLowerBound(4).Key())
	assert.Nil(t, tree.UpperBound(10))
}

func TestDuplicatesKeepInsertionOrder(t *testing.T) {
	tree := dict.NewOrdered[string, string](dict.WithDuplicates())
	for _, v := range []string{"v1", "v2", "v3"} {
		require.NoError(t, tree.Insert(dict.NewNode[string, string](v), "a"))
	}
	_, err := tree.AllocInsert("0", "before")
	require.NoError(t, err)
	_, err = tree.AllocInsert("b", "after")
	require.NoError(t, err)
	require.NoError(t, tree.Verify())

	var run []string
	for n := tree.Lookup("a"); n != nil && n.Key() == "a"; n = tree.Next(n) {
		run = append(run, n.Value())
	}
	assert.Equal(t, []string{"v1", "v2", "v3"}, run)
	assert.Equal(t, "v3", tree.LowerBound("a").Value())
	assert.Equal(t, "v1", tree.UpperBound("a").Value())
}

func TestDuplicateRejected(t *testing.T) {
	tree := newIntDict()
	insertKeys(t, tree, 1, 2, 3)
	before := tree.String()

	n := dict.NewNode[int, int](99)
	err := tree.Insert(n, 2)
	require.ErrorIs(t, err, dict.ErrDuplicateKey)
	assert.False(t, n.IsAttached())
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, before, tree.String())
	v, ok := tree.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCapacityExceeded(t *testing.T) {
	tree := newIntDict(dict.WithCapacity(2))
	insertKeys(t, tree, 1, 2)
	assert.True(t, tree.IsFull())

	err := tree.Insert(dict.NewNode[int, int](3), 3)
	require.ErrorIs(t, err, dict.ErrCapacityExceeded)
	assert.Equal(t, 2, tree.Len())
	require.NoError(t, tree.Verify())
}

func TestMembershipErrors(t *testing.T) {
	tree := newIntDict(dict.WithStrict(false))
	other := newIntDict(dict.WithStrict(false))
	nodes := insertKeys(t, tree, 1, 2)

	require.ErrorIs(t, tree.Insert(nodes[0], 5), dict.ErrMembership)
	require.ErrorIs(t, other.Insert(nodes[0], 5), dict.ErrMembership)

	_, err := other.Delete(nodes[0])
	require.ErrorIs(t, err, dict.ErrMembership)
	assert.Nil(t, other.Next(nodes[0]))

	loose := dict.NewNode[int, int](0)
	_, err = tree.Delete(loose)
	require.ErrorIs(t, err, dict.ErrMembership)
	assert.Nil(t, tree.Prev(loose))
	require.NoError(t, tree.Verify())
}

func TestStrictMembershipPanics(t *testing.T) {
	tree := newIntDict(dict.WithStrict(true))
	nodes := insertKeys(t, tree, 1)

	assert.Panics(t, func() { _ = tree.Insert(nodes[0], 2) })
	assert.Panics(t, func() { _, _ = tree.Delete(dict.NewNode[int, int](0)) })
	assert.Panics(t, func() { tree.Next(dict.NewNode[int, int](0)) })
}

func TestNodeReuse(t *testing.T) {
	a, b := newIntDict(), newIntDict()
	nodes := insertKeys(t, a, 1, 2, 3)

	n, err := a.Delete(nodes[1])
	require.NoError(t, err)
	require.NoError(t, b.Insert(n, 20))
	assert.True(t, b.Contains(n))
	assert.False(t, a.Contains(n))
	assert.Equal(t, 20, n.Key())
	assert.Equal(t, 2, n.Value())
	require.NoError(t, a.Verify())
	require.NoError(t, b.Verify())
}

func TestDeleteAllAnyOrder(t *testing.T) {
	const count = 300
	rng := rand.New(rand.NewPCG(1, 2))
	tree := newIntDict()
	fresh := newIntDict()

	nodes := make([]*dict.Node[int, int], 0, count)
	for _, k := range rng.Perm(count) {
		n := dict.NewNode[int, int](k)
		require.NoError(t, tree.Insert(n, k))
		nodes = append(nodes, n)
	}
	require.NoError(t, tree.Verify())
	assert.Equal(t, count, tree.Len())

	rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
	for _, n := range nodes {
		_, err := tree.Delete(n)
		require.NoError(t, err)
		require.NoError(t, tree.Verify(), "after delete %d", n.Key())
	}

	assert.Equal(t, 0, tree.Len())
	assert.True(t, tree.IsEmpty())
	assert.Nil(t, tree.First())
	assert.Nil(t, tree.Last())
	assert.Equal(t, fresh.Stats(), tree.Stats())
	assert.Equal(t, fresh.String(), tree.String())
}

func TestRandomIDG(t *testing.T) {
	tree := dict.NewOrdered[int, string]()
	inserted := make(map[int]*dict.Node[int, string])
	rng := rand.New(rand.NewPCG(7, 11))
	numOperations := 1000

	for i := 0; i < numOperations; i++ {
		key := rng.IntN(5000)
		n := dict.NewNode[int, string](fmt.Sprintf("%d", key))
		err := tree.Insert(n, key)
		if _, exists := inserted[key]; exists {
			require.ErrorIs(t, err, dict.ErrDuplicateKey)
		} else {
			require.NoError(t, err)
			inserted[key] = n
		}
		if !assert.NoError(t, tree.Verify(), "Check Failed") {
			t.Log(tree.String())
			t.FailNow()
		}
	}

	for key := range inserted {
		switch rng.IntN(3) {
		case 0:
			k := 5000 + rng.IntN(5000)
			v := fmt.Sprintf("%d", k)
			n, err := tree.AllocInsert(k, v)
			if _, exists := inserted[k]; exists {
				require.ErrorIs(t, err, dict.ErrDuplicateKey)
				continue
			}
			require.NoError(t, err)
			inserted[k] = n
			got, ok := tree.Get(k)
			assert.True(t, ok)
			assert.Equal(t, v, got, "Value should be correctly inserted and retrieved")
		case 1:
			if n, exists := inserted[key]; exists {
				_, err := tree.Delete(n)
				require.NoError(t, err)
				delete(inserted, key)
				assert.Nil(t, tree.Lookup(key), "Value should be nil after deletion")
			}
		case 2:
			n, exists := inserted[key]
			actual := tree.Lookup(key)
			if exists {
				assert.Same(t, n, actual, "Value should be correctly retrieved")
			} else {
				assert.Nil(t, actual, "Value should be nil for non-existent key")
			}
		}
		require.NoError(t, tree.Verify())
	}

	assert.Equal(t, len(inserted), tree.Len())
	for key, n := range inserted {
		assert.Same(t, n, tree.Lookup(key), "Final check: node should match for key")
	}
}

func TestRandomIDGDuplicates(t *testing.T) {
	const keySpace = 50
	tree := dict.NewOrdered[int, int](dict.WithDuplicates())
	runs := make(map[int][]*dict.Node[int, int])
	rng := rand.New(rand.NewPCG(13, 17))
	size := 0

	for i := 0; i < 5000; i++ {
		key := rng.IntN(keySpace)
		run := runs[key]
		if len(run) > 0 && rng.IntN(5) < 2 {
			// delete from anywhere inside the equal run
			idx := rng.IntN(len(run))
			_, err := tree.Delete(run[idx])
			require.NoError(t, err)
			runs[key] = append(run[:idx], run[idx+1:]...)
			size--
		} else {
			n, err := tree.AllocInsert(key, i)
			require.NoError(t, err)
			runs[key] = append(run, n)
			size++
		}
		if !assert.NoError(t, tree.Verify(), "Check Failed") {
			t.Log(tree.String())
			t.FailNow()
		}
		if i%50 != 0 {
			continue
		}
		assert.Equal(t, size, tree.Len())
		for k, run := range runs {
			want := make([]int, 0, len(run))
			for _, n := range run {
				want = append(want, n.Value())
			}
			var got []int
			for n := tree.Lookup(k); n != nil && n.Key() == k; n = tree.Next(n) {
				got = append(got, n.Value())
			}
			if len(want) == 0 {
				assert.Nil(t, got, "key %d", k)
				continue
			}
			assert.Equal(t, want, got, "insertion order within run of key %d", k)
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	tree := dict.NewOrdered[int, int](dict.WithDuplicates())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tree.AllocInsert(rand.Int(), i)
	}
}

func BenchmarkLookup(b *testing.B) {
	tree := dict.NewOrdered[int, int](dict.WithDuplicates())
	for i := 0; i < b.N; i++ {
		_, _ = tree.AllocInsert(rand.Int(), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Lookup(rand.Int())
	}
}

func BenchmarkDelete(b *testing.B) {
	tree := dict.NewOrdered[int, int](dict.WithDuplicates())
	nodes := make([]*dict.Node[int, int], 0, b.N)
	for i := 0; i < b.N; i++ {
		n, _ := tree.AllocInsert(rand.Int(), i)
		nodes = append(nodes, n)
	}
	b.ResetTimer()
	for _, n := range nodes {
		_, _ = tree.Delete(n)
	}
}

func BenchmarkLoad(b *testing.B) {
	nodes := make([]*dict.Node[int, int], b.N)
	for i := range nodes {
		nodes[i] = dict.NewNode[int, int](i)
	}
	tree := dict.NewOrdered[int, int]()
	b.ResetTimer()
	ld, _ := tree.LoadBegin()
	for i, n := range nodes {
		_ = ld.Next(n, i)
	}
	ld.End()
}
