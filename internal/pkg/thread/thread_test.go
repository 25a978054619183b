package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	id     uint64
	parent *uint64
}

func p(id uint64) *uint64 { return &id }

func recKey(r rec) (uint64, *uint64) { return r.id, r.parent }

func ids(ns []*Node[rec]) []uint64 {
	out := make([]uint64, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Value.id)
	}
	return out
}

func TestBuild_NestedExample(t *testing.T) {
	items := []rec{{1, nil}, {2, p(1)}, {3, p(2)}, {4, nil}}

	roots := Build(items, recKey)

	require.Len(t, roots, 2)
	assert.Equal(t, []uint64{1, 4}, ids(roots))
	assert.Equal(t, []uint64{2}, ids(roots[0].Replies))
	assert.Equal(t, []uint64{3}, ids(roots[0].Replies[0].Replies))
	assert.Empty(t, roots[0].Replies[0].Replies[0].Replies)
	assert.Empty(t, roots[1].Replies)
	assert.NotNil(t, roots[1].Replies)
}

func TestBuild_ChildBeforeParentInInput(t *testing.T) {
	items := []rec{{3, p(2)}, {2, p(1)}, {1, nil}}

	roots := Build(items, recKey)

	require.Len(t, roots, 1)
	assert.Equal(t, []uint64{2}, ids(roots[0].Replies))
	assert.Equal(t, []uint64{3}, ids(roots[0].Replies[0].Replies))
}

func TestBuild_SiblingOrderFollowsInput(t *testing.T) {
	items := []rec{{1, nil}, {9, p(1)}, {5, nil}, {2, p(1)}, {7, p(1)}, {3, nil}}

	roots := Build(items, recKey)

	assert.Equal(t, []uint64{1, 5, 3}, ids(roots))
	assert.Equal(t, []uint64{9, 2, 7}, ids(roots[0].Replies))
}

func TestBuild_ForestInvariant(t *testing.T) {
	items := []rec{
		{1, nil}, {2, p(1)}, {3, p(1)}, {4, p(2)}, {5, nil},
		{6, p(5)}, {7, p(4)}, {8, p(3)}, {9, p(6)},
	}

	roots := Build(items, recKey)

	for _, r := range roots {
		assert.Nil(t, r.Value.parent)
	}
	seen := 0
	Walk(roots, func(_ int, n *Node[rec]) {
		seen++
		var want []uint64
		for _, it := range items {
			if it.parent != nil && *it.parent == n.Value.id {
				want = append(want, it.id)
			}
		}
		if want == nil {
			want = []uint64{}
		}
		assert.Equal(t, want, ids(n.Replies), "replies of %d", n.Value.id)
	})
	assert.Equal(t, len(items), seen)
}

func TestBuild_DropsOrphans(t *testing.T) {
	items := []rec{{1, nil}, {2, p(42)}, {3, p(2)}, {4, p(1)}}

	roots := Build(items, recKey)

	var all []uint64
	Walk(roots, func(_ int, n *Node[rec]) { all = append(all, n.Value.id) })
	assert.ElementsMatch(t, []uint64{1, 4}, all)
}

func TestBuild_PromotesOrphansWhenAsked(t *testing.T) {
	items := []rec{{5, p(42)}, {1, nil}, {2, p(42)}, {3, p(2)}}

	roots := Build(items, recKey, WithOrphanPromotion())

	assert.Equal(t, []uint64{5, 1, 2}, ids(roots))
	assert.Equal(t, []uint64{3}, ids(roots[2].Replies))
}

func TestBuild_SelfParentIsOrphan(t *testing.T) {
	items := []rec{{1, p(1)}, {2, nil}}

	assert.Equal(t, []uint64{2}, ids(Build(items, recKey)))
	assert.Equal(t, []uint64{1, 2}, ids(Build(items, recKey, WithOrphanPromotion())))
}

func TestBuild_Empty(t *testing.T) {
	roots := Build[rec](nil, recKey)

	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	items := []rec{{2, p(1)}, {1, nil}}
	before := append([]rec(nil), items...)

	Build(items, recKey)

	assert.Equal(t, before, items)
}

func TestClosure(t *testing.T) {
	items := []rec{{1, nil}, {2, p(1)}, {3, p(2)}, {4, nil}, {5, p(1)}, {6, p(4)}}

	tests := []struct {
		name string
		root uint64
		want []uint64
	}{
		{"whole subtree", 1, []uint64{1, 2, 5, 3}},
		{"leaf", 3, []uint64{3}},
		{"other root", 4, []uint64{4, 6}},
		{"absent", 99, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Closure(items, recKey, tt.root))
		})
	}
}

func TestClosure_RemainderMatchesBuild(t *testing.T) {
	items := []rec{{1, nil}, {2, p(1)}, {3, p(2)}, {4, nil}}

	closure := Closure(items, recKey, 1)
	gone := map[uint64]bool{}
	for _, id := range closure {
		gone[id] = true
	}
	var rest []rec
	for _, it := range items {
		if !gone[it.id] {
			rest = append(rest, it)
		}
	}

	assert.ElementsMatch(t, []uint64{1, 2, 3}, closure)
	assert.Equal(t, []uint64{4}, ids(Build(rest, recKey)))
	assert.Nil(t, Closure(rest, recKey, 1))
}

func TestClosure_ToleratesCycles(t *testing.T) {
	items := []rec{{1, p(2)}, {2, p(1)}}

	assert.Equal(t, []uint64{1, 2}, Closure(items, recKey, 1))
}

func TestOrphans(t *testing.T) {
	items := []rec{{1, nil}, {2, p(42)}, {3, p(2)}, {4, p(7)}}

	assert.Equal(t, []uint64{2, 4}, Orphans(items, recKey))
}

func TestMap(t *testing.T) {
	roots := Build([]rec{{1, nil}, {2, p(1)}}, recKey)

	mapped := Map(roots, func(r rec) uint64 { return r.id * 10 })

	require.Len(t, mapped, 1)
	assert.Equal(t, uint64(10), mapped[0].Value)
	require.Len(t, mapped[0].Replies, 1)
	assert.Equal(t, uint64(20), mapped[0].Replies[0].Value)
	assert.Empty(t, mapped[0].Replies[0].Replies)
}
