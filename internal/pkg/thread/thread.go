// Package thread turns flat parent-pointer records into reply forests.
package thread

// KeyFunc 返回记录自身的 id 以及父 id，父 id 为 nil 表示根节点
type KeyFunc[T any] func(T) (id uint64, parentID *uint64)

// Node 线程树中的一个节点
type Node[T any] struct {
	Value   T
	Replies []*Node[T]
}

type options struct {
	promoteOrphans bool
}

type Option func(*options)

// WithOrphanPromotion 父节点不在输入中的记录会作为根节点返回，而不是被丢弃
func WithOrphanPromotion() Option {
	return func(o *options) {
		o.promoteOrphans = true
	}
}

// Build 将扁平记录构造成森林
// 同级顺序与输入顺序一致，输入不会被修改
func Build[T any](items []T, key KeyFunc[T], opts ...Option) []*Node[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	nodes := make([]*Node[T], len(items))
	index := make(map[uint64]*Node[T], len(items))
	for i, item := range items {
		n := &Node[T]{Value: item, Replies: []*Node[T]{}}
		nodes[i] = n
		id, _ := key(item)
		if _, dup := index[id]; !dup {
			index[id] = n
		}
	}

	roots := make([]*Node[T], 0)
	for i, item := range items {
		_, parentID := key(item)
		n := nodes[i]
		if parentID == nil {
			roots = append(roots, n)
			continue
		}
		parent, ok := index[*parentID]
		if !ok || parent == n {
			if o.promoteOrphans {
				roots = append(roots, n)
			}
			continue
		}
		parent.Replies = append(parent.Replies, n)
	}
	return roots
}

// Closure 返回 rootID 及其全部后代的 id，rootID 在前，之后按层序排列
// rootID 不在输入中时返回 nil
func Closure[T any](items []T, key KeyFunc[T], rootID uint64) []uint64 {
	children := make(map[uint64][]uint64, len(items))
	found := false
	for _, item := range items {
		id, parentID := key(item)
		if id == rootID {
			found = true
		}
		if parentID != nil {
			children[*parentID] = append(children[*parentID], id)
		}
	}
	if !found {
		return nil
	}

	seen := map[uint64]struct{}{rootID: {}}
	out := []uint64{rootID}
	for i := 0; i < len(out); i++ {
		for _, child := range children[out[i]] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out = append(out, child)
		}
	}
	return out
}

// Orphans 返回父 id 无法在输入中解析的记录的 id
func Orphans[T any](items []T, key KeyFunc[T]) []uint64 {
	ids := make(map[uint64]struct{}, len(items))
	for _, item := range items {
		id, _ := key(item)
		ids[id] = struct{}{}
	}
	var out []uint64
	for _, item := range items {
		id, parentID := key(item)
		if parentID == nil {
			continue
		}
		if _, ok := ids[*parentID]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Walk 先序遍历森林
func Walk[T any](roots []*Node[T], fn func(depth int, n *Node[T])) {
	var visit func(depth int, ns []*Node[T])
	visit = func(depth int, ns []*Node[T]) {
		for _, n := range ns {
			fn(depth, n)
			visit(depth+1, n.Replies)
		}
	}
	visit(0, roots)
}

// Map 保持结构不变，转换节点的值
func Map[T, U any](roots []*Node[T], fn func(T) U) []*Node[U] {
	out := make([]*Node[U], len(roots))
	for i, n := range roots {
		out[i] = &Node[U]{Value: fn(n.Value), Replies: Map(n.Replies, fn)}
	}
	return out
}
