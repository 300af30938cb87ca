package dict

const defaultPoolChunk = 64

// Pool is a slab allocator for nodes, meant to be installed with
//
//	d.SetAllocator(pool.Alloc, pool.Free, nil)
//
// Nodes are carved out of chunks and recycled through a free list. A
// positive limit caps the number of nodes the pool ever carves out; once
// it is reached and nothing was freed, Alloc returns nil.
type Pool[K, V any] struct {
	chunk []Node[K, V]
	next  int
	free  []*Node[K, V]
	size  int
	limit int
}

// NewPool creates a pool holding at most limit nodes. Zero means no limit.
func NewPool[K, V any](limit int) *Pool[K, V] {
	if limit < 0 {
		limit = 0
	}
	return &Pool[K, V]{limit: limit}
}

// Size returns the number of nodes carved out so far.
func (p *Pool[K, V]) Size() int {
	return p.size
}

// Used returns the number of nodes currently handed out.
func (p *Pool[K, V]) Used() int {
	return p.size - len(p.free)
}

// Alloc satisfies AllocFunc.
func (p *Pool[K, V]) Alloc(any) *Node[K, V] {
	if last := len(p.free) - 1; last >= 0 {
		n := p.free[last]
		p.free[last] = nil
		p.free = p.free[:last]
		n.state = unattached
		return n
	}
	if p.limit > 0 && p.size >= p.limit {
		return nil
	}
	if p.next == len(p.chunk) {
		chunk := defaultPoolChunk
		if p.limit > 0 {
			chunk = min(chunk, p.limit-p.size)
		}
		p.chunk = make([]Node[K, V], chunk)
		p.next = 0
	}
	n := &p.chunk[p.next]
	p.next++
	p.size++
	n.reset()
	return n
}

// Free satisfies FreeFunc. Releasing an attached node or releasing a node
// twice panics.
func (p *Pool[K, V]) Free(n *Node[K, V], _ any) {
	doAssert(n.state == unattached)
	var zero V
	n.reset()
	n.value = zero
	n.state = pooled
	p.free = append(p.free, n)
}
