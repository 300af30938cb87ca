package dict

import "math/bits"

// Loader builds a dictionary from nodes supplied in key order, without
// comparisons or rotations.
type Loader[K, V any] struct {
	d          *Dict[K, V]
	head, tail *Node[K, V]
	count      int
	done       bool
}

// LoadBegin starts a bulk load into d, which must be empty.
func (d *Dict[K, V]) LoadBegin() (*Loader[K, V], error) {
	d.mustLive()
	if d.count != 0 {
		return nil, ErrNotEmpty
	}
	return &Loader[K, V]{d: d}, nil
}

// Next appends n under key. Keys must come in ascending order, or
// non-descending order when duplicates are allowed; the loader does not
// check this, Verify does. A queued node belongs to neither the dictionary
// nor anyone else until End or Abort.
func (l *Loader[K, V]) Next(n *Node[K, V], key K) error {
	doAssert(!l.done)
	if n.state != unattached {
		return l.d.misuse("load of node that is not free")
	}
	if l.d.capacity > 0 && l.count >= l.d.capacity {
		return ErrCapacityExceeded
	}
	n.key = key
	n.left, n.right = nil, nil
	n.state = loading
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.right = n
	}
	l.tail = n
	l.count++
	return nil
}

// End links the queued nodes into a balanced red-black tree.
func (l *Loader[K, V]) End() {
	doAssert(!l.done)
	l.done = true
	d := l.d
	doAssert(d.count == 0)

	cur := l.head
	d.build(l.count, func() *Node[K, V] {
		n := cur
		cur = cur.right
		n.attach(d)
		return n
	})
	d.logger.Debug("bulk load finished", "count", l.count)
}

// Abort gives the queued nodes back unattached and ends the load, leaving
// the dictionary empty.
func (l *Loader[K, V]) Abort() {
	doAssert(!l.done)
	l.done = true
	for n := l.head; n != nil; {
		next := n.right
		n.detach()
		n = next
	}
	l.head, l.tail, l.count = nil, nil, 0
	l.d.logger.Debug("bulk load aborted")
}

// build arranges total nodes, produced in order by pull, into a tree where
// subtree sizes differ by at most one. Every level above depth
// floor(log2(total+1)) is then full; nodes on that last partial level are
// painted red and all others black, which keeps every path at the same
// black height.
func (d *Dict[K, V]) build(total int, pull func() *Node[K, V]) {
	nilnode := d.sentinel()
	full := bits.Len(uint(total+1)) - 1

	var grow func(size, depth int) *Node[K, V]
	grow = func(size, depth int) *Node[K, V] {
		if size == 0 {
			return nilnode
		}
		leftSize := (size - 1) / 2
		left := grow(leftSize, depth+1)

		n := pull()
		n.left = left
		left.parent = n

		right := grow(size-1-leftSize, depth+1)
		n.right = right
		right.parent = n

		if depth == full {
			n.c = red
		} else {
			n.c = black
		}
		return n
	}

	d.initSentinel()
	root := grow(total, 0)
	d.nilnode.left = root
	root.parent = nilnode
	d.nilnode.parent = nilnode
	d.count = total
}
