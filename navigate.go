package dict

import "iter"

func (d *Dict[K, V]) minimum(n *Node[K, V]) *Node[K, V] {
	for n.left != d.sentinel() {
		n = n.left
	}
	return n
}

func (d *Dict[K, V]) maximum(n *Node[K, V]) *Node[K, V] {
	for n.right != d.sentinel() {
		n = n.right
	}
	return n
}

// orNil maps the sentinel to nil at the API boundary.
func (d *Dict[K, V]) orNil(n *Node[K, V]) *Node[K, V] {
	if n == d.sentinel() {
		return nil
	}
	return n
}

// First returns the node with the smallest key, or nil if d is empty.
func (d *Dict[K, V]) First() *Node[K, V] {
	if d.count == 0 {
		return nil
	}
	return d.minimum(d.root())
}

// Last returns the node with the greatest key, or nil if d is empty.
func (d *Dict[K, V]) Last() *Node[K, V] {
	if d.count == 0 {
		return nil
	}
	return d.maximum(d.root())
}

// Next returns the in-order successor of n, or nil at the end.
func (d *Dict[K, V]) Next(n *Node[K, V]) *Node[K, V] {
	if !d.Contains(n) {
		_ = d.misuse("next of node not in this dictionary")
		return nil
	}
	return d.next(n)
}

// Prev returns the in-order predecessor of n, or nil at the beginning.
func (d *Dict[K, V]) Prev(n *Node[K, V]) *Node[K, V] {
	if !d.Contains(n) {
		_ = d.misuse("prev of node not in this dictionary")
		return nil
	}
	return d.prev(n)
}

func (d *Dict[K, V]) next(n *Node[K, V]) *Node[K, V] {
	nilnode := d.sentinel()
	if n.right != nilnode {
		return d.minimum(n.right)
	}
	parent := n.parent
	for parent != nilnode && n == parent.right {
		n = parent
		parent = n.parent
	}
	return d.orNil(parent)
}

func (d *Dict[K, V]) prev(n *Node[K, V]) *Node[K, V] {
	nilnode := d.sentinel()
	if n.left != nilnode {
		return d.maximum(n.left)
	}
	parent := n.parent
	for parent != nilnode && n == parent.left {
		n = parent
		parent = n.parent
	}
	return d.orNil(parent)
}

// Lookup returns a node whose key equals key, or nil. With duplicates the
// first node of the equal run is returned.
func (d *Dict[K, V]) Lookup(key K) *Node[K, V] {
	nilnode := d.sentinel()
	n := d.root()
	for n != nilnode {
		result := d.compare(key, n.key)
		switch {
		case result < 0:
			n = n.left
		case result > 0:
			n = n.right
		case !d.dupes:
			return n
		default:
			// keep looking left for an earlier equal key
			found := n
			n = n.left
			for n != nilnode {
				if d.compare(key, n.key) > 0 {
					n = n.right
				} else {
					found = n
					n = n.left
				}
			}
			return found
		}
	}
	return nil
}

// Get returns the value stored under key.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	n := d.Lookup(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// LowerBound returns the node with the greatest key <= key. Among equal
// keys the last one is returned.
func (d *Dict[K, V]) LowerBound(key K) *Node[K, V] {
	return d.descend(key, func(r int) bool { return r >= 0 })
}

// StrictLowerBound returns the node with the greatest key < key.
func (d *Dict[K, V]) StrictLowerBound(key K) *Node[K, V] {
	return d.descend(key, func(r int) bool { return r > 0 })
}

// UpperBound returns the node with the smallest key >= key. Among equal
// keys the first one is returned.
func (d *Dict[K, V]) UpperBound(key K) *Node[K, V] {
	return d.ascend(key, func(r int) bool { return r <= 0 })
}

// StrictUpperBound returns the node with the smallest key > key.
func (d *Dict[K, V]) StrictUpperBound(key K) *Node[K, V] {
	return d.ascend(key, func(r int) bool { return r < 0 })
}

// descend keeps the rightmost node accepted by fit, where fit receives
// compare(key, node.key).
func (d *Dict[K, V]) descend(key K, fit func(int) bool) *Node[K, V] {
	nilnode := d.sentinel()
	var best *Node[K, V]
	for n := d.root(); n != nilnode; {
		if fit(d.compare(key, n.key)) {
			best = n
			n = n.right
		} else {
			n = n.left
		}
	}
	return best
}

// ascend keeps the leftmost node accepted by fit.
func (d *Dict[K, V]) ascend(key K, fit func(int) bool) *Node[K, V] {
	nilnode := d.sentinel()
	var best *Node[K, V]
	for n := d.root(); n != nilnode; {
		if fit(d.compare(key, n.key)) {
			best = n
			n = n.left
		} else {
			n = n.right
		}
	}
	return best
}

// Nodes returns an iterator over the nodes from smallest to largest key.
// The loop body may delete the node it was handed, or any other node; if it
// deletes both the visited node and its successor the iteration stops.
func (d *Dict[K, V]) Nodes() iter.Seq[*Node[K, V]] {
	return func(yield func(*Node[K, V]) bool) {
		for n := d.First(); n != nil; {
			next := d.next(n)
			if !yield(n) {
				return
			}
			n = d.resume(n, next, d.next)
		}
	}
}

// resume picks where a traversal continues after its body ran.
func (d *Dict[K, V]) resume(n, fetched *Node[K, V], step func(*Node[K, V]) *Node[K, V]) *Node[K, V] {
	switch {
	case d.Contains(n):
		return step(n)
	case fetched != nil && d.Contains(fetched):
		return fetched
	default:
		return nil
	}
}

// All returns an iterator over the entries from smallest to largest key.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := range d.Nodes() {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the entries from largest to smallest key.
func (d *Dict[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for n := d.Last(); n != nil; {
			prev := d.prev(n)
			if !yield(n.key, n.value) {
				return
			}
			n = d.resume(n, prev, d.prev)
		}
	}
}
