package dict

// rotate left is like
//
//	  |                       |
//	  N                       S
//	 / \     l-rotate(N)     / \
//	L   S    ==========>    N   R
//	   / \                 / \
//	  M   R               L   M
//
// Links into the sentinel are written like any other; the sentinel's parent
// is scratch space.
func (d *Dict[K, V]) rotateLeft(n *Node[K, V]) {
	s := n.right
	n.right = s.left
	s.left.parent = n

	p := n.parent
	s.parent = p
	if n == p.left {
		p.left = s
	} else {
		p.right = s
	}

	s.left = n
	n.parent = s
}

// rotate right is like
//
//	    |                       |
//	    N                       L
//	   / \     r-rotate(N)     / \
//	  L   S    ==========>    M   N
//	 / \                         / \
//	M   R                       R   S
func (d *Dict[K, V]) rotateRight(n *Node[K, V]) {
	l := n.left
	n.left = l.right
	l.right.parent = n

	p := n.parent
	l.parent = p
	if n == p.right {
		p.right = l
	} else {
		p.left = l
	}

	l.right = n
	n.parent = l
}

// Insert attaches n under key. Equal keys, when allowed, are placed after
// the existing ones so that traversal returns them in insertion order.
func (d *Dict[K, V]) Insert(n *Node[K, V], key K) error {
	d.mustLive()
	if n.state != unattached {
		return d.misuse("insert of node that is not free")
	}
	if d.capacity > 0 && d.count >= d.capacity {
		return ErrCapacityExceeded
	}

	nilnode := d.sentinel()
	where, parent := d.root(), nilnode
	result := -1
	for where != nilnode {
		result = d.compare(key, where.key)
		if result == 0 && !d.dupes {
			return ErrDuplicateKey
		}
		parent = where
		if result < 0 {
			where = where.left
		} else {
			where = where.right
		}
	}

	if parent == nilnode || result < 0 {
		parent.left = n
	} else {
		parent.right = n
	}
	n.key = key
	n.parent = parent
	n.left, n.right = nilnode, nilnode
	n.attach(d)
	d.count++

	d.maintainAfterInsert(n)
	return nil
}

// AllocInsert obtains a node from the allocator hook and inserts it.
func (d *Dict[K, V]) AllocInsert(key K, value V) (*Node[K, V], error) {
	d.mustLive()
	n := d.alloc(d.context)
	if n == nil {
		return nil, ErrAllocationFailed
	}
	if err := n.Init(value); err != nil {
		return nil, d.misuse("allocator returned a node that is not free")
	}
	if err := d.Insert(n, key); err != nil {
		d.free(n, d.context)
		return nil, err
	}
	return n, nil
}

func (d *Dict[K, V]) maintainAfterInsert(n *Node[K, V]) {
	n.c = red
	parent := n.parent
	for parent.c == red {
		grandpa := parent.parent
		if parent == grandpa.left {
			uncle := grandpa.right
			// case 1: red uncle, push the violation two levels up
			if uncle.c == red {
				parent.c = black
				uncle.c = black
				grandpa.c = red
				n = grandpa
				parent = n.parent
				continue
			}
			// case 2: inner child, turn it into an outer one
			if n == parent.right {
				d.rotateLeft(parent)
				parent = n
			}
			// case 3: outer child
			parent.c = black
			grandpa.c = red
			d.rotateRight(grandpa)
			break
		}

		uncle := grandpa.left
		if uncle.c == red {
			parent.c = black
			uncle.c = black
			grandpa.c = red
			n = grandpa
			parent = n.parent
			continue
		}
		if n == parent.left {
			d.rotateRight(parent)
			parent = n
		}
		parent.c = black
		grandpa.c = red
		d.rotateLeft(grandpa)
		break
	}
	d.root().c = black
}

// Delete detaches n and returns it for reuse.
func (d *Dict[K, V]) Delete(n *Node[K, V]) (*Node[K, V], error) {
	d.mustLive()
	if !d.Contains(n) {
		return nil, d.misuse("delete of node not in this dictionary")
	}

	nilnode := d.sentinel()
	parent := n.parent
	var child *Node[K, V]

	if n.left != nilnode && n.right != nilnode {
		// The successor has no left child. Unlink it from its slot and move
		// it into n's slot, taking n's color; the fixup then runs at the
		// successor's old position with the successor's old color.
		next := d.minimum(n.right)
		nextParent := next.parent
		nextColor := next.c

		child = next.right
		child.parent = nextParent
		if nextParent.left == next {
			nextParent.left = child
		} else {
			nextParent.right = child
		}

		next.parent = parent
		next.left = n.left
		next.right = n.right
		next.left.parent = next
		next.right.parent = next
		next.c = n.c
		n.c = nextColor

		if parent.left == n {
			parent.left = next
		} else {
			parent.right = next
		}
	} else {
		child = n.left
		if child == nilnode {
			child = n.right
		}
		child.parent = parent
		if n == parent.left {
			parent.left = child
		} else {
			parent.right = child
		}
	}

	removed := n.c
	n.detach()
	d.count--

	if removed == black {
		d.maintainAfterDelete(child)
	}
	return n, nil
}

// DeleteFree deletes n and hands it to the free hook.
func (d *Dict[K, V]) DeleteFree(n *Node[K, V]) error {
	n, err := d.Delete(n)
	if err != nil {
		return err
	}
	d.free(n, d.context)
	return nil
}

// maintainAfterDelete resolves the missing black on the path through
// child. child may be the sentinel, whose parent was set by Delete.
func (d *Dict[K, V]) maintainAfterDelete(child *Node[K, V]) {
	for child != d.root() && child.c == black {
		parent := child.parent
		if child == parent.left {
			sister := parent.right
			// case 1: red sister, rotate to get a black one
			if sister.c == red {
				sister.c = black
				parent.c = red
				d.rotateLeft(parent)
				sister = parent.right
			}
			// case 2: both nephews black, move the deficiency up
			if sister.left.c == black && sister.right.c == black {
				sister.c = red
				child = parent
				continue
			}
			// case 3: far nephew black, rotate the near one outwards
			if sister.right.c == black {
				sister.left.c = black
				sister.c = red
				d.rotateRight(sister)
				sister = parent.right
			}
			// case 4: far nephew red
			sister.c = parent.c
			parent.c = black
			sister.right.c = black
			d.rotateLeft(parent)
			break
		}

		sister := parent.left
		if sister.c == red {
			sister.c = black
			parent.c = red
			d.rotateRight(parent)
			sister = parent.left
		}
		if sister.right.c == black && sister.left.c == black {
			sister.c = red
			child = parent
			continue
		}
		if sister.left.c == black {
			sister.right.c = black
			sister.c = red
			d.rotateLeft(sister)
			sister = parent.left
		}
		sister.c = parent.c
		parent.c = black
		sister.left.c = black
		d.rotateRight(parent)
		break
	}
	child.c = black
	d.root().c = black
}
