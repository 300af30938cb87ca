package dict

import "fmt"

type verifyState[K, V any] struct {
	last *Node[K, V]
	seen int
}

// Verify walks the whole tree and reports the first broken invariant:
// ordering, coloring, black height, parent links, ownership and count.
// It never modifies the dictionary.
func (d *Dict[K, V]) Verify() error {
	err := d.verify()
	if err != nil {
		d.logger.Warn("dictionary verification failed", "err", err)
	}
	return err
}

func (d *Dict[K, V]) verify() error {
	nilnode := d.sentinel()
	if nilnode.c != black {
		return ErrSentinelColor
	}
	root := d.root()
	if root != nilnode {
		if root.c != black {
			return ErrRootColor
		}
		if root.parent != nilnode {
			return fmt.Errorf("%w: root %v", ErrParentLink, root.key)
		}
	}

	st := &verifyState[K, V]{}
	if _, err := d.check(root, st); err != nil {
		return err
	}
	if st.seen != d.count {
		return fmt.Errorf("%w: counted %d, reachable %d", ErrCountMismatch, d.count, st.seen)
	}
	return nil
}

// check returns the black height of the subtree at n.
func (d *Dict[K, V]) check(n *Node[K, V], st *verifyState[K, V]) (int, error) {
	nilnode := d.sentinel()
	if n == nilnode {
		return 1, nil
	}
	st.seen++
	if st.seen > d.count {
		return 0, fmt.Errorf("%w: more than %d nodes reachable", ErrCountMismatch, d.count)
	}
	if n.state != attached || n.owner != d {
		return 0, fmt.Errorf("%w: key %v", ErrOwnerMismatch, n.key)
	}
	if (n.left != nilnode && n.left.parent != n) || (n.right != nilnode && n.right.parent != n) {
		return 0, fmt.Errorf("%w: below key %v", ErrParentLink, n.key)
	}
	if n.c == red && (n.left.c == red || n.right.c == red) {
		return 0, fmt.Errorf("%w: key %v", ErrRedViolation, n.key)
	}

	lh, err := d.check(n.left, st)
	if err != nil {
		return 0, err
	}
	if st.last != nil {
		result := d.compare(st.last.key, n.key)
		if result > 0 || (result == 0 && !d.dupes) {
			return 0, fmt.Errorf("%w: %v before %v", ErrOrderViolation, st.last.key, n.key)
		}
	}
	st.last = n
	rh, err := d.check(n.right, st)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: key %v (%d vs %d)", ErrBlackHeightMismatch, n.key, lh, rh)
	}
	if n.c == black {
		lh++
	}
	return lh, nil
}
