package dict

// Merge moves every node of src into d and leaves src empty. Both
// dictionaries must be Similar. The two key sequences are merged in
// O(n+m) and the result is rebuilt like a bulk load; among equal keys the
// nodes of d come first.
//
// Under reject-duplicates a key present in both dictionaries fails the
// merge with ErrDuplicateKey, and a result larger than d's capacity fails
// with ErrCapacityExceeded. Both dictionaries are untouched on failure.
func (d *Dict[K, V]) Merge(src *Dict[K, V]) error {
	d.mustLive()
	src.mustLive()
	if d == src {
		return nil
	}
	if !d.Similar(src) {
		return ErrIncompatible
	}
	if src.count == 0 {
		return nil
	}
	total := d.count + src.count
	if d.capacity > 0 && total > d.capacity {
		return ErrCapacityExceeded
	}

	merged := make([]*Node[K, V], 0, total)
	a, b := d.First(), src.First()
	for a != nil || b != nil {
		switch {
		case b == nil:
			merged = append(merged, a)
			a = d.next(a)
		case a == nil:
			merged = append(merged, b)
			b = src.next(b)
		default:
			result := d.compare(a.key, b.key)
			if result == 0 && !d.dupes {
				return ErrDuplicateKey
			}
			if result <= 0 {
				merged = append(merged, a)
				a = d.next(a)
			} else {
				merged = append(merged, b)
				b = src.next(b)
			}
		}
	}

	for _, n := range merged {
		n.attach(d)
	}
	moved := src.count
	src.count = 0
	src.initSentinel()

	idx := 0
	d.build(total, func() *Node[K, V] {
		n := merged[idx]
		idx++
		return n
	})
	d.logger.Debug("merged dictionaries", "moved", moved, "count", total)
	return nil
}
