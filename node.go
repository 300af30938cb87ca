package dict

import "fmt"

type color int

const (
	red color = iota + 1
	black
)

type nodeState int

const (
	unattached nodeState = iota
	attached
	pooled
	// queued in a Loader, not yet reachable from any root
	loading
)

// Node is the unit of storage of a Dict. The key is set by Insert (or by a
// Loader) and is read-only afterwards; the value belongs to the caller.
//
// A Node is attached to at most one Dict at a time. Once removed it can be
// inserted again, into the same or another Dict.
type Node[K, V any] struct {
	c color

	left   *Node[K, V]
	right  *Node[K, V]
	parent *Node[K, V]

	key   K
	value V

	state nodeState
	owner *Dict[K, V]
}

// NewNode returns an unattached node carrying value.
func NewNode[K, V any](value V) *Node[K, V] {
	n := &Node[K, V]{}
	n.reset()
	n.value = value
	return n
}

// Init rebinds an unattached node to value, clearing its key.
func (n *Node[K, V]) Init(value V) error {
	if n.state != unattached {
		return fmt.Errorf("%w: init of node that is not free", ErrMembership)
	}
	n.reset()
	n.value = value
	return nil
}

// Destroy checks that the node may be discarded. It never touches a tree.
func (n *Node[K, V]) Destroy() error {
	if n.state == attached || n.state == loading {
		return fmt.Errorf("%w: destroy of node in use", ErrMembership)
	}
	var zero V
	n.value = zero
	return nil
}

func (n *Node[K, V]) IsAttached() bool {
	return n.state == attached
}

func (n *Node[K, V]) Key() K {
	return n.key
}

func (n *Node[K, V]) Value() V {
	return n.value
}

func (n *Node[K, V]) SetValue(value V) {
	n.value = value
}

func (n *Node[K, V]) reset() {
	var zero K
	n.c = black
	n.left, n.right, n.parent = nil, nil, nil
	n.key = zero
	n.state = unattached
	n.owner = nil
}

func (n *Node[K, V]) attach(d *Dict[K, V]) {
	n.state = attached
	n.owner = d
}

func (n *Node[K, V]) detach() {
	n.left, n.right, n.parent = nil, nil, nil
	n.state = unattached
	n.owner = nil
}

func (c color) String() string {
	switch c {
	case red:
		return "red"
	case black:
		return "black"
	default:
		return "unknown"
	}
}

func (n *Node[K, V]) String() string {
	if n == nil {
		return "nil"
	}
	return fmt.Sprintf("[key: %v, value: %v, color: %s]", n.key, n.value, n.c)
}
