// Package dict implements an ordered dictionary on top of a red-black tree
// whose nodes are owned by the caller.
//
// The tree follows the classic sentinel formulation of
// [1] Cormen T. H. et al. Introduction to Algorithms, chapter 13 "Red-Black Trees"
// in the node-embedding style of Kaz Kylheku's kazlib dict module: every
// external link points at one black sentinel per dictionary and the root hangs
// off the sentinel's left link.
//
// A Dict is not safe for concurrent use.
package dict

import (
	"cmp"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

// AllocFunc produces a fresh node for AllocInsert. It returns nil when no
// node can be provided.
type AllocFunc[K, V any] func(ctx any) *Node[K, V]

// FreeFunc takes back a node removed by DeleteFree or FreeNodes.
type FreeFunc[K, V any] func(n *Node[K, V], ctx any)

type settings struct {
	capacity int
	dupes    bool
	strict   bool
	logger   *slog.Logger
}

// Option configures a Dict at creation time.
type Option func(*settings)

// WithCapacity bounds the number of nodes. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(s *settings) {
		if n < 0 {
			n = 0
		}
		s.capacity = n
	}
}

// WithDuplicates lets equal keys coexist.
func WithDuplicates() Option {
	return func(s *settings) {
		s.dupes = true
	}
}

// WithStrict makes membership errors panic instead of being returned.
func WithStrict(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Dict is an ordered dictionary. It must not be copied after creation since
// every node links to the embedded sentinel.
type Dict[K, V any] struct {
	nilnode Node[K, V]

	count    int
	capacity int
	compare  func(a, b K) int
	dupes    bool

	alloc   AllocFunc[K, V]
	free    FreeFunc[K, V]
	context any

	strict    bool
	destroyed bool
	logger    *slog.Logger
}

// Stats is a snapshot of the dictionary shape.
type Stats struct {
	Count       int
	Capacity    int
	Height      int
	BlackHeight int
}

// New creates an empty dictionary ordered by compare.
func New[K, V any](compare func(a, b K) int, opts ...Option) *Dict[K, V] {
	s := settings{strict: strictDefault, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	d := &Dict[K, V]{
		capacity: s.capacity,
		compare:  compare,
		dupes:    s.dupes,
		strict:   s.strict,
		logger:   s.logger,
	}
	d.alloc, d.free = defaultAlloc[K, V], defaultFree[K, V]
	d.initSentinel()
	return d
}

// NewOrdered creates an empty dictionary ordered by cmp.Compare.
func NewOrdered[K cmp.Ordered, V any](opts ...Option) *Dict[K, V] {
	return New[K, V](cmp.Compare[K], opts...)
}

// InitLike creates an empty dictionary sharing the comparator, duplicate
// policy, capacity, allocator and logger of d.
func (d *Dict[K, V]) InitLike() *Dict[K, V] {
	d.mustLive()
	n := &Dict[K, V]{
		capacity: d.capacity,
		compare:  d.compare,
		dupes:    d.dupes,
		alloc:    d.alloc,
		free:     d.free,
		context:  d.context,
		strict:   d.strict,
		logger:   d.logger,
	}
	n.initSentinel()
	return n
}

func defaultAlloc[K, V any](any) *Node[K, V] {
	return &Node[K, V]{}
}

func defaultFree[K, V any](*Node[K, V], any) {}

func (d *Dict[K, V]) initSentinel() {
	s := &d.nilnode
	s.left, s.right, s.parent = s, s, s
	s.c = black
}

func (d *Dict[K, V]) sentinel() *Node[K, V] {
	return &d.nilnode
}

func (d *Dict[K, V]) root() *Node[K, V] {
	return d.nilnode.left
}

// SetAllocator installs the node hooks used by AllocInsert, DeleteFree and
// FreeNodes. Nil hooks restore the defaults.
func (d *Dict[K, V]) SetAllocator(alloc AllocFunc[K, V], free FreeFunc[K, V], ctx any) {
	d.mustLive()
	if alloc == nil {
		alloc = defaultAlloc[K, V]
	}
	if free == nil {
		free = defaultFree[K, V]
	}
	d.alloc, d.free, d.context = alloc, free, ctx
}

// AllowDuplicates switches the dictionary to accept equal keys.
func (d *Dict[K, V]) AllowDuplicates() {
	d.mustLive()
	d.dupes = true
}

func (d *Dict[K, V]) Len() int {
	return d.count
}

func (d *Dict[K, V]) IsEmpty() bool {
	return d.count == 0
}

// IsFull reports whether count reached the capacity. Unbounded
// dictionaries are never full.
func (d *Dict[K, V]) IsFull() bool {
	return d.capacity > 0 && d.count == d.capacity
}

func (d *Dict[K, V]) Capacity() int {
	return d.capacity
}

// Contains reports whether n is attached to d. It does not walk the tree.
func (d *Dict[K, V]) Contains(n *Node[K, V]) bool {
	return n != nil && n.state == attached && n.owner == d
}

// Similar reports whether nodes may move between d and other: same
// comparator, duplicate policy and allocator hooks.
func (d *Dict[K, V]) Similar(other *Dict[K, V]) bool {
	if d.dupes != other.dupes {
		return false
	}
	if !sameFunc(d.compare, other.compare) || !sameFunc(d.alloc, other.alloc) || !sameFunc(d.free, other.free) {
		return false
	}
	return sameContext(d.context, other.context)
}

func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func sameContext(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	default:
		return false
	}
}

// Clear detaches every node without handing it to the free hook.
func (d *Dict[K, V]) Clear() {
	d.mustLive()
	d.release(false)
}

// FreeNodes detaches every node and hands it to the free hook.
func (d *Dict[K, V]) FreeNodes() {
	d.mustLive()
	d.release(true)
}

// Destroy empties the dictionary, optionally releasing its nodes, and
// invalidates it. Later mutations panic.
func (d *Dict[K, V]) Destroy(release bool) {
	d.mustLive()
	d.logger.Debug("destroying dictionary", "count", d.count, "release", release)
	d.release(release)
	d.destroyed = true
	d.compare = nil
}

func (d *Dict[K, V]) release(free bool) {
	nodes := make([]*Node[K, V], 0, d.count)
	for n := d.First(); n != nil; n = d.next(n) {
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		n.detach()
		if free {
			d.free(n, d.context)
		}
	}
	d.count = 0
	d.initSentinel()
}

// misuse reports a membership error according to the strictness policy.
func (d *Dict[K, V]) misuse(format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrMembership}, args...)...)
	if d.strict {
		d.logger.Error("dictionary misuse", "err", err)
		panic(err)
	}
	return err
}

func (d *Dict[K, V]) mustLive() {
	if d.destroyed {
		panic(ErrDestroyed)
	}
}

func doAssert(condition bool) {
	if !condition {
		panic("dict internal assertion failed")
	}
}

// Stats computes the current shape of the tree in O(n).
func (d *Dict[K, V]) Stats() Stats {
	st := Stats{Count: d.count, Capacity: d.capacity}
	st.Height = d.height(d.root())
	for n := d.root(); n != d.sentinel(); n = n.left {
		if n.c == black {
			st.BlackHeight++
		}
	}
	return st
}

func (d *Dict[K, V]) height(n *Node[K, V]) int {
	if n == d.sentinel() {
		return 0
	}
	return 1 + max(d.height(n.left), d.height(n.right))
}

func (d *Dict[K, V]) String() string {
	if d.count == 0 {
		return "nil"
	}
	var sb strings.Builder
	d.buildString(d.root(), "", &sb)
	return sb.String()
}

func (d *Dict[K, V]) buildString(n *Node[K, V], prefix string, sb *strings.Builder) {
	if n == d.sentinel() {
		return
	}
	fmt.Fprintf(sb, "%s%s\n", prefix, n)
	if n.left != d.sentinel() || n.right != d.sentinel() {
		d.buildString(n.left, prefix+"L-> ", sb)
		d.buildString(n.right, prefix+"R-> ", sb)
	}
}
