// Copyright 2025 Certen Protocol
//
// Arena - bump allocator for per-request verifier working memory
//
// A verification request touches many short-lived field elements, curve
// points, and scratch buffers. Rather than let each of those escape to the
// garbage collector, callers carve them out of an Arena: a singly linked
// list of page-aligned blocks with a bump cursor. Checkpoints let a caller
// roll back to an earlier point in the list without freeing anything, and
// Reset rewinds the whole arena for reuse on the next request.

package arena

import (
	"sync/atomic"
)

const (
	// DefaultBlockSize is the size of a freshly allocated block when the
	// current block cannot satisfy a request.
	DefaultBlockSize = 64 * 1024
	// DefaultAlign is used when a caller does not need a specific alignment.
	DefaultAlign = 8
	// CacheLineAlign aligns an allocation to a 64-byte cache line, for
	// pairing intermediates that are read and written in tight loops.
	CacheLineAlign = 64

	pageSize = 4096
)

// block is one contiguous chunk owned by the arena.
type block struct {
	buf  []byte
	used int
	next *block
}

// Arena is a bump allocator. It is not safe for concurrent mutating use;
// callers must shard by arena or serialize externally, per the verify
// engine's single-writer-per-context contract.
type Arena struct {
	head    *block
	current *block
	peak    int
	refs    int32
}

// New creates an arena with one block of at least DefaultBlockSize bytes.
func New() *Arena {
	return NewSized(DefaultBlockSize)
}

// NewSized creates an arena whose first block is at least size bytes.
func NewSized(size int) *Arena {
	a := &Arena{refs: 1}
	b := newBlock(size)
	a.head = b
	a.current = b
	return a
}

func newBlock(size int) *block {
	size = roundUp(size, pageSize)
	return &block{buf: make([]byte, size)}
}

func roundUp(n, multiple int) int {
	if n%multiple == 0 {
		return n
	}
	return n + (multiple - n%multiple)
}

func alignUp(n, align int) int {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// Alloc returns size bytes aligned to align, valid until the next Reset or
// a Restore to a checkpoint taken before this call. It returns nil only
// when a new block cannot be allocated (backing-store exhaustion).
func (a *Arena) Alloc(size int, align int) []byte {
	if align <= 0 {
		align = DefaultAlign
	}
	for {
		start := alignUp(a.current.used, align)
		end := start + size
		if end <= len(a.current.buf) {
			a.current.used = end
			if end > a.peak {
				a.peak = end
			}
			return a.current.buf[start:end:end]
		}
		if a.current.next != nil {
			a.current = a.current.next
			a.current.used = 0
			continue
		}
		needed := size + align
		blockSize := DefaultBlockSize
		if needed+64 > blockSize {
			blockSize = needed + 64
		}
		nb := newBlock(blockSize)
		if nb == nil {
			return nil
		}
		a.current.next = nb
		a.current = nb
	}
}

// AllocCacheLine is Alloc with CacheLineAlign alignment, for pairing
// accumulators touched in hot inner loops.
func (a *Arena) AllocCacheLine(size int) []byte {
	return a.Alloc(size, CacheLineAlign)
}

// Checkpoint is an opaque token identifying a point in the arena's block
// list and cursor position. Checkpoints must be restored in LIFO order;
// restoring to an older checkpoint invalidates every pointer issued after
// it was taken.
type Checkpoint struct {
	blk *block
	pos int
}

// Mark returns a checkpoint for the arena's current position.
func (a *Arena) Mark() Checkpoint {
	return Checkpoint{blk: a.current, pos: a.current.used}
}

// Restore rewinds the arena to cp, marking every block after cp.blk as
// unused. Memory is retained for reuse, never returned to the OS.
func (a *Arena) Restore(cp Checkpoint) {
	cp.blk.used = cp.pos
	for b := cp.blk.next; b != nil; b = b.next {
		b.used = 0
	}
	a.current = cp.blk
}

// Reset rewinds every block to empty and restores the cursor to the head.
func (a *Arena) Reset() {
	for b := a.head; b != nil; b = b.next {
		b.used = 0
	}
	a.current = a.head
}

// PeakUsage returns the highest cursor offset, in bytes, that any single
// block has reached since the arena was created. It is a per-block
// high-water mark; usage is not summed across blocks. Reset and Restore do
// not clear this counter; it tracks lifetime peak memory for engine
// statistics.
func (a *Arena) PeakUsage() int {
	return a.peak
}

// Ref increments the arena's reference count. Safe for concurrent callers.
func (a *Arena) Ref() {
	atomic.AddInt32(&a.refs, 1)
}

// Unref decrements the reference count. The last owner to call Unref frees
// the arena's blocks; this is single-threaded by construction since only
// the final decrement to zero observes that state.
func (a *Arena) Unref() {
	if atomic.AddInt32(&a.refs, -1) == 0 {
		a.head = nil
		a.current = nil
	}
}
