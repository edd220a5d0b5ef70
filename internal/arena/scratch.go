package arena

const scratchSize = 256 * 1024

// Scratch is a 256 KiB arena meant to be owned by exactly one
// worker goroutine for the lifetime of that worker. Go has no notion of a
// kernel thread's local storage, so callers model "per worker thread"
// explicitly: each pool worker holds one *Scratch and calls Close when it
// exits. Sharing a Scratch across goroutines is a misuse, not merely slow.
type Scratch struct {
	arena *Arena
}

// NewScratch allocates the backing 256 KiB block immediately; callers that
// want laziness should hold a *Scratch field as nil and call NewScratch on
// first use from within the worker goroutine.
func NewScratch() *Scratch {
	return &Scratch{arena: NewSized(scratchSize)}
}

// Arena returns the underlying bump allocator for pairing intermediates.
func (s *Scratch) Arena() *Arena {
	return s.arena
}

// Reset rewinds the scratch arena between verification requests handled by
// the same worker.
func (s *Scratch) Reset() {
	s.arena.Reset()
}

// Close releases the scratch arena. It must be called exactly once, from
// the owning worker, on exit; a leaked Scratch is a defect.
func (s *Scratch) Close() {
	s.arena.head = nil
	s.arena.current = nil
}
