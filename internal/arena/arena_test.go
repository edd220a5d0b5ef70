package arena

import "testing"

func TestAllocWithinBlock(t *testing.T) {
	a := New()
	b1 := a.Alloc(32, 8)
	if b1 == nil {
		t.Fatal("alloc returned nil")
	}
	b2 := a.Alloc(32, 8)
	if b2 == nil {
		t.Fatal("alloc returned nil")
	}
	// Distinct backing memory.
	b1[0] = 0xAA
	if b2[0] == 0xAA {
		t.Fatal("overlapping allocations")
	}
}

func TestAllocGrowsNewBlock(t *testing.T) {
	a := NewSized(64) // rounded up to one 4096-byte page
	first := a.Alloc(3000, 8)
	if first == nil {
		t.Fatal("alloc returned nil")
	}
	second := a.Alloc(3000, 8)
	if second == nil {
		t.Fatal("alloc should have grown a new block")
	}
	if a.head == a.current {
		t.Fatal("expected a second block to be linked and made current")
	}
}

func TestCheckpointRestore(t *testing.T) {
	a := New()
	cp := a.Mark()
	a.Alloc(128, 8)
	a.Alloc(128, 8)
	if a.current.used == 0 {
		t.Fatal("expected allocations to advance the cursor")
	}
	a.Restore(cp)
	if a.current.used != cp.pos {
		t.Fatalf("restore did not rewind cursor: got %d want %d", a.current.used, cp.pos)
	}
}

func TestResetRewindsAllBlocks(t *testing.T) {
	a := NewSized(64) // rounded up to one 4096-byte page
	a.Alloc(3000, 8)
	a.Alloc(3000, 8) // forces a second block
	if a.head.next == nil {
		t.Fatal("expected a second block")
	}
	a.Reset()
	if a.current != a.head {
		t.Fatal("reset should restore cursor to head")
	}
	if a.head.used != 0 || a.head.next.used != 0 {
		t.Fatal("reset should zero used counters on every block")
	}
}

func TestPeakUsageSurvivesReset(t *testing.T) {
	a := New()
	a.Alloc(512, 8)
	peak := a.PeakUsage()
	if peak < 512 {
		t.Fatalf("peak usage too low: %d", peak)
	}
	a.Reset()
	if a.PeakUsage() != peak {
		t.Fatal("reset must not clear the peak usage counter")
	}
}

func TestRefUnref(t *testing.T) {
	a := New()
	a.Ref()
	a.Unref()
	if a.head == nil {
		t.Fatal("arena should still be alive with one ref remaining")
	}
	a.Unref()
	if a.head != nil {
		t.Fatal("arena should be torn down when refs reach zero")
	}
}

func TestScratchLifecycle(t *testing.T) {
	s := NewScratch()
	buf := s.Arena().Alloc(16, 8)
	if buf == nil {
		t.Fatal("scratch alloc failed")
	}
	s.Reset()
	s.Close()
}
