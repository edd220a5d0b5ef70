// Copyright 2025 Certen Protocol
//
// Engine - per-context verification policy and statistics
//
// Grounded on the teacher's UnifiedVerifier/UnifiedVerifierConfig split
// (pkg/verification/unified_verifier.go): an immutable config object
// paired with a stateful verifier that accumulates results. Here the
// "config" is the policy (max proof age, min threshold, blacklist root,
// VK) and the verifier additionally owns live statistics and a scratch
// arena, since the engine is meant for worker-pool use (spec §5) with
// one context per worker.

package engine

import (
	"errors"
	"time"

	"github.com/certen/repzk/internal/arena"
	"github.com/certen/repzk/pkg/groth16"
)

var ErrNoVK = errors.New("engine: verify context has no verifying key loaded")

// Context holds one worker's verification policy, loaded key material,
// scratch arena, and running statistics. Not safe for concurrent
// mutating calls (spec §5); shard by context across worker threads.
type Context struct {
	VK            *groth16.VerifyingKey
	MaxProofAge   time.Duration // 0 disables the expiry check
	MinThreshold  uint16
	BlacklistRoot [32]byte

	scratch *arena.Scratch
	stats   *statsTracker
}

// NewContext creates a verify context bound to a loaded VK and policy
// knobs. The VK is expected to be loaded once at service start and is
// immutable thereafter.
func NewContext(vk *groth16.VerifyingKey, maxProofAge time.Duration, minThreshold uint16, blacklistRoot [32]byte) *Context {
	return &Context{
		VK:            vk,
		MaxProofAge:   maxProofAge,
		MinThreshold:  minThreshold,
		BlacklistRoot: blacklistRoot,
		scratch:       arena.NewScratch(),
		stats:         newStatsTracker(),
	}
}

// Stats returns a lock-free snapshot of the context's running
// statistics.
func (c *Context) Stats() Stats {
	return c.stats.Snapshot()
}

// stageBytes copies data into the context's scratch arena, giving the
// wire record a lifetime tied to the arena's checkpoint/restore cycle
// instead of the caller's backing slice (spec §3: "proof values never
// escape the arena in which they were parsed"). It falls back to the
// caller's slice on backing-store exhaustion rather than failing the
// request outright.
func (c *Context) stageBytes(data []byte) []byte {
	buf := c.scratch.Arena().Alloc(len(data), arena.DefaultAlign)
	if buf == nil {
		return data
	}
	copy(buf, data)
	return buf
}

// Close releases the context's scratch arena. Leaking it is a defect
// (spec §4.1).
func (c *Context) Close() {
	c.scratch.Close()
}
