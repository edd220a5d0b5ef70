// Copyright 2025 Certen Protocol
//
// Engine - batch verification state machine
//
// Grounded on the teacher's batch/status.go status-enum pattern and
// batch/collector.go staged accumulate-then-settle pipeline, replaced
// here with OPEN -> ADDING -> FROZEN -> VERIFIED -> CLOSED over parsed
// reputation proofs instead of anchor transactions (spec §4.6).

package engine

import (
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/certen/repzk/internal/arena"
	"github.com/certen/repzk/internal/smt"
	"github.com/certen/repzk/pkg/groth16"
)

// BatchState is a batch's position in its lifecycle.
type BatchState int

const (
	BatchOpen BatchState = iota
	BatchAdding
	BatchFrozen
	BatchVerified
	BatchClosed
)

// MaxBatchCapacity bounds how many proofs one batch may hold (spec §3).
const MaxBatchCapacity = 1024

var (
	ErrBatchNotAccepting = errors.New("engine: batch is not accepting proofs in its current state")
	ErrBatchFull         = errors.New("engine: batch has reached its maximum capacity")
	ErrBatchNotFrozen    = errors.New("engine: batch verify called outside OPEN/ADDING")
)

type batchEntry struct {
	proof       *groth16.Proof
	publicInput *big.Int
	status      Status
	agentID     [32]byte
}

// Batch accumulates parsed, policy-checked proofs for one amortized
// verification cycle. Not safe for concurrent use; one batch belongs to
// one worker, mirroring its parent Context.
type Batch struct {
	ID        uuid.UUID
	ctx       *Context
	state     BatchState
	entries   []batchEntry
	arenaMark arena.Checkpoint
}

// NewBatch opens a new batch against ctx, tagged with a fresh correlation
// ID for cross-component logging (mirroring the teacher's proofID/batchID
// uuid.UUID fields in pkg/proof's lifecycle tracking). It marks the
// context's scratch arena so every wire record staged by Add for this
// batch is reclaimed in one shot by Reset or Close (spec §3: a batch's
// proof values live for one verification cycle).
func (c *Context) NewBatch() *Batch {
	return &Batch{ID: uuid.New(), ctx: c, state: BatchOpen, arenaMark: c.scratch.Arena().Mark()}
}

// State reports the batch's current lifecycle state.
func (b *Batch) State() BatchState {
	return b.state
}

// Add parses and policy-checks one wire proof, staking its slot in the
// batch. Valid only in OPEN/ADDING. Proofs that fail parsing or policy
// are still recorded, carrying their terminal status, so Results can
// report on every submitted proof once the batch settles.
func (b *Batch) Add(data []byte, now time.Time, blacklistPath []smt.PathStep) error {
	if b.state != BatchOpen && b.state != BatchAdding {
		return ErrBatchNotAccepting
	}
	if len(b.entries) >= MaxBatchCapacity {
		return ErrBatchFull
	}
	b.state = BatchAdding

	staged := b.ctx.stageBytes(data)
	wp, err := ParseWireProof(staged)
	if err != nil {
		b.entries = append(b.entries, batchEntry{status: StatusMalformed})
		return nil
	}
	entry := batchEntry{agentID: wp.AgentID}

	if b.ctx.MaxProofAge > 0 {
		expiresAt := time.Unix(int64(wp.Timestamp), 0).Add(b.ctx.MaxProofAge)
		if expiresAt.Before(now) {
			entry.status = StatusExpired
			b.entries = append(b.entries, entry)
			return nil
		}
	}
	if wp.Threshold < b.ctx.MinThreshold {
		entry.status = StatusBelowThreshold
		b.entries = append(b.entries, entry)
		return nil
	}
	var zeroRoot [32]byte
	if b.ctx.BlacklistRoot != zeroRoot {
		ok, err := smt.VerifyExclusion(b.ctx.BlacklistRoot, wp.Commitment, blacklistPath)
		if err != nil || !ok {
			entry.status = StatusBlacklisted
			b.entries = append(b.entries, entry)
			return nil
		}
	}
	proof, err := wp.ToGroth16Proof()
	if err != nil {
		entry.status = StatusInvalidProof
		b.entries = append(b.entries, entry)
		return nil
	}
	entry.proof = proof
	entry.publicInput = derivePublicInput(wp.AgentID, wp.Commitment, wp.Threshold)
	entry.status = StatusOK // provisional: POLICY_OK, pending crypto check
	b.entries = append(b.entries, entry)
	return nil
}

// Results returns one Status per Add call, in submission order, valid
// after Verify has settled the batch (or immediately, for entries that
// never reached POLICY_OK).
func (b *Batch) Results() []Status {
	out := make([]Status, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.status
	}
	return out
}

// Verify transitions the batch through FROZEN: proofs that already
// failed policy keep their status untouched, and the remaining
// POLICY_OK proofs are checked in one batch Groth16 call. On a batch
// rejection, the engine falls back to sequential verification of that
// subset to localize the invalid proof(s), per spec §4.6. A failure to
// draw the batch random scalars (groth16.ErrRNGFailure) is returned as is:
// the batch stays FROZEN and no crypto results are settled.
func (b *Batch) Verify() error {
	if b.state != BatchOpen && b.state != BatchAdding {
		return ErrBatchNotFrozen
	}
	b.state = BatchFrozen

	var idx []int
	var proofs []*groth16.Proof
	var inputs [][]*big.Int
	for i, e := range b.entries {
		if e.status == StatusOK && e.proof != nil {
			idx = append(idx, i)
			proofs = append(proofs, e.proof)
			inputs = append(inputs, []*big.Int{e.publicInput})
		}
	}

	if len(proofs) > 0 {
		allValid, err := groth16.VerifyBatch(b.ctx.VK, proofs, inputs)
		if errors.Is(err, groth16.ErrRNGFailure) {
			return err
		}
		if err != nil || !allValid {
			errs := groth16.VerifySequential(b.ctx.VK, proofs, inputs)
			for k, verr := range errs {
				if verr != nil {
					b.entries[idx[k]].status = StatusInvalidProof
				}
			}
		}
	}

	b.ctx.stats.recordBatch(len(b.entries), uint64(b.ctx.scratch.Arena().PeakUsage()))
	b.state = BatchVerified
	return nil
}

// Reset returns the batch to OPEN, clearing its buffered entries without
// releasing the underlying slice's capacity, and restores the context's
// scratch arena to the checkpoint taken when this batch opened, reclaiming
// every wire record staged by Add.
func (b *Batch) Reset() {
	b.ctx.scratch.Arena().Restore(b.arenaMark)
	b.entries = b.entries[:0]
	b.state = BatchOpen
	b.ID = uuid.New()
	b.arenaMark = b.ctx.scratch.Arena().Mark()
}

// Close transitions the batch to CLOSED and restores the context's
// scratch arena to this batch's checkpoint. A closed batch must not be
// reused; call NewBatch for the next cycle.
func (b *Batch) Close() {
	b.ctx.scratch.Arena().Restore(b.arenaMark)
	b.state = BatchClosed
}
