// Copyright 2025 Certen Protocol

package engine

import "sync/atomic"

// Stats is a point-in-time snapshot of engine activity (spec §4.6,
// "Statistics"). It is always read lock-free by copy: updates publish a
// freshly computed snapshot via an atomic pointer swap, mirroring the
// release-store/acquire-load discipline the spec requires of the
// round-constant and VK publication paths.
type Stats struct {
	TotalVerified   uint64
	TotalFailed     uint64
	TotalBatches    uint64
	AvgVerifyMicros float64
	AvgBatchSize    float64
	PeakArenaBytes  uint64
}

type statsTracker struct {
	current atomic.Pointer[Stats]
}

func newStatsTracker() *statsTracker {
	t := &statsTracker{}
	t.current.Store(&Stats{})
	return t
}

// Snapshot returns a copy of the current statistics. Safe for concurrent
// callers; never blocks on a writer.
func (t *statsTracker) Snapshot() Stats {
	return *t.current.Load()
}

// recordVerify folds one verification's outcome and latency into the
// running statistics using an incremental mean (Welford-style single
// update, sufficient since we only ever need the running average).
func (t *statsTracker) recordVerify(ok bool, micros int64, arenaBytes uint64) {
	prev := t.current.Load()
	next := *prev
	n := next.TotalVerified + next.TotalFailed
	if ok {
		next.TotalVerified++
	} else {
		next.TotalFailed++
	}
	newN := n + 1
	next.AvgVerifyMicros = (next.AvgVerifyMicros*float64(n) + float64(micros)) / float64(newN)
	if arenaBytes > next.PeakArenaBytes {
		next.PeakArenaBytes = arenaBytes
	}
	t.current.Store(&next)
}

// recordBatch folds one completed batch's size and peak arena usage into
// the running statistics.
func (t *statsTracker) recordBatch(size int, arenaBytes uint64) {
	prev := t.current.Load()
	next := *prev
	n := next.TotalBatches
	next.TotalBatches++
	next.AvgBatchSize = (next.AvgBatchSize*float64(n) + float64(size)) / float64(next.TotalBatches)
	if arenaBytes > next.PeakArenaBytes {
		next.PeakArenaBytes = arenaBytes
	}
	t.current.Store(&next)
}
