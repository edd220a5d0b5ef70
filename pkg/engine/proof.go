// Copyright 2025 Certen Protocol
//
// Engine - wire proof record parsing
//
// Adapted from the teacher's typed-bundle parsing style in
// pkg/verification/unified_verifier.go, replacing the multi-level
// anchor/governance bundle with the flat 330-byte reputation proof
// record.

package engine

import (
	"encoding/binary"
	"errors"

	"github.com/certen/repzk/pkg/groth16"
)

// WireProofSize is the fixed packed size of a proof record on the wire.
const WireProofSize = 330

// WireVersion is the only accepted wire format version. Rejecting any
// other version as Malformed lets future versions be introduced without
// silently misinterpreting old data.
const WireVersion = 1

var (
	ErrMalformed = errors.New("engine: malformed wire proof record")
)

// WireProof is a parsed, not-yet-policy-checked proof record.
type WireProof struct {
	Type        uint8
	Version     uint8
	Threshold   uint16
	Timestamp   uint32
	AgentID     [32]byte
	Commitment  [32]byte
	ProofPoints [256]byte
}

// ParseWireProof decodes the fixed 330-byte packed record:
// type(1) | version(1) | threshold(2 BE) | timestamp(4 LE) | agent_id(32)
// | commitment(32) | proof_points(256).
func ParseWireProof(data []byte) (*WireProof, error) {
	if len(data) != WireProofSize {
		return nil, ErrMalformed
	}
	wp := &WireProof{
		Type:      data[0],
		Version:   data[1],
		Threshold: binary.BigEndian.Uint16(data[2:4]),
		Timestamp: binary.LittleEndian.Uint32(data[4:8]),
	}
	if wp.Version != WireVersion {
		return nil, ErrMalformed
	}
	copy(wp.AgentID[:], data[8:40])
	copy(wp.Commitment[:], data[40:72])
	copy(wp.ProofPoints[:], data[72:330])
	return wp, nil
}

// ToGroth16Proof decodes the embedded 256-byte proof triple into typed
// curve points, validating on-curve and subgroup membership.
func (wp *WireProof) ToGroth16Proof() (*groth16.Proof, error) {
	proof, err := groth16.ParseProof(wp.ProofPoints[:])
	if err != nil {
		return nil, ErrMalformed
	}
	return proof, nil
}
