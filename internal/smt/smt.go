// Copyright 2025 Certen Protocol
//
// SMT - sparse Merkle tree exclusion proofs over Poseidon leaves
//
// Generalizes the teacher's binary Merkle inclusion proof (pkg/merkle,
// SHA-256 leaves, Left/Right Position) to a directional proof-of-path
// against an arbitrary-depth sparse tree hashed with Poseidon, as used by
// the verify engine's blacklist check (spec §4.6, §6). Per spec §9's open
// question, domain separation between this hash and the commitment
// Poseidon is left to the caller (e.g. pre-tagging leaves); this package
// does not introduce separation unilaterally.

package smt

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/certen/repzk/internal/poseidon"
)

// MaxDepth bounds an exclusion proof's path length, matching the 0..256
// depth range in spec §6.
const MaxDepth = 256

// ErrPathTooDeep is returned when a proof's path exceeds MaxDepth levels.
var ErrPathTooDeep = errors.New("smt: proof path exceeds maximum depth")

// Direction indicates which side of its parent the current node occupies
// on its way up to the root. Left means the current node is the left
// child of the pair hashed at that level; Right means it is the right
// child.
type Direction byte

const (
	Left  Direction = 0
	Right Direction = 1
)

// PathStep is one level of an exclusion proof: the sibling hash at that
// level and which side the node being proven sits on.
type PathStep struct {
	Direction Direction
	Sibling   [32]byte
}

// DecodePath parses the wire encoding direction_byte(1)|sibling(32)
// repeated per level from spec §6.
func DecodePath(raw []byte) ([]PathStep, error) {
	if len(raw)%33 != 0 {
		return nil, errors.New("smt: path length is not a multiple of 33 bytes")
	}
	depth := len(raw) / 33
	if depth > MaxDepth {
		return nil, ErrPathTooDeep
	}
	steps := make([]PathStep, depth)
	for i := 0; i < depth; i++ {
		off := i * 33
		steps[i].Direction = Direction(raw[off])
		copy(steps[i].Sibling[:], raw[off+1:off+33])
	}
	return steps, nil
}

// VerifyExclusion reconstructs the root by walking leaf up through path,
// hashing (current, sibling) or (sibling, current) at each level
// according to Direction, and reports whether the reconstructed root
// equals root. Hashing at every level is Poseidon over two field
// elements, per spec §6.
func VerifyExclusion(root [32]byte, leaf [32]byte, path []PathStep) (bool, error) {
	if len(path) > MaxDepth {
		return false, ErrPathTooDeep
	}

	var current fr.Element
	current.SetBytes(leaf[:])

	for _, step := range path {
		var sibling fr.Element
		sibling.SetBytes(step.Sibling[:])

		var combined fr.Element
		switch step.Direction {
		case Left:
			combined = poseidon.Hash(current, sibling)
		case Right:
			combined = poseidon.Hash(sibling, current)
		default:
			return false, errors.New("smt: invalid direction byte")
		}
		current = combined
	}

	var wantRoot fr.Element
	wantRoot.SetBytes(root[:])
	return current.Equal(&wantRoot), nil
}
