// Copyright 2025 Certen Protocol
//
// Groth16 - verification key loading
//
// Wire layout: alpha(64) | beta(128) | gamma(128) | delta(128) |
// ic_len(4 LE) | IC[0..ic_len-1](64 each). Each G1 point is x(32)|y(32)
// big-endian; each G2 point is x_im(32)|x_re(32)|y_im(32)|y_re(32) — note
// the imaginary component leads, matching the teacher's own G2 field
// ordering in pkg/crypto/bls_zkp/prover.go's VerificationKeyExport.

package groth16

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/certen/repzk/internal/pairing"
)

// MaxVKSize bounds a verification key blob at 1 MiB.
const MaxVKSize = 1 << 20

const (
	g1Size = 64
	g2Size = 128
)

var (
	ErrVKTooLarge    = errors.New("groth16: verification key exceeds 1 MiB")
	ErrVKTruncated   = errors.New("groth16: verification key blob is truncated")
	ErrVKBadICLength = errors.New("groth16: IC length does not match blob size")
)

// VerifyingKey holds (alpha, beta, gamma, delta, IC[0..n]) plus the
// precomputed e(alpha, beta) used by every subsequent verification.
type VerifyingKey struct {
	Alpha pairing.G1
	Beta  pairing.G2
	Gamma pairing.G2
	Delta pairing.G2
	IC    []pairing.G1

	alphaBeta pairing.GT
}

func readG1(b []byte) (pairing.G1, error) {
	var x, y [32]byte
	copy(x[:], b[0:32])
	copy(y[:], b[32:64])
	p, err := pairing.G1FromBytes(x, y)
	if err != nil {
		return pairing.G1{}, err
	}
	if err := pairing.CheckG1(p); err != nil {
		return pairing.G1{}, err
	}
	return p, nil
}

func readG2(b []byte) (pairing.G2, error) {
	var xIm, xRe, yIm, yRe [32]byte
	copy(xIm[:], b[0:32])
	copy(xRe[:], b[32:64])
	copy(yIm[:], b[64:96])
	copy(yRe[:], b[96:128])
	p, err := pairing.G2FromBytes(xRe, xIm, yRe, yIm)
	if err != nil {
		return pairing.G2{}, err
	}
	if err := pairing.CheckG2(p); err != nil {
		return pairing.G2{}, err
	}
	return p, nil
}

// LoadVK parses and validates a verification key blob. Every point is
// checked on-curve and in-subgroup before it is trusted; e(alpha, beta)
// is computed once and cached on the returned key.
func LoadVK(data []byte) (*VerifyingKey, error) {
	if len(data) > MaxVKSize {
		return nil, ErrVKTooLarge
	}
	const headerSize = g1Size + 3*g2Size + 4
	if len(data) < headerSize {
		return nil, ErrVKTruncated
	}

	off := 0
	alpha, err := readG1(data[off : off+g1Size])
	if err != nil {
		return nil, fmt.Errorf("groth16: alpha: %w", err)
	}
	off += g1Size

	beta, err := readG2(data[off : off+g2Size])
	if err != nil {
		return nil, fmt.Errorf("groth16: beta: %w", err)
	}
	off += g2Size

	gamma, err := readG2(data[off : off+g2Size])
	if err != nil {
		return nil, fmt.Errorf("groth16: gamma: %w", err)
	}
	off += g2Size

	delta, err := readG2(data[off : off+g2Size])
	if err != nil {
		return nil, fmt.Errorf("groth16: delta: %w", err)
	}
	off += g2Size

	icLen := binary.LittleEndian.Uint32(data[off : off+4])
	off += 4

	if len(data) != headerSize+int(icLen)*g1Size {
		return nil, ErrVKBadICLength
	}

	ic := make([]pairing.G1, icLen)
	for i := 0; i < int(icLen); i++ {
		p, err := readG1(data[off : off+g1Size])
		if err != nil {
			return nil, fmt.Errorf("groth16: IC[%d]: %w", i, err)
		}
		ic[i] = p
		off += g1Size
	}

	alphaBeta, err := pairing.Pair(alpha, beta)
	if err != nil {
		return nil, fmt.Errorf("groth16: precomputing e(alpha,beta): %w", err)
	}

	return &VerifyingKey{
		Alpha:     alpha,
		Beta:      beta,
		Gamma:     gamma,
		Delta:     delta,
		IC:        ic,
		alphaBeta: alphaBeta,
	}, nil
}

// NumPublicInputs returns the number of public inputs this key expects,
// i.e. len(IC)-1.
func (vk *VerifyingKey) NumPublicInputs() int {
	return len(vk.IC) - 1
}
