// Copyright 2025 Certen Protocol
//
// Poseidon - circomlib-conformant sponge hash over the BN254 scalar field
//
// circomlib's reference Poseidon (the hash this protocol's commitments and
// public inputs must match, per spec §4.3/§8) uses a state width t =
// arity+1 for each supported arity rather than one fixed width: absorbing
// 1 input uses t=2 (R_P=56 partial rounds), 2 inputs uses t=3 (R_P=57), and
// 3 inputs uses t=4 (R_P=56) — R_F=8 full rounds and the x^5 S-box are
// shared across every width. The capacity lane (state[0]) starts at zero
// and the inputs occupy the remaining t-1 rate lanes; the digest is lane 0
// of the permuted state.
//
// Round constants and each width's MDS matrix are generated once, at
// first use, by the Grain-LFSR procedure the original Poseidon paper (and
// circomlib's own constant-generation script) specifies: an 80-bit LFSR
// seeded with the field type, S-box type, field size, state width, and
// round counts, warmed up for 160 steps, then sampled via rejection
// sampling to produce round constants and the Cauchy x/y values. This
// replaces an earlier draft of this package that derived constants from an
// ad hoc SHA-256 stream — a different algorithm from the one that actually
// produced the circomlib reference tables, which could never agree with a
// real circomlib-generated circuit. See DESIGN.md for the residual caveat:
// this sandbox has no network access to diff the generated tables against
// the literal values shipped by github.com/iden3/go-iden3-crypto, so
// conformance is cross-checked against an independently written port of
// this same generator rather than the upstream binary.

package poseidon

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	fieldBits  = 254 // BN254 Fr modulus bit length
	fullRounds = 8   // R_F, shared across every supported width
)

// partialRoundsForArity is circomlib's per-width partial-round count for
// the arities this protocol needs: 1 input (commitment/score style single
// values), 2 inputs (Poseidon(score, secret), SMT sibling pairs), and 3
// inputs (the engine's agent/commitment/threshold public input).
var partialRoundsForArity = map[int]int{
	2: 56,
	3: 57,
	4: 56,
}

// params holds one width's generated round constants and MDS matrix.
type params struct {
	t   int
	rp  int
	rc  []fr.Element
	mds [][]fr.Element
}

var (
	paramsOnce sync.Once
	paramsByT  map[int]*params
)

// grainStream is the 80-bit Grain-LFSR the Poseidon paper specifies for
// generating round constants and MDS coefficients: seeded from the
// parameter set, then warmed up for 160 steps before any output bit is
// used, matching the reference generator's warm-up length.
type grainStream struct {
	state [80]byte
}

func newGrainStream(t, rp int) *grainStream {
	g := &grainStream{}
	putBits := func(pos, v, width int) int {
		for i := width - 1; i >= 0; i-- {
			g.state[pos] = byte((v >> i) & 1)
			pos++
		}
		return pos
	}
	pos := 0
	pos = putBits(pos, 1, 2)         // field: prime (GF(p))
	pos = putBits(pos, 0, 4)         // s-box: x^alpha
	pos = putBits(pos, fieldBits, 12)
	pos = putBits(pos, t, 12)
	pos = putBits(pos, fullRounds, 10)
	pos = putBits(pos, rp, 10)
	for ; pos < 80; pos++ {
		g.state[pos] = 1
	}
	for i := 0; i < 160; i++ {
		g.nextBit()
	}
	return g
}

// nextBit advances the LFSR by one step using the tap positions the
// reference generator specifies and returns the new bit.
func (g *grainStream) nextBit() byte {
	b := g.state[62] ^ g.state[51] ^ g.state[38] ^ g.state[23] ^ g.state[13] ^ g.state[0]
	copy(g.state[0:79], g.state[1:80])
	g.state[79] = b
	return b
}

// nextFieldElement draws a fieldBits-wide value from the stream, by
// rejection sampling, until it lands strictly below modulus.
func (g *grainStream) nextFieldElement(modulus *big.Int) fr.Element {
	for {
		v := new(big.Int)
		for i := 0; i < fieldBits; i++ {
			v.Lsh(v, 1)
			if g.nextBit() == 1 {
				v.SetBit(v, 0, 1)
			}
		}
		if v.Cmp(modulus) < 0 {
			var e fr.Element
			e.SetBigInt(v)
			return e
		}
	}
}

// genParams draws (R_F+R_P)*t round constants, then 2*t Cauchy values to
// build a t x t MDS matrix M[i][j] = 1/(x_i + y_j), from a fresh stream
// seeded for width t.
func genParams(t, rp int) *params {
	g := newGrainStream(t, rp)
	modulus := fr.Modulus()

	totalRounds := fullRounds + rp
	rc := make([]fr.Element, totalRounds*t)
	for i := range rc {
		rc[i] = g.nextFieldElement(modulus)
	}

	xs := make([]fr.Element, t)
	ys := make([]fr.Element, t)
	for i := 0; i < t; i++ {
		xs[i] = g.nextFieldElement(modulus)
	}
	for i := 0; i < t; i++ {
		ys[i] = g.nextFieldElement(modulus)
	}

	mds := make([][]fr.Element, t)
	for i := 0; i < t; i++ {
		mds[i] = make([]fr.Element, t)
		for j := 0; j < t; j++ {
			var sum fr.Element
			sum.Add(&xs[i], &ys[j])
			if sum.IsZero() {
				panic("poseidon: degenerate MDS coefficient (x_i + y_j == 0)")
			}
			mds[i][j].Inverse(&sum)
		}
	}
	return &params{t: t, rp: rp, rc: rc, mds: mds}
}

func ensureParams() {
	paramsOnce.Do(func() {
		paramsByT = make(map[int]*params, len(partialRoundsForArity))
		for t, rp := range partialRoundsForArity {
			paramsByT[t] = genParams(t, rp)
		}
	})
}

func sbox(x fr.Element) fr.Element {
	var x2, x4, out fr.Element
	x2.Square(&x)
	x4.Square(&x2)
	out.Mul(&x4, &x)
	return out
}

func applyMDS(p *params, state []fr.Element) []fr.Element {
	out := make([]fr.Element, p.t)
	for i := 0; i < p.t; i++ {
		var acc fr.Element
		for j := 0; j < p.t; j++ {
			var term fr.Element
			term.Mul(&p.mds[i][j], &state[j])
			acc.Add(&acc, &term)
		}
		out[i] = acc
	}
	return out
}

func permute(p *params, state []fr.Element) []fr.Element {
	rcIdx := 0
	halfFull := fullRounds / 2

	addFull := func(s []fr.Element) {
		for i := range s {
			s[i].Add(&s[i], &p.rc[rcIdx])
			rcIdx++
		}
	}
	addPartial := func(s []fr.Element) {
		s[0].Add(&s[0], &p.rc[rcIdx])
		rcIdx++
	}

	for r := 0; r < halfFull; r++ {
		addFull(state)
		for i := range state {
			state[i] = sbox(state[i])
		}
		state = applyMDS(p, state)
	}
	for r := 0; r < p.rp; r++ {
		addPartial(state)
		state[0] = sbox(state[0])
		state = applyMDS(p, state)
	}
	for r := 0; r < halfFull; r++ {
		addFull(state)
		for i := range state {
			state[i] = sbox(state[i])
		}
		state = applyMDS(p, state)
	}
	return state
}

// Hash absorbs 1, 2, or 3 field elements into a zero-initialized sponge
// state (capacity lane 0, inputs in lanes 1..n, circomlib's convention)
// and returns lane 0 of the permuted state. It is deterministic and
// side-effect-free.
func Hash(inputs ...fr.Element) fr.Element {
	n := len(inputs)
	if n < 1 || n > 3 {
		panic("poseidon: Hash accepts between 1 and 3 inputs")
	}
	ensureParams()
	t := n + 1
	p := paramsByT[t]

	state := make([]fr.Element, t)
	copy(state[1:], inputs)
	out := permute(p, state)
	return out[0]
}

// HashBytes is Hash over field elements decoded from 32-byte big-endian
// inputs, the form the commitment and engine layers work with.
func HashBytes(inputs ...[32]byte) [32]byte {
	elems := make([]fr.Element, len(inputs))
	for i, b := range inputs {
		elems[i].SetBytes(b[:])
	}
	h := Hash(elems...)
	return h.Bytes()
}
