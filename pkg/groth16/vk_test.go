package groth16

import (
	"encoding/binary"
	"testing"
)

func encodeVKBlob(t *testing.T, tc *toyCircuit) []byte {
	t.Helper()
	var buf []byte
	ax, ay := tc.vk.Alpha.Bytes()
	buf = append(buf, ax[:]...)
	buf = append(buf, ay[:]...)

	bxRe, bxIm, byRe, byIm := tc.vk.Beta.Bytes()
	buf = append(buf, bxIm[:]...)
	buf = append(buf, bxRe[:]...)
	buf = append(buf, byIm[:]...)
	buf = append(buf, byRe[:]...)

	gxRe, gxIm, gyRe, gyIm := tc.vk.Gamma.Bytes()
	buf = append(buf, gxIm[:]...)
	buf = append(buf, gxRe[:]...)
	buf = append(buf, gyIm[:]...)
	buf = append(buf, gyRe[:]...)

	dxRe, dxIm, dyRe, dyIm := tc.vk.Delta.Bytes()
	buf = append(buf, dxIm[:]...)
	buf = append(buf, dxRe[:]...)
	buf = append(buf, dyIm[:]...)
	buf = append(buf, dyRe[:]...)

	icLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(icLen, uint32(len(tc.vk.IC)))
	buf = append(buf, icLen...)

	for _, p := range tc.vk.IC {
		px, py := p.Bytes()
		buf = append(buf, px[:]...)
		buf = append(buf, py[:]...)
	}
	return buf
}

func TestLoadVKRoundTrip(t *testing.T) {
	tc := buildToyCircuit(t, 7500)
	blob := encodeVKBlob(t, tc)

	vk, err := LoadVK(blob)
	if err != nil {
		t.Fatalf("LoadVK failed: %v", err)
	}
	if vk.NumPublicInputs() != 1 {
		t.Fatalf("expected 1 public input, got %d", vk.NumPublicInputs())
	}
	if err := VerifySingle(vk, tc.proof, tc.inputs); err != nil {
		t.Fatalf("round-tripped VK should still verify the toy proof: %v", err)
	}
}

func TestLoadVKRejectsTruncated(t *testing.T) {
	tc := buildToyCircuit(t, 7500)
	blob := encodeVKBlob(t, tc)
	if _, err := LoadVK(blob[:len(blob)-10]); err == nil {
		t.Fatal("expected truncated VK blob to be rejected")
	}
}

func TestLoadVKRejectsOversized(t *testing.T) {
	blob := make([]byte, MaxVKSize+1)
	if _, err := LoadVK(blob); err != ErrVKTooLarge {
		t.Fatalf("expected ErrVKTooLarge, got %v", err)
	}
}

func TestParseProofRejectsWrongSize(t *testing.T) {
	if _, err := ParseProof(make([]byte, ProofSize-1)); err == nil {
		t.Fatal("expected short proof buffer to be rejected")
	}
}
