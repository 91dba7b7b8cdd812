package sigma

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// DeriveRistrettoGenerators deterministically derives n independent
// ristretto255 generators from label, for ciphersuites that want a fixed,
// reproducible generator set (e.g. Pedersen/BBS-blind-commitment relations)
// rather than trusting each session to sample its own random H. Each
// generator is a 64-byte blake2b digest of (label, index) split into two
// 32-byte halves and combined via the Elligator map, one counter-mode
// digest per point.
func DeriveRistrettoGenerators(label []byte, n int) []Element {
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		out[i] = ristrettoElement{ristrettoPointFromLabel(label, uint32(i))}
	}
	return out
}

func ristrettoPointFromLabel(label []byte, index uint32) ristretto.Point {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)

	h := blake2b.New512()
	h.Write([]byte("sigma-generator"))
	h.Write(label)
	h.Write(idx[:])
	digest := h.Sum(nil)

	var r1Bytes, r2Bytes [32]byte
	copy(r1Bytes[:], digest[:32])
	copy(r2Bytes[:], digest[32:])
	var p, p1, p2 ristretto.Point
	p.Add(p1.SetElligator(&r1Bytes), p2.SetElligator(&r2Bytes))
	return p
}
