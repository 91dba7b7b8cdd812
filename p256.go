package sigma

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
)

// p256Group is the NIST P-256 Group implementation used by the discrete
// log, DLEQ, Pedersen, Pedersen-DLEQ and BBS-blind commitment scenarios.
// Curve arithmetic is delegated to crypto/elliptic; see DESIGN.md for why
// no third-party curve library fills this role.
type p256Group struct {
	curve elliptic.Curve
}

// P256 returns the NIST P-256 Group.
func P256() Group {
	return p256Group{curve: elliptic.P256()}
}

func (g p256Group) Name() string { return "P-256" }

// coordLen is L_coord: the byte length of an affine coordinate (32 for
// P-256's 256-bit field).
func (g p256Group) coordLen() int {
	return (g.curve.Params().BitSize + 7) / 8
}

// ElementLength is 1 (sign tag) + L_coord.
func (g p256Group) ElementLength() int { return 1 + g.coordLen() }

// ScalarLength is L_s = ceil(log2(q)/8); P-256's order is 256 bits.
func (g p256Group) ScalarLength() int {
	return (g.curve.Params().N.BitLen() + 7) / 8
}

type p256Scalar struct {
	v     *big.Int
	order *big.Int
}

func (g p256Group) newScalar(v *big.Int) p256Scalar {
	return p256Scalar{v: new(big.Int).Mod(v, g.curve.Params().N), order: g.curve.Params().N}
}

func (s p256Scalar) Add(other Scalar) Scalar {
	o := other.(p256Scalar)
	return p256Scalar{v: new(big.Int).Mod(new(big.Int).Add(s.v, o.v), s.order), order: s.order}
}

func (s p256Scalar) Sub(other Scalar) Scalar {
	o := other.(p256Scalar)
	return p256Scalar{v: new(big.Int).Mod(new(big.Int).Sub(s.v, o.v), s.order), order: s.order}
}

func (s p256Scalar) Mul(other Scalar) Scalar {
	o := other.(p256Scalar)
	return p256Scalar{v: new(big.Int).Mod(new(big.Int).Mul(s.v, o.v), s.order), order: s.order}
}

func (s p256Scalar) IsZero() bool { return s.v.Sign() == 0 }

type p256Element struct {
	curve elliptic.Curve
	x, y  *big.Int
}

// isInfinity reports whether e is the point at infinity: either the nil
// coordinates this package uses for Identity, or the (0, 0) pair that
// crypto/elliptic returns for it (not a P-256 curve point, since b != 0).
func (e p256Element) isInfinity() bool {
	if e.x == nil || e.y == nil {
		return true
	}
	return e.x.Sign() == 0 && e.y.Sign() == 0
}

func (e p256Element) Add(other Element) Element {
	o := other.(p256Element)
	if e.isInfinity() {
		return o
	}
	if o.isInfinity() {
		return e
	}
	x, y := e.curve.Add(e.x, e.y, o.x, o.y)
	return p256Element{curve: e.curve, x: x, y: y}
}

func (e p256Element) Mul(s Scalar) Element {
	sc := s.(p256Scalar)
	if e.isInfinity() || sc.IsZero() {
		return p256Element{curve: e.curve}
	}
	x, y := e.curve.ScalarMult(e.x, e.y, sc.v.Bytes())
	return p256Element{curve: e.curve, x: x, y: y}
}

func (e p256Element) Negate() Element {
	if e.isInfinity() {
		return e
	}
	negY := new(big.Int).Sub(e.curve.Params().P, e.y)
	return p256Element{curve: e.curve, x: e.x, y: negY}
}

func (e p256Element) Equal(other Element) bool {
	o := other.(p256Element)
	if e.isInfinity() || o.isInfinity() {
		return e.isInfinity() == o.isInfinity()
	}
	return e.x.Cmp(o.x) == 0 && e.y.Cmp(o.y) == 0
}

func (e p256Element) IsIdentity() bool { return e.isInfinity() }

func (g p256Group) Identity() Element {
	return p256Element{curve: g.curve}
}

func (g p256Group) Generator() Element {
	p := g.curve.Params()
	return p256Element{curve: g.curve, x: p.Gx, y: p.Gy}
}

func (g p256Group) RandomScalar(rng ByteReader) Scalar {
	buf := make([]byte, g.ScalarLength()+16)
	if _, err := rng.Read(buf); err != nil {
		panic(fmt.Sprintf("sigma: RandomScalar: %v", err))
	}
	return g.ScalarFromBytes(buf)
}

// ScalarFromBytes reduces uniform bytes modulo q. Callers that need the
// unbiased 2^-128-statistical-distance guarantee must supply L_s+16 bytes,
// as Codec.VerifierChallenge does.
func (g p256Group) ScalarFromBytes(data []byte) Scalar {
	return g.newScalar(new(big.Int).SetBytes(data))
}

// sgn0 is the canonical sign of a field element: the least-significant bit
// of its standard (non-negative, reduced) representative.
func sgn0(v *big.Int) uint {
	return uint(v.Bit(0))
}

func (g p256Group) SerializeElements(elements []Element) []byte {
	out := make([]byte, 0, len(elements)*g.ElementLength())
	for _, el := range elements {
		e := el.(p256Element)
		coordLen := g.coordLen()
		buf := make([]byte, 1+coordLen)
		if e.isInfinity() {
			// Callers in this module never serialize the identity element.
			// Fall back to an all-zero x-coordinate with tag 0x02 rather
			// than a partial encoding.
			buf[0] = 0x02
			out = append(out, buf...)
			continue
		}
		if sgn0(e.y) == 0 {
			buf[0] = 0x02
		} else {
			buf[0] = 0x03
		}
		e.x.FillBytes(buf[1:])
		out = append(out, buf...)
	}
	return out
}

func (g p256Group) SerializeScalar(s Scalar) []byte {
	sc := s.(p256Scalar)
	buf := make([]byte, g.ScalarLength())
	sc.v.FillBytes(buf)
	return buf
}

func (g p256Group) DeserializeElement(data []byte) (Element, error) {
	coordLen := g.coordLen()
	if len(data) != 1+coordLen {
		return nil, fmt.Errorf("%w: P-256 element must be %d bytes, got %d", ErrDeserialization, 1+coordLen, len(data))
	}
	tag := data[0]
	if tag != 0x02 && tag != 0x03 {
		return nil, fmt.Errorf("%w: invalid P-256 sign tag 0x%02x", ErrDeserialization, tag)
	}
	x := new(big.Int).SetBytes(data[1:])
	params := g.curve.Params()
	ySq := new(big.Int).Exp(x, big.NewInt(3), params.P)
	ax := new(big.Int).Mul(x, big.NewInt(-3))
	ax.Mod(ax, params.P)
	ySq.Add(ySq, ax)
	ySq.Add(ySq, params.B)
	ySq.Mod(ySq, params.P)
	y := new(big.Int).ModSqrt(ySq, params.P)
	if y == nil {
		return nil, fmt.Errorf("%w: x-coordinate not on P-256", ErrDeserialization)
	}
	if sgn0(y) != uint(tag-0x02) {
		y = new(big.Int).Sub(params.P, y)
	}
	if !g.curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point not on P-256", ErrDeserialization)
	}
	return p256Element{curve: g.curve, x: x, y: y}, nil
}

func (g p256Group) DeserializeScalar(data []byte) (Scalar, error) {
	if len(data) != g.ScalarLength() {
		return nil, fmt.Errorf("%w: P-256 scalar must be %d bytes, got %d", ErrDeserialization, g.ScalarLength(), len(data))
	}
	v := new(big.Int).SetBytes(data)
	if v.Cmp(g.curve.Params().N) >= 0 {
		return nil, fmt.Errorf("%w: P-256 scalar >= group order", ErrDeserialization)
	}
	return g.newScalar(v), nil
}
