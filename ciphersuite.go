package sigma

// Ciphersuite binds a Group to a fixed 64-byte protocol identifier, the
// smallest unit of configuration two parties need to agree on before any
// proof exchange.
type Ciphersuite struct {
	Name       string
	Group      Group
	ProtocolID [64]byte
}

// protocolID64 pads or truncates name into a fixed 64-byte identifier, a
// small helper so scenario constructors below can write readable string
// labels instead of hand-building [64]byte literals.
func protocolID64(name string) [64]byte {
	var id [64]byte
	copy(id[:], name)
	return id
}

// P256Ciphersuite and Ristretto255Ciphersuite are the two ciphersuites this
// module ships scenario constructors for. The Codec's sponge is always
// the Keccak-f[1600] duplex, so there is exactly one suite per group.
func P256Ciphersuite() Ciphersuite {
	return Ciphersuite{Name: "P256", Group: P256(), ProtocolID: protocolID64("sigma-p256-v1")}
}

func Ristretto255Ciphersuite() Ciphersuite {
	return Ciphersuite{Name: "ristretto255", Group: Ristretto255(), ProtocolID: protocolID64("sigma-ristretto255-v1")}
}

// DiscreteLogRelation builds the statement X = x*G for a freshly sampled
// witness x.
func DiscreteLogRelation(cs Ciphersuite, rng ByteReader) (*LinearRelation, []Scalar) {
	g := cs.Group
	G := g.Generator()
	x := g.RandomScalar(rng)
	X := G.Mul(x)

	rel := NewLinearRelation(g)
	rel.Map.Elements = []Element{G, X}
	rel.Map.Combinations = []LinearCombination{
		{ScalarIndices: []int{0}, ElementIndices: []int{0}},
	}
	rel.Image = []Element{X}
	return rel, []Scalar{x}
}

// DLEQRelation builds the statement X = x*G, Y = x*H for independent bases
// G, H and one shared witness x.
func DLEQRelation(cs Ciphersuite, rng ByteReader) (*LinearRelation, []Scalar) {
	g := cs.Group
	G := g.Generator()
	H := g.RandomScalar(rng)
	Hpoint := G.Mul(H)
	x := g.RandomScalar(rng)
	X := G.Mul(x)
	Y := Hpoint.Mul(x)

	rel := NewLinearRelation(g)
	rel.Map.Elements = []Element{G, Hpoint}
	rel.Map.Combinations = []LinearCombination{
		{ScalarIndices: []int{0}, ElementIndices: []int{0}},
		{ScalarIndices: []int{0}, ElementIndices: []int{1}},
	}
	rel.Image = []Element{X, Y}
	return rel, []Scalar{x}
}

// PedersenRelation builds the statement C = x*G + r*H for independent
// witnesses x (value) and r (blinding). h is typically a deterministically
// derived generator (DeriveRistrettoGenerators) rather than a freshly
// sampled one, so repeated calls with the same label agree on the same
// commitment base.
func PedersenRelation(cs Ciphersuite, rng ByteReader, h Element) (*LinearRelation, []Scalar) {
	g := cs.Group
	G := g.Generator()
	x := g.RandomScalar(rng)
	r := g.RandomScalar(rng)
	C := G.Mul(x).Add(h.Mul(r))

	rel := NewLinearRelation(g)
	rel.Map.Elements = []Element{G, h}
	rel.Map.Combinations = []LinearCombination{
		{ScalarIndices: []int{0, 1}, ElementIndices: []int{0, 1}},
	}
	rel.Image = []Element{C}
	return rel, []Scalar{x, r}
}

// PedersenDLEQRelation composes two Pedersen commitments C1 = x*G + r1*H1
// and C2 = x*G + r2*H2 sharing the same value witness x.
func PedersenDLEQRelation(cs Ciphersuite, rng ByteReader, h1, h2 Element) (*LinearRelation, []Scalar) {
	g := cs.Group
	G := g.Generator()
	x := g.RandomScalar(rng)
	r1 := g.RandomScalar(rng)
	r2 := g.RandomScalar(rng)
	C1 := G.Mul(x).Add(h1.Mul(r1))
	C2 := G.Mul(x).Add(h2.Mul(r2))

	rel := NewLinearRelation(g)
	rel.Map.Elements = []Element{G, h1, h2}
	rel.Map.Combinations = []LinearCombination{
		{ScalarIndices: []int{0, 1}, ElementIndices: []int{0, 1}},
		{ScalarIndices: []int{0, 2}, ElementIndices: []int{0, 2}},
	}
	rel.Image = []Element{C1, C2}
	return rel, []Scalar{x, r1, r2}
}

// BBSBlindCommitmentRelation builds the blind-commitment statement
// C = sum_i(m_i*H_i) + s*Q, the commitment a BBS blind-signature request
// opens against: one independent generator per committed message plus a
// blinding generator Q. Callers typically derive generators/q via
// DeriveRistrettoGenerators rather than BBS's own hash-to-curve suite.
func BBSBlindCommitmentRelation(cs Ciphersuite, rng ByteReader, messages []Scalar, generators []Element, q Element) (*LinearRelation, []Scalar) {
	g := cs.Group
	s := g.RandomScalar(rng)

	C := q.Mul(s)
	for i, m := range messages {
		C = C.Add(generators[i].Mul(m))
	}

	elements := make([]Element, 0, len(generators)+1)
	elements = append(elements, generators...)
	elements = append(elements, q)

	scalarIndices := make([]int, 0, len(messages)+1)
	elementIndices := make([]int, 0, len(messages)+1)
	for i := range messages {
		scalarIndices = append(scalarIndices, i)
		elementIndices = append(elementIndices, i)
	}
	scalarIndices = append(scalarIndices, len(messages))
	elementIndices = append(elementIndices, len(generators))

	rel := NewLinearRelation(g)
	rel.Map.Elements = elements
	rel.Map.Combinations = []LinearCombination{
		{ScalarIndices: scalarIndices, ElementIndices: elementIndices},
	}
	rel.Image = []Element{C}

	witness := make([]Scalar, 0, len(messages)+1)
	witness = append(witness, messages...)
	witness = append(witness, s)
	return rel, witness
}
