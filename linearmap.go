package sigma

import "fmt"

// LinearCombination is one row of a LinearMap: image[row] = sum over i of
// scalars[ScalarIndices[i]] * elements[ElementIndices[i]].
type LinearCombination struct {
	ScalarIndices  []int
	ElementIndices []int
}

// LinearMap is a sparse matrix of group-scalar-multiplications, shared by
// every linear Σ-protocol instance this module ships (Schnorr, DLEQ,
// Pedersen, Pedersen-DLEQ, BBS blind commitment, and AND/OR composition
// operate on it uniformly rather than each hand-rolling their own
// verification equation).
type LinearMap struct {
	Group        Group
	Elements     []Element
	Combinations []LinearCombination
}

// NumScalars is the width of the witness/nonce/response vectors this map
// consumes.
func (m *LinearMap) NumScalars() int {
	max := 0
	for _, lc := range m.Combinations {
		for _, i := range lc.ScalarIndices {
			if i+1 > max {
				max = i + 1
			}
		}
	}
	return max
}

// NumConstraints is the number of image rows (and thus the size of a
// commitment/image vector).
func (m *LinearMap) NumConstraints() int { return len(m.Combinations) }

// Apply evaluates the linear map at the given scalar vector.
func (m *LinearMap) Apply(scalars []Scalar) []Element {
	out := make([]Element, len(m.Combinations))
	for row, lc := range m.Combinations {
		acc := m.Group.Identity()
		for k, si := range lc.ScalarIndices {
			ei := lc.ElementIndices[k]
			acc = acc.Add(m.Elements[ei].Mul(scalars[si]))
		}
		out[row] = acc
	}
	return out
}

// LinearRelation is a statement in the Σ-protocol sense: a LinearMap
// together with the image it is claimed to hit. InstanceLabel derives a
// deterministic label from the Group's own element serialization, which
// keeps the label collision-resistant with respect to distinct (map,
// image) pairs without pulling in a second hash function.
type LinearRelation struct {
	Group Group
	Map   *LinearMap
	Image []Element
}

// NewLinearRelation constructs an empty relation over group; callers
// populate Map.Elements/Combinations and Image directly before use.
func NewLinearRelation(group Group) *LinearRelation {
	return &LinearRelation{
		Group: group,
		Map:   &LinearMap{Group: group},
	}
}

// InstanceLabel serializes the relation's structure and image, giving
// every distinct statement a distinct absorb-domain label.
func (r *LinearRelation) InstanceLabel() []byte {
	label := i2osp(r.Map.NumScalars(), 4)
	label = append(label, i2osp(len(r.Map.Elements), 4)...)
	label = append(label, i2osp(r.Map.NumConstraints(), 4)...)
	for _, lc := range r.Map.Combinations {
		label = append(label, i2osp(len(lc.ScalarIndices), 4)...)
		for k, si := range lc.ScalarIndices {
			label = append(label, i2osp(si, 4)...)
			label = append(label, i2osp(lc.ElementIndices[k], 4)...)
		}
	}
	label = append(label, r.Group.SerializeElements(r.Map.Elements)...)
	label = append(label, r.Group.SerializeElements(r.Image)...)
	return label
}

// linearWitness is the ProverState carried between ProverCommit and
// ProverResponse for a SchnorrProof over a LinearRelation.
type linearWitness struct {
	witness []Scalar
	nonces  []Scalar
}

// SchnorrProof is the Σ-protocol for linear relations: discrete log, DLEQ,
// Pedersen, Pedersen-DLEQ, and BBS blind commitment are all instances of
// this one protocol over different LinearRelations.
type SchnorrProof struct {
	Relation      *LinearRelation
	protocolID    [64]byte
	instanceLabel []byte
}

// NewSchnorrProof binds a 64-byte protocol identifier to relation. The
// caller is responsible for the identifier being unique per deployed
// protocol.
func NewSchnorrProof(relation *LinearRelation, protocolID [64]byte) *SchnorrProof {
	return &SchnorrProof{
		Relation:      relation,
		protocolID:    protocolID,
		instanceLabel: relation.InstanceLabel(),
	}
}

func (p *SchnorrProof) ProtocolID() [64]byte  { return p.protocolID }
func (p *SchnorrProof) InstanceLabel() []byte { return p.instanceLabel }

func (p *SchnorrProof) CommitBytesLen() int {
	return p.Relation.Map.NumConstraints() * p.Relation.Group.ElementLength()
}

func (p *SchnorrProof) ResponseBytesLen() int {
	return p.Relation.Map.NumScalars() * p.Relation.Group.ScalarLength()
}

// ProverCommit samples one nonce per scalar variable and evaluates the
// linear map at the nonce vector to get the commitment.
func (p *SchnorrProof) ProverCommit(witness any, rng ByteReader) (any, any) {
	w := witness.([]Scalar)
	n := p.Relation.Map.NumScalars()
	nonces := make([]Scalar, n)
	for i := range nonces {
		nonces[i] = p.Relation.Group.RandomScalar(rng)
	}
	commitment := p.Relation.Map.Apply(nonces)
	return linearWitness{witness: w, nonces: nonces}, commitment
}

// ProverResponse computes response[i] = nonce[i] + witness[i]*challenge.
func (p *SchnorrProof) ProverResponse(proverState any, challenge Scalar) any {
	ps := proverState.(linearWitness)
	response := make([]Scalar, len(ps.nonces))
	for i := range response {
		response[i] = ps.nonces[i].Add(ps.witness[i].Mul(challenge))
	}
	return response
}

// Verifier checks map(response) == commitment + image*challenge, row by
// row.
func (p *SchnorrProof) Verifier(commitment any, challenge Scalar, response any) bool {
	c := commitment.([]Element)
	z := response.([]Scalar)
	if len(c) != p.Relation.Map.NumConstraints() || len(z) != p.Relation.Map.NumScalars() {
		return false
	}
	expected := p.Relation.Map.Apply(z)
	for i := range expected {
		got := c[i].Add(p.Relation.Image[i].Mul(challenge))
		if !expected[i].Equal(got) {
			return false
		}
	}
	return true
}

// SimulateCommitment computes map(response) - image*challenge, the
// inverse of the verification equation, used by NISigmaProtocol.Verify's
// compact form.
func (p *SchnorrProof) SimulateCommitment(response any, challenge Scalar) any {
	z := response.([]Scalar)
	values := p.Relation.Map.Apply(z)
	out := make([]Element, len(values))
	for i := range values {
		hc := p.Relation.Image[i].Mul(challenge)
		out[i] = values[i].Add(hc.Negate())
	}
	return out
}

func (p *SchnorrProof) SerializeCommitment(commitment any) []byte {
	return p.Relation.Group.SerializeElements(commitment.([]Element))
}

func (p *SchnorrProof) SerializeResponse(response any) []byte {
	z := response.([]Scalar)
	out := make([]byte, 0, len(z)*p.Relation.Group.ScalarLength())
	for _, s := range z {
		out = append(out, p.Relation.Group.SerializeScalar(s)...)
	}
	return out
}

func (p *SchnorrProof) DeserializeCommitment(data []byte) (any, error) {
	elLen := p.Relation.Group.ElementLength()
	n := p.Relation.Map.NumConstraints()
	if len(data) != elLen*n {
		return nil, fmt.Errorf("%w: commitment must be %d bytes, got %d", ErrDeserialization, elLen*n, len(data))
	}
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		el, err := p.Relation.Group.DeserializeElement(data[i*elLen : (i+1)*elLen])
		if err != nil {
			return nil, err
		}
		out[i] = el
	}
	return out, nil
}

func (p *SchnorrProof) DeserializeResponse(data []byte) (any, error) {
	scLen := p.Relation.Group.ScalarLength()
	n := p.Relation.Map.NumScalars()
	if len(data) != scLen*n {
		return nil, fmt.Errorf("%w: response must be %d bytes, got %d", ErrDeserialization, scLen*n, len(data))
	}
	out := make([]Scalar, n)
	for i := 0; i < n; i++ {
		s, err := p.Relation.Group.DeserializeScalar(data[i*scLen : (i+1)*scLen])
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
