package sigma

import (
	"bytes"
	"fmt"
)

// AndProof is the AND-composition of several SchnorrProofs: it proves
// knowledge of witnesses for all sub-relations under one shared challenge.
// The codec absorbs the flattened concatenation of every sub-commitment
// before a single challenge is squeezed.
type AndProof struct {
	Branches      []*SchnorrProof
	protocolID    [64]byte
	instanceLabel []byte
}

// NewAndProof composes branches (each already bound to its own
// LinearRelation) under one protocol identifier.
func NewAndProof(branches []*SchnorrProof, protocolID [64]byte) *AndProof {
	label := []byte("AND")
	for _, b := range branches {
		label = append(label, b.instanceLabel...)
	}
	return &AndProof{Branches: branches, protocolID: protocolID, instanceLabel: label}
}

func (a *AndProof) ProtocolID() [64]byte  { return a.protocolID }
func (a *AndProof) InstanceLabel() []byte { return a.instanceLabel }

func (a *AndProof) CommitBytesLen() int {
	total := 0
	for _, b := range a.Branches {
		total += b.CommitBytesLen()
	}
	return total
}

func (a *AndProof) ResponseBytesLen() int {
	total := 0
	for _, b := range a.Branches {
		total += b.ResponseBytesLen()
	}
	return total
}

// ProverCommit runs every branch's commit step with the same rng stream
// and witness slice (one witness vector per branch).
func (a *AndProof) ProverCommit(witness any, rng ByteReader) (any, any) {
	witnesses := witness.([][]Scalar)
	proverStates := make([]any, len(a.Branches))
	commitments := make([]any, len(a.Branches))
	for i, branch := range a.Branches {
		ps, c := branch.ProverCommit(witnesses[i], rng)
		proverStates[i] = ps
		commitments[i] = c
	}
	return proverStates, commitments
}

func (a *AndProof) ProverResponse(proverState any, challenge Scalar) any {
	states := proverState.([]any)
	responses := make([]any, len(a.Branches))
	for i, branch := range a.Branches {
		responses[i] = branch.ProverResponse(states[i], challenge)
	}
	return responses
}

func (a *AndProof) Verifier(commitment any, challenge Scalar, response any) bool {
	commitments := commitment.([]any)
	responses := response.([]any)
	if len(commitments) != len(a.Branches) || len(responses) != len(a.Branches) {
		return false
	}
	for i, branch := range a.Branches {
		if !branch.Verifier(commitments[i], challenge, responses[i]) {
			return false
		}
	}
	return true
}

func (a *AndProof) SimulateCommitment(response any, challenge Scalar) any {
	responses := response.([]any)
	out := make([]any, len(a.Branches))
	for i, branch := range a.Branches {
		out[i] = branch.SimulateCommitment(responses[i], challenge)
	}
	return out
}

func (a *AndProof) SerializeCommitment(commitment any) []byte {
	commitments := commitment.([]any)
	out := []byte{}
	for i, branch := range a.Branches {
		out = append(out, branch.SerializeCommitment(commitments[i])...)
	}
	return out
}

func (a *AndProof) SerializeResponse(response any) []byte {
	responses := response.([]any)
	out := []byte{}
	for i, branch := range a.Branches {
		out = append(out, branch.SerializeResponse(responses[i])...)
	}
	return out
}

func (a *AndProof) DeserializeCommitment(data []byte) (any, error) {
	out := make([]any, len(a.Branches))
	offset := 0
	for i, branch := range a.Branches {
		n := branch.CommitBytesLen()
		if offset+n > len(data) {
			return nil, fmt.Errorf("%w: AND commitment truncated at branch %d", ErrDeserialization, i)
		}
		c, err := branch.DeserializeCommitment(data[offset : offset+n])
		if err != nil {
			return nil, err
		}
		out[i] = c
		offset += n
	}
	return out, nil
}

func (a *AndProof) DeserializeResponse(data []byte) (any, error) {
	out := make([]any, len(a.Branches))
	offset := 0
	for i, branch := range a.Branches {
		n := branch.ResponseBytesLen()
		if offset+n > len(data) {
			return nil, fmt.Errorf("%w: AND response truncated at branch %d", ErrDeserialization, i)
		}
		r, err := branch.DeserializeResponse(data[offset : offset+n])
		if err != nil {
			return nil, err
		}
		out[i] = r
		offset += n
	}
	return out, nil
}

// OrProof is the witness-indistinguishable OR-composition of several
// SchnorrProofs: the prover knows a witness for exactly one branch and
// simulates the rest. Unlike AndProof, OR-composition needs per-branch
// sub-challenges summing to the top-level challenge, so ProverCommit
// additionally returns the simulated per-branch challenges chosen for the
// non-witness branches.
type OrProof struct {
	Branches      []*SchnorrProof
	protocolID    [64]byte
	instanceLabel []byte
}

func NewOrProof(branches []*SchnorrProof, protocolID [64]byte) *OrProof {
	label := []byte("OR")
	for _, b := range branches {
		label = append(label, b.instanceLabel...)
	}
	return &OrProof{Branches: branches, protocolID: protocolID, instanceLabel: label}
}

func (o *OrProof) ProtocolID() [64]byte  { return o.protocolID }
func (o *OrProof) InstanceLabel() []byte { return o.instanceLabel }

func (o *OrProof) CommitBytesLen() int {
	total := 0
	for _, b := range o.Branches {
		total += b.CommitBytesLen()
	}
	return total
}

// ResponseBytesLen includes, for every branch, its serialized sub-challenge
// alongside its response. Every sub-challenge is carried on the wire (rather
// than omitting one as implied by the sum) to keep (de)serialization a
// straightforward per-branch walk; the sum-equals-top-challenge check in
// Verifier is what actually binds the sub-challenges together.
func (o *OrProof) ResponseBytesLen() int {
	total := 0
	for _, b := range o.Branches {
		total += b.ResponseBytesLen() + b.Relation.Group.ScalarLength()
	}
	return total
}

// orWitness carries the witness index, the real prover state, and the
// simulated (challenge, response) pairs chosen up front for every other
// branch — CDS-style OR-proofs fix the non-real branches' transcripts
// before the real challenge is known.
type orWitness struct {
	index            int
	realState        any
	simChallenges    []Scalar
	simResponses     []any
	simCommitments   []any
}

func (o *OrProof) ProverCommit(witness any, rng ByteReader) (any, any) {
	w := witness.(struct {
		Index   int
		Witness []Scalar
	})
	commitments := make([]any, len(o.Branches))
	simChallenges := make([]Scalar, len(o.Branches))
	simResponses := make([]any, len(o.Branches))

	var realState any
	for i, branch := range o.Branches {
		if i == w.Index {
			ps, c := branch.ProverCommit(w.Witness, rng)
			realState = ps
			commitments[i] = c
			continue
		}
		sc := branch.Relation.Group.RandomScalar(rng)
		resp := make([]Scalar, branch.Relation.Map.NumScalars())
		for j := range resp {
			resp[j] = branch.Relation.Group.RandomScalar(rng)
		}
		simChallenges[i] = sc
		simResponses[i] = resp
		commitments[i] = branch.SimulateCommitment(resp, sc)
	}

	return orWitness{
		index:          w.Index,
		realState:      realState,
		simChallenges:  simChallenges,
		simResponses:   simResponses,
		simCommitments: commitments,
	}, commitments
}

// ProverResponse computes the real branch's sub-challenge as
// (topChallenge - sum of simulated sub-challenges) and responds for it;
// the simulated branches already have fixed (challenge, response) pairs.
func (o *OrProof) ProverResponse(proverState any, challenge Scalar) any {
	ps := proverState.(orWitness)
	realChallenge := challenge
	for i, c := range ps.simChallenges {
		if i == ps.index {
			continue
		}
		realChallenge = realChallenge.Sub(c)
	}

	responses := make([]any, len(o.Branches))
	challenges := make([]Scalar, len(o.Branches))
	for i := range o.Branches {
		if i == ps.index {
			responses[i] = o.Branches[i].ProverResponse(ps.realState, realChallenge)
			challenges[i] = realChallenge
			continue
		}
		responses[i] = ps.simResponses[i]
		challenges[i] = ps.simChallenges[i]
	}
	return struct {
		Challenges []Scalar
		Responses  []any
	}{challenges, responses}
}

func (o *OrProof) Verifier(commitment any, challenge Scalar, response any) bool {
	commitments := commitment.([]any)
	r := response.(struct {
		Challenges []Scalar
		Responses  []any
	})
	if len(commitments) != len(o.Branches) || len(r.Challenges) != len(o.Branches) {
		return false
	}
	sum := r.Challenges[0]
	for _, c := range r.Challenges[1:] {
		sum = sum.Add(c)
	}
	group := o.Branches[0].Relation.Group
	if !bytes.Equal(group.SerializeScalar(sum), group.SerializeScalar(challenge)) {
		return false
	}
	for i, branch := range o.Branches {
		if !branch.Verifier(commitments[i], r.Challenges[i], r.Responses[i]) {
			return false
		}
	}
	return true
}

func (o *OrProof) SimulateCommitment(response any, challenge Scalar) any {
	r := response.(struct {
		Challenges []Scalar
		Responses  []any
	})
	out := make([]any, len(o.Branches))
	for i, branch := range o.Branches {
		out[i] = branch.SimulateCommitment(r.Responses[i], r.Challenges[i])
	}
	return out
}

func (o *OrProof) SerializeCommitment(commitment any) []byte {
	commitments := commitment.([]any)
	out := []byte{}
	for i, branch := range o.Branches {
		out = append(out, branch.SerializeCommitment(commitments[i])...)
	}
	return out
}

// SerializeResponse emits, for every branch, its sub-challenge followed by
// its response.
func (o *OrProof) SerializeResponse(response any) []byte {
	r := response.(struct {
		Challenges []Scalar
		Responses  []any
	})
	out := []byte{}
	for i, branch := range o.Branches {
		out = append(out, branch.Relation.Group.SerializeScalar(r.Challenges[i])...)
		out = append(out, branch.SerializeResponse(r.Responses[i])...)
	}
	return out
}

func (o *OrProof) DeserializeCommitment(data []byte) (any, error) {
	out := make([]any, len(o.Branches))
	offset := 0
	for i, branch := range o.Branches {
		n := branch.CommitBytesLen()
		if offset+n > len(data) {
			return nil, fmt.Errorf("%w: OR commitment truncated at branch %d", ErrDeserialization, i)
		}
		c, err := branch.DeserializeCommitment(data[offset : offset+n])
		if err != nil {
			return nil, err
		}
		out[i] = c
		offset += n
	}
	return out, nil
}

func (o *OrProof) DeserializeResponse(data []byte) (any, error) {
	challenges := make([]Scalar, len(o.Branches))
	responses := make([]any, len(o.Branches))
	offset := 0
	for i, branch := range o.Branches {
		scLen := branch.Relation.Group.ScalarLength()
		if offset+scLen > len(data) {
			return nil, fmt.Errorf("%w: OR response truncated at branch %d challenge", ErrDeserialization, i)
		}
		c, err := branch.Relation.Group.DeserializeScalar(data[offset : offset+scLen])
		if err != nil {
			return nil, err
		}
		challenges[i] = c
		offset += scLen

		n := branch.ResponseBytesLen()
		if offset+n > len(data) {
			return nil, fmt.Errorf("%w: OR response truncated at branch %d", ErrDeserialization, i)
		}
		r, err := branch.DeserializeResponse(data[offset : offset+n])
		if err != nil {
			return nil, err
		}
		responses[i] = r
		offset += n
	}
	return struct {
		Challenges []Scalar
		Responses  []any
	}{challenges, responses}, nil
}
