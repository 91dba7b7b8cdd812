package sigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAndProofPanicsIfOneBranchWitnessIsWrong(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("and-wrong-witness"))
	rel1, w1 := DiscreteLogRelation(cs, rng)
	rel2, _ := DiscreteLogRelation(cs, rng)
	_, wrongWitness := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	and := NewAndProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("and-wrong-prove"))
	// Substitute a witness for branch 2 that does not satisfy rel2; the
	// prover's own self-check catches this before any proof is emitted.
	witness := [][]Scalar{w1, wrongWitness}
	assert.Panics(t, func() {
		New(cs.Group, and).ProveBatchable([]byte("and-wrong-session"), witness, proveRNG)
	})
}

func TestAndCompositionRejectsTamperedResponse(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("and-tamper-witness"))
	rel1, w1 := DiscreteLogRelation(cs, rng)
	rel2, w2 := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	and := NewAndProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("and-tamper-prove"))
	witness := [][]Scalar{w1, w2}
	proof := New(cs.Group, and).ProveBatchable([]byte("and-tamper-session"), witness, proveRNG)
	proof[len(proof)-1] ^= 0x01

	ok, err := New(cs.Group, and).VerifyBatchable([]byte("and-tamper-session"), proof)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestAndProofDeserializeCommitmentRejectsTruncation(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("and-truncate-witness"))
	rel1, _ := DiscreteLogRelation(cs, rng)
	rel2, _ := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	and := NewAndProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	_, err := and.DeserializeCommitment(make([]byte, and.CommitBytesLen()-1))
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestOrProofPanicsWhenClaimedBranchWitnessIsWrong(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("or-neither-witness"))
	rel1, _ := DiscreteLogRelation(cs, rng)
	rel2, _ := DiscreteLogRelation(cs, rng)
	_, unrelatedWitness := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	or := NewOrProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("or-neither-prove"))
	// Claim to know branch 0's witness, but supply one that does not
	// satisfy rel1 either; the self-check in ProveBatchable catches it.
	witness := struct {
		Index   int
		Witness []Scalar
	}{Index: 0, Witness: unrelatedWitness}
	assert.Panics(t, func() {
		New(cs.Group, or).ProveBatchable([]byte("or-neither-session"), witness, proveRNG)
	})
}

func TestOrProofResponseSerializationRoundTrip(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	rng := newTestDRNG([]byte("or-serialize-witness"))
	rel1, _ := DiscreteLogRelation(cs, rng)
	rel2, w2 := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	or := NewOrProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("or-serialize-prove"))
	witness := struct {
		Index   int
		Witness []Scalar
	}{Index: 1, Witness: w2}
	proverState, commitment := or.ProverCommit(witness, proveRNG)
	challenge := cs.Group.RandomScalar(newTestDRNG([]byte("or-serialize-challenge")))
	response := or.ProverResponse(proverState, challenge)

	responseBytes := or.SerializeResponse(response)
	require.Len(t, responseBytes, or.ResponseBytesLen())

	decoded, err := or.DeserializeResponse(responseBytes)
	require.NoError(t, err)
	assert.True(t, or.Verifier(commitment, challenge, decoded))
}
