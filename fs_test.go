package sigma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscreteLogCompactRoundTrip(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("witness-seed"))
	rel, witness := DiscreteLogRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("prove-seed"))
	nizk := New(cs.Group, protocol)
	proof := nizk.Prove([]byte("session-1"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).Verify([]byte("session-1"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDiscreteLogBatchableRoundTrip(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	rng := newTestDRNG([]byte("witness-seed-2"))
	rel, witness := DiscreteLogRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("prove-seed-2"))
	proof := New(cs.Group, protocol).ProveBatchable([]byte("session-2"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).VerifyBatchable([]byte("session-2"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDLEQRoundTrip(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("dleq-witness"))
	rel, witness := DLEQRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("dleq-prove"))
	proof := New(cs.Group, protocol).Prove([]byte("dleq-session"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).Verify([]byte("dleq-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPedersenRoundTrip(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	h := DeriveRistrettoGenerators([]byte("pedersen-h"), 1)[0]
	rng := newTestDRNG([]byte("pedersen-witness"))
	rel, witness := PedersenRelation(cs, rng, h)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("pedersen-prove"))
	proof := New(cs.Group, protocol).ProveBatchable([]byte("pedersen-session"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).VerifyBatchable([]byte("pedersen-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPedersenDLEQRoundTrip(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	gens := DeriveRistrettoGenerators([]byte("pedersen-dleq"), 2)
	rng := newTestDRNG([]byte("pedersen-dleq-witness"))
	rel, witness := PedersenDLEQRelation(cs, rng, gens[0], gens[1])
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("pedersen-dleq-prove"))
	proof := New(cs.Group, protocol).Prove([]byte("pedersen-dleq-session"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).Verify([]byte("pedersen-dleq-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBBSBlindCommitmentRoundTrip(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	gens := DeriveRistrettoGenerators([]byte("bbs-h"), 3)
	q := DeriveRistrettoGenerators([]byte("bbs-q"), 1)[0]

	rng := newTestDRNG([]byte("bbs-witness"))
	messages := []Scalar{
		cs.Group.RandomScalar(rng),
		cs.Group.RandomScalar(rng),
		cs.Group.RandomScalar(rng),
	}
	rel, witness := BBSBlindCommitmentRelation(cs, rng, messages, gens, q)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("bbs-prove"))
	proof := New(cs.Group, protocol).ProveBatchable([]byte("bbs-session"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).VerifyBatchable([]byte("bbs-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAndCompositionRoundTrip(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("and-witness"))
	rel1, w1 := DiscreteLogRelation(cs, rng)
	rel2, w2 := DLEQRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	and := NewAndProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("and-prove"))
	witness := [][]Scalar{w1, w2}
	proof := New(cs.Group, and).ProveBatchable([]byte("and-session"), witness, proveRNG)

	ok, err := New(cs.Group, and).VerifyBatchable([]byte("and-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAndCompositionCompactRoundTrip(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	rng := newTestDRNG([]byte("and-compact-witness"))
	rel1, w1 := DiscreteLogRelation(cs, rng)
	rel2, w2 := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	and := NewAndProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("and-compact-prove"))
	witness := [][]Scalar{w1, w2}
	proof := New(cs.Group, and).Prove([]byte("and-compact-session"), witness, proveRNG)

	ok, err := New(cs.Group, and).Verify([]byte("and-compact-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOrCompositionRoundTrip(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("or-witness"))

	// Two independent discrete-log relations; the prover knows only the
	// second one's witness.
	rel1, _ := DiscreteLogRelation(cs, rng)
	rel2, w2 := DiscreteLogRelation(cs, rng)

	p1 := NewSchnorrProof(rel1, cs.ProtocolID)
	p2 := NewSchnorrProof(rel2, cs.ProtocolID)
	or := NewOrProof([]*SchnorrProof{p1, p2}, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("or-prove"))
	witness := struct {
		Index   int
		Witness []Scalar
	}{Index: 1, Witness: w2}
	proof := New(cs.Group, or).ProveBatchable([]byte("or-session"), witness, proveRNG)

	ok, err := New(cs.Group, or).VerifyBatchable([]byte("or-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("tamper-witness"))
	rel, witness := DiscreteLogRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("tamper-prove"))
	proof := New(cs.Group, protocol).Prove([]byte("tamper-session"), witness, proveRNG)
	proof[len(proof)-1] ^= 0x01

	ok, err := New(cs.Group, protocol).Verify([]byte("tamper-session"), proof)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSessionID(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	rng := newTestDRNG([]byte("session-witness"))
	rel, witness := DiscreteLogRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("session-prove"))
	proof := New(cs.Group, protocol).ProveBatchable([]byte("session-a"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).VerifyBatchable([]byte("session-b"), proof)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestVerifyRejectsWrongProofLength(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("len-witness"))
	rel, witness := DiscreteLogRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("len-prove"))
	proof := New(cs.Group, protocol).Prove([]byte("len-session"), witness, proveRNG)

	_, err := New(cs.Group, protocol).Verify([]byte("len-session"), proof[:len(proof)-1])
	assert.ErrorIs(t, err, ErrInvalidProofLength)
}

func TestTaggedRoundTripAndRejectsWrongTag(t *testing.T) {
	cs := Ristretto255Ciphersuite()
	rng := newTestDRNG([]byte("tag-witness"))
	rel, witness := DiscreteLogRelation(cs, rng)
	protocol := NewSchnorrProof(rel, cs.ProtocolID)

	proveRNG := newTestDRNG([]byte("tag-prove"))
	proof := New(cs.Group, protocol).ProveTagged([]byte("tag-session"), witness, proveRNG)

	ok, err := New(cs.Group, protocol).VerifyTagged([]byte("tag-session"), proof)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = New(cs.Group, protocol).VerifyBatchableTagged([]byte("tag-session"), proof)
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestNewAcceptsWellFormedProtocolID(t *testing.T) {
	cs := P256Ciphersuite()
	rng := newTestDRNG([]byte("wellformed-witness"))
	rel, _ := DiscreteLogRelation(cs, rng)

	// SchnorrProof.ProtocolID always returns a [64]byte array, so the
	// length invariant New checks cannot actually fail through this
	// constructor; this just confirms the happy path does not panic.
	protocol := NewSchnorrProof(rel, cs.ProtocolID)
	assert.NotPanics(t, func() { New(cs.Group, protocol) })
}
