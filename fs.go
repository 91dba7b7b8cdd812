package sigma

import (
	"bytes"
	"fmt"
)

// Proof type tags for the tagged wire-format variant.
const (
	tagCompact   byte = 0xAA
	tagBatchable byte = 0xBB
)

// NISigmaProtocol is the Fiat–Shamir glue: it binds a Σ-protocol and a
// Group into non-interactive prove/verify operations. It holds no
// per-proof state itself — every Prove/Verify call builds its own fresh
// Codec/Sponge via newCodec — so one instance is safe to reuse across any
// number of proofs.
type NISigmaProtocol struct {
	group    Group
	protocol Protocol
}

// New binds protocol to group and checks the protocol identifier's length
// invariant (a mismatched length is a configuration bug: it panics, not a
// rejected proof).
func New(group Group, protocol Protocol) *NISigmaProtocol {
	id := protocol.ProtocolID()
	if len(id) != 64 {
		panic(fmt.Sprintf(errProtocolIDLength, len(id)))
	}
	return &NISigmaProtocol{group: group, protocol: protocol}
}

func (n *NISigmaProtocol) newCodec(sessionID []byte) *Codec {
	id := n.protocol.ProtocolID()
	return NewCodec(n.group, id[:], sessionID, n.protocol.InstanceLabel())
}

// Prove produces a compact (challenge ‖ response) proof, untagged.
func (n *NISigmaProtocol) Prove(sessionID []byte, witness any, rng ByteReader) []byte {
	challenge, commitment, response := n.commitAndRespond(sessionID, witness, rng)
	if !n.protocol.Verifier(commitment, challenge, response) {
		panic(errInternalConsistency)
	}
	return append(n.group.SerializeScalar(challenge), n.protocol.SerializeResponse(response)...)
}

// commitAndRespond runs the shared prover pipeline: commit, absorb,
// challenge, respond. Extracted once so Prove/ProveBatchable/ProveTagged*
// cannot drift apart on the codec call sequence. The commitment is
// absorbed via the same bytes SerializeCommitment would emit on the wire,
// so Prove's transcript and VerifyBatchable's transcript agree exactly.
func (n *NISigmaProtocol) commitAndRespond(sessionID []byte, witness any, rng ByteReader) (challenge Scalar, commitment any, response any) {
	codec := n.newCodec(sessionID)

	proverState, commitment := n.protocol.ProverCommit(witness, rng)
	codec.ProverMessageBytes(n.protocol.SerializeCommitment(commitment))

	challenge = codec.VerifierChallenge()

	response = n.protocol.ProverResponse(proverState, challenge)
	return challenge, commitment, response
}

// ProveBatchable produces a (commitment ‖ response) proof, untagged.
func (n *NISigmaProtocol) ProveBatchable(sessionID []byte, witness any, rng ByteReader) []byte {
	challenge, commitment, response := n.commitAndRespond(sessionID, witness, rng)
	if !n.protocol.Verifier(commitment, challenge, response) {
		panic(errInternalConsistency)
	}
	return append(n.protocol.SerializeCommitment(commitment), n.protocol.SerializeResponse(response)...)
}

// Verify checks a compact proof by reconstructing the commitment via
// SimulateCommitment, absorbing it into a fresh codec bound to sessionID,
// and accepting only if the squeezed challenge equals the proof's challenge
// and the verification equation holds.
func (n *NISigmaProtocol) Verify(sessionID []byte, proof []byte) (bool, error) {
	expected := n.group.ScalarLength() + n.protocol.ResponseBytesLen()
	if len(proof) != expected {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidProofLength, expected, len(proof))
	}
	challengeBytes := proof[:n.group.ScalarLength()]
	responseBytes := proof[n.group.ScalarLength():]

	challenge, err := n.group.DeserializeScalar(challengeBytes)
	if err != nil {
		return false, err
	}
	response, err := n.protocol.DeserializeResponse(responseBytes)
	if err != nil {
		return false, err
	}
	commitment := n.protocol.SimulateCommitment(response, challenge)

	codec := n.newCodec(sessionID)
	codec.ProverMessageBytes(n.protocol.SerializeCommitment(commitment))
	rederived := codec.VerifierChallenge()
	if !bytes.Equal(n.group.SerializeScalar(rederived), n.group.SerializeScalar(challenge)) {
		return false, ErrVerificationFailed
	}

	if !n.protocol.Verifier(commitment, challenge, response) {
		return false, ErrVerificationFailed
	}
	return true, nil
}

// VerifyBatchable checks a (commitment ‖ response) proof by absorbing the
// deserialized commitment into a fresh codec and squeezing the challenge,
// which is what makes this form batch-verifiable across many proofs
// sharing a Σ-protocol.
func (n *NISigmaProtocol) VerifyBatchable(sessionID []byte, proof []byte) (bool, error) {
	expected := n.protocol.CommitBytesLen() + n.protocol.ResponseBytesLen()
	if len(proof) != expected {
		return false, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidProofLength, expected, len(proof))
	}
	commitBytes := proof[:n.protocol.CommitBytesLen()]
	responseBytes := proof[n.protocol.CommitBytesLen():]

	commitment, err := n.protocol.DeserializeCommitment(commitBytes)
	if err != nil {
		return false, err
	}
	response, err := n.protocol.DeserializeResponse(responseBytes)
	if err != nil {
		return false, err
	}

	codec := n.newCodec(sessionID)
	codec.ProverMessageBytes(n.protocol.SerializeCommitment(commitment))
	challenge := codec.VerifierChallenge()

	if !n.protocol.Verifier(commitment, challenge, response) {
		return false, ErrVerificationFailed
	}
	return true, nil
}

// ProveTagged and VerifyTagged/ProveBatchableTagged/VerifyBatchableTagged
// implement a tagged wire-format variant (0xAA compact / 0xBB batchable),
// offered alongside the untagged forms above for callers that need to
// distinguish proof kinds on the wire without out-of-band context.

func (n *NISigmaProtocol) ProveTagged(sessionID []byte, witness any, rng ByteReader) []byte {
	return append([]byte{tagCompact}, n.Prove(sessionID, witness, rng)...)
}

func (n *NISigmaProtocol) VerifyTagged(sessionID []byte, proof []byte) (bool, error) {
	if len(proof) == 0 || proof[0] != tagCompact {
		return false, ErrInvalidTag
	}
	return n.Verify(sessionID, proof[1:])
}

func (n *NISigmaProtocol) ProveBatchableTagged(sessionID []byte, witness any, rng ByteReader) []byte {
	return append([]byte{tagBatchable}, n.ProveBatchable(sessionID, witness, rng)...)
}

func (n *NISigmaProtocol) VerifyBatchableTagged(sessionID []byte, proof []byte) (bool, error) {
	if len(proof) == 0 || proof[0] != tagBatchable {
		return false, ErrInvalidTag
	}
	return n.VerifyBatchable(sessionID, proof[1:])
}
