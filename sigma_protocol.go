package sigma

// Protocol is the Σ-protocol interface consumed by NISigmaProtocol.
// Commitment, Challenge, and Response are implementation-defined types
// (typically []Element, Scalar, and []Scalar respectively for a linear
// relation); NISigmaProtocol never inspects them beyond passing them
// through (de)serialization.
type Protocol interface {
	// ProverCommit runs the first prover move: given a witness and
	// randomness, produce prover state to carry to ProverResponse and a
	// public commitment.
	ProverCommit(witness any, rng ByteReader) (proverState any, commitment any)

	// ProverResponse runs the third prover move given the challenge.
	ProverResponse(proverState any, challenge Scalar) (response any)

	// Verifier checks the Σ-protocol's verification equation.
	Verifier(commitment any, challenge Scalar, response any) bool

	// SimulateCommitment reconstructs the commitment implied by a
	// (challenge, response) pair, the inverse of the verification
	// equation used by NISigmaProtocol.Verify's compact form.
	SimulateCommitment(response any, challenge Scalar) (commitment any)

	SerializeCommitment(commitment any) []byte
	SerializeResponse(response any) []byte
	DeserializeCommitment(data []byte) (any, error)
	DeserializeResponse(data []byte) (any, error)

	// ProtocolID is a fixed 64-byte identifier for this protocol; its
	// length is enforced by New.
	ProtocolID() [64]byte

	// InstanceLabel identifies the concrete statement (public inputs)
	// being proven, absorbed by NewCodec.
	InstanceLabel() []byte

	CommitBytesLen() int
	ResponseBytesLen() int
}
