package sigma

import "errors"

// Sentinel errors for the verification-path error taxonomy. All of them
// collapse to a single boolean "reject" at the Verify/VerifyBatchable
// boundary; they are exposed here only so callers that need to distinguish
// causes for logging/metrics can use errors.Is.
var (
	// ErrInvalidProofLength: the proof's byte length does not match the
	// expected fixed length for its wire format.
	ErrInvalidProofLength = errors.New("sigma: invalid proof length")

	// ErrInvalidTag: a tagged-variant proof carried a byte other than
	// the expected 0xAA/0xBB.
	ErrInvalidTag = errors.New("sigma: invalid proof tag")

	// ErrDeserialization: a commitment, challenge, or response failed to
	// decode (wrong length, not on curve, scalar >= q, ...).
	ErrDeserialization = errors.New("sigma: deserialization failed")

	// ErrVerificationFailed: the Σ-protocol verification equation did not
	// hold.
	ErrVerificationFailed = errors.New("sigma: verification failed")
)

// errProtocolIDLength and errInternalConsistency back the two hard-failure
// cases that panic rather than return an error: configuration bugs and
// prover/RNG self-check failures.
const (
	errProtocolIDLength    = "sigma: protocol_id must be exactly 64 bytes, got %d"
	errInternalConsistency = "sigma: prover self-check failed: Σ.verifier(A, c, z) rejected its own proof (RNG or Σ-protocol bug)"
)
