package sigma

// challengeOverhead is the extra byte count squeezed per verifier
// challenge beyond L_s, bounding the statistical distance from uniform
// over [0,q) by 2^-128 (see EPRINT 2025/536 Appendix C).
const challengeOverhead = 16

// Codec wraps a Sponge and maps prover-domain objects (group elements,
// scalars) to and from sponge I/O, sampling challenges without modular
// bias. A Codec exclusively owns its Sponge; it is scoped to one proof
// instance and is not safe for concurrent use.
type Codec struct {
	group  Group
	sponge *Sponge
}

// NewCodec constructs a Codec bound to (protocolID, sessionID,
// instanceLabel): the working sponge is seeded from the bootstrap IV
// (deriveIV over protocolID‖sessionID), and instanceLabel is then absorbed
// as the first prover-domain-adjacent message, length-prefixed exactly as
// protocolID/sessionID are in the bootstrap step.
func NewCodec(group Group, protocolID, sessionID, instanceLabel []byte) *Codec {
	iv := deriveIV(protocolID, sessionID)
	sponge := NewSponge(iv)
	sponge.Absorb(i2osp(len(instanceLabel), 4))
	sponge.Absorb(instanceLabel)
	return &Codec{group: group, sponge: sponge}
}

// ProverMessage serializes elements to their canonical encoding and
// absorbs the concatenation.
func (c *Codec) ProverMessage(elements []Element) {
	c.sponge.Absorb(c.group.SerializeElements(elements))
}

// ProverMessageBytes absorbs already-encoded prover bytes directly; used
// by NISigmaProtocol to absorb a protocol's SerializeCommitment output in
// one call (for AndProof/OrProof, the flattened concatenation of every
// sub-commitment).
func (c *Codec) ProverMessageBytes(data []byte) {
	c.sponge.Absorb(data)
}

// VerifierChallenge squeezes L_s+16 uniform bytes and reduces modulo the
// group order q.
func (c *Codec) VerifierChallenge() Scalar {
	uniform := c.sponge.Squeeze(c.group.ScalarLength() + challengeOverhead)
	return c.group.ScalarFromBytes(uniform)
}

// VerifierChallenges draws n independent challenges, each from its own
// fresh L_s+16-byte squeeze.
func (c *Codec) VerifierChallenges(n int) []Scalar {
	out := make([]Scalar, n)
	for i := range out {
		out[i] = c.VerifierChallenge()
	}
	return out
}
