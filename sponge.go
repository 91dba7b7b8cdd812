package sigma

// Sponge widths for the Keccak-f[1600] duplex.
const (
	spongeWidth    = 200 // N: total state width in bytes.
	spongeRate     = 136 // R: bytes directly readable/writable between permutations.
	spongeCapacity = spongeWidth - spongeRate
	ivSize         = 32
)

// Sponge is a duplex sponge over Keccak-f[1600] in overwrite mode: absorb
// replaces rate bytes rather than XOR-ing into them. It is the single
// persistent, secret-influencing buffer in this module, and is owned
// exclusively by the Codec that constructs it. A Sponge is not safe for
// concurrent use; callers must allocate one sponge per logical
// prover/verifier instance.
type Sponge struct {
	state       [spongeWidth]byte
	absorbIndex int
	squeezeIndex int
}

// NewSponge initializes a duplex sponge from a 32-byte IV, placed at the
// start of the capacity region (state bytes [R, R+32)).
func NewSponge(iv [ivSize]byte) *Sponge {
	s := &Sponge{}
	copy(s.state[spongeRate:spongeRate+ivSize], iv[:])
	s.absorbIndex = 0
	s.squeezeIndex = spongeRate // sentinel: no fresh output pending.
	return s
}

// Absorb overwrites rate bytes with input, permuting whenever the rate
// region fills. It is the only way prover-controlled bytes enter the state.
func (s *Sponge) Absorb(input []byte) {
	// Invalidate any pending squeeze phase: the next squeeze must permute
	// before serving output, enforcing the absorb/squeeze phase switch.
	s.squeezeIndex = spongeRate

	for len(input) > 0 {
		if s.absorbIndex == spongeRate {
			keccakF1600(&s.state)
			s.absorbIndex = 0
		}
		k := spongeRate - s.absorbIndex
		if k > len(input) {
			k = len(input)
		}
		copy(s.state[s.absorbIndex:s.absorbIndex+k], input[:k])
		s.absorbIndex += k
		input = input[k:]
	}
}

// Squeeze extracts length bytes of sponge output. A zero-length squeeze is
// a no-op: it must not permute and must not disturb either cursor.
func (s *Sponge) Squeeze(length int) []byte {
	if length == 0 {
		return nil
	}

	// Reset the absorb cursor so any absorb that follows this squeeze
	// starts a fresh block only after the next permutation; this is
	// load-bearing for keeping the absorb/squeeze phase switch clean.
	s.absorbIndex = 0

	out := make([]byte, 0, length)
	for length > 0 {
		if s.squeezeIndex == spongeRate {
			keccakF1600(&s.state)
			s.squeezeIndex = 0
			s.absorbIndex = 0
		}
		k := spongeRate - s.squeezeIndex
		if k > length {
			k = length
		}
		out = append(out, s.state[s.squeezeIndex:s.squeezeIndex+k]...)
		s.squeezeIndex += k
		length -= k
	}
	return out
}
