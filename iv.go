package sigma

import "encoding/binary"

// i2osp big-endian-encodes n into a fixed-length byte string, used for
// length-prefixing identifiers before they are absorbed.
func i2osp(n, length int) []byte {
	buf := make([]byte, length)
	switch length {
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(n))
	default:
		v := uint64(n)
		for i := length - 1; i >= 0; i-- {
			buf[i] = byte(v)
			v >>= 8
		}
	}
	return buf
}

// deriveIV computes a 32-byte domain-separation IV: a bootstrap sponge
// (zero IV) absorbs length-prefixed protocolID and sessionID, then
// squeezes 32 bytes to seed the working sponge's capacity region. The
// instance label is intentionally not absorbed here — it is bound later,
// by NewCodec, so statement-scoped and deployment-scoped identifiers stay
// in separate absorb blocks.
func deriveIV(protocolID, sessionID []byte) [ivSize]byte {
	bootstrap := NewSponge([ivSize]byte{})
	bootstrap.Absorb(i2osp(len(protocolID), 4))
	bootstrap.Absorb(protocolID)
	bootstrap.Absorb(i2osp(len(sessionID), 4))
	bootstrap.Absorb(sessionID)

	var iv [ivSize]byte
	copy(iv[:], bootstrap.Squeeze(ivSize))
	return iv
}
