package sigma

import "encoding/binary"

// keccakRC holds the 24 round constants of Keccak-f[1600], applied to
// lane (0,0) in the iota step.
var keccakRC = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// keccakRotc are the rho rotation offsets, indexed in the pi-permuted order.
var keccakRotc = [24]uint{
	1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
	27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
}

// keccakPiln is the lane index visited at step i of the combined rho/pi pass.
var keccakPiln = [24]int{
	10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
	15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
}

func rotl64(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

// keccakF1600 applies the 24-round Keccak-f[1600] permutation in place to a
// 200-byte state. Lane (x,y) occupies bytes [8*(5*y+x), 8*(5*y+x)+8) of the
// state, little-endian within each lane. The permutation performs no
// padding; it is a pure 200-byte-to-200-byte transformation.
func keccakF1600(state *[200]byte) {
	var lanes [25]uint64
	for i := range lanes {
		lanes[i] = binary.LittleEndian.Uint64(state[i*8 : i*8+8])
	}

	var bc [5]uint64
	for round := 0; round < 24; round++ {
		// theta
		for i := 0; i < 5; i++ {
			bc[i] = lanes[i] ^ lanes[i+5] ^ lanes[i+10] ^ lanes[i+15] ^ lanes[i+20]
		}
		for i := 0; i < 5; i++ {
			t := bc[(i+4)%5] ^ rotl64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				lanes[j+i] ^= t
			}
		}

		// rho + pi
		t := lanes[1]
		for i := 0; i < 24; i++ {
			j := keccakPiln[i]
			bc[0] = lanes[j]
			lanes[j] = rotl64(t, keccakRotc[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			for i := 0; i < 5; i++ {
				bc[i] = lanes[j+i]
			}
			for i := 0; i < 5; i++ {
				lanes[j+i] ^= ^bc[(i+1)%5] & bc[(i+2)%5]
			}
		}

		// iota
		lanes[0] ^= keccakRC[round]
	}

	for i := range lanes {
		binary.LittleEndian.PutUint64(state[i*8:i*8+8], lanes[i])
	}
}
