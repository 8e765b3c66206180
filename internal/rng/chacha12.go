// Package rng implements the ChaCha12-based deterministic byte stream
// the scheme uses for key generation and signing randomness, plus the
// "peek without consuming" API spec.md mandates for reproducible
// parameter sampling.
//
// golang.org/x/crypto/chacha20 only exposes the RFC 8439 20-round
// construction, so the 12-round core is reimplemented here directly
// from the same quarter-round/double-round schedule, just stopped
// after six double-rounds instead of ten. Everything else (key size,
// nonce layout, block counter) follows the same IETF ChaCha layout
// x/crypto/chacha20 uses.
package rng

import "encoding/binary"

const (
	chachaBlockSize = 64
	chachaKeyWords  = 8
)

var chachaConstants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

func rotl32(x uint32, n int) uint32 {
	return x<<n | x>>(32-n)
}

func quarterRound(a, b, c, d *uint32) {
	*a += *b
	*d ^= *a
	*d = rotl32(*d, 16)
	*c += *d
	*b ^= *c
	*b = rotl32(*b, 12)
	*a += *b
	*d ^= *a
	*d = rotl32(*d, 8)
	*c += *d
	*b ^= *c
	*b = rotl32(*b, 7)
}

// block12 computes one 64-byte ChaCha12 keystream block for the given
// 32-byte key, 96-bit nonce, and 32-bit little-endian block counter.
func block12(key [32]byte, nonce [12]byte, counter uint32) [64]byte {
	var state [16]uint32
	state[0], state[1], state[2], state[3] = chachaConstants[0], chachaConstants[1], chachaConstants[2], chachaConstants[3]
	for i := 0; i < chachaKeyWords; i++ {
		state[4+i] = binary.LittleEndian.Uint32(key[i*4 : i*4+4])
	}
	state[12] = counter
	state[13] = binary.LittleEndian.Uint32(nonce[0:4])
	state[14] = binary.LittleEndian.Uint32(nonce[4:8])
	state[15] = binary.LittleEndian.Uint32(nonce[8:12])

	working := state
	for round := 0; round < 6; round++ {
		quarterRound(&working[0], &working[4], &working[8], &working[12])
		quarterRound(&working[1], &working[5], &working[9], &working[13])
		quarterRound(&working[2], &working[6], &working[10], &working[14])
		quarterRound(&working[3], &working[7], &working[11], &working[15])

		quarterRound(&working[0], &working[5], &working[10], &working[15])
		quarterRound(&working[1], &working[6], &working[11], &working[12])
		quarterRound(&working[2], &working[7], &working[8], &working[13])
		quarterRound(&working[3], &working[4], &working[9], &working[14])
	}

	var out [64]byte
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], working[i]+state[i])
	}
	return out
}
