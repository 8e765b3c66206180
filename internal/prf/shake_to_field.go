// Package prf implements PRFtoF: SHAKE-128 expansion of (PrfKey,
// epoch, chainIndex) into a domain8 (spec.md §4.7 step 4a, GLOSSARY
// "PRFtoF").
package prf

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// KeyLen is the fixed PrfKey length (spec.md §3).
const KeyLen = 32

// domainSep separates this PRF's SHAKE stream from any other use of
// SHAKE128 in the module.
var domainSep = []byte{0xae, 0xae, 0x22, 0xff, 0x00, 0x01, 0xfa, 0xff}

// KeyGen draws a fresh 32-byte PrfKey from the scheme's ChaCha12
// stream (spec.md §4.7 step 3: consumes exactly 32 bytes, no peek).
func KeyGen(next func(n int) []byte) [KeyLen]byte {
	var key [KeyLen]byte
	copy(key[:], next(KeyLen))
	return key
}

// Apply computes PRFtoF(key, epoch, chainIndex) -> domain8: SHAKE128
// over domainSep||key||epoch||chainIndex, 4 little-endian bytes read
// per lane with the high bit masked before reduction mod p, matching
// the masking rule spec.md §4.7 step 4a applies to every RNG/PRF-drawn
// field element.
func Apply(key [KeyLen]byte, epoch uint64, chainIndex uint64) th.Domain {
	shake := sha3.NewShake128()
	shake.Write(domainSep)
	shake.Write(key[:])

	var epochBytes [8]byte
	binary.BigEndian.PutUint64(epochBytes[:], epoch)
	shake.Write(epochBytes[:])

	var chainBytes [8]byte
	binary.BigEndian.PutUint64(chainBytes[:], chainIndex)
	shake.Write(chainBytes[:])

	raw := make([]byte, 4*th.HashLenFE)
	shake.Read(raw)

	var out th.Domain
	for i := 0; i < th.HashLenFE; i++ {
		word := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		word &^= 1 << 31
		out[i] = field.FromCanonicalU32(word % uint32(field.P))
	}
	return out
}
