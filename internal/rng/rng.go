package rng

import "github.com/aerius-labs/koalabear-xmss/field"

// Rng is a ChaCha12 keystream addressed as an infinite byte stream.
// Bytes are generated lazily, block by block, from a pure function of
// (key, nonce, block counter): this is what makes PeekBytes possible
// without any buffering trick — peeking at offset p and reading at
// offset p compute the identical block.
type Rng struct {
	key   [32]byte
	nonce [12]byte
	pos   uint64
}

// NewFromSeed creates a ChaCha12 stream seeded from a 32-byte seed,
// IETF nonce zero, counter starting at zero.
func NewFromSeed(seed [32]byte) *Rng {
	return &Rng{key: seed}
}

// Pos returns the current stream offset in bytes (for tests that need
// to assert the RNG-consumption schedule from spec.md §5).
func (r *Rng) Pos() uint64 {
	return r.pos
}

func (r *Rng) generate(start uint64, n int) []byte {
	out := make([]byte, n)
	if n == 0 {
		return out
	}
	first := start / chachaBlockSize
	last := (start + uint64(n) - 1) / chachaBlockSize
	for blk := first; blk <= last; blk++ {
		block := block12(r.key, r.nonce, uint32(blk))
		blockStart := blk * chachaBlockSize
		for i := 0; i < chachaBlockSize; i++ {
			global := blockStart + uint64(i)
			if global >= start && global < start+uint64(n) {
				out[global-start] = block[i]
			}
		}
	}
	return out
}

// NextBytes reads n bytes from the stream, advancing the offset.
func (r *Rng) NextBytes(n int) []byte {
	b := r.generate(r.pos, n)
	r.pos += uint64(n)
	return b
}

// PeekBytes reads n bytes from the current offset WITHOUT advancing
// it. spec.md §4.7/§9 requires this exact semantic for ParameterP
// sampling: two runs that peek the same bytes and then continue
// consuming from the same offset must agree bit-for-bit.
func (r *Rng) PeekBytes(n int) []byte {
	return r.generate(r.pos, n)
}

// Skip advances the offset by n bytes without returning them (used by
// signing to resume the stream at the offset key generation left it).
func (r *Rng) Skip(n int) {
	r.pos += uint64(n)
}

// maskedLE32 interprets 4 little-endian bytes as a u32, clears the
// high bit (so the value is always < 2^31), and reduces mod p.
func maskedLE32(b []byte) field.Element {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	v &^= 1 << 31
	return field.FromCanonicalU32(v % uint32(field.P))
}

// NextFieldElements consumes 4*n bytes from the stream and returns n
// field elements, each built from one little-endian u32 word with the
// high bit masked before reduction mod p (spec.md §4.7 step 2/3).
func (r *Rng) NextFieldElements(n int) []field.Element {
	raw := r.NextBytes(4 * n)
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = maskedLE32(raw[i*4 : i*4+4])
	}
	return out
}

// PeekFieldElements is the peek counterpart of NextFieldElements: it
// reads n field elements without advancing the stream offset. Used
// exclusively for ParameterP sampling, per spec.md §4.7 step 2.
func (r *Rng) PeekFieldElements(n int) []field.Element {
	raw := r.PeekBytes(4 * n)
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = maskedLE32(raw[i*4 : i*4+4])
	}
	return out
}
