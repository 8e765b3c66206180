package th

import "github.com/aerius-labs/koalabear-xmss/field"

// Tweak domain separators (spec.md §4.3).
const (
	SepChainHash   = 0x00
	SepTreeHash    = 0x01
	SepMessageHash = 0x02
)

// ChainTweak packs (epoch, chainIndex, posInChain) into the 128-bit
// (here: 64-bit, which is all the closed-set lifetime presets ever
// need) integer spec.md §4.3 defines:
// (epoch<<24) | (chainIndex<<16) | (posInChain<<8) | 0x00.
func ChainTweak(epoch uint64, chainIndex uint8, posInChain uint8) uint64 {
	return epoch<<24 | uint64(chainIndex)<<16 | uint64(posInChain)<<8 | SepChainHash
}

// TreeTweak packs (level, posInLevel):
// (level<<40) | (posInLevel<<8) | 0x01.
func TreeTweak(level uint8, posInLevel uint32) uint64 {
	return uint64(level)<<40 | uint64(posInLevel)<<8 | SepTreeHash
}

// MessageTweak packs epoch for the message-hash domain tag:
// (epoch<<8) | 0x02.
func MessageTweak(epoch uint64) uint64 {
	return epoch<<8 | SepMessageHash
}

// DecomposeBaseP decomposes a packed tweak value into n field
// elements by repeated division by p, low element first, per
// spec.md §4.3's "128-bit integer packed into 2 field elements by
// base-p decomposition, low element first".
func DecomposeBaseP(v uint64, n int) []field.Element {
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = field.NewElement(v % field.P)
		v /= field.P
	}
	return out
}
