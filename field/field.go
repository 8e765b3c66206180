// Package field implements the KoalaBear prime field using gnark-crypto.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/koalabear"
)

// KoalaBear prime: 2^31 - 2^24 + 1
const P uint64 = 0x7F000001

// Element represents a field element in KoalaBear. gnark-crypto stores
// it internally in Montgomery form; every arithmetic method operates
// directly on that representation, so callers never need to reduce by
// hand.
type Element = koalabear.Element

// NewElement creates a new field element from a canonical u64.
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// Zero returns the zero element.
func Zero() Element {
	return koalabear.NewElement(0)
}

// One returns the one element.
func One() Element {
	return koalabear.NewElement(1)
}

// FromCanonicalU32 builds an element from a u32 already known to be
// canonical (< P). Callers at a trust boundary (wire decoding) must
// check the bound themselves and reject with ErrInvalidFieldElement
// before calling this.
func FromCanonicalU32(v uint32) Element {
	var e Element
	e.SetUint64(uint64(v))
	return e
}

// ToBigInt converts to big.Int (canonical representative).
func ToBigInt(e Element) *big.Int {
	return e.BigInt(new(big.Int))
}

