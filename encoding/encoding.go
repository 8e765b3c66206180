// Package encoding implements the incomparable encoding layer
// (spec.md §4.4): message digits plus a checksum, arranged so no two
// valid codewords dominate each other digit-wise.
package encoding

import (
	"errors"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// ErrEncodingFailed indicates the codeword did not satisfy the
// encoding's validity predicate and the caller must resample rho
// (spec.md §4.3: "valid=false means the sampled rho must be
// rejected").
var ErrEncodingFailed = errors.New("encoding: codeword invalid, resample randomness")

// Codeword is an encoded message: digits followed by checksum digits,
// each in [0, Base()).
type Codeword []uint32

// MessageHasher is the digit-producing half of the encoding: any
// message hash that, given (P, msg, rho, epoch), can emit Dimension()
// base-Base() digits.
type MessageHasher interface {
	Digest(params th.Params, msg [32]byte, rho []field.Element, epoch uint64) []uint32
	Dimension() int
	Base() int
	RandLenFE() int
}

// IncomparableEncoding is the interface an incomparable encoding
// (spec.md §4.4) implements. WinternitzEncoding is the only
// implementation wired into Scheme.
type IncomparableEncoding interface {
	// Encode attempts to build a codeword from (P, msg, rho, epoch).
	// Returns ErrEncodingFailed if the codeword is invalid and rho
	// must be resampled.
	Encode(params th.Params, msg [32]byte, rho []field.Element, epoch uint64) (Codeword, error)

	// Dimension returns the total codeword length (message digits
	// plus checksum digits).
	Dimension() int

	// Base returns W, the per-digit base (chain length).
	Base() int

	// RandLenFE returns the randomness length in field elements.
	RandLenFE() int

	// MaxTries bounds the randomness-search loop (spec.md §4.7's
	// RandomnessExhausted bound).
	MaxTries() int
}
