// Package winternitz implements the Winternitz incomparable encoding
// (spec.md §4.4): num_chains base-W message digits plus a base-W
// checksum sized so that for any two distinct codewords, neither
// dominates the other digit-wise.
package winternitz

import (
	"math"

	"github.com/aerius-labs/koalabear-xmss/encoding"
	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// WinternitzEncoding implements encoding.IncomparableEncoding over a
// message hash that emits base-W message digits; digit extraction
// over the Poseidon2 sponge can never fail, so this encoding never
// needs to resample randomness (MaxTries is 1).
type WinternitzEncoding struct {
	messageHash       encoding.MessageHasher
	numChunksChecksum int
	numChunksMessage  int
}

// NewWinternitzEncoding creates a Winternitz encoding. numChunksChecksum
// must equal ComputeChecksumLength(messageHash.Dimension(), messageHash.Base()).
func NewWinternitzEncoding(messageHash encoding.MessageHasher, numChunksChecksum int) *WinternitzEncoding {
	numChunksMessage := messageHash.Dimension()
	expected := ComputeChecksumLength(numChunksMessage, messageHash.Base())
	if numChunksChecksum != expected {
		panic("incorrect number of checksum chunks")
	}
	return &WinternitzEncoding{
		messageHash:       messageHash,
		numChunksChecksum: numChunksChecksum,
		numChunksMessage:  numChunksMessage,
	}
}

// Encode builds the codeword: message digits followed by checksum
// digits. Σ message digits + checksum value == n0·(W−1) by
// construction, where n0 is the message digit count and the checksum
// value is read back from its little-endian base-W digits (spec.md §8
// property 7).
func (w *WinternitzEncoding) Encode(params th.Params, msg [32]byte, rho []field.Element, epoch uint64) (encoding.Codeword, error) {
	messageDigits := w.messageHash.Digest(params, msg, rho, epoch)

	base := uint64(w.Base())
	checksum := uint64(0)
	for _, d := range messageDigits {
		checksum += base - 1 - uint64(d)
	}

	checksumDigits := make([]uint32, w.numChunksChecksum)
	for i := 0; i < w.numChunksChecksum; i++ {
		checksumDigits[i] = uint32(checksum % base)
		checksum /= base
	}

	codeword := make(encoding.Codeword, 0, w.Dimension())
	codeword = append(codeword, messageDigits...)
	codeword = append(codeword, checksumDigits...)
	return codeword, nil
}

// Dimension returns num_chains = n0 + n1.
func (w *WinternitzEncoding) Dimension() int {
	return w.numChunksMessage + w.numChunksChecksum
}

// Base returns W.
func (w *WinternitzEncoding) Base() int { return w.messageHash.Base() }

// RandLenFE returns the randomness length in field elements.
func (w *WinternitzEncoding) RandLenFE() int { return w.messageHash.RandLenFE() }

// MaxTries returns 1: Winternitz digit extraction always succeeds.
func (w *WinternitzEncoding) MaxTries() int { return 1 }

// ComputeChecksumLength computes n1 = floor(log_W(n0*(W-1))) + 1.
func ComputeChecksumLength(numChunksMessage int, base int) int {
	maxChecksum := numChunksMessage * (base - 1)
	if maxChecksum == 0 {
		return 1
	}
	return int(math.Floor(math.Log(float64(maxChecksum))/math.Log(float64(base)))) + 1
}
