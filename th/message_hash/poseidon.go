// Package message_hash implements message_hash(P, epoch, rho, msg)
// (spec.md §4.3): a Poseidon2 sponge squeeze followed by a base-W
// digit decomposition that feeds the incomparable encoding.
package message_hash

import (
	"encoding/binary"
	"math/big"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/poseidon"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// spongeWidth follows the t16/t24 split from spec.md §4.2: message
// hash is grouped with leaf/tree hashing (t16), not chain hashing
// (t24).
const spongeWidth = 16

// PoseidonMessageHash implements the Poseidon2-backed message hash.
// It is parameterized once per lifetime preset by (randLenFE,
// msgHashLenFE, numChains, base): the closed set of presets in
// xmss/lifetime.go is the only place these get chosen.
type PoseidonMessageHash struct {
	randLenFE    int
	msgHashLenFE int
	numChains    int
	base         int
}

// NewPoseidonMessageHash creates a message hash instance for one
// lifetime preset's Winternitz parameters.
func NewPoseidonMessageHash(randLenFE, msgHashLenFE, numChains, base int) *PoseidonMessageHash {
	return &PoseidonMessageHash{
		randLenFE:    randLenFE,
		msgHashLenFE: msgHashLenFE,
		numChains:    numChains,
		base:         base,
	}
}

// RandLenFE returns the randomness length in field elements.
func (h *PoseidonMessageHash) RandLenFE() int { return h.randLenFE }

// Dimension returns the number of message digit chunks.
func (h *PoseidonMessageHash) Dimension() int { return h.numChains }

// Base returns W, the chain length / digit base.
func (h *PoseidonMessageHash) Base() int { return h.base }

// messageToFieldElements packs the fixed 32-byte message into 8 field
// elements, 4 little-endian bytes per lane, reduced mod p.
func messageToFieldElements(msg [32]byte) []field.Element {
	out := make([]field.Element, 8)
	for i := 0; i < 8; i++ {
		word := binary.LittleEndian.Uint32(msg[i*4 : i*4+4])
		out[i] = field.NewElement(uint64(word) % field.P)
	}
	return out
}

// Digest computes the numChains base-W digits of message_hash(P,
// epoch, rho, msg). Digit extraction over a Poseidon2 sponge output
// can never fail, so unlike the published "valid" flag this always
// succeeds — see SPEC_FULL.md §4 for why the closed-set lifetime
// presets make that safe.
func (h *PoseidonMessageHash) Digest(params th.Params, msg [32]byte, rho []field.Element, epoch uint64) []uint32 {
	tweakFE := th.DecomposeBaseP(th.MessageTweak(epoch), th.TweakLenFE)

	capacity := make([]field.Element, 0, th.ParameterLenFE+th.TweakLenFE)
	capacity = append(capacity, params[:]...)
	capacity = append(capacity, tweakFE...)

	input := make([]field.Element, 0, len(rho)+8)
	input = append(input, rho...)
	input = append(input, messageToFieldElements(msg)...)

	rate := spongeWidth - len(capacity)
	state := make([]field.Element, spongeWidth)
	copy(state[rate:], capacity)

	perm := poseidon.NewPoseidon2_16()
	for i := 0; i < len(input); i += rate {
		end := i + rate
		if end > len(input) {
			end = len(input)
		}
		for j := 0; j < end-i; j++ {
			state[j].Add(&state[j], &input[i+j])
		}
		perm.Permute(state)
	}

	// Squeeze msgHashLenFE elements, possibly across further
	// permutation calls if the caller asked for more than fit in one
	// rate block.
	squeezed := make([]field.Element, 0, h.msgHashLenFE)
	for len(squeezed) < h.msgHashLenFE {
		take := h.msgHashLenFE - len(squeezed)
		if take > rate {
			take = rate
		}
		squeezed = append(squeezed, state[:take]...)
		if len(squeezed) < h.msgHashLenFE {
			perm.Permute(state)
		}
	}

	// Combine the squeezed field elements into one big integer and
	// peel off base-W digits, matching how the teacher's
	// decodeToChunks folds Poseidon output into hypercube digits.
	acc := new(big.Int)
	p := new(big.Int).SetUint64(field.P)
	for _, fe := range squeezed {
		acc.Mul(acc, p)
		acc.Add(acc, field.ToBigInt(fe))
	}

	base := big.NewInt(int64(h.base))
	digits := make([]uint32, h.numChains)
	for i := 0; i < h.numChains; i++ {
		d := new(big.Int).Mod(acc, base)
		digits[i] = uint32(d.Int64())
		acc.Div(acc, base)
	}
	return digits
}
