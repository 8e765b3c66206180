package xmss

import (
	"fmt"
	"strings"

	"github.com/aerius-labs/koalabear-xmss/encoding/winternitz"
	"github.com/aerius-labs/koalabear-xmss/th/message_hash"
)

// Lifetime parameters shared by a Winternitz instantiation: the
// Winternitz base and digit/checksum dimensions are fixed across all
// three presets (spec.md §3 "dimension, W ... are parameters of the
// lifetime preset"; the closed set chosen here uses one Winternitz
// shape for all three, varying only L).
const (
	winternitzBase            = 16
	winternitzNumChunksMsg    = 62
	winternitzRandLenFE       = 4
	winternitzMsgHashLenFE    = 8
)

// Lifetime is one of the closed-set presets (spec.md §3): it fixes L,
// the even split between top and bottom tree depth, and the
// Winternitz shape derived from winternitzBase/winternitzNumChunksMsg.
type Lifetime struct {
	Tag                 string
	L                   int
	DepthTop            int
	DepthBottom         int
	NumChains           int
	Base                int
	RandLenFE           int
	MsgHashLenFE        int
	LeavesPerBottomTree int
}

func newLifetime(tag string, l int) Lifetime {
	numChunksChecksum := winternitz.ComputeChecksumLength(winternitzNumChunksMsg, winternitzBase)
	return Lifetime{
		Tag:                 tag,
		L:                   l,
		DepthTop:            l / 2,
		DepthBottom:         l / 2,
		NumChains:           winternitzNumChunksMsg + numChunksChecksum,
		Base:                winternitzBase,
		RandLenFE:           winternitzRandLenFE,
		MsgHashLenFE:        winternitzMsgHashLenFE,
		LeavesPerBottomTree: 1 << (l / 2),
	}
}

// Lifetime2_8 is the 2^8-epoch preset.
func Lifetime2_8() Lifetime { return newLifetime("lifetime_2_8", 8) }

// Lifetime2_18 is the 2^18-epoch preset.
func Lifetime2_18() Lifetime { return newLifetime("lifetime_2_18", 18) }

// Lifetime2_32 is the 2^32-epoch preset.
func Lifetime2_32() Lifetime { return newLifetime("lifetime_2_32", 32) }

// ParseLifetimeTag resolves a lifetime tag string, case-insensitively,
// accepting the aliases spec.md §6 lists.
func ParseLifetimeTag(tag string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "2^8", "256", "lifetime_2_8":
		return Lifetime2_8(), nil
	case "2^18", "262144", "lifetime_2_18":
		return Lifetime2_18(), nil
	case "2^32", "4294967296", "lifetime_2_32":
		return Lifetime2_32(), nil
	default:
		return Lifetime{}, fmt.Errorf("%w: %q", ErrInvalidLifetime, tag)
	}
}

// newMessageHash builds the Poseidon2 message hash for this lifetime's
// Winternitz shape.
func (lt Lifetime) newMessageHash() *message_hash.PoseidonMessageHash {
	return message_hash.NewPoseidonMessageHash(lt.RandLenFE, lt.MsgHashLenFE, winternitzNumChunksMsg, lt.Base)
}
