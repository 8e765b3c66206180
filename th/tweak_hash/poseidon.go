// Package tweak_hash implements th.TweakableHash using the Poseidon2
// sponge, the construction spec.md §4.3 names for chain and tree
// hashing.
package tweak_hash

import (
	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/poseidon"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// treeWidth backs message-hash, leaf-hash and tree-hash tweaks;
// chainWidth backs chain-hash tweaks (spec.md §4.2: "t=16 used for
// message and leaf/tree hashing... t=24 used by chain hashing").
const (
	treeWidth  = 16
	chainWidth = 24
)

// PoseidonTweakHash implements th.TweakableHash with a sponge over
// Poseidon2, choosing permutation width by the tweak's domain-tag low
// byte: capacity = P (5 FEs) || tweak (2 FEs), rate is the remainder.
type PoseidonTweakHash struct {
	tree  *poseidon.Poseidon2
	chain *poseidon.Poseidon2
}

// NewPoseidonTweakHash creates the KoalaBear/Poseidon2 tweakable hash.
func NewPoseidonTweakHash() *PoseidonTweakHash {
	return &PoseidonTweakHash{
		tree:  poseidon.NewPoseidon2_16(),
		chain: poseidon.NewPoseidon2_24(),
	}
}

// Apply computes the tweakable hash H(P, tweak, payload) -> domain8.
func (p *PoseidonTweakHash) Apply(params th.Params, tweak uint64, payload []th.Domain) th.Domain {
	perm := p.tree
	width := treeWidth
	if tweak&0xff == th.SepChainHash {
		perm = p.chain
		width = chainWidth
	}

	tweakFE := th.DecomposeBaseP(tweak, th.TweakLenFE)

	capacity := make([]field.Element, 0, th.ParameterLenFE+th.TweakLenFE)
	capacity = append(capacity, params[:]...)
	capacity = append(capacity, tweakFE...)

	rate := width - len(capacity)

	data := make([]field.Element, 0, len(payload)*th.HashLenFE)
	for _, d := range payload {
		data = append(data, d[:]...)
	}

	state := make([]field.Element, width)
	copy(state[rate:], capacity)

	for i := 0; i < len(data); i += rate {
		end := i + rate
		if end > len(data) {
			end = len(data)
		}
		for j := 0; j < end-i; j++ {
			state[j].Add(&state[j], &data[i+j])
		}
		perm.Permute(state)
	}

	var out th.Domain
	copy(out[:], state[:th.HashLenFE])
	return out
}
