// Package poseidon implements the Poseidon2 permutation over KoalaBear
// using gnark-crypto.
package poseidon

import (
	"github.com/consensys/gnark-crypto/field/koalabear"
	"github.com/consensys/gnark-crypto/field/koalabear/poseidon2"
)

// Element is a KoalaBear field element.
type Element = koalabear.Element

// Poseidon2 wraps the gnark-crypto Poseidon2 permutation for a fixed
// width.
type Poseidon2 struct {
	perm  *poseidon2.Permutation
	width int
}

// NewPoseidon2_16 creates the width-16 permutation used for message,
// leaf and tree hashing: 8 external rounds, 20 internal rounds, the
// Plonky3-compatible KoalaBear parameterization.
func NewPoseidon2_16() *Poseidon2 {
	perm := poseidon2.NewPermutation(16, 8, 20)
	return &Poseidon2{
		perm:  perm,
		width: 16,
	}
}

// NewPoseidon2_24 creates the width-24 permutation used for chain
// hashing: 8 external rounds, 21 internal rounds.
func NewPoseidon2_24() *Poseidon2 {
	perm := poseidon2.NewPermutation(24, 8, 21)
	return &Poseidon2{
		perm:  perm,
		width: 24,
	}
}

// Permute applies the Poseidon2 permutation in place.
func (p *Poseidon2) Permute(state []Element) {
	if len(state) != p.width {
		panic("state size mismatch")
	}
	if err := p.perm.Permutation(state); err != nil {
		panic("permutation failed: " + err.Error())
	}
}

// PermuteNew applies the Poseidon2 permutation and returns a new state,
// leaving the input untouched.
func (p *Poseidon2) PermuteNew(state []Element) []Element {
	if len(state) != p.width {
		panic("state size mismatch")
	}
	newState := make([]Element, len(state))
	copy(newState, state)
	if err := p.perm.Permutation(newState); err != nil {
		panic("permutation failed: " + err.Error())
	}
	return newState
}

// Width returns the permutation width.
func (p *Poseidon2) Width() int {
	return p.width
}
