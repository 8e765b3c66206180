package th

// TweakableHash is the domain-separated hash built on Poseidon2 that
// backs both chain hashing and tree hashing (spec.md §4.3). A single
// implementation serves both uses; callers pick the tweak.
type TweakableHash interface {
	// Apply computes H(P, tweak, payload) -> domain8.
	Apply(params Params, tweak uint64, payload []Domain) Domain
}

// Chain implements the forward hash-chain walk of spec.md §4.5:
// x_0 = start; x_{j+1} = chain_hash(P, epoch, chainIndex, startPos+j+1, x_j).
// Walking 'steps' times from 'start' (already at position startPos)
// yields the value at position startPos+steps.
func Chain(h TweakableHash, params Params, epoch uint64, chainIndex uint8, startPos uint8, steps int, start Domain) Domain {
	current := start
	for j := 0; j < steps; j++ {
		tweak := ChainTweak(epoch, chainIndex, startPos+uint8(j)+1)
		current = h.Apply(params, tweak, []Domain{current})
	}
	return current
}
