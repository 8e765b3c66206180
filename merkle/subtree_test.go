package merkle

import (
	"testing"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/internal/rng"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// sumTweakHash is a minimal th.TweakableHash stand-in for tests that
// don't need the real Poseidon2 sponge, matching the teacher's own
// use of lightweight mocks for tree-shape tests.
type sumTweakHash struct{}

func (sumTweakHash) Apply(params th.Params, tweak uint64, payload []th.Domain) th.Domain {
	var out th.Domain
	tw := field.NewElement(tweak % field.P)
	for i := range out {
		out[i] = tw
		for _, d := range payload {
			out[i].Add(&out[i], &d[i])
		}
	}
	return out
}

func leafDomain(i int) th.Domain {
	var d th.Domain
	for j := range d {
		d[j] = field.NewElement(uint64(i*100 + j))
	}
	return d
}

func seed32(b byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b
	}
	return s
}

func TestSubTreeAlignedBuildAndCoPath(t *testing.T) {
	h := sumTweakHash{}
	var params th.Params

	leaves := make([]th.Domain, 8)
	for i := range leaves {
		leaves[i] = leafDomain(i)
	}

	r := rng.NewFromSeed(seed32(1))
	tree := NewSubTree(r, h, params, 0, 3, 0, leaves)

	for i := range leaves {
		path := tree.CoPath(i)
		if len(path) != 3 {
			t.Fatalf("leaf %d: path length %d, want 3", i, len(path))
		}
		got := VerifyCoPath(h, params, 0, i, leaves[i], path)
		if got != tree.Root() {
			t.Fatalf("leaf %d: recomputed root does not match tree root", i)
		}
	}
}

func TestSubTreeMisalignedRangePads(t *testing.T) {
	h := sumTweakHash{}
	var params th.Params

	// 3 leaves starting at an odd index, all within tile 0 of width 8:
	// needs front and back padding, and does not necessarily collapse
	// to a single top-layer node (see NodeAt's doc comment).
	leaves := []th.Domain{leafDomain(0), leafDomain(1), leafDomain(2)}
	r := rng.NewFromSeed(seed32(2))
	tree := NewSubTree(r, h, params, 0, 3, 3, leaves)
	root := tree.NodeAt(0)

	for i, leaf := range leaves {
		absolute := 3 + i
		path := tree.CoPath(absolute)
		got := VerifyCoPath(h, params, 0, absolute, leaf, path)
		if got != root {
			t.Fatalf("leaf at absolute index %d did not verify against the root", absolute)
		}
	}
}

func TestSubTreeDeterministicGivenSameRNGState(t *testing.T) {
	h := sumTweakHash{}
	var params th.Params
	leaves := []th.Domain{leafDomain(0), leafDomain(1), leafDomain(2)}

	r1 := rng.NewFromSeed(seed32(7))
	t1 := NewSubTree(r1, h, params, 0, 3, 1, leaves)

	r2 := rng.NewFromSeed(seed32(7))
	t2 := NewSubTree(r2, h, params, 0, 3, 1, leaves)

	if t1.NodeAt(0) != t2.NodeAt(0) {
		t.Fatalf("identical (params, leaves, RNG state) must produce identical roots")
	}
}
