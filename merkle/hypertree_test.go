package merkle

import (
	"testing"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/internal/rng"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// buildAndVerifyAll builds a HyperTree over a contiguous active range
// and checks every leaf's path reconstructs the tree's root.
func buildAndVerifyAll(t *testing.T, depthBottom, depthTop int, activation uint32, numLeaves int, seedByte byte) *HyperTree {
	t.Helper()
	h := sumTweakHash{}
	var params th.Params

	leaves := make([]th.Domain, numLeaves)
	for i := range leaves {
		leaves[i] = leafDomain(i)
	}

	r := rng.NewFromSeed(seed32(seedByte))
	tree := BuildHyperTree(r, h, params, depthBottom, depthTop, activation, leaves)
	root := tree.Root()

	for i, leaf := range leaves {
		epoch := activation + uint32(i)
		path := tree.Path(epoch)
		if len(path) != depthBottom+depthTop {
			t.Fatalf("epoch %d: path length %d, want %d", epoch, len(path), depthBottom+depthTop)
		}
		if !VerifyHyperPath(h, params, root, epoch, leaf, path, depthBottom, depthTop) {
			t.Fatalf("epoch %d: path did not verify against the hyper-tree root", epoch)
		}
	}
	return tree
}

func TestHyperTreeSingleTileFullyActive(t *testing.T) {
	// One whole bottom tile (depthBottom=3, 8 leaves), activation
	// exactly tile-aligned at 0.
	buildAndVerifyAll(t, 3, 2, 0, 8, 1)
}

func TestHyperTreeSpansMultipleTiles(t *testing.T) {
	// depthBottom=3 (8 leaves/tile), 20 active leaves starting at 4
	// (epochs 4..23): spans tiles 0 (partial), 1 (full), 2 (full), exercising the
	// sparse top-tree padding over a non-power-of-two run of tiles.
	buildAndVerifyAll(t, 3, 3, 4, 20, 2)
}

func TestHyperTreeActivationAtTileBoundary(t *testing.T) {
	// Activation epoch exactly at the start of its tile: leaves_per_tile=8,
	// activation=8 lands at tile 1's first leaf.
	buildAndVerifyAll(t, 3, 3, 8, 8, 3)
}

func TestHyperTreeActivationEndsAtTileBoundary(t *testing.T) {
	// Active range ends exactly on the last leaf of its tile.
	buildAndVerifyAll(t, 3, 3, 3, 5, 4) // epochs 3..7, tile 0's last leaf is 7
}

func TestHyperTreeSingleActiveEpoch(t *testing.T) {
	// num_active_epochs=1: smallest possible active range.
	buildAndVerifyAll(t, 3, 3, 5, 1, 5)
}

func TestHyperTreeDeterministicGivenSameSeed(t *testing.T) {
	h := sumTweakHash{}
	var params th.Params
	leaves := make([]th.Domain, 6)
	for i := range leaves {
		leaves[i] = leafDomain(i)
	}

	r1 := rng.NewFromSeed(seed32(9))
	t1 := BuildHyperTree(r1, h, params, 3, 3, 2, leaves)

	r2 := rng.NewFromSeed(seed32(9))
	t2 := BuildHyperTree(r2, h, params, 3, 3, 2, leaves)

	if t1.Root() != t2.Root() {
		t.Fatalf("identical (params, leaves, RNG state) must produce identical hyper-tree roots")
	}
}

func TestHyperTreeRejectsWrongRoot(t *testing.T) {
	h := sumTweakHash{}
	var params th.Params
	tree := buildAndVerifyAll(t, 3, 3, 4, 20, 6)

	var wrongRoot th.Domain
	for i := range wrongRoot {
		wrongRoot[i] = tree.Root()[i]
	}
	wrongRoot[0] = field.NewElement(field.ToBigInt(wrongRoot[0]).Uint64() + 1)

	path := tree.Path(4)
	if VerifyHyperPath(h, params, wrongRoot, 4, leafDomain(0), path, 3, 3) {
		t.Fatalf("VerifyHyperPath must reject a tampered root")
	}
}
