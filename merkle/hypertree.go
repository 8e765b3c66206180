package merkle

import (
	"github.com/aerius-labs/koalabear-xmss/internal/rng"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// HyperTree is the two-level hyper-tree of spec.md §4.6/§4.7: one
// bottom SubTree per active tile of 2^depthBottom epochs, joined by a
// single top SubTree built over the bottom roots. Only tiles that
// overlap [activationEpoch, activationEpoch+numActiveEpochs) are ever
// built; the top tree's own padding discipline fills the gaps this
// leaves at its leaf layer, exactly as any SubTree layer pads a
// misaligned range.
type HyperTree struct {
	depthBottom int
	depthTop    int
	firstTile   int
	bottoms     []*SubTree // bottoms[i] covers tile firstTile+i
	top         *SubTree
}

// BuildHyperTree builds a HyperTree from leafNodes, a contiguous run
// of leaf nodes (each the tree hash of one epoch's chain ends) for
// epochs [activationEpoch, activationEpoch+len(leafNodes)).
// RNG padding draws happen in tile order, then across the top tree,
// matching spec.md §5's consumption schedule.
func BuildHyperTree(r *rng.Rng, hash th.TweakableHash, params th.Params, depthBottom, depthTop int, activationEpoch uint32, leafNodes []th.Domain) *HyperTree {
	leavesPerTile := 1 << depthBottom
	activation := int(activationEpoch)
	numActive := len(leafNodes)

	firstTile := activation / leavesPerTile
	lastTile := (activation + numActive - 1) / leavesPerTile

	bottoms := make([]*SubTree, 0, lastTile-firstTile+1)
	for tile := firstTile; tile <= lastTile; tile++ {
		tileStart := tile * leavesPerTile
		tileEnd := tileStart + leavesPerTile - 1

		sliceStart := tileStart
		if sliceStart < activation {
			sliceStart = activation
		}
		sliceEnd := tileEnd
		if sliceEnd > activation+numActive-1 {
			sliceEnd = activation + numActive - 1
		}

		leaves := leafNodes[sliceStart-activation : sliceEnd-activation+1]
		bottoms = append(bottoms, NewSubTree(r, hash, params, 0, depthBottom, sliceStart, leaves))
	}

	topLeaves := make([]th.Domain, len(bottoms))
	for i, b := range bottoms {
		topLeaves[i] = b.NodeAt(firstTile + i)
	}
	top := NewSubTree(r, hash, params, depthBottom, depthTop, firstTile, topLeaves)

	return &HyperTree{
		depthBottom: depthBottom,
		depthTop:    depthTop,
		firstTile:   firstTile,
		bottoms:     bottoms,
		top:         top,
	}
}

// Root returns the hyper-tree root R (spec.md §3's public key root).
// The top tree's leaf range is [firstTile, lastTile], a subrange of
// [0, 2^depthTop) anchored at tile 0 only when firstTile is 0; the real
// root always lives at absolute position 0 regardless, since every
// active tile range is itself confined within the single top-level
// tile covering the whole lifetime.
func (t *HyperTree) Root() th.Domain { return t.top.NodeAt(0) }

// DepthBottom, DepthTop, FirstTile, Bottoms and Top expose the
// hyper-tree's structure for persistence.
func (t *HyperTree) DepthBottom() int    { return t.depthBottom }
func (t *HyperTree) DepthTop() int       { return t.depthTop }
func (t *HyperTree) FirstTile() int      { return t.firstTile }
func (t *HyperTree) Bottoms() []*SubTree { return t.bottoms }
func (t *HyperTree) Top() *SubTree       { return t.top }

// NewHyperTreeFromParts reconstructs a HyperTree from previously
// persisted bottom and top SubTrees.
func NewHyperTreeFromParts(depthBottom, depthTop, firstTile int, bottoms []*SubTree, top *SubTree) *HyperTree {
	return &HyperTree{
		depthBottom: depthBottom,
		depthTop:    depthTop,
		firstTile:   firstTile,
		bottoms:     bottoms,
		top:         top,
	}
}

// Path returns the full authentication path for epoch: depthBottom
// sibling nodes within its bottom tree followed by depthTop sibling
// nodes within the top tree (spec.md §4.7 step 4c).
func (t *HyperTree) Path(epoch uint32) []th.Domain {
	leavesPerTile := 1 << t.depthBottom
	tile := int(epoch) / leavesPerTile
	bottom := t.bottoms[tile-t.firstTile]

	path := make([]th.Domain, 0, t.depthBottom+t.depthTop)
	path = append(path, bottom.CoPath(int(epoch))...)
	path = append(path, t.top.CoPath(tile)...)
	return path
}

// VerifyHyperPath recomputes the hyper-tree root from a leaf, its
// epoch, and its authentication path, and reports whether it matches
// root (spec.md §4.8 verify step 4).
func VerifyHyperPath(hash th.TweakableHash, params th.Params, root th.Domain, epoch uint32, leaf th.Domain, path []th.Domain, depthBottom, depthTop int) bool {
	if len(path) != depthBottom+depthTop {
		return false
	}

	leavesPerTile := 1 << depthBottom
	tile := int(epoch) / leavesPerTile

	bottomRoot := VerifyCoPath(hash, params, 0, int(epoch), leaf, path[:depthBottom])
	computedRoot := VerifyCoPath(hash, params, depthBottom, tile, bottomRoot, path[depthBottom:])

	return computedRoot == root
}
