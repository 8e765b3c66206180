// Package merkle implements the Merkle sub-tree builder of spec.md
// §4.6: layered (start_index, nodes) arrays with even/odd-aligned
// padding, composed two levels deep into the hypertree of §4.7.
package merkle

import (
	"github.com/aerius-labs/koalabear-xmss/internal/rng"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// Layer holds one level of a SubTree: a contiguous run of nodes
// together with the index of its first node.
type Layer struct {
	StartIndex int
	Nodes      []th.Domain
}

// padded returns nodes prepended/appended with a single random domain
// element so the layer's start index is even and its end index is odd
// (spec.md §4.6's padding discipline). Padding is drawn from the main
// RNG, never a separate stream (spec.md §9).
func padded(r *rng.Rng, nodes []th.Domain, startIndex int) Layer {
	endIndex := startIndex + len(nodes) - 1

	needsFront := startIndex&1 == 1
	needsBack := endIndex&1 == 0

	actualStart := startIndex
	out := make([]th.Domain, 0, len(nodes)+2)

	if needsFront {
		actualStart--
		out = append(out, randDomain(r))
	}
	out = append(out, nodes...)
	if needsBack {
		out = append(out, randDomain(r))
	}

	return Layer{StartIndex: actualStart, Nodes: out}
}

func randDomain(r *rng.Rng) th.Domain {
	var d th.Domain
	copy(d[:], r.NextFieldElements(th.HashLenFE))
	return d
}

// SubTree is a sparse Merkle tree spanning a contiguous, possibly
// misaligned range of leaves, between absolute tree levels
// [levelOffset, levelOffset+depth]. Used both as a bottom tree
// (levelOffset=0) and as the top tree (levelOffset=depth_bottom).
type SubTree struct {
	levelOffset int
	depth       int
	layers      []Layer
	params      th.Params
	hash        th.TweakableHash
}

// NewSubTree builds a SubTree over leafNodes starting at absolute
// position startIndex, growing depth layers upward. Parent hashing at
// a fixed layer is independent across positions and may be
// parallelized by a caller that pre-hashes leaves; the padding RNG
// draws themselves, which this function performs, are always
// sequential — layer by layer, front-pad then back-pad — so the
// RNG-consumption schedule of spec.md §5 is observable regardless of
// how leaf hashing upstream was scheduled.
func NewSubTree(r *rng.Rng, hash th.TweakableHash, params th.Params, levelOffset, depth, startIndex int, leafNodes []th.Domain) *SubTree {
	layers := make([]Layer, 0, depth+1)
	layers = append(layers, padded(r, leafNodes, startIndex))

	for level := 0; level < depth; level++ {
		prev := &layers[level]
		parentStart := prev.StartIndex >> 1
		numParents := len(prev.Nodes) / 2
		parents := make([]th.Domain, numParents)

		for i := 0; i < numParents; i++ {
			posInLevel := uint32(parentStart + i)
			tweak := th.TreeTweak(uint8(levelOffset+level+1), posInLevel)
			parents[i] = hash.Apply(params, tweak, []th.Domain{prev.Nodes[2*i], prev.Nodes[2*i+1]})
		}

		layers = append(layers, padded(r, parents, parentStart))
	}

	return &SubTree{
		levelOffset: levelOffset,
		depth:       depth,
		layers:      layers,
		params:      params,
		hash:        hash,
	}
}

// Root returns the first node of the top layer. After padding the top
// layer always holds two nodes, the root and one padding node; the
// first is the root when the leaf range lies within [0, 2^depth). For
// a range in any other tile use NodeAt.
func (t *SubTree) Root() th.Domain {
	top := &t.layers[len(t.layers)-1]
	return top.Nodes[0]
}

// NodeAt returns the top layer's node at absolute position idx. A leaf
// range confined to one tile of width 2^depth never collapses to a
// single top-layer node after depth rounds of padding — the padding
// discipline always leaves width 2, with the real root at the tile's
// own position and a padding node at its sibling. spec.md §4.7 calls this out
// directly: "only the node corresponding to the owning tile position is
// retained ... the rest are discarded." idx must fall within
// [top.StartIndex, top.StartIndex+len(top.Nodes)); callers pass the
// tile index for a bottom tree or 0 for the top tree, both of which the
// padding discipline guarantees stay in range for a leaf slice confined
// to its tile.
func (t *SubTree) NodeAt(idx int) th.Domain {
	top := &t.layers[len(t.layers)-1]
	return top.Nodes[idx-top.StartIndex]
}

// RootPosition returns the absolute index of the first node of the top
// layer, at level (levelOffset+depth). That layer holds the root and
// one padding node, so the root sits at this index or the next one.
func (t *SubTree) RootPosition() int {
	return t.layers[len(t.layers)-1].StartIndex
}

// LevelOffset returns the absolute tree level this SubTree's leaf
// layer sits at.
func (t *SubTree) LevelOffset() int { return t.levelOffset }

// Depth returns the number of layers built above the leaf layer.
func (t *SubTree) Depth() int { return t.depth }

// Layers returns the built layers, leaf layer first, for persistence.
func (t *SubTree) Layers() []Layer { return t.layers }

// NewSubTreeFromLayers reconstructs a SubTree from previously
// persisted layers, without re-running the RNG-consuming build.
func NewSubTreeFromLayers(hash th.TweakableHash, params th.Params, levelOffset, depth int, layers []Layer) *SubTree {
	return &SubTree{
		levelOffset: levelOffset,
		depth:       depth,
		layers:      layers,
		params:      params,
		hash:        hash,
	}
}

// CoPath returns the sibling nodes from the leaf at absolute index
// leafIndex up to (not including) the root, one per layer.
func (t *SubTree) CoPath(leafIndex int) []th.Domain {
	path := make([]th.Domain, 0, t.depth)
	current := leafIndex
	for level := 0; level < t.depth; level++ {
		layer := &t.layers[level]
		rel := current - layer.StartIndex
		sibling := rel ^ 1
		path = append(path, layer.Nodes[sibling])
		current >>= 1
	}
	return path
}

// VerifyCoPath recomputes the root implied by starting at leaf with
// absolute index leafIndex, walking up through coPath (length depth),
// with tweak levels starting at levelOffset+1.
func VerifyCoPath(hash th.TweakableHash, params th.Params, levelOffset int, leafIndex int, leaf th.Domain, coPath []th.Domain) th.Domain {
	current := leaf
	index := leafIndex
	for level := 0; level < len(coPath); level++ {
		var children [2]th.Domain
		if index&1 == 0 {
			children = [2]th.Domain{current, coPath[level]}
		} else {
			children = [2]th.Domain{coPath[level], current}
		}
		parentIndex := index >> 1
		tweak := th.TreeTweak(uint8(levelOffset+level+1), uint32(parentIndex))
		current = hash.Apply(params, tweak, children[:])
		index = parentIndex
	}
	return current
}
