package quantize

import (
	"github.com/kieranjs/hicolorgif/pkg/colorspace"
	"github.com/kieranjs/hicolorgif/pkg/palette"
)

// maxOctreeDepth is the maximum insertion depth: eight levels 0..7 indexed
// by successive RGB bits.
const maxOctreeDepth = 7

// octreeNode is an octree node: eight child slots keyed by bit d of
// (R, G, B) at depth d, with per-node accumulators. A node is a leaf iff it
// has no children. Every non-leaf node's sums equal the sum of its leaves'.
type octreeNode struct {
	children [8]*octreeNode
	parent   *octreeNode
	slot     int // this node's index in parent.children
	level    int
	leafPos  int // this node's index in levels[level] while it is a leaf, -1 otherwise

	rSum, gSum, bSum uint64
	referencesCount  uint64
	pixelCount       uint64
}

func (n *octreeNode) isLeaf() bool {
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

func octreeIndex(c colorspace.Color, level int) int {
	shift := 7 - level
	idx := 0
	if c.R&(1<<shift) != 0 {
		idx |= 4
	}
	if c.G&(1<<shift) != 0 {
		idx |= 2
	}
	if c.B&(1<<shift) != 0 {
		idx |= 1
	}
	return idx
}

// addLeaf registers n as a leaf candidate at its level.
func addLeaf(levels [][]*octreeNode, n *octreeNode) {
	levels[n.level] = append(levels[n.level], n)
	n.leafPos = len(levels[n.level]) - 1
}

// removeLeaf drops n from its level's leaf list via swap-removal, fixing up
// the leafPos of whichever node gets moved into n's old slot.
func removeLeaf(levels [][]*octreeNode, n *octreeNode) {
	bucket := levels[n.level]
	last := len(bucket) - 1
	bucket[n.leafPos] = bucket[last]
	bucket[n.leafPos].leafPos = n.leafPos
	levels[n.level] = bucket[:last]
	n.leafPos = -1
}

func (n *octreeNode) insert(c colorspace.Color, count uint64, levels [][]*octreeNode) {
	n.rSum += uint64(c.R) * count
	n.gSum += uint64(c.G) * count
	n.bSum += uint64(c.B) * count
	n.pixelCount += count

	if n.level >= maxOctreeDepth {
		n.referencesCount += count
		return
	}

	idx := octreeIndex(c, n.level)
	child := n.children[idx]
	if child == nil {
		if n.isLeaf() && n.leafPos >= 0 {
			// n was a leaf candidate until now; it is about to gain a
			// child and stop being one.
			removeLeaf(levels, n)
		}
		child = &octreeNode{level: n.level + 1, parent: n, slot: idx, leafPos: -1}
		n.children[idx] = child
		addLeaf(levels, child)
	}
	child.insert(c, count, levels)
}

// mergeUp removes leaf v from its parent, folding v's weight into the
// parent. If that empties the parent's children it becomes a new leaf
// candidate at its own level, carrying the combined weight of everything
// merged into it so far. Reports whether the total leaf count dropped.
func mergeUp(levels [][]*octreeNode, v *octreeNode) bool {
	removeLeaf(levels, v)

	p := v.parent
	p.children[v.slot] = nil
	p.referencesCount += v.referencesCount

	if p.isLeaf() {
		addLeaf(levels, p)
		return false // one leaf removed, one gained: net unchanged
	}
	return true
}

func (n *octreeNode) mean() colorspace.Color {
	if n.pixelCount == 0 {
		return colorspace.Transparent
	}
	return colorspace.NewRGB(uint8(n.rSum/n.pixelCount), uint8(n.gSum/n.pixelCount), uint8(n.bSum/n.pixelCount))
}

func (n *octreeNode) collectLeaves(out *[]*octreeNode) {
	if n.isLeaf() {
		if n.pixelCount > 0 {
			*out = append(*out, n)
		}
		return
	}
	for _, c := range n.children {
		if c != nil {
			c.collectLeaves(out)
		}
	}
}

// Octree builds an 8-way trie over the color bits and reduces it to the
// target size by repeatedly merging the least-referenced leaves into their
// parents, starting from the deepest level.
type Octree struct{}

func (Octree) Name() string { return "Octree" }

func (Octree) Reduce(target int, h *Histogram) (palette.Palette, error) {
	return Base(target, h, octreeAlgorithm)
}

func octreeAlgorithm(target int, colors []ColorCount) []colorspace.Color {
	root := &octreeNode{level: 0, leafPos: -1}
	levels := make([][]*octreeNode, maxOctreeDepth+1)

	for _, cc := range colors {
		root.insert(cc.Color, uint64(cc.Count), levels)
	}

	leafCount := 0
	for _, bucket := range levels {
		leafCount += len(bucket)
	}

	leafTarget := target - 2
	if leafTarget < 1 {
		leafTarget = 1
	}

	for leafCount > leafTarget {
		level := maxOctreeDepth
		for level >= 1 && len(levels[level]) == 0 {
			level--
		}
		if level < 1 {
			break
		}

		bucket := levels[level]
		minIdx := 0
		for i, n := range bucket {
			if n.referencesCount < bucket[minIdx].referencesCount {
				minIdx = i
			}
		}
		victim := bucket[minIdx]

		if mergeUp(levels, victim) {
			leafCount--
		}
	}

	var leaves []*octreeNode
	root.collectLeaves(&leaves)

	out := make([]colorspace.Color, 0, target)
	out = append(out, colorspace.NewRGB(0, 0, 0), colorspace.NewRGB(255, 255, 255))
	for _, leaf := range leaves {
		out = append(out, leaf.mean())
	}
	return out
}
