package tree

type pruner struct {
	strategy PruneStrategy
	maxDepth int
	minGain  float64
}

// prune collapses subtrees of n bottom-up. It returns n with its pruned
// children, or a leaf copy of n when n itself is collapsed.
//
// Depth pruning collapses every node at depth >= maxDepth. Impurity pruning
// collapses a node whose children are both leaves when its gain weighted by
// its share of the training rows is below minGain.
func prune(n *Node, p pruner, rootSamples int) *Node {
	if n == nil || n.IsLeaf() {
		return n
	}
	n.Left = prune(n.Left, p, rootSamples)
	n.Right = prune(n.Right, p, rootSamples)

	switch p.strategy {
	case PruneDepth:
		if n.Depth >= p.maxDepth {
			return n.collapsed()
		}
	case PruneImpurity:
		if n.Left.IsLeaf() && n.Right.IsLeaf() &&
			n.Gain*float64(n.Samples)/float64(rootSamples) < p.minGain {
			return n.collapsed()
		}
	}
	return n
}
