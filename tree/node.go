package tree

import "github.com/YuminosukeSato/cartree/core/model"

// NoFeature marks a leaf node.
const NoFeature = -1

// Node is a binary decision tree node. A node is a subtree: the root of a
// fitted DecisionTree is a Node.
//
// Rows whose value at Feature is <= Threshold go Left, all others go Right.
// Leaves have Feature == NoFeature and no children.
type Node struct {
	Feature     int         `json:"feature"`
	FeatureName string      `json:"feature_name,omitempty"`
	Threshold   float64     `json:"threshold,omitempty"`
	Gain        float64     `json:"gain,omitempty"`
	Label       model.Label `json:"label"`
	Samples     int         `json:"samples"`
	Depth       int         `json:"depth"`
	Left        *Node       `json:"left,omitempty"`
	Right       *Node       `json:"right,omitempty"`
}

func newLeaf(depth int) *Node {
	return &Node{Feature: NoFeature, Depth: depth}
}

// IsLeaf reports whether n has no split.
func (n *Node) IsLeaf() bool {
	return n.Feature == NoFeature
}

// collapsed returns a leaf copy of n. Label, Samples and Depth are kept.
func (n *Node) collapsed() *Node {
	return &Node{Feature: NoFeature, Label: n.Label, Samples: n.Samples, Depth: n.Depth}
}

// Walk visits n and its descendants in pre-order. Children of a node are
// skipped when fn returns false for it.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) || cur.IsLeaf() {
			continue
		}
		stack = append(stack, cur.Right, cur.Left)
	}
}

// Depth of the deepest leaf below n, relative to n.
func (n *Node) height() int {
	h := 0
	n.Walk(func(c *Node) bool {
		if d := c.Depth - n.Depth; d > h {
			h = d
		}
		return true
	})
	return h
}

func (n *Node) countLeaves() int {
	leaves := 0
	n.Walk(func(c *Node) bool {
		if c.IsLeaf() {
			leaves++
		}
		return true
	})
	return leaves
}

func (n *Node) countNodes() int {
	nodes := 0
	n.Walk(func(*Node) bool {
		nodes++
		return true
	})
	return nodes
}

// maxFeature returns the largest Feature used by any split below n, or
// NoFeature if n is a leaf.
func (n *Node) maxFeature() int {
	max := NoFeature
	n.Walk(func(c *Node) bool {
		if c.Feature > max {
			max = c.Feature
		}
		return true
	})
	return max
}
