package tree

import (
	"testing"

	"github.com/YuminosukeSato/cartree/core/model"
	"gonum.org/v1/gonum/mat"
)

// pruneData grows to root(5.5) -> right(9.5) with weighted gains 0.32 and 0.16.
func pruneData() (*mat.Dense, model.Target) {
	X := mat.NewDense(10, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	y := model.NewClassTarget([]string{"A", "A", "A", "A", "A", "B", "B", "B", "B", "A"})
	return X, y
}

func TestPrune_Impurity(t *testing.T) {
	tests := []struct {
		minGain float64
		leaves  int
		depth   int
	}{
		{0.05, 3, 2},
		{0.2, 2, 1},
		{0.5, 1, 0},
	}

	X, y := pruneData()
	for _, tt := range tests {
		dt := NewDecisionTree(
			WithPruneStrategy("impurity"),
			WithMinGain(tt.minGain),
			WithLogger(quietLogger()),
		)
		if err := dt.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		if dt.GetNLeaves() != tt.leaves || dt.GetDepth() != tt.depth {
			t.Errorf("min_gain %v: got %d leaves at depth %d, want %d at %d\n%s",
				tt.minGain, dt.GetNLeaves(), dt.GetDepth(), tt.leaves, tt.depth, dt)
		}
	}
}

func TestPrune_Depth(t *testing.T) {
	X, y := pruneData()
	dt := NewDecisionTree(WithMaxDepth(1), WithLogger(quietLogger()))
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	root := dt.Root()
	if root.IsLeaf() || root.Threshold != 5.5 {
		t.Fatalf("root should split at 5.5, got %s", dt)
	}
	right := root.Right
	if !right.IsLeaf() {
		t.Fatal("node at depth 1 should be collapsed")
	}
	// Collapsed nodes keep their label and counts but lose the split.
	if right.Label.Class != "B" || right.Samples != 5 || right.Depth != 1 {
		t.Errorf("unexpected collapsed node %+v", right)
	}
	if right.FeatureName != "" || right.Threshold != 0 || right.Gain != 0 || right.Left != nil || right.Right != nil {
		t.Errorf("collapsed node still carries split data: %+v", right)
	}
}

func TestPrune_OnlyCollapsesBottomSplits(t *testing.T) {
	// Internal node with non-leaf children and a tiny gain must survive.
	leaf := func(d, n int) *Node { return &Node{Feature: NoFeature, Depth: d, Samples: n} }
	root := &Node{
		Feature: 0, Gain: 0.001, Samples: 4, Depth: 0,
		Left: &Node{
			Feature: 0, Gain: 0.9, Samples: 2, Depth: 1,
			Left: leaf(2, 1), Right: leaf(2, 1),
		},
		Right: leaf(1, 2),
	}

	got := prune(root, pruner{strategy: PruneImpurity, minGain: 0.1}, 4)
	if got.IsLeaf() {
		t.Error("root with a non-leaf child should not be collapsed")
	}
	if got.Left.IsLeaf() {
		t.Error("high-gain bottom split should be kept")
	}

	if prune(leaf(0, 1), pruner{strategy: PruneDepth}, 1).IsLeaf() != true {
		t.Error("pruning a leaf returns the leaf")
	}
}

func TestPrune_CollapsedNodeIsACopy(t *testing.T) {
	label := model.ClassLabel("B", 1)
	split := &Node{
		Feature: 0, FeatureName: "x", Threshold: 2.5, Gain: 0.01, Label: label, Samples: 4, Depth: 1,
		Left:  &Node{Feature: NoFeature, Depth: 2, Samples: 2},
		Right: &Node{Feature: NoFeature, Depth: 2, Samples: 2},
	}

	got := prune(split, pruner{strategy: PruneDepth, maxDepth: 1}, 4)
	if got == split {
		t.Fatal("collapsing should return a new node")
	}
	want := Node{Feature: NoFeature, Label: label, Samples: 4, Depth: 1}
	if *got != want {
		t.Errorf("collapsed = %+v, want %+v", *got, want)
	}
	if split.IsLeaf() || split.Left == nil || split.Threshold != 2.5 {
		t.Errorf("original node was modified: %+v", split)
	}
}
