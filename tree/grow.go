package tree

import (
	"sort"

	"github.com/YuminosukeSato/cartree/core/model"
	"gonum.org/v1/gonum/stat"
)

// grower builds an unpruned tree from column-major training data.
type grower struct {
	columns   [][]float64
	names     []string
	y         []float64
	classes   []string
	criterion Criterion
}

type growTask struct {
	node *Node
	rows []int
}

type candidate struct {
	feature   int
	threshold float64
	gain      float64
}

// grow builds the tree for the given rows. Nodes are expanded from an
// explicit work stack so deep trees do not grow the goroutine stack.
func (g *grower) grow(rows []int) *Node {
	root := newLeaf(0)
	stack := []growTask{{node: root, rows: rows}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		left, right, ok := g.split(task.node, task.rows)
		if !ok {
			continue
		}
		stack = append(stack,
			growTask{node: task.node.Right, rows: right},
			growTask{node: task.node.Left, rows: left},
		)
	}
	return root
}

// split labels n from rows and, if some split strictly reduces impurity,
// turns n into an internal node and returns the row partitions of its children.
func (g *grower) split(n *Node, rows []int) (left, right []int, ok bool) {
	n.Samples = len(rows)
	n.Label = g.label(rows)
	if g.pure(rows) {
		return nil, nil, false
	}

	parent := g.impurity(rows)
	best := candidate{feature: NoFeature}
	for j, col := range g.columns {
		c := g.bestThreshold(col, rows, parent)
		if c.gain > best.gain {
			best = c
			best.feature = j
		}
	}
	if best.feature == NoFeature {
		return nil, nil, false
	}

	col := g.columns[best.feature]
	left = make([]int, 0, len(rows))
	right = make([]int, 0, len(rows))
	for _, r := range rows {
		if col[r] <= best.threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	n.Feature = best.feature
	n.FeatureName = g.names[best.feature]
	n.Threshold = best.threshold
	n.Gain = best.gain
	n.Left = newLeaf(n.Depth + 1)
	n.Right = newLeaf(n.Depth + 1)
	return left, right, true
}

// bestThreshold scans the midpoints between adjacent distinct values of col
// in ascending order and returns the first one with the highest gain.
// The returned gain is 0 when no midpoint improves on parent.
func (g *grower) bestThreshold(col []float64, rows []int, parent float64) candidate {
	sorted := append([]int(nil), rows...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return col[sorted[a]] < col[sorted[b]]
	})

	n := len(sorted)
	best := candidate{feature: NoFeature}

	var leftCounts, rightCounts []int
	var ys []float64
	if g.criterion == MSE {
		ys = make([]float64, n)
		for i, r := range sorted {
			ys[i] = g.y[r]
		}
	} else {
		leftCounts = make([]int, len(g.classes))
		rightCounts = make([]int, len(g.classes))
		for _, r := range sorted {
			rightCounts[int(g.y[r])]++
		}
	}

	for i := 0; i < n-1; i++ {
		if leftCounts != nil {
			c := int(g.y[sorted[i]])
			leftCounts[c]++
			rightCounts[c]--
		}

		a, b := col[sorted[i]], col[sorted[i+1]]
		if a == b {
			continue
		}
		t := (a + b) / 2
		// The midpoint may round onto b for adjacent floats, overflow,
		// or be NaN for -Inf/+Inf.
		if !(t >= a && t < b) {
			t = a
		}

		nl, nr := i+1, n-i-1
		var li, ri float64
		if ys != nil {
			li = meanSquaredDeviation(ys[:nl])
			ri = meanSquaredDeviation(ys[nl:])
		} else {
			li = countImpurity(g.criterion, leftCounts, nl)
			ri = countImpurity(g.criterion, rightCounts, nr)
		}
		weighted := float64(nl)/float64(n)*li + float64(nr)/float64(n)*ri
		if gain := parent - weighted; gain > best.gain {
			best.threshold = t
			best.gain = gain
		}
	}
	return best
}

func (g *grower) pure(rows []int) bool {
	first := g.y[rows[0]]
	for _, r := range rows[1:] {
		if g.y[r] != first {
			return false
		}
	}
	return true
}

func (g *grower) impurity(rows []int) float64 {
	if g.criterion == MSE {
		return meanSquaredDeviation(g.values(rows))
	}
	return countImpurity(g.criterion, g.counts(rows), len(rows))
}

// label is the majority class (ties go to the smallest class name) or the mean.
func (g *grower) label(rows []int) model.Label {
	if g.classes == nil {
		return model.ValueLabel(stat.Mean(g.values(rows), nil))
	}
	counts := g.counts(rows)
	best := 0
	for c, k := range counts {
		if k > counts[best] {
			best = c
		}
	}
	return model.ClassLabel(g.classes[best], best)
}

func (g *grower) values(rows []int) []float64 {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = g.y[r]
	}
	return vals
}

func (g *grower) counts(rows []int) []int {
	counts := make([]int, len(g.classes))
	for _, r := range rows {
		counts[int(g.y[r])]++
	}
	return counts
}
