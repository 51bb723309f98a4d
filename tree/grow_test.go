package tree

import (
	"math"
	"testing"
)

func TestGrower_ThresholdStaysBetweenNeighbours(t *testing.T) {
	tests := []struct {
		name string
		col  []float64
		want float64
	}{
		{"midpoint", []float64{1, 1, 2, 2}, 1.5},
		{"infinite neighbours", []float64{math.Inf(-1), math.Inf(-1), math.Inf(1), math.Inf(1)}, math.Inf(-1)},
		{"sum overflows", []float64{1e308, 1e308, 1.7e308, 1.7e308}, 1e308},
		{"adjacent floats", []float64{1, 1, math.Nextafter(1, 2), math.Nextafter(1, 2)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &grower{
				columns:   [][]float64{tt.col},
				names:     []string{"x"},
				y:         []float64{0, 0, 1, 1},
				classes:   []string{"A", "B"},
				criterion: Gini,
			}
			root := g.grow([]int{0, 1, 2, 3})

			if root.IsLeaf() {
				t.Fatal("expected a split")
			}
			if root.Threshold != tt.want {
				t.Errorf("threshold = %v, want %v", root.Threshold, tt.want)
			}
			if root.Left.Samples != 2 || root.Right.Samples != 2 {
				t.Errorf("partition = %d/%d, want 2/2", root.Left.Samples, root.Right.Samples)
			}
			if root.Left.Label.Class != "A" || root.Right.Label.Class != "B" {
				t.Errorf("leaf labels = %s/%s, want A/B", root.Left.Label, root.Right.Label)
			}
		})
	}
}
