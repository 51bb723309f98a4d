package tree

import (
	"math"
	"testing"
)

func TestImpurity(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		y         []float64
		want      float64
	}{
		{"gini pure", Gini, []float64{1, 1, 1}, 0},
		{"gini balanced binary", Gini, []float64{0, 1, 0, 1}, 0.5},
		{"gini three classes", Gini, []float64{0, 1, 2}, 1 - 3.0/9.0},
		{"gini single row", Gini, []float64{4}, 0},
		{"entropy pure", Entropy, []float64{2, 2}, 0},
		{"entropy balanced binary", Entropy, []float64{0, 1}, 1},
		{"entropy four classes", Entropy, []float64{0, 1, 2, 3}, 2},
		{"mse constant", MSE, []float64{3, 3, 3}, 0},
		{"mse", MSE, []float64{1, 1, 5, 5}, 4},
		{"empty", Gini, nil, 0},
		{"empty mse", MSE, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Impurity(tt.criterion, tt.y)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Impurity(%v, %v) = %v, want %v", tt.criterion, tt.y, got, tt.want)
			}
		})
	}
}

func TestImpurityBounds(t *testing.T) {
	samples := [][]float64{
		{0},
		{0, 0, 1},
		{0, 1, 2, 2, 2},
		{0, 1, 2, 3, 4, 5, 6, 7},
		{3, 3, 3, 1},
	}
	for _, y := range samples {
		k := map[float64]bool{}
		for _, v := range y {
			k[v] = true
		}
		classes := float64(len(k))

		if g := Impurity(Gini, y); g < 0 || g > 1-1/classes+1e-12 {
			t.Errorf("gini(%v) = %v outside [0, %v]", y, g, 1-1/classes)
		}
		if h := Impurity(Entropy, y); h < 0 || h > math.Log2(classes)+1e-12 {
			t.Errorf("entropy(%v) = %v outside [0, %v]", y, h, math.Log2(classes))
		}
		if m := Impurity(MSE, y); m < 0 {
			t.Errorf("mse(%v) = %v < 0", y, m)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if c, ok := ParseCriterion(" Entropy "); !ok || c != Entropy {
		t.Errorf("ParseCriterion(Entropy) = %v, %v", c, ok)
	}
	if _, ok := ParseCriterion("gain"); ok {
		t.Error("ParseCriterion should reject unknown names")
	}
	if p, ok := ParsePruneStrategy("IMPURITY"); !ok || p != PruneImpurity {
		t.Errorf("ParsePruneStrategy(IMPURITY) = %v, %v", p, ok)
	}
	if _, ok := ParsePruneStrategy("cost-complexity"); ok {
		t.Error("ParsePruneStrategy should reject unknown names")
	}
	if m, ok := ParseMode("regression"); !ok || m != Regression {
		t.Errorf("ParseMode(regression) = %v, %v", m, ok)
	}
	if _, ok := ParseMode(""); ok {
		t.Error("ParseMode should reject empty names")
	}
	for _, s := range []string{Gini.String(), Entropy.String(), MSE.String()} {
		if _, ok := ParseCriterion(s); !ok {
			t.Errorf("String() of a criterion must parse back, got %q", s)
		}
	}
}
