package tree

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Criterion is an impurity function used to score candidate splits.
type Criterion int

const (
	// Gini is 1 - Σ p_c².
	Gini Criterion = iota
	// Entropy is -Σ p_c log₂ p_c.
	Entropy
	// MSE is the mean squared deviation from the mean.
	MSE
)

func (c Criterion) String() string {
	switch c {
	case Gini:
		return "gini"
	case Entropy:
		return "entropy"
	case MSE:
		return "mse"
	default:
		return "unknown"
	}
}

// ParseCriterion parses "gini", "entropy" or "mse" (case-insensitive).
func ParseCriterion(s string) (Criterion, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gini":
		return Gini, true
	case "entropy":
		return Entropy, true
	case "mse":
		return MSE, true
	default:
		return Criterion(-1), false
	}
}

// Impurity returns the impurity of y under criterion c.
//
// For Gini and Entropy the values of y are class identifiers. An empty
// slice has impurity 0.
func Impurity(c Criterion, y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	if c == MSE {
		return meanSquaredDeviation(y)
	}

	freq := make(map[float64]int)
	for _, v := range y {
		freq[v]++
	}
	keys := make([]float64, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	counts := make([]int, len(keys))
	for i, k := range keys {
		counts[i] = freq[k]
	}
	return countImpurity(c, counts, len(y))
}

// countImpurity computes Gini or Entropy from per-class counts summing to n.
func countImpurity(c Criterion, counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	total := float64(n)
	switch c {
	case Entropy:
		h := 0.0
		for _, k := range counts {
			if k == 0 {
				continue
			}
			p := float64(k) / total
			h -= p * math.Log2(p)
		}
		return h
	default:
		sum := 0.0
		for _, k := range counts {
			p := float64(k) / total
			sum += p * p
		}
		return 1 - sum
	}
}

func meanSquaredDeviation(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	mean := stat.Mean(y, nil)
	ss := 0.0
	for _, v := range y {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(y))
}
