package tree

import (
	"strings"

	"github.com/YuminosukeSato/cartree/pkg/log"
)

// Option configures a DecisionTree
type Option func(*DecisionTree)

// Mode selects between classification and regression trees.
type Mode int

const (
	// Classification trees predict the majority class of a leaf.
	Classification Mode = iota
	// Regression trees predict the mean target of a leaf.
	Regression
)

func (m Mode) String() string {
	switch m {
	case Classification:
		return "classification"
	case Regression:
		return "regression"
	default:
		return "unknown"
	}
}

// ParseMode parses "classification" or "regression" (case-insensitive).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classification":
		return Classification, true
	case "regression":
		return Regression, true
	default:
		return Mode(-1), false
	}
}

// PruneStrategy selects how the grown tree is pruned.
type PruneStrategy int

const (
	// PruneDepth collapses every node at or below max_depth.
	PruneDepth PruneStrategy = iota
	// PruneImpurity collapses bottom splits whose weighted gain is below min_gain.
	PruneImpurity
)

func (p PruneStrategy) String() string {
	switch p {
	case PruneDepth:
		return "depth"
	case PruneImpurity:
		return "impurity"
	default:
		return "unknown"
	}
}

// ParsePruneStrategy parses "depth" or "impurity" (case-insensitive).
func ParsePruneStrategy(s string) (PruneStrategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "depth":
		return PruneDepth, true
	case "impurity":
		return PruneImpurity, true
	default:
		return PruneStrategy(-1), false
	}
}

// Default hyperparameters.
const (
	DefaultCriterion     = "gini"
	DefaultPruneStrategy = "depth"
	DefaultMaxDepth      = 4
	DefaultMinGain       = 0.05
)

// WithMode sets the tree mode
func WithMode(mode Mode) Option {
	return func(dt *DecisionTree) {
		dt.mode = mode
	}
}

// WithCriterion sets the impurity criterion ("gini", "entropy" or "mse").
// Regression trees always use "mse".
func WithCriterion(criterion string) Option {
	return func(dt *DecisionTree) {
		dt.criterion = criterion
	}
}

// WithPruneStrategy sets the pruning strategy ("depth" or "impurity")
func WithPruneStrategy(strategy string) Option {
	return func(dt *DecisionTree) {
		dt.pruneStrategy = strategy
	}
}

// WithMaxDepth sets the depth at which depth pruning collapses nodes
func WithMaxDepth(depth int) Option {
	return func(dt *DecisionTree) {
		dt.maxDepth = depth
	}
}

// WithMinGain sets the weighted gain threshold used by impurity pruning
func WithMinGain(gain float64) Option {
	return func(dt *DecisionTree) {
		dt.minGain = gain
	}
}

// WithFeatureNames sets the feature column names used in rendering
func WithFeatureNames(names ...string) Option {
	return func(dt *DecisionTree) {
		dt.featureNames = append([]string(nil), names...)
	}
}

// WithLogger sets the logger used for fit summaries
func WithLogger(logger log.Logger) Option {
	return func(dt *DecisionTree) {
		dt.logger = logger
	}
}
