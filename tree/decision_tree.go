// Package tree implements CART decision trees for classification and
// regression: greedy binary growth on midpoint thresholds, followed by depth
// or impurity pruning.
package tree

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/metrics"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"gonum.org/v1/gonum/mat"
)

var (
	_ model.Estimator       = (*DecisionTree)(nil)
	_ model.ParameterGetter = (*DecisionTree)(nil)
	_ model.ParameterSetter = (*DecisionTree)(nil)
)

// DecisionTree is a CART decision tree.
type DecisionTree struct {
	model.BaseEstimator

	// ハイパーパラメータ
	mode          Mode
	criterion     string
	pruneStrategy string
	maxDepth      int
	minGain       float64
	featureNames  []string

	logger log.Logger

	// 学習結果
	root    *Node
	names   []string
	classes []string
}

// NewDecisionTree creates a new, unfitted decision tree
func NewDecisionTree(opts ...Option) *DecisionTree {
	dt := &DecisionTree{
		mode:          Classification,
		pruneStrategy: DefaultPruneStrategy,
		maxDepth:      DefaultMaxDepth,
		minGain:       DefaultMinGain,
	}
	for _, opt := range opts {
		opt(dt)
	}
	if dt.logger == nil {
		dt.logger = log.GetLoggerWithName("tree")
	}
	dt.logger = dt.logger.With(log.ModelNameKey, "DecisionTree")
	return dt
}

// settings are the validated hyperparameters of one Fit call.
type settings struct {
	criterion Criterion
	pruner    pruner
}

func (dt *DecisionTree) resolve() (settings, error) {
	const op = "DecisionTree.Fit"
	var s settings

	if dt.mode != Classification && dt.mode != Regression {
		return s, errors.NewInvalidInputErrorf(op, "unknown mode %d", int(dt.mode))
	}

	switch {
	case dt.mode == Regression:
		s.criterion = MSE
		if dt.criterion != "" {
			if c, ok := ParseCriterion(dt.criterion); !ok {
				return s, errors.NewInvalidInputErrorf(op, "unknown criterion %q", dt.criterion)
			} else if c != MSE {
				errors.Warn(errors.NewIgnoredParameterWarning("criterion", dt.criterion, MSE.String()))
			}
		}
	case dt.criterion == "":
		s.criterion = Gini
	default:
		c, ok := ParseCriterion(dt.criterion)
		if !ok {
			return s, errors.NewInvalidInputErrorf(op, "unknown criterion %q", dt.criterion)
		}
		if c == MSE {
			return s, errors.NewInvalidInputError(op, "criterion \"mse\" requires regression mode")
		}
		s.criterion = c
	}

	strategy, ok := ParsePruneStrategy(dt.pruneStrategy)
	if !ok {
		return s, errors.NewInvalidInputErrorf(op, "unknown prune strategy %q", dt.pruneStrategy)
	}
	if dt.maxDepth < 0 {
		return s, errors.NewInvalidInputErrorf(op, "max_depth must be >= 0, got %d", dt.maxDepth)
	}
	if dt.minGain < 0 || math.IsNaN(dt.minGain) {
		return s, errors.NewInvalidInputErrorf(op, "min_gain must be >= 0, got %v", dt.minGain)
	}
	s.pruner = pruner{strategy: strategy, maxDepth: dt.maxDepth, minGain: dt.minGain}
	return s, nil
}

// Fit grows a tree on X and y and prunes it. A successful Fit replaces any
// previous fit.
func (dt *DecisionTree) Fit(X mat.Matrix, y model.Target) (err error) {
	const op = "DecisionTree.Fit"
	defer errors.Recover(&err, op)
	start := time.Now()

	s, err := dt.resolve()
	if err != nil {
		return err
	}

	if X == nil {
		return errors.NewInvalidInputError(op, "empty feature table")
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewInvalidInputError(op, "empty feature table")
	}
	if y.Len() != r {
		return errors.NewInvalidInputErrorf(op, "target has %d rows, features have %d", y.Len(), r)
	}
	if y.IsClassification() != (dt.mode == Classification) {
		return errors.NewInvalidInputErrorf(op, "%s target cannot be used in %s mode", y.Kind(), dt.mode)
	}
	if len(dt.featureNames) > 0 && len(dt.featureNames) != c {
		return errors.NewInvalidInputErrorf(op, "%d feature names given for %d columns", len(dt.featureNames), c)
	}

	// 列ごとに特徴量を取り出す
	columns := make([][]float64, c)
	for j := range columns {
		columns[j] = mat.Col(nil, j, X)
		for i, v := range columns[j] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewInvalidInputErrorf(op, "non-finite value %v at row %d, column %d", v, i, j)
			}
		}
	}

	names := dt.featureNames
	if len(names) == 0 {
		names = make([]string, c)
		for j := range names {
			names[j] = fmt.Sprintf("feature_%d", j)
		}
	}

	dt.Reset()
	dt.root = nil

	g := &grower{
		columns:   columns,
		names:     names,
		y:         y.Numeric(),
		classes:   y.Classes(),
		criterion: s.criterion,
	}
	rows := make([]int, r)
	for i := range rows {
		rows[i] = i
	}
	root := g.grow(rows)
	dt.logger.Debug("Tree grown",
		log.OperationKey, log.OperationFit,
		log.NodesKey, root.countNodes(),
	)

	root = prune(root, s.pruner, r)
	dt.logger.Debug("Tree pruned",
		log.OperationKey, log.OperationPrune,
		log.PruneStrategyKey, s.pruner.strategy.String(),
		log.NodesKey, root.countNodes(),
	)

	dt.root = root
	dt.names = append([]string(nil), names...)
	dt.classes = g.classes
	dt.SetFitted(c)

	dt.logger.Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.ModeKey, dt.mode.String(),
		log.CriterionKey, s.criterion.String(),
		log.PruneStrategyKey, s.pruner.strategy.String(),
		log.TreeDepthKey, dt.GetDepth(),
		log.LeavesKey, dt.GetNLeaves(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns the label of every row of X, in row order.
func (dt *DecisionTree) Predict(X mat.Matrix) ([]model.Label, error) {
	const op = "DecisionTree.Predict"
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTree", "Predict")
	}
	if X == nil {
		return nil, errors.NewInvalidInputError(op, "empty feature table")
	}
	r, c := X.Dims()
	if maxFeature := dt.MaxFeatureIndex(); maxFeature >= c {
		return nil, errors.NewOutOfRangeFeatureError(op, maxFeature, c)
	}

	labels := make([]model.Label, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, X)
		label, err := dt.root.PredictOne(row)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}

	dt.logger.Debug("Predict completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, r,
	)
	return labels, nil
}

// PredictClasses returns the predicted class name of every row of X.
func (dt *DecisionTree) PredictClasses(X mat.Matrix) ([]string, error) {
	if dt.IsFitted() && dt.mode != Classification {
		return nil, errors.NewInvalidInputError("DecisionTree.PredictClasses", "tree was fitted in regression mode")
	}
	labels, err := dt.Predict(X)
	if err != nil {
		return nil, err
	}
	classes := make([]string, len(labels))
	for i, l := range labels {
		classes[i] = l.Class
	}
	return classes, nil
}

// PredictValues returns the predicted value of every row of X. For
// classification trees the values are class indices into Classes().
func (dt *DecisionTree) PredictValues(X mat.Matrix) ([]float64, error) {
	labels, err := dt.Predict(X)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = l.Value
	}
	return values, nil
}

// Score returns the accuracy (classification) or R² (regression) of the
// predictions on X against y.
func (dt *DecisionTree) Score(X mat.Matrix, y model.Target) (float64, error) {
	const op = "DecisionTree.Score"
	if !dt.IsFitted() {
		return 0, errors.NewNotFittedError("DecisionTree", "Score")
	}
	if y.IsClassification() != (dt.mode == Classification) {
		return 0, errors.NewInvalidInputErrorf(op, "%s target cannot be scored by a %s tree", y.Kind(), dt.mode)
	}
	labels, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(labels) != y.Len() {
		return 0, errors.NewInvalidInputErrorf(op, "target has %d rows, features have %d", y.Len(), len(labels))
	}

	if dt.mode == Classification {
		truth := y.Labels()
		yTrue := make([]string, len(truth))
		yPred := make([]string, len(labels))
		for i := range labels {
			yTrue[i] = truth[i].Class
			yPred[i] = labels[i].Class
		}
		acc, err := metrics.Accuracy(yTrue, yPred)
		if err != nil {
			return 0, err
		}
		dt.logger.Info("Score computed", log.OperationKey, log.OperationScore, log.PhaseKey, log.PhaseTesting, log.AccuracyKey, acc)
		return acc, nil
	}

	yPred := mat.NewVecDense(len(labels), nil)
	for i, l := range labels {
		yPred.SetVec(i, l.Value)
	}
	r2, err := metrics.R2Score(mat.NewVecDense(y.Len(), y.Numeric()), yPred)
	if err != nil {
		return 0, err
	}
	dt.logger.Info("Score computed", log.OperationKey, log.OperationScore, log.PhaseKey, log.PhaseTesting, log.R2ScoreKey, r2)
	return r2, nil
}

// Root returns the root of the fitted tree, or nil before Fit.
func (dt *DecisionTree) Root() *Node {
	return dt.root
}

// Classes returns the class names in ascending order (nil for regression).
func (dt *DecisionTree) Classes() []string {
	return append([]string(nil), dt.classes...)
}

// FeatureNames returns the feature names the tree was fitted with.
func (dt *DecisionTree) FeatureNames() []string {
	return append([]string(nil), dt.names...)
}

// Mode returns the tree mode.
func (dt *DecisionTree) Mode() Mode {
	return dt.mode
}

// GetDepth returns the depth of the deepest leaf (0 for a single leaf or an
// unfitted tree).
func (dt *DecisionTree) GetDepth() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.height()
}

// GetNLeaves returns the number of leaves (0 for an unfitted tree).
func (dt *DecisionTree) GetNLeaves() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.countLeaves()
}

// MaxFeatureIndex returns the largest feature index used by any split, or
// NoFeature when the tree is a single leaf or unfitted.
func (dt *DecisionTree) MaxFeatureIndex() int {
	if dt.root == nil {
		return NoFeature
	}
	return dt.root.maxFeature()
}

// Walk visits the fitted tree in pre-order. See Node.Walk.
func (dt *DecisionTree) Walk(fn func(*Node) bool) {
	dt.root.Walk(fn)
}

// String renders the fitted tree, one node per line.
func (dt *DecisionTree) String() string {
	if dt.root == nil {
		return "DecisionTree(not fitted)"
	}
	return strings.Join(dt.root.Render(0, ""), "\n")
}

// GetParams returns the hyperparameters
func (dt *DecisionTree) GetParams() map[string]interface{} {
	criterion := dt.criterion
	switch {
	case dt.mode == Regression:
		criterion = MSE.String()
	case criterion == "":
		criterion = DefaultCriterion
	}
	return map[string]interface{}{
		"mode":           dt.mode.String(),
		"criterion":      criterion,
		"prune_strategy": dt.pruneStrategy,
		"max_depth":      dt.maxDepth,
		"min_gain":       dt.minGain,
	}
}

// SetParams sets hyperparameters. Values are validated by Fit.
func (dt *DecisionTree) SetParams(params map[string]interface{}) error {
	const op = "DecisionTree.SetParams"
	for key, value := range params {
		switch key {
		case "mode":
			switch v := value.(type) {
			case Mode:
				dt.mode = v
			case string:
				m, ok := ParseMode(v)
				if !ok {
					return errors.NewInvalidInputErrorf(op, "unknown mode %q", v)
				}
				dt.mode = m
			default:
				return errors.NewInvalidInputErrorf(op, "mode must be a string, got %T", value)
			}
		case "criterion":
			v, ok := value.(string)
			if !ok {
				return errors.NewInvalidInputErrorf(op, "criterion must be a string, got %T", value)
			}
			dt.criterion = v
		case "prune_strategy":
			v, ok := value.(string)
			if !ok {
				return errors.NewInvalidInputErrorf(op, "prune_strategy must be a string, got %T", value)
			}
			dt.pruneStrategy = v
		case "max_depth":
			switch v := value.(type) {
			case int:
				dt.maxDepth = v
			case float64:
				if v != math.Trunc(v) {
					return errors.NewInvalidInputErrorf(op, "max_depth must be an integer, got %v", v)
				}
				dt.maxDepth = int(v)
			default:
				return errors.NewInvalidInputErrorf(op, "max_depth must be an int, got %T", value)
			}
		case "min_gain":
			switch v := value.(type) {
			case float64:
				dt.minGain = v
			case int:
				dt.minGain = float64(v)
			default:
				return errors.NewInvalidInputErrorf(op, "min_gain must be a float, got %T", value)
			}
		default:
			return errors.NewInvalidInputErrorf(op, "unknown parameter %q", key)
		}
	}
	return nil
}
