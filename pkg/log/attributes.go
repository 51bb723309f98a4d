// Standard attribute keys for tree operations.
//
// Keys follow a hierarchical naming convention ("model.name",
// "data.samples") so log output can be filtered consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "DecisionTree".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "prune"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey is the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct classes of a classification target.
	ClassesKey = "data.classes"

	// SourceKey is where a dataset was read from (file path, table).
	SourceKey = "data.source"
)

// Tree shape and hyperparameters
const (
	// ModeKey is "classification" or "regression".
	ModeKey = "tree.mode"

	// CriterionKey is the impurity criterion used for growth.
	CriterionKey = "tree.criterion"

	// PruneStrategyKey is the pruning strategy applied after growth.
	PruneStrategyKey = "tree.prune_strategy"

	// MaxDepthKey is the depth limit used by depth pruning.
	MaxDepthKey = "tree.max_depth"

	// MinGainKey is the weighted gain threshold used by impurity pruning.
	MinGainKey = "tree.min_gain"

	// TreeDepthKey is the depth of the fitted tree.
	TreeDepthKey = "tree.depth"

	// LeavesKey is the number of leaves of the fitted tree.
	LeavesKey = "tree.leaves"

	// NodesKey is the number of nodes before/after pruning.
	NodesKey = "tree.nodes"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// MSEKey records the mean squared error of a regression.
	MSEKey = "metrics.mse"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationPrune   = "prune"

	PhaseTraining  = "training"
	PhaseTesting   = "testing"
	PhaseInference = "inference"

	ErrorNotFitted    = "NOT_FITTED"
	ErrorInvalidInput = "INVALID_INPUT"
	ErrorOutOfRange   = "FEATURE_OUT_OF_RANGE"
)
