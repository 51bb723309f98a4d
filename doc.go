// Package cartree provides CART decision trees for Go.
//
// A tree is grown greedily on binary midpoint splits that maximise the
// reduction of an impurity criterion (Gini or entropy for classification,
// mean squared error for regression) and then pruned either by depth or by
// weighted impurity gain. The API follows the familiar Fit/Predict/Score
// shape.
//
// # Packages
//
//   - tree: DecisionTree, its nodes, growth, pruning, prediction, rendering and JSON persistence
//   - core/model: targets, labels and the estimator interfaces
//   - dataset: CSV and SQLite loading, seeded train/test split
//   - metrics: accuracy, MSE, RMSE, MAE, R²
//   - plot: split boundaries over two features
//   - pkg/config: YAML settings
//   - pkg/errors, pkg/log: error types and structured logging
//   - cmd/cartree: the command line tool
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/cartree/core/model"
//	    "github.com/YuminosukeSato/cartree/tree"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{
//	        1, 10,
//	        1, 20,
//	        2, 10,
//	        2, 20,
//	    })
//	    y := model.NewClassTarget([]string{"A", "A", "B", "B"})
//
//	    dt := tree.NewDecisionTree(
//	        tree.WithCriterion("gini"),
//	        tree.WithMaxDepth(2),
//	    )
//	    if err := dt.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(dt)
//	    // if feature_0 <= 1.50
//	    // |---then {class is: A, number of samples: 2}
//	    // |---else {class is: B, number of samples: 2}
//	}
//
// # Error Handling
//
// Errors carry stack traces (github.com/cockroachdb/errors). Test for kinds
// with errors.As:
//
//	var oor *errors.OutOfRangeFeatureError
//	if errors.As(err, &oor) {
//	    // the row is shorter than the features the tree splits on
//	}
package cartree
