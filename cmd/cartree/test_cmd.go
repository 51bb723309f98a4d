package main

import (
	"fmt"

	"github.com/YuminosukeSato/cartree/metrics"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/tree"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

type testCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	tcc := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := loadTree(tcc.treeInput)
			if err != nil {
				return err
			}
			table, err := tcc.read(cmd.Context(), tcc.target)
			if err != nil {
				return err
			}
			X, err := table.Select(dt.FeatureNames())
			if err != nil {
				return err
			}
			y, err := tableTarget(table, dt.Mode())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			score, err := dt.Score(X, y)
			if dt.Mode() == tree.Classification {
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "accuracy: %.4f (%d samples)\n", score, table.Rows())
				return nil
			}

			// R² is undefined on a constant target, the error metrics are still reported.
			r2 := "n/a"
			switch {
			case err == nil:
				r2 = fmt.Sprintf("%.4f", score)
			case !errors.Is(err, errors.ErrNoVariance):
				return err
			}
			pred, err := dt.PredictValues(X)
			if err != nil {
				return err
			}
			yTrue := mat.NewVecDense(y.Len(), y.Numeric())
			yPred := mat.NewVecDense(len(pred), pred)
			mse, err := metrics.MSE(yTrue, yPred)
			if err != nil {
				return err
			}
			rmse, err := metrics.RMSE(yTrue, yPred)
			if err != nil {
				return err
			}
			mae, err := metrics.MAE(yTrue, yPred)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "r2: %s, mse: %.4f, rmse: %.4f, mae: %.4f (%d samples)\n", r2, mse, rmse, mae, table.Rows())
			return nil
		},
	}
	tcc.addFlags(cmd, "name of the column holding the true labels (defaults to the last column)")
	cmd.Flags().StringVarP(&(tcc.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required)")
	return cmd
}
