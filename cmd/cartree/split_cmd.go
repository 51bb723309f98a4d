package main

import (
	"fmt"
	"os"

	"github.com/YuminosukeSato/cartree/dataset"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*rootCmdConfig
	inputConfig
	trainOutput string
	testOutput  string
	testRatio   float64
	seed        int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	scc := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a data set into a training and a testing set",
		Long:  `Shuffle the rows of a data set with a fixed seed and write a training and a testing set as CSV`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scc.trainOutput == "" || scc.testOutput == "" {
				return errors.New("required train-output and test-output flags were not set")
			}
			table, err := scc.read(cmd.Context(), scc.target)
			if err != nil {
				return err
			}
			train, test, err := table.Split(scc.testRatio, scc.seed)
			if err != nil {
				return err
			}
			if err := writeTable(train, scc.trainOutput); err != nil {
				return err
			}
			if err := writeTable(test, scc.testOutput); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d training rows, %d testing rows\n", train.Rows(), test.Rows())
			return nil
		},
	}
	scc.addFlags(cmd, "name of the target column (defaults to the last column)")
	cmd.Flags().StringVar(&(scc.trainOutput), "train-output", "", "path to write the training set as CSV (required)")
	cmd.Flags().StringVar(&(scc.testOutput), "test-output", "", "path to write the testing set as CSV (required)")
	cmd.Flags().Float64VarP(&(scc.testRatio), "test-ratio", "r", 0.2, "share of rows that go to the testing set")
	cmd.Flags().Int64Var(&(scc.seed), "seed", 42, "seed for the row shuffle")
	return cmd
}

func writeTable(t *dataset.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	return t.WriteCSV(f)
}
