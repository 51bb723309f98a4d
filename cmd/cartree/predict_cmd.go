package main

import (
	"os"

	"github.com/YuminosukeSato/cartree/dataset"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeInput string
	output    string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	pcc := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a label for every row of a data set",
		Long:  `Predict a label for every row of a data set and write the rows with a prediction column as CSV`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := loadTree(pcc.treeInput)
			if err != nil {
				return err
			}
			target := pcc.target
			if target == "" {
				target = dataset.NoTarget
			}
			table, err := pcc.read(cmd.Context(), target)
			if err != nil {
				return err
			}
			X, err := table.Select(dt.FeatureNames())
			if err != nil {
				return err
			}
			labels, err := dt.Predict(X)
			if err != nil {
				return err
			}

			out := &dataset.Table{
				FeatureNames: table.FeatureNames,
				Features:     table.Features,
				TargetName:   "prediction",
				Target:       make([]string, len(labels)),
			}
			for i, l := range labels {
				out.Target[i] = l.String()
			}

			if pcc.output == "" {
				return out.WriteCSV(cmd.OutOrStdout())
			}
			f, err := os.Create(pcc.output)
			if err != nil {
				return errors.Wrapf(err, "creating %s", pcc.output)
			}
			defer f.Close()
			return out.WriteCSV(f)
		},
	}
	pcc.addFlags(cmd, "name of a column to drop from the input, e.g. the known label (defaults to none)")
	cmd.Flags().StringVarP(&(pcc.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(pcc.output), "output", "o", "", "path to write the predictions as CSV (defaults to STDOUT)")
	return cmd
}
