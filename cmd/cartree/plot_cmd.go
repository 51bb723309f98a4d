package main

import (
	"fmt"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/plot"
	"github.com/YuminosukeSato/cartree/tree"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

type plotCmdConfig struct {
	*rootCmdConfig
	inputConfig
	treeInput string
	output    string
	xFeature  string
	yFeature  string
	title     string
	size      float64
}

func plotCmd(rootConfig *rootCmdConfig) *cobra.Command {
	pcc := &plotCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the split boundaries of a tree over two features",
		Long:  `Scatter a data set over two feature columns and draw the tree's split boundaries in that plane (PNG, SVG or PDF by file extension)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pcc.output == "" {
				return errors.New("required output flag was not set")
			}
			dt, err := loadTree(pcc.treeInput)
			if err != nil {
				return err
			}
			names := dt.FeatureNames()
			xName, yName := pcc.xFeature, pcc.yFeature
			if xName == "" && len(names) > 0 {
				xName = names[0]
			}
			if yName == "" && len(names) > 1 {
				yName = names[1]
			}
			xIdx, yIdx := indexOf(names, xName), indexOf(names, yName)
			if xIdx < 0 || yIdx < 0 {
				return errors.Newf("features %q and %q must both be used by the tree's feature table", xName, yName)
			}

			table, err := pcc.read(cmd.Context(), pcc.target)
			if err != nil {
				return err
			}
			X, err := table.Select(names)
			if err != nil {
				return err
			}
			var labels []string
			if dt.Mode() == tree.Classification {
				labels = table.Target
			}

			p, err := plot.Boundaries(dt, X, labels, plot.Options{XFeature: xIdx, YFeature: yIdx, Title: pcc.title})
			if err != nil {
				return err
			}
			size := vg.Length(pcc.size) * vg.Inch
			if err := plot.Save(p, pcc.output, size, size); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plot written to %s\n", pcc.output)
			return nil
		},
	}
	pcc.addFlags(cmd, "name of the column holding the labels (defaults to the last column)")
	cmd.Flags().StringVarP(&(pcc.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(pcc.output), "output", "o", "", "path of the image to write (required)")
	cmd.Flags().StringVar(&(pcc.xFeature), "x-feature", "", "feature on the x axis (defaults to the first feature)")
	cmd.Flags().StringVar(&(pcc.yFeature), "y-feature", "", "feature on the y axis (defaults to the second feature)")
	cmd.Flags().StringVar(&(pcc.title), "title", "", "plot title")
	cmd.Flags().Float64Var(&(pcc.size), "size", 6, "width and height in inches")
	return cmd
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
