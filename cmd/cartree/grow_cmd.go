package main

import (
	"fmt"
	"os"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/dataset"
	"github.com/YuminosukeSato/cartree/pkg/config"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"github.com/YuminosukeSato/cartree/tree"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	inputConfig
	configPath    string
	output        string
	mode          string
	criterion     string
	pruneStrategy string
	maxDepth      int
	minGain       float64
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	gcc := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a data set",
		Long:  `Grow a CART tree from a training set and write it as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := gcc.settings(cmd)
			if err != nil {
				return err
			}
			table, err := gcc.read(cmd.Context(), cfg.Target)
			if err != nil {
				return err
			}
			dt, err := growTree(cfg, table)
			if err != nil {
				return err
			}
			if gcc.output == "" {
				return dt.WriteJSON(cmd.OutOrStdout())
			}
			f, err := os.Create(gcc.output)
			if err != nil {
				return errors.Wrapf(err, "creating %s", gcc.output)
			}
			defer f.Close()
			if err := dt.WriteJSON(f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dt)
			return nil
		},
	}
	gcc.addFlags(cmd, "name of the column the tree should predict (defaults to the last column)")
	cmd.Flags().StringVar(&(gcc.configPath), "config", "", "path to a YAML file with tree settings")
	cmd.Flags().StringVarP(&(gcc.output), "output", "o", "", "path to write the tree as JSON (defaults to STDOUT)")
	cmd.Flags().StringVarP(&(gcc.mode), "mode", "m", tree.Classification.String(), "classification or regression")
	cmd.Flags().StringVar(&(gcc.criterion), "criterion", tree.DefaultCriterion, "impurity criterion: gini, entropy or mse")
	cmd.Flags().StringVar(&(gcc.pruneStrategy), "prune-strategy", tree.DefaultPruneStrategy, "pruning strategy: depth or impurity")
	cmd.Flags().IntVar(&(gcc.maxDepth), "max-depth", tree.DefaultMaxDepth, "depth at which depth pruning collapses nodes")
	cmd.Flags().Float64Var(&(gcc.minGain), "min-gain", tree.DefaultMinGain, "weighted gain below which impurity pruning collapses bottom splits")
	return cmd
}

// settings merges the config file (if any) with the flags set on the
// command line, flags taking precedence.
func (gcc *growCmdConfig) settings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if gcc.configPath != "" {
		var err error
		if cfg, err = config.Load(gcc.configPath); err != nil {
			return nil, err
		}
		if !cmd.Flags().Changed("log-level") {
			if err := log.SetupLogger(cfg.LogLevel, cmd.ErrOrStderr()); err != nil {
				return nil, err
			}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = gcc.mode
	}
	if flags.Changed("criterion") {
		cfg.Criterion = gcc.criterion
	}
	if flags.Changed("prune-strategy") {
		cfg.PruneStrategy = gcc.pruneStrategy
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = gcc.maxDepth
	}
	if flags.Changed("min-gain") {
		cfg.MinGain = gcc.minGain
	}
	if flags.Changed("target") {
		cfg.Target = gcc.target
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func growTree(cfg *config.Config, table *dataset.Table) (*tree.DecisionTree, error) {
	y, err := tableTarget(table, cfg.TreeMode())
	if err != nil {
		return nil, err
	}
	opts := append(cfg.Options(), tree.WithFeatureNames(table.FeatureNames...))
	dt := tree.NewDecisionTree(opts...)
	if err := dt.Fit(table.Features, y); err != nil {
		return nil, err
	}
	return dt, nil
}

func tableTarget(table *dataset.Table, mode tree.Mode) (model.Target, error) {
	if mode == tree.Regression {
		return table.ValueTarget()
	}
	return table.ClassTarget()
}
