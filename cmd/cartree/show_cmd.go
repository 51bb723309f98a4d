package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	var treeInput string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a tree",
		Long:  `Print the decision structure of a tree, one node per line`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := loadTree(treeInput)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&treeInput, "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON (required)")
	return cmd
}
