package main

import (
	"os"

	"github.com/YuminosukeSato/cartree/pkg/log"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logLevel string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "cartree",
		Short: "cartree grows CART decision trees",
		Long:  `A tool to grow classification and regression trees from tabular data, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetupLogger(config.logLevel, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&(config.logLevel), "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		predictCmd(config),
		testCmd(config),
		showCmd(config),
		splitCmd(config),
		plotCmd(config),
	)
	return rootCmd
}
