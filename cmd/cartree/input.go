package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/cartree/dataset"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/tree"
	"github.com/spf13/cobra"
)

// inputConfig selects a dataset: a CSV file (or STDIN) or a table in a
// SQLite database (.db, .sqlite, .sqlite3).
type inputConfig struct {
	dataInput string
	table     string
	target    string
}

func (ic *inputConfig) addFlags(cmd *cobra.Command, targetHelp string) {
	cmd.Flags().StringVarP(&(ic.dataInput), "input", "i", "", "path to an input CSV or SQLite file (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVar(&(ic.table), "table", "", "table to read when the input is a SQLite database")
	cmd.Flags().StringVarP(&(ic.target), "target", "c", "", targetHelp)
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func (ic *inputConfig) read(ctx context.Context, target string) (*dataset.Table, error) {
	if isSQLite(ic.dataInput) {
		if ic.table == "" {
			return nil, errors.New("required table flag was not set for SQLite input")
		}
		return dataset.ReadSQLite(ctx, ic.dataInput, ic.table, target)
	}
	return dataset.ReadCSVFile(ic.dataInput, target)
}

func loadTree(path string) (*tree.DecisionTree, error) {
	if path == "" {
		return nil, errors.New("required tree flag was not set")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tree in JSON from %s", path)
	}
	defer f.Close()
	dt, err := tree.ReadJSON(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing tree in JSON from %s", path)
	}
	return dt, nil
}
