package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("target: species\n"))
	require.NoError(t, err)

	assert.Equal(t, "classification", cfg.Mode)
	assert.Equal(t, "gini", cfg.Criterion)
	assert.Equal(t, "depth", cfg.PruneStrategy)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.Equal(t, 0.05, cfg.MinGain)
	assert.Equal(t, "species", cfg.Target)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Full(t *testing.T) {
	data := []byte(`
mode: regression
criterion: mse
prune_strategy: impurity
max_depth: 7
min_gain: 0.1
target: price
log_level: debug
`)
	cfg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, tree.Regression, cfg.TreeMode())
	assert.Equal(t, 7, cfg.MaxDepth)
	assert.Equal(t, 0.1, cfg.MinGain)

	dt := tree.NewDecisionTree(cfg.Options()...)
	params := dt.GetParams()
	assert.Equal(t, "regression", params["mode"])
	assert.Equal(t, "mse", params["criterion"])
	assert.Equal(t, "impurity", params["prune_strategy"])
	assert.Equal(t, 7, params["max_depth"])
	assert.Equal(t, 0.1, params["min_gain"])
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":         "depth: 3\n",
		"bad yaml":            "mode: [\n",
		"unknown mode":        "mode: clustering\n",
		"unknown criterion":   "criterion: gain\n",
		"mse classification":  "criterion: mse\n",
		"unknown prune":       "prune_strategy: cost\n",
		"negative depth":      "max_depth: -1\n",
		"negative min gain":   "min_gain: -0.5\n",
		"unknown log level":   "log_level: loud\n",
		"wrong type for size": "max_depth: deep\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("mode: clustering\n"))
	var invalid *errors.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cartree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("criterion: entropy\nmax_depth: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "entropy", cfg.Criterion)
	assert.Equal(t, 2, cfg.MaxDepth)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions_RegressionDefaultCriterion(t *testing.T) {
	cfg := Default()
	cfg.Mode = "regression"
	require.NoError(t, cfg.Validate())

	opts := cfg.Options()
	// mode, prune strategy, max depth and min gain only
	assert.Len(t, opts, 4)
}
