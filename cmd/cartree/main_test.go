package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainingCSV = `width,height,kind
1,10,A
1,20,A
1.2,15,A
2,10,B
2,20,B
2.2,12,B
3,10,C
3,20,C
3.1,18,C
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cliParser()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cartree v0.1.0\n", out)
}

func TestGrowShowPredictTest(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainingCSV)
	treePath := filepath.Join(dir, "tree.json")

	out, err := run(t, "grow", "-i", data, "-o", treePath, "--criterion", "entropy", "--log-level", "error")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "if width <= "), "unexpected rendering %q", out)

	out, err = run(t, "show", "-t", treePath)
	require.NoError(t, err)
	assert.Contains(t, out, "{class is: A, number of samples: 3}")
	assert.Contains(t, out, "|---else ")

	query := writeFile(t, dir, "query.csv", "height,width\n99,1.1\n-3,2.1\n0,9\n")
	out, err = run(t, "predict", "-t", treePath, "-i", query)
	require.NoError(t, err)
	assert.Equal(t, "height,width,prediction\n99,1.1,A\n-3,2.1,B\n0,9,C\n", out)

	out, err = run(t, "test", "-t", treePath, "-i", data, "-c", "kind")
	require.NoError(t, err)
	assert.Equal(t, "accuracy: 1.0000 (9 samples)\n", out)
}

func TestGrow_JSONToStdout(t *testing.T) {
	data := writeFile(t, t.TempDir(), "train.csv", trainingCSV)
	out, err := run(t, "grow", "-i", data, "--max-depth", "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"model_type": "cartree"`)
	assert.Contains(t, out, `"max_depth": 0`)
}

func TestGrow_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "prices.csv", "size,price\n1,10\n2,10\n3,30\n4,30\n")
	cfg := writeFile(t, dir, "cartree.yaml", "mode: regression\nmax_depth: 1\nlog_level: error\n")
	treePath := filepath.Join(dir, "tree.json")

	out, err := run(t, "grow", "-i", data, "--config", cfg, "-o", treePath)
	require.NoError(t, err)
	assert.Equal(t, "if size <= 2.50\n|---then {class is: 10, number of samples: 2}\n|---else {class is: 30, number of samples: 2}\n", out)

	out, err = run(t, "test", "-t", treePath, "-i", data)
	require.NoError(t, err)
	assert.Equal(t, "r2: 1.0000, mse: 0.0000, rmse: 0.0000, mae: 0.0000 (4 samples)\n", out)

	// A test set with a constant target has no R² but keeps the error metrics.
	flat := writeFile(t, dir, "flat.csv", "size,price\n1,20\n4,20\n")
	out, err = run(t, "test", "-t", treePath, "-i", flat)
	require.NoError(t, err)
	assert.Equal(t, "r2: n/a, mse: 100.0000, rmse: 10.0000, mae: 10.0000 (2 samples)\n", out)

	// Flags override the file.
	_, err = run(t, "grow", "-i", data, "--config", cfg, "--mode", "classification", "--criterion", "mse")
	assert.Error(t, err)
}

func TestGrow_Errors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainingCSV)

	_, err := run(t, "grow", "-i", data, "--prune-strategy", "cost")
	assert.Error(t, err)
	_, err = run(t, "grow", "-i", data, "-c", "missing")
	assert.Error(t, err)
	_, err = run(t, "grow", "-i", filepath.Join(dir, "nope.csv"))
	assert.Error(t, err)
	_, err = run(t, "show")
	assert.Error(t, err)
	_, err = run(t, "grow", "-i", data, "--log-level", "loud")
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "all.csv", trainingCSV)
	trainPath := filepath.Join(dir, "train.csv")
	testPath := filepath.Join(dir, "test.csv")

	out, err := run(t, "split", "-i", data, "--train-output", trainPath, "--test-output", testPath, "-r", "0.3")
	require.NoError(t, err)
	assert.Equal(t, "6 training rows, 3 testing rows\n", out)

	testCSV, err := os.ReadFile(testPath)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(testCSV), "\n"))

	_, err = run(t, "split", "-i", data)
	assert.Error(t, err)
}

func TestGrow_SQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "train.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(), `CREATE TABLE samples (x REAL, label TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(), `INSERT INTO samples VALUES (1, 'lo'), (2, 'lo'), (8, 'hi'), (9, 'hi')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := run(t, "grow", "-i", dbPath, "--table", "samples", "-o", filepath.Join(dir, "tree.json"))
	require.NoError(t, err)
	assert.Equal(t, "if x <= 5.00\n|---then {class is: lo, number of samples: 2}\n|---else {class is: hi, number of samples: 2}\n", out)

	_, err = run(t, "grow", "-i", dbPath)
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainingCSV)
	treePath := filepath.Join(dir, "tree.json")
	_, err := run(t, "grow", "-i", data, "-o", treePath)
	require.NoError(t, err)

	img := filepath.Join(dir, "tree.svg")
	out, err := run(t, "plot", "-t", treePath, "-i", data, "-o", img, "--size", "3")
	require.NoError(t, err)
	assert.Contains(t, out, img)
	_, err = os.Stat(img)
	assert.NoError(t, err)

	_, err = run(t, "plot", "-t", treePath, "-i", data, "-o", img, "--x-feature", "depth")
	assert.Error(t, err)
}
