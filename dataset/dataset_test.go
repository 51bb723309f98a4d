package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const irisCSV = `sepal_length,sepal_width,species
5.1,3.5,setosa
4.9,3.0,setosa
6.3,3.3,virginica
5.8,2.7,virginica
5.7,2.8,versicolor
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(irisCSV), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"sepal_length", "sepal_width"}, tbl.FeatureNames)
	assert.Equal(t, "species", tbl.TargetName)
	assert.Equal(t, []string{"setosa", "setosa", "virginica", "virginica", "versicolor"}, tbl.Target)
	assert.Equal(t, 5, tbl.Rows())
	assert.Equal(t, 6.3, tbl.Features.At(2, 0))
	assert.Equal(t, 2.7, tbl.Features.At(3, 1))

	target, err := tbl.ClassTarget()
	require.NoError(t, err)
	assert.Equal(t, model.ClassTarget, target.Kind())
	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, target.Classes())
}

func TestReadCSV_NamedTarget(t *testing.T) {
	data := "y,a,b\n1.5,1,2\n2.5,3,4\n"
	tbl, err := ReadCSV(strings.NewReader(data), "y")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tbl.FeatureNames)
	target, err := tbl.ValueTarget()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, target.Numeric())
}

func TestReadCSV_NoTarget(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b\n1,2\n"), NoTarget)
	require.NoError(t, err)
	assert.Nil(t, tbl.Target)
	assert.Equal(t, []string{"a", "b"}, tbl.FeatureNames)

	_, err = tbl.ClassTarget()
	assert.Error(t, err)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		target  string
		invalid bool
		empty   bool
	}{
		{name: "empty input", data: "", empty: true},
		{name: "header only", data: "a,b\n", empty: true},
		{name: "missing target", data: "a,b\n1,2\n", target: "c", invalid: true},
		{name: "non numeric feature", data: "a,b\nx,2\n", invalid: true},
		{name: "only a target column", data: "y\nA\n", invalid: true},
		{name: "ragged rows", data: "a,b\n1,2,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), tt.target)
			require.Error(t, err)
			if tt.invalid {
				var invalid *errors.InvalidInputError
				assert.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %v", err)
			}
			if tt.empty {
				assert.True(t, errors.Is(err, errors.ErrEmptyData), "expected ErrEmptyData, got %v", err)
			}
		})
	}
}

func TestValueTarget_NotNumeric(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(irisCSV), "")
	require.NoError(t, err)
	_, err = tbl.ValueTarget()
	assert.Error(t, err)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(irisCSV), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "sepal_length,sepal_width,species\n5.1,3.5,setosa\n"))

	again, err := ReadCSV(&buf, "species")
	require.NoError(t, err)
	assert.Equal(t, tbl.Target, again.Target)
	assert.Equal(t, tbl.Features.RawMatrix().Data, again.Features.RawMatrix().Data)
}

func TestSplit(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(irisCSV), "")
	require.NoError(t, err)

	train, test, err := tbl.Split(0.4, 42)
	require.NoError(t, err)
	assert.Equal(t, 2, test.Rows())
	assert.Equal(t, 3, train.Rows())
	assert.Equal(t, tbl.FeatureNames, train.FeatureNames)

	// Every row ends up on exactly one side.
	seen := map[float64]int{}
	for _, part := range []*Table{train, test} {
		for i := 0; i < part.Rows(); i++ {
			seen[part.Features.At(i, 0)]++
		}
	}
	assert.Len(t, seen, 5)

	// Same seed, same split.
	train2, test2, err := tbl.Split(0.4, 42)
	require.NoError(t, err)
	assert.Equal(t, train.Target, train2.Target)
	assert.Equal(t, test.Features.RawMatrix().Data, test2.Features.RawMatrix().Data)

	_, _, err = tbl.Split(0, 1)
	assert.Error(t, err)
	_, _, err = tbl.Split(1, 1)
	assert.Error(t, err)

	// Tiny ratios still leave one test row.
	_, test, err = tbl.Split(0.01, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, test.Rows())
}

func TestSelect(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b,c,y\n1,2,3,p\n4,5,6,q\n"), "y")
	require.NoError(t, err)

	X, err := tbl.Select([]string{"c", "a"})
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 6.0, X.At(1, 0))
	assert.Equal(t, 4.0, X.At(1, 1))

	_, err = tbl.Select([]string{"z"})
	assert.Error(t, err)
}

func TestReadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iris.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE flowers (petal_length REAL, petal_width INTEGER, species TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO flowers VALUES (1.4, 0, 'setosa'), (4.7, 1, 'versicolor'), (6.0, 2, 'virginica')`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE broken (x TEXT, y TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO broken VALUES ('abc', 'p')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tbl, err := ReadSQLite(context.Background(), path, "flowers", "species")
	require.NoError(t, err)
	assert.Equal(t, []string{"petal_length", "petal_width"}, tbl.FeatureNames)
	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, tbl.Target)
	assert.Equal(t, 4.7, tbl.Features.At(1, 0))
	assert.Equal(t, 2.0, tbl.Features.At(2, 1))

	_, err = ReadSQLite(context.Background(), path, "broken", "")
	var invalid *errors.InvalidInputError
	assert.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %v", err)

	_, err = ReadSQLite(context.Background(), path, "missing", "")
	assert.Error(t, err)

	_, err = ReadSQLite(context.Background(), path, "", "")
	assert.Error(t, err)
}
