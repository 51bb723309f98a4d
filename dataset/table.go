// Package dataset loads and writes the tabular data a tree is grown from:
// numeric feature columns plus one target column.
package dataset

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Table is a rectangular numeric feature table with an aligned target
// column. Target is nil for tables read without a target.
type Table struct {
	FeatureNames []string
	Features     *mat.Dense
	TargetName   string
	Target       []string
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	if t.Features == nil {
		return 0
	}
	r, _ := t.Features.Dims()
	return r
}

// ClassTarget builds a classification target from the target column.
func (t *Table) ClassTarget() (model.Target, error) {
	if t.Target == nil {
		return model.Target{}, errors.NewInvalidInputError("Table.ClassTarget", "table has no target column")
	}
	return model.NewClassTarget(t.Target), nil
}

// ValueTarget parses the target column as real values.
func (t *Table) ValueTarget() (model.Target, error) {
	const op = "Table.ValueTarget"
	if t.Target == nil {
		return model.Target{}, errors.NewInvalidInputError(op, "table has no target column")
	}
	values := make([]float64, len(t.Target))
	for i, s := range t.Target {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Target{}, errors.NewInvalidInputErrorf(op, "row %d: target %q is not a number", i, s)
		}
		values[i] = v
	}
	return model.NewValueTarget(values), nil
}

// Select returns the feature columns with the given names, in that order.
func (t *Table) Select(names []string) (*mat.Dense, error) {
	index := make(map[string]int, len(t.FeatureNames))
	for j, n := range t.FeatureNames {
		index[n] = j
	}
	r := t.Rows()
	if r == 0 || len(names) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "select feature columns")
	}
	out := mat.NewDense(r, len(names), nil)
	for k, n := range names {
		j, ok := index[n]
		if !ok {
			return nil, errors.NewInvalidInputErrorf("Table.Select", "no feature column %q", n)
		}
		out.SetCol(k, mat.Col(nil, j, t.Features))
	}
	return out, nil
}

// Split shuffles the rows with the given seed and returns a train and a test
// table. The test table receives round(rows*testRatio) rows, at least one,
// and the train table at least one.
func (t *Table) Split(testRatio float64, seed int64) (train, test *Table, err error) {
	const op = "Table.Split"
	if !(testRatio > 0 && testRatio < 1) {
		return nil, nil, errors.NewInvalidInputErrorf(op, "test ratio must be in (0, 1), got %v", testRatio)
	}
	n := t.Rows()
	if n < 2 {
		return nil, nil, errors.NewInvalidInputErrorf(op, "need at least 2 rows to split, got %d", n)
	}

	nTest := int(math.Round(float64(n) * testRatio))
	if nTest < 1 {
		nTest = 1
	}
	if nTest > n-1 {
		nTest = n - 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	test = t.subset(perm[:nTest])
	train = t.subset(perm[nTest:])

	log.GetLoggerWithName("dataset").Debug("Table split",
		log.SamplesKey, n,
		"train", train.Rows(),
		"test", test.Rows(),
	)
	return train, test, nil
}

func (t *Table) subset(rows []int) *Table {
	_, c := t.Features.Dims()
	out := &Table{
		FeatureNames: append([]string(nil), t.FeatureNames...),
		Features:     mat.NewDense(len(rows), c, nil),
		TargetName:   t.TargetName,
	}
	if t.Target != nil {
		out.Target = make([]string, len(rows))
	}
	for i, r := range rows {
		out.Features.SetRow(i, mat.Row(nil, r, t.Features))
		if t.Target != nil {
			out.Target[i] = t.Target[r]
		}
	}
	return out
}
