package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// NoTarget tells ReadCSV that every column is a feature.
const NoTarget = "-"

// ReadCSV reads a table from CSV content.
//
// The first row holds the column names. target names the target column; an
// empty target selects the last column and NoTarget reads features only.
// Every other column must hold numbers.
func ReadCSV(r io.Reader, target string) (*Table, error) {
	const op = "dataset.ReadCSV"
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(errors.ErrEmptyData, "reading header")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	targetCol, err := targetColumn(op, header, target)
	if err != nil {
		return nil, err
	}

	t := &Table{}
	for j, name := range header {
		if j != targetCol {
			t.FeatureNames = append(t.FeatureNames, name)
		}
	}
	if targetCol >= 0 {
		t.TargetName = header[targetCol]
		t.Target = []string{}
	}
	if len(t.FeatureNames) == 0 {
		return nil, errors.NewInvalidInputError(op, "no feature columns")
	}

	var data []float64
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading body")
		}
		for j, cell := range record {
			cell = strings.TrimSpace(cell)
			if j == targetCol {
				t.Target = append(t.Target, cell)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.NewInvalidInputErrorf(op, "line %d, column %q: %q is not a number", line, header[j], cell)
			}
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "reading body")
	}
	t.Features = mat.NewDense(len(data)/len(t.FeatureNames), len(t.FeatureNames), data)
	return t, nil
}

// ReadCSVFile reads a table from the CSV file at path ("" or "-" for stdin).
func ReadCSVFile(path, target string) (*Table, error) {
	f := os.Stdin
	if path != "" && path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
	}
	t, err := ReadCSV(f, target)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	log.GetLoggerWithName("dataset").Debug("Dataset loaded",
		log.SourceKey, path,
		log.SamplesKey, t.Rows(),
		log.FeaturesKey, len(t.FeatureNames),
	)
	return t, nil
}

func targetColumn(op string, header []string, target string) (int, error) {
	switch target {
	case NoTarget:
		return -1, nil
	case "":
		return len(header) - 1, nil
	}
	for j, name := range header {
		if name == target {
			return j, nil
		}
	}
	return 0, errors.NewInvalidInputErrorf(op, "no column named %q", target)
}

// WriteCSV writes the table with a header row. The target column, if any,
// comes last.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string(nil), t.FeatureNames...)
	if t.Target != nil {
		header = append(header, t.TargetName)
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}

	_, c := t.Features.Dims()
	record := make([]string, len(header))
	for i := 0; i < t.Rows(); i++ {
		for j := 0; j < c; j++ {
			record[j] = strconv.FormatFloat(t.Features.At(i, j), 'g', -1, 64)
		}
		if t.Target != nil {
			record[c] = t.Target[i]
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "writing CSV row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "flushing CSV")
	}
	return nil
}
