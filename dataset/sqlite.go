package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"gonum.org/v1/gonum/mat"

	_ "modernc.org/sqlite"
)

// ReadSQLite reads every row of table from the SQLite database at path.
// target selects the target column as in ReadCSV; all other columns must
// hold numbers.
func ReadSQLite(ctx context.Context, path, table, target string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %s", path)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	t, err := ReadSQL(ctx, db, table, target)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s from %s", table, path)
	}
	log.GetLoggerWithName("dataset").Debug("Dataset loaded",
		log.SourceKey, path+"#"+table,
		log.SamplesKey, t.Rows(),
		log.FeaturesKey, len(t.FeatureNames),
	)
	return t, nil
}

// ReadSQL reads every row of table through an open database handle.
func ReadSQL(ctx context.Context, db *sql.DB, table, target string) (*Table, error) {
	const op = "dataset.ReadSQL"
	if strings.TrimSpace(table) == "" {
		return nil, errors.NewInvalidInputError(op, "table name is required")
	}

	query := fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(table, `"`, `""`))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "reading columns")
	}
	targetCol, err := targetColumn(op, columns, target)
	if err != nil {
		return nil, err
	}

	t := &Table{}
	for j, name := range columns {
		if j != targetCol {
			t.FeatureNames = append(t.FeatureNames, name)
		}
	}
	if targetCol >= 0 {
		t.TargetName = columns[targetCol]
		t.Target = []string{}
	}
	if len(t.FeatureNames) == 0 {
		return nil, errors.NewInvalidInputError(op, "no feature columns")
	}

	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var data []float64
	for row := 0; rows.Next(); row++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "scanning row %d", row)
		}
		for j, v := range values {
			if j == targetCol {
				t.Target = append(t.Target, sqlString(v))
				continue
			}
			f, ok := sqlFloat(v)
			if !ok {
				return nil, errors.NewInvalidInputErrorf(op, "row %d, column %q: %v is not a number", row, columns[j], v)
			}
			data = append(data, f)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating rows")
	}
	if len(data) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "table %s", table)
	}
	t.Features = mat.NewDense(len(data)/len(t.FeatureNames), len(t.FeatureNames), data)
	return t, nil
}

func sqlFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func sqlString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
