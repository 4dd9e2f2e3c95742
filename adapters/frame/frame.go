// Package frame bridges gota DataFrames and the sample types the testers
// consume: column lookup, missing-value and cardinality checks, and the
// DataFrame views of contingency tables and coefficient matrices.
package frame

import (
	"fmt"
	"strconv"

	"edakit/domain/core"
	"edakit/domain/stats"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// Column returns the named column of df
func Column(df dataframe.DataFrame, name string) (series.Series, error) {
	for _, n := range df.Names() {
		if n == name {
			s := df.Col(name)
			if s.Err != nil {
				return series.Series{}, fmt.Errorf("column %q: %w", name, s.Err)
			}
			return s, nil
		}
	}
	return series.Series{}, fmt.Errorf("%w: %q", core.ErrColumnNotFound, name)
}

// MissingCount counts the NA entries of s. Empty strings are NA for
// string columns.
func MissingCount(s series.Series) int {
	count := 0
	nan := s.IsNaN()
	var records []string
	if s.Type() == series.String {
		records = s.Records()
	}
	for i, isNaN := range nan {
		if isNaN || (records != nil && records[i] == "") {
			count++
		}
	}
	return count
}

// IsNumeric reports whether s holds numbers (float, int or bool)
func IsNumeric(s series.Series) bool {
	switch s.Type() {
	case series.Float, series.Int, series.Bool:
		return true
	}
	return false
}

// CardinalityRatio is the number of distinct non-null values over the number
// of non-null values. An all-null column has ratio 0.
func CardinalityRatio(s series.Series) float64 {
	nan := s.IsNaN()
	records := labels(s)
	distinct := make(map[string]struct{})
	nonNull := 0
	for i, r := range records {
		if nan[i] || (s.Type() == series.String && r == "") {
			continue
		}
		nonNull++
		distinct[r] = struct{}{}
	}
	if nonNull == 0 {
		return 0
	}
	return float64(len(distinct)) / float64(nonNull)
}

// Floats returns a numeric column as a named sample
func Floats(s series.Series) (stats.NamedSample, error) {
	if !IsNumeric(s) {
		return stats.NamedSample{}, fmt.Errorf("%w: %q has type %s", core.ErrNonNumericColumn, s.Name, s.Type())
	}
	return stats.Named(s.Name, s.Float()), nil
}

// Categories returns any column as a categorical sample of its string records
func Categories(s series.Series) stats.CategoricalSample {
	values := labels(s)
	nan := s.IsNaN()
	for i := range values {
		if nan[i] {
			values[i] = ""
		}
	}
	return stats.Categorical(s.Name, values)
}

// labels returns the records of s. Floats keep their shortest exact
// representation since gota records round them to six decimals.
func labels(s series.Series) []string {
	if s.Type() != series.Float {
		return s.Records()
	}
	values := s.Float()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// CrossTabFrame lays out a contingency table as a DataFrame: a leading column
// of row labels, named after the row variable, then one int column per
// column category.
func CrossTabFrame(table *stats.ContingencyTable) dataframe.DataFrame {
	rows, cols := table.Dims()
	columns := make([]series.Series, 0, cols+1)
	columns = append(columns, series.New(table.RowLabels, series.String, labelName(table.RowName)))
	for j := 0; j < cols; j++ {
		counts := make([]int, rows)
		for i := 0; i < rows; i++ {
			counts[i] = int(table.Counts.At(i, j))
		}
		columns = append(columns, series.New(counts, series.Int, table.ColLabels[j]))
	}
	return dataframe.New(columns...)
}

// LabelColumn names the leading label column of a SquareFrame
const LabelColumn = "column"

// SquareFrame lays out a labelled square matrix as a DataFrame with a leading
// label column followed by one float column per label.
func SquareFrame(labels []string, values *mat.Dense) dataframe.DataFrame {
	n, _ := values.Dims()
	columns := make([]series.Series, 0, n+1)
	columns = append(columns, series.New(labels, series.String, LabelColumn))
	for j := 0; j < n; j++ {
		columns = append(columns, series.New(mat.Col(nil, j, values), series.Float, labels[j]))
	}
	return dataframe.New(columns...)
}

func labelName(name string) string {
	if name == "" {
		return "row_0"
	}
	return name
}
