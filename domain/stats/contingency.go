package stats

import (
	"sort"

	"edakit/domain/core"

	"gonum.org/v1/gonum/mat"
)

// ContingencyTable is the cross-tabulation of two categorical samples.
// Rows follow the first sample's categories, columns the second's, both sorted.
type ContingencyTable struct {
	RowName   string
	ColName   string
	RowLabels []string
	ColLabels []string
	Counts    *mat.Dense
}

// CrossTab counts joint occurrences of the two samples' categories
func CrossTab(a, b CategoricalSample) (*ContingencyTable, error) {
	if len(a.Values) != len(b.Values) {
		return nil, core.NewLengthMismatchError(len(a.Values), len(b.Values))
	}
	if len(a.Values) == 0 {
		return nil, core.NewInsufficientDataError("crosstab", 1, 0)
	}

	rowLabels, rowIndex := categories(a.Values)
	colLabels, colIndex := categories(b.Values)

	counts := mat.NewDense(len(rowLabels), len(colLabels), nil)
	for i := range a.Values {
		r, c := rowIndex[a.Values[i]], colIndex[b.Values[i]]
		counts.Set(r, c, counts.At(r, c)+1)
	}

	return &ContingencyTable{
		RowName:   a.Name,
		ColName:   b.Name,
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Counts:    counts,
	}, nil
}

// categories returns the sorted distinct labels and their positions
func categories(values []string) ([]string, map[string]int) {
	index := make(map[string]int)
	for _, v := range values {
		index[v] = 0
	}
	labels := make([]string, 0, len(index))
	for v := range index {
		labels = append(labels, v)
	}
	sort.Strings(labels)
	for i, v := range labels {
		index[v] = i
	}
	return labels, index
}

// Dims returns the number of row and column categories
func (t *ContingencyTable) Dims() (rows, cols int) {
	return t.Counts.Dims()
}

// Total is the number of observations in the table
func (t *ContingencyTable) Total() float64 {
	return mat.Sum(t.Counts)
}

// MinDOF is min(rows, cols) - 1, the correction dof used by Cramér's V
func (t *ContingencyTable) MinDOF() int {
	rows, cols := t.Dims()
	if rows < cols {
		return rows - 1
	}
	return cols - 1
}
