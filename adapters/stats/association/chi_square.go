// Package association measures the association between two categorical
// variables: a chi-square test of independence on their contingency table,
// and Cramér's V as its effect size.
package association

import (
	"math"

	"edakit/domain/stats"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareResult is the outcome of a chi-square test of independence
type ChiSquareResult struct {
	Statistic float64
	PValue    float64
	DOF       int
	Expected  *mat.Dense
	Corrected bool // Yates' continuity correction was applied
}

// ChiSquare tests independence of the table's row and column variables.
// Expected counts are rowTotal*colTotal/n. With one degree of freedom the
// observed counts are first moved up to 0.5 towards the expected ones
// (Yates' correction). A table with zero degrees of freedom yields χ²=0, p=1.
func ChiSquare(table *stats.ContingencyTable) ChiSquareResult {
	rows, cols := table.Dims()
	total := table.Total()

	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := table.Counts.At(i, j)
			rowTotals[i] += v
			colTotals[j] += v
		}
	}

	expected := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected.Set(i, j, rowTotals[i]*colTotals[j]/total)
		}
	}

	dof := (rows - 1) * (cols - 1)
	if dof == 0 {
		return ChiSquareResult{Statistic: 0, PValue: 1, DOF: 0, Expected: expected}
	}

	corrected := dof == 1
	chiSq := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			observed := table.Counts.At(i, j)
			exp := expected.At(i, j)
			if corrected {
				diff := exp - observed
				observed += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			chiSq += (observed - exp) * (observed - exp) / exp
		}
	}

	p := distuv.ChiSquared{K: float64(dof)}.Survival(chiSq)
	return ChiSquareResult{
		Statistic: chiSq,
		PValue:    p,
		DOF:       dof,
		Expected:  expected,
		Corrected: corrected,
	}
}
