package association

import (
	"math"
	"strings"
	"testing"

	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	apperrors "edakit/internal/errors"
	"edakit/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTester() *Tester {
	return NewTester(internal.NewLogger(internal.LogLevelError))
}

// expand turns a table of counts into two categorical columns
func expand(counts [][]int) (stats.CategoricalSample, stats.CategoricalSample) {
	var a, b []string
	for i, row := range counts {
		for j, c := range row {
			for k := 0; k < c; k++ {
				a = append(a, string(rune('a'+i)))
				b = append(b, string(rune('x'+j)))
			}
		}
	}
	return stats.Categorical("row", a), stats.Categorical("col", b)
}

func TestChiSquare_ReferenceTable(t *testing.T) {
	a, b := expand([][]int{{10, 10, 20}, {20, 20, 20}})
	table, err := stats.CrossTab(a, b)
	require.NoError(t, err)

	res := ChiSquare(table)
	assert.Equal(t, 2, res.DOF)
	assert.False(t, res.Corrected)
	assert.InDelta(t, 2.777778, res.Statistic, 1e-6)
	assert.InDelta(t, 0.249352, res.PValue, 1e-6)
	assert.InDelta(t, 12.0, res.Expected.At(0, 0), 1e-12)
	assert.InDelta(t, 24.0, res.Expected.At(1, 2), 1e-12)
}

func TestChiSquare_YatesCorrectionOnTwoByTwo(t *testing.T) {
	a, b := expand([][]int{{50, 0}, {0, 50}})
	table, err := stats.CrossTab(a, b)
	require.NoError(t, err)

	res := ChiSquare(table)
	assert.True(t, res.Corrected)
	// every cell is 25 away from expectation, 24.5 after correction
	assert.InDelta(t, 4*24.5*24.5/25, res.Statistic, 1e-9)
}

func TestCramersV_PerfectAssociation(t *testing.T) {
	x, y := testkit.PerfectlyAssociated(100)

	res, err := newTester().CramersV(stats.Categorical("x", x), stats.Categorical("y", y), 0.05)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.V, 0.05)
	assert.InDelta(t, 0.98, res.V, 1e-9)
	assert.Less(t, res.PValue, 1e-10)
	assert.Equal(t, stats.EffectSizeLarge, res.EffectSize)
	assert.True(t, res.EffectSize.IsSet())
	assert.Equal(t, 1, res.DOF)
	assert.Equal(t, 1, res.ChiDOF)
	require.NotNil(t, res.Table)
}

func TestCramersV_IndependentCategories(t *testing.T) {
	x, y := testkit.ExactlyIndependent(3, 4, 25)

	res, err := newTester().CramersV(stats.Categorical("x", x), stats.Categorical("y", y), 0.05)
	require.NoError(t, err)

	assert.Greater(t, res.PValue, 0.05)
	assert.InDelta(t, 0.0, res.V, 1e-12)
	assert.Equal(t, stats.EffectSizeUnset, res.EffectSize)
	assert.False(t, res.EffectSize.IsSet())
	assert.Equal(t, 2, res.DOF)
	assert.Equal(t, 6, res.ChiDOF)
}

func TestCramersV_RandomCategoriesUsuallyIndependent(t *testing.T) {
	x := testkit.RandomCategories(5, 2000, 3, "x")
	y := testkit.RandomCategories(6, 2000, 3, "y")

	res, err := newTester().CramersV(stats.Categorical("x", x), stats.Categorical("y", y), 0.05)
	require.NoError(t, err)

	// uniform random labels stay far from a meaningful association
	assert.Less(t, res.V, 0.1)
	assert.True(t, res.PValue >= 0 && res.PValue <= 1)
}

func TestCramersV_EffectSizeBands(t *testing.T) {
	// 2x2 tables with a significant association of decreasing strength
	tests := []struct {
		counts [][]int
		want   stats.EffectSize
	}{
		{[][]int{{90, 10}, {10, 90}}, stats.EffectSizeLarge},
		{[][]int{{70, 30}, {30, 70}}, stats.EffectSizeMedium},
		{[][]int{{600, 400}, {400, 600}}, stats.EffectSizeSmall},
	}

	for _, tt := range tests {
		a, b := expand(tt.counts)
		res, err := newTester().CramersV(a, b, 0.05)
		require.NoError(t, err)
		assert.Less(t, res.PValue, 0.05)
		assert.Equal(t, tt.want, res.EffectSize, "counts %v v=%.3f", tt.counts, res.V)
	}
}

func TestCramersV_DegenerateTable(t *testing.T) {
	a := stats.Categorical("a", []string{"same", "same", "same", "same"})
	b := stats.Categorical("b", []string{"p", "q", "p", "q"})

	res, err := newTester().CramersV(a, b, 0.05)
	assert.ErrorIs(t, err, core.ErrDegenerateTable)
	assert.True(t, core.IsDegenerateError(err))
	assert.False(t, core.IsPreconditionError(err))
	assert.Equal(t, apperrors.CodeDegenerateInput, apperrors.GetCode(err))
	assert.False(t, math.IsNaN(res.V))
}

func TestCramersV_Preconditions(t *testing.T) {
	tester := newTester()

	_, err := tester.CramersV(stats.Categorical("a", []string{"x", ""}), stats.Categorical("b", []string{"p", "q"}), 0.05)
	assert.ErrorIs(t, err, core.ErrMissingValues)
	assert.True(t, strings.Contains(err.Error(), `"a"`))

	_, err = tester.CramersV(stats.Categorical("a", []string{"x", "y"}), stats.Categorical("b", []string{"p"}), 0.05)
	assert.ErrorIs(t, err, core.ErrLengthMismatch)
}
