package matrix

import (
	"math"
	"testing"

	"edakit/adapters/frame"
	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	"edakit/internal/testkit"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func newBuilder() *Builder {
	return NewBuilder(internal.NewLogger(internal.LogLevelError))
}

func withMethod(method stats.MatrixMethod) Options {
	opts := DefaultOptions()
	opts.Method = method
	return opts
}

func TestBuild_CorrelationMatricesAreSymmetricWithUnitDiagonal(t *testing.T) {
	df := testkit.NumericFrame(7, 60)
	columns := []string{"height", "weight", "shuffled"}

	methods := []stats.MatrixMethod{
		stats.MatrixPearson,
		stats.MatrixSpearman,
		stats.MatrixKendall,
		stats.MatrixPointBiserial,
	}
	for _, method := range methods {
		t.Run(method.String(), func(t *testing.T) {
			m, err := newBuilder().Build(df, columns, withMethod(method))
			require.NoError(t, err)
			require.Equal(t, 3, m.Size())

			for i := 0; i < 3; i++ {
				assert.InDelta(t, 1.0, m.At(i, i), 1e-12)
				for j := 0; j < 3; j++ {
					assert.InDelta(t, m.At(i, j), m.At(j, i), 1e-12)
					assert.True(t, m.At(i, j) >= -1 && m.At(i, j) <= 1)
				}
			}
		})
	}
}

func TestBuild_FollowsColumnOrder(t *testing.T) {
	df := testkit.NumericFrame(7, 60)

	ab, err := newBuilder().Build(df, []string{"height", "weight"}, DefaultOptions())
	require.NoError(t, err)
	ba, err := newBuilder().Build(df, []string{"weight", "height"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"weight", "height"}, ba.Columns)
	assert.InDelta(t, ab.At(0, 1), ba.At(1, 0), 1e-12)
	assert.Greater(t, ab.At(0, 1), 0.7)
}

func TestBuild_CramersV(t *testing.T) {
	df := testkit.CategoricalFrame(200)

	m, err := newBuilder().Build(df, []string{"group", "segment", "region"}, withMethod(stats.MatrixCramersV))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		// two categories per column, so the Yates correction keeps the diagonal just below one
		assert.InDelta(t, 1.0, m.At(i, i), 0.02)
	}
	assert.InDelta(t, m.At(0, 1), m.At(1, 0), 1e-12)
	assert.Greater(t, m.At(0, 1), 0.95)
	assert.InDelta(t, 0.0, m.At(0, 2), 1e-9)
	assert.Equal(t, "cramersv test's coefficient", m.Title())
}

func TestBuild_CramersVRejectsContinuousColumn(t *testing.T) {
	df := testkit.CategoricalFrame(200)

	_, err := newBuilder().Build(df, []string{"group", "score"}, withMethod(stats.MatrixCramersV))
	assert.ErrorIs(t, err, core.ErrNotCategorical)
}

func TestBuild_CramersVRejectsSmallScaleFloats(t *testing.T) {
	// distinct values that only differ past the sixth decimal
	tiny := make([]float64, 200)
	for i := range tiny {
		tiny[i] = float64(i) * 1e-8
	}
	df := testkit.CategoricalFrame(200).Mutate(series.New(tiny, series.Float, "tiny"))
	require.NoError(t, df.Err)

	_, err := newBuilder().Build(df, []string{"group", "tiny"}, withMethod(stats.MatrixCramersV))
	assert.ErrorIs(t, err, core.ErrNotCategorical)
}

func TestBuild_CategoricalThreshold(t *testing.T) {
	// 4 distinct labels over 20 rows has ratio 0.2
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = string(rune('a' + i%4))
	}
	df := dataframe.New(
		series.New(labels, series.String, "label"),
		series.New(labels, series.String, "copy"),
	)

	opts := withMethod(stats.MatrixCramersV)
	_, err := newBuilder().Build(df, []string{"label", "copy"}, opts)
	assert.ErrorIs(t, err, core.ErrNotCategorical)

	opts.CategoricalThreshold = 0.25
	m, err := newBuilder().Build(df, []string{"label", "copy"}, opts)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12)
}

func TestBuild_Preconditions(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{1, 2, math.NaN(), 4}, series.Float, "gappy"),
		series.New([]float64{1, 2, 3, 4}, series.Float, "full"),
		series.New([]string{"a", "b", "c", "d"}, series.String, "text"),
	)
	b := newBuilder()

	_, err := b.Build(df, []string{"full", "nope"}, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrColumnNotFound)

	_, err = b.Build(df, []string{"full", "gappy"}, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrMissingValues)

	_, err = b.Build(df, []string{"full", "text"}, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrNonNumericColumn)

	_, err = b.Build(df, []string{"full"}, withMethod("distance"))
	assert.ErrorIs(t, err, core.ErrUnsupportedMethod)
	assert.True(t, core.IsPreconditionError(err))

	_, err = b.Build(df, nil, DefaultOptions())
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestMatrixFrame(t *testing.T) {
	m := &Matrix{
		Columns: []string{"a", "b"},
		Method:  stats.MatrixPearson,
		Values:  mat.NewDense(2, 2, []float64{1, -0.5, -0.5, 1}),
	}

	df := m.Frame()
	require.NoError(t, df.Err)
	assert.Equal(t, []string{frame.LabelColumn, "a", "b"}, df.Names())
	assert.Equal(t, []float64{-0.5, 1}, df.Col("b").Float())
}
