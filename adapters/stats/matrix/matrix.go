// Package matrix builds symmetric coefficient matrices by running a pairwise
// test over every ordered pair of DataFrame columns.
package matrix

import (
	"fmt"

	"edakit/adapters/frame"
	"edakit/adapters/stats/association"
	"edakit/adapters/stats/correlation"
	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	apperrors "edakit/internal/errors"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// Matrix holds one coefficient per ordered column pair. Values[i, j] is the
// statistic of Columns[i] against Columns[j].
type Matrix struct {
	Columns []string
	Method  stats.MatrixMethod
	Values  *mat.Dense
}

// Size returns the number of columns
func (m *Matrix) Size() int {
	return len(m.Columns)
}

// At returns the coefficient of columns i and j
func (m *Matrix) At(i, j int) float64 {
	return m.Values.At(i, j)
}

// Title is the heading used by the heatmap and reports
func (m *Matrix) Title() string {
	return fmt.Sprintf("%s test's coefficient", m.Method)
}

// Frame returns the matrix as a DataFrame with a leading label column
func (m *Matrix) Frame() dataframe.DataFrame {
	return frame.SquareFrame(m.Columns, m.Values)
}

// Options tune a matrix build
type Options struct {
	Method               stats.MatrixMethod
	Alpha                float64
	CategoricalThreshold float64
}

// DefaultOptions returns pearson at alpha 0.05 with a 0.05 categorical threshold
func DefaultOptions() Options {
	return Options{
		Method:               stats.MatrixPearson,
		Alpha:                0.05,
		CategoricalThreshold: 0.05,
	}
}

// pairFunc computes the coefficient of columns i and j
type pairFunc func(i, j int) (float64, error)

// Builder computes coefficient matrices
type Builder struct {
	correlation *correlation.Tester
	association *association.Tester
	logger      *internal.Logger
}

// NewBuilder creates a builder logging through logger (DefaultLogger when nil)
func NewBuilder(logger *internal.Logger) *Builder {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Builder{
		correlation: correlation.NewTester(logger),
		association: association.NewTester(logger),
		logger:      logger.Named("Matrix"),
	}
}

// Build validates the selected columns of df and fills the matrix serially.
// Every column must exist and be free of missing values. cramersv also needs
// every column to look categorical under opts.CategoricalThreshold; the
// correlation methods need numeric columns.
func (b *Builder) Build(df dataframe.DataFrame, columns []string, opts Options) (*Matrix, error) {
	if !opts.Method.Valid() {
		return nil, apperrors.Precondition(core.ErrUnsupportedMethod, "matrix: method %q", opts.Method)
	}
	if err := stats.ValidateAlpha(opts.Alpha); err != nil {
		return nil, apperrors.Precondition(err, "matrix: invalid alpha")
	}
	if len(columns) == 0 {
		return nil, core.NewInsufficientDataError("matrix", 1, 0)
	}

	selected := make([]series.Series, len(columns))
	for i, name := range columns {
		s, err := frame.Column(df, name)
		if err != nil {
			return nil, apperrors.Precondition(err, "matrix: column lookup")
		}
		if missing := frame.MissingCount(s); missing > 0 {
			return nil, apperrors.Precondition(core.ErrMissingValues, "matrix: column %q has %d missing values", name, missing)
		}
		selected[i] = s
	}

	pair, err := b.pairFunc(selected, opts)
	if err != nil {
		return nil, err
	}

	k := len(columns)
	values := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v, err := pair(i, j)
			if err != nil {
				return nil, fmt.Errorf("matrix: %s of %q and %q: %w", opts.Method, columns[i], columns[j], err)
			}
			values.Set(i, j, v)
		}
	}

	b.logger.Debug("built %dx%d %s matrix", k, k, opts.Method)
	return &Matrix{
		Columns: append([]string(nil), columns...),
		Method:  opts.Method,
		Values:  values,
	}, nil
}

// pairFunc checks the columns once for the chosen method and returns the
// per-pair computation
func (b *Builder) pairFunc(selected []series.Series, opts Options) (pairFunc, error) {
	if opts.Method == stats.MatrixCramersV {
		samples := make([]stats.CategoricalSample, len(selected))
		for i, s := range selected {
			if ratio := frame.CardinalityRatio(s); ratio >= opts.CategoricalThreshold {
				return nil, apperrors.Precondition(core.ErrNotCategorical,
					"matrix: column %q has cardinality ratio %.3f, threshold is %.3f", s.Name, ratio, opts.CategoricalThreshold)
			}
			samples[i] = frame.Categories(s)
		}
		return func(i, j int) (float64, error) {
			res, err := b.association.CramersV(samples[i], samples[j], opts.Alpha)
			return res.V, err
		}, nil
	}

	method, _ := opts.Method.Correlation()
	samples := make([]stats.NamedSample, len(selected))
	for i, s := range selected {
		sample, err := frame.Floats(s)
		if err != nil {
			return nil, apperrors.Precondition(err, "matrix: %s needs numeric columns", opts.Method)
		}
		samples[i] = sample
	}
	return func(i, j int) (float64, error) {
		res, err := b.correlation.Run(method, samples[i].Values, samples[j].Values)
		return res.Statistic, err
	}, nil
}
