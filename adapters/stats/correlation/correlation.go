// Package correlation implements the bivariate correlation measures behind
// Analyzer.Correlation. H0 for every measure is that the two variables are
// not correlated; p-values are two-sided.
package correlation

import (
	"fmt"
	"math"

	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
)

// measure computes a correlation coefficient and its p-value
type measure func(t *Tester, x, y []float64) (stats.TestResult, error)

// measures binds each correlation method to its implementation
var measures = map[stats.CorrelationMethod]measure{
	stats.CorrelationPearson:       (*Tester).Pearson,
	stats.CorrelationSpearman:      (*Tester).Spearman,
	stats.CorrelationKendall:       (*Tester).Kendall,
	stats.CorrelationPointBiserial: (*Tester).PointBiserial,
}

// Tester runs correlation tests
type Tester struct {
	logger *internal.Logger
}

// NewTester creates a tester logging through logger (DefaultLogger when nil)
func NewTester(logger *internal.Logger) *Tester {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Tester{logger: logger.Named("Correlation")}
}

// Run computes the correlation selected by method
func (t *Tester) Run(method stats.CorrelationMethod, x, y []float64) (stats.TestResult, error) {
	m, ok := measures[method]
	if !ok {
		return stats.TestResult{}, fmt.Errorf("%w: correlation %q", core.ErrUnsupportedMethod, method)
	}
	return m(t, x, y)
}

// checkPair enforces equal lengths and at least two observations
func checkPair(test string, x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%s: %w", test, core.NewLengthMismatchError(len(x), len(y)))
	}
	if len(x) < 2 {
		return core.NewInsufficientDataError(test, 2, len(x))
	}
	return nil
}

// nanResult is returned when missing values propagate through a measure
var nanResult = stats.TestResult{Statistic: math.NaN(), PValue: math.NaN()}

func hasNaN(xs ...[]float64) bool {
	for _, x := range xs {
		if stats.Sample(x).HasMissing() {
			return true
		}
	}
	return false
}

// clampUnit keeps a coefficient inside [-1, 1] against rounding
func clampUnit(r float64) float64 {
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}
