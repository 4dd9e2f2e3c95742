// Package normality implements the normality tests behind Analyzer.NormalityTest:
// D'Agostino-Pearson K², Shapiro-Wilk W and Anderson-Darling A².
// H0 for every test is that the sample was drawn from a normal population.
package normality

import (
	"fmt"
	"math"

	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	apperrors "edakit/internal/errors"
)

// pValueTest is a normality test that yields a statistic and a p-value
type pValueTest func(t *Tester, x []float64) (stats.TestResult, error)

// pValueTests binds each p-value producing method to its implementation.
// Anderson-Darling is handled separately because it yields critical values.
var pValueTests = map[stats.NormalityMethod]pValueTest{
	stats.NormalityDAgostino: (*Tester).DAgostino,
	stats.NormalityShapiro:   (*Tester).Shapiro,
}

// Tester runs normality tests
type Tester struct {
	logger *internal.Logger
}

// NewTester creates a tester logging through logger (DefaultLogger when nil)
func NewTester(logger *internal.Logger) *Tester {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Tester{logger: logger.Named("Normality")}
}

// Run executes a p-value based normality test. Use Anderson for the
// Anderson-Darling variant.
func (t *Tester) Run(method stats.NormalityMethod, x []float64) (stats.TestResult, error) {
	test, ok := pValueTests[method]
	if !ok {
		return stats.TestResult{}, fmt.Errorf("%w: %q does not produce a p-value", core.ErrUnsupportedMethod, method)
	}
	return test(t, x)
}

// checkSample enforces the no-missing-values precondition and a minimum size
func checkSample(test string, x []float64, minN int) error {
	if missing := stats.Sample(x).MissingCount(); missing > 0 {
		return apperrors.Precondition(core.ErrMissingValues, "%s: input array must contain no NA (%d found)", test, missing)
	}
	if len(x) < minN {
		return core.NewInsufficientDataError(test, minN, len(x))
	}
	return nil
}

// sampleRange returns max - min of x
func sampleRange(x []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range x {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}

// poly evaluates c[0] + c[1]x + c[2]x² + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}
