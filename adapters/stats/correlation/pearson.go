package correlation

import (
	"math"

	"edakit/domain/stats"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson computes the product-moment correlation r. The p-value comes from
// the Student t distribution with n-2 degrees of freedom.
func (t *Tester) Pearson(x, y []float64) (stats.TestResult, error) {
	if err := checkPair("pearson", x, y); err != nil {
		return stats.TestResult{}, err
	}
	if hasNaN(x, y) {
		return nanResult, nil
	}

	r := clampUnit(stat.Correlation(x, y, nil))
	p := correlationPValue(r, len(x))

	t.logger.Debug("pearson n=%d r=%.4f p=%.4g", len(x), r, p)
	return stats.TestResult{Statistic: r, PValue: p}, nil
}

// PointBiserial correlates a dichotomous variable x with a continuous y.
// It is numerically identical to Pearson.
func (t *Tester) PointBiserial(x, y []float64) (stats.TestResult, error) {
	if err := checkPair("pointbiserial", x, y); err != nil {
		return stats.TestResult{}, err
	}
	if distinct := distinctCount(x); distinct != 2 {
		t.logger.Warn("pointbiserial: first variable has %d distinct values, expected 2", distinct)
	}
	return t.Pearson(x, y)
}

// correlationPValue is the two-sided p-value of r under H0: rho = 0
func correlationPValue(r float64, n int) float64 {
	if math.IsNaN(r) {
		return math.NaN()
	}
	if n == 2 {
		return 1
	}
	if math.Abs(r) == 1 {
		return 0
	}
	df := float64(n - 2)
	tStat := r * math.Sqrt(df/(1-r*r))
	return 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Survival(math.Abs(tStat))
}

func distinctCount(x []float64) int {
	seen := make(map[float64]struct{}, 2)
	for _, v := range x {
		seen[v] = struct{}{}
	}
	return len(seen)
}
