package normality

import (
	"math"
	"sort"

	"edakit/domain/core"
	"edakit/domain/stats"
	apperrors "edakit/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	shapiroMinN = 3
	// Above this size the p-value approximation is no longer validated
	shapiroReliableMaxN = 5000
	// Ranges below this are treated as all-identical data
	shapiroSmallRange = 1e-19
)

// Royston (1995) polynomial coefficients, algorithm AS R94
var (
	swG  = []float64{-2.273, 0.459}
	swC1 = []float64{0.0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	swC2 = []float64{0.0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
)

// Shapiro runs the Shapiro-Wilk W test. Samples above 5000 observations are
// still computed but the p-value is not reliable there.
func (t *Tester) Shapiro(x []float64) (stats.TestResult, error) {
	if err := checkSample("shapiro", x, shapiroMinN); err != nil {
		return stats.TestResult{}, err
	}
	if len(x) > shapiroReliableMaxN {
		t.logger.Warn("shapiro: p-value may not be accurate for N > %d (got %d)", shapiroReliableMaxN, len(x))
	}
	if sampleRange(x) < shapiroSmallRange {
		return stats.TestResult{}, apperrors.Degenerate(core.ErrDegenerateSample, "shapiro: data range is zero")
	}

	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	n := len(sorted)
	a := shapiroCoefficients(n)
	w := shapiroW(sorted, a)
	p := shapiroPValue(w, n)

	t.logger.Debug("n=%d W=%.5f p=%.4g", n, w, p)
	return stats.TestResult{Statistic: w, PValue: p}, nil
}

// shapiroCoefficients returns the n/2 positive weights a_i applied to
// x_(n+1-i) - x_(i). The full antisymmetric vector has unit norm.
func shapiroCoefficients(n int) []float64 {
	half := n / 2
	a := make([]float64, half)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	an := float64(n)
	m := make([]float64, half)
	summ2 := 0.0
	for i := 1; i <= half; i++ {
		m[i-1] = distuv.UnitNormal.Quantile((float64(i) - 0.375) / (an + 0.25))
		summ2 += m[i-1] * m[i-1]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	a1 := poly(swC1, rsn) - m[0]/ssumm2
	first := 1
	var fac float64
	if n > 5 {
		first = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := first; i < half; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

// shapiroW is the squared correlation between the ordered sample and the
// antisymmetric coefficient vector
func shapiroW(sorted, a []float64) float64 {
	n := len(sorted)
	mean := 0.0
	for _, v := range sorted {
		mean += v
	}
	mean /= float64(n)

	num, norm, ss := 0.0, 0.0, 0.0
	for i, ai := range a {
		num += ai * (sorted[n-1-i] - sorted[i])
		norm += 2 * ai * ai
	}
	for _, v := range sorted {
		d := v - mean
		ss += d * d
	}

	w := num * num / (norm * ss)
	if w > 1 {
		w = 1
	}
	return w
}

// shapiroPValue applies Royston's normalising transformation of W
func shapiroPValue(w float64, n int) float64 {
	if n == 3 {
		const pi6, stqr = 6 / math.Pi, math.Pi / 3
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		if p < 0 {
			p = 0
		}
		return math.Min(p, 1)
	}

	an := float64(n)
	y := math.Log(1 - w)
	var m, s float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		xx := math.Log(an)
		m = poly(swC5, xx)
		s = math.Exp(poly(swC6, xx))
	}
	return distuv.Normal{Mu: m, Sigma: s}.Survival(y)
}
