package normality

import (
	"math"
	"sort"

	"edakit/domain/core"
	"edakit/domain/stats"
	apperrors "edakit/internal/errors"

	mstats "github.com/montanaflynn/stats"
)

// The critical-value scale turns negative below four observations
const andersonMinN = 4

var (
	// Critical values of A² for the normal case, before the small-sample adjustment
	andersonBaseCritical = []float64{0.576, 0.656, 0.787, 0.918, 1.092}
	// Significance levels in percent matching andersonBaseCritical
	andersonSignificance = []float64{15, 10, 5, 2.5, 1}
)

// Anderson runs the Anderson-Darling test for normality with mean and
// variance estimated from the sample. Rejection is decided against the
// critical value at a fixed significance level, not through a p-value.
func (t *Tester) Anderson(x []float64) (stats.AndersonResult, error) {
	if err := checkSample("anderson", x, andersonMinN); err != nil {
		return stats.AndersonResult{}, err
	}

	mean, err := mstats.Mean(x)
	if err != nil {
		return stats.AndersonResult{}, err
	}
	sd, err := mstats.StandardDeviationSample(x)
	if err != nil {
		return stats.AndersonResult{}, err
	}
	if sd == 0 {
		return stats.AndersonResult{}, apperrors.Degenerate(core.ErrDegenerateSample, "anderson: zero variance")
	}

	w := make([]float64, len(x))
	for i, v := range x {
		w[i] = (v - mean) / sd
	}
	sort.Float64s(w)

	n := len(w)
	nf := float64(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		logCDF := logNormalCDF(w[i])
		logSF := logNormalCDF(-w[n-1-i])
		sum += (2*float64(i+1) - 1) / nf * (logCDF + logSF)
	}
	a2 := -nf - sum

	scale := 1 + 4/nf - 25/(nf*nf)
	critical := make([]float64, len(andersonBaseCritical))
	for i, c := range andersonBaseCritical {
		critical[i] = math.Round(c/scale*1000) / 1000
	}

	t.logger.Debug("n=%d A2=%.4f critical=%v", n, a2, critical)
	return stats.AndersonResult{
		Statistic:          a2,
		CriticalValues:     critical,
		SignificanceLevels: append([]float64(nil), andersonSignificance...),
	}, nil
}

// Below this z the erfc form loses precision and the tail series takes over
const logCDFSeriesBelow = -30

// logNormalCDF is log Φ(z), finite far into the lower tail where Φ(z)
// underflows
func logNormalCDF(z float64) float64 {
	switch {
	case z < logCDFSeriesBelow:
		// Φ(z) ~ φ(z)/(-z) * (1 - 1/z² + 3/z⁴ - 15/z⁶ + 105/z⁸)
		z2 := z * z
		series := 1 - 1/z2 + 3/(z2*z2) - 15/(z2*z2*z2) + 105/(z2*z2*z2*z2)
		return -z2/2 - math.Log(-z) - 0.5*math.Log(2*math.Pi) + math.Log(series)
	case z < 0:
		return math.Log(0.5 * math.Erfc(-z/math.Sqrt2))
	default:
		return math.Log1p(-0.5 * math.Erfc(z/math.Sqrt2))
	}
}

// alphaTolerance absorbs float noise in alpha*100, e.g. 0.15*100 = 15.000000000000002
const alphaTolerance = 1e-9

// CriticalValueAt looks up the critical value for alpha. Alpha must match one
// of the tabulated significance levels once scaled to a percentage.
func CriticalValueAt(res stats.AndersonResult, alpha float64) (float64, error) {
	pct := alpha * 100
	for i, level := range res.SignificanceLevels {
		if math.Abs(level-pct) < alphaTolerance {
			return res.CriticalValues[i], nil
		}
	}
	return 0, apperrors.Precondition(core.ErrUnsupportedAlpha, "alpha must be in %v for test=anderson, got %v", SupportedAlphas(), alpha)
}

// SupportedAlphas lists the alphas accepted by the Anderson-Darling test
func SupportedAlphas() []float64 {
	alphas := make([]float64, len(andersonSignificance))
	for i, level := range andersonSignificance {
		alphas[i] = level / 100
	}
	return alphas
}
