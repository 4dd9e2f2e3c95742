package normality

import (
	"math"

	"edakit/domain/core"
	"edakit/domain/stats"
	apperrors "edakit/internal/errors"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// dagostinoMinN is the smallest sample the skewness transform accepts
const dagostinoMinN = 8

// DAgostino runs the D'Agostino-Pearson omnibus test. The statistic is
// K² = Zs² + Zk², the squared z-scores of the skewness and kurtosis tests,
// and follows χ²(2) under H0.
func (t *Tester) DAgostino(x []float64) (stats.TestResult, error) {
	if err := checkSample("dagostino", x, dagostinoMinN); err != nil {
		return stats.TestResult{}, err
	}

	m2 := stat.Moment(2, x, nil)
	if m2 == 0 {
		return stats.TestResult{}, apperrors.Degenerate(core.ErrDegenerateSample, "dagostino: zero variance")
	}
	skew := stat.Moment(3, x, nil) / math.Pow(m2, 1.5)
	kurt := stat.Moment(4, x, nil) / (m2 * m2)

	n := float64(len(x))
	zs := skewZ(skew, n)
	zk := kurtosisZ(kurt, n)

	k2 := zs*zs + zk*zk
	p := distuv.ChiSquared{K: 2}.Survival(k2)

	t.logger.Debug("n=%d skew=%.4f kurtosis=%.4f Zs=%.4f Zk=%.4f K2=%.4f p=%.4g", len(x), skew, kurt, zs, zk, k2, p)
	return stats.TestResult{Statistic: k2, PValue: p}, nil
}

// skewZ transforms the biased sample skewness into an approximately
// standard normal score (D'Agostino 1970).
func skewZ(b1, n float64) float64 {
	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}
	ya := y / alpha
	return delta * math.Log(ya+math.Sqrt(ya*ya+1))
}

// kurtosisZ transforms the biased (non-excess) sample kurtosis into an
// approximately standard normal score (Anscombe & Glynn 1983).
func kurtosisZ(b2, n float64) float64 {
	e := 3 * (n - 1) / (n + 1)
	varb2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - e) / math.Sqrt(varb2)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) * math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))

	term1 := 1 - 2/(9*a)
	denom := 1 + x*math.Sqrt(2/(a-4))
	var term2 float64
	if denom == 0 {
		term2 = math.NaN()
	} else {
		term2 = math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	}
	return (term1 - term2) / math.Sqrt(2/(9*a))
}
