package correlation

import (
	"math"

	"edakit/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// Above this size without ties the exact null distribution is not used
const kendallExactMaxN = 33

// Kendall computes Kendall's tau-b, which corrects for ties in either sample.
// Without ties the p-value is exact for n <= 33; otherwise it comes from the
// normal approximation with tie-corrected variance.
func (t *Tester) Kendall(x, y []float64) (stats.TestResult, error) {
	if err := checkPair("kendall", x, y); err != nil {
		return stats.TestResult{}, err
	}
	if hasNaN(x, y) {
		return nanResult, nil
	}

	n := len(x)
	var con, dis float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := sign(x[i]-x[j]) * sign(y[i]-y[j])
			if s > 0 {
				con++
			} else if s < 0 {
				dis++
			}
		}
	}

	xt := tieCounts(x)
	yt := tieCounts(y)
	tot := float64(n) * float64(n-1) / 2
	if xt.pairs == tot || yt.pairs == tot {
		return nanResult, nil
	}

	tau := clampUnit((con - dis) / math.Sqrt(tot-xt.pairs) / math.Sqrt(tot-yt.pairs))

	var p float64
	c := math.Min(dis, tot-dis)
	if xt.pairs == 0 && yt.pairs == 0 && (n <= kendallExactMaxN || c <= 1) {
		p = kendallExactPValue(n, int(c))
	} else {
		p = kendallAsymptoticPValue(n, con-dis, xt, yt)
	}

	t.logger.Debug("kendall n=%d tau=%.4f p=%.4g", n, tau, p)
	return stats.TestResult{Statistic: tau, PValue: p}, nil
}

// ties summarises the tie groups of one sample for the variance formula
type ties struct {
	pairs float64 // Σ t(t-1)/2
	v0    float64 // Σ t(t-1)(t-2)
	v1    float64 // Σ t(t-1)(2t+5)
}

func tieCounts(x []float64) ties {
	counts := make(map[float64]float64)
	for _, v := range x {
		counts[v]++
	}
	var out ties
	for _, c := range counts {
		if c < 2 {
			continue
		}
		out.pairs += c * (c - 1) / 2
		out.v0 += c * (c - 1) * (c - 2)
		out.v1 += c * (c - 1) * (2*c + 5)
	}
	return out
}

func kendallAsymptoticPValue(n int, conMinusDis float64, xt, yt ties) float64 {
	size := float64(n)
	m := size * (size - 1)
	variance := (m*(2*size+5)-xt.v1-yt.v1)/18 + 2*xt.pairs*yt.pairs/m
	if n > 2 {
		variance += xt.v0 * yt.v0 / (9 * m * (size - 2))
	}
	z := conMinusDis / math.Sqrt(variance)
	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

// kendallExactPValue is 2·P(I <= c), where I counts the inversions of a
// uniformly random permutation of n items.
func kendallExactPValue(n, c int) float64 {
	if n <= 2 {
		return 1
	}
	var p float64
	switch {
	case c <= 1:
		// 1 permutation with no inversions, n-1 with exactly one
		lg, _ := math.Lgamma(float64(n + 1))
		p = 2 * math.Exp(math.Log(1+float64(c)*float64(n-1))-lg)
	default:
		// dist[j] = P(I = j) for permutations of k items, truncated at c
		dist := make([]float64, c+1)
		dist[0] = 1
		for k := 2; k <= n; k++ {
			next := make([]float64, c+1)
			for j := 0; j <= c; j++ {
				for i := 0; i < k && i <= j; i++ {
					next[j] += dist[j-i]
				}
				next[j] /= float64(k)
			}
			dist = next
		}
		cdf := 0.0
		for _, v := range dist {
			cdf += v
		}
		p = 2 * cdf
	}
	return math.Min(p, 1)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
