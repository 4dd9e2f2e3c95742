package correlation

import (
	"sort"

	"edakit/domain/stats"

	"gonum.org/v1/gonum/stat"
)

// Spearman computes the rank correlation rho: Pearson's r over the average
// ranks of each sample. The p-value uses the same t approximation as Pearson.
func (t *Tester) Spearman(x, y []float64) (stats.TestResult, error) {
	if err := checkPair("spearman", x, y); err != nil {
		return stats.TestResult{}, err
	}
	if hasNaN(x, y) {
		return nanResult, nil
	}

	rho := clampUnit(stat.Correlation(Ranks(x), Ranks(y), nil))
	p := correlationPValue(rho, len(x))

	t.logger.Debug("spearman n=%d rho=%.4f p=%.4g", len(x), rho, p)
	return stats.TestResult{Statistic: rho, PValue: p}, nil
}

// Ranks converts values to 1-based ranks, giving tied values their average rank
func Ranks(data []float64) []float64 {
	n := len(data)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return data[order[i]] < data[order[j]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && data[order[j]] == data[order[i]] {
			j++
		}
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}
	return ranks
}
