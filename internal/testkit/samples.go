// Package testkit provides deterministic sample and table fixtures for tests.
package testkit

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalQuantiles returns n evenly spaced quantiles of N(mu, sigma²).
// The result is as normal as an n-point sample can be.
func NormalQuantiles(n int, mu, sigma float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Quantile((float64(i) + 0.5) / float64(n))
	}
	return out
}

// ExponentialQuantiles returns n evenly spaced quantiles of Exp(rate)
func ExponentialQuantiles(n int, rate float64) []float64 {
	dist := distuv.Exponential{Rate: rate}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Quantile((float64(i) + 0.5) / float64(n))
	}
	return out
}

// UniformQuantiles returns n evenly spaced points in (0,1)
func UniformQuantiles(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = (float64(i) + 0.5) / float64(n)
	}
	return out
}

// NormalSample draws n values from N(mu, sigma²) with a fixed seed
func NormalSample(seed uint64, n int, mu, sigma float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)}
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// LinearWithNoise returns slope*x + intercept + N(0, noise²) for each x
func LinearWithNoise(seed uint64, x []float64, slope, intercept, noise float64) []float64 {
	eps := NormalSample(seed, len(x), 0, noise)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = slope*v + intercept + eps[i]
	}
	return out
}

// Reversed returns x in reverse order
func Reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}

// PerfectlyAssociated returns two n-length categorical columns where A
// always pairs with X and B with Y, split evenly.
func PerfectlyAssociated(n int) ([]string, []string) {
	a := make([]string, n)
	b := make([]string, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			a[i], b[i] = "A", "X"
		} else {
			a[i], b[i] = "B", "Y"
		}
	}
	return a, b
}

// ExactlyIndependent returns two categorical columns whose contingency table
// has identical counts in every cell: rowsK x colsK categories repeated reps times.
func ExactlyIndependent(rowsK, colsK, reps int) ([]string, []string) {
	n := rowsK * colsK * reps
	a := make([]string, 0, n)
	b := make([]string, 0, n)
	for r := 0; r < reps; r++ {
		for i := 0; i < rowsK; i++ {
			for j := 0; j < colsK; j++ {
				a = append(a, fmt.Sprintf("r%d", i))
				b = append(b, fmt.Sprintf("c%d", j))
			}
		}
	}
	return a, b
}

// RandomCategories assigns each of n rows a uniformly random category out of k
func RandomCategories(seed uint64, n, k int, prefix string) []string {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, rng.IntN(k))
	}
	return out
}

// Dichotomous returns a 0/1 column, 1 where x exceeds threshold
func Dichotomous(x []float64, threshold float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v > threshold {
			out[i] = 1
		}
	}
	return out
}

// WithMissing returns a copy of x with NaN at the given positions
func WithMissing(x []float64, positions ...int) []float64 {
	out := append([]float64(nil), x...)
	for _, p := range positions {
		out[p] = math.NaN()
	}
	return out
}
