package testkit

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NumericFrame builds a table with three related numeric columns:
// "height" (normal), "weight" (linear in height plus noise) and "shuffled"
// (height reversed). The seed fixes the noise.
func NumericFrame(seed uint64, n int) dataframe.DataFrame {
	height := NormalSample(seed, n, 170, 10)
	weight := LinearWithNoise(seed+1, height, 0.9, -80, 5)
	return dataframe.New(
		series.New(height, series.Float, "height"),
		series.New(weight, series.Float, "weight"),
		series.New(Reversed(height), series.Float, "shuffled"),
	)
}

// CategoricalFrame builds a table of low-cardinality columns over n rows:
// "group" and "segment" are perfectly associated, "region" is independent
// of both, and "score" is a continuous numeric column.
func CategoricalFrame(n int) dataframe.DataFrame {
	group, segment := PerfectlyAssociated(n)
	region := make([]string, n)
	for i := range region {
		// period 4 keeps region independent of the alternating group labels
		if (i/2)%2 == 0 {
			region[i] = "north"
		} else {
			region[i] = "south"
		}
	}
	return dataframe.New(
		series.New(group, series.String, "group"),
		series.New(segment, series.String, "segment"),
		series.New(region, series.String, "region"),
		series.New(UniformQuantiles(n), series.Float, "score"),
	)
}
