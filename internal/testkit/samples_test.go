package testkit

import (
	"math"
	"testing"
)

func TestNormalSampleIsDeterministic(t *testing.T) {
	a := NormalSample(7, 20, 0, 1)
	b := NormalSample(7, 20, 0, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different values at %d: %v vs %v", i, a[i], b[i])
		}
	}
	c := NormalSample(8, 20, 0, 1)
	if a[0] == c[0] && a[1] == c[1] {
		t.Error("different seeds should produce different samples")
	}
}

func TestNormalQuantilesAreSymmetric(t *testing.T) {
	q := NormalQuantiles(10, 0, 1)
	for i := 0; i < 5; i++ {
		if math.Abs(q[i]+q[9-i]) > 1e-9 {
			t.Errorf("quantiles %d and %d are not symmetric: %v %v", i, 9-i, q[i], q[9-i])
		}
	}
}

func TestCategoricalFixtures(t *testing.T) {
	a, b := PerfectlyAssociated(6)
	for i := range a {
		if (a[i] == "A") != (b[i] == "X") {
			t.Errorf("row %d breaks the association: %s/%s", i, a[i], b[i])
		}
	}

	r, c := ExactlyIndependent(2, 3, 4)
	if len(r) != 24 || len(c) != 24 {
		t.Fatalf("expected 24 rows, got %d/%d", len(r), len(c))
	}

	df := CategoricalFrame(100)
	if df.Nrow() != 100 || df.Ncol() != 4 {
		t.Errorf("unexpected frame dims %dx%d", df.Nrow(), df.Ncol())
	}
}
