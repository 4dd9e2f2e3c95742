package stats

import (
	"fmt"
	"strings"

	"edakit/domain/core"
)

// NormalityMethod selects the normality test
type NormalityMethod string

const (
	NormalityDAgostino NormalityMethod = "dagostino" // D'Agostino-Pearson K² omnibus test
	NormalityShapiro   NormalityMethod = "shapiro"   // Shapiro-Wilk W, unreliable above ~5000 samples
	NormalityAnderson  NormalityMethod = "anderson"  // Anderson-Darling A², discrete critical values
)

// NormalityMethods lists every supported normality test
var NormalityMethods = []NormalityMethod{NormalityDAgostino, NormalityShapiro, NormalityAnderson}

// CorrelationMethod selects the bivariate correlation measure
type CorrelationMethod string

const (
	CorrelationPearson       CorrelationMethod = "pearson"       // linear relationship
	CorrelationSpearman      CorrelationMethod = "spearman"      // monotonic, rank based
	CorrelationKendall       CorrelationMethod = "kendall"       // monotonic, concordance based (tau-b)
	CorrelationPointBiserial CorrelationMethod = "pointbiserial" // dichotomous vs continuous, same as pearson
)

// CorrelationMethods lists every supported correlation measure
var CorrelationMethods = []CorrelationMethod{
	CorrelationPearson,
	CorrelationSpearman,
	CorrelationKendall,
	CorrelationPointBiserial,
}

// MatrixMethod selects the pairwise statistic of a coefficient matrix
type MatrixMethod string

const (
	MatrixPearson       = MatrixMethod(CorrelationPearson)
	MatrixSpearman      = MatrixMethod(CorrelationSpearman)
	MatrixKendall       = MatrixMethod(CorrelationKendall)
	MatrixPointBiserial = MatrixMethod(CorrelationPointBiserial)
	MatrixCramersV      MatrixMethod = "cramersv"
)

// MatrixMethods lists every supported matrix statistic
var MatrixMethods = []MatrixMethod{
	MatrixPearson,
	MatrixSpearman,
	MatrixKendall,
	MatrixPointBiserial,
	MatrixCramersV,
}

func (m NormalityMethod) String() string   { return string(m) }
func (m CorrelationMethod) String() string { return string(m) }
func (m MatrixMethod) String() string      { return string(m) }

func (m NormalityMethod) Valid() bool {
	for _, known := range NormalityMethods {
		if m == known {
			return true
		}
	}
	return false
}

func (m CorrelationMethod) Valid() bool {
	for _, known := range CorrelationMethods {
		if m == known {
			return true
		}
	}
	return false
}

func (m MatrixMethod) Valid() bool {
	for _, known := range MatrixMethods {
		if m == known {
			return true
		}
	}
	return false
}

// IsCorrelation reports whether the matrix method is one of the correlation family
func (m MatrixMethod) IsCorrelation() bool {
	return m != MatrixCramersV && m.Valid()
}

// Correlation converts a correlation-family matrix method back to its correlation measure
func (m MatrixMethod) Correlation() (CorrelationMethod, bool) {
	if !m.IsCorrelation() {
		return "", false
	}
	return CorrelationMethod(m), true
}

// ParseNormalityMethod accepts the method name case-insensitively.
// "dagnostino" is accepted as an alias of "dagostino".
func ParseNormalityMethod(name string) (NormalityMethod, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "dagnostino" {
		key = string(NormalityDAgostino)
	}
	m := NormalityMethod(key)
	if !m.Valid() {
		return "", fmt.Errorf("%w: normality test %q (want one of %v)", core.ErrUnsupportedMethod, name, NormalityMethods)
	}
	return m, nil
}

func ParseCorrelationMethod(name string) (CorrelationMethod, error) {
	m := CorrelationMethod(strings.ToLower(strings.TrimSpace(name)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: correlation %q (want one of %v)", core.ErrUnsupportedMethod, name, CorrelationMethods)
	}
	return m, nil
}

func ParseMatrixMethod(name string) (MatrixMethod, error) {
	m := MatrixMethod(strings.ToLower(strings.TrimSpace(name)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: matrix method %q (want one of %v)", core.ErrUnsupportedMethod, name, MatrixMethods)
	}
	return m, nil
}
