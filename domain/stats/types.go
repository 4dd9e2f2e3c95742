package stats

import (
	"math"
)

// ============================================================================
// SAMPLES
// ============================================================================

// Sample is a one-dimensional numeric column. NaN marks a missing value.
type Sample []float64

// MissingCount returns the number of NaN entries
func (s Sample) MissingCount() int {
	count := 0
	for _, v := range s {
		if math.IsNaN(v) {
			count++
		}
	}
	return count
}

// HasMissing reports whether any entry is NaN
func (s Sample) HasMissing() bool {
	for _, v := range s {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// NamedSample pairs a sample with an optional display label.
// The label is only used for printed conclusions.
type NamedSample struct {
	Name   string
	Values Sample
}

// Named builds a NamedSample
func Named(name string, values []float64) NamedSample {
	return NamedSample{Name: name, Values: values}
}

// Unnamed builds a NamedSample without a label
func Unnamed(values []float64) NamedSample {
	return NamedSample{Values: values}
}

// CategoricalSample is a column of category labels. An empty label is missing.
type CategoricalSample struct {
	Name   string
	Values []string
}

// Categorical builds a CategoricalSample
func Categorical(name string, values []string) CategoricalSample {
	return CategoricalSample{Name: name, Values: values}
}

// MissingCount returns the number of empty labels
func (s CategoricalSample) MissingCount() int {
	count := 0
	for _, v := range s.Values {
		if v == "" {
			count++
		}
	}
	return count
}

// ============================================================================
// RESULTS
// ============================================================================

// TestResult is the raw outcome of a hypothesis test
type TestResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

// AndersonResult carries the discrete critical-value table of the Anderson-Darling test
type AndersonResult struct {
	Statistic          float64   `json:"statistic"`
	CriticalValues     []float64 `json:"critical_values"`
	SignificanceLevels []float64 `json:"significance_levels"` // percent, e.g. 5 for alpha=0.05
}

// AssociationResult is the outcome of the Cramér's V association test
type AssociationResult struct {
	V          float64           `json:"v"`
	PValue     float64           `json:"p_value"`
	EffectSize EffectSize        `json:"effect_size"`
	DOF        int               `json:"dof"`         // min(rows, cols) - 1
	ChiSquare  float64           `json:"chi_square"`  // statistic after continuity correction
	ChiDOF     int               `json:"chi_dof"`     // (rows-1)*(cols-1)
	Table      *ContingencyTable `json:"-"`
}

// EffectSize is the small/medium/large band of an association strength
type EffectSize string

const (
	EffectSizeUnset  EffectSize = ""
	EffectSizeSmall  EffectSize = "small"
	EffectSizeMedium EffectSize = "medium"
	EffectSizeLarge  EffectSize = "large"
)

// IsSet reports whether a band was assigned
func (e EffectSize) IsSet() bool {
	return e != EffectSizeUnset
}

// Conclusion is the outcome of comparing a test against its threshold
type Conclusion int

const (
	FailToReject Conclusion = iota
	RejectNull
)

func (c Conclusion) String() string {
	if c == RejectNull {
		return "reject H0"
	}
	return "fail to reject H0"
}
