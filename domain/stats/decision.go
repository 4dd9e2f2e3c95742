package stats

import (
	"fmt"
	"math"

	"edakit/domain/core"
)

// Decide applies the shared rejection rule: a value at or below its threshold
// rejects H0. For p-value tests value is the p-value and threshold is alpha.
// A NaN value never rejects.
func Decide(value, threshold float64) Conclusion {
	if value <= threshold {
		return RejectNull
	}
	return FailToReject
}

// DecideAnderson interprets an Anderson-Darling statistic against the critical
// value for the chosen significance level. H0 is rejected when the statistic
// reaches the critical value, so the roles are swapped before calling Decide.
func DecideAnderson(statistic, criticalValue float64) Conclusion {
	return Decide(criticalValue, statistic)
}

// ValidateAlpha checks alpha lies in [0,1]
func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return fmt.Errorf("%w: got %v", core.ErrInvalidAlpha, alpha)
	}
	return nil
}

// effectSizeBreakpoints maps the correction dof to the upper bounds of the
// small and medium bands. Anything at or above medium is large.
var effectSizeBreakpoints = map[int][2]float64{
	1: {0.30, 0.50},
	2: {0.21, 0.35},
	3: {0.17, 0.29},
	4: {0.15, 0.25},
}

// maxBreakpointDOF is the largest dof with its own row; higher dof reuse it.
const maxBreakpointDOF = 4

// ClassifyEffectSize bands a Cramér's V value using the breakpoints for dof.
// dof below 1 has no band.
func ClassifyEffectSize(dof int, v float64) EffectSize {
	if dof < 1 {
		return EffectSizeUnset
	}
	if dof > maxBreakpointDOF {
		dof = maxBreakpointDOF
	}
	bounds := effectSizeBreakpoints[dof]
	switch {
	case v < bounds[0]:
		return EffectSizeSmall
	case v < bounds[1]:
		return EffectSizeMedium
	default:
		return EffectSizeLarge
	}
}
