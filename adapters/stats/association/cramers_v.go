package association

import (
	"math"

	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	apperrors "edakit/internal/errors"
)

// Tester computes Cramér's V between categorical samples
type Tester struct {
	logger *internal.Logger
}

// NewTester creates a tester logging through logger (DefaultLogger when nil)
func NewTester(logger *internal.Logger) *Tester {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Tester{logger: logger.Named("CramersV")}
}

// CramersV cross-tabulates a and b, tests them for independence and returns
// V = sqrt(χ² / (n·(min(rows, cols)-1))). The effect size is only banded when
// the association is significant at alpha.
func (t *Tester) CramersV(a, b stats.CategoricalSample, alpha float64) (stats.AssociationResult, error) {
	for _, s := range []stats.CategoricalSample{a, b} {
		if missing := s.MissingCount(); missing > 0 {
			return stats.AssociationResult{}, apperrors.Precondition(core.ErrMissingValues,
				"cramers_v: %q contains %d empty categories", s.Name, missing)
		}
	}

	table, err := stats.CrossTab(a, b)
	if err != nil {
		return stats.AssociationResult{}, err
	}

	dof0 := table.MinDOF()
	if dof0 == 0 {
		rows, cols := table.Dims()
		return stats.AssociationResult{Table: table}, apperrors.Degenerate(core.ErrDegenerateTable,
			"cramers_v: %dx%d table leaves no degrees of freedom", rows, cols)
	}

	chi := ChiSquare(table)
	n := table.Total()
	v := math.Sqrt(chi.Statistic / (n * float64(dof0)))

	effect := stats.EffectSizeUnset
	if stats.Decide(chi.PValue, alpha) == stats.RejectNull {
		effect = stats.ClassifyEffectSize(dof0, v)
	}

	t.logger.Debug("n=%.0f chi2=%.4f dof=%d dof0=%d v=%.4f p=%.4g effect=%q", n, chi.Statistic, chi.DOF, dof0, v, chi.PValue, effect)
	return stats.AssociationResult{
		V:          v,
		PValue:     chi.PValue,
		EffectSize: effect,
		DOF:        dof0,
		ChiSquare:  chi.Statistic,
		ChiDOF:     chi.DOF,
		Table:      table,
	}, nil
}
