// Package report prints the human-readable conclusions of the statistical
// tests. Decisions are made in domain/stats; this package only formats them.
package report

import (
	"fmt"
	"io"
	"os"

	"edakit/domain/stats"

	"github.com/go-gota/gota/dataframe"
)

// Printer writes conclusion lines to an io.Writer
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w, or to stdout when w is nil
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Discard is a printer that drops everything
var Discard = &Printer{w: io.Discard}

func (p *Printer) println(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// ============================================================================
// NORMALITY
// ============================================================================

// NormalityHypothesis prints the null hypothesis of a normality test
func (p *Printer) NormalityHypothesis() {
	p.println("H0: The population is normally distributed")
}

// NormalityConclusion prints the outcome of a normality test for the sample
// labelled label (may be empty)
func (p *Printer) NormalityConclusion(label string, c stats.Conclusion) {
	switch {
	case c == stats.RejectNull && label != "":
		p.println("Reject H0: the distribution of %s is NOT normally distributed.", label)
	case c == stats.RejectNull:
		p.println("Reject H0: the distribution is NOT normally distributed.")
	case label != "":
		p.println("Fail to reject H0: the distribution of %s is normally distributed.", label)
	default:
		p.println("Fail to reject H0: the distribution is normally distributed.")
	}
}

// ============================================================================
// CORRELATION
// ============================================================================

// CorrelationHypothesis prints the null hypothesis of a correlation test
func (p *Printer) CorrelationHypothesis() {
	p.println("H0: The two variables are not correlated")
}

// CorrelationConclusion prints the outcome of a correlation test. The labels
// are cited only when both are set.
func (p *Printer) CorrelationConclusion(a, b string, c stats.Conclusion, pValue float64) {
	labelled := a != "" && b != ""
	switch {
	case c == stats.RejectNull && labelled:
		p.println("Reject H0: %s and %s are correlated with p=%.3f", a, b, pValue)
	case c == stats.RejectNull:
		p.println("Reject H0: the two variables are correlated with p=%.3f", pValue)
	case labelled:
		p.println("Fail to reject H0: %s and %s are uncorrelated with p=%.3f", a, b, pValue)
	default:
		p.println("Fail to reject H0: the two variables are uncorrelated with p=%.3f", pValue)
	}
}

// ============================================================================
// ASSOCIATION
// ============================================================================

// CrossTab prints a contingency table
func (p *Printer) CrossTab(df dataframe.DataFrame) {
	p.println("%s", df.String())
}

// AssociationConclusion prints the outcome of a Cramér's V test. The effect
// size line follows a significant result only.
func (p *Printer) AssociationConclusion(a, b string, c stats.Conclusion, res stats.AssociationResult) {
	labelled := a != "" && b != ""
	if c != stats.RejectNull {
		if labelled {
			p.println("No association between %s and %s", a, b)
		} else {
			p.println("No association between 2 variables")
		}
		return
	}

	if labelled {
		p.println("%s is dependent on %s with p = %.3f", a, b, res.PValue)
	} else {
		p.println("Association relationship with p=%.3f", res.PValue)
	}
	p.println("With a %s effect size v = %.2f for dof = %d", res.EffectSize, res.V, res.DOF)
}
