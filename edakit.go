// Package edakit is a small toolkit of exploratory-data-analysis helpers.
// It wraps normality, correlation and categorical association tests, prints
// a readable conclusion next to the raw statistic and p-value, and builds
// annotated coefficient heatmaps over the columns of a DataFrame.
package edakit

import (
	"io"
	"os"

	"edakit/adapters/frame"
	"edakit/adapters/render"
	"edakit/adapters/stats/association"
	"edakit/adapters/stats/correlation"
	"edakit/adapters/stats/matrix"
	"edakit/adapters/stats/normality"
	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	"edakit/internal/config"
	apperrors "edakit/internal/errors"
	"edakit/internal/report"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot/vg"
)

// Analyzer runs the tests with the defaults of a Config and prints its
// conclusions to a writer
type Analyzer struct {
	cfg     *config.Config
	printer *report.Printer
	logger  *internal.Logger

	normality   *normality.Tester
	correlation *correlation.Tester
	association *association.Tester
	matrix      *matrix.Builder
}

// NewAnalyzer creates an analyzer printing to out (stdout when nil). A nil
// cfg uses config.Default and the LOG_LEVEL driven DefaultLogger.
func NewAnalyzer(cfg *config.Config, out io.Writer) *Analyzer {
	logger := internal.DefaultLogger
	if cfg != nil {
		logger = internal.NewLogger(cfg.LogLevel)
	}
	return NewAnalyzerWithLogger(cfg, out, logger)
}

// NewAnalyzerWithLogger is NewAnalyzer with an explicit logger
func NewAnalyzerWithLogger(cfg *config.Config, out io.Writer, logger *internal.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Analyzer{
		cfg:         cfg,
		printer:     report.NewPrinter(out),
		logger:      logger.Named("Analyzer"),
		normality:   normality.NewTester(logger),
		correlation: correlation.NewTester(logger),
		association: association.NewTester(logger),
		matrix:      matrix.NewBuilder(logger),
	}
}

func (a *Analyzer) printerFor(o callOptions) *report.Printer {
	if o.quiet {
		return report.Discard
	}
	return a.printer
}

func checkAlpha(alpha float64) error {
	if err := stats.ValidateAlpha(alpha); err != nil {
		return apperrors.Precondition(err, "invalid significance level")
	}
	return nil
}

// NormalityTest tests whether sample comes from a normal population. H0 is
// printed before anything is computed. Anderson-Darling only prints its
// conclusion and returns a nil result; alpha must then be one of
// 0.15, 0.10, 0.05, 0.025 or 0.01.
func (a *Analyzer) NormalityTest(sample stats.NamedSample, opts ...Option) (*stats.TestResult, error) {
	o := defaultCallOptions(a.cfg, opts)
	out := a.printerFor(o)
	out.NormalityHypothesis()

	if !o.normalityMethod.Valid() {
		return nil, apperrors.Precondition(core.ErrUnsupportedMethod, "normality method %q (want one of %v)", o.normalityMethod, stats.NormalityMethods)
	}
	if err := checkAlpha(o.alpha); err != nil {
		return nil, err
	}

	if o.normalityMethod == stats.NormalityAnderson {
		res, err := a.normality.Anderson(sample.Values)
		if err != nil {
			return nil, err
		}
		critical, err := normality.CriticalValueAt(res, o.alpha)
		if err != nil {
			return nil, err
		}
		a.logger.Warn("anderson reports critical values instead of a p-value; no result is returned")
		out.NormalityConclusion(sample.Name, stats.DecideAnderson(res.Statistic, critical))
		return nil, nil
	}

	res, err := a.normality.Run(o.normalityMethod, sample.Values)
	if err != nil {
		return nil, err
	}
	out.NormalityConclusion(sample.Name, stats.Decide(res.PValue, o.alpha))
	return &res, nil
}

// Correlation measures the correlation of x and y. Names are cited in the
// conclusion only when both samples carry one.
func (a *Analyzer) Correlation(x, y stats.NamedSample, opts ...Option) (stats.TestResult, error) {
	o := defaultCallOptions(a.cfg, opts)
	if !o.correlationMethod.Valid() {
		return stats.TestResult{}, apperrors.Precondition(core.ErrUnsupportedMethod, "correlation method %q (want one of %v)", o.correlationMethod, stats.CorrelationMethods)
	}
	if err := checkAlpha(o.alpha); err != nil {
		return stats.TestResult{}, err
	}

	res, err := a.correlation.Run(o.correlationMethod, x.Values, y.Values)
	if err != nil {
		return stats.TestResult{}, err
	}

	out := a.printerFor(o)
	out.CorrelationHypothesis()
	out.CorrelationConclusion(x.Name, y.Name, stats.Decide(res.PValue, o.alpha), res.PValue)
	return res, nil
}

// CramersV measures the association of two categorical samples. The
// contingency table is printed before the conclusion.
func (a *Analyzer) CramersV(x, y stats.CategoricalSample, opts ...Option) (stats.AssociationResult, error) {
	o := defaultCallOptions(a.cfg, opts)
	if err := checkAlpha(o.alpha); err != nil {
		return stats.AssociationResult{}, err
	}

	res, err := a.association.CramersV(x, y, o.alpha)
	if err != nil {
		return res, err
	}

	out := a.printerFor(o)
	out.CrossTab(frame.CrossTabFrame(res.Table))
	out.AssociationConclusion(x.Name, y.Name, stats.Decide(res.PValue, o.alpha), res)
	return res, nil
}

// GenerateSymMatrix computes the pairwise statistic of every ordered pair of
// columns and renders it as a heatmap. Nothing is printed.
func (a *Analyzer) GenerateSymMatrix(df dataframe.DataFrame, columns []string, opts ...Option) (*matrix.Matrix, *render.Heatmap, error) {
	o := defaultCallOptions(a.cfg, opts)

	m, err := a.matrix.Build(df, columns, matrix.Options{
		Method:               o.matrixMethod,
		Alpha:                o.alpha,
		CategoricalThreshold: o.categoricalThreshold,
	})
	if err != nil {
		return nil, nil, err
	}

	hm, err := render.NewHeatmap(m, vg.Length(a.cfg.Report.HeatmapSizeInches)*vg.Inch)
	if err != nil {
		return m, nil, err
	}

	if o.saveHeatmap {
		path, err := hm.SaveTo(a.cfg.Report.OutputDir)
		if err != nil {
			return m, hm, err
		}
		a.logger.Info("heatmap saved to %s", path)
	}
	return m, hm, nil
}

// Default is the analyzer behind the package-level functions. It prints to
// stdout with the built-in defaults.
var Default = NewAnalyzer(nil, os.Stdout)

// NormalityTest runs Default.NormalityTest
func NormalityTest(sample stats.NamedSample, opts ...Option) (*stats.TestResult, error) {
	return Default.NormalityTest(sample, opts...)
}

// Correlation runs Default.Correlation
func Correlation(x, y stats.NamedSample, opts ...Option) (stats.TestResult, error) {
	return Default.Correlation(x, y, opts...)
}

// CramersV runs Default.CramersV
func CramersV(x, y stats.CategoricalSample, opts ...Option) (stats.AssociationResult, error) {
	return Default.CramersV(x, y, opts...)
}

// GenerateSymMatrix runs Default.GenerateSymMatrix
func GenerateSymMatrix(df dataframe.DataFrame, columns []string, opts ...Option) (*matrix.Matrix, *render.Heatmap, error) {
	return Default.GenerateSymMatrix(df, columns, opts...)
}
