package edakit

import (
	"edakit/domain/stats"
	"edakit/internal/config"
)

// callOptions are the per-call settings of an Analyzer operation
type callOptions struct {
	normalityMethod      stats.NormalityMethod
	correlationMethod    stats.CorrelationMethod
	matrixMethod         stats.MatrixMethod
	alpha                float64
	categoricalThreshold float64
	quiet                bool
	saveHeatmap          bool
}

// Option adjusts a single call
type Option func(*callOptions)

func defaultCallOptions(cfg *config.Config, opts []Option) callOptions {
	o := callOptions{
		normalityMethod:      cfg.Stats.NormalityMethod,
		correlationMethod:    cfg.Stats.CorrelationMethod,
		matrixMethod:         cfg.Stats.MatrixMethod,
		alpha:                cfg.Stats.Alpha,
		categoricalThreshold: cfg.Stats.CategoricalThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAlpha sets the significance level
func WithAlpha(alpha float64) Option {
	return func(o *callOptions) { o.alpha = alpha }
}

// WithNormalityMethod selects the normality test
func WithNormalityMethod(method stats.NormalityMethod) Option {
	return func(o *callOptions) { o.normalityMethod = method }
}

// WithCorrelationMethod selects the correlation measure
func WithCorrelationMethod(method stats.CorrelationMethod) Option {
	return func(o *callOptions) { o.correlationMethod = method }
}

// WithMatrixMethod selects the pairwise statistic of GenerateSymMatrix
func WithMatrixMethod(method stats.MatrixMethod) Option {
	return func(o *callOptions) { o.matrixMethod = method }
}

// WithCategoricalThreshold sets the cardinality ratio below which a column
// counts as categorical for cramersv matrices
func WithCategoricalThreshold(threshold float64) Option {
	return func(o *callOptions) { o.categoricalThreshold = threshold }
}

// Quiet suppresses the printed hypothesis and conclusion lines
func Quiet() Option {
	return func(o *callOptions) { o.quiet = true }
}

// SaveHeatmap writes the matrix heatmap as a PNG into the configured output
// directory
func SaveHeatmap() Option {
	return func(o *callOptions) { o.saveHeatmap = true }
}
