package edakit

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"edakit/domain/core"
	"edakit/domain/stats"
	"edakit/internal"
	"edakit/internal/config"
	apperrors "edakit/internal/errors"
	"edakit/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var heights = []float64{148, 154, 158, 160, 161, 162, 166, 170, 182, 195, 236}

// newTestAnalyzer returns an analyzer printing into the returned buffer and
// logging into a second one
func newTestAnalyzer(cfg *config.Config) (*Analyzer, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	return NewAnalyzerWithLogger(cfg, &out, internal.NewLoggerTo(&logs, internal.LogLevelInfo)), &out, &logs
}

// testConfig keeps outputs in a temp dir and heatmaps small
func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Report.OutputDir = t.TempDir()
	cfg.Report.HeatmapSizeInches = 3
	return cfg
}

func TestNormalityTest_PValueMethods(t *testing.T) {
	tests := []struct {
		method stats.NormalityMethod
		stat   float64
		p      float64
	}{
		{stats.NormalityShapiro, 0.788815, 0.006704},
		{stats.NormalityDAgostino, 13.0343, 0.001478},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			a, out, _ := newTestAnalyzer(nil)

			res, err := a.NormalityTest(stats.Named("height", heights), WithNormalityMethod(tt.method))
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.InDelta(t, tt.stat, res.Statistic, 1e-3)
			assert.InDelta(t, tt.p, res.PValue, 1e-4)

			assert.Equal(t,
				"H0: The population is normally distributed\n"+
					"Reject H0: the distribution of height is NOT normally distributed.\n",
				out.String())
		})
	}
}

func TestNormalityTest_FailToReject(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	res, err := a.NormalityTest(stats.Unnamed(testkit.NormalQuantiles(50, 0, 1)), WithNormalityMethod(stats.NormalityShapiro))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Greater(t, res.PValue, 0.05)
	assert.Contains(t, out.String(), "Fail to reject H0: the distribution is normally distributed.\n")
}

func TestNormalityTest_Anderson(t *testing.T) {
	a, out, logs := newTestAnalyzer(nil)

	res, err := a.NormalityTest(stats.Named("height", heights), WithNormalityMethod(stats.NormalityAnderson))
	require.NoError(t, err)
	assert.Nil(t, res)

	// A2 = 0.9468 exceeds the 5% critical value 0.68
	assert.Equal(t,
		"H0: The population is normally distributed\n"+
			"Reject H0: the distribution of height is NOT normally distributed.\n",
		out.String())
	assert.Contains(t, logs.String(), "[Analyzer]")
	assert.Contains(t, logs.String(), "no result is returned")
}

func TestNormalityTest_AndersonUnsupportedAlpha(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	res, err := a.NormalityTest(stats.Named("height", heights),
		WithNormalityMethod(stats.NormalityAnderson), WithAlpha(0.03))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, core.ErrUnsupportedAlpha)
	assert.Equal(t, apperrors.CodePreconditionFailed, apperrors.GetCode(err))

	// H0 is printed before the alpha check
	assert.Equal(t, "H0: The population is normally distributed\n", out.String())
}

func TestNormalityTest_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		sample []float64
		opts   []Option
		target error
	}{
		{"missing values", testkit.WithMissing(heights, 3), nil, core.ErrMissingValues},
		{"unknown method", heights, []Option{WithNormalityMethod("lilliefors")}, core.ErrUnsupportedMethod},
		{"alpha out of range", heights, []Option{WithAlpha(1.2)}, core.ErrInvalidAlpha},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestAnalyzer(nil)
			_, err := a.NormalityTest(stats.Unnamed(tt.sample), tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, apperrors.CodePreconditionFailed, apperrors.GetCode(err))
		})
	}
}

func TestCorrelation(t *testing.T) {
	x := testkit.NormalSample(7, 80, 0, 1)
	y := testkit.LinearWithNoise(8, x, 2, 1, 0.5)

	methods := []stats.CorrelationMethod{
		stats.CorrelationPearson,
		stats.CorrelationSpearman,
		stats.CorrelationKendall,
	}
	for _, method := range methods {
		t.Run(string(method), func(t *testing.T) {
			a, out, _ := newTestAnalyzer(nil)

			res, err := a.Correlation(stats.Named("x", x), stats.Named("y", y), WithCorrelationMethod(method))
			require.NoError(t, err)
			assert.Greater(t, res.Statistic, 0.6)
			assert.Less(t, res.PValue, 0.001)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t, "H0: The two variables are not correlated", lines[0])
			assert.Equal(t, "Reject H0: x and y are correlated with p=0.000", lines[1])
		})
	}
}

func TestCorrelation_Unlabelled(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	x := testkit.NormalSample(3, 40, 0, 1)
	y := testkit.NormalSample(99, 40, 0, 1)
	res, err := a.Correlation(stats.Named("x", x), stats.Unnamed(y), WithAlpha(0.0001))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Fail to reject H0: the two variables are uncorrelated with p=")
	assert.False(t, math.IsNaN(res.PValue))
}

func TestCorrelation_Errors(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	_, err := a.Correlation(stats.Unnamed(heights), stats.Unnamed(heights[:5]))
	assert.ErrorIs(t, err, core.ErrLengthMismatch)

	_, err = a.Correlation(stats.Unnamed(heights), stats.Unnamed(heights), WithCorrelationMethod("distance"))
	assert.ErrorIs(t, err, core.ErrUnsupportedMethod)
	assert.Equal(t, apperrors.CodePreconditionFailed, apperrors.GetCode(err))

	assert.Empty(t, out.String())
}

func TestCramersV_Association(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	group, segment := testkit.PerfectlyAssociated(100)
	res, err := a.CramersV(stats.Categorical("group", group), stats.Categorical("segment", segment))
	require.NoError(t, err)
	assert.InDelta(t, 0.98, res.V, 1e-9)
	assert.Equal(t, stats.EffectSizeLarge, res.EffectSize)

	text := out.String()
	assert.Contains(t, text, "group is dependent on segment with p = 0.000\n")
	assert.True(t, strings.HasSuffix(text, "With a large effect size v = 0.98 for dof = 1\n"))
	// the contingency table comes first
	assert.Less(t, strings.Index(text, "X"), strings.Index(text, "group is dependent"))
}

func TestCramersV_Independent(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	x, y := testkit.ExactlyIndependent(3, 4, 25)
	res, err := a.CramersV(stats.Categorical("", x), stats.Categorical("", y))
	require.NoError(t, err)
	assert.InDelta(t, 0, res.V, 1e-12)
	assert.True(t, strings.HasSuffix(out.String(), "No association between 2 variables\n"))
}

func TestQuietSuppressesOutput(t *testing.T) {
	a, out, _ := newTestAnalyzer(nil)

	_, err := a.NormalityTest(stats.Unnamed(heights), Quiet())
	require.NoError(t, err)
	_, err = a.Correlation(stats.Unnamed(heights), stats.Unnamed(testkit.Reversed(heights)), Quiet())
	require.NoError(t, err)
	group, segment := testkit.PerfectlyAssociated(40)
	_, err = a.CramersV(stats.Categorical("g", group), stats.Categorical("s", segment), Quiet())
	require.NoError(t, err)

	assert.Empty(t, out.String())
}

func TestGenerateSymMatrix(t *testing.T) {
	cfg := testConfig(t)
	a, out, _ := newTestAnalyzer(cfg)

	df := testkit.NumericFrame(11, 50)
	m, hm, err := a.GenerateSymMatrix(df, []string{"height", "weight"},
		WithMatrixMethod(stats.MatrixSpearman), SaveHeatmap())
	require.NoError(t, err)
	require.NotNil(t, hm)

	assert.Equal(t, 2, m.Size())
	assert.Equal(t, m.At(0, 1), m.At(1, 0))
	assert.InDelta(t, 1.0, m.At(0, 0), 1e-12)
	assert.Equal(t, "spearman test's coefficient", hm.Title)

	data, err := os.ReadFile(filepath.Join(cfg.Report.OutputDir, "heatmap-"+hm.ID+".png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	assert.Empty(t, out.String())
}

func TestGenerateSymMatrix_CramersV(t *testing.T) {
	a, _, _ := newTestAnalyzer(nil)

	df := testkit.CategoricalFrame(200)
	m, _, err := a.GenerateSymMatrix(df, []string{"group", "segment", "region"}, WithMatrixMethod(stats.MatrixCramersV))
	require.NoError(t, err)
	assert.Greater(t, m.At(0, 1), 0.95)

	_, _, err = a.GenerateSymMatrix(df, []string{"group", "score"}, WithMatrixMethod(stats.MatrixCramersV))
	assert.ErrorIs(t, err, core.ErrNotCategorical)
}

func TestGenerateSymMatrix_UnknownColumn(t *testing.T) {
	a, _, _ := newTestAnalyzer(nil)

	_, _, err := a.GenerateSymMatrix(testkit.NumericFrame(1, 20), []string{"height", "bmi"})
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}
