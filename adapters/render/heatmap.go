// Package render draws coefficient matrices as annotated heatmaps with
// gonum/plot.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"edakit/adapters/stats/matrix"
	"edakit/domain/core"
	"edakit/domain/stats"
	apperrors "edakit/internal/errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// DefaultSize is the side of the square heatmap canvas
	DefaultSize = 6 * vg.Inch

	colorBarWidth = 0.9 * vg.Inch
	paletteColors = 255
)

// nanColor fills cells whose coefficient is undefined
var nanColor = color.Gray{Y: 0xd0}

// grid exposes a matrix to plotter.HeatMap. Row 0 of the matrix is drawn at
// the top, so grid rows run bottom-up.
type grid struct {
	m *matrix.Matrix
}

func (g grid) Dims() (c, r int)   { k := g.m.Size(); return k, k }
func (g grid) Z(c, r int) float64 { return g.m.At(g.m.Size()-1-r, c) }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// Heatmap is a rendered coefficient matrix. It keeps the gonum plots so it
// can be written any number of times in any supported format.
type Heatmap struct {
	ID    string
	Title string
	Size  vg.Length

	main *plot.Plot
	bar  *plot.Plot
}

// NewHeatmap draws m as a size x size heatmap. Cells carry their value to
// two decimals; the colour scale spans [-1, 1] for correlations and [0, 1]
// for Cramér's V.
func NewHeatmap(m *matrix.Matrix, size vg.Length) (*Heatmap, error) {
	if m == nil || m.Size() == 0 {
		return nil, apperrors.RenderError("heatmap: empty matrix", nil)
	}
	if size <= colorBarWidth {
		size = DefaultSize
	}

	lo, hi := valueRange(m.Method)
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	main, err := heatmapPlot(m, cmap.Palette(paletteColors), lo, hi)
	if err != nil {
		return nil, apperrors.RenderError("heatmap: building plot", err)
	}

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Title.Text = " "
	bar.Add(&plotter.ColorBar{ColorMap: cmap, Vertical: true})

	return &Heatmap{
		ID:    core.NewArtifactID().String(),
		Title: m.Title(),
		Size:  size,
		main:  main,
		bar:   bar,
	}, nil
}

func heatmapPlot(m *matrix.Matrix, pal palette.Palette, lo, hi float64) (*plot.Plot, error) {
	k := m.Size()

	hm := plotter.NewHeatMap(grid{m: m}, pal)
	hm.Min, hm.Max = lo, hi
	hm.NaN = nanColor

	xys := make(plotter.XYs, 0, k*k)
	labels := make([]string, 0, k*k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(k - 1 - i)})
			labels = append(labels, annotation(m.At(i, j)))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = text.XCenter
		annotations.TextStyle[i].YAlign = text.YCenter
	}

	reversed := make([]string, k)
	for i, name := range m.Columns {
		reversed[k-1-i] = name
	}

	p := plot.New()
	p.Title.Text = m.Title()
	p.Add(hm, annotations)
	p.NominalX(m.Columns...)
	p.NominalY(reversed...)
	return p, nil
}

func annotation(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

// valueRange is the colour scale of a method's coefficient
func valueRange(method stats.MatrixMethod) (float64, float64) {
	if method == stats.MatrixCramersV {
		return 0, 1
	}
	return -1, 1
}

// Draw renders the heatmap and its colour bar onto c
func (h *Heatmap) Draw(c draw.Canvas) {
	width := c.Max.X - c.Min.X
	h.main.Draw(draw.Crop(c, 0, -colorBarWidth, 0, 0))
	h.bar.Draw(draw.Crop(c, width-colorBarWidth, 0, 0, 0))
}

// WriteTo renders the heatmap in format (png, svg, pdf, jpg, tif or eps)
func (h *Heatmap) WriteTo(w io.Writer, format string) (int64, error) {
	c, err := draw.NewFormattedCanvas(h.Size, h.Size, strings.ToLower(format))
	if err != nil {
		return 0, apperrors.RenderError("heatmap: canvas", err)
	}
	h.Draw(draw.New(c))
	n, err := c.WriteTo(w)
	if err != nil {
		return n, apperrors.RenderError("heatmap: write", err)
	}
	return n, nil
}

// PNG returns the heatmap encoded as PNG
func (h *Heatmap) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := h.WriteTo(&buf, "png"); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the heatmap to path, choosing the format from its extension
func (h *Heatmap) Save(path string) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return apperrors.RenderError(fmt.Sprintf("heatmap: %q has no file extension", path), nil)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.RenderError("heatmap: create file", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = apperrors.RenderError("heatmap: close file", cerr)
		}
	}()

	_, err = h.WriteTo(f, format)
	return err
}

// SaveTo writes heatmap-<id>.png into dir and returns the file path
func (h *Heatmap) SaveTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.RenderError("heatmap: create directory", err)
	}
	path := filepath.Join(dir, "heatmap-"+h.ID+".png")
	if err := h.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
