package excel

import (
	"fmt"
	"log"
	"math"
	"time"

	"edakit/adapters/render"
	"edakit/adapters/stats/matrix"
	apperrors "edakit/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ReportConfig controls the layout of a matrix workbook
type ReportConfig struct {
	SheetName    string // defaults to the matrix method
	Precision    int    // decimals kept for each coefficient
	EmbedHeatmap bool
}

// DefaultReportConfig keeps 4 decimals and embeds the heatmap
func DefaultReportConfig() ReportConfig {
	return ReportConfig{Precision: 4, EmbedHeatmap: true}
}

// WriteMatrixReport writes m to an xlsx file at path with the default layout.
// hm may be nil, in which case no picture is embedded.
func WriteMatrixReport(path string, m *matrix.Matrix, hm *render.Heatmap) error {
	return WriteMatrixReportWith(path, m, hm, DefaultReportConfig())
}

// WriteMatrixReportWith writes m to an xlsx file at path using cfg
func WriteMatrixReportWith(path string, m *matrix.Matrix, hm *render.Heatmap, cfg ReportConfig) error {
	start := time.Now()
	f, err := MatrixWorkbook(m, hm, cfg)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return apperrors.ExportError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	log.Printf("[ExcelReport] %dx%d %s matrix written to %s in %.2fms",
		m.Size(), m.Size(), m.Method, path, float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

// MatrixWorkbook lays m out on a single sheet: column names across row 1,
// row names down column A, coefficients in between. Undefined coefficients
// are written as "nan". The heatmap, when embedded, sits two rows below the
// table.
func MatrixWorkbook(m *matrix.Matrix, hm *render.Heatmap, cfg ReportConfig) (*excelize.File, error) {
	if m == nil || m.Size() == 0 {
		return nil, apperrors.ExportError("matrix report: empty matrix", nil)
	}
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = m.Method.String()
	}

	f := excelize.NewFile()
	fail := func(msg string, err error) (*excelize.File, error) {
		f.Close()
		return nil, apperrors.ExportError(msg, err)
	}

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fail("matrix report: naming sheet", err)
	}

	k := m.Size()
	for i, name := range m.Columns {
		if err := f.SetCellValue(sheet, cell(i+2, 1), name); err != nil {
			return fail("matrix report: header", err)
		}
		if err := f.SetCellValue(sheet, cell(1, i+2), name); err != nil {
			return fail("matrix report: row label", err)
		}
	}

	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v := m.At(i, j)
			ref := cell(j+2, i+2)
			var err error
			if math.IsNaN(v) || math.IsInf(v, 0) {
				err = f.SetCellValue(sheet, ref, "nan")
			} else {
				err = f.SetCellFloat(sheet, ref, v, cfg.Precision, 64)
			}
			if err != nil {
				return fail(fmt.Sprintf("matrix report: cell %s", ref), err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fail("matrix report: style", err)
	}
	if err := f.SetCellStyle(sheet, cell(2, 1), cell(k+1, 1), bold); err != nil {
		return fail("matrix report: header style", err)
	}
	if err := f.SetCellStyle(sheet, cell(1, 2), cell(1, k+1), bold); err != nil {
		return fail("matrix report: label style", err)
	}

	if cfg.EmbedHeatmap && hm != nil {
		png, err := hm.PNG()
		if err != nil {
			return fail("matrix report: rendering heatmap", err)
		}
		pic := &excelize.Picture{
			Extension: ".png",
			File:      png,
			Format:    &excelize.GraphicOptions{AltText: hm.Title, ScaleX: 0.5, ScaleY: 0.5},
		}
		if err := f.AddPictureFromBytes(sheet, HeatmapCell(m), pic); err != nil {
			return fail("matrix report: embedding heatmap", err)
		}
	}

	return f, nil
}

// HeatmapCell is the anchor of the embedded heatmap
func HeatmapCell(m *matrix.Matrix) string {
	return cell(1, m.Size()+3)
}

// cell converts 1-based coordinates to an A1 reference
func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// coordinates are always positive here
		panic(err)
	}
	return name
}
