package edakit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"edakit/adapters/excel"
	"edakit/adapters/render"
	"edakit/adapters/report"
	"edakit/adapters/stats/matrix"
	apperrors "edakit/internal/errors"
)

// ExportMatrix writes m in the format named by the extension of path:
// .xlsx (table plus embedded heatmap), .md, .html, or any image format the
// heatmap supports. hm may be nil except for image formats.
func (a *Analyzer) ExportMatrix(path string, m *matrix.Matrix, hm *render.Heatmap) error {
	if m == nil {
		return apperrors.ExportError("export: nil matrix", nil)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	var err error
	switch ext {
	case "xlsx":
		err = excel.WriteMatrixReport(path, m, hm)
	case "md", "markdown":
		err = writeText(path, report.MatrixMarkdown(m))
	case "html", "htm":
		err = writeText(path, report.MatrixHTML(m))
	default:
		if hm == nil {
			return apperrors.ExportError(fmt.Sprintf("export: %s needs a heatmap", path), nil)
		}
		err = hm.Save(path)
	}
	if err != nil {
		return err
	}
	a.logger.Info("%s matrix exported to %s", m.Method, path)
	return nil
}

// ExportMatrix runs Default.ExportMatrix
func ExportMatrix(path string, m *matrix.Matrix, hm *render.Heatmap) error {
	return Default.ExportMatrix(path, m, hm)
}

func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return apperrors.ExportError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
