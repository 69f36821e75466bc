package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jneverifica/firmas-system/internal/core/ports"
)

const (
	analystSheet = "Analistas"
	expertSheet  = "Peritos"
	summarySheet = "Resumen"
)

// SnapshotWriter serialises report aggregates to a timestamped spreadsheet
// in the configured directory.
type SnapshotWriter struct {
	dir string
}

func NewSnapshotWriter(dir string) *SnapshotWriter {
	return &SnapshotWriter{dir: dir}
}

// WriteSnapshot writes one sheet per worker table plus a summary sheet and
// returns the generated file path.
func (w *SnapshotWriter) WriteSnapshot(analysts, experts []ports.WorkerAggregate, summary *ports.ProgressSummary) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", analystSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, analystSheet, 1, []any{"Usuario", "Fichas", "Conformes", "Para Perito"}); err != nil {
		return "", err
	}
	for i, a := range analysts {
		if err := setRow(f, analystSheet, i+2, []any{a.Worker, a.Count, a.Conforming, a.Escalated}); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet(expertSheet); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, expertSheet, 1, []any{"Usuario", "Informes", "Autenticas", "Falsas", "Min Promedio"}); err != nil {
		return "", err
	}
	for i, e := range experts {
		if err := setRow(f, expertSheet, i+2, []any{e.Worker, e.Count, e.Authentic, e.Forged, e.AvgMinutes}); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	summaryRows := [][]any{
		{"Fichas analizadas", summary.Screenings},
		{"Informes periciales", summary.Verdicts},
		{"Completado", summary.Completed},
		{"Total fichas", summary.TotalRecords},
		{"Avance %", summary.Percentage},
	}
	for i, row := range summaryRows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("reporte_avance_%s.xlsx", time.Now().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return path, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}
