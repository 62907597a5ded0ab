// Package report turns screen results into artifacts: xlsx workbooks
// and per-ticker price charts.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// Workbook file names inside the export directory.
const (
	FullWorkbook     = "all_results.xlsx"
	FilteredWorkbook = "filtered_results.xlsx"
)

var columnHeaders = []string{"Ticker", "PE Ratio", "ROE (%)", "RSI", "Volume Spike", "Signal"}

// ExcelWriter writes screen tables as xlsx workbooks.
type ExcelWriter struct {
	dir    string
	logger *logger.Logger
}

// NewExcelWriter creates a writer that exports into dir.
func NewExcelWriter(dir string, log *logger.Logger) *ExcelWriter {
	return &ExcelWriter{
		dir:    dir,
		logger: log.WithField("module", "report"),
	}
}

// WriteResult exports both tables: the full table to all_results.xlsx
// and the filtered shortlist to filtered_results.xlsx. An empty
// filtered table still produces a workbook with just the header row.
func (w *ExcelWriter) WriteResult(result *contracts.ScreenResult) error {
	if err := w.writeTable(FullWorkbook, result.Full); err != nil {
		return err
	}
	return w.writeTable(FilteredWorkbook, result.Filtered)
}

func (w *ExcelWriter) writeTable(name string, rows []contracts.ScreenRow) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Ticker,
			row.PERatio,
			row.ROEPercent,
			row.RSI,
			row.VolumeSpikeToday,
			string(row.Signal),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	path := filepath.Join(w.dir, name)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	w.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(rows),
	}).Info("Wrote workbook")
	return nil
}
