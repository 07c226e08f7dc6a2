// Package export writes the whole ledger to a four-sheet XLSX workbook. The
// column layout mirrors what the importer accepts, so an exported file can be
// re-imported unchanged.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"organizador/internal/core"
	"organizador/internal/storage"
)

const (
	SheetTransactions = "LANCAMENTOS"
	SheetClosings     = "FECHAMENTOS"
	SheetCardStatus   = "CARTOES_STATUS"
	SheetExtras       = "EXTRAS"
)

// Filename returns the dated workbook name, e.g.
// Organizador_Financeiro_2024-03-15.xlsx.
func Filename(now time.Time) string {
	return fmt.Sprintf("Organizador_Financeiro_%s.xlsx", core.ToISODate(now))
}

// Save writes the snapshot workbook into dir and returns the full path.
func Save(snap storage.Snapshot, dir string, now time.Time) (string, error) {
	f, err := BuildWorkbook(snap)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, Filename(now))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

// BuildWorkbook renders the snapshot into an in-memory workbook.
func BuildWorkbook(snap storage.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	for _, b := range Blocks(snap) {
		if err := writeSheet(f, b); err != nil {
			f.Close()
			return nil, err
		}
	}

	// excelize seeds a default sheet that would otherwise survive as a
	// fifth, empty tab
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetTransactions); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSheet(f *excelize.File, b Block) error {
	if _, err := f.NewSheet(b.Name); err != nil {
		return fmt.Errorf("create sheet %s: %w", b.Name, err)
	}
	header := b.Header
	if err := f.SetSheetRow(b.Name, "A1", &header); err != nil {
		return fmt.Errorf("write header %s: %w", b.Name, err)
	}
	for i, row := range b.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("address row %d: %w", i+2, err)
		}
		row := row
		if err := f.SetSheetRow(b.Name, cell, &row); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+2, b.Name, err)
		}
	}
	return nil
}
