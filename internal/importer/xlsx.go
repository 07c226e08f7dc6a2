package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// preferredSheets are the tab names an import looks for before falling back
// to the first sheet, compared case-insensitively.
var preferredSheets = []string{"LANCAMENTOS", "BASE", "PAI", "MAE", "EU"}

// ReadWorkbook reads one sheet of an xlsx workbook into header-keyed
// records. Missing cells default to "". Returns the sheet that was read.
func ReadWorkbook(path string) ([]Record, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return nil, "", fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, sheet, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, cols := range rows[1:] {
		if isBlankLine(cols) {
			continue
		}
		r := make(Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			// excelize trims trailing empty cells off each row
			if i < len(cols) {
				r[h] = strings.TrimSpace(cols[i])
			} else {
				r[h] = ""
			}
		}
		records = append(records, r)
	}
	return records, sheet, nil
}

func pickSheet(names []string) string {
	for _, name := range names {
		upper := strings.ToUpper(name)
		for _, want := range preferredSheets {
			if upper == want {
				return name
			}
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}
