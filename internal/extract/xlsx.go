package extract

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// extractXLSX flattens every sheet to text: cells joined by tabs, rows by
// newlines, sheets separated by a blank line.
func extractXLSX(data []byte) Result {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return Result{Err: eris.Wrap(err, "extract: open xlsx")}
	}

	var sheets []string
	for _, sheet := range f.Sheets {
		var rows []string
		for _, row := range sheet.Rows {
			cells := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = cell.String()
			}
			line := strings.TrimRight(strings.Join(cells, "\t"), "\t")
			if strings.TrimSpace(line) != "" {
				rows = append(rows, line)
			}
		}
		if len(rows) > 0 {
			sheets = append(sheets, strings.Join(rows, "\n"))
		}
	}

	return Result{Text: strings.Join(sheets, "\n\n")}
}
