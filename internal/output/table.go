package output

import (
	"fmt"
	"io"

	"github.com/rodaine/table"
)

var headerStyle = keyStyle.Underline(true)

// RenderTable renders rows under the column headers for rich mode
func RenderTable(w io.Writer, columns []Column, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}

	tbl := table.New(headers...).
		WithWriter(w).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return headerStyle.Render(fmt.Sprintf(format, vals...))
		})

	for _, row := range rows {
		cells := make([]interface{}, len(columns))
		for i, col := range columns {
			value := row[i]
			if col.Width > 0 {
				value = TruncateString(value, col.Width)
			}
			cells[i] = value
		}
		tbl.AddRow(cells...)
	}

	tbl.Print()
}

// TruncateString truncates a string to maxLen and adds "..." if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
