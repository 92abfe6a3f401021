package steps

import (
	"fmt"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"
)

// getCellValue gets a cell value from a table row by column name.
// The first row (table.Rows[0]) is the header.
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}

// columnValues returns every non-header value of one column
func columnValues(table *godog.Table, columnName string) ([]string, error) {
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("table is empty")
	}

	values := make([]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values = append(values, getCellValue(table, row, columnName))
	}
	return values, nil
}
