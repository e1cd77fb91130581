package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// getCellValueFromTable gets a cell value from a table row by column name
// It uses the first row (table.Rows[0]) as the header to find the column index
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	headerRow := table.Rows[0]

	// Find column index by matching header
	for i, headerCell := range headerRow.Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}

	return ""
}

func parseFloatCell(table *godog.Table, row *messages.PickleTableRow, columnName string) (float64, error) {
	raw := getCellValueFromTable(table, row, columnName)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", columnName, raw)
	}
	return value, nil
}

// splitList turns "Earth, Mars and Venus" into its items
func splitList(list string) []string {
	list = strings.ReplaceAll(list, " and ", ", ")
	var items []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func closeTo(actual, expected float64) bool {
	tolerance := 1e-9
	if expected > 1 || expected < -1 {
		tolerance *= abs(expected)
	}
	return abs(actual-expected) <= tolerance
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
