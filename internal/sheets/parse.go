package sheets

import (
	"strconv"
	"strings"
)

// ParseAmount converts a cell holding a monetary or percentage value to a
// float. A cell that does not parse (empty, "N/A", legacy junk) resolves to 0
// rather than failing the whole read — tolerant by policy, keep it that way.
func ParseAmount(cell string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return f
}

// Cell returns row[i], or "" when the row is too short. Sheets trims
// trailing empty cells from returned rows, so short rows are routine.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
