package domain

// TimesTableSize is the extent of the explorer grid.
const TimesTableSize = 12

// TimesTableCell is one product cell of the explorer grid.
type TimesTableCell struct {
	Row         int  `json:"row"`
	Col         int  `json:"col"`
	Value       int  `json:"value"`
	Highlighted bool `json:"highlighted"`
}

// TimesTable projects the 12×12 explorer grid. A highlight in 1..12 marks
// that table's row and column; any other value highlights nothing.
func TimesTable(highlight int) [][]TimesTableCell {
	if highlight < 1 || highlight > TimesTableSize {
		highlight = 0
	}
	grid := make([][]TimesTableCell, TimesTableSize)
	for row := 1; row <= TimesTableSize; row++ {
		cells := make([]TimesTableCell, TimesTableSize)
		for col := 1; col <= TimesTableSize; col++ {
			cells[col-1] = TimesTableCell{
				Row:         row,
				Col:         col,
				Value:       row * col,
				Highlighted: highlight > 0 && (row == highlight || col == highlight),
			}
		}
		grid[row-1] = cells
	}
	return grid
}
