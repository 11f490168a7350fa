package domain

import "fmt"

// Field length limits enforced at write time.
const (
	// MaxSheetNameLen caps the public identifier of a sheet.
	MaxSheetNameLen = 32
	// MaxPlateNameLen caps the identifier printed on a plate.
	MaxPlateNameLen = 9
	// MaxWellCommentsLen caps free-text comments on a well.
	MaxWellCommentsLen = 256
)

// Plate grid dimensions. Rows are lettered A through H, columns numbered
// 01 through 12, giving the 96 positions of a standard plate.
const (
	PlateRows    = 8
	PlateColumns = 12
)

// PrimerNames returns the enumerated set of valid primer identifiers.
func PrimerNames() []string {
	return []string{"01", "04", "DL"}
}

// IsPrimerName reports whether name belongs to the enumerated primer set.
func IsPrimerName(name string) bool {
	for _, p := range PrimerNames() {
		if p == name {
			return true
		}
	}
	return false
}

// WellPositions returns the 96 well names of the plate grid in row-major
// order, A01 through H12.
func WellPositions() []string {
	positions := make([]string, 0, PlateRows*PlateColumns)
	for row := 0; row < PlateRows; row++ {
		for col := 1; col <= PlateColumns; col++ {
			positions = append(positions, fmt.Sprintf("%c%02d", 'A'+row, col))
		}
	}
	return positions
}

// IsWellPosition reports whether name is a valid grid position A01..H12.
func IsWellPosition(name string) bool {
	if len(name) != 3 {
		return false
	}
	if name[0] < 'A' || name[0] > 'H' {
		return false
	}
	if name[1] < '0' || name[1] > '9' || name[2] < '0' || name[2] > '9' {
		return false
	}
	col := int(name[1]-'0')*10 + int(name[2]-'0')
	return col >= 1 && col <= PlateColumns
}

// WellRowIndex returns the zero-based row of a valid well name, A mapping
// to 0 and H to 7.
func WellRowIndex(name string) int {
	return int(name[0] - 'A')
}

// WellColumnIndex returns the zero-based column of a valid well name, 01
// mapping to 0 and 12 to 11.
func WellColumnIndex(name string) int {
	return int(name[1]-'0')*10 + int(name[2]-'0') - 1
}
