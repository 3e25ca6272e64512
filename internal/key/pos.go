package key

import "fmt"

// Pos is a dense one-byte encoding of a physical key position: the high
// nibble is the row, the low nibble is the column. Matrices up to 16x16 fit.
type Pos uint8

// InvalidPos marks a position that does not refer to a real key. It shares
// an encoding with (15, 15), which no supported matrix uses.
const InvalidPos Pos = 0xFF

// MaxPositions is the number of encodable positions.
const MaxPositions = 256

// NewPos packs a (row, column) coordinate.
func NewPos(row, col uint8) Pos {
	return Pos(row<<4 | col&0x0F)
}

// Row returns the matrix row.
func (p Pos) Row() uint8 {
	return uint8(p) >> 4
}

// Col returns the matrix column.
func (p Pos) Col() uint8 {
	return uint8(p) & 0x0F
}

// String returns the position as "r<row>c<col>".
func (p Pos) String() string {
	if p == InvalidPos {
		return "invalid"
	}
	return fmt.Sprintf("r%dc%d", p.Row(), p.Col())
}
