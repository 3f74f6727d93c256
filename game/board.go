package game

import "errors"

// ErrLockOverflow is returned by Board.Lock when part of the piece settled
// above the visible top row.
var ErrLockOverflow = errors.New("piece locked above the board")

// Board is the fixed Rows x Cols grid of locked material.
type Board struct {
	grid [Rows][Cols]PieceType
}

func NewBoard() *Board {
	return &Board{}
}

// Occupied reports whether (x, y) blocks a piece. Columns outside the board
// and rows at or below the floor always block; rows above the top do not.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || x >= Cols || y >= Rows {
		return true
	}
	if y < 0 {
		return false
	}
	return b.Cell(x, y) != Empty
}

// Collides reports whether matrix placed with its top-left corner at (x, y)
// overlaps a blocking cell.
func (b *Board) Collides(matrix [][]int, x, y int) bool {
	for my, row := range matrix {
		for mx, v := range row {
			if v == 0 {
				continue
			}
			if b.Occupied(x+mx, y+my) {
				return true
			}
		}
	}
	return false
}

// Lock writes the piece into the grid. Cells above row 0 are skipped and
// reported through ErrLockOverflow; the rest of the piece is still written.
func (b *Board) Lock(p *Piece) error {
	var err error

	for _, c := range p.Cells() {
		if c.Y < 0 {
			err = ErrLockOverflow
			continue
		}
		b.set(c.X, c.Y, p.Type)
	}

	return err
}

// ClearFullRows removes every full row, shifting the rows above it down and
// inserting empty rows at the top. The scan runs bottom to top and re-checks
// the same index after a removal, since the row above has moved into it.
func (b *Board) ClearFullRows() int {
	cleared := 0

	for y := Rows - 1; y >= 0; y-- {
		if !b.rowFull(y) {
			continue
		}

		copy(b.grid[1:y+1], b.grid[0:y])
		b.grid[0] = [Cols]PieceType{}
		cleared++
		y++
	}

	return cleared
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < Cols; x++ {
		if b.grid[y][x] == Empty {
			return false
		}
	}
	return true
}

// Cell returns the content at (x, y), or Empty when out of range.
func (b *Board) Cell(x, y int) PieceType {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return Empty
	}
	return b.grid[y][x]
}

// set writes a single cell. Out of range coordinates are ignored.
func (b *Board) set(x, y int, t PieceType) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return
	}
	b.grid[y][x] = t
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]PieceType {
	rows := make([][]PieceType, Rows)
	for y := range b.grid {
		rows[y] = append([]PieceType(nil), b.grid[y][:]...)
	}
	return rows
}
