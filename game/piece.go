package game

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is a shape with its current orientation and top-left board offset.
type Piece struct {
	Type   PieceType `json:"type" validate:"required,oneof=I J L O S T Z"`
	Matrix [][]int   `json:"matrix" validate:"required,min=2,max=4,dive,min=2,max=4"`
	Pos    Position  `json:"pos"`
}

// NewPiece builds a piece of type t at its spawn position.
func NewPiece(t PieceType) (*Piece, error) {
	m, err := Shape(t)
	if err != nil {
		return nil, err
	}

	p := &Piece{Type: t, Matrix: m}
	p.Pos = SpawnPosition(m)

	return p, nil
}

// SpawnPosition centers matrix horizontally on the top row.
func SpawnPosition(matrix [][]int) Position {
	w := width(matrix)
	return Position{X: Cols/2 - (w+1)/2, Y: 0}
}

func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{Type: p.Type, Matrix: copyMatrix(p.Matrix), Pos: p.Pos}
}

// Cells returns the board coordinates covered by the piece.
func (p *Piece) Cells() []Position {
	cells := make([]Position, 0, 4)
	for y, row := range p.Matrix {
		for x, v := range row {
			if v != 0 {
				cells = append(cells, Position{X: p.Pos.X + x, Y: p.Pos.Y + y})
			}
		}
	}
	return cells
}

// Rotate returns matrix turned 90 degrees clockwise. Matrices are square.
func Rotate(matrix [][]int) [][]int {
	n := len(matrix)
	rotated := make([][]int, n)
	for y := 0; y < n; y++ {
		rotated[y] = make([]int, n)
		for x := 0; x < n; x++ {
			rotated[y][x] = matrix[n-1-x][y]
		}
	}
	return rotated
}

// RotateWithKick rotates p clockwise on board b. When the rotated matrix
// collides, horizontal offsets are tried in a zig-zag (+1, -2, +3, ...)
// relative to the last trial until the next step exceeds the rotated width.
// It reports false and leaves p untouched when no position fits.
func RotateWithKick(b *Board, p *Piece) bool {
	rotated := Rotate(p.Matrix)
	x := p.Pos.X
	bound := width(rotated)

	offset := 1
	for b.Collides(rotated, x, p.Pos.Y) {
		x += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
		if offset > bound {
			return false
		}
	}

	p.Matrix = rotated
	p.Pos.X = x
	return true
}

func width(matrix [][]int) int {
	if len(matrix) == 0 {
		return 0
	}
	return len(matrix[0])
}
