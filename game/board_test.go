package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, y int, t PieceType, skip ...int) {
	for x := 0; x < Cols; x++ {
		b.set(x, y, t)
	}
	for _, x := range skip {
		b.set(x, y, Empty)
	}
}

func TestBoardOccupied(t *testing.T) {
	b := NewBoard()
	b.set(3, 4, T)

	require.True(t, b.Occupied(3, 4))
	require.False(t, b.Occupied(4, 4))

	t.Run("outside columns block", func(t *testing.T) {
		require.True(t, b.Occupied(-1, 0))
		require.True(t, b.Occupied(Cols, 0))
		require.True(t, b.Occupied(-1, -3))
	})

	t.Run("floor blocks", func(t *testing.T) {
		require.True(t, b.Occupied(0, Rows))
		require.True(t, b.Occupied(5, Rows+3))
	})

	t.Run("above the top is open", func(t *testing.T) {
		require.False(t, b.Occupied(0, -1))
		require.False(t, b.Occupied(9, -4))
	})
}

func TestBoardClearFullRows(t *testing.T) {
	t.Run("non contiguous rows", func(t *testing.T) {
		b := NewBoard()
		for y := 0; y < Rows; y++ {
			// every other row gets a distinct partial pattern
			b.set(y%Cols, y, PieceTypes[y%len(PieceTypes)])
		}
		fillRow(b, 5, I)
		fillRow(b, 7, J)
		fillRow(b, 19, L)

		before := b.Rows()

		require.Equal(t, 3, b.ClearFullRows())

		var want [][]PieceType
		for i := 0; i < 3; i++ {
			want = append(want, make([]PieceType, Cols))
		}
		for y, row := range before {
			if y == 5 || y == 7 || y == 19 {
				continue
			}
			want = append(want, row)
		}

		require.Equal(t, want, b.Rows())
	})

	t.Run("adjacent rows", func(t *testing.T) {
		b := NewBoard()
		b.set(2, 17, S)
		fillRow(b, 18, T)
		fillRow(b, 19, Z)

		require.Equal(t, 2, b.ClearFullRows())
		require.Equal(t, S, b.Cell(2, 19))
		require.Equal(t, Empty, b.Cell(2, 17))

		for x := 0; x < Cols; x++ {
			require.Equal(t, Empty, b.Cell(x, 18))
		}
	})

	t.Run("four at once", func(t *testing.T) {
		b := NewBoard()
		for y := 16; y < Rows; y++ {
			fillRow(b, y, I)
		}
		b.set(0, 15, O)

		require.Equal(t, 4, b.ClearFullRows())
		require.Equal(t, O, b.Cell(0, 19))
	})

	t.Run("nothing full", func(t *testing.T) {
		b := NewBoard()
		fillRow(b, 19, I, 4)

		require.Equal(t, 0, b.ClearFullRows())
		require.Equal(t, Empty, b.Cell(4, 19))
		require.Equal(t, I, b.Cell(3, 19))
	})
}

func TestBoardLock(t *testing.T) {
	t.Run("writes every cell", func(t *testing.T) {
		b := NewBoard()
		p, err := NewPiece(T)
		require.NoError(t, err)
		p.Pos = Position{X: 0, Y: 18}

		require.NoError(t, b.Lock(p))

		for _, c := range p.Cells() {
			require.Equal(t, T, b.Cell(c.X, c.Y))
		}
	})

	t.Run("above the top overflows", func(t *testing.T) {
		b := NewBoard()
		p, err := NewPiece(O)
		require.NoError(t, err)
		p.Pos = Position{X: 4, Y: -1}

		require.ErrorIs(t, b.Lock(p), ErrLockOverflow)
		require.Equal(t, O, b.Cell(4, 0))
		require.Equal(t, O, b.Cell(5, 0))
	})
}
