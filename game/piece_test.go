package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotateFourTimes(t *testing.T) {
	for _, pt := range PieceTypes {
		t.Run(string(pt), func(t *testing.T) {
			m, err := Shape(pt)
			require.NoError(t, err)

			r := m
			for i := 0; i < 4; i++ {
				r = Rotate(r)
				require.Len(t, r, len(m))
			}

			require.Equal(t, m, r)
		})
	}
}

func TestRotateClockwise(t *testing.T) {
	m, err := Shape(I)
	require.NoError(t, err)

	r := Rotate(m)
	for y := range r {
		require.Equal(t, []int{0, 0, 1, 0}, r[y])
	}
}

func TestShapeReturnsCopy(t *testing.T) {
	m, err := Shape(T)
	require.NoError(t, err)
	m[0][0] = 7

	again, err := Shape(T)
	require.NoError(t, err)
	require.Equal(t, 0, again[0][0])

	_, err = Shape("X")
	require.Error(t, err)
}

func TestSpawnPosition(t *testing.T) {
	cases := map[PieceType]int{I: 3, J: 3, L: 3, O: 4, S: 3, T: 3, Z: 3}

	for pt, x := range cases {
		p, err := NewPiece(pt)
		require.NoError(t, err)
		require.Equal(t, Position{X: x, Y: 0}, p.Pos, string(pt))
	}
}

func verticalI(t *testing.T, x, y int) *Piece {
	t.Helper()

	p, err := NewPiece(I)
	require.NoError(t, err)
	p.Matrix = Rotate(p.Matrix)
	p.Pos = Position{X: x, Y: y}

	return p
}

func TestRotateWithKick(t *testing.T) {
	t.Run("no collision keeps position", func(t *testing.T) {
		b := NewBoard()
		p, err := NewPiece(T)
		require.NoError(t, err)
		p.Pos.Y = 5

		require.True(t, RotateWithKick(b, p))
		require.Equal(t, 3, p.Pos.X)
		require.Equal(t, Rotate(shapes[T]), p.Matrix)
	})

	t.Run("kicks off the right wall", func(t *testing.T) {
		b := NewBoard()
		// the filled column sits at board column 9
		p := verticalI(t, 7, 5)

		require.True(t, RotateWithKick(b, p))
		require.Equal(t, 6, p.Pos.X)

		for _, c := range p.Cells() {
			require.GreaterOrEqual(t, c.X, 0)
			require.Less(t, c.X, Cols)
		}
	})

	t.Run("kicks off the left wall", func(t *testing.T) {
		b := NewBoard()
		p := verticalI(t, -2, 5)

		require.True(t, RotateWithKick(b, p))
		require.Equal(t, 0, p.Pos.X)
	})

	t.Run("rejected in a narrow well", func(t *testing.T) {
		b := NewBoard()
		for y := 10; y < Rows; y++ {
			fillRow(b, y, Z, 5)
		}
		p := verticalI(t, 3, 14)
		before := p.Clone()

		require.False(t, RotateWithKick(b, p))
		require.Equal(t, before, p)
	})

	t.Run("never leaves the board", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))

		for i := 0; i < 500; i++ {
			b := NewBoard()
			for y := 8; y < Rows; y++ {
				for x := 0; x < Cols; x++ {
					if rng.Intn(3) == 0 {
						b.set(x, y, S)
					}
				}
			}

			p, err := NewPiece(PieceTypes[rng.Intn(len(PieceTypes))])
			require.NoError(t, err)
			p.Pos = Position{X: rng.Intn(Cols+4) - 2, Y: rng.Intn(12)}
			if b.Collides(p.Matrix, p.Pos.X, p.Pos.Y) {
				continue
			}

			before := p.Clone()
			if !RotateWithKick(b, p) {
				require.Equal(t, before, p)
				continue
			}

			require.False(t, b.Collides(p.Matrix, p.Pos.X, p.Pos.Y))
			for _, c := range p.Cells() {
				require.GreaterOrEqual(t, c.X, 0)
				require.Less(t, c.X, Cols)
			}
		}
	})
}
