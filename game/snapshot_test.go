package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotGhost(t *testing.T) {
	e, _ := newTestEngine(t)
	e.board.set(0, 19, T)

	p, err := NewPiece(O)
	require.NoError(t, err)
	p.Pos = Position{X: 0, Y: 2}
	e.active = p

	s := e.Snapshot()
	require.Equal(t, Position{X: 0, Y: 17}, s.Ghost.Pos)
	require.Equal(t, Position{X: 0, Y: 2}, s.Active.Pos)
}

func TestSnapshotIsACopy(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.Snapshot()

	s.Grid[0][0] = Z
	s.Active.Pos.X = 99
	s.Active.Matrix[0][0] = 5

	require.Equal(t, Empty, e.board.Cell(0, 0))
	require.NotEqual(t, 99, e.active.Pos.X)
	require.NotEqual(t, 5, e.active.Matrix[0][0])
}

func TestSnapshotJSON(t *testing.T) {
	e, _ := newTestEngine(t)
	e.board.set(1, 0, J)

	data, err := json.Marshal(e.Snapshot())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), `{"grid":[[0,"J",0,`))
	require.Contains(t, string(data), `"status":"idle"`)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, e.Snapshot(), decoded)

	t.Run("rejects unknown cells", func(t *testing.T) {
		var cell PieceType
		require.Error(t, json.Unmarshal([]byte(`"Q"`), &cell))
		require.Error(t, json.Unmarshal([]byte(`3`), &cell))
		require.NoError(t, json.Unmarshal([]byte(`0`), &cell))
		require.Equal(t, Empty, cell)
	})
}
