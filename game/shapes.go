package game

import (
	"encoding/json"
	"fmt"
)

const (
	Cols = 10
	Rows = 20
)

type PieceType string

const (
	Empty PieceType = ""
	I     PieceType = "I"
	J     PieceType = "J"
	L     PieceType = "L"
	O     PieceType = "O"
	S     PieceType = "S"
	T     PieceType = "T"
	Z     PieceType = "Z"
)

// PieceTypes lists every piece type in catalog order.
var PieceTypes = []PieceType{I, J, L, O, S, T, Z}

var shapes = map[PieceType][][]int{
	I: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	J: {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	L: {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
	O: {
		{1, 1},
		{1, 1},
	},
	S: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	T: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	Z: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
}

// Shape returns a copy of the base matrix for t.
func Shape(t PieceType) ([][]int, error) {
	m, ok := shapes[t]
	if !ok {
		return nil, fmt.Errorf("unknown piece type %q", string(t))
	}
	return copyMatrix(m), nil
}

func (t PieceType) Valid() bool {
	_, ok := shapes[t]
	return ok
}

// MarshalJSON encodes an empty cell as 0 and a filled cell as its tag,
// the grid format browser clients already understand.
func (t PieceType) MarshalJSON() ([]byte, error) {
	if t == Empty {
		return []byte("0"), nil
	}
	return json.Marshal(string(t))
}

func (t *PieceType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "null", `""`:
		*t = Empty
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid cell %s: %w", data, err)
	}

	if !PieceType(s).Valid() {
		return fmt.Errorf("unknown piece type %q", s)
	}

	*t = PieceType(s)
	return nil
}

func copyMatrix(m [][]int) [][]int {
	c := make([][]int, len(m))
	for y := range m {
		c[y] = append([]int(nil), m[y]...)
	}
	return c
}
