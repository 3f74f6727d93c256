package game

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Snapshot is a value copy of the engine state, safe to render, serialize
// and send to the opponent. Receivers always treat it as a full replacement.
type Snapshot struct {
	Grid     [][]PieceType `json:"grid" validate:"len=20,dive,len=10,dive,omitempty,oneof=I J L O S T Z"`
	Active   *Piece        `json:"active"`
	Ghost    *Piece        `json:"ghost,omitempty"`
	Next     *Piece        `json:"next"`
	Score    int           `json:"score" validate:"min=0"`
	Lines    int           `json:"lines" validate:"min=0"`
	Level    int           `json:"level" validate:"min=1"`
	Status   Status        `json:"status" validate:"oneof=idle running paused"`
	GameOver bool          `json:"gameOver"`
	Seq      uint64        `json:"seq,omitempty"`
}

// Publisher receives a snapshot after every state-changing engine operation.
type Publisher interface {
	Publish(Snapshot)
}

type PublisherFunc func(Snapshot)

func (f PublisherFunc) Publish(s Snapshot) {
	f(s)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Snapshot) {}

// Snapshot captures the current state, including the ghost projection of
// the active piece.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Grid:     e.board.Rows(),
		Active:   e.active.Clone(),
		Next:     e.next.Clone(),
		Score:    e.score,
		Lines:    e.lines,
		Level:    e.level,
		Status:   e.wireStatus(),
		GameOver: e.state == stateGameOver,
	}

	if e.active != nil {
		s.Ghost = e.Ghost()
	}

	return s
}

// Ghost projects the active piece straight down until it would collide.
func (e *Engine) Ghost() *Piece {
	g := e.active.Clone()
	for !e.board.Collides(g.Matrix, g.Pos.X, g.Pos.Y+1) {
		g.Pos.Y++
	}
	return g
}

func (e *Engine) wireStatus() Status {
	switch e.state {
	case stateRunning:
		return StatusRunning
	case statePaused:
		return StatusPaused
	default:
		return StatusIdle
	}
}
