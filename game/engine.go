package game

import (
	"math"
	"math/rand"
	"time"
)

const (
	BaseDropInterval = 1000.0
	MinDropInterval  = 120.0
	LevelDropFactor  = 0.85
	LinesPerLevel    = 10
)

var lineScores = [...]int{0, 100, 300, 500, 800}

type state int

const (
	stateIdle state = iota
	stateRunning
	statePaused
	stateGameOver
)

type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// Engine owns the state of a single game. It is not safe for concurrent use;
// the host drives it from one goroutine.
type Engine struct {
	board  *Board
	bag    *Bag
	active *Piece
	next   *Piece

	score        int
	lines        int
	level        int
	dropInterval float64
	dropBuffer   float64
	state        state

	publisher Publisher
}

type Option func(*Engine)

// WithPublisher sends a snapshot to p after every state change.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) {
		if p != nil {
			e.publisher = p
		}
	}
}

// WithRand seeds the piece randomizer, mostly for tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.bag = NewBag(rng)
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{publisher: nopPublisher{}}

	for _, opt := range opts {
		opt(e)
	}

	if e.bag == nil {
		e.bag = NewBag(nil)
	}

	e.init()

	return e
}

func (e *Engine) init() {
	e.board = NewBoard()
	e.bag.Reset()
	e.active = e.newPiece()
	e.next = e.newPiece()
	e.score = 0
	e.lines = 0
	e.level = 1
	e.dropInterval = BaseDropInterval
	e.dropBuffer = 0
	e.state = stateIdle
}

func (e *Engine) newPiece() *Piece {
	// Bag only deals catalog types, so NewPiece cannot fail here.
	p, _ := NewPiece(e.bag.Next())
	return p
}

func (e *Engine) publish() {
	e.publisher.Publish(e.Snapshot())
}

// Reset returns the engine to a fresh idle game from any state.
func (e *Engine) Reset() {
	e.init()
	e.publish()
}

// Start begins play from idle, or resumes a paused game. Calling it while
// running only clears the pause flag. It does nothing after game over.
func (e *Engine) Start() {
	switch e.state {
	case stateIdle:
		e.dropBuffer = 0
		e.state = stateRunning
	case statePaused:
		e.state = stateRunning
	case stateRunning:
		return
	case stateGameOver:
		return
	}
	e.publish()
}

func (e *Engine) TogglePause() {
	switch e.state {
	case stateRunning:
		e.state = statePaused
	case statePaused:
		e.state = stateRunning
	default:
		return
	}
	e.publish()
}

func (e *Engine) playing() bool {
	return e.state == stateRunning
}

// Tick advances the drop timer. Once the accumulated time reaches the drop
// interval the buffer resets and the active piece falls one row.
func (e *Engine) Tick(elapsed time.Duration) {
	if !e.playing() {
		return
	}

	e.dropBuffer += float64(elapsed) / float64(time.Millisecond)
	if e.dropBuffer >= e.dropInterval {
		e.dropBuffer = 0
		e.SoftDrop()
	}
}

func (e *Engine) Move(dir Direction) {
	if !e.playing() {
		return
	}

	x := e.active.Pos.X + int(dir)
	if e.board.Collides(e.active.Matrix, x, e.active.Pos.Y) {
		return
	}

	e.active.Pos.X = x
	e.publish()
}

func (e *Engine) MoveLeft() {
	e.Move(Left)
}

func (e *Engine) MoveRight() {
	e.Move(Right)
}

func (e *Engine) SoftDrop() {
	if !e.playing() {
		return
	}

	if e.canFall() {
		e.active.Pos.Y++
	} else {
		e.lockAndSpawn()
	}
	e.publish()
}

func (e *Engine) HardDrop() {
	if !e.playing() {
		return
	}

	for e.canFall() {
		e.active.Pos.Y++
	}
	e.lockAndSpawn()
	e.publish()
}

func (e *Engine) Rotate() {
	if !e.playing() {
		return
	}

	if RotateWithKick(e.board, e.active) {
		e.publish()
	}
}

func (e *Engine) canFall() bool {
	return !e.board.Collides(e.active.Matrix, e.active.Pos.X, e.active.Pos.Y+1)
}

func (e *Engine) lockAndSpawn() {
	overflow := e.board.Lock(e.active)

	if cleared := e.board.ClearFullRows(); cleared > 0 {
		e.lines += cleared
		e.score += ScoreFor(cleared, e.level)

		if level := e.lines/LinesPerLevel + 1; level != e.level {
			e.level = level
			e.dropInterval = DropInterval(level)
		}
	}

	if overflow != nil {
		e.gameOver()
		return
	}

	e.active = e.next
	e.active.Pos = SpawnPosition(e.active.Matrix)
	e.next = e.newPiece()

	if e.board.Collides(e.active.Matrix, e.active.Pos.X, e.active.Pos.Y) {
		e.gameOver()
	}
}

func (e *Engine) gameOver() {
	e.state = stateGameOver
	e.dropBuffer = 0
}

// ScoreFor returns the points for clearing n rows at once on level.
func ScoreFor(n, level int) int {
	if n < 0 || n >= len(lineScores) {
		return 0
	}
	return lineScores[n] * level
}

// DropInterval returns the gravity interval in milliseconds for level.
func DropInterval(level int) float64 {
	return math.Max(MinDropInterval, BaseDropInterval*math.Pow(LevelDropFactor, float64(level-1)))
}

func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) Lines() int {
	return e.lines
}

func (e *Engine) Level() int {
	return e.level
}

// DropIntervalMs is the current gravity interval in milliseconds.
func (e *Engine) DropIntervalMs() float64 {
	return e.dropInterval
}

func (e *Engine) Running() bool {
	return e.state == stateRunning || e.state == statePaused
}

func (e *Engine) Paused() bool {
	return e.state == statePaused
}

func (e *Engine) GameOver() bool {
	return e.state == stateGameOver
}
