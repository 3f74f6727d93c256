package game

import (
	"math/rand"
	"time"
)

// Bag deals piece types in shuffled runs of seven. Every aligned run of
// seven draws contains each type exactly once.
type Bag struct {
	rng   *rand.Rand
	queue []PieceType
}

func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bag{rng: rng}
}

func (b *Bag) Next() PieceType {
	if len(b.queue) == 0 {
		b.queue = append(b.queue[:0], PieceTypes...)
		b.rng.Shuffle(len(b.queue), func(i, j int) {
			b.queue[i], b.queue[j] = b.queue[j], b.queue[i]
		})
	}

	last := len(b.queue) - 1
	t := b.queue[last]
	b.queue = b.queue[:last]
	return t
}

// Reset discards the remainder of the current run.
func (b *Bag) Reset() {
	b.queue = b.queue[:0]
}
