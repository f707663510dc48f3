package rules

import "errors"

// MaxMoves bounds the pseudo-legal moves of any reachable position.
const MaxMoves = 256

var errMoveListFull = errors.New("rules: move list capacity exceeded")

// MoveList is a fixed-capacity move buffer. Generation resets it, so the
// moves of one call never survive into the next call on the same list.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

// Reset empties the list.
func (ml *MoveList) Reset() { ml.n = 0 }

// Add appends m. Overflowing the capacity panics.
func (ml *MoveList) Add(m Move) {
	if ml.n == MaxMoves {
		panic(errMoveListFull)
	}
	ml.moves[ml.n] = m
	ml.n++
}

func (ml *MoveList) Len() int { return ml.n }

func (ml *MoveList) At(i int) Move { return ml.moves[:ml.n][i] }

// Moves returns the stored moves. The slice aliases the list and is
// overwritten by the next generation into it.
func (ml *MoveList) Moves() []Move { return ml.moves[:ml.n] }
