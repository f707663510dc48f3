package rules

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
type zobristKeys struct {
	piece     [12][64]uint64
	castle    [16]uint64
	enPassant [8]uint64 // by file
	side      uint64    // Black to move
}

var zobrist = newZobristKeys()

func newZobristKeys() *zobristKeys {
	// Fixed seed so hashes are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	z := &zobristKeys{}
	for p := range z.piece {
		for sq := range z.piece[p] {
			z.piece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range z.castle {
		z.castle[cr] = rnd.Uint64()
	}
	for f := range z.enPassant {
		z.enPassant[f] = rnd.Uint64()
	}
	z.side = rnd.Uint64()
	return z
}

// Hash returns the Zobrist key of the position. Counters are not hashed, so
// positions that differ only in move clocks share a key.
func (p *Position) Hash() uint64 {
	var key uint64
	for kind := range p.pieces {
		for bb := p.pieces[kind]; bb != 0; {
			key ^= zobrist.piece[kind][popLSB(&bb)]
		}
	}
	if p.side == Black {
		key ^= zobrist.side
	}
	key ^= zobrist.castle[p.castling]
	if p.enPassant != NoSquare {
		key ^= zobrist.enPassant[p.enPassant.File()]
	}
	return key
}
