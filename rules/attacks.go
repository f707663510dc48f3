package rules

import (
	"errors"
	"math/bits"
	"sync"
)

// ErrAttacksUninitialized is the panic value raised when a query reaches an
// Attacks value that was not built by NewAttacks.
var ErrAttacksUninitialized = errors.New("rules: attack tables used before initialisation")

// Attacks holds the precomputed leaper attack sets and slider rays. It is
// immutable once built and safe to share between goroutines.
type Attacks struct {
	ready bool

	// pawn[color][sq] gives the squares a pawn of that colour attacks from sq.
	pawn   [2][64]Bitboard
	knight [64]Bitboard
	king   [64]Bitboard

	// Rays exclude the origin square.
	// Rook directions: 0=N, 1=S, 2=E, 3=W
	rookRays [64][4]Bitboard
	// Bishop directions: 0=NE, 1=NW, 2=SE, 3=SW
	bishopRays [64][4]Bitboard
}

// Whether each ray direction walks towards higher square indices.
var (
	rookIncreasing   = [4]bool{false, true, true, false}
	bishopIncreasing = [4]bool{false, false, true, true}
)

// {file delta, row delta}; the row grows towards the first rank.
var (
	rookDirs   = [4][2]int{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}
	bishopDirs = [4][2]int{{1, -1}, {-1, -1}, {1, 1}, {-1, 1}}

	knightOffsets = [8][2]int{
		{1, -2}, {-1, -2}, {2, -1}, {-2, -1},
		{2, 1}, {-2, 1}, {1, 2}, {-1, 2},
	}
	kingOffsets = [8][2]int{
		{0, -1}, {0, 1}, {1, 0}, {-1, 0},
		{1, -1}, {-1, -1}, {1, 1}, {-1, 1},
	}
)

var (
	defaultAttacks     *Attacks
	defaultAttacksOnce sync.Once
)

// DefaultAttacks returns the process-wide tables, building them on first use.
func DefaultAttacks() *Attacks {
	defaultAttacksOnce.Do(func() { defaultAttacks = NewAttacks() })
	return defaultAttacks
}

// NewAttacks computes every table. The work is pure, so calling it again
// yields an identical value.
func NewAttacks() *Attacks {
	a := &Attacks{}
	for sq := Square(0); sq < 64; sq++ {
		file, row := sq.File(), sq.Rank()

		a.knight[sq] = leaperMask(file, row, knightOffsets[:])
		a.king[sq] = leaperMask(file, row, kingOffsets[:])

		// White pawns capture towards the eighth rank, black towards the first.
		a.pawn[White][sq] = leaperMask(file, row, [][2]int{{-1, -1}, {1, -1}})
		a.pawn[Black][sq] = leaperMask(file, row, [][2]int{{-1, 1}, {1, 1}})

		for d := 0; d < 4; d++ {
			a.rookRays[sq][d] = rayMask(file, row, rookDirs[d])
			a.bishopRays[sq][d] = rayMask(file, row, bishopDirs[d])
		}
	}
	a.ready = true
	return a
}

// leaperMask collects the on-board targets of fixed offsets; off-board targets
// are dropped, which is what keeps a-file pieces from reaching the h-file.
func leaperMask(file, row int, offsets [][2]int) Bitboard {
	var mask Bitboard
	for _, off := range offsets {
		f, r := file+off[0], row+off[1]
		if f >= 0 && f < 8 && r >= 0 && r < 8 {
			mask = mask.With(NewSquare(f, r))
		}
	}
	return mask
}

func rayMask(file, row int, dir [2]int) Bitboard {
	var ray Bitboard
	for f, r := file+dir[0], row+dir[1]; f >= 0 && f < 8 && r >= 0 && r < 8; f, r = f+dir[0], r+dir[1] {
		ray = ray.With(NewSquare(f, r))
	}
	return ray
}

func (a *Attacks) mustBeReady() {
	if a == nil || !a.ready {
		panic(ErrAttacksUninitialized)
	}
}

// PawnAttacks returns the capture squares of a pawn of colour c standing on sq.
func (a *Attacks) PawnAttacks(c Color, sq Square) Bitboard {
	a.mustBeReady()
	return a.pawn[c][sq]
}

// KnightAttacks returns the squares a knight on sq attacks.
func (a *Attacks) KnightAttacks(sq Square) Bitboard {
	a.mustBeReady()
	return a.knight[sq]
}

// KingAttacks returns the squares a king on sq attacks.
func (a *Attacks) KingAttacks(sq Square) Bitboard {
	a.mustBeReady()
	return a.king[sq]
}

// RookAttacks returns the rook attack set from sq: every ray runs to the
// edge and stops on the first occupied square, which is included.
func (a *Attacks) RookAttacks(sq Square, occ Bitboard) Bitboard {
	a.mustBeReady()
	return a.rookAttacks(sq, occ)
}

// BishopAttacks is the diagonal counterpart of RookAttacks.
func (a *Attacks) BishopAttacks(sq Square, occ Bitboard) Bitboard {
	a.mustBeReady()
	return a.bishopAttacks(sq, occ)
}

// QueenAttacks is the union of rook and bishop attacks.
func (a *Attacks) QueenAttacks(sq Square, occ Bitboard) Bitboard {
	a.mustBeReady()
	return a.rookAttacks(sq, occ) | a.bishopAttacks(sq, occ)
}

func (a *Attacks) rookAttacks(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for d := 0; d < 4; d++ {
		ray := a.rookRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			ray &^= a.rookRays[firstBlocker(blockers, rookIncreasing[d])][d]
		}
		attacks |= ray
	}
	return attacks
}

func (a *Attacks) bishopAttacks(sq Square, occ Bitboard) Bitboard {
	var attacks Bitboard
	for d := 0; d < 4; d++ {
		ray := a.bishopRays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			ray &^= a.bishopRays[firstBlocker(blockers, bishopIncreasing[d])][d]
		}
		attacks |= ray
	}
	return attacks
}

// firstBlocker picks the blocker nearest the origin along a ray.
func firstBlocker(blockers Bitboard, increasing bool) Square {
	if increasing {
		return Square(bits.TrailingZeros64(uint64(blockers)))
	}
	return Square(63 - bits.LeadingZeros64(uint64(blockers)))
}

// IsAttacked reports whether sq is attacked by any piece of side by.
func (a *Attacks) IsAttacked(sq Square, by Color, p *Position) bool {
	a.mustBeReady()
	return a.isAttacked(sq, by, p)
}

func (a *Attacks) isAttacked(sq Square, by Color, p *Position) bool {
	// A pawn of ours on sq would attack exactly the squares an enemy pawn
	// must stand on to attack sq.
	if a.pawn[by.Other()][sq]&p.pieces[PieceOf(by, Pawn)] != 0 {
		return true
	}
	if a.knight[sq]&p.pieces[PieceOf(by, Knight)] != 0 {
		return true
	}
	if a.king[sq]&p.pieces[PieceOf(by, King)] != 0 {
		return true
	}
	occ := p.occupancy[Both]
	queens := p.pieces[PieceOf(by, Queen)]
	if a.bishopAttacks(sq, occ)&(p.pieces[PieceOf(by, Bishop)]|queens) != 0 {
		return true
	}
	return a.rookAttacks(sq, occ)&(p.pieces[PieceOf(by, Rook)]|queens) != 0
}
