// Package rules implements chess move generation and legality on bitboards.
package rules

import (
	"errors"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i standing for Square(i).
type Bitboard uint64

// Square represents a board position (0-63), a8 = 0 through h1 = 63.
type Square int

const NoSquare Square = -1

// Square constants, rank-major from the top-left corner.
const (
	A8 Square = iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A1
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

var errBadSquare = errors.New("invalid algebraic square")

// NewSquare builds a square from a file (0 = a) and a row (0 = eighth rank).
func NewSquare(file, row int) Square { return Square(row*8 + file) }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

// File returns the file index, 0 for the a-file.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the row index counted from the top: 0 for the eighth rank, 7 for the first.
func (s Square) Rank() int { return int(s) / 8 }

// String returns the algebraic name of the square, or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '8' - byte(s.Rank())})
}

// ParseSquare converts an algebraic coordinate such as "e4" into a Square.
func ParseSquare(alg string) (Square, error) {
	if len(alg) != 2 {
		return NoSquare, errBadSquare
	}
	file, rank := alg[0], alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, errBadSquare
	}
	return NewSquare(int(file-'a'), int('8'-rank)), nil
}

// SquareBB returns a bitboard with only sq set.
func SquareBB(sq Square) Bitboard { return Bitboard(1) << uint(sq) }

// Has reports whether sq is set.
func (b Bitboard) Has(sq Square) bool { return b&SquareBB(sq) != 0 }

// With returns b with sq set.
func (b Bitboard) With(sq Square) Bitboard { return b | SquareBB(sq) }

// Without returns b with sq cleared.
func (b Bitboard) Without(sq Square) Bitboard { return b &^ SquareBB(sq) }

// Count returns the number of set squares.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest set square, or NoSquare for an empty board.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// popLSB removes and returns the least significant set square.
func popLSB(b *Bitboard) Square {
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}

// Squares lists the set squares in increasing order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		out = append(out, popLSB(&b))
	}
	return out
}

// Draw renders the bitboard as an 8x8 grid, eighth rank first, file labels beneath.
func (b Bitboard) Draw() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteByte('8' - byte(row))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, row)) {
				sb.WriteString(" 1")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
