package rules

import (
	"errors"
	"fmt"
)

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

// Index of the combined occupancy in Position.occupancy, after White and Black.
const Both = 2

// Position is the full game state. It is a plain value: copying it copies the
// board, which is how callers try a move without undo bookkeeping.
type Position struct {
	// One bitboard per piece kind, indexed by Piece.
	pieces [12]Bitboard

	// occupancy[White], occupancy[Black], occupancy[Both]
	occupancy [3]Bitboard

	side Color

	// En passant target square (the square a double-pushed pawn skipped), otherwise NoSquare
	enPassant Square

	castling CastlingRights

	// Half-moves since the last capture or pawn move
	halfmoveClock int

	// Starts at 1, incremented after Black's move
	fullmoveNumber int
}

// NewPosition returns an empty board with White to move.
func NewPosition() Position {
	return Position{enPassant: NoSquare, fullmoveNumber: 1}
}

// StartPosition returns the standard initial position.
func StartPosition() Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.side }

// EnPassant returns the en-passant target square or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// Castling returns the remaining castling rights.
func (p *Position) Castling() CastlingRights { return p.castling }

// HalfmoveClock returns the number of half-moves since the last capture or pawn move.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the full move counter.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// Pieces returns the bitboard of one piece kind.
func (p *Position) Pieces(kind Piece) Bitboard { return p.pieces[kind] }

// Occupancy returns the squares held by side c.
func (p *Position) Occupancy(c Color) Bitboard { return p.occupancy[c] }

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard { return p.occupancy[Both] }

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bit := SquareBB(sq)
	if p.occupancy[Both]&bit == 0 {
		return NoPiece
	}
	first, last := WhitePawn, WhiteKing
	if p.occupancy[Black]&bit != 0 {
		first, last = BlackPawn, BlackKing
	}
	for kind := first; kind <= last; kind++ {
		if p.pieces[kind]&bit != 0 {
			return kind
		}
	}
	return NoPiece
}

// KingSquare returns the square of side c's king, or NoSquare when it has none.
func (p *Position) KingSquare(c Color) Square {
	return p.pieces[PieceOf(c, King)].LSB()
}

// SetPiece puts piece on sq, replacing whatever was there. NoPiece clears the square.
func (p *Position) SetPiece(sq Square, piece Piece) {
	for kind := range p.pieces {
		p.pieces[kind] = p.pieces[kind].Without(sq)
	}
	if piece.Valid() {
		p.pieces[piece] = p.pieces[piece].With(sq)
	}
	p.updateOccupancy()
}

// SetSideToMove updates the side to play. Normal move making toggles automatically.
func (p *Position) SetSideToMove(c Color) { p.side = c }

// updateOccupancy rebuilds the aggregate bitboards from the twelve piece bitboards.
func (p *Position) updateOccupancy() {
	var white, black Bitboard
	for kind := WhitePawn; kind <= WhiteKing; kind++ {
		white |= p.pieces[kind]
	}
	for kind := BlackPawn; kind <= BlackKing; kind++ {
		black |= p.pieces[kind]
	}
	p.occupancy[White] = white
	p.occupancy[Black] = black
	p.occupancy[Both] = white | black
}

var errInconsistent = errors.New("rules: inconsistent position")

// Validate checks that no square holds two pieces and that the occupancy
// bitboards are the union of the piece bitboards.
func (p *Position) Validate() error {
	var seen, white, black Bitboard
	for kind, bb := range p.pieces {
		if seen&bb != 0 {
			return fmt.Errorf("%w: %s shares %s with another piece", errInconsistent, Piece(kind), (seen & bb).LSB())
		}
		seen |= bb
		if Piece(kind).Color() == White {
			white |= bb
		} else {
			black |= bb
		}
	}
	if white != p.occupancy[White] || black != p.occupancy[Black] || seen != p.occupancy[Both] {
		return fmt.Errorf("%w: occupancy out of sync with piece bitboards", errInconsistent)
	}
	if p.enPassant != NoSquare && !p.enPassant.Valid() {
		return fmt.Errorf("%w: en passant square %d", errInconsistent, p.enPassant)
	}
	return nil
}

// InCheck reports whether the side to move has its king attacked.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare(p.side)
	if ksq == NoSquare {
		return false
	}
	return DefaultAttacks().isAttacked(ksq, p.side.Other(), p)
}

// GenerateMoves fills ml with the pseudo-legal moves of the side to move.
func (p *Position) GenerateMoves(ml *MoveList) { DefaultAttacks().Generate(p, ml) }

// MakeMove plays m on a copy of p. It returns the resulting position and true
// when the move is legal; otherwise the zero Position and false.
func (p Position) MakeMove(m Move) (Position, bool) { return DefaultAttacks().MakeMove(p, m) }

// Play is MakeMove with errors instead of panics: a malformed move yields an
// error wrapping ErrMalformedMove, a move that leaves the king attacked one
// wrapping ErrIllegalMove.
func (p Position) Play(m Move) (Position, error) { return DefaultAttacks().Play(p, m) }

// LegalMoves appends the legal moves of the side to move to dst.
func (p *Position) LegalMoves(dst []Move) []Move {
	var ml MoveList
	p.GenerateMoves(&ml)
	for _, m := range ml.Moves() {
		if _, ok := p.MakeMove(m); ok {
			dst = append(dst, m)
		}
	}
	return dst
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.GenerateMoves(&ml)
	for _, m := range ml.Moves() {
		if _, ok := p.MakeMove(m); ok {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }
