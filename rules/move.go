package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Move encodes a chess move in a 32-bit value.
type Move uint32

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 4 bits
	movePromoteShift = 16 // 4 bits
	moveFlagShift    = 20 // 4 bits

	moveUsedBits = 24
)

// MoveFlag marks the special properties of a move.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagDoublePush
	FlagEnPassant
	FlagCastling

	FlagNone MoveFlag = 0
)

var (
	// ErrMalformedMove reports a move that cannot have come from the generator
	// for the position it is applied to.
	ErrMalformedMove = errors.New("malformed move")
	// ErrIllegalMove reports a pseudo-legal move that leaves the mover's king attacked.
	ErrIllegalMove = errors.New("illegal move")
)

// MoveError describes a rejected move.
type MoveError struct {
	Move   Move
	Reason string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("rules: %v %s (%#08x): %s", e.Err, e.Move, uint32(e.Move), e.Reason)
}

func (e *MoveError) Unwrap() error { return e.Err }

func malformed(m Move, format string, args ...any) *MoveError {
	return &MoveError{Move: m, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedMove}
}

// NewMove constructs a Move value from components. Pass NoPiece as promo for
// non-promotions. It panics with a *MoveError when a component is out of range.
func NewMove(from, to Square, piece, promo Piece, flags MoveFlag) Move {
	if !from.Valid() || !to.Valid() {
		panic(malformed(0, "square out of range: %d -> %d", from, to))
	}
	m := encodeMove(from, to, piece, promo, flags)
	if err := m.Validate(); err != nil {
		panic(err)
	}
	return m
}

func encodeMove(from, to Square, piece, promo Piece, flags MoveFlag) Move {
	return Move(uint32(from)<<moveFromShift |
		uint32(to)<<moveToShift |
		uint32(piece)<<movePieceShift |
		uint32(promo)<<movePromoteShift |
		uint32(flags)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// Piece returns the piece kind that moves.
func (m Move) Piece() Piece { return Piece((uint32(m) >> movePieceShift) & 0xF) }

// Promotion returns the promoted piece kind, or NoPiece.
func (m Move) Promotion() Piece { return Piece((uint32(m) >> movePromoteShift) & 0xF) }

// Flags returns the special move flags.
func (m Move) Flags() MoveFlag { return MoveFlag((uint32(m) >> moveFlagShift) & 0xF) }

func (m Move) IsCapture() bool    { return m.Flags()&FlagCapture != 0 }
func (m Move) IsDoublePush() bool { return m.Flags()&FlagDoublePush != 0 }
func (m Move) IsEnPassant() bool  { return m.Flags()&FlagEnPassant != 0 }
func (m Move) IsCastling() bool   { return m.Flags()&FlagCastling != 0 }

// Validate checks the encoding on its own, without a position.
func (m Move) Validate() error {
	if uint32(m)>>moveUsedBits != 0 {
		return malformed(m, "reserved bits set")
	}
	piece, promo := m.Piece(), m.Promotion()
	if !piece.Valid() {
		return malformed(m, "piece index %d out of range", piece)
	}
	if m.From() == m.To() {
		return malformed(m, "source equals target")
	}
	if promo != NoPiece {
		if !promo.Valid() {
			return malformed(m, "promotion index %d out of range", promo)
		}
		if piece.Type() != Pawn || promo.Color() != piece.Color() {
			return malformed(m, "%s cannot promote to %s", piece, promo)
		}
		switch promo.Type() {
		case Knight, Bishop, Rook, Queen:
		default:
			return malformed(m, "cannot promote to %s", promo)
		}
	}
	return nil
}

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if promo := m.Promotion(); promo.Valid() {
		s += strings.ToLower(promo.String())
	}
	return s
}

// ParseMove resolves coordinate notation ("e2e4", "e7e8q") against the
// pseudo-legal moves of p. Legality is checked when the move is played.
func ParseMove(p *Position, s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 4 || len(s) > 5 {
		return 0, fmt.Errorf("parse move %q: invalid length", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("parse move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("parse move %q: %w", s, err)
	}
	promo := byte(0)
	if len(s) == 5 {
		promo = s[4]
		if !strings.ContainsRune("nbrq", rune(promo)) {
			return 0, fmt.Errorf("parse move %q: invalid promotion piece", s)
		}
	}
	var ml MoveList
	p.GenerateMoves(&ml)
	for _, m := range ml.Moves() {
		if m.From() != from || m.To() != to {
			continue
		}
		got := byte(0)
		if pr := m.Promotion(); pr.Valid() {
			got = strings.ToLower(pr.String())[0]
		}
		if got == promo {
			return m, nil
		}
	}
	return 0, fmt.Errorf("parse move %q: %w", s, ErrIllegalMove)
}
