package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is wrapped by every FEN parse failure.
var ErrInvalidFEN = errors.New("invalid FEN")

// FENError names the field that failed to parse.
type FENError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FENError) Error() string {
	return fmt.Sprintf("%v: %s %q: %s", ErrInvalidFEN, e.Field, e.Value, e.Reason)
}

func (e *FENError) Unwrap() error { return ErrInvalidFEN }

func fenError(field, value, format string, args ...any) error {
	return &FENError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// ParseFEN parses a FEN string into a Position. The half-move clock and
// full-move number may be omitted and default to 0 and 1. Any malformed field
// fails the whole parse.
func ParseFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return Position{}, fenError("record", fen, "want 4 to 6 fields, got %d", len(fields))
	}

	p := NewPosition()

	// 1. Piece placement, eighth rank first
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fenError("placement", fields[0], "want 8 ranks, got %d", len(ranks))
	}
	for row, rankStr := range ranks {
		file := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > 8 {
					return Position{}, fenError("placement", rankStr, "rank overflows 8 files")
				}
				continue
			}
			piece := pieceFromLetter(ch)
			if piece == NoPiece {
				return Position{}, fenError("placement", rankStr, "unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return Position{}, fenError("placement", rankStr, "rank overflows 8 files")
			}
			if piece.Type() == Pawn && (row == 0 || row == 7) {
				return Position{}, fenError("placement", rankStr, "pawn on back rank")
			}
			sq := NewSquare(file, row)
			p.pieces[piece] = p.pieces[piece].With(sq)
			file++
		}
		if file != 8 {
			return Position{}, fenError("placement", rankStr, "rank has %d files", file)
		}
	}
	p.updateOccupancy()

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.side = White
	case "b":
		p.side = Black
	default:
		return Position{}, fenError("side to move", fields[1], "must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			var right CastlingRights
			switch fields[2][i] {
			case 'K':
				right = CastlingWhiteK
			case 'Q':
				right = CastlingWhiteQ
			case 'k':
				right = CastlingBlackK
			case 'q':
				right = CastlingBlackQ
			default:
				return Position{}, fenError("castling", fields[2], "invalid character %q", fields[2][i])
			}
			if p.castling&right != 0 {
				return Position{}, fenError("castling", fields[2], "repeated right %q", fields[2][i])
			}
			p.castling |= right
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Position{}, fenError("en passant", fields[3], "%v", err)
		}
		// Behind a black double push on the sixth rank, a white one on the third.
		wantRow, rankName := 2, "sixth"
		if p.side == Black {
			wantRow, rankName = 5, "third"
		}
		if sq.Rank() != wantRow {
			return Position{}, fenError("en passant", fields[3], "not on the %s rank", rankName)
		}
		p.enPassant = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return Position{}, fenError("halfmove clock", fields[4], "not a non-negative number")
		}
		p.halfmoveClock = n
	}

	// 6. Fullmove number
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Position{}, fenError("fullmove number", fields[5], "not a positive number")
		}
		p.fullmoveNumber = n
	}

	return p, nil
}

// FEN produces the FEN string representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, row))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	if p.side == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	// 3. Castling rights
	if p.castling == CastlingNone {
		sb.WriteByte('-')
	} else {
		for i, ch := range []byte("KQkq") {
			if p.castling&(1<<uint(i)) != 0 {
				sb.WriteByte(ch)
			}
		}
	}

	// 4. En passant square, 5. halfmove clock, 6. fullmove number
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}

// String returns the FEN of the position.
func (p Position) String() string { return p.FEN() }
