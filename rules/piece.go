package rules

// Piece is one of the twelve piece kinds. White kinds occupy 0..5 and black
// kinds 6..11, so colour is a range check.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	NoPiece Piece = 12
)

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Valid reports whether p is one of the twelve kinds.
func (p Piece) Valid() bool { return p < NoPiece }

// Color returns the side owning the piece. Only meaningful for valid pieces.
func (p Piece) Color() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// Type strips the colour.
func (p Piece) Type() PieceType { return PieceType(p % 6) }

// PieceOf combines a colour and a type.
func PieceOf(c Color, pt PieceType) Piece { return Piece(int(c)*6 + int(pt)) }

const pieceLetters = "PNBRQKpnbrqk"

// Letter returns the FEN letter for the piece, or '.' for NoPiece.
func (p Piece) Letter() byte {
	if !p.Valid() {
		return '.'
	}
	return pieceLetters[p]
}

func (p Piece) String() string { return string(p.Letter()) }

// pieceFromLetter converts a FEN character to the corresponding piece.
func pieceFromLetter(ch byte) Piece {
	for i := 0; i < len(pieceLetters); i++ {
		if pieceLetters[i] == ch {
			return Piece(i)
		}
	}
	return NoPiece
}
