package rules

// castle describes one castling move: the right it needs, the king and rook
// hops, the squares that must be empty and the squares the king must not
// cross under attack.
type castle struct {
	right            CastlingRights
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	empty            Bitboard
	safe             Bitboard
}

var castles = [2][2]castle{
	White: {
		{CastlingWhiteK, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1), SquareBB(E1) | SquareBB(F1) | SquareBB(G1)},
		{CastlingWhiteQ, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), SquareBB(E1) | SquareBB(D1) | SquareBB(C1)},
	},
	Black: {
		{CastlingBlackK, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8), SquareBB(E8) | SquareBB(F8) | SquareBB(G8)},
		{CastlingBlackQ, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), SquareBB(E8) | SquareBB(D8) | SquareBB(C8)},
	},
}

// castleTo returns the castle of side whose king lands on to, or nil.
func castleTo(side Color, to Square) *castle {
	for i := range castles[side] {
		if castles[side][i].kingTo == to {
			return &castles[side][i]
		}
	}
	return nil
}

var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// Generate fills ml with every pseudo-legal move of the side to move: legal by
// movement rules and occupancy, not yet checked for self-check. Moves come in
// piece-kind order, then by increasing source square, castling last.
func (a *Attacks) Generate(p *Position, ml *MoveList) {
	a.mustBeReady()
	ml.Reset()

	side := p.side
	own := p.occupancy[side]
	opp := p.occupancy[side.Other()]
	all := p.occupancy[Both]

	a.pawnMoves(p, ml)

	for pt := Knight; pt <= King; pt++ {
		kind := PieceOf(side, pt)
		for pieces := p.pieces[kind]; pieces != 0; {
			from := popLSB(&pieces)
			var targets Bitboard
			switch pt {
			case Knight:
				targets = a.knight[from]
			case Bishop:
				targets = a.bishopAttacks(from, all)
			case Rook:
				targets = a.rookAttacks(from, all)
			case Queen:
				targets = a.rookAttacks(from, all) | a.bishopAttacks(from, all)
			case King:
				targets = a.king[from]
			}
			targets &^= own
			for targets != 0 {
				to := popLSB(&targets)
				flags := FlagNone
				if opp.Has(to) {
					flags = FlagCapture
				}
				ml.Add(encodeMove(from, to, kind, NoPiece, flags))
			}
		}
	}

	a.castlingMoves(p, ml)
}

func (a *Attacks) pawnMoves(p *Position, ml *MoveList) {
	side := p.side
	kind := PieceOf(side, Pawn)
	all := p.occupancy[Both]
	opp := p.occupancy[side.Other()]

	// White pawns walk towards row 0, black towards row 7.
	push, promoRow, startRow := Square(-8), 1, 6
	if side == Black {
		push, promoRow, startRow = 8, 6, 1
	}
	var epTarget Bitboard
	if p.enPassant != NoSquare {
		epTarget = SquareBB(p.enPassant)
	}

	for pawns := p.pieces[kind]; pawns != 0; {
		from := popLSB(&pawns)
		promoting := from.Rank() == promoRow

		one := from + push
		if one.Valid() && !all.Has(one) {
			if promoting {
				addPromotions(ml, from, one, side, FlagNone)
			} else {
				ml.Add(encodeMove(from, one, kind, NoPiece, FlagNone))
				if two := one + push; from.Rank() == startRow && !all.Has(two) {
					ml.Add(encodeMove(from, two, kind, NoPiece, FlagDoublePush))
				}
			}
		}

		attacks := a.pawn[side][from]
		for caps := attacks & opp; caps != 0; {
			to := popLSB(&caps)
			if promoting {
				addPromotions(ml, from, to, side, FlagCapture)
			} else {
				ml.Add(encodeMove(from, to, kind, NoPiece, FlagCapture))
			}
		}
		if attacks&epTarget != 0 {
			ml.Add(encodeMove(from, p.enPassant, kind, NoPiece, FlagCapture|FlagEnPassant))
		}
	}
}

func addPromotions(ml *MoveList, from, to Square, side Color, flags MoveFlag) {
	pawn := PieceOf(side, Pawn)
	for _, pt := range promotionOrder {
		ml.Add(encodeMove(from, to, pawn, PieceOf(side, pt), flags))
	}
}

// castlingMoves adds each castle whose right is held, whose path is empty and
// whose king squares are not attacked. Both wings are tried independently.
func (a *Attacks) castlingMoves(p *Position, ml *MoveList) {
	side := p.side
	enemy := side.Other()
	king := PieceOf(side, King)
	rook := PieceOf(side, Rook)

	for i := range castles[side] {
		c := &castles[side][i]
		if p.castling&c.right == 0 || p.occupancy[Both]&c.empty != 0 {
			continue
		}
		if !p.pieces[king].Has(c.kingFrom) || !p.pieces[rook].Has(c.rookFrom) {
			continue
		}
		safe := true
		for squares := c.safe; squares != 0; {
			if a.isAttacked(popLSB(&squares), enemy, p) {
				safe = false
				break
			}
		}
		if safe {
			ml.Add(encodeMove(c.kingFrom, c.kingTo, king, NoPiece, FlagCastling))
		}
	}
}
