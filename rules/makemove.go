package rules

// castlingMask[sq] keeps the rights that survive a move touching sq.
var castlingMask = func() (mask [64]CastlingRights) {
	for sq := range mask {
		mask[sq] = CastlingAll
	}
	mask[E1] &^= CastlingWhiteK | CastlingWhiteQ
	mask[H1] &^= CastlingWhiteK
	mask[A1] &^= CastlingWhiteQ
	mask[E8] &^= CastlingBlackK | CastlingBlackQ
	mask[H8] &^= CastlingBlackK
	mask[A8] &^= CastlingBlackQ
	return mask
}()

// MakeMove applies m to p, which it receives by value. It returns the next
// position and true when the mover's king is safe afterwards, otherwise the
// zero Position and false; the rejected intermediate board never escapes.
// A malformed move panics with a *MoveError.
func (a *Attacks) MakeMove(p Position, m Move) (Position, bool) {
	a.mustBeReady()
	if err := p.checkMove(m); err != nil {
		panic(err)
	}
	if !a.apply(&p, m) {
		return Position{}, false
	}
	return p, true
}

// Play is MakeMove reporting both malformed and illegal moves as errors.
func (a *Attacks) Play(p Position, m Move) (Position, error) {
	a.mustBeReady()
	if err := p.checkMove(m); err != nil {
		return Position{}, err
	}
	if !a.apply(&p, m) {
		return Position{}, &MoveError{Move: m, Reason: "leaves the king attacked", Err: ErrIllegalMove}
	}
	return p, nil
}

// checkMove rejects moves that would corrupt the board if applied to p.
func (p *Position) checkMove(m Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	piece, from, to := m.Piece(), m.From(), m.To()
	if piece.Color() != p.side {
		return malformed(m, "%s does not belong to the side to move", piece)
	}
	if !p.pieces[piece].Has(from) {
		return malformed(m, "no %s on %s", piece, from)
	}
	if p.occupancy[p.side].Has(to) {
		return malformed(m, "target %s holds an own piece", to)
	}
	occupied := p.occupancy[p.side.Other()].Has(to)
	if !m.IsEnPassant() && occupied != m.IsCapture() {
		return malformed(m, "capture flag disagrees with target %s", to)
	}

	// Pawns walk towards row 0 for White, row 7 for Black.
	push, startRow, lastRow := Square(-8), 6, 0
	if p.side == Black {
		push, startRow, lastRow = 8, 1, 7
	}
	if piece.Type() == Pawn && (m.Promotion() != NoPiece) != (to.Rank() == lastRow) {
		return malformed(m, "promotion must coincide with reaching the last rank")
	}
	if m.IsDoublePush() {
		if piece.Type() != Pawn || from.Rank() != startRow || to != from+2*push || m.IsCapture() {
			return malformed(m, "%s %s-%s is not a double pawn push", piece, from, to)
		}
		if p.occupancy[Both].Has(from + push) {
			return malformed(m, "double push jumps over %s", from+push)
		}
	}
	if m.IsEnPassant() {
		if piece.Type() != Pawn || to != p.enPassant || occupied || to.Rank() != from.Rank()+int(push/8) || abs(to.File()-from.File()) != 1 {
			return malformed(m, "no en passant capture on %s", to)
		}
		if !p.pieces[PieceOf(p.side.Other(), Pawn)].Has(to - push) {
			return malformed(m, "no pawn to take en passant behind %s", to)
		}
	}
	if m.IsCastling() {
		c := castleTo(p.side, to)
		switch {
		case piece.Type() != King || c == nil || from != c.kingFrom:
			return malformed(m, "%s %s-%s is not a castling move", piece, from, to)
		case p.castling&c.right == 0:
			return malformed(m, "castling right %s not held", to)
		case !p.pieces[PieceOf(p.side, Rook)].Has(c.rookFrom):
			return malformed(m, "no rook on %s", c.rookFrom)
		case m.IsCapture() || p.occupancy[Both]&c.empty != 0:
			return malformed(m, "castling path is not empty")
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// apply mutates p in place and reports whether the mover's king is safe.
// On false, p is a half-updated board and must be thrown away.
func (a *Attacks) apply(p *Position, m Move) bool {
	from, to, piece := m.From(), m.To(), m.Piece()
	us := p.side
	them := us.Other()

	var castled *castle
	if m.IsCastling() {
		// The king may not start on, cross or land on an attacked square.
		castled = castleTo(us, to)
		for squares := castled.safe; squares != 0; {
			if a.isAttacked(popLSB(&squares), them, p) {
				return false
			}
		}
	}

	if m.IsCapture() {
		first := PieceOf(them, Pawn)
		for kind := first; kind < first+6; kind++ {
			if p.pieces[kind].Has(to) {
				p.pieces[kind] = p.pieces[kind].Without(to)
				break
			}
		}
	}

	p.pieces[piece] = p.pieces[piece].Without(from).With(to)

	if promo := m.Promotion(); promo != NoPiece {
		p.pieces[piece] = p.pieces[piece].Without(to)
		p.pieces[promo] = p.pieces[promo].With(to)
	}

	if m.IsEnPassant() {
		// The captured pawn stands behind the target, seen from the mover.
		victim := to + 8
		if us == Black {
			victim = to - 8
		}
		enemyPawn := PieceOf(them, Pawn)
		p.pieces[enemyPawn] = p.pieces[enemyPawn].Without(victim)
	}

	p.enPassant = NoSquare
	if m.IsDoublePush() {
		p.enPassant = (from + to) / 2
	}

	if castled != nil {
		rook := PieceOf(us, Rook)
		p.pieces[rook] = p.pieces[rook].Without(castled.rookFrom).With(castled.rookTo)
	}

	p.castling &= castlingMask[from] & castlingMask[to]

	if piece.Type() == Pawn || m.IsCapture() {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}

	p.updateOccupancy()
	p.side = them

	ksq := p.KingSquare(us)
	return ksq == NoSquare || !a.isAttacked(ksq, them, p)
}
