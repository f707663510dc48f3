// Package diagram draws positions and bitboards as SVG for debugging.
package diagram

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/daparic/antigrav/rules"
)

const (
	cell   = 48
	margin = 24
	size   = 8*cell + 2*margin
)

const (
	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	highlightFill = "fill:#e05a4f;fill-opacity:0.75"
	pieceStyle    = "text-anchor:middle;font-size:36px;font-family:sans-serif"
	labelStyle    = "text-anchor:middle;font-size:14px;font-family:sans-serif"
)

var glyphs = [12]string{"♙", "♘", "♗", "♖", "♕", "♔", "♟", "♞", "♝", "♜", "♛", "♚"}

// WriteSVG draws the board with the squares of highlight tinted. p may be nil
// to draw the bitboard alone.
func WriteSVG(w io.Writer, p *rules.Position, highlight rules.Bitboard) {
	canvas := svg.New(w)
	canvas.Start(size, size)
	if p != nil {
		canvas.Title(p.FEN())
	}

	for sq := rules.Square(0); sq < 64; sq++ {
		x := margin + sq.File()*cell
		y := margin + sq.Rank()*cell
		fill := lightFill
		if (sq.File()+sq.Rank())%2 == 1 {
			fill = darkFill
		}
		if highlight.Has(sq) {
			fill = highlightFill
		}
		canvas.Rect(x, y, cell, cell, fill)
		if p == nil {
			continue
		}
		if piece := p.PieceAt(sq); piece != rules.NoPiece {
			canvas.Text(x+cell/2, y+cell*3/4, glyphs[piece], pieceStyle)
		}
	}

	for i := 0; i < 8; i++ {
		canvas.Text(margin+i*cell+cell/2, size-margin/3, string(rune('a'+i)), labelStyle)
		canvas.Text(margin/2, margin+i*cell+cell/2+5, string(rune('8'-i)), labelStyle)
	}
	canvas.End()
}
