// Command attacks prints the attack set of one piece on one square, optionally
// against the occupancy of a FEN position, as a grid or an SVG diagram.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/daparic/antigrav/internal/diagram"
	"github.com/daparic/antigrav/rules"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("attacks: ")

	piece := flag.String("piece", "n", "Piece type, one of p n b r q k")
	black := flag.Bool("black", false, "Pawn attacks for black instead of white")
	square := flag.String("square", "", "Origin square, e.g. e4 (required)")
	fen := flag.String("fen", "", "Optional FEN whose occupancy blocks slider rays")
	svgOut := flag.String("svg", "", "Write an SVG diagram to this file instead of printing the grid")
	flag.Parse()

	sq, err := rules.ParseSquare(*square)
	if err != nil {
		fmt.Fprintln(os.Stderr, "-square must be an algebraic square such as e4")
		os.Exit(2)
	}

	var pos *rules.Position
	var occ rules.Bitboard
	if *fen != "" {
		p, err := rules.ParseFEN(*fen)
		if err != nil {
			log.Printf("parse FEN: %v", err)
			os.Exit(2)
		}
		pos, occ = &p, p.Occupied()
	}

	at := rules.DefaultAttacks()
	var set rules.Bitboard
	switch strings.ToLower(*piece) {
	case "p":
		side := rules.White
		if *black {
			side = rules.Black
		}
		set = at.PawnAttacks(side, sq)
	case "n":
		set = at.KnightAttacks(sq)
	case "b":
		set = at.BishopAttacks(sq, occ)
	case "r":
		set = at.RookAttacks(sq, occ)
	case "q":
		set = at.QueenAttacks(sq, occ)
	case "k":
		set = at.KingAttacks(sq)
	default:
		log.Printf("unknown piece %q", *piece)
		os.Exit(2)
	}

	if *svgOut == "" {
		fmt.Print(set.Draw())
		fmt.Printf("%d squares\n", set.Count())
		return
	}

	f, err := os.Create(*svgOut)
	if err != nil {
		log.Printf("create %s: %v", *svgOut, err)
		os.Exit(2)
	}
	diagram.WriteSVG(f, pos, set)
	if err := f.Close(); err != nil {
		log.Printf("close %s: %v", *svgOut, err)
		os.Exit(2)
	}
}
