package rules_test

import (
	"testing"

	"github.com/daparic/antigrav/rules"
)

func mustFEN(t testing.TB, fen string) rules.Position {
	t.Helper()
	p, err := rules.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

func moveNames(moves []rules.Move) map[string]rules.Move {
	out := make(map[string]rules.Move, len(moves))
	for _, m := range moves {
		out[m.String()] = m
	}
	return out
}

func pseudo(p *rules.Position) []rules.Move {
	var ml rules.MoveList
	p.GenerateMoves(&ml)
	return append([]rules.Move(nil), ml.Moves()...)
}

func TestGenerateStartPosition(t *testing.T) {
	p := rules.StartPosition()
	moves := pseudo(&p)
	if len(moves) != 20 {
		t.Fatalf("start: got %d pseudo-legal moves want 20", len(moves))
	}
	// Pawns first, a-file first.
	if moves[0].String() != "a2a3" || moves[1].String() != "a2a4" {
		t.Fatalf("order: got %s %s want a2a3 a2a4", moves[0], moves[1])
	}
	if !moves[1].IsDoublePush() || moves[0].IsDoublePush() {
		t.Fatalf("double push flag: a2a3=%v a2a4=%v", moves[0].IsDoublePush(), moves[1].IsDoublePush())
	}
	last := moves[len(moves)-1]
	if last.Piece() != rules.WhiteKnight || last.From() != rules.G1 {
		t.Fatalf("last move: got %s by %s want a g1 knight move", last, last.Piece())
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	a, b := pseudo(&p), pseudo(&p)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("move %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestMoveListResetsBetweenCalls(t *testing.T) {
	var ml rules.MoveList
	p := rules.StartPosition()
	p.GenerateMoves(&ml)
	p.GenerateMoves(&ml)
	if ml.Len() != 20 {
		t.Fatalf("second generation: got %d want 20", ml.Len())
	}
}

func TestMoveListOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on overflow")
		}
	}()
	var ml rules.MoveList
	for i := 0; i <= rules.MaxMoves; i++ {
		ml.Add(rules.Move(0))
	}
}

func TestGenerateCastling(t *testing.T) {
	cases := []struct {
		name      string
		fen       string
		want      []string
		forbidden []string
	}{
		{"both wings", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1g1", "e1c1"}, nil},
		{"black both wings", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"e8g8", "e8c8"}, nil},
		{"f1 attacked", "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1c1"}, []string{"e1g1"}},
		{"b1 attacked only", "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", []string{"e1g1", "e1c1"}, nil},
		{"in check", "4k3/8/8/8/8/8/8/R3K1r1 w Q - 0 1", nil, []string{"e1c1"}},
		{"b1 occupied", "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1", []string{"e1g1"}, []string{"e1c1"}},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", nil, []string{"e1g1", "e1c1"}},
		{"rook missing", "4k3/8/8/8/8/8/8/4K2R w KQ - 0 1", []string{"e1g1"}, []string{"e1c1"}},
	}
	for _, c := range cases {
		p := mustFEN(t, c.fen)
		moves := moveNames(pseudo(&p))
		for _, s := range c.want {
			m, ok := moves[s]
			if !ok {
				t.Fatalf("%s: %s not generated", c.name, s)
			}
			if !m.IsCastling() {
				t.Fatalf("%s: %s lacks the castling flag", c.name, s)
			}
		}
		for _, s := range c.forbidden {
			if m, ok := moves[s]; ok && m.IsCastling() {
				t.Fatalf("%s: %s generated", c.name, s)
			}
		}
	}
}

func TestGeneratePromotions(t *testing.T) {
	p := mustFEN(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	moves := pseudo(&p)
	if len(moves) != 11 {
		t.Fatalf("got %d moves want 11", len(moves))
	}
	named := moveNames(moves)
	for _, s := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n", "a7b8q", "a7b8r", "a7b8b", "a7b8n"} {
		if _, ok := named[s]; !ok {
			t.Fatalf("%s not generated", s)
		}
	}
	if !named["a7b8n"].IsCapture() || named["a7a8n"].IsCapture() {
		t.Fatalf("capture flags wrong on promotions")
	}
	if _, ok := named["a7a8"]; ok {
		t.Fatalf("bare push to the last rank generated")
	}
	// Queen first within each target.
	if moves[0].String() != "a7a8q" || moves[3].String() != "a7a8n" {
		t.Fatalf("promotion order: got %s .. %s", moves[0], moves[3])
	}
}

func TestGenerateEnPassant(t *testing.T) {
	p := mustFEN(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	m, ok := moveNames(pseudo(&p))["e5d6"]
	if !ok {
		t.Fatalf("en passant capture e5d6 not generated")
	}
	if !m.IsEnPassant() || !m.IsCapture() {
		t.Fatalf("e5d6 flags: ep=%v capture=%v", m.IsEnPassant(), m.IsCapture())
	}

	p = mustFEN(t, "k7/8/8/8/3pP3/8/8/7K b - e3 0 1")
	if _, ok := moveNames(pseudo(&p))["d4e3"]; !ok {
		t.Fatalf("black en passant capture d4e3 not generated")
	}
}

func TestGeneratePawnBlocked(t *testing.T) {
	p := mustFEN(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	named := moveNames(pseudo(&p))
	if _, ok := named["e2e3"]; ok {
		t.Fatalf("pawn pushed into a piece")
	}
	if _, ok := named["e2e4"]; ok {
		t.Fatalf("pawn jumped over a piece")
	}
}

func TestCheckmateAndStalemate(t *testing.T) {
	mate := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !mate.InCheck() || !mate.IsCheckmate() || mate.IsStalemate() {
		t.Fatalf("fool's mate: check=%v mate=%v stalemate=%v", mate.InCheck(), mate.IsCheckmate(), mate.IsStalemate())
	}
	stale := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if stale.InCheck() || stale.IsCheckmate() || !stale.IsStalemate() {
		t.Fatalf("stalemate: check=%v mate=%v stalemate=%v", stale.InCheck(), stale.IsCheckmate(), stale.IsStalemate())
	}
	start := rules.StartPosition()
	if start.IsCheckmate() || start.IsStalemate() || !start.HasLegalMoves() {
		t.Fatalf("start position misreported as terminal")
	}
}

func TestLegalMovesFiltersPins(t *testing.T) {
	p := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	for _, m := range p.LegalMoves(nil) {
		if m.Piece() == rules.WhiteBishop {
			t.Fatalf("pinned bishop move %s listed as legal", m)
		}
	}
}

func TestBackRankMate(t *testing.T) {
	p := play(t, mustFEN(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1"), "a1a8")
	if got := len(p.LegalMoves(nil)); got != 0 {
		t.Fatalf("mated side has %d legal moves", got)
	}
	if !rules.DefaultAttacks().IsAttacked(p.KingSquare(rules.Black), rules.White, &p) {
		t.Fatalf("mated king not attacked")
	}
	if !p.IsCheckmate() {
		t.Fatalf("IsCheckmate: got false")
	}
}
