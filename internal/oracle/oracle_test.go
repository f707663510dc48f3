package oracle_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/daparic/antigrav/internal/oracle"
	"github.com/daparic/antigrav/perft"
	"github.com/daparic/antigrav/rules"
)

var positions = []string{
	rules.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
}

func TestMovesAgreeWithDragontooth(t *testing.T) {
	for _, fen := range positions {
		ours, err := oracle.Moves(fen)
		if err != nil {
			t.Fatalf("Moves(%q): %v", fen, err)
		}
		theirs, err := oracle.DragontoothMoves(fen)
		if err != nil {
			t.Fatalf("DragontoothMoves(%q): %v", fen, err)
		}
		if missing, extra := oracle.Diff(ours, theirs); len(missing) != 0 || len(extra) != 0 {
			t.Fatalf("%s: missing %v extra %v", fen, missing, extra)
		}
	}
}

func TestCheck(t *testing.T) {
	for _, fen := range positions {
		p, err := rules.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		r, err := oracle.Check(fen, 2, perft.Count(p, 2))
		if err != nil {
			t.Fatalf("Check(%q): %v", fen, err)
		}
		if !r.OK() {
			t.Fatalf("%s: ours %d dragontoothmg %d goosemg %d missing %v extra %v",
				fen, r.Nodes, r.DragontoothNodes, r.GooseNodes, r.Missing, r.Extra)
		}
	}
}

func TestReportDetectsMismatch(t *testing.T) {
	r, err := oracle.Check(rules.StartFEN, 2, 399)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if r.OK() {
		t.Fatalf("a wrong node count passed the check")
	}
	if r.DragontoothNodes != 400 || r.GooseNodes != 400 {
		t.Fatalf("oracle counts: got %d %d want 400 400", r.DragontoothNodes, r.GooseNodes)
	}
}

func TestDiff(t *testing.T) {
	missing, extra := oracle.Diff([]string{"e2e4", "a2a3", "h2h5"}, []string{"d2d4", "e2e4", "a2a3", "b1c3"})
	if want := []string{"b1c3", "d2d4"}; !reflect.DeepEqual(missing, want) {
		t.Fatalf("missing: got %v want %v", missing, want)
	}
	if want := []string{"h2h5"}; !reflect.DeepEqual(extra, want) {
		t.Fatalf("extra: got %v want %v", extra, want)
	}
	missing, extra = oracle.Diff([]string{"e2e4"}, []string{"e2e4"})
	if len(missing) != 0 || len(extra) != 0 {
		t.Fatalf("identical lists: missing %v extra %v", missing, extra)
	}
}

func TestBadFEN(t *testing.T) {
	if _, err := oracle.Moves("garbage"); !errors.Is(err, rules.ErrInvalidFEN) {
		t.Fatalf("Moves: got %v want ErrInvalidFEN", err)
	}
	if _, err := oracle.DragontoothPerft("garbage", 1); err == nil {
		t.Fatalf("DragontoothPerft: expected error")
	}
}
