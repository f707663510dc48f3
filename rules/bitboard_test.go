package rules_test

import (
	"strings"
	"testing"

	"github.com/daparic/antigrav/rules"
)

func TestSquareAlgebraicRoundTrip(t *testing.T) {
	for sq := rules.Square(0); sq < 64; sq++ {
		got, err := rules.ParseSquare(sq.String())
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", sq.String(), err)
		}
		if got != sq {
			t.Fatalf("ParseSquare(%q): got %d want %d", sq.String(), got, sq)
		}
	}
	if rules.A8.String() != "a8" || rules.H1.String() != "h1" || rules.E4.String() != "e4" {
		t.Fatalf("corner names: got %s %s %s", rules.A8, rules.H1, rules.E4)
	}
	if rules.NoSquare.String() != "-" {
		t.Fatalf("NoSquare: got %q want %q", rules.NoSquare.String(), "-")
	}
}

func TestParseSquareRejects(t *testing.T) {
	for _, s := range []string{"", "e", "i1", "a0", "a9", "e44", "E4"} {
		if _, err := rules.ParseSquare(s); err == nil {
			t.Fatalf("ParseSquare(%q): expected error", s)
		}
	}
}

func TestSquareFileRank(t *testing.T) {
	if got := rules.E4.File(); got != 4 {
		t.Fatalf("E4 file: got %d want 4", got)
	}
	if got := rules.E4.Rank(); got != 4 {
		t.Fatalf("E4 row: got %d want 4", got)
	}
	if got := rules.NewSquare(0, 7); got != rules.A1 {
		t.Fatalf("NewSquare(0,7): got %s want a1", got)
	}
}

func TestBitboardOps(t *testing.T) {
	var b rules.Bitboard
	b = b.With(rules.E4).With(rules.A8).With(rules.H1)
	if got := b.Count(); got != 3 {
		t.Fatalf("count: got %d want 3", got)
	}
	if got := b.LSB(); got != rules.A8 {
		t.Fatalf("lsb: got %s want a8", got)
	}
	sqs := b.Squares()
	if len(sqs) != 3 || sqs[0] != rules.A8 || sqs[1] != rules.E4 || sqs[2] != rules.H1 {
		t.Fatalf("squares: got %v", sqs)
	}
	b = b.Without(rules.A8)
	if b.Has(rules.A8) || !b.Has(rules.E4) {
		t.Fatalf("without a8: got %#x", uint64(b))
	}
	if got := rules.Bitboard(0).LSB(); got != rules.NoSquare {
		t.Fatalf("empty lsb: got %d want NoSquare", got)
	}
}

func TestBitboardDraw(t *testing.T) {
	out := rules.SquareBB(rules.E4).Draw()
	lines := strings.Split(out, "\n")
	if lines[0] != "8  . . . . . . . ." {
		t.Fatalf("rank 8: got %q", lines[0])
	}
	if lines[4] != "4  . . . . 1 . . ." {
		t.Fatalf("rank 4: got %q", lines[4])
	}
	if !strings.HasSuffix(out, "\n   a b c d e f g h\n") {
		t.Fatalf("missing file labels: %q", out)
	}
}
