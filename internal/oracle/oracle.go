// Package oracle cross-checks the rules package against independent move
// generators: dragontoothmg for legal move lists and node counts, and
// GooseEngineMG's goosemg for node counts.
package oracle

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/daparic/antigrav/rules"
)

// Moves returns the legal moves of the position in coordinate notation, sorted.
func Moves(fen string) ([]string, error) {
	p, err := rules.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	legal := p.LegalMoves(nil)
	out := make([]string, 0, len(legal))
	for _, m := range legal {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out, nil
}

// DragontoothMoves returns dragontoothmg's legal moves for the position, sorted.
func DragontoothMoves(fen string) ([]string, error) {
	b, err := parseDragontooth(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	slices.Sort(out)
	return out, nil
}

// DragontoothPerft counts leaf nodes with dragontoothmg.
func DragontoothPerft(fen string, depth int) (uint64, error) {
	b, err := parseDragontooth(fen)
	if err != nil {
		return 0, err
	}
	return dragontoothPerft(&b, depth), nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// dragontoothmg panics on input it cannot parse.
func parseDragontooth(fen string) (b dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dragontoothmg: parse %q: %v", fen, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

// GoosePerft counts leaf nodes with goosemg.
func GoosePerft(fen string, depth int) (uint64, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("goosemg: %w", err)
	}
	return goosemg.Perft(b, depth), nil
}

// Diff compares two move lists: missing holds moves only in want, extra
// moves only in got. Both results are sorted.
func Diff(got, want []string) (missing, extra []string) {
	inGot := make(map[string]bool, len(got))
	for _, m := range got {
		inGot[m] = true
	}
	inWant := make(map[string]bool, len(want))
	for _, m := range want {
		inWant[m] = true
		if !inGot[m] {
			missing = append(missing, m)
		}
	}
	extraSet := make(map[string]bool)
	for _, m := range got {
		if !inWant[m] {
			extraSet[m] = true
		}
	}
	extra = maps.Keys(extraSet)
	slices.Sort(missing)
	slices.Sort(extra)
	return missing, extra
}

// Report summarises a cross-check of one position at one depth.
type Report struct {
	Nodes            uint64
	DragontoothNodes uint64
	GooseNodes       uint64
	Missing, Extra   []string
}

// OK reports whether every source agrees.
func (r Report) OK() bool {
	return r.Nodes == r.DragontoothNodes && r.Nodes == r.GooseNodes && len(r.Missing) == 0 && len(r.Extra) == 0
}

// Check runs every oracle against the rules package for fen at depth.
func Check(fen string, depth int, nodes uint64) (Report, error) {
	r := Report{Nodes: nodes}
	ours, err := Moves(fen)
	if err != nil {
		return r, err
	}
	theirs, err := DragontoothMoves(fen)
	if err != nil {
		return r, err
	}
	r.Missing, r.Extra = Diff(ours, theirs)
	if r.DragontoothNodes, err = DragontoothPerft(fen, depth); err != nil {
		return r, err
	}
	if r.GooseNodes, err = GoosePerft(fen, depth); err != nil {
		return r, err
	}
	return r, nil
}
