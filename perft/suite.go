package perft

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daparic/antigrav/rules"
)

// SuiteEntry is one line of a perft suite: a position and its expected node
// counts, Nodes[d-1] for depth d.
type SuiteEntry struct {
	Line  int
	FEN   string
	Nodes []uint64
}

// ParseSuite reads the perftsuite.epd layout, one position per line:
//
//	<fen> ;D1 20 ;D2 400 ;D3 8902
//
// Blank lines and lines starting with '#' are skipped. Depths must be listed
// in order from 1.
func ParseSuite(r io.Reader) ([]SuiteEntry, error) {
	var entries []SuiteEntry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ";")
		entry := SuiteEntry{Line: lineNo, FEN: strings.TrimSpace(parts[0])}
		if _, err := rules.ParseFEN(entry.FEN); err != nil {
			return nil, fmt.Errorf("suite line %d: %w", lineNo, err)
		}
		for i, part := range parts[1:] {
			fields := strings.Fields(part)
			if len(fields) != 2 || fields[0] != "D"+strconv.Itoa(i+1) {
				return nil, fmt.Errorf("suite line %d: malformed depth entry %q", lineNo, strings.TrimSpace(part))
			}
			n, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("suite line %d: %w", lineNo, err)
			}
			entry.Nodes = append(entry.Nodes, n)
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Mismatch is a depth where the counted nodes differ from the suite.
type Mismatch struct {
	Entry SuiteEntry
	Depth int
	Got   uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("line %d depth %d: got %d want %d (%s)", m.Entry.Line, m.Depth, m.Got, m.Entry.Nodes[m.Depth-1], m.Entry.FEN)
}

// Verify counts every entry up to maxDepth (all listed depths when maxDepth
// is 0) and returns the depths that disagree.
func Verify(entries []SuiteEntry, maxDepth int, opt Options) []Mismatch {
	var bad []Mismatch
	for _, e := range entries {
		p, err := rules.ParseFEN(e.FEN)
		if err != nil {
			// ParseSuite already accepted the FEN.
			panic(err)
		}
		for d := 1; d <= len(e.Nodes); d++ {
			if maxDepth > 0 && d > maxDepth {
				break
			}
			if got := Total(Run(p, d, opt)); got != e.Nodes[d-1] {
				bad = append(bad, Mismatch{Entry: e, Depth: d, Got: got})
			}
		}
	}
	return bad
}
