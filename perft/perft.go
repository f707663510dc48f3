// Package perft counts the leaf nodes of the legal move tree, the standard
// check of move generation against published node counts.
package perft

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/daparic/antigrav/rules"
)

// Branch is the node count below one legal root move.
type Branch struct {
	Move  rules.Move
	Nodes uint64
}

// Options tunes Run.
type Options struct {
	// Workers bounds the root moves searched concurrently; values below 2 run sequentially.
	Workers int
	// HashEntries sizes a transposition cache per worker; 0 disables caching.
	HashEntries int
}

// Count returns the number of leaf nodes depth plies below p.
func Count(p rules.Position, depth int) uint64 {
	return count(rules.DefaultAttacks(), &p, depth)
}

func count(at *rules.Attacks, p *rules.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml rules.MoveList
	at.Generate(p, &ml)
	var nodes uint64
	for _, m := range ml.Moves() {
		next, ok := at.MakeMove(*p, m)
		if !ok {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += count(at, &next, depth-1)
		}
	}
	return nodes
}

// Divide returns the node count below every legal root move, sorted by move notation.
func Divide(p rules.Position, depth int) []Branch {
	return Run(p, depth, Options{})
}

// Run is Divide with optional parallelism and caching. Every branch works on
// its own position copies, so workers share nothing but the result slots.
func Run(p rules.Position, depth int, opt Options) []Branch {
	if depth <= 0 {
		return nil
	}
	at := rules.DefaultAttacks()

	var ml rules.MoveList
	at.Generate(&p, &ml)
	var branches []Branch
	var children []rules.Position
	for _, m := range ml.Moves() {
		if next, ok := at.MakeMove(p, m); ok {
			branches = append(branches, Branch{Move: m})
			children = append(children, next)
		}
	}

	workers := opt.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(branches) {
		workers = len(branches)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cache *Cache
			if opt.HashEntries > 0 {
				cache = NewCache(opt.HashEntries)
			}
			for i := range jobs {
				if cache != nil {
					branches[i].Nodes = cache.count(&children[i], depth-1)
				} else {
					branches[i].Nodes = count(at, &children[i], depth-1)
				}
			}
		}()
	}
	for i := range branches {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return sortBranches(branches)
}

// sortBranches orders branches by move notation.
func sortBranches(branches []Branch) []Branch {
	slices.SortFunc(branches, func(a, b Branch) bool {
		return a.Move.String() < b.Move.String()
	})
	return branches
}

// Total sums the branch counts.
func Total(branches []Branch) uint64 {
	var n uint64
	for _, b := range branches {
		n += b.Nodes
	}
	return n
}
