package perft

import "github.com/daparic/antigrav/rules"

type cacheEntry struct {
	key   uint64
	depth int
	nodes uint64
}

// Cache is a Zobrist-keyed, always-replace table of subtree counts. It is not
// safe for concurrent use; Run gives every worker its own.
type Cache struct {
	at      *rules.Attacks
	entries []cacheEntry
	mask    uint64
}

// NewCache allocates a table of the largest power of two not above entries.
func NewCache(entries int) *Cache {
	size := 1
	for size*2 <= entries {
		size *= 2
	}
	return &Cache{
		at:      rules.DefaultAttacks(),
		entries: make([]cacheEntry, size),
		mask:    uint64(size - 1),
	}
}

// Count is perft.Count with subtree results memoised in the cache.
func (c *Cache) Count(p rules.Position, depth int) uint64 {
	return c.count(&p, depth)
}

func (c *Cache) count(p *rules.Position, depth int) uint64 {
	if depth <= 1 {
		return count(c.at, p, depth)
	}
	key := p.Hash()
	e := &c.entries[key&c.mask]
	if e.key == key && e.depth == depth {
		return e.nodes
	}

	var ml rules.MoveList
	c.at.Generate(p, &ml)
	var nodes uint64
	for _, m := range ml.Moves() {
		if next, ok := c.at.MakeMove(*p, m); ok {
			nodes += c.count(&next, depth-1)
		}
	}
	*e = cacheEntry{key: key, depth: depth, nodes: nodes}
	return nodes
}
