package trie

import (
	"github.com/glossopoeia/rewrite/rewriting/histogram"
	"github.com/glossopoeia/rewrite/rewriting/term"
)

// MatchKind controls which stored key Find prefers when several stored
// keys are prefixes of the probe.
type MatchKind int

const (
	// Return the id at the shallowest visited node that carries one.
	// The rewrite system indexes rule left hand sides this way, so a
	// lookup finds the shortest applicable rule first and a subsumed
	// rule can discover the rule that subsumes it.
	MatchShortest MatchKind = iota + 1
	// Return the id at the deepest visited node that carries one.
	MatchLongest
)

type node struct {
	children map[term.Symbol]*node
	ruleID   int
	occupied bool
}

// A prefix tree over symbols mapping whole keys to rule ids. Keys are
// never removed; rule deletion is the caller's concern and is expressed
// by filtering ids on lookup, not by touching the trie.
type Trie struct {
	root  node
	match MatchKind
}

func New(match MatchKind) *Trie {
	return &Trie{match: match}
}

// Insert the id at the exact key, creating nodes along the way. If the
// key already stores an id, that id is returned unchanged and the trie
// is not modified; the second result reports whether this happened.
func (t *Trie) Insert(key []term.Symbol, ruleID int) (int, bool) {
	n := &t.root
	for _, symbol := range key {
		if n.children == nil {
			n.children = map[term.Symbol]*node{}
		}
		child, ok := n.children[symbol]
		if !ok {
			child = &node{}
			n.children[symbol] = child
		}
		n = child
	}
	if n.occupied {
		return n.ruleID, true
	}
	n.ruleID = ruleID
	n.occupied = true
	return 0, false
}

// Find the id of a stored key that is a prefix of the probe, walking
// from the root and consuming the probe symbol by symbol; the probe
// need not be consumed entirely. Which prefix wins when several are
// stored depends on the trie's MatchKind.
func (t *Trie) Find(probe []term.Symbol) (int, bool) {
	bestID := 0
	found := false

	n := &t.root
	for _, symbol := range probe {
		child := n.children[symbol]
		if child == nil {
			break
		}
		n = child
		if n.occupied {
			if t.match == MatchShortest {
				return n.ruleID, true
			}
			bestID = n.ruleID
			found = true
		}
	}
	return bestID, found
}

// Record the child fan-out of every node into hist, and of the root
// node alone into root. Called once at rewrite system teardown.
func (t *Trie) UpdateHistograms(hist, root *histogram.Histogram) {
	root.Add(len(t.root.children))

	var walk func(n *node)
	walk = func(n *node) {
		hist.Add(len(n.children))
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(&t.root)
}
