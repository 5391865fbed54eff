// Package dawg implements the read-only finite-state automaton used
// throughout rusmorph to store word -> payload mappings: the dictionary
// word trie, the per-prefix prediction-suffix tries, and the
// conditional-probability table.
//
// The on-disk representation is a flat array-of-structs trie (no
// pointers) so that it can be memory-mapped and queried without
// copying into the Go heap, the same technique the original analyzer
// used for its single combined dictionary file. Node minimization
// (collapsing equivalent suffixes, as a true DAWG does) is not
// performed: the trie is acyclic and produces identical query results
// to a minimized automaton, it is just larger on disk. Spec §6
// explicitly allows any automaton implementation that satisfies the
// query operations, so this tradeoff favors a much simpler, obviously
// correct builder over bit-exact compatibility with a particular
// minimization algorithm.
package dawg

import "sort"

// FlatNode is a node of the trie, referencing contiguous slices of the
// global Edges and Payloads arrays instead of holding pointers.
type FlatNode struct {
	PayloadIdx, EdgesIdx uint32
	PayloadLen, EdgesLen uint16
	IsFinal              bool
}

// FlatEdge is a single labeled transition to a child node. Edges
// belonging to one node are stored contiguously and sorted by Char so
// that child lookup can binary search instead of scanning.
type FlatEdge struct {
	Char   rune
	NodeID uint32
}

// Automaton is an immutable, read-only trie with fixed-width byte
// payloads attached to terminal nodes.
type Automaton struct {
	Nodes       []FlatNode
	Edges       []FlatEdge
	Payloads    []byte // PayloadsCount * PayloadSize bytes, flat
	PayloadSize int
}

// findChild looks up the child of nodeIdx reached by a single rune,
// using binary search over that node's sorted outgoing edges.
func (a *Automaton) findChild(nodeIdx uint32, ch rune) (uint32, bool) {
	node := a.Nodes[nodeIdx]
	if node.EdgesLen == 0 {
		return 0, false
	}
	edges := a.Edges[node.EdgesIdx : node.EdgesIdx+uint32(node.EdgesLen)]
	i := sort.Search(len(edges), func(i int) bool { return edges[i].Char >= ch })
	if i < len(edges) && edges[i].Char == ch {
		return edges[i].NodeID, true
	}
	return 0, false
}

// follow walks the trie from the root along key's runes.
func (a *Automaton) follow(key string) (uint32, bool) {
	if len(a.Nodes) == 0 {
		return 0, false
	}
	idx := uint32(0)
	for _, ch := range key {
		next, ok := a.findChild(idx, ch)
		if !ok {
			return 0, false
		}
		idx = next
	}
	return idx, true
}

// Contains reports whether key is a stored key (a final node reachable
// by following all of its runes).
func (a *Automaton) Contains(key string) bool {
	idx, ok := a.follow(key)
	return ok && a.Nodes[idx].IsFinal
}

func (a *Automaton) payloadsAt(nodeIdx uint32) [][]byte {
	node := a.Nodes[nodeIdx]
	if node.PayloadLen == 0 {
		return nil
	}
	out := make([][]byte, node.PayloadLen)
	start := int(node.PayloadIdx) * a.PayloadSize
	for i := range out {
		off := start + i*a.PayloadSize
		out[i] = a.Payloads[off : off+a.PayloadSize : off+a.PayloadSize]
	}
	return out
}

// GetValues returns the fixed-size payload records stored under key, or
// nil if key is not present.
func (a *Automaton) GetValues(key string) [][]byte {
	idx, ok := a.follow(key)
	if !ok || !a.Nodes[idx].IsFinal {
		return nil
	}
	return a.payloadsAt(idx)
}

// Keys enumerates, in ascending lexicographic order, every stored key
// that starts with prefix (prefix == "" enumerates everything).
func (a *Automaton) Keys(prefix string) []string {
	idx, ok := a.follow(prefix)
	if !ok {
		return nil
	}
	var out []string
	var walk func(nodeIdx uint32, suffix []byte)
	walk = func(nodeIdx uint32, suffix []byte) {
		node := a.Nodes[nodeIdx]
		if node.IsFinal {
			out = append(out, prefix+string(suffix))
		}
		if node.EdgesLen == 0 {
			return
		}
		edges := a.Edges[node.EdgesIdx : node.EdgesIdx+uint32(node.EdgesLen)]
		for _, e := range edges {
			walk(e.NodeID, append(append([]byte{}, suffix...), []byte(string(e.Char))...))
		}
	}
	walk(idx, nil)
	return out
}
