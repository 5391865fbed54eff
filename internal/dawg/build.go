package dawg

import "sort"

// node is the recursive, pointer-based trie used only while building an
// Automaton; it mirrors the original analyzer's in-memory Node before
// flattening into the disk-friendly FlatNode/FlatEdge arrays.
type node struct {
	children map[rune]*node
	payloads [][]byte
	isFinal  bool
}

func newNode() *node { return &node{children: make(map[rune]*node)} }

// Builder accumulates (key, payload) pairs and flattens them into an
// Automaton. Within this module it is used by tests that need a small
// in-memory automaton without a real compiled file on disk.
type Builder struct {
	root        *node
	payloadSize int
}

// NewBuilder starts a builder for payloads of exactly payloadSize bytes.
func NewBuilder(payloadSize int) *Builder {
	return &Builder{root: newNode(), payloadSize: payloadSize}
}

// Add inserts one payload record under key. Multiple calls with the
// same key append to that key's payload list, in call order.
func (b *Builder) Add(key string, payload []byte) {
	if len(payload) != b.payloadSize {
		panic("dawg: payload size mismatch")
	}
	cur := b.root
	for _, ch := range key {
		child, ok := cur.children[ch]
		if !ok {
			child = newNode()
			cur.children[ch] = child
		}
		cur = child
	}
	cur.isFinal = true
	cur.payloads = append(cur.payloads, payload)
}

// Build flattens the accumulated trie into an Automaton. Child edges of
// every node are sorted by rune so that Automaton.findChild's binary
// search and Keys' enumeration order both agree with simple
// lexicographic string order.
func (b *Builder) Build() *Automaton {
	a := &Automaton{PayloadSize: b.payloadSize}

	// Reserve the root as node 0 up front so traversal can always start there.
	a.Nodes = append(a.Nodes, FlatNode{})

	var flatten func(n *node) uint32
	flatten = func(n *node) uint32 {
		var idx uint32
		if n == b.root {
			idx = 0
		} else {
			idx = uint32(len(a.Nodes))
			a.Nodes = append(a.Nodes, FlatNode{})
		}

		if len(n.payloads) > 0 {
			payloadIdx := uint32(len(a.Payloads) / b.payloadSize)
			for _, p := range n.payloads {
				a.Payloads = append(a.Payloads, p...)
			}
			a.Nodes[idx].PayloadIdx = payloadIdx
			a.Nodes[idx].PayloadLen = uint16(len(n.payloads))
		}
		a.Nodes[idx].IsFinal = n.isFinal

		if len(n.children) > 0 {
			chars := make([]rune, 0, len(n.children))
			for ch := range n.children {
				chars = append(chars, ch)
			}
			sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

			edgesIdx := uint32(len(a.Edges))
			a.Edges = append(a.Edges, make([]FlatEdge, len(chars))...)
			a.Nodes[idx].EdgesIdx = edgesIdx
			a.Nodes[idx].EdgesLen = uint16(len(chars))

			for i, ch := range chars {
				childIdx := flatten(n.children[ch])
				a.Edges[int(edgesIdx)+i] = FlatEdge{Char: ch, NodeID: childIdx}
			}
		}

		return idx
	}
	flatten(b.root)
	return a
}
