// Package trie implements an insertion-only prefix tree over runes.
//
// A Trie is built once and then only read. Reads (Contains, WithPrefix, the
// Node accessors used by the scanner) are safe from multiple goroutines as long
// as no Insert runs at the same time; Insert itself must be serialized by the
// caller.
package trie

import (
	"sort"
	"strings"
)

// Node is one vertex of the tree. Each node owns its children.
type Node struct {
	children map[rune]*Node
	terminal bool
	depth    int
}

func newNode(depth int) *Node {
	return &Node{depth: depth}
}

// Child returns the child reached over r.
func (n *Node) Child(r rune) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	c, ok := n.children[r]
	return c, ok
}

// Terminal reports whether an inserted keyword ends at this node.
func (n *Node) Terminal() bool {
	return n.terminal
}

// Depth is the length of the path from the root, in runes.
func (n *Node) Depth() int {
	return n.depth
}

// Trie is a prefix tree whose root represents the empty prefix.
type Trie struct {
	root  *Node
	words int
	nodes int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{root: newNode(0), nodes: 1}
}

// Build segments every keyword into runes and inserts it. Empty keywords are
// skipped.
func Build(keywords []string) *Trie {
	t := New()
	for _, kw := range keywords {
		t.InsertString(kw)
	}
	return t
}

// Units splits s into code points.
func Units(s string) []rune {
	return []rune(s)
}

// Root returns the root node.
func (t *Trie) Root() *Node {
	return t.root
}

// Insert adds keyword to the tree. Inserting an existing keyword or an empty
// one leaves the tree unchanged.
func (t *Trie) Insert(keyword []rune) {
	if len(keyword) == 0 {
		return
	}

	cur := t.root
	for _, r := range keyword {
		next, ok := cur.Child(r)
		if !ok {
			if cur.children == nil {
				cur.children = make(map[rune]*Node)
			}
			next = newNode(cur.depth + 1)
			cur.children[r] = next
			t.nodes++
		}
		cur = next
	}

	if !cur.terminal {
		cur.terminal = true
		t.words++
	}
}

// InsertString is Insert on the code points of s.
func (t *Trie) InsertString(s string) {
	t.Insert(Units(s))
}

// Len returns the number of distinct keywords.
func (t *Trie) Len() int {
	return t.words
}

// Nodes returns the number of nodes, root included.
func (t *Trie) Nodes() int {
	return t.nodes
}

// Contains reports whether keyword was inserted.
func (t *Trie) Contains(keyword string) bool {
	n := t.walk(keyword)
	return n != nil && n.terminal
}

// HasPrefix reports whether some inserted keyword starts with prefix.
// The empty prefix matches when the trie holds any keyword.
func (t *Trie) HasPrefix(prefix string) bool {
	n := t.walk(prefix)
	if n == nil {
		return false
	}
	return n.terminal || len(n.children) > 0
}

// WithPrefix returns every inserted keyword that starts with prefix, sorted.
func (t *Trie) WithPrefix(prefix string) []string {
	n := t.walk(prefix)
	if n == nil {
		return nil
	}

	var out []string
	var sb strings.Builder
	sb.WriteString(prefix)
	collect(n, &sb, &out)
	sort.Strings(out)
	return out
}

func (t *Trie) walk(s string) *Node {
	cur := t.root
	for _, r := range s {
		next, ok := cur.Child(r)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// collect appends the keywords below n. sb holds the path to n and is
// restored before returning.
func collect(n *Node, sb *strings.Builder, out *[]string) {
	if n.terminal {
		*out = append(*out, sb.String())
	}
	if len(n.children) == 0 {
		return
	}

	prefix := sb.String()
	for r, c := range n.children {
		sb.Reset()
		sb.WriteString(prefix)
		sb.WriteRune(r)
		collect(c, sb, out)
	}
	sb.Reset()
	sb.WriteString(prefix)
}
