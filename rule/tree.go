package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"
)

// Entry is one (declaration block, cascade level) pair of a rule node's
// path.
type Entry struct {
	Block *Block
	Level Level
}

// Node is the canonical representation of one ordered cascade of
// declaration blocks. Nodes are created by a Tree and never mutated;
// node equality is pointer identity.
type Node struct {
	parent *Node
	level  Level
	block  *Block
}

// Parent returns the node's parent, or nil for the tree root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Level returns the cascade level of the node's own block. Undefined for
// the root, which carries no block.
func (n *Node) Level() Level {
	return n.level
}

// Block returns the node's own declaration block, nil for the root.
func (n *Node) Block() *Block {
	return n.block
}

func (n *Node) String() string {
	if n == nil {
		return "RuleNode(nil)"
	}
	if n.block == nil {
		return "RuleNode(root)"
	}
	return fmt.Sprintf("RuleNode(%s, #%d)", n.level, len(n.block.decls))
}

// SelfAndAncestors returns the node's path, leaf first, excluding the
// root (which carries no block).
func (n *Node) SelfAndAncestors() []*Node {
	var path []*Node
	for it := n; it != nil && it.block != nil; it = it.parent {
		path = append(path, it)
	}
	return path
}

// Entries returns the node's cascade in application order: lowest
// priority first.
func (n *Node) Entries() []Entry {
	path := n.SelfAndAncestors()
	entries := make([]Entry, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		entries = append(entries, Entry{Block: path[i].block, Level: path[i].level})
	}
	return entries
}

// ImportantEntries returns the subset of the node's cascade at important
// levels, lowest priority first.
func (n *Node) ImportantEntries() []Entry {
	var entries []Entry
	for _, e := range n.Entries() {
		if e.Level.IsImportant() {
			entries = append(entries, e)
		}
	}
	return entries
}

// HasAnimationRules checks wether any entry of the node's cascade stems
// from the animation/transition subsystem.
func (n *Node) HasAnimationRules() bool {
	for it := n; it != nil && it.block != nil; it = it.parent {
		if it.level.IsAnimationOrigin() {
			return true
		}
	}
	return false
}

// EqualImportantRules compares the important-level cascades of two
// nodes. Used to detect wether `!important` declarations overriding
// animations changed between two rule nodes.
func EqualImportantRules(a, b *Node) bool {
	if a == b {
		return true
	}
	ea, eb := a.ImportantEntries(), b.ImportantEntries()
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if ea[i].Level != eb[i].Level || !ea[i].Block.Equal(eb[i].Block) {
			return false
		}
	}
	return true
}

// --- Tree -------------------------------------------------------------

// Tree is the rule node store. It canonicalizes ordered rule cascades
// into shared nodes. A single Tree is shared by all workers of a styling
// pass; insertion into the canonical-node table is internally
// synchronized, reads of existing nodes are lock-free.
type Tree struct {
	root Node
	mu   sync.Mutex
	// children of each node, keyed by owner node and content hash.
	// Buckets are scanned with Block.Equal to guard against collisions.
	children map[childKey][]*Node
}

type childKey struct {
	parent *Node
	hash   uint64
}

// NewTree creates an empty rule node store.
func NewTree() *Tree {
	return &Tree{children: make(map[childKey][]*Node)}
}

// Root returns the canonical empty cascade.
func (t *Tree) Root() *Node {
	return &t.root
}

func (t *Tree) childFor(parent *Node, block *Block, level Level) *Node {
	key := childKey{parent: parent, hash: block.Hash() ^ uint64(level)<<56}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ch := range t.children[key] {
		if ch.level == level && ch.block.Equal(block) {
			return ch
		}
	}
	ch := &Node{parent: parent, level: level, block: block}
	t.children[key] = append(t.children[key], ch)
	return ch
}

// InsertOrdered canonicalizes an ordered sequence of (block, level)
// pairs into a node. Entries must be ordered by non-decreasing level;
// empty blocks are skipped. Inserting an equal sequence twice yields the
// identical node pointer.
func (t *Tree) InsertOrdered(entries []Entry) *Node {
	node := &t.root
	last := Level(0)
	for _, e := range entries {
		if e.Block.IsEmpty() {
			continue
		}
		if e.Level < last {
			panic(fmt.Sprintf("rule store: entries out of order, %s after %s", e.Level, last))
		}
		last = e.Level
		node = t.childFor(node, e.Block, e.Level)
	}
	return node
}

// UpdateRuleAtLevel replaces the block at the given cascade level of a
// node's cascade, returning the canonical replacement node. A nil block
// removes the level. The second result is false if the node's cascade is
// unchanged (same node returned).
func (t *Tree) UpdateRuleAtLevel(level Level, block *Block, node *Node) (*Node, bool) {
	entries := node.Entries()
	rebuilt := make([]Entry, 0, len(entries)+1)
	inserted := false
	for _, e := range entries {
		if e.Level == level {
			continue // strip the old entry at this level
		}
		if !inserted && e.Level > level {
			if !block.IsEmpty() {
				rebuilt = append(rebuilt, Entry{Block: block, Level: level})
			}
			inserted = true
		}
		rebuilt = append(rebuilt, e)
	}
	if !inserted && !block.IsEmpty() {
		rebuilt = append(rebuilt, Entry{Block: block, Level: level})
	}
	replacement := t.InsertOrdered(rebuilt)
	if replacement == node {
		return node, false
	}
	tracer().Debugf("rule store: replaced level %s, %v -> %v", level, node, replacement)
	return replacement, true
}

// RemoveAnimationRules strips all animation-origin entries (SMIL,
// animations, transitions) from a node's cascade. Returns the node
// unchanged if there are none.
func (t *Tree) RemoveAnimationRules(node *Node) *Node {
	return t.removeLevels(node, Level.IsAnimationOrigin)
}

// RemoveTransitionRules strips the transitions entry from a node's
// cascade. Returns the node unchanged if there is none.
func (t *Tree) RemoveTransitionRules(node *Node) *Node {
	return t.removeLevels(node, func(l Level) bool { return l == Transitions })
}

func (t *Tree) removeLevels(node *Node, drop func(Level) bool) *Node {
	entries := node.Entries()
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !drop(e.Level) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return node
	}
	return t.InsertOrdered(kept)
}
