package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/npillmayer/restyle/dom"
)

// bloomCapacity is tuned for document trees: a filter sized for this
// many ancestor tokens keeps the false positive rate low enough that
// descendant selector pruning stays effective.
const bloomCapacity = 1 << 10

// StyleBloom maintains a bloom filter over the tokens (tag names, ids,
// classes) of the ancestor chain of the element currently being styled.
// Selector matching probes it to reject descendant selectors without
// walking the tree.
//
// The underlying filter is not counting, so Pop rebuilds it from the
// retained token stack. Pops are rare compared to probes; rebuilding
// keeps the filter type simple.
type StyleBloom struct {
	filter *bloom.BloomFilter
	stack  [][]string // tokens per pushed element, bottom-up
}

// NewStyleBloom creates an empty ancestor filter.
func NewStyleBloom() *StyleBloom {
	return &StyleBloom{
		filter: bloom.NewWithEstimates(bloomCapacity, 0.01),
	}
}

// MayContain is part of interface cssom.AncestorFilter. A false answer
// is definitive: no pushed ancestor carries the token.
func (b *StyleBloom) MayContain(token string) bool {
	return b.filter.TestString(token)
}

// Push adds an element's tokens to the filter. Call when descending to
// the element's children.
func (b *StyleBloom) Push(el dom.Element) {
	tokens := bloomTokensFor(el)
	for _, t := range tokens {
		b.filter.AddString(t)
	}
	b.stack = append(b.stack, tokens)
}

// Pop removes the most recently pushed element and rebuilds the filter
// from the remaining stack.
func (b *StyleBloom) Pop() {
	if len(b.stack) == 0 {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.filter.ClearAll()
	for _, tokens := range b.stack {
		for _, t := range tokens {
			b.filter.AddString(t)
		}
	}
}

// Clear empties filter and stack.
func (b *StyleBloom) Clear() {
	b.filter.ClearAll()
	b.stack = b.stack[:0]
}

// Depth is the number of pushed elements.
func (b *StyleBloom) Depth() int {
	return len(b.stack)
}

// RebuildFor clears the filter and pushes the complete ancestor chain of
// el, root first. Call when a worker picks up an unrelated subtree.
func (b *StyleBloom) RebuildFor(el dom.Element) {
	b.Clear()
	var chain []dom.Element
	for p := el.Parent(); p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		b.Push(chain[i])
	}
}

func bloomTokensFor(el dom.Element) []string {
	tokens := make([]string, 0, 4)
	tokens = append(tokens, el.LocalName())
	if id := el.ID(); id != "" {
		tokens = append(tokens, "#"+id)
	}
	for _, c := range el.Classes() {
		tokens = append(tokens, "."+c)
	}
	return tokens
}
