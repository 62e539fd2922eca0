package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/restyle/rule"
	"golang.org/x/net/html"
)

// PseudoKind identifies a pseudo-element.
type PseudoKind uint8

// Pseudo-element kinds known to the engine.
const (
	NoPseudo PseudoKind = iota
	Before
	After
	FirstLine
	FirstLetter
)

var pseudoStrings = []string{"", "::before", "::after", "::first-line", "::first-letter"}

func (p PseudoKind) String() string {
	if int(p) < len(pseudoStrings) {
		return pseudoStrings[p]
	}
	return "::?"
}

// IsEager returns true for pseudo-elements whose style is computed
// alongside their originating element, in the same pass.
func (p PseudoKind) IsEager() bool {
	return p == Before || p == After
}

// IsBeforeOrAfter singles out the generated-content pseudos, which get
// special damage treatment.
func (p PseudoKind) IsBeforeOrAfter() bool {
	return p == Before || p == After
}

// EachEagerPseudo calls f for every eagerly-cascaded pseudo-element kind.
func EachEagerPseudo(f func(PseudoKind)) {
	f(Before)
	f(After)
}

// ParsePseudo maps a pseudo-element name (as cascadia reports it, without
// colons) to its kind.
func ParsePseudo(name string) PseudoKind {
	switch name {
	case "before":
		return Before
	case "after":
		return After
	case "first-line":
		return FirstLine
	case "first-letter":
		return FirstLetter
	}
	return NoPseudo
}

// StateFlags is the set of dynamic state bits of an element
// (hover/focus/…). Two elements with different state never share style.
type StateFlags uint16

// Dynamic element states.
const (
	StateHover StateFlags = 1 << iota
	StateFocus
	StateActive
	StateVisited
	StateEnabled
	StateDisabled
	StateChecked
	StateTarget
)

// SelectorFlags are bookkeeping bits selector matching wants to set on
// elements so that future DOM mutations trigger the restyles they need.
// Flags for elements other than the one currently being styled must not
// be applied in place during a parallel pass; they travel through a
// per-worker deferral map instead.
type SelectorFlags uint8

// Selector bookkeeping flags.
const (
	// FlagsSlowSelector marks an element whose children must be restyled
	// on any childlist mutation (e.g. matched by :empty or ~).
	FlagsSlowSelector SelectorFlags = 1 << iota
	// FlagsSlowSelectorLaterSiblings is a weaker version limited to
	// later-sibling mutations.
	FlagsSlowSelectorLaterSiblings
	// FlagsEdgeChildSelector marks an element whose first/last children
	// must be restyled on edge mutations (e.g. matched by :first-child).
	FlagsEdgeChildSelector
)

// IsEmpty checks for the absence of any flag.
func (f SelectorFlags) IsEmpty() bool {
	return f == 0
}

// Contains checks wether all bits of other are set.
func (f SelectorFlags) Contains(other SelectorFlags) bool {
	return f&other == other
}

// Element is the engine's view onto a node of the document tree. The
// tree owns navigation and attributes; the engine owns the single
// mutable data slot reachable through Data/EnsureData.
//
// Concrete implementations must be comparable (pointer types), because
// elements serve as map keys for the deferred selector-flags mechanism.
type Element interface {
	// Tree navigation. Parent returns nil for the document root.
	Parent() Element
	PrevSibling() Element
	// EachChild iterates over the child elements in document order,
	// stopping early if f returns false.
	EachChild(f func(Element) bool)

	// Identity and attributes.
	LocalName() string
	Namespace() string
	ID() string
	Classes() []string
	StyleAttribute() *rule.Block // parsed inline style, nil if absent

	// Classification.
	StateFlags() StateFlags
	IsLink() bool
	IsNativeAnonymous() bool
	MatchesUserAndAuthorRules() bool
	ImplementedPseudo() PseudoKind // NoPseudo for ordinary elements

	// Styling inputs beyond stylesheets.
	PresentationalHints() *rule.Block // legacy attribute styling, nil if none
	SMILOverride() *rule.Block
	AnimationRules() (animations, transitions *rule.Block)

	// Selector bookkeeping (see SelectorFlags).
	SetSelectorFlags(SelectorFlags)
	HasSelectorFlags(SelectorFlags) bool

	// Fragmentation eligibility, propagated from the layout parent.
	CanBeFragmented() bool
	SetCanBeFragmented(bool)

	// HTMLNode exposes the underlying parse-tree node for selector
	// matching.
	HTMLNode() *html.Node

	// Data returns the element's styling data, nil if never styled.
	// EnsureData creates the slot on first use.
	Data() *ElementData
	EnsureData() *ElementData
}
