package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/style"
)

// sharingCacheSize is the fixed capacity of the style sharing cache.
// Eight recently styled elements cover the sibling runs the cache is
// designed for; anything larger mostly grows scan cost.
const sharingCacheSize = 8

// CacheMiss is the reason a candidate could not donate its style. A miss
// is always specific; the reason drives the scan policy, not just
// diagnostics.
type CacheMiss uint8

// Miss reasons, in the order the checks run.
const (
	missNone CacheMiss = iota
	// MissParent means the elements have neither the same parent nor
	// parents with reference-identical computed values. The structural
	// assumption behind the cache is broken then, and the whole cache
	// is invalidated.
	MissParent
	// MissNativeAnonymous rejects engine-generated content.
	MissNativeAnonymous
	// MissLocalName rejects differing tag name or namespace.
	MissLocalName
	// MissLink rejects a pair of which only one is a hyperlink.
	MissLink
	// MissUserAndAuthorRules rejects differing cascade-origin
	// classification.
	MissUserAndAuthorRules
	// MissState rejects differing dynamic state (hover/focus/…).
	MissState
	// MissID rejects any element carrying an id attribute; an id is
	// assumed to imply a unique style.
	MissID
	// MissStyleAttr rejects candidates with an inline style attribute.
	MissStyleAttr
	// MissClass rejects differing class lists (order-sensitive).
	MissClass
	// MissPresHints rejects elements with attribute-derived styling.
	// Stops the scan: the check is expensive and further candidates are
	// no more likely to pass it.
	MissPresHints
	// MissRevalidation rejects differing revalidation selector bitsets.
	// Stops the scan, like MissPresHints.
	MissRevalidation
)

var missStrings = []string{"match", "parent", "native-anonymous", "local-name", "link",
	"user-and-author-rules", "state", "id", "style-attr", "class", "pres-hints", "revalidation"}

func (m CacheMiss) String() string {
	if int(m) < len(missStrings) {
		return missStrings[m]
	}
	return "?"
}

// candidate wraps a previously styled element. The wrapped element is
// read-only evidence; class list and revalidation bits are computed
// lazily and cached inside the candidate.
type candidate struct {
	element      dom.Element
	classes      []string
	classesValid bool
	revalidation *bitset.BitSet
}

func (c *candidate) classList() []string {
	if !c.classesValid {
		c.classes = c.element.Classes()
		c.classesValid = true
	}
	return c.classes
}

func (c *candidate) revalidationBits(ctx *Context) *bitset.BitSet {
	if c.revalidation == nil {
		c.revalidation = ctx.Shared.Stylist.MatchRevalidationSelectors(c.element, nil, ctx.Local)
	}
	return c.revalidation
}

// SharingCache is a bounded LRU of recently styled elements, answering
// "can this element reuse that element's computed style?". It is
// per-worker state; see ThreadLocal.
type SharingCache struct {
	list lruList[candidate]
}

// NewSharingCache creates an empty cache with the fixed capacity.
func NewSharingCache() *SharingCache {
	sc := &SharingCache{}
	sc.list = newLRUList[candidate](sharingCacheSize)
	return sc
}

// Len is the current number of candidates.
func (sc *SharingCache) Len() int {
	return sc.list.len()
}

// Clear drops all candidates. Must be called whenever the invariant
// "all cached elements are safe to read" no longer holds, in particular
// at work-stealing boundaries.
func (sc *SharingCache) Clear() {
	sc.list.clear()
}

// InsertIfPossible admits an element as a future donor candidate.
// Rejection is silent: elements whose style depends on anything the
// eleven matching checks cannot see (id, inline style, presentational
// hints, pseudo-elements, animations) never enter the cache.
func (sc *SharingCache) InsertIfPossible(el dom.Element, values *style.ValueSet,
	relations cssom.MatchRelations, hasPseudoStyles bool) {
	//
	if el.Parent() == nil || el.IsNativeAnonymous() {
		return
	}
	if el.ID() != "" {
		return
	}
	if relations.AffectedByIDSelector || relations.AffectedByStyleAttribute ||
		relations.AffectedByPresHints || hasPseudoStyles {
		return
	}
	if values.SpecifiesAnimations() || values.SpecifiesTransitions() {
		return
	}
	sc.list.insert(candidate{element: el})
}

// ShareStyleIfPossible tries to resolve el's primary style by copying it
// from a cached candidate. On success the element's primary computed
// style is installed (reference-shared with the donor), damage is
// accumulated against any prior values, and the cascade requirement of
// the shared outcome plus true are returned: matching and cascading may
// be skipped entirely.
func ShareStyleIfPossible(ctx *Context, el dom.Element) (ChildCascadeRequirement, bool) {
	if ctx.Shared.Options.DisableSharing {
		return MustCascade, false
	}
	if el.Parent() == nil || el.IsNativeAnonymous() {
		return MustCascade, false
	}
	if el.ID() != "" || !el.StyleAttribute().IsEmpty() {
		return MustCascade, false
	}
	if !el.PresentationalHints().IsEmpty() {
		return MustCascade, false
	}
	cache := &ctx.Local.sharing
	for i := 0; i < cache.list.len(); i++ {
		cand := cache.list.at(i)
		miss := elementMatchesCandidate(ctx, el, cand)
		if miss == missNone {
			donor := cand.element
			cache.list.touch(i)
			shared := donor.Data().Styles().Primary
			tracer().Debugf("<%s> shares style with candidate %d", el.LocalName(), i)
			return installSharedStyle(ctx, el, shared), true
		}
		tracer().Debugf("cache candidate %d missed: %s", i, miss)
		switch miss {
		case MissParent:
			// structural assumption broken, nothing in here applies
			// to this part of the tree any more
			cache.Clear()
			return MustCascade, false
		case MissPresHints, MissRevalidation:
			return MustCascade, false
		}
	}
	return MustCascade, false
}

func installSharedStyle(ctx *Context, el dom.Element, shared dom.ComputedStyle) ChildCascadeRequirement {
	data := el.EnsureData()
	var prev *style.ValueSet
	if data.HasStyles() {
		prev = data.Styles().Primary.Values
	}
	s := data.EnsureStyles()
	s.Primary = shared
	if prev != nil {
		return accumulateDamage(ctx, el, dom.NoPseudo, prev, shared.Values)
	}
	// first-time styling: the children have no previously cascaded
	// values they could keep, so nothing forces a downward cascade
	return CanSkipCascade
}

// elementMatchesCandidate decides whether cand may donate its style to
// el. The checks run cheapest and most discriminating first and
// short-circuit with a specific miss reason.
func elementMatchesCandidate(ctx *Context, el dom.Element, cand *candidate) CacheMiss {
	target := cand.element
	if !haveSameParent(el, target) {
		return MissParent
	}
	if el.IsNativeAnonymous() || target.IsNativeAnonymous() {
		return MissNativeAnonymous
	}
	if el.LocalName() != target.LocalName() || el.Namespace() != target.Namespace() {
		return MissLocalName
	}
	if el.IsLink() != target.IsLink() {
		return MissLink
	}
	if el.MatchesUserAndAuthorRules() != target.MatchesUserAndAuthorRules() {
		return MissUserAndAuthorRules
	}
	if el.StateFlags() != target.StateFlags() {
		return MissState
	}
	if el.ID() != "" || target.ID() != "" {
		return MissID
	}
	if !target.StyleAttribute().IsEmpty() {
		return MissStyleAttr
	}
	if !sameClassList(el.Classes(), cand.classList()) {
		return MissClass
	}
	if !el.PresentationalHints().IsEmpty() || !target.PresentationalHints().IsEmpty() {
		return MissPresHints
	}
	bits := ctx.Local.revalidationBitsFor(ctx.Shared, el)
	if !bits.Equal(cand.revalidationBits(ctx)) {
		return MissRevalidation
	}
	return missNone
}

// haveSameParent allows sharing across cousins: different parents
// qualify if their computed primary values are reference-identical.
func haveSameParent(a, b dom.Element) bool {
	pa, pb := a.Parent(), b.Parent()
	if pa == pb {
		return pa != nil
	}
	if pa == nil || pb == nil {
		return false
	}
	va := primaryValuesOf(pa)
	vb := primaryValuesOf(pb)
	return va != nil && style.Eq(va, vb)
}

func primaryValuesOf(el dom.Element) *style.ValueSet {
	data := el.Data()
	if !data.HasStyles() {
		return nil
	}
	return data.Styles().Primary.Values
}

func sameClassList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
