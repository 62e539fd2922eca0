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
	"github.com/npillmayer/restyle/damage"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
)

// TraversalFlags select variants of a styling pass.
type TraversalFlags uint8

const (
	// AnimationOnly restricts the pass to re-cascading elements whose
	// animation- or transition-origin rules changed. No selector
	// matching is performed.
	AnimationOnly TraversalFlags = 1 << iota
	// ForReconstruct marks a pass whose consumer rebuilds the rendering
	// representation anyway; damage accumulation is redundant then.
	ForReconstruct
)

// Contains checks wether all given flags are set.
func (f TraversalFlags) Contains(other TraversalFlags) bool {
	return f&other == other
}

// Options configure a Styler.
type Options struct {
	// Workers bounds the number of goroutines styling subtrees in
	// parallel. Zero or one mean sequential styling.
	Workers int
	// DisableSharing turns the style sharing cache off. Styles are then
	// always resolved by matching and cascading.
	DisableSharing bool
}

// SharedContext is the read-only state of a styling pass, shared by all
// workers. The rule store synchronizes its insertions internally; the
// stylist is immutable during a pass.
type SharedContext struct {
	Stylist *cssom.Stylist
	Rules   *rule.Tree
	Host    Host
	Flags   TraversalFlags
	Options Options
}

// ThreadLocal is the per-worker state of a styling pass. It is owned by
// exactly one goroutine at a time and recycled between subtrees.
type ThreadLocal struct {
	sharing SharingCache
	bloom   *StyleBloom

	// flags selector matching wants to set on elements other than the
	// current one; flushed sequentially after the parallel phase
	deferredFlags map[dom.Element]dom.SelectorFlags

	// memos for the element currently being styled
	current      dom.Element
	revalidation *bitset.BitSet
	hasReval     bool
}

// NewThreadLocal creates worker state for one styling goroutine.
func NewThreadLocal() *ThreadLocal {
	tl := &ThreadLocal{
		bloom:         NewStyleBloom(),
		deferredFlags: make(map[dom.Element]dom.SelectorFlags),
	}
	tl.sharing.list = newLRUList[candidate](sharingCacheSize)
	return tl
}

// Reset prepares the worker state for an unrelated subtree. The sharing
// cache must not survive a work boundary: its entries reference elements
// which are only guaranteed stable within one contiguous unit of work.
func (tl *ThreadLocal) Reset() {
	tl.sharing.Clear()
	tl.bloom.Clear()
	tl.current = nil
	tl.revalidation = nil
	tl.hasReval = false
}

// beginElement marks el as the element currently being styled and drops
// memos belonging to the previous one.
func (tl *ThreadLocal) beginElement(el dom.Element) {
	tl.current = el
	tl.revalidation = nil
	tl.hasReval = false
}

// NoteSelectorFlags implements cssom.FlagSink. Flags for the element
// currently being styled are applied in place; this worker owns it.
// Flags for any other element (ancestors, typically) are deferred,
// because a sibling on another worker might race on the same target.
func (tl *ThreadLocal) NoteSelectorFlags(target dom.Element, flags dom.SelectorFlags) {
	if flags.IsEmpty() {
		return
	}
	if target == tl.current {
		if !target.HasSelectorFlags(flags) {
			target.SetSelectorFlags(flags)
		}
		return
	}
	tl.deferredFlags[target] |= flags
}

// takeDeferredFlags hands the accumulated flag map over to the flush
// phase and starts a fresh one.
func (tl *ThreadLocal) takeDeferredFlags() map[dom.Element]dom.SelectorFlags {
	if len(tl.deferredFlags) == 0 {
		return nil
	}
	m := tl.deferredFlags
	tl.deferredFlags = make(map[dom.Element]dom.SelectorFlags)
	return m
}

// revalidationBitsFor matches el against the revalidation selector set,
// memoizing the result for the duration of el's styling attempt.
func (tl *ThreadLocal) revalidationBitsFor(shared *SharedContext, el dom.Element) *bitset.BitSet {
	if el == tl.current && tl.hasReval {
		return tl.revalidation
	}
	bits := shared.Stylist.MatchRevalidationSelectors(el, tl.bloom, tl)
	if el == tl.current {
		tl.revalidation = bits
		tl.hasReval = true
	}
	return bits
}

var _ cssom.FlagSink = &ThreadLocal{}

// Context bundles shared and per-worker state for one element's styling.
type Context struct {
	Shared *SharedContext
	Local  *ThreadLocal
}

// --- host seam ---------------------------------------------------------

// Animator is the hook into an animation/transition subsystem. The
// engine calls it once per cascaded element; the hook may replace the
// freshly cascaded values (e.g. sample running animations into them) and
// schedule follow-up work on its own.
type Animator interface {
	// UpdateAnimations may return a replacement for next, or next
	// unchanged.
	UpdateAnimations(el dom.Element, pseudo dom.PseudoKind,
		prev, next *style.ValueSet, rules *rule.Node) *style.ValueSet
	// HasRunningAnimations reports whether the element currently has
	// running animations or transitions.
	HasRunningAnimations(el dom.Element) bool
}

// DamageHandle is an existing rendering representation which can be
// diffed against new computed values.
type DamageHandle interface {
	CompareForDamage(prev, next *style.ValueSet) damage.Damage
}

// DamageSource answers whether an element (or one of its
// pseudo-elements) has a rendering representation to diff against.
// Elements without one get conservative full-reconstruction damage.
type DamageSource interface {
	// DamageHandleFor returns nil if no representation exists, e.g. for
	// display:none subtrees or not-yet-existing pseudo-elements.
	DamageHandleFor(el dom.Element, pseudo dom.PseudoKind) DamageHandle
}

// Host is the single seam behind which host environments diverge: how
// animations are detected and triggered, and how "is there an existing
// rendering representation" is answered. Cache, cascade and damage
// classification stay host-agnostic.
type Host interface {
	Animator
	DamageSource
}
