package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/restyle/damage"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/style"
)

// StyleChange is the verdict of a value-set comparison.
type StyleChange uint8

const (
	// Changed means the new values differ in a way downstream consumers
	// can observe.
	Changed StyleChange = iota
	// Unchanged means old and new values are equal for damage purposes.
	Unchanged
)

// ChildCascadeRequirement says whether an element's children may keep
// their previously cascaded values. The zero value is the safe one.
type ChildCascadeRequirement uint8

const (
	// MustCascade forces children to re-cascade; inherited property
	// changes have to propagate downward.
	MustCascade ChildCascadeRequirement = iota
	// CanSkipCascade lets children keep their values.
	CanSkipCascade
)

// StyleDifference pairs a damage classification with the change verdict
// it was derived from.
type StyleDifference struct {
	Damage damage.Damage
	Change StyleChange
}

// ComputeStyleDifference classifies the rework a change from prev to
// next requires, without redoing layout.
//
// When the host provides a rendering representation to diff against, its
// comparator decides. Without one the classification is conservative:
// full reconstruction, except for the cases where provably nothing is
// rendered before and after (display:none both times; a ::before/::after
// which is effectively not rendered both times).
func ComputeStyleDifference(ctx *Context, el dom.Element, pseudo dom.PseudoKind,
	prev, next *style.ValueSet) StyleDifference {
	//
	if handle := ctx.Shared.Host.DamageHandleFor(el, pseudo); handle != nil {
		dm := handle.CompareForDamage(prev, next)
		change := Changed
		if dm.IsEmpty() && style.DeepEqual(prev, next) {
			change = Unchanged
		}
		return StyleDifference{Damage: dm, Change: change}
	}
	if prev.IsDisplayNone() && next.IsDisplayNone() {
		// nothing rendered, nothing to do, whatever else changed
		return StyleDifference{Damage: damage.None, Change: Unchanged}
	}
	if pseudo.IsBeforeOrAfter() {
		if notRendered(prev) && notRendered(next) {
			return StyleDifference{Damage: damage.None, Change: Unchanged}
		}
		return StyleDifference{Damage: damage.Reconstruct(), Change: Changed}
	}
	// No representation to diff against: rebuild it from scratch.
	return StyleDifference{Damage: damage.Reconstruct(), Change: Changed}
}

// notRendered decides whether a generated-content pseudo produces no
// output: display:none or content absent/ineffective.
func notRendered(v *style.ValueSet) bool {
	return v.IsDisplayNone() || v.IneffectiveContent()
}

// accumulateDamage merges the difference between prev and next into the
// element's pending restyle damage and derives the cascade requirement
// for its children. Damage only ever grows within a pass.
//
// Skipped entirely on reconstruction-only passes and for elements
// already marked for full reconstruction. Without prior values or a
// restyle record there is nothing to compare against, so children must
// cascade.
func accumulateDamage(ctx *Context, el dom.Element, pseudo dom.PseudoKind,
	prev, next *style.ValueSet) ChildCascadeRequirement {
	//
	if ctx.Shared.Flags.Contains(ForReconstruct) {
		return MustCascade
	}
	rd := el.Data().Restyle()
	if rd == nil || prev == nil {
		return MustCascade
	}
	if rd.Damage.Contains(damage.Reconstruct()) {
		return MustCascade
	}
	diff := ComputeStyleDifference(ctx, el, pseudo, prev, next)
	rd.Damage = rd.Damage.Union(diff.Damage)
	if !diff.Damage.IsEmpty() {
		tracer().Debugf("<%s>%s accumulates damage %s", el.LocalName(), pseudo, diff.Damage)
	}
	if diff.Change == Unchanged {
		return CanSkipCascade
	}
	return MustCascade
}
