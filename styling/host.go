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
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
)

// NopHost is a host without animations and without rendering
// representations. Every style change on it classifies as full
// reconstruction, which is correct but maximally pessimistic.
type NopHost struct{}

// UpdateAnimations returns next unchanged.
func (NopHost) UpdateAnimations(el dom.Element, pseudo dom.PseudoKind,
	prev, next *style.ValueSet, rules *rule.Node) *style.ValueSet {
	return next
}

// HasRunningAnimations always answers false.
func (NopHost) HasRunningAnimations(dom.Element) bool {
	return false
}

// DamageHandleFor always answers nil.
func (NopHost) DamageHandleFor(dom.Element, dom.PseudoKind) DamageHandle {
	return nil
}

var _ Host = NopHost{}

// ValueDiffHost is the default host for consumers without a retained
// rendering tree. It treats an element's previous computed values as its
// rendering representation: whenever prior values exist, damage is
// classified property-group-wise by comparing value sets.
type ValueDiffHost struct{}

// UpdateAnimations returns next unchanged.
func (ValueDiffHost) UpdateAnimations(el dom.Element, pseudo dom.PseudoKind,
	prev, next *style.ValueSet, rules *rule.Node) *style.ValueSet {
	return next
}

// HasRunningAnimations checks for installed animation or transition
// declaration blocks.
func (ValueDiffHost) HasRunningAnimations(el dom.Element) bool {
	animations, transitions := el.AnimationRules()
	return !animations.IsEmpty() || !transitions.IsEmpty()
}

// DamageHandleFor returns a comparing handle if the element (or pseudo)
// has previously computed values which generated a box.
func (ValueDiffHost) DamageHandleFor(el dom.Element, pseudo dom.PseudoKind) DamageHandle {
	data := el.Data()
	if !data.HasStyles() {
		return nil
	}
	var cs *dom.ComputedStyle
	if pseudo == dom.NoPseudo {
		cs = &data.Styles().Primary
	} else {
		cs = data.Styles().Pseudo(pseudo)
	}
	if cs == nil || cs.Values == nil || cs.Values.IsDisplayNone() {
		return nil
	}
	return valueDiffHandle{}
}

var _ Host = ValueDiffHost{}

type valueDiffHandle struct{}

func (valueDiffHandle) CompareForDamage(prev, next *style.ValueSet) damage.Damage {
	return damage.Compute(prev, next)
}
