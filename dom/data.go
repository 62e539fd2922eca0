package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/restyle/damage"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
)

// ComputedStyle pairs the rule node an element matched with the property
// values cascaded from it. Values may be nil while matching has run but
// the cascade has not.
type ComputedStyle struct {
	Rules  *rule.Node
	Values *style.ValueSet
}

// ElementStyles holds the computed style of an element and of its eager
// pseudo-elements.
type ElementStyles struct {
	Primary ComputedStyle
	pseudos map[PseudoKind]*ComputedStyle
}

// Pseudo returns the style slot for an eager pseudo-element, or nil if
// the pseudo does not currently match.
func (s *ElementStyles) Pseudo(which PseudoKind) *ComputedStyle {
	if s == nil || s.pseudos == nil {
		return nil
	}
	return s.pseudos[which]
}

// SetPseudo installs or replaces the style slot for a pseudo-element.
func (s *ElementStyles) SetPseudo(which PseudoKind, cs *ComputedStyle) {
	if s.pseudos == nil {
		s.pseudos = make(map[PseudoKind]*ComputedStyle, 2)
	}
	s.pseudos[which] = cs
}

// RemovePseudo drops a pseudo-element's style slot. Returns true if a
// slot existed.
func (s *ElementStyles) RemovePseudo(which PseudoKind) bool {
	if s.pseudos == nil {
		return false
	}
	if _, ok := s.pseudos[which]; !ok {
		return false
	}
	delete(s.pseudos, which)
	return true
}

// EachPseudo iterates over the currently present pseudo styles.
func (s *ElementStyles) EachPseudo(f func(PseudoKind, *ComputedStyle)) {
	if s == nil {
		return
	}
	for k, cs := range s.pseudos {
		f(k, cs)
	}
}

// RestyleData is transient per-restyle bookkeeping. It accumulates
// damage during a pass and carries the snapshot of important animation
// rules needed to detect the important-rules-changed condition.
type RestyleData struct {
	Damage            damage.Damage
	DamageHandled     damage.Damage
	ImportantSnapshot *rule.Node
}

// UnhandledDamage returns the damage bits not yet processed by a
// consumer.
func (rd *RestyleData) UnhandledDamage() damage.Damage {
	if rd == nil {
		return damage.None
	}
	return rd.Damage &^ rd.DamageHandled
}

// ElementData is the engine-owned mutable state attached to an element.
type ElementData struct {
	styles  *ElementStyles
	restyle *RestyleData
}

// HasStyles is true once matching and cascading produced a primary
// style.
func (d *ElementData) HasStyles() bool {
	return d != nil && d.styles != nil
}

// Styles returns the element's current styles, nil before the first
// styling pass.
func (d *ElementData) Styles() *ElementStyles {
	if d == nil {
		return nil
	}
	return d.styles
}

// SetStyles installs a complete styles record, replacing the previous
// one.
func (d *ElementData) SetStyles(s *ElementStyles) {
	d.styles = s
}

// EnsureStyles returns the styles record, creating an empty one if
// necessary.
func (d *ElementData) EnsureStyles() *ElementStyles {
	if d.styles == nil {
		d.styles = &ElementStyles{}
	}
	return d.styles
}

// SetPrimaryRules installs the matched rule node for the element's
// primary style and reports whether it differs from the previous one.
// Rule nodes are hash-consed, so pointer comparison decides. The old
// values stay in place until the cascade replaces them; they are the
// baseline the damage comparison runs against.
func (d *ElementData) SetPrimaryRules(rules *rule.Node) (changed bool) {
	s := d.EnsureStyles()
	changed = s.Primary.Rules != rules
	if changed {
		s.Primary.Rules = rules
	}
	return changed
}

// ImportantRulesAreDifferent compares the important declarations of the
// current primary rule node against the snapshot taken before rule
// replacement. Animations honor !important by skipping properties the
// author marked important, so a change here forces a full cascade even
// on an animation-only pass.
func (d *ElementData) ImportantRulesAreDifferent() bool {
	if d == nil || d.restyle == nil || d.styles == nil {
		return false
	}
	return !rule.EqualImportantRules(d.styles.Primary.Rules, d.restyle.ImportantSnapshot)
}

// Restyle returns the transient restyle record, nil outside a pass.
func (d *ElementData) Restyle() *RestyleData {
	if d == nil {
		return nil
	}
	return d.restyle
}

// EnsureRestyle returns the restyle record, creating it if necessary.
func (d *ElementData) EnsureRestyle() *RestyleData {
	if d.restyle == nil {
		d.restyle = &RestyleData{}
	}
	return d.restyle
}

// AddDamage accumulates damage bits for this element's restyle.
func (d *ElementData) AddDamage(dm damage.Damage) {
	if dm.IsEmpty() {
		return
	}
	rd := d.EnsureRestyle()
	rd.Damage = rd.Damage.Union(dm)
}

// ClearRestyle drops the transient restyle record after a pass has been
// consumed.
func (d *ElementData) ClearRestyle() {
	d.restyle = nil
}
