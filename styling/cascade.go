package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
)

// inheritMode selects the inheritance source of a cascade.
type inheritMode uint8

const (
	// inheritNormal inherits from the DOM parent's resolved primary
	// values.
	inheritNormal inheritMode = iota
	// inheritFromPrimary inherits from the same element's own primary
	// values; used when resolving an eager pseudo-element.
	inheritFromPrimary
)

// CascadePrimary recomputes the element's primary style from its matched
// rule node: snapshot the old values, cascade, let the host's animation
// hook adjust the result, accumulate damage, and install the new value
// set. Returns whether children must re-cascade.
//
// This and CascadeEagerPseudo are the only places which replace an
// element's stored value sets.
func CascadePrimary(ctx *Context, el dom.Element) ChildCascadeRequirement {
	data := el.EnsureData()
	s := data.EnsureStyles()
	if s.Primary.Rules == nil {
		panic(fmt.Sprintf("cascade of <%s> without matched rules", el.LocalName()))
	}
	prev := s.Primary.Values
	next := cascadeInternal(ctx, el, s.Primary.Rules)
	next = ctx.Shared.Host.UpdateAnimations(el, dom.NoPseudo, prev, next, s.Primary.Rules)
	req := accumulateDamage(ctx, el, dom.NoPseudo, prev, next)
	s.Primary.Values = next
	return req
}

// CascadeEagerPseudo recomputes the style of one eager pseudo-element.
// The pseudo inherits from the element's own primary values, which must
// already be resolved for the current pass.
func CascadeEagerPseudo(ctx *Context, el dom.Element, pseudo dom.PseudoKind) {
	cs := el.Data().Styles().Pseudo(pseudo)
	if cs == nil {
		return
	}
	prev := cs.Values
	next := cascadeWithRules(ctx, el, cs.Rules, pseudo, inheritFromPrimary)
	next = ctx.Shared.Host.UpdateAnimations(el, pseudo, prev, next, cs.Rules)
	accumulateDamage(ctx, el, pseudo, prev, next)
	cs.Values = next
}

// cascadeInternal dispatches a primary cascade. For an element which
// itself implements an eager pseudo-element and has no overriding
// animation rules, the parent's already-cascaded pseudo style is reused
// as is: eager pseudos track their originating element's style unless
// animations intervene.
func cascadeInternal(ctx *Context, el dom.Element, rules *rule.Node) *style.ValueSet {
	if p := el.ImplementedPseudo(); p.IsEager() && !rules.HasAnimationRules() {
		parent := el.Parent()
		if parent == nil {
			panic("element implementing a pseudo-element has no originating parent")
		}
		cs := parent.Data().Styles().Pseudo(p)
		if cs == nil || cs.Values == nil {
			panic(fmt.Sprintf("originating element of %s has no resolved pseudo style", p))
		}
		return cs.Values
	}
	return cascadeWithRules(ctx, el, rules, dom.NoPseudo, inheritNormal)
}

// cascadeWithRules resolves a rule node into a computed value set.
//
// Property inheritance and layout inheritance may come from different
// ancestors: the inheritance parent is the nearest non-anonymous
// ancestor, while layout-relevant bits (fragmentation eligibility) come
// from the nearest ancestor which actually generates a box.
func cascadeWithRules(ctx *Context, el dom.Element, rules *rule.Node,
	pseudo dom.PseudoKind, mode inheritMode) *style.ValueSet {
	//
	var inherited *style.ValueSet
	switch mode {
	case inheritFromPrimary:
		inherited = primaryValuesOf(el)
		if inherited == nil {
			panic(fmt.Sprintf("pseudo %s cascaded before its element's primary style", pseudo))
		}
	default:
		if p := inheritanceParent(el); p != nil {
			inherited = primaryValuesOf(p)
		}
	}
	layout := layoutParentValues(el, inherited)

	b := style.NewBuilder()
	for _, entry := range rules.Entries() {
		for _, d := range entry.Block.Declarations() {
			b.Set(d.Key, resolveKeyword(d.Key, d.Value, inherited))
		}
	}
	if inherited != nil {
		b.InheritFrom(inherited)
	}
	for _, kv := range style.InitialValues() {
		b.Add(kv.Key, kv.Value)
	}
	if layout != nil && (layout.IsMulticol() || layout.CanBeFragmented()) {
		b.SetCanBeFragmented(true)
		el.SetCanBeFragmented(true)
	}
	values := b.Build()
	if mode == inheritNormal && el.Parent() == nil {
		values = blockifyRoot(values)
	}
	tracer().Debugf("cascaded <%s>%s to %d properties", el.LocalName(), pseudo, values.Size())
	return values
}

// resolveKeyword replaces the CSS-wide keywords inherit and initial by
// the values they stand for. Resolution only depends on the key and the
// inheritance source, so it can happen while declarations are applied.
func resolveKeyword(key string, v style.Property, inherited *style.ValueSet) style.Property {
	if v.IsInherit() {
		if inherited != nil {
			if pv, ok := inherited.Get(key); ok {
				return pv
			}
		}
		return style.InitialValueOf(key)
	}
	if v.IsInitial() {
		return style.InitialValueOf(key)
	}
	return v
}

// inheritanceParent finds the ancestor supplying inherited property
// values, skipping native-anonymous boxes, which are invisible to the
// author's cascade.
func inheritanceParent(el dom.Element) dom.Element {
	p := el.Parent()
	for p != nil && p.IsNativeAnonymous() {
		p = p.Parent()
	}
	return p
}

// layoutParentValues walks ancestors until one generates a box, skipping
// display:contents elements. The root, lacking a qualifying ancestor,
// supplies its own values.
func layoutParentValues(el dom.Element, inherited *style.ValueSet) *style.ValueSet {
	p := el.Parent()
	for p != nil {
		if v := primaryValuesOf(p); v != nil {
			if v.Display().GeneratesBox() {
				return v
			}
		} else {
			break
		}
		p = p.Parent()
	}
	return inherited
}

// blockifyRoot fixes up the display of the document root: the root box
// is always block-level.
func blockifyRoot(values *style.ValueSet) *style.ValueSet {
	d := values.Display()
	if d.IsNone() || d.Contains(style.BlockMode) {
		return values
	}
	b := style.NewBuilder()
	for _, kv := range values.Properties() {
		b.Set(kv.Key, kv.Value)
	}
	b.Set("display", "block")
	b.SetCanBeFragmented(values.CanBeFragmented())
	return b.Build()
}

// GetBaseStyle produces the element's style with all animation- and
// transition-origin rules stripped from its rule node. If the rule node
// carries no such rules, the already-resolved value set is returned
// unchanged.
func GetBaseStyle(ctx *Context, el dom.Element) *style.ValueSet {
	s := el.Data().Styles()
	if !s.Primary.Rules.HasAnimationRules() {
		return s.Primary.Values
	}
	stripped := ctx.Shared.Rules.RemoveAnimationRules(s.Primary.Rules)
	return cascadeWithRules(ctx, el, stripped, dom.NoPseudo, inheritNormal)
}

// GetAfterChangeStyle produces the style the element would have if its
// running transitions ended right now: the rule node without
// transition-origin rules, cascaded fresh. Returns (nil, false) if the
// rule node has no transition rules, meaning the current style already
// is the after-change style.
func GetAfterChangeStyle(ctx *Context, el dom.Element) (*style.ValueSet, bool) {
	s := el.Data().Styles()
	stripped := ctx.Shared.Rules.RemoveTransitionRules(s.Primary.Rules)
	if stripped == s.Primary.Rules {
		return nil, false
	}
	return cascadeWithRules(ctx, el, stripped, dom.NoPseudo, inheritNormal), true
}
