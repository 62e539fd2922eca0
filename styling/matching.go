package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/damage"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/rule"
)

// RulesMatchedResult reports the outcome of MatchPrimary.
type RulesMatchedResult struct {
	// RulesChanged is true if the element got a different rule node than
	// it had before.
	RulesChanged bool
	// ImportantRulesChanged is true if the important-priority rules
	// differ from the snapshot taken before matching. Animations honor
	// !important, so this forces re-evaluation of animation effects.
	ImportantRulesChanged bool
}

// Replacements selects which cascade levels ReplaceRules swaps out.
type Replacements uint8

// Replaceable cascade levels.
const (
	ReplaceStyleAttribute Replacements = 1 << iota
	ReplaceSMILOverride
	ReplaceCSSAnimations
	ReplaceCSSTransitions
)

// RulesChanged reports which priority categories ReplaceRules actually
// changed.
type RulesChanged struct {
	Normal    bool
	Important bool
}

// Any is true if any category changed.
func (rc RulesChanged) Any() bool {
	return rc.Normal || rc.Important
}

// MatchPrimary produces the rule node for the element's primary style
// and installs it, reporting whether it changed.
//
// Elements which themselves implement an eager pseudo-element take a
// fast path: the originating parent's matched pseudo rules are copied
// and the element's own animation rules spliced in; no selector matching
// runs. All other elements get full matching against the stylesheets.
func MatchPrimary(ctx *Context, el dom.Element) (RulesMatchedResult, cssom.MatchRelations) {
	var relations cssom.MatchRelations
	var node *rule.Node
	if p := el.ImplementedPseudo(); p.IsEager() {
		node = pseudoRulesFromParent(ctx, el, p)
	} else {
		entries, rel := ctx.Shared.Stylist.PushApplicableDeclarations(
			el, dom.NoPseudo, ctx.Local.bloom, ctx.Local)
		relations = rel
		node = ctx.Shared.Rules.InsertOrdered(entries)
	}
	data := el.EnsureData()
	hadStyles := data.HasStyles()
	changed := data.SetPrimaryRules(node)
	important := false
	if hadStyles && ctx.Shared.Host.HasRunningAnimations(el) {
		important = data.ImportantRulesAreDifferent()
	}
	if changed {
		tracer().Debugf("<%s> matched new rule node %v", el.LocalName(), node)
	}
	return RulesMatchedResult{RulesChanged: changed, ImportantRulesChanged: important}, relations
}

// pseudoRulesFromParent copies the parent's matched rules for the pseudo
// the element implements and splices the element's own animation- and
// transition-origin rules in at their levels.
func pseudoRulesFromParent(ctx *Context, el dom.Element, pseudo dom.PseudoKind) *rule.Node {
	parent := el.Parent()
	if parent == nil {
		panic(fmt.Sprintf("element implementing %s has no originating parent", pseudo))
	}
	cs := parent.Data().Styles().Pseudo(pseudo)
	if cs == nil {
		panic(fmt.Sprintf("originating element of %s has no matched pseudo rules", pseudo))
	}
	node := cs.Rules
	animations, transitions := el.AnimationRules()
	if !animations.IsEmpty() {
		node, _ = ctx.Shared.Rules.UpdateRuleAtLevel(rule.Animations, animations, node)
	}
	if !transitions.IsEmpty() {
		node, _ = ctx.Shared.Rules.UpdateRuleAtLevel(rule.Transitions, transitions, node)
	}
	return node
}

// MatchPseudos runs matching for every eager pseudo-element kind of el.
// A pseudo newly starting or stopping to match changes the element's box
// structure, so the element is marked for full reconstruction then.
// Returns whether any pseudo's rules changed.
func MatchPseudos(ctx *Context, el dom.Element) bool {
	data := el.EnsureData()
	s := data.EnsureStyles()
	changed := false
	root := ctx.Shared.Rules.Root()
	dom.EachEagerPseudo(func(pseudo dom.PseudoKind) {
		entries, _ := ctx.Shared.Stylist.PushApplicableDeclarations(
			el, pseudo, ctx.Local.bloom, ctx.Local)
		node := ctx.Shared.Rules.InsertOrdered(entries)
		existing := s.Pseudo(pseudo)
		matches := node != root
		switch {
		case matches && existing == nil:
			s.SetPseudo(pseudo, &dom.ComputedStyle{Rules: node})
			data.AddDamage(damage.Reconstruct())
			changed = true
			tracer().Debugf("<%s>%s newly matches", el.LocalName(), pseudo)
		case !matches && existing != nil:
			s.RemovePseudo(pseudo)
			data.AddDamage(damage.Reconstruct())
			changed = true
			tracer().Debugf("<%s>%s vanished", el.LocalName(), pseudo)
		case matches && existing.Rules != node:
			existing.Rules = node
			changed = true
		}
	})
	return changed
}

// ReplaceRules is the narrow incremental path for restyle hints naming a
// single changed cascade level: the level's entry is swapped in the
// element's existing rule node, without re-running selector matching.
func ReplaceRules(ctx *Context, el dom.Element, which Replacements) RulesChanged {
	data := el.Data()
	if !data.HasStyles() {
		panic(fmt.Sprintf("rule replacement on unstyled <%s>", el.LocalName()))
	}
	primary := &data.Styles().Primary
	node := primary.Rules
	var changed RulesChanged
	replace := func(level rule.Level, block *rule.Block) {
		next, didChange := ctx.Shared.Rules.UpdateRuleAtLevel(level, block, node)
		if !didChange {
			return
		}
		node = next
		if level.IsImportant() {
			changed.Important = true
		} else {
			changed.Normal = true
		}
	}
	if which&ReplaceStyleAttribute != 0 {
		normal, important := el.StyleAttribute().Split()
		replace(rule.StyleAttributeNormal, normal)
		replace(rule.StyleAttributeImportant, important)
	}
	if which&ReplaceSMILOverride != 0 {
		replace(rule.SMILOverride, el.SMILOverride())
	}
	animations, transitions := el.AnimationRules()
	if which&ReplaceCSSAnimations != 0 {
		replace(rule.Animations, animations)
	}
	if which&ReplaceCSSTransitions != 0 {
		replace(rule.Transitions, transitions)
	}
	if node != primary.Rules {
		primary.Rules = node
		tracer().Debugf("<%s> rules replaced, normal=%v important=%v",
			el.LocalName(), changed.Normal, changed.Important)
	}
	return changed
}
