package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
)

// AncestorFilter is a probabilistic view onto the ancestor chain of the
// element currently being matched. MayContain answers false only if no
// ancestor carries the given token, allowing descendant selectors to be
// rejected without walking the tree. Tokens are tag names, "#id" and
// ".class" strings.
type AncestorFilter interface {
	MayContain(token string) bool
}

// FlagSink receives selector bookkeeping flags noted during matching.
// Flags for elements other than the one being styled must not be set in
// place during a parallel pass, so the stylist reports them instead of
// applying them.
type FlagSink interface {
	NoteSelectorFlags(target dom.Element, flags dom.SelectorFlags)
}

// MatchRelations records facts about how an element's declarations were
// found. The style sharing cache consults them: an element whose match
// depended on one of these is a bad sharing candidate or target.
type MatchRelations struct {
	AffectedByIDSelector     bool
	AffectedByStyleAttribute bool
	AffectedByPresHints      bool
}

// compiledRule is one (complex selector, declaration block) pair in a
// form ready for matching.
type compiledRule struct {
	sel         cascadia.Sel
	specificity cascadia.Specificity
	pseudo      dom.PseudoKind
	origin      Origin
	order       int
	normal      *rule.Block
	important   *rule.Block

	// matching shortcuts derived from the selector text
	usesID            bool
	ancestorTokens    []string
	needsRevalidation bool
	selfFlags         dom.SelectorFlags
	parentFlags       dom.SelectorFlags
}

// Stylist holds the compiled rules of all stylesheets and answers
// matching queries for single elements. After setup via AddStyleSheet
// it is immutable and safe for concurrent use.
type Stylist struct {
	rules        []*compiledRule
	revalidation []*compiledRule
	order        int
}

// NewStylist creates an empty stylist. Add stylesheets before styling.
func NewStylist() *Stylist {
	return &Stylist{}
}

// AddStyleSheet compiles a stylesheet's rules into the stylist.
// Selectors which do not parse are skipped with a trace message; a rule
// with several selectors in its prelude is compiled once per selector.
func (st *Stylist) AddStyleSheet(origin Origin, sheet StyleSheet) error {
	if sheet == nil || sheet.Empty() {
		return nil
	}
	for _, r := range sheet.Rules() {
		group, err := cascadia.ParseGroupWithPseudoElements(r.Selector())
		if err != nil {
			tracer().Errorf("cannot parse selector '%s': %v", r.Selector(), err)
			continue
		}
		normal, important := declarationsOf(r).Split()
		texts := splitTopLevel(r.Selector(), ',')
		for i, sel := range group {
			cr := &compiledRule{
				sel:         sel,
				specificity: sel.Specificity(),
				pseudo:      dom.ParsePseudo(sel.PseudoElement()),
				origin:      origin,
				order:       st.order,
				normal:      normal,
				important:   important,
			}
			st.order++
			if len(texts) == len(group) {
				// cascadia compiles a group in source order, so the
				// i-th selector pairs with the i-th comma-separated
				// part of the prelude
				analyzeSelector(cr, texts[i])
			} else {
				// no text to attribute: no bloom pruning, and the
				// revalidation set has to vet sharing candidates
				cr.needsRevalidation = true
			}
			st.rules = append(st.rules, cr)
			if cr.needsRevalidation {
				st.revalidation = append(st.revalidation, cr)
			}
		}
	}
	return nil
}

// declarationsOf converts a Rule's declarations into a block.
func declarationsOf(r Rule) *rule.Block {
	props := r.Properties()
	decls := make([]rule.Declaration, 0, len(props))
	for _, p := range props {
		decls = append(decls, rule.Declaration{
			Key:       strings.TrimSpace(p),
			Value:     style.Property(strings.ToLower(strings.TrimSpace(string(r.Value(p))))),
			Important: r.IsImportant(p),
		})
	}
	return rule.NewBlock(decls)
}

// RevalidationCount is the number of compiled revalidation selectors,
// and thereby the length of bitsets returned by
// MatchRevalidationSelectors.
func (st *Stylist) RevalidationCount() int {
	return len(st.revalidation)
}

// matchedBlock is a rule that matched, pending cascade-order sorting.
type matchedBlock struct {
	level       rule.Level
	specificity cascadia.Specificity
	order       int
	block       *rule.Block
}

// PushApplicableDeclarations collects all declaration blocks applying to
// an element (or one of its eager pseudo-elements) and returns them as
// rule store entries in cascade order: ascending by level, within a
// level ascending by specificity and source order, so that later
// entries override earlier ones.
//
// For the primary style the result additionally includes the
// user-agent display default, presentational hints, the style
// attribute and any animation declarations the element carries.
//
// filter and sink may be nil.
func (st *Stylist) PushApplicableDeclarations(el dom.Element, pseudo dom.PseudoKind,
	filter AncestorFilter, sink FlagSink) ([]rule.Entry, MatchRelations) {
	//
	var matched []matchedBlock
	var relations MatchRelations
	h := el.HTMLNode()
	for _, cr := range st.rules {
		if cr.pseudo != pseudo {
			continue
		}
		if cr.origin != UserAgentOrigin && !el.MatchesUserAndAuthorRules() {
			continue
		}
		if filter != nil && rejectedByFilter(cr, filter) {
			continue
		}
		if !cr.sel.Match(h) {
			continue
		}
		if cr.usesID {
			relations.AffectedByIDSelector = true
		}
		noteFlags(el, cr, sink)
		if !cr.normal.IsEmpty() {
			matched = append(matched, matchedBlock{
				level:       normalLevel(cr.origin),
				specificity: cr.specificity,
				order:       cr.order,
				block:       cr.normal,
			})
		}
		if !cr.important.IsEmpty() {
			matched = append(matched, matchedBlock{
				level:       importantLevel(cr.origin),
				specificity: cr.specificity,
				order:       cr.order,
				block:       cr.important,
			})
		}
	}
	if pseudo == dom.NoPseudo {
		matched = st.pushPrimaryExtras(el, matched, &relations)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].level != matched[j].level {
			return matched[i].level < matched[j].level
		}
		if matched[i].specificity != matched[j].specificity {
			return matched[i].specificity.Less(matched[j].specificity)
		}
		return matched[i].order < matched[j].order
	})
	entries := make([]rule.Entry, 0, len(matched))
	for _, m := range matched {
		entries = append(entries, rule.Entry{Block: m.block, Level: m.level})
	}
	tracer().Debugf("%d declaration blocks apply to <%s>%s", len(entries), el.LocalName(), pseudo)
	return entries, relations
}

// pushPrimaryExtras appends the non-stylesheet declaration sources which
// only the primary style receives.
func (st *Stylist) pushPrimaryExtras(el dom.Element, matched []matchedBlock,
	relations *MatchRelations) []matchedBlock {
	//
	if d := style.DisplayPropertyForHTMLNode(el.HTMLNode()); !d.IsEmpty() {
		block := rule.BlockOfProperties([]style.KeyValue{{Key: "display", Value: d}})
		matched = append(matched, matchedBlock{
			level: rule.UserAgentNormal,
			order: -1, // before any stylesheet rule
			block: block,
		})
	}
	if hints := el.PresentationalHints(); !hints.IsEmpty() {
		relations.AffectedByPresHints = true
		matched = append(matched, matchedBlock{level: rule.PresHints, block: hints})
	}
	if attr := el.StyleAttribute(); !attr.IsEmpty() {
		relations.AffectedByStyleAttribute = true
		normal, important := attr.Split()
		if !normal.IsEmpty() {
			matched = append(matched, matchedBlock{level: rule.StyleAttributeNormal, block: normal})
		}
		if !important.IsEmpty() {
			matched = append(matched, matchedBlock{level: rule.StyleAttributeImportant, block: important})
		}
	}
	if smil := el.SMILOverride(); !smil.IsEmpty() {
		matched = append(matched, matchedBlock{level: rule.SMILOverride, block: smil})
	}
	animations, transitions := el.AnimationRules()
	if !animations.IsEmpty() {
		matched = append(matched, matchedBlock{level: rule.Animations, block: animations})
	}
	if !transitions.IsEmpty() {
		matched = append(matched, matchedBlock{level: rule.Transitions, block: transitions})
	}
	return matched
}

// MatchRevalidationSelectors matches the element against every compiled
// revalidation selector and returns the outcomes as a bitset. Two
// elements with equal bitsets behave identically under all selectors the
// cheap sharing checks cannot rule on. Pseudo-element rules take part
// and match against their originating element.
//
// Bookkeeping flags of matching selectors are reported through sink,
// since elements vetted here may never run primary matching.
// filter and sink may be nil.
func (st *Stylist) MatchRevalidationSelectors(el dom.Element, filter AncestorFilter,
	sink FlagSink) *bitset.BitSet {
	//
	result := bitset.New(uint(len(st.revalidation)))
	h := el.HTMLNode()
	for i, cr := range st.revalidation {
		if filter != nil && rejectedByFilter(cr, filter) {
			continue
		}
		if cr.sel.Match(h) {
			result.Set(uint(i))
			noteFlags(el, cr, sink)
		}
	}
	return result
}

func rejectedByFilter(cr *compiledRule, filter AncestorFilter) bool {
	for _, tok := range cr.ancestorTokens {
		if !filter.MayContain(tok) {
			return true
		}
	}
	return false
}

func noteFlags(el dom.Element, cr *compiledRule, sink FlagSink) {
	if sink == nil {
		return
	}
	if !cr.selfFlags.IsEmpty() {
		sink.NoteSelectorFlags(el, cr.selfFlags)
	}
	if !cr.parentFlags.IsEmpty() {
		if parent := el.Parent(); parent != nil {
			sink.NoteSelectorFlags(parent, cr.parentFlags)
		}
	}
}

func normalLevel(o Origin) rule.Level {
	switch o {
	case UserAgentOrigin:
		return rule.UserAgentNormal
	case UserOrigin:
		return rule.UserNormal
	}
	return rule.AuthorNormal
}

func importantLevel(o Origin) rule.Level {
	switch o {
	case UserAgentOrigin:
		return rule.UserAgentImportant
	case UserOrigin:
		return rule.UserImportant
	}
	return rule.AuthorImportant
}
