package styling

import (
	"testing"

	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/damage"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/dom/styledtree"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMatchPrimaryIsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, sty := buildFixture(t, cascadeDoc, "p { color: maroon; }", Options{})
	c := testContext(sty, 0)
	styleAll(c, root)
	p := find(root, byName("p"))
	node := p.Data().Styles().Primary.Rules
	if node == nil {
		t.Fatal("expected <p> to have a matched rule node")
	}
	// matching again against unchanged sheets finds the identical node
	c.Local.beginElement(p)
	res, _ := MatchPrimary(c, p)
	if res.RulesChanged {
		t.Error("expected re-matching unchanged sheets to keep the rule node")
	}
	if p.Data().Styles().Primary.Rules != node {
		t.Error("expected the rule node to be pointer-stable across matches")
	}
}

func TestMatchPseudosBirthAndDeath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, sty := buildFixture(t, cascadeDoc, `p { color: maroon; } p::before { content: "*"; }`, Options{})
	c := testContext(sty, 0)
	styleAll(c, root)
	p := find(root, byName("p"))
	cs := p.Data().Styles().Pseudo(dom.Before)
	if cs == nil {
		t.Fatal("expected <p> to carry a ::before style")
	}
	if content, _ := cs.Values.Get("content"); content != `"*"` {
		t.Errorf("expected generated content '\"*\"', got '%s'", content)
	}
	if cs2 := p.Data().Styles().Pseudo(dom.After); cs2 != nil {
		t.Error("expected no ::after style without a matching rule")
	}
	// a pseudo starting to exist changes box structure
	if dm := p.Data().Restyle().Damage; !dm.Contains(damage.Reconstruct()) {
		t.Errorf("expected reconstruction damage from a newly matching pseudo, got %s", dm)
	}
	//
	// re-match against sheets without the ::before rule: the pseudo vanishes
	stylist2 := cssom.NewStylist()
	sty2 := NewStyler(stylist2, nil, Options{})
	c2 := testContext(sty2, 0)
	c2.Local.beginElement(p)
	if changed := MatchPseudos(c2, p); !changed {
		t.Error("expected a vanished pseudo to report a change")
	}
	if p.Data().Styles().Pseudo(dom.Before) != nil {
		t.Error("expected the ::before style to be removed")
	}
}

func TestReplaceRulesSplicesAnimationLevels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, sty := buildFixture(t, cascadeDoc, "p { color: maroon; }", Options{})
	c := testContext(sty, 0)
	styleAll(c, root)
	p := find(root, byName("p"))
	before := p.Data().Styles().Primary.Rules
	//
	anim := rule.BlockOfProperties([]style.KeyValue{{Key: "color", Value: "olive"}})
	p.(*styledtree.StyNode).SetAnimationRules(anim, nil)
	changed := ReplaceRules(c, p, ReplaceCSSAnimations)
	if !changed.Normal || changed.Important {
		t.Errorf("expected a normal-priority change, got %+v", changed)
	}
	if p.Data().Styles().Primary.Rules == before {
		t.Error("expected the rule node to be replaced")
	}
	// splicing the same block again is a no-op
	if again := ReplaceRules(c, p, ReplaceCSSAnimations); again.Any() {
		t.Errorf("expected an identical splice to change nothing, got %+v", again)
	}
	// removing the animation rules canonicalizes back onto the old node
	p.(*styledtree.StyNode).SetAnimationRules(nil, nil)
	removed := ReplaceRules(c, p, ReplaceCSSAnimations)
	if !removed.Normal {
		t.Error("expected removing the animation block to be a change")
	}
	if p.Data().Styles().Primary.Rules != before {
		t.Error("expected the rule node to canonicalize back onto the static one")
	}
}

func TestReplaceRulesStyleAttributeNoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	html := `<html><body><div><p style="color: navy">x</p></div></body></html>`
	root, sty := buildFixture(t, html, "", Options{})
	c := testContext(sty, 0)
	styleAll(c, root)
	p := find(root, byName("p"))
	// the attribute is unchanged, so re-splicing it changes nothing
	if changed := ReplaceRules(c, p, ReplaceStyleAttribute); changed.Any() {
		t.Errorf("expected the unchanged style attribute to be a no-op, got %+v", changed)
	}
}

func TestReplaceRulesSMILOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, sty := buildFixture(t, cascadeDoc, "p { color: maroon; }", Options{})
	c := testContext(sty, 0)
	styleAll(c, root)
	p := find(root, byName("p"))
	smil := rule.BlockOfProperties([]style.KeyValue{{Key: "color", Value: "olive"}})
	p.(*styledtree.StyNode).SetSMILOverride(smil)
	if changed := ReplaceRules(c, p, ReplaceSMILOverride); !changed.Normal {
		t.Error("expected the SMIL override splice to be a change")
	}
	CascadePrimary(c, p)
	if col := propOf(t, p, "color"); col != "olive" {
		t.Errorf("expected the SMIL override to win over the author rule, got '%s'", col)
	}
}

func TestComputeStyleDifferenceConservative(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	sty := NewStyler(cssom.NewStylist(), NopHost{}, Options{})
	c := testContext(sty, 0)
	root, _ := buildFixture(t, cascadeDoc, "", Options{})
	p := find(root, byName("p"))
	//
	prev := style.NewBuilder().Set("display", "block").Set("color", "maroon").Build()
	next := style.NewBuilder().Set("display", "block").Set("color", "olive").Build()
	diff := ComputeStyleDifference(c, p, dom.NoPseudo, prev, next)
	if !diff.Damage.Contains(damage.Reconstruct()) || diff.Change != Changed {
		t.Errorf("expected conservative reconstruction without a handle, got %+v", diff)
	}
	// display:none on both sides renders nothing either way
	gone := style.NewBuilder().Set("display", "none").Set("color", "maroon").Build()
	gone2 := style.NewBuilder().Set("display", "none").Set("color", "olive").Build()
	diff = ComputeStyleDifference(c, p, dom.NoPseudo, gone, gone2)
	if !diff.Damage.IsEmpty() || diff.Change != Unchanged {
		t.Errorf("expected display:none to stay damage-free, got %+v", diff)
	}
}

func TestComputeStyleDifferenceGeneratedContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	sty := NewStyler(cssom.NewStylist(), NopHost{}, Options{})
	c := testContext(sty, 0)
	root, _ := buildFixture(t, cascadeDoc, "", Options{})
	p := find(root, byName("p"))
	//
	// a ::before which renders nothing before and after is unchanged
	empty := style.NewBuilder().Set("display", "inline").Set("content", "none").Build()
	empty2 := style.NewBuilder().Set("display", "inline").Set("content", `""`).Build()
	diff := ComputeStyleDifference(c, p, dom.Before, empty, empty2)
	if diff.Change != Unchanged {
		t.Errorf("expected unrendered generated content to be unchanged, got %+v", diff)
	}
	// effective content forces reconstruction without a handle
	full := style.NewBuilder().Set("display", "inline").Set("content", `"*"`).Build()
	diff = ComputeStyleDifference(c, p, dom.Before, empty, full)
	if !diff.Damage.Contains(damage.Reconstruct()) || diff.Change != Changed {
		t.Errorf("expected effective generated content to reconstruct, got %+v", diff)
	}
}

func TestAccumulateDamageGrowsMonotonically(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, c := cascadedFixture(t, "p { color: maroon; }")
	p := find(root, byName("p"))
	rd := p.Data().EnsureRestyle()
	//
	prev := p.Data().Styles().Primary.Values
	next := style.NewBuilder().Set("display", "block-inline").Set("color", "olive").Build()
	accumulateDamage(c, p, dom.NoPseudo, prev, next)
	if !rd.Damage.Contains(damage.Repaint) {
		t.Fatalf("expected a color change to accumulate repaint damage, got %s", rd.Damage)
	}
	first := rd.Damage
	// a later unchanged comparison must not shrink the damage
	accumulateDamage(c, p, dom.NoPseudo, prev, prev)
	if rd.Damage != first {
		t.Errorf("expected damage to only ever grow, had %s, now %s", first, rd.Damage)
	}
}

func TestAccumulateDamageShortCircuits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, c := cascadedFixture(t, "p { color: maroon; }")
	p := find(root, byName("p"))
	rd := p.Data().EnsureRestyle()
	prev := p.Data().Styles().Primary.Values
	//
	// an element already marked for reconstruction is not diffed again
	rd.Damage = damage.Reconstruct()
	if req := accumulateDamage(c, p, dom.NoPseudo, prev, prev); req != MustCascade {
		t.Error("expected a reconstruction-marked element to force child cascades")
	}
	// reconstruction-only passes skip damage accumulation entirely
	rd.Damage = damage.None
	c.Shared.Flags = ForReconstruct
	if req := accumulateDamage(c, p, dom.NoPseudo, prev, prev); req != MustCascade {
		t.Error("expected a reconstruction pass to force child cascades")
	}
	if !rd.Damage.IsEmpty() {
		t.Errorf("expected no damage bookkeeping on a reconstruction pass, got %s", rd.Damage)
	}
}
