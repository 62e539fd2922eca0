package styling

import (
	"testing"

	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/dom/styledtree"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const cascadeDoc = `<html><body>
<div><p>hello <span>there</span></p></div>
</body></html>`

func cascadedFixture(t *testing.T, css string) (dom.Element, *Context) {
	root, sty := buildFixture(t, cascadeDoc, css, Options{})
	c := testContext(sty, 0)
	styleAll(c, root)
	return root, c
}

func propOf(t *testing.T, el dom.Element, key string) style.Property {
	t.Helper()
	v, ok := el.Data().Styles().Primary.Values.Get(key)
	if !ok {
		t.Fatalf("<%s> has no resolved value for '%s'", el.LocalName(), key)
	}
	return v
}

func TestCascadeInheritsCascadingPropertiesOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, _ := cascadedFixture(t, "div { color: maroon; margin-top: 5px; }")
	p := find(root, byName("p"))
	span := find(root, byName("span"))
	if col := propOf(t, p, "color"); col != "maroon" {
		t.Errorf("expected <p> to inherit color maroon, got '%s'", col)
	}
	if col := propOf(t, span, "color"); col != "maroon" {
		t.Errorf("expected color to propagate to <span>, got '%s'", col)
	}
	// margins do not inherit; the child falls back to the initial value
	if mt := propOf(t, p, "margin-top"); mt != "0" {
		t.Errorf("expected <p> margin-top to stay at its initial value, got '%s'", mt)
	}
}

func TestCascadeKeywordResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	css := `div { color: maroon; margin-top: 5px; }
	        p { color: inherit; margin-top: inherit; }
	        span { color: initial; }`
	root, _ := cascadedFixture(t, css)
	p := find(root, byName("p"))
	span := find(root, byName("span"))
	if col := propOf(t, p, "color"); col != "maroon" {
		t.Errorf("expected explicit inherit to resolve to maroon, got '%s'", col)
	}
	// margin-top is not a cascading property, but an explicit inherit
	// still pulls the parent's resolved value
	if mt := propOf(t, p, "margin-top"); mt != "5px" {
		t.Errorf("expected explicit inherit to resolve to 5px, got '%s'", mt)
	}
	if col := propOf(t, span, "color"); col != style.InitialValueOf("color") {
		t.Errorf("expected initial keyword to resolve to the UA default, got '%s'", col)
	}
}

func TestCascadeAppliesLevelsInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	// author rule vs inline style attribute: the attribute wins
	html := `<html><body><div><p style="color: navy">x</p></div></body></html>`
	root, sty := buildFixture(t, html, "p { color: maroon; }", Options{})
	styleAll(testContext(sty, 0), root)
	p := find(root, byName("p"))
	if col := propOf(t, p, "color"); col != "navy" {
		t.Errorf("expected the style attribute to win over the author rule, got '%s'", col)
	}
}

func TestCascadeMulticolPropagatesFragmentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, _ := cascadedFixture(t, "div { column-count: 2; }")
	div := find(root, byName("div"))
	p := find(root, byName("p"))
	span := find(root, byName("span"))
	if !div.Data().Styles().Primary.Values.IsMulticol() {
		t.Fatal("expected <div> to establish a multi-column context")
	}
	if !p.Data().Styles().Primary.Values.CanBeFragmented() {
		t.Error("expected <p> inside a multicol container to be fragmentation-eligible")
	}
	if !p.CanBeFragmented() {
		t.Error("expected fragmentation eligibility to be recorded on the <p> element")
	}
	// eligibility travels down through descendants as well
	if !span.Data().Styles().Primary.Values.CanBeFragmented() {
		t.Error("expected <span> inside the fragmentation context to be eligible too")
	}
}

func TestCascadeWithoutMulticolNoFragmentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, _ := cascadedFixture(t, "div { color: maroon; }")
	p := find(root, byName("p"))
	if p.Data().Styles().Primary.Values.CanBeFragmented() {
		t.Error("expected <p> outside any fragmentation context to be ineligible")
	}
}

func TestBlockifyRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	inline := style.NewBuilder().Set("display", "inline").Set("color", "maroon").Build()
	fixed := blockifyRoot(inline)
	if !fixed.Display().Contains(style.BlockMode) {
		t.Errorf("expected an inline root to be blockified, display is %v", fixed.Display())
	}
	if col, _ := fixed.Get("color"); col != "maroon" {
		t.Error("expected blockification to keep the other properties")
	}
	none := style.NewBuilder().Set("display", "none").Build()
	if got := blockifyRoot(none); got != none {
		t.Error("expected a display:none root to stay untouched")
	}
	block := style.NewBuilder().Set("display", "block").Build()
	if got := blockifyRoot(block); got != block {
		t.Error("expected a block root to stay untouched")
	}
}

func TestCascadeSecondPassUnchanged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, c := cascadedFixture(t, "p { color: maroon; }")
	p := find(root, byName("p"))
	p.Data().EnsureRestyle()
	req := CascadePrimary(c, p)
	if req != CanSkipCascade {
		t.Error("expected a cascade over unchanged rules to let children skip")
	}
	if dm := p.Data().Restyle().Damage; !dm.IsEmpty() {
		t.Errorf("expected no damage from an unchanged cascade, got %s", dm)
	}
}

func TestGetBaseStyleFastPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, c := cascadedFixture(t, "p { color: maroon; }")
	p := find(root, byName("p"))
	values := p.Data().Styles().Primary.Values
	if base := GetBaseStyle(c, p); !style.Eq(base, values) {
		t.Error("expected the base style of an unanimated element to be its current values")
	}
}

func TestGetBaseStyleStripsAnimationRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, sty := buildFixture(t, cascadeDoc, "p { color: maroon; }", Options{})
	c := testContext(sty, 0)
	p := find(root, byName("p"))
	anim := rule.BlockOfProperties([]style.KeyValue{{Key: "color", Value: "olive"}})
	p.(*styledtree.StyNode).SetAnimationRules(anim, nil)
	styleAll(c, root)
	//
	if col := propOf(t, p, "color"); col != "olive" {
		t.Fatalf("expected the animation rule to override, got '%s'", col)
	}
	base := GetBaseStyle(c, p)
	if col, _ := base.Get("color"); col != "maroon" {
		t.Errorf("expected the base style to drop animation rules, got color '%s'", col)
	}
}

func TestGetAfterChangeStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, sty := buildFixture(t, cascadeDoc, "p { color: maroon; }", Options{})
	c := testContext(sty, 0)
	p := find(root, byName("p"))
	styleAll(c, root)
	if _, ok := GetAfterChangeStyle(c, p); ok {
		t.Error("expected no after-change style without transition rules")
	}
	//
	trans := rule.BlockOfProperties([]style.KeyValue{{Key: "color", Value: "olive"}})
	p.(*styledtree.StyNode).SetAnimationRules(nil, trans)
	if changed := ReplaceRules(c, p, ReplaceCSSTransitions); !changed.Any() {
		t.Fatal("expected the transition rule splice to change the rule node")
	}
	CascadePrimary(c, p)
	if col := propOf(t, p, "color"); col != "olive" {
		t.Fatalf("expected the transition rule to override, got '%s'", col)
	}
	after, ok := GetAfterChangeStyle(c, p)
	if !ok {
		t.Fatal("expected an after-change style with transition rules present")
	}
	if col, _ := after.Get("color"); col != "maroon" {
		t.Errorf("expected the after-change style to drop transition rules, got color '%s'", col)
	}
}
