package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilderSetAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	vs := NewBuilder().
		Set("color", "RED").
		Set("display", "block").
		Build()
	if c, ok := vs.Get("color"); !ok || c != "red" {
		t.Errorf("expected color to be 'red', is '%s'", c)
	}
	if !vs.Display().Contains(BlockMode) {
		t.Errorf("expected display to contain BlockMode, is %v", vs.Display().FullString())
	}
}

func TestBuilderAddDoesNotOverwrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	vs := NewBuilder().
		Set("color", "red").
		Add("color", "blue").
		Add("width", "10px").
		Build()
	if c, _ := vs.Get("color"); c != "red" {
		t.Errorf("expected Add to keep 'red', got '%s'", c)
	}
	if w, _ := vs.Get("width"); w != "10px" {
		t.Errorf("expected Add to set width, got '%s'", w)
	}
}

func TestInheritFromCopiesCascadingOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	parent := NewBuilder().
		Set("color", "green").
		Set("margin-top", "5px").
		Set("display", "block").
		Build()
	child := NewBuilder().InheritFrom(parent).Build()
	if c, ok := child.Get("color"); !ok || c != "green" {
		t.Errorf("expected color to be inherited, got '%s'", c)
	}
	if _, ok := child.Get("margin-top"); ok {
		t.Error("margin-top must not inherit")
	}
	if _, ok := child.Get("display"); ok {
		t.Error("display must not inherit")
	}
}

func TestValueSetEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	a := NewBuilder().Set("color", "red").Set("width", "10px").Build()
	b := NewBuilder().Set("width", "10px").Set("color", "red").Build()
	if Eq(a, b) {
		t.Error("Eq is reference identity, distinct sets must not be Eq")
	}
	if !DeepEqual(a, b) {
		t.Logf("diff: %s", cmp.Diff(a.Properties(), b.Properties()))
		t.Error("expected property-wise equal sets to be DeepEqual")
	}
	if !Eq(a, a) {
		t.Error("a set must be Eq to itself")
	}
}

func TestDisplayClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	none := NewBuilder().Set("display", "none").Build()
	contents := NewBuilder().Set("display", "contents").Build()
	block := NewBuilder().Set("display", "block").Build()
	if !none.IsDisplayNone() || none.Display().GeneratesBox() {
		t.Error("display:none must not generate a box")
	}
	if !contents.IsDisplayContents() || contents.Display().GeneratesBox() {
		t.Error("display:contents must not generate a box of its own")
	}
	if !block.Display().GeneratesBox() {
		t.Error("display:block must generate a box")
	}
}

func TestAnimationAndMulticolQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	vs := NewBuilder().
		Set("animation-name", "wiggle").
		Set("column-count", "2").
		Build()
	if !vs.SpecifiesAnimations() {
		t.Error("expected animation-name to be detected")
	}
	if vs.SpecifiesTransitions() {
		t.Error("no transition-property is set")
	}
	if !vs.IsMulticol() {
		t.Error("expected column-count to classify as multicol")
	}
}

func TestIneffectiveContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	for _, c := range []Property{"", "none", "normal", `""`} {
		vs := NewBuilder().Set("content", c).Build()
		if !vs.IneffectiveContent() {
			t.Errorf("expected content '%s' to be ineffective", c)
		}
	}
	vs := NewBuilder().Set("content", `"*"`).Build()
	if vs.IneffectiveContent() {
		t.Error(`content "*" generates output`)
	}
}

func TestInitialValueLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.style")
	defer teardown()
	//
	if v := InitialValueOf("position"); v != "static" {
		t.Errorf("expected initial position to be 'static', got '%s'", v)
	}
	if v := InitialValueOf("no-such-prop"); v != NullStyle {
		t.Errorf("expected unknown key to yield NullStyle, got '%s'", v)
	}
}
