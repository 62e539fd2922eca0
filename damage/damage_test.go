package damage

import (
	"testing"

	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func values(kvs ...string) *style.ValueSet {
	b := style.NewBuilder()
	for i := 0; i+1 < len(kvs); i += 2 {
		b.Set(kvs[i], style.Property(kvs[i+1]))
	}
	return b.Build()
}

func TestComputeIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.damage")
	defer teardown()
	//
	vs := values("color", "red")
	if d := Compute(vs, vs); !d.IsEmpty() {
		t.Errorf("expected identical sets to produce no damage, got %s", d)
	}
	other := values("color", "red")
	if d := Compute(vs, other); !d.IsEmpty() {
		t.Errorf("expected equal sets to produce no damage, got %s", d)
	}
}

func TestComputeColorOnlyRepaints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.damage")
	defer teardown()
	//
	prev := values("display", "block", "color", "red")
	next := values("display", "block", "color", "blue")
	d := Compute(prev, next)
	if !d.Contains(Repaint) {
		t.Errorf("expected color change to repaint, got %s", d)
	}
	if d.Contains(Reflow) || d.Contains(Rebuild) {
		t.Errorf("color change must not reflow or rebuild, got %s", d)
	}
}

func TestComputeGeometryReflows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.damage")
	defer teardown()
	//
	prev := values("display", "block", "margin-top", "0")
	next := values("display", "block", "margin-top", "10px")
	d := Compute(prev, next)
	if !d.Contains(Reflow | RecomputeOverflow | Repaint) {
		t.Errorf("expected margin change to reflow, got %s", d)
	}
	if d.Contains(Rebuild) {
		t.Errorf("margin change must not rebuild, got %s", d)
	}
}

func TestComputeDisplayRebuilds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.damage")
	defer teardown()
	//
	prev := values("display", "block")
	next := values("display", "inline")
	if d := Compute(prev, next); !d.Contains(Reconstruct()) {
		t.Errorf("expected display change to reconstruct, got %s", d)
	}
}

func TestComputeTwoSided(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.damage")
	defer teardown()
	//
	// property present only in prev must count as changed
	prev := values("display", "block", "color", "red")
	next := values("display", "block")
	if d := Compute(prev, next); !d.Contains(Repaint) {
		t.Errorf("expected vanished color to repaint, got %s", d)
	}
}

func TestDamageIsMonotone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.damage")
	defer teardown()
	//
	d := Repaint
	d = d.Union(Reconstruct())
	d = d.Union(None)
	if d != Reconstruct() {
		t.Errorf("union with None must not lower severity, got %s", d)
	}
	if !d.Contains(Repaint) || !d.Contains(Reflow) {
		t.Error("Reconstruct must imply every lesser severity")
	}
}
