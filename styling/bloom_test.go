package styling

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBloomPushAndPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, _ := buildFixture(t, sharingDoc, "", Options{})
	body := find(root, byName("body"))
	div := find(root, byName("div"))
	//
	b := NewStyleBloom()
	b.Push(body)
	b.Push(div)
	if b.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", b.Depth())
	}
	if !b.MayContain("div") || !b.MayContain(".parent") || !b.MayContain("body") {
		t.Error("expected pushed tokens to be contained")
	}
	if b.MayContain(".nosuchclass") {
		t.Error("expected an absent token to be rejected")
	}
	b.Pop()
	if b.MayContain(".parent") {
		t.Error("expected popped tokens to be gone after the rebuild")
	}
	if !b.MayContain("body") {
		t.Error("expected remaining ancestors to survive the pop")
	}
}

func TestBloomRebuildFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.styling")
	defer teardown()
	//
	root, _ := buildFixture(t, sharingDoc, "", Options{})
	div := find(root, byName("div"))
	span := nthOf(div, "span", 0)
	//
	b := NewStyleBloom()
	b.RebuildFor(span)
	// ancestors are html, body, div.parent; span itself is not pushed
	if b.Depth() != 3 {
		t.Fatalf("expected the full ancestor chain, depth is %d", b.Depth())
	}
	if !b.MayContain("html") || !b.MayContain("body") || !b.MayContain(".parent") {
		t.Error("expected all ancestor tokens to be contained")
	}
	if b.MayContain("span") {
		t.Error("expected the element itself to stay out of its ancestor filter")
	}
	b.Clear()
	if b.Depth() != 0 || b.MayContain("body") {
		t.Error("expected a cleared filter to be empty")
	}
}
