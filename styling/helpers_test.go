package styling

import (
	"strings"
	"testing"

	"github.com/npillmayer/restyle/cssom"
	"github.com/npillmayer/restyle/cssom/douceuradapter"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/dom/styledtree"
)

// buildFixture parses an HTML document and CSS source and prepares a
// styler for them.
func buildFixture(t *testing.T, htmlsrc, csssrc string, opts Options) (*styledtree.StyNode, *Styler) {
	t.Helper()
	root, err := styledtree.TreeFromHTML(strings.NewReader(htmlsrc))
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	stylist := cssom.NewStylist()
	if csssrc != "" {
		sheet, err := douceuradapter.ParseString(csssrc)
		if err != nil {
			t.Fatalf("cannot parse test stylesheet: %v", err)
		}
		if err := stylist.AddStyleSheet(cssom.AuthorOrigin, sheet); err != nil {
			t.Fatalf("cannot add test stylesheet: %v", err)
		}
	}
	return root, NewStyler(stylist, nil, opts)
}

// testContext builds a single-worker context for unit tests which call
// into the engine below the traversal layer.
func testContext(sty *Styler, flags TraversalFlags) *Context {
	shared := &SharedContext{
		Stylist: sty.stylist,
		Rules:   sty.rules,
		Host:    sty.host,
		Flags:   flags,
		Options: sty.opts,
	}
	return &Context{Shared: shared, Local: NewThreadLocal()}
}

func find(el dom.Element, match func(dom.Element) bool) dom.Element {
	if match(el) {
		return el
	}
	var found dom.Element
	el.EachChild(func(ch dom.Element) bool {
		found = find(ch, match)
		return found == nil
	})
	return found
}

func byName(name string) func(dom.Element) bool {
	return func(el dom.Element) bool { return el.LocalName() == name }
}

func nthOf(parent dom.Element, name string, n int) dom.Element {
	var found dom.Element
	i := 0
	parent.EachChild(func(ch dom.Element) bool {
		if ch.LocalName() == name {
			if i == n {
				found = ch
				return false
			}
			i++
		}
		return true
	})
	return found
}

// styleAll styles a whole tree sequentially with a fresh context.
func styleAll(c *Context, el dom.Element) {
	StyleElement(c, el)
	if values := primaryValuesOf(el); values == nil || values.IsDisplayNone() {
		return
	}
	c.Local.bloom.Push(el)
	defer c.Local.bloom.Pop()
	el.EachChild(func(ch dom.Element) bool {
		styleAll(c, ch)
		return true
	})
}
