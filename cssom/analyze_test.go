package cssom

import (
	"testing"

	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestSplitCompounds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.cssom")
	defer teardown()
	//
	compounds, combinators := splitCompounds("div.wide > p span")
	assert.Equal(t, []string{"div.wide", "p", "span"}, compounds)
	assert.Equal(t, []byte{'>', ' '}, combinators)
	//
	compounds, combinators = splitCompounds("a + b")
	assert.Equal(t, []string{"a", "b"}, compounds)
	assert.Equal(t, []byte{'+'}, combinators)
	//
	// combinator characters inside brackets must not split
	compounds, _ = splitCompounds(`div[title~="x y"] p:not(.a > .b)`)
	assert.Equal(t, []string{`div[title~="x y"]`, "p:not(.a > .b)"}, compounds)
}

func TestExtractTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.cssom")
	defer teardown()
	//
	assert.Equal(t, []string{"div", "#main", ".wide"}, extractTokens("div#main.wide"))
	assert.Empty(t, extractTokens("*"))
	assert.Equal(t, []string{"p"}, extractTokens("p:hover"))
}

func TestAnalyzeAncestorTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.cssom")
	defer teardown()
	//
	cr := &compiledRule{}
	analyzeSelector(cr, "div.wide > ul li a")
	assert.Equal(t, []string{"div", ".wide", "ul", "li"}, cr.ancestorTokens)
	assert.False(t, cr.needsRevalidation)
}

func TestAnalyzeSiblingsAreNotAncestors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.cssom")
	defer teardown()
	//
	cr := &compiledRule{}
	analyzeSelector(cr, "div h1 ~ p")
	// h1 is a sibling of the subject, not an ancestor; div is an
	// ancestor of both
	assert.Equal(t, []string{"div"}, cr.ancestorTokens)
	assert.True(t, cr.needsRevalidation)
	assert.True(t, cr.parentFlags.Contains(dom.FlagsSlowSelectorLaterSiblings))
}

func TestAnalyzeStructuralPseudos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "restyle.cssom")
	defer teardown()
	//
	cr := &compiledRule{}
	analyzeSelector(cr, "li:first-child")
	assert.True(t, cr.needsRevalidation)
	assert.True(t, cr.parentFlags.Contains(dom.FlagsEdgeChildSelector))
	//
	cr = &compiledRule{}
	analyzeSelector(cr, "ul:empty")
	assert.True(t, cr.selfFlags.Contains(dom.FlagsSlowSelector))
	//
	cr = &compiledRule{}
	analyzeSelector(cr, "tr:nth-child(2n)")
	assert.True(t, cr.needsRevalidation)
	assert.True(t, cr.parentFlags.Contains(dom.FlagsSlowSelector))
	//
	cr = &compiledRule{}
	analyzeSelector(cr, "p#x.y")
	assert.False(t, cr.needsRevalidation)
	assert.True(t, cr.usesID)
}
