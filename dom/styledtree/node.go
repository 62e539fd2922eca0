package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/restyle/dom"
	"github.com/npillmayer/restyle/rule"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	data                *dom.ElementData
	styleAttr           *rule.Block // lazily parsed from the style attribute
	styleAttrParsed     bool
	presHints           *rule.Block
	smilOverride        *rule.Block
	animationBlock      *rule.Block
	transitionBlock     *rule.Block
	stateFlags          dom.StateFlags
	selectorFlags       dom.SelectorFlags
	implementedPseudo   dom.PseudoKind
	nativeAnonymous     bool
	uaRulesOnly         bool
	canBeFragmented     bool
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(h *html.Node) *tree.Node[*StyNode] {
	sn := &StyNode{}
	sn.Payload = sn // Payload will always reference the node itself
	sn.htmlNode = h
	sn.presHints = presentationalHintsFor(h)
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Parent returns the enclosing element, nil for the document root.
func (sn *StyNode) Parent() dom.Element {
	p := Node(sn.Node.Parent())
	if p == nil {
		return nil
	}
	return p
}

// PrevSibling returns the preceding sibling element, nil for first
// children.
func (sn *StyNode) PrevSibling() dom.Element {
	p := Node(sn.Node.PrevSibling())
	if p == nil {
		return nil
	}
	return p
}

// EachChild iterates over the child elements in document order.
func (sn *StyNode) EachChild(f func(dom.Element) bool) {
	for _, ch := range sn.Node.Children(true) {
		if !f(Node(ch)) {
			return
		}
	}
}

// LocalName returns the element's tag name.
func (sn *StyNode) LocalName() string {
	return sn.htmlNode.Data
}

// Namespace returns the element's namespace, "" for HTML.
func (sn *StyNode) Namespace() string {
	return sn.htmlNode.Namespace
}

// ID returns the value of the id attribute, "" if absent.
func (sn *StyNode) ID() string {
	return sn.attr("id")
}

// Classes returns the class list of the element.
func (sn *StyNode) Classes() []string {
	c := sn.attr("class")
	if c == "" {
		return nil
	}
	return strings.Fields(c)
}

func (sn *StyNode) attr(key string) string {
	for _, a := range sn.htmlNode.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// StyleAttribute returns the declarations of the element's style
// attribute, nil if there is none. Parsing happens on first access and
// the result is cached. Styled nodes are confined to a single worker
// during a pass, so no locking is required.
func (sn *StyNode) StyleAttribute() *rule.Block {
	if !sn.styleAttrParsed {
		sn.styleAttrParsed = true
		if s := sn.attr("style"); s != "" {
			// douceur drops the value of a final declaration lacking a
			// terminating semicolon, so one is appended
			if !strings.HasSuffix(strings.TrimSpace(s), ";") {
				s += ";"
			}
			decls, err := parser.ParseDeclarations(s)
			if err != nil {
				tracer().Errorf("style attribute of <%s> does not parse: %v", sn.LocalName(), err)
			} else {
				sn.styleAttr = rule.FromDouceur(decls)
			}
		}
	}
	return sn.styleAttr
}

// StateFlags returns the element's dynamic state (hover/focus/…).
func (sn *StyNode) StateFlags() dom.StateFlags {
	return sn.stateFlags
}

// SetStateFlags replaces the element's dynamic state.
func (sn *StyNode) SetStateFlags(flags dom.StateFlags) {
	sn.stateFlags = flags
}

// IsLink is true for hyperlink source anchors.
func (sn *StyNode) IsLink() bool {
	switch sn.htmlNode.DataAtom.String() {
	case "a", "area", "link":
		return sn.attr("href") != ""
	}
	return false
}

// IsNativeAnonymous flags engine-generated boxes which have no
// counterpart in the document.
func (sn *StyNode) IsNativeAnonymous() bool {
	return sn.nativeAnonymous
}

// SetNativeAnonymous marks the node as engine-generated.
func (sn *StyNode) SetNativeAnonymous(anon bool) {
	sn.nativeAnonymous = anon
}

// MatchesUserAndAuthorRules is false for native anonymous content and
// for nodes restricted to user-agent rules.
func (sn *StyNode) MatchesUserAndAuthorRules() bool {
	return !sn.nativeAnonymous && !sn.uaRulesOnly
}

// SetUserAgentRulesOnly restricts the element to user-agent rules, as
// hosts do for the innards of native widgets.
func (sn *StyNode) SetUserAgentRulesOnly(only bool) {
	sn.uaRulesOnly = only
}

// ImplementedPseudo returns the pseudo-element this node implements,
// NoPseudo for ordinary elements.
func (sn *StyNode) ImplementedPseudo() dom.PseudoKind {
	return sn.implementedPseudo
}

// SetImplementedPseudo marks the node as the box of a pseudo-element.
func (sn *StyNode) SetImplementedPseudo(which dom.PseudoKind) {
	sn.implementedPseudo = which
}

// PresentationalHints returns styling derived from legacy HTML
// attributes, nil if none apply.
func (sn *StyNode) PresentationalHints() *rule.Block {
	return sn.presHints
}

// SMILOverride returns the declaration block of an active SMIL
// animation, nil usually.
func (sn *StyNode) SMILOverride() *rule.Block {
	return sn.smilOverride
}

// SetSMILOverride installs a SMIL override block.
func (sn *StyNode) SetSMILOverride(b *rule.Block) {
	sn.smilOverride = b
}

// AnimationRules returns the declaration blocks of running CSS
// animations and transitions.
func (sn *StyNode) AnimationRules() (animations, transitions *rule.Block) {
	return sn.animationBlock, sn.transitionBlock
}

// SetAnimationRules installs animation and transition declaration
// blocks, as an animator would between passes.
func (sn *StyNode) SetAnimationRules(animations, transitions *rule.Block) {
	sn.animationBlock = animations
	sn.transitionBlock = transitions
}

// SetSelectorFlags ORs bookkeeping flags onto the element.
func (sn *StyNode) SetSelectorFlags(flags dom.SelectorFlags) {
	sn.selectorFlags |= flags
}

// HasSelectorFlags checks wether all given flags are already set.
func (sn *StyNode) HasSelectorFlags(flags dom.SelectorFlags) bool {
	return sn.selectorFlags.Contains(flags)
}

// CanBeFragmented is true inside multi-column subtrees.
func (sn *StyNode) CanBeFragmented() bool {
	return sn.canBeFragmented
}

// SetCanBeFragmented propagates fragmentation eligibility.
func (sn *StyNode) SetCanBeFragmented(frag bool) {
	sn.canBeFragmented = frag
}

// Data returns the element's styling data, nil if never styled.
func (sn *StyNode) Data() *dom.ElementData {
	return sn.data
}

// EnsureData returns the element's styling data, creating it on first
// use.
func (sn *StyNode) EnsureData() *dom.ElementData {
	if sn.data == nil {
		sn.data = &dom.ElementData{}
	}
	return sn.data
}

var _ dom.Element = &StyNode{}

// --- presentational hints --------------------------------------------------

// presentationalHintsFor maps legacy HTML styling attributes to CSS
// declarations. The mapping is deliberately small; it covers the
// attributes layout cares about.
func presentationalHintsFor(h *html.Node) *rule.Block {
	if h == nil || h.Type != html.ElementNode {
		return nil
	}
	var decls []rule.Declaration
	for _, a := range h.Attr {
		switch a.Key {
		case "width":
			decls = append(decls, rule.Declaration{Key: "width", Value: dimenValue(a.Val)})
		case "height":
			decls = append(decls, rule.Declaration{Key: "height", Value: dimenValue(a.Val)})
		case "bgcolor":
			decls = append(decls, rule.Declaration{Key: "background-color", Value: style.Property(a.Val)})
		case "align":
			decls = append(decls, rule.Declaration{Key: "text-align", Value: style.Property(a.Val)})
		case "color":
			if h.DataAtom.String() == "font" {
				decls = append(decls, rule.Declaration{Key: "color", Value: style.Property(a.Val)})
			}
		}
	}
	if len(decls) == 0 {
		return nil
	}
	return rule.NewBlock(decls)
}

// dimenValue normalizes legacy dimension attributes, where a bare
// number means pixels.
func dimenValue(v string) style.Property {
	if v == "" {
		return style.Property(v)
	}
	if v[len(v)-1] >= '0' && v[len(v)-1] <= '9' {
		return style.Property(v + "px")
	}
	return style.Property(v)
}
