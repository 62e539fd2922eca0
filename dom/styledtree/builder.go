package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"io"

	"github.com/npillmayer/restyle/tree"
	"golang.org/x/net/html"
)

// TreeFromHTML parses HTML from r and builds a styled tree for it.
// The returned node corresponds to the <html> element.
func TreeFromHTML(r io.Reader) (*StyNode, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromHTMLParseTree(doc), nil
}

// FromHTMLParseTree builds a styled tree from an HTML parse tree.
// Only element nodes get styled nodes; text and comment nodes remain
// reachable through the underlying HTML nodes. Returns the styled node
// of the document element, or nil if there is none.
func FromHTMLParseTree(h *html.Node) *StyNode {
	root := documentElement(h)
	if root == nil {
		tracer().Errorf("parse tree contains no document element")
		return nil
	}
	n := NewNodeForHTMLNode(root)
	buildChildren(n, root)
	return Node(n)
}

func documentElement(h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

func buildChildren(parent *tree.Node[*StyNode], h *html.Node) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		n := NewNodeForHTMLNode(ch)
		parent.AddChild(n)
		buildChildren(n, ch)
	}
}
