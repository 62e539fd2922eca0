package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"golang.org/x/net/html"
)

// Values "default" have the following semantics:
// Treat this as an inherent UA default, which should not be instantiated in
// memory, but rather will be treated implicitely by rendering code.
var initialValues = []KeyValue{
	{"margin-top", "0"},
	{"margin-left", "0"},
	{"margin-right", "0"},
	{"margin-bottom", "0"},
	{"padding-top", "0"},
	{"padding-left", "0"},
	{"padding-right", "0"},
	{"padding-bottom", "0"},
	{"border-top-color", "black"},
	{"border-left-color", "black"},
	{"border-right-color", "black"},
	{"border-bottom-color", "black"},
	{"border-top-width", "medium"},
	{"border-left-width", "medium"},
	{"border-right-width", "medium"},
	{"border-bottom-width", "medium"},
	{"border-top-style", "none"},
	{"border-left-style", "none"},
	{"border-right-style", "none"},
	{"border-bottom-style", "none"},
	{"width", "auto"},
	{"height", "auto"},
	{"min-width", "none"},
	{"min-height", "none"},
	{"max-width", "none"},
	{"max-height", "none"},
	{"float", "none"},
	{"visibility", "visible"},
	{"position", "static"},
	{"color", "default"},
	{"background-color", "default"},
	{"direction", "ltr"},
	{"white-space", "normal"},
	{"word-spacing", "normal"},
	{"letter-spacing", "normal"},
	{"word-break", "normal"},
}

// InitialValues returns the user-agent default values for all properties
// the engine knows about, except "display", which depends on the element
// (see DisplayPropertyForHTMLNode).
//
// In real-world browsers these are the user-agent CSS values.
func InitialValues() []KeyValue {
	return initialValues
}

// InitialValueOf returns the user-agent default value for a property
// key, NullStyle if the key is unknown.
func InitialValueOf(key string) Property {
	for _, kv := range initialValues {
		if kv.Key == key {
			return kv.Value
		}
	}
	return NullStyle
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property
// for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "style", "script", "title":
		return "none"
	case "p":
		return "block-inline"
	case "html", "aside", "body", "div", "h1", "h2", "h3",
		"h4", "h5", "h6", "it", "ol", "section",
		"ul":
		return "block"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "i", "b", "a", "em", "span", "strong":
		return "inline"
	}
	tracer().Infof("unknown HTML element %s/%d will be set to display: block",
		node.Data, node.Type)
	return "block"
}
