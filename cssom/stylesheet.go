package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "github.com/npillmayer/restyle/style"

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// styling engine, we introduce an interface for CSS stylesheets.
// Clients for the styling engine will have to provide a concrete
// implementation of this interface (e.g., see package douceuradapter).
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// Origin tells where a stylesheet came from. The cascade gives rules
// from different origins different priority.
type Origin uint8

// Stylesheet origins, in ascending order of (normal declaration)
// priority.
const (
	UserAgentOrigin Origin = iota
	UserOrigin
	AuthorOrigin
)

func (o Origin) String() string {
	switch o {
	case UserAgentOrigin:
		return "user-agent"
	case UserOrigin:
		return "user"
	case AuthorOrigin:
		return "author"
	}
	return "?"
}
