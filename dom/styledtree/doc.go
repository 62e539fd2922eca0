/*
Package styledtree is a straightforward default implementation of a styled
document tree.

# Overview

Styled trees are built from an HTML parse tree. Every element node of the
parse tree gets a styled node, which implements interface dom.Element and
carries the engine's per-element styling data.

This is the default implementation used by the engine. However, for
interactive use it may be appropriate to create a styled tree derived
from another type of styled node. The engine's design should fully
support this kind of switch.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.dom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.dom")
}
