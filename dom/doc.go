/*
Package dom defines the element contract the style engine works against,
together with the per-element styling data it maintains.

The engine does not own the document tree. It sees elements through the
Element interface: navigation, attributes, state flags and one mutable
data slot per element. Concrete trees (see sub-package styledtree) adapt
their node type to this interface.

Tree Implementation

Styling and layout of HTML/CSS involves a lot of operations on different
trees. We implement the various trees on top of a general purpose tree
type (package tree), which offers concurrency-safe operations to
manipulate tree nodes.

In a fully object oriented programming language we would subclass this
tree type for every type of tree in use, but in Go we resort to
composition, thus including a generic tree node in every node (sub-)type.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'restyle.dom'
func tracer() tracing.Trace {
	return tracing.Select("restyle.dom")
}
