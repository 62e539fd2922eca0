/*
Package cssom provides the CSS object model side of the styling engine:
stylesheet abstraction, selector compilation and rule matching.

# Overview

CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule. Concrete implementations may be found in
sub-packages (e.g. douceuradapter). Selector matching relies on the
great work of https://godoc.org/github.com/andybalholm/cascadia.

The central type is Stylist: it compiles stylesheets into a flat list of
selector/declaration pairs and answers matching queries for single
elements. The Stylist is immutable after setup and safe for concurrent
matching.

Having stylesheet interfaces imposes a performance hit. However, this
implementation of CSS-styling will never trade modularity and
clarity for performance. Clients in need for a production grade
browser engine (where performance is key) should opt for headless
versions of the main browser projects.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'restyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}
