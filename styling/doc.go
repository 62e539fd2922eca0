/*
Package styling implements the incremental style resolution engine.

# Overview

For every element of a document tree the engine computes the final set
of resolved style property values, and classifies how much downstream
rework (repaint / reflow / reconstruction) a change to those values
requires. Three tightly coupled parts do the work:

  - a structural style sharing cache, letting an element copy another
    element's already-resolved style when both are provably equivalent
    for styling purposes,
  - the cascade, merging the prioritized declarations of a rule store
    node with inherited values into an immutable value set,
  - the damage engine, comparing old and new value sets.

A good explanation of this kind of styling engine may be found in

	https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

Styling a tree may fan out over several goroutines. All per-pass mutable
state (sharing cache, ancestor bloom filter, deferred selector flags)
lives in a ThreadLocal owned by exactly one goroutine; the rule store
and the stylist are shared and internally synchronized.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styling

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.styling'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.styling")
}
