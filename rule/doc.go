/*
Package rule implements the rule node store: a shared, canonical
representation of ordered cascades of declaration blocks.

A rule node stands for one specific ordered sequence of (declaration
block, cascade level) pairs. Nodes are hash-consed: inserting the same
ordered sequence twice yields the same node pointer, so that node
equality is pointer identity. This makes rule nodes usable as cheap
cache keys for style sharing and as the single input of the cascade.

Nodes are never mutated. "Replacing" a rule at a given cascade level
produces a different canonical node (see Tree.UpdateRuleAtLevel).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package rule

import "github.com/npillmayer/schuko/tracing"

// tracer will return a tracer. We are tracing to 'restyle.rule'
func tracer() tracing.Trace {
	return tracing.Select("restyle.rule")
}
