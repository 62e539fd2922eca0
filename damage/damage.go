package damage

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bytes"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/restyle/style"
)

// tracer will return a tracer. We are tracing to 'restyle.damage'
func tracer() tracing.Trace {
	return tracing.Select("restyle.damage")
}

// Damage describes how much downstream rework a style change requires.
// It is a set of independent flags, ordered by severity; during a pass,
// damage only ever grows (union), it is never subtracted.
type Damage uint8

// Damage flags, least severe first.
const (
	Repaint           Damage = 1 << iota // repaint the element's box
	RecomputeOverflow                    // recompute overflow areas
	Reflow                               // redo layout for the subtree
	Rebuild                              // reconstruct the rendering representation
)

// None is the empty damage set.
const None Damage = 0

// Reconstruct returns the maximal damage: everything up to and including
// a full rebuild of the rendering representation.
func Reconstruct() Damage {
	return Repaint | RecomputeOverflow | Reflow | Rebuild
}

// IsEmpty checks for the absence of any damage.
func (d Damage) IsEmpty() bool {
	return d == None
}

// Contains checks wether all flags of other are set in d.
func (d Damage) Contains(other Damage) bool {
	return d&other == other
}

// Union merges two damage sets.
func (d Damage) Union(other Damage) Damage {
	return d | other
}

func (d Damage) String() string {
	if d == None {
		return "none"
	}
	var b bytes.Buffer
	flag := func(f Damage, name string) {
		if d.Contains(f) {
			if b.Len() > 0 {
				b.WriteString("|")
			}
			b.WriteString(name)
		}
	}
	flag(Repaint, "repaint")
	flag(RecomputeOverflow, "overflow")
	flag(Reflow, "reflow")
	flag(Rebuild, "rebuild")
	return b.String()
}

// --- Property-by-property comparator -----------------------------------

// Damage classification per property group: which rework a change to a
// property of this group requires. Changes to geometry cascade into the
// less severe flags as well, since a reflowed box needs repainting too.
var damageForGroup = map[string]Damage{
	style.PGColor:     Repaint,
	style.PGText:      Reflow | RecomputeOverflow | Repaint,
	style.PGMargins:   Reflow | RecomputeOverflow | Repaint,
	style.PGPadding:   Reflow | RecomputeOverflow | Repaint,
	style.PGBorder:    Reflow | RecomputeOverflow | Repaint,
	style.PGDimension: Reflow | RecomputeOverflow | Repaint,
	style.PGContent:   Reconstruct(),
	style.PGDisplay:   Reconstruct(),
}

// Compute compares two resolved value sets property by property and
// classifies the rework the differences require. Both arguments must be
// non-nil; callers without an old value set must fall back to
// Reconstruct themselves.
func Compute(prev, next *style.ValueSet) Damage {
	if style.Eq(prev, next) {
		return None
	}
	d := None
	seen := make(map[string]bool)
	for _, kv := range prev.Properties() {
		seen[kv.Key] = true
		if nv, ok := next.Get(kv.Key); !ok || nv != kv.Value {
			d = d.Union(damageForProperty(kv.Key))
		}
	}
	for _, kv := range next.Properties() {
		if !seen[kv.Key] {
			d = d.Union(damageForProperty(kv.Key))
		}
	}
	if !d.IsEmpty() {
		tracer().Debugf("style difference classified as %s", d)
	}
	return d
}

func damageForProperty(key string) Damage {
	if d, ok := damageForGroup[style.GroupNameFromPropertyKey(key)]; ok {
		return d
	}
	// Unknown properties are layout-relevant until proven otherwise.
	return Reflow | RecomputeOverflow | Repaint
}
