package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"
)

// ValueSet is a fully resolved set of style property values for one
// element (or pseudo-element). A ValueSet is immutable once built and is
// always handed around by reference: pseudo-element styles, animation
// snapshots and the children's inheritance source may all point at the
// same set. Sharing is therefore observable only through pointer
// identity, never through mutation.
type ValueSet struct {
	props   map[string]Property
	display DisplayMode
	frag    bool // fragmentation eligibility, propagated from the layout parent
}

// Builder collects property values for a ValueSet under construction.
// The zero value is usable.
type Builder struct {
	props map[string]Property
	frag  bool
}

// NewBuilder creates a Builder, optionally pre-filled with the properties
// of an existing value set (the inheritance source).
func NewBuilder() *Builder {
	return &Builder{props: make(map[string]Property)}
}

// Set sets a property value, overwriting a previous value for the key.
//
// Style property values are always converted to lower case.
func (b *Builder) Set(key string, p Property) *Builder {
	if b.props == nil {
		b.props = make(map[string]Property)
	}
	b.props[key] = Property(strings.ToLower(string(p)))
	return b
}

// Add sets a property value only if the key is not yet present.
func (b *Builder) Add(key string, p Property) *Builder {
	if b.props == nil {
		b.props = make(map[string]Property)
	}
	if _, ok := b.props[key]; !ok {
		b.props[key] = p
	}
	return b
}

// InheritFrom copies all inherited (cascading) properties of an existing
// value set into the builder, without overwriting values already set.
func (b *Builder) InheritFrom(parent *ValueSet) *Builder {
	if parent == nil {
		return b
	}
	for k, v := range parent.props {
		if IsCascading(k) {
			b.Add(k, v)
		}
	}
	return b
}

// SetCanBeFragmented records fragmentation eligibility for the set under
// construction.
func (b *Builder) SetCanBeFragmented(frag bool) *Builder {
	b.frag = frag
	return b
}

// Build freezes the builder into an immutable ValueSet. The display mode
// is resolved once, here, so that the hot-path accessors are cheap.
// The builder must not be reused afterwards.
func (b *Builder) Build() *ValueSet {
	props := b.props
	if props == nil {
		props = make(map[string]Property)
	}
	disp, err := ParseDisplay(props["display"].String())
	if err != nil {
		tracer().Infof("valueset: %v", err)
	}
	vs := &ValueSet{props: props, display: disp, frag: b.frag}
	b.props = nil
	return vs
}

// Get returns a property value, together with an indicator wether it has
// been resolved in this set. No cascading is performed; a ValueSet is the
// result of cascading.
func (vs *ValueSet) Get(key string) (Property, bool) {
	if vs == nil {
		return NullStyle, false
	}
	p, ok := vs.props[key]
	return p, ok
}

// Display returns the pre-parsed display mode of this set.
func (vs *ValueSet) Display() DisplayMode {
	if vs == nil {
		return NoMode
	}
	return vs.display
}

// IsDisplayNone is a frequently needed shortcut.
func (vs *ValueSet) IsDisplayNone() bool {
	return vs != nil && vs.display.IsNone()
}

// IsDisplayContents returns true for elements which generate no box of
// their own but let their children participate in the surrounding layout.
func (vs *ValueSet) IsDisplayContents() bool {
	return vs != nil && vs.display.Contains(ContentsMode)
}

// IsMulticol returns true if the set establishes a multi-column
// fragmentation context.
func (vs *ValueSet) IsMulticol() bool {
	if vs == nil {
		return false
	}
	if cc, ok := vs.props["column-count"]; ok && cc != "auto" && !cc.IsEmpty() {
		return true
	}
	cw, ok := vs.props["column-width"]
	return ok && cw != "auto" && !cw.IsEmpty()
}

// CanBeFragmented reports fragmentation eligibility as propagated from
// the layout parent during the cascade.
func (vs *ValueSet) CanBeFragmented() bool {
	return vs != nil && vs.frag
}

// SpecifiesAnimations returns true if the set names a CSS animation.
func (vs *ValueSet) SpecifiesAnimations() bool {
	if vs == nil {
		return false
	}
	name, ok := vs.props["animation-name"]
	return ok && name != "none" && !name.IsEmpty()
}

// SpecifiesTransitions returns true if the set declares a CSS transition.
func (vs *ValueSet) SpecifiesTransitions() bool {
	if vs == nil {
		return false
	}
	prop, ok := vs.props["transition-property"]
	return ok && prop != "none" && !prop.IsEmpty()
}

// IneffectiveContent returns true if the generated-content value of this
// set would render nothing. Used for ::before/::after damage decisions.
func (vs *ValueSet) IneffectiveContent() bool {
	if vs == nil {
		return true
	}
	c, ok := vs.props["content"]
	return !ok || c.IsEmpty() || c == "none" || c == "normal" || c == `""`
}

// Size returns the number of resolved properties.
func (vs *ValueSet) Size() int {
	if vs == nil {
		return 0
	}
	return len(vs.props)
}

// Properties returns all resolved properties, sorted by key for
// deterministic iteration.
func (vs *ValueSet) Properties() []KeyValue {
	if vs == nil {
		return nil
	}
	kvs := make([]KeyValue, 0, len(vs.props))
	for k, v := range vs.props {
		kvs = append(kvs, KeyValue{k, v})
	}
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].Key < kvs[j].Key })
	return kvs
}

func (vs *ValueSet) String() string {
	if vs == nil {
		return "ValueSet{}"
	}
	return fmt.Sprintf("ValueSet{#%d, display=%s}", len(vs.props), vs.display)
}

// Eq is sharing equality: two value sets are the same iff they are the
// same allocation.
func Eq(a, b *ValueSet) bool {
	return a == b
}

// DeepEqual compares two value sets property by property.
func DeepEqual(a, b *ValueSet) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.props) != len(b.props) {
		return false
	}
	for k, v := range a.props {
		if w, ok := b.props[k]; !ok || v != w {
			return false
		}
	}
	return true
}
