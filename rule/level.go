package rule

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Level is the cascade priority level of a declaration block within a
// rule node. Levels are ordered: along any path in the rule tree, levels
// are non-decreasing from root to leaf, and a block at a higher level
// wins over a block at a lower one.
type Level uint8

// Cascade levels, lowest priority first.
const (
	UserAgentNormal Level = iota
	UserNormal
	PresHints // synthesized from legacy presentation attributes
	AuthorNormal
	StyleAttributeNormal
	SMILOverride
	Animations
	AuthorImportant
	StyleAttributeImportant
	UserImportant
	UserAgentImportant
	Transitions
)

var levelStrings = []string{
	"UserAgentNormal", "UserNormal", "PresHints", "AuthorNormal",
	"StyleAttributeNormal", "SMILOverride", "Animations",
	"AuthorImportant", "StyleAttributeImportant", "UserImportant",
	"UserAgentImportant", "Transitions",
}

func (l Level) String() string {
	if int(l) < len(levelStrings) {
		return levelStrings[l]
	}
	return "Level(?)"
}

// IsImportant returns true for the `!important` levels. Transitions
// rank above everything, including importance.
func (l Level) IsImportant() bool {
	switch l {
	case AuthorImportant, StyleAttributeImportant, UserImportant, UserAgentImportant:
		return true
	}
	return false
}

// IsAnimationOrigin returns true for levels fed by the animation and
// transition subsystem rather than by stylesheets.
func (l Level) IsAnimationOrigin() bool {
	switch l {
	case SMILOverride, Animations, Transitions:
		return true
	}
	return false
}
