package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"strings"

	"github.com/npillmayer/restyle/dom"
)

// analyzeSelector derives matching shortcuts from a selector's source
// text: the ancestor tokens a match requires (for the bloom filter),
// whether the selector belongs into the revalidation set, and the
// bookkeeping flags matching it should leave behind.
//
// cascadia keeps its selector representation private, so the analysis
// works on the text. It errs towards the safe side: unparseable corners
// yield no tokens and a revalidation classification.
func analyzeSelector(cr *compiledRule, selText string) {
	selText = strings.TrimSpace(selText)
	compounds, combinators := splitCompounds(selText)
	if len(compounds) == 0 {
		return
	}
	// A compound joined by ' ' or '>' describes an ancestor of the
	// subject. A compound joined by '+' or '~' describes a sibling,
	// which shares the subject's ancestors but is not one itself.
	for i, c := range compounds[:len(compounds)-1] {
		if combinators[i] == '+' || combinators[i] == '~' {
			continue
		}
		cr.ancestorTokens = append(cr.ancestorTokens, extractTokens(c)...)
	}
	rightmost := compounds[len(compounds)-1]
	cr.usesID = strings.Contains(rightmost, "#")

	for _, comb := range combinators {
		if comb == '+' || comb == '~' {
			cr.needsRevalidation = true
			cr.parentFlags |= dom.FlagsSlowSelectorLaterSiblings
		}
	}
	for _, pseudo := range structuralPseudos {
		if !strings.Contains(selText, pseudo) {
			continue
		}
		cr.needsRevalidation = true
		if !strings.Contains(rightmost, pseudo) {
			continue
		}
		switch pseudo {
		case ":first-child", ":last-child", ":only-child",
			":first-of-type", ":last-of-type", ":only-of-type":
			cr.parentFlags |= dom.FlagsEdgeChildSelector
		case ":empty":
			cr.selfFlags |= dom.FlagsSlowSelector
		default: // the :nth-* family
			cr.parentFlags |= dom.FlagsSlowSelector
		}
	}
}

// structuralPseudos are the pseudo-classes whose outcome depends on tree
// position rather than on the element alone. ":nth-" covers the whole
// :nth-child/:nth-of-type family including the -last- variants.
var structuralPseudos = []string{
	":first-child", ":last-child", ":only-child",
	":first-of-type", ":last-of-type", ":only-of-type",
	":nth-", ":empty",
}

func isCombinator(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '>' || ch == '+' || ch == '~'
}

// splitCompounds splits a complex selector's text into its compound
// selectors, together with the combinator joining each pair. Brackets
// and parentheses are tracked so that combinator characters inside
// :not(...) or [attr~=v] do not split.
func splitCompounds(sel string) (compounds []string, combinators []byte) {
	depth := 0
	start := 0
	pendingComb := byte(0)
	flush := func(end int) {
		c := strings.TrimSpace(sel[start:end])
		if c == "" {
			return
		}
		if len(compounds) > 0 {
			if pendingComb == 0 {
				pendingComb = ' '
			}
			combinators = append(combinators, pendingComb)
		}
		pendingComb = 0
		compounds = append(compounds, c)
	}
	for i := 0; i < len(sel); i++ {
		switch sel[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		default:
			if depth == 0 && isCombinator(sel[i]) {
				flush(i)
				if sel[i] != ' ' && sel[i] != '\t' {
					pendingComb = sel[i]
				}
				start = i + 1
			}
		}
	}
	flush(len(sel))
	return compounds, combinators
}

// extractTokens pulls the bloom filter tokens out of one compound
// selector: the type name, "#id" and ".class" parts. The universal
// selector and pseudo-classes contribute nothing.
func extractTokens(compound string) []string {
	var tokens []string
	i := 0
	readIdent := func() string {
		s := i
		for i < len(compound) && isIdentChar(compound[i]) {
			i++
		}
		return compound[s:i]
	}
	for i < len(compound) {
		switch ch := compound[i]; {
		case ch == '#':
			i++
			if id := readIdent(); id != "" {
				tokens = append(tokens, "#"+id)
			}
		case ch == '.':
			i++
			if class := readIdent(); class != "" {
				tokens = append(tokens, "."+class)
			}
		case ch == '[' || ch == '(':
			i = skipBalanced(compound, i)
		case ch == ':':
			for i < len(compound) && compound[i] == ':' {
				i++
			}
			readIdent()
		case isIdentChar(ch):
			tokens = append(tokens, strings.ToLower(readIdent()))
		default:
			i++
		}
	}
	return tokens
}

func isIdentChar(ch byte) bool {
	return ch == '-' || ch == '_' ||
		(ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		ch >= 0x80
}

func skipBalanced(s string, i int) int {
	open := s[i]
	var close byte = ']'
	if open == '(' {
		close = ')'
	}
	depth := 0
	for ; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

// splitTopLevel splits on sep outside of brackets and parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
