package styling

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/npillmayer/restyle/dom"
	tp "github.com/xlab/treeprint"
)

// StyledTreeString renders a styled tree for debugging: one line per
// element with its display mode, rule node and pending damage.
func StyledTreeString(root dom.Element) string {
	p := tp.New()
	ppe(p, root)
	return p.String()
}

func ppe(p tp.Tree, el dom.Element) {
	label := elementLabel(el)
	hasChildren := false
	el.EachChild(func(dom.Element) bool {
		hasChildren = true
		return false
	})
	if !hasChildren {
		p.AddNode(label)
		return
	}
	branch := p.AddBranch(label)
	el.EachChild(func(ch dom.Element) bool {
		ppe(branch, ch)
		return true
	})
}

func elementLabel(el dom.Element) string {
	data := el.Data()
	if !data.HasStyles() {
		return fmt.Sprintf("<%s> (unstyled)", el.LocalName())
	}
	primary := data.Styles().Primary
	label := fmt.Sprintf("<%s> %v", el.LocalName(), primary.Rules)
	if primary.Values != nil {
		label += " display=" + primary.Values.Display().String()
	}
	if rd := data.Restyle(); rd != nil && !rd.Damage.IsEmpty() {
		label += " damage=" + rd.Damage.String()
	}
	return label
}
