// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huff

import (
	"fmt"
	"strings"
)

func padBase10(n interface{}, m int) string {
	s := fmt.Sprintf("%d", n)
	if pad := m - len(s); pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

func padRight(s string, m int) string {
	if pad := m - len(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// String renders the tree in preorder, one node per line, with each level of
// depth shown as a leading '|'. Internal nodes are shown as '*' and leaves by
// their value. Trees made by BuildTree also show the weight of each node.
func (t *Tree) String() string {
	var ss []string
	t.appendNode(&ss, t.root, 0)
	return strings.Join(ss, "\n")
}

func (t *Tree) appendNode(ss *[]string, i, depth int) {
	n := &t.nodes[i]
	s := strings.Repeat("|", depth)
	if n.leaf {
		s += fmt.Sprintf("0x%02x", n.sym)
		if n.sym >= 0x20 && n.sym < 0x7f {
			s += fmt.Sprintf(" %q", rune(n.sym))
		}
	} else {
		s += "*"
	}
	if t.weighted {
		s += fmt.Sprintf(" (%d)", n.weight)
	}
	*ss = append(*ss, s)
	if !n.leaf {
		t.appendNode(ss, n.left, depth+1)
		t.appendNode(ss, n.right, depth+1)
	}
}

// String renders every non-empty code, ordered by value.
func (cs Codes) String() string {
	var maxLen uint
	for _, c := range cs {
		if maxLen < c.Len {
			maxLen = c.Len
		}
	}

	var ss []string
	ss = append(ss, "{")
	for sym, c := range cs {
		if c.Len == 0 {
			continue
		}
		ss = append(ss, fmt.Sprintf("\t%s:  %s,  %d",
			padBase10(sym, 3),
			padRight(c.String(), int(maxLen)),
			c.Len,
		))
	}
	ss = append(ss, "}")
	return strings.Join(ss, "\n")
}
