package arbor

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		log.Warn().
			Int("depth", depth).
			Int("limit", debugMaxTreeDepth).
			Str("node", n.Name).
			Msg("arbor: tree depth exceeds limit")
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		log.Warn().
			Int("children", len(n.children)).
			Int("limit", debugMaxChildCount).
			Str("node", n.Name).
			Msg("arbor: child count exceeds limit")
	}
}

// debugCheckComponents warns when a node carries two components of the same
// class, which makes Node.Component ambiguous.
func debugCheckComponents(n *Node) {
	seen := make(map[string]struct{}, len(n.components))
	for _, c := range n.components {
		if _, dup := seen[c.ClassName()]; dup {
			log.Warn().
				Str("node", n.Name).
				Str("classname", c.ClassName()).
				Msg("arbor: duplicate component class on node")
			return
		}
		seen[c.ClassName()] = struct{}{}
	}
}
