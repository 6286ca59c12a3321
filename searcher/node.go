package searcher

import "mcts/game"

// node is one reachable position in the search tree. Ownership flows strictly
// root to leaf through children; parent is a non-owning back-reference used
// only for the upward walk of backpropagation.
type node struct {
	parent       *node
	parentAction game.Action

	// tried and children are parallel: children[i] was created by playing
	// tried[i]. A slice pair instead of a map keeps child iteration order
	// deterministic during selection.
	tried    []game.Action
	children []*node

	// untried holds the legal actions not yet expanded, consumed FIFO in
	// the order the model reported them.
	untried []game.Action

	wins   float64
	visits int
}

func newNode(parent *node, parentAction game.Action, legal []game.Action) *node {
	untried := make([]game.Action, len(legal))
	copy(untried, legal)
	return &node{
		parent:       parent,
		parentAction: parentAction,
		untried:      untried,
	}
}

// addChild materializes an expanded action into a child node holding the
// legal actions of the successor state.
func (n *node) addChild(action game.Action, legal []game.Action) *node {
	child := newNode(n, action, legal)
	n.tried = append(n.tried, action)
	n.children = append(n.children, child)
	return child
}

// expandable reports whether this node still has untried actions, i.e.
// whether selection should stop here.
func (n *node) expandable() bool {
	return len(n.untried) > 0
}
