package tree

import (
	"fmt"
	"slices"
)

// InsertBefore links child into n before the given sibling, or at the end
// when before is nil. child must be detached.
func (n *Node) InsertBefore(child, before *Node) {
	if child == nil || child == n {
		panic("tree: invalid child for InsertBefore")
	}
	if child.parent != nil {
		panic(fmt.Sprintf("tree: %s is already attached", Describe(child)))
	}
	if before != nil && before.parent != n {
		panic(fmt.Sprintf("tree: %s is not a child of %s", Describe(before), Describe(n)))
	}

	child.parent = n
	if before == nil {
		child.prev = n.last
		child.next = nil
		if n.last != nil {
			n.last.next = child
		} else {
			n.first = child
		}
		n.last = child
		return
	}

	child.next = before
	child.prev = before.prev
	if before.prev != nil {
		before.prev.next = child
	} else {
		n.first = child
	}
	before.prev = child
}

// Remove unlinks child from n. With cleanup set, the child's subtree
// releases its handlers and dispatch adapters.
func (n *Node) Remove(child *Node, cleanup bool) {
	if child == nil || child.parent != n {
		panic(fmt.Sprintf("tree: %s is not a child of %s", Describe(child), Describe(n)))
	}
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.first = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.last = child.prev
	}
	child.parent, child.prev, child.next = nil, nil, nil
	if cleanup {
		release(child)
	}
}

// Truncate removes from and every following sibling.
func (n *Node) Truncate(from *Node) {
	if from == nil {
		return
	}
	if from.parent != n {
		panic(fmt.Sprintf("tree: %s is not a child of %s", Describe(from), Describe(n)))
	}
	for c := from; c != nil; {
		next := c.next
		n.Remove(c, true)
		c = next
	}
}

// SetText replaces the text of a text node.
func (n *Node) SetText(text string) {
	n.text = text
}

// SetAttr sets a rendered attribute; a nil value removes it.
func (n *Node) SetAttr(key string, value any) {
	n.set(key, value)
}

// SetProp sets a property that is not rendered (handlers, internal state);
// a nil value removes it.
func (n *Node) SetProp(key string, value any) {
	n.set(key, value)
}

// set keeps props sorted by key.
func (n *Node) set(key string, value any) {
	i, found := n.search(key)
	switch {
	case value == nil && found:
		n.props = slices.Delete(n.props, i, i+1)
	case value == nil:
	case found:
		n.props[i].Value = value
	default:
		n.props = slices.Insert(n.props, i, Prop{Key: key, Value: value})
	}
}

// release drops handlers and adapters below n.
func release(n *Node) {
	if n.adapter != nil {
		n.adapter.node = nil
		n.adapter = nil
	}
	n.props = slices.DeleteFunc(n.props, func(p Prop) bool {
		return IsHandler(p.Key)
	})
	for c := n.first; c != nil; c = c.next {
		release(c)
	}
}
