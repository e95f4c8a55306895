package vdom

import (
	"fmt"
	"strconv"
)

// Text creates a text descriptor.
func Text(content string) *Node {
	return &Node{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text descriptor.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Num creates a numeric descriptor.
func Num(v float64) *Node {
	return &Node{
		Kind:   KindNumber,
		Number: v,
	}
}

// List creates an array descriptor whose items are spliced into the
// enclosing child list.
func List(children ...any) *Node {
	return &Node{
		Kind:     KindArray,
		Children: appendChildren(nil, children),
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node {
	return &Node{
		Kind:     KindFragment,
		Children: appendChildren(nil, children),
	}
}

// Comp creates a component reference. children become the slot content.
func Comp(c Component, props Props, children ...any) *Node {
	if props == nil {
		props = Props{}
	}
	return &Node{
		Kind:     KindComponent,
		Comp:     c,
		Props:    props,
		Children: appendChildren(nil, children),
	}
}

// Slot creates a slot placeholder.
func Slot() *Node {
	return &Node{Kind: KindSlot}
}

// appendChildren normalizes builder arguments into descriptors.
// Accepted: nil, *Node, []*Node (as an array), string, numbers, Component.
func appendChildren(dst []*Node, args []any) []*Node {
	for _, arg := range args {
		if child := toNode(arg); child != nil {
			dst = append(dst, child)
		}
	}
	return dst
}

func toNode(arg any) *Node {
	switch v := arg.(type) {
	case nil:
		return nil
	case *Node:
		return v
	case []*Node:
		items := make([]*Node, 0, len(v))
		for _, c := range v {
			if c != nil {
				items = append(items, c)
			}
		}
		return &Node{Kind: KindArray, Children: items}
	case string:
		return Text(v)
	case int:
		return Num(float64(v))
	case int64:
		return Num(float64(v))
	case float64:
		return Num(v)
	case Component:
		return Comp(v, nil)
	}
	return nil
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *Node) *Node {
	if condition {
		return node
	}
	return nil
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() *Node) *Node {
	if condition {
		return fn()
	}
	return nil
}

// Range maps a slice to descriptors.
func Range[T any](items []T, fn func(item T, index int) *Node) []*Node {
	result := make([]*Node, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Key creates a key attribute for reconciliation.
func Key(key any) Attr {
	switch k := key.(type) {
	case string:
		return attr("key", k)
	case int:
		return attr("key", strconv.Itoa(k))
	}
	return attr("key", fmt.Sprintf("%v", key))
}
