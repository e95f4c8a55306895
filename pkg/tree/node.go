package tree

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota + 1 // <div>, <button>, etc.
	KindText                    // text content
	KindVirtual                 // fragment or component host, not rendered
	KindOther                   // anything the host environment adds
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindVirtual:
		return "Virtual"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Internal property keys.
const (
	PropRender = "$render" // stored render source of a component host
	PropProps  = "$props"  // stored props snapshot of a component host
	PropKey    = "$key"    // reconciliation key
)

// Prop is one entry of a node's sorted association list.
type Prop struct {
	Key   string
	Value any
}

var nextID atomic.Uint64

// Node is a persistent tree node.
type Node struct {
	id      uint64
	kind    Kind
	name    string
	text    string
	parent  *Node
	first   *Node
	last    *Node
	prev    *Node
	next    *Node
	props   []Prop
	adapter *Adapter
}

func newNode(kind Kind) *Node {
	return &Node{id: nextID.Add(1), kind: kind}
}

// NewElement creates a detached element node.
func NewElement(name string) *Node {
	n := newNode(KindElement)
	n.name = name
	return n
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	n := newNode(KindText)
	n.text = text
	return n
}

// NewFragment creates a detached virtual node.
func NewFragment() *Node {
	return newNode(KindVirtual)
}

// NewOther creates a detached node of KindOther with the given name.
func NewOther(name string) *Node {
	n := newNode(KindOther)
	n.name = name
	return n
}

// ID returns a process-unique node id.
func (n *Node) ID() uint64 { return n.id }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the element name.
func (n *Node) Name() string { return n.name }

// Text returns the text of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.first }

// NextSibling returns the next sibling or nil.
func (n *Node) NextSibling() *Node { return n.next }

// Props returns the sorted association list. Callers must not modify it.
func (n *Node) Props() []Prop { return n.props }

// Prop returns the value stored under key.
func (n *Node) Prop(key string) (any, bool) {
	i, ok := n.search(key)
	if !ok {
		return nil, false
	}
	return n.props[i].Value, true
}

// Key returns the reconciliation key, or "" when unset.
func (n *Node) Key() string {
	if v, ok := n.Prop(PropKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Children returns the children as a slice.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

func (n *Node) search(key string) (int, bool) {
	return slices.BinarySearchFunc(n.props, key, func(p Prop, k string) int {
		return strings.Compare(p.Key, k)
	})
}

// IsInternal reports whether key is an internal property key.
func IsInternal(key string) bool {
	return strings.HasPrefix(key, "$")
}

// IsHandler reports whether key names an event handler ("on" prefix).
// Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func IsHandler(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// IsAttribute reports whether key is rendered as an attribute.
func IsAttribute(key string) bool {
	return !IsInternal(key) && !IsHandler(key)
}

// Describe returns a short human-readable label for n.
func Describe(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindElement:
		if k := n.Key(); k != "" {
			return fmt.Sprintf("<%s key=%q>#%d", n.name, k, n.id)
		}
		return fmt.Sprintf("<%s>#%d", n.name, n.id)
	case KindText:
		return fmt.Sprintf("#text(%q)#%d", n.text, n.id)
	case KindVirtual:
		if k := n.Key(); k != "" {
			return fmt.Sprintf("#virtual(key=%q)#%d", k, n.id)
		}
		return fmt.Sprintf("#virtual#%d", n.id)
	default:
		return fmt.Sprintf("#%s(%s)#%d", n.kind, n.name, n.id)
	}
}
