package vdom

import "strconv"

// Kind is the descriptor type discriminator.
type Kind uint8

const (
	KindInvalid   Kind = iota // zero value, rejected by the reconciler
	KindText                  // string content
	KindNumber                // numeric content, rendered as text
	KindArray                 // flattening marker, no tree level
	KindElement               // <div>, <button>, etc.
	KindFragment              // grouping without wrapper
	KindComponent             // render source + props + slot children
	KindSlot                  // placeholder marker
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindNumber:
		return "Number"
	case KindArray:
		return "Array"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindSlot:
		return "Slot"
	default:
		return "Invalid"
	}
}

// Node is a descriptor.
type Node struct {
	Kind     Kind      // Descriptor type
	Tag      string    // Element tag name (e.g., "div")
	Attrs    Props     // Element attributes and event handlers
	Children []*Node   // Array items, element/fragment children, component slot
	Key      string    // Reconciliation key
	Text     string    // For KindText
	Number   float64   // For KindNumber
	Comp     Component // For KindComponent
	Props    Props     // Component inputs
}

// Props maps attribute or prop names to values.
type Props map[string]any

// TextValue returns the text a text or number descriptor renders as.
func (n *Node) TextValue() string {
	if n.Kind == KindNumber {
		return strconv.FormatFloat(n.Number, 'f', -1, 64)
	}
	return n.Text
}

// WithKey sets the reconciliation key and returns the node.
func (n *Node) WithKey(key string) *Node {
	n.Key = key
	return n
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}
