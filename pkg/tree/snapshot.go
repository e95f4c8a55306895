package tree

// Shape is the rendered shape of a subtree: what a host environment would
// show. Virtual nodes are flattened into their parent, and only rendered
// attributes are kept.
type Shape struct {
	Kind     Kind
	Name     string  `json:",omitempty"`
	Text     string  `json:",omitempty"`
	Attrs    []Prop  `json:",omitempty"`
	Children []Shape `json:",omitempty"`
}

// Snapshot returns the rendered shape of n's children.
func Snapshot(n *Node) []Shape {
	return appendShapes(nil, n)
}

func appendShapes(dst []Shape, parent *Node) []Shape {
	for c := parent.first; c != nil; c = c.next {
		switch c.kind {
		case KindVirtual:
			dst = appendShapes(dst, c)
		case KindText:
			dst = append(dst, Shape{Kind: KindText, Text: c.text})
		default:
			s := Shape{Kind: c.kind, Name: c.name}
			for _, p := range c.props {
				if IsAttribute(p.Key) {
					s.Attrs = append(s.Attrs, p)
				}
			}
			s.Children = appendShapes(nil, c)
			dst = append(dst, s)
		}
	}
	return dst
}
