package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element descriptor with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, EventHandler, Props, or any child
// accepted by Fragment.
func El(tag string, args ...any) *Node {
	node := &Node{
		Kind:  KindElement,
		Tag:   tag,
		Attrs: make(Props),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setAttr(v)
		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}
		case EventHandler:
			if v.Event != "" && v.Handler != nil {
				node.Attrs[v.Event] = v.Handler
			}
		case Props:
			for k, val := range v {
				node.setAttr(Attr{Key: k, Value: val})
			}
		default:
			if child := toNode(arg); child != nil {
				node.Children = append(node.Children, child)
			}
		}
	}

	return node
}

func (n *Node) setAttr(a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			n.Key = s
		}
		return
	}
	n.Attrs[a.Key] = a.Value
}

// Document structure

func Div(args ...any) *Node     { return El("div", args...) }
func Span(args ...any) *Node    { return El("span", args...) }
func P(args ...any) *Node       { return El("p", args...) }
func Section(args ...any) *Node { return El("section", args...) }
func Header(args ...any) *Node  { return El("header", args...) }
func Footer(args ...any) *Node  { return El("footer", args...) }
func Main(args ...any) *Node    { return El("main", args...) }
func Nav(args ...any) *Node     { return El("nav", args...) }
func H1(args ...any) *Node      { return El("h1", args...) }
func H2(args ...any) *Node      { return El("h2", args...) }
func H3(args ...any) *Node      { return El("h3", args...) }

// Lists and tables

func Ul(args ...any) *Node    { return El("ul", args...) }
func Ol(args ...any) *Node    { return El("ol", args...) }
func Li(args ...any) *Node    { return El("li", args...) }
func Table(args ...any) *Node { return El("table", args...) }
func Tr(args ...any) *Node    { return El("tr", args...) }
func Td(args ...any) *Node    { return El("td", args...) }

// Inline and interactive

func A(args ...any) *Node      { return El("a", args...) }
func B(args ...any) *Node      { return El("b", args...) }
func Em(args ...any) *Node     { return El("em", args...) }
func Button(args ...any) *Node { return El("button", args...) }
func Form(args ...any) *Node   { return El("form", args...) }
func Label(args ...any) *Node  { return El("label", args...) }
func Input(args ...any) *Node  { return El("input", args...) }
func Img(args ...any) *Node    { return El("img", args...) }
func Br() *Node                { return El("br") }
func Hr() *Node                { return El("hr") }
