package htmlx

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// KeyAttr is the markup attribute read as a reconciliation key.
const KeyAttr = "key"

var bodyContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "body",
	DataAtom: atom.Body,
}

// Parse reads an HTML fragment and returns it as an array descriptor.
func Parse(r io.Reader) (*vdom.Node, error) {
	nodes, err := html.ParseFragment(r, bodyContext)
	if err != nil {
		return nil, errors.New("E402").Wrap(err)
	}
	return &vdom.Node{Kind: vdom.KindArray, Children: convertAll(nodes)}, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*vdom.Node, error) {
	return Parse(strings.NewReader(s))
}

func convertAll(nodes []*html.Node) []*vdom.Node {
	out := make([]*vdom.Node, 0, len(nodes))
	for _, n := range nodes {
		if d := convert(n); d != nil {
			out = append(out, d)
		}
	}
	return out
}

func children(n *html.Node) []*vdom.Node {
	var out []*vdom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if d := convert(c); d != nil {
			out = append(out, d)
		}
	}
	return out
}

func convert(n *html.Node) *vdom.Node {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return vdom.Text(n.Data)
	case html.ElementNode:
		el := vdom.El(n.Data)
		for _, a := range n.Attr {
			if a.Namespace != "" {
				continue
			}
			if a.Key == KeyAttr {
				el.Key = a.Val
				continue
			}
			el.Attrs[a.Key] = a.Val
		}
		el.Children = children(n)
		return el
	case html.DocumentNode:
		return &vdom.Node{Kind: vdom.KindArray, Children: children(n)}
	default:
		// Comments and doctypes have no descriptor form.
		return nil
	}
}
