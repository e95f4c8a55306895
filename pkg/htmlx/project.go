package htmlx

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/reconcile/pkg/tree"
)

// Project returns the rendered shape of n's children as detached html nodes.
func Project(n *tree.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out = appendProjected(out, c)
	}
	return out
}

func appendProjected(dst []*html.Node, n *tree.Node) []*html.Node {
	switch n.Kind() {
	case tree.KindVirtual:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			dst = appendProjected(dst, c)
		}
		return dst
	case tree.KindText:
		return append(dst, &html.Node{Type: html.TextNode, Data: n.Text()})
	case tree.KindElement:
		el := Element(n.Name())
		for _, p := range n.Props() {
			if !tree.IsAttribute(p.Key) {
				continue
			}
			if a, ok := Attribute(p.Key, p.Value); ok {
				el.Attr = append(el.Attr, a)
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			for _, k := range appendProjected(nil, c) {
				el.AppendChild(k)
			}
		}
		return append(dst, el)
	default:
		return append(dst, &html.Node{Type: html.CommentNode, Data: n.Name()})
	}
}

// Element creates a detached html element node.
func Element(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// Attribute converts a property value to an html attribute. Boolean true
// renders as an empty value; false and nil are omitted.
func Attribute(key string, value any) (html.Attribute, bool) {
	switch v := value.(type) {
	case nil:
		return html.Attribute{}, false
	case bool:
		if !v {
			return html.Attribute{}, false
		}
		return html.Attribute{Key: key}, true
	case string:
		return html.Attribute{Key: key, Val: v}, true
	case int:
		return html.Attribute{Key: key, Val: strconv.Itoa(v)}, true
	case float64:
		return html.Attribute{Key: key, Val: strconv.FormatFloat(v, 'f', -1, 64)}, true
	}
	return html.Attribute{Key: key, Val: fmt.Sprint(value)}, true
}

// Render serializes nodes in order.
func Render(w io.Writer, nodes []*html.Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// String serializes the rendered shape of n's children.
func String(n *tree.Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, Project(n)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
