package render

import (
	"bytes"
	"context"
	"io"
	"slices"

	"golang.org/x/net/html"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/htmlx"
	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// DefaultMaxDepth is the default component nesting limit.
const DefaultMaxDepth = 64

// RendererConfig configures the renderer.
type RendererConfig struct {
	// MaxDepth limits nested component expansion.
	// Defaults to DefaultMaxDepth if not specified.
	MaxDepth int
}

// Renderer interprets descriptor trees into html nodes.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	return &Renderer{config: config}
}

// Nodes returns the html forest desc describes. Components are rendered and
// awaited in document order.
func (r *Renderer) Nodes(ctx context.Context, desc *vdom.Node) ([]*html.Node, error) {
	return r.appendNodes(ctx, nil, desc, 0)
}

// RenderToString renders desc to an HTML string.
func (r *Renderer) RenderToString(ctx context.Context, desc *vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(ctx, &buf, desc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams desc to the given writer.
func (r *Renderer) RenderToWriter(ctx context.Context, w io.Writer, desc *vdom.Node) error {
	nodes, err := r.Nodes(ctx, desc)
	if err != nil {
		return err
	}
	return htmlx.Render(w, nodes)
}

// appendNodes dispatches on descriptor kind.
func (r *Renderer) appendNodes(ctx context.Context, dst []*html.Node, d *vdom.Node, depth int) ([]*html.Node, error) {
	if d == nil {
		return dst, nil
	}

	switch d.Kind {
	case vdom.KindText, vdom.KindNumber:
		return append(dst, &html.Node{Type: html.TextNode, Data: d.TextValue()}), nil

	case vdom.KindArray, vdom.KindFragment:
		var err error
		for _, c := range d.Children {
			if dst, err = r.appendNodes(ctx, dst, c, depth); err != nil {
				return nil, err
			}
		}
		return dst, nil

	case vdom.KindElement:
		el, err := r.element(ctx, d, depth)
		if err != nil {
			return nil, err
		}
		return append(dst, el), nil

	case vdom.KindComponent:
		out, err := r.component(ctx, d, depth)
		if err != nil {
			return nil, err
		}
		return r.appendNodes(ctx, dst, out, depth+1)

	case vdom.KindSlot:
		return nil, errors.New("E102")

	default:
		return nil, errors.New("E101").WithDetailf("descriptor kind %d", d.Kind)
	}
}

// element renders an element with its attributes and children.
func (r *Renderer) element(ctx context.Context, d *vdom.Node, depth int) (*html.Node, error) {
	el := htmlx.Element(d.Tag)

	// Sorted to match the persistent tree's property order.
	keys := make([]string, 0, len(d.Attrs))
	for k := range d.Attrs {
		if tree.IsAttribute(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		if a, ok := htmlx.Attribute(k, d.Attrs[k]); ok {
			el.Attr = append(el.Attr, a)
		}
	}

	var kids []*html.Node
	var err error
	for _, c := range d.Children {
		if kids, err = r.appendNodes(ctx, kids, c, depth); err != nil {
			return nil, err
		}
	}
	for _, k := range kids {
		el.AppendChild(k)
	}
	return el, nil
}

// component renders and awaits a component's output.
func (r *Renderer) component(ctx context.Context, d *vdom.Node, depth int) (*vdom.Node, error) {
	if d.Comp == nil {
		return nil, errors.New("E103").WithDetailf("key %q", d.Key)
	}
	if depth >= r.config.MaxDepth {
		return nil, errors.New("E202").WithDetailf("depth %d", depth)
	}
	future := d.Comp.Render(ctx, d.Props, d.Children)
	if future == nil {
		return nil, nil
	}
	out, err := future.Await(ctx)
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	return out, nil
}
