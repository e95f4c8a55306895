package vdom

import (
	"context"
	"fmt"
)

// Component produces a new descriptor from props and slot children.
//
// Components are compared by identity between passes, so a component value
// should be created once (package level or stored in state) rather than on
// every render.
type Component interface {
	Render(ctx context.Context, props Props, children []*Node) Future
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(ctx context.Context, props Props, children []*Node) Future

// Render implements Component.
func (f ComponentFunc) Render(ctx context.Context, props Props, children []*Node) Future {
	return f(ctx, props, children)
}

// syncComponent wraps a synchronous render function.
type syncComponent struct {
	render func(props Props, children []*Node) *Node
}

func (c *syncComponent) Render(_ context.Context, props Props, children []*Node) Future {
	return Ready(c.render(props, children))
}

// Func creates a synchronous component from a render function.
func Func(render func(props Props, children []*Node) *Node) Component {
	return &syncComponent{render: render}
}

// Future is a deferred descriptor: either already resolved or completed later.
type Future interface {
	// Await blocks until the descriptor is available or ctx is done.
	Await(ctx context.Context) (*Node, error)
}

type readyFuture struct {
	node *Node
	err  error
}

func (f readyFuture) Await(context.Context) (*Node, error) {
	return f.node, f.err
}

// Ready returns a Future that is already resolved to node.
func Ready(node *Node) Future {
	return readyFuture{node: node}
}

// Failed returns a Future that is already rejected with err.
func Failed(err error) Future {
	return readyFuture{err: err}
}

type asyncFuture struct {
	done chan struct{}
	node *Node
	err  error
}

func (f *asyncFuture) Await(ctx context.Context) (*Node, error) {
	select {
	case <-f.done:
		return f.node, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Async runs fn on its own goroutine and returns a Future for its result.
// fn must not touch the persistent tree.
func Async(ctx context.Context, fn func(ctx context.Context) (*Node, error)) Future {
	f := &asyncFuture{done: make(chan struct{})}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				f.node, f.err = nil, fmt.Errorf("vdom: component panicked: %v", r)
			}
			close(f.done)
		}()
		f.node, f.err = fn(ctx)
	}()
	return f
}
