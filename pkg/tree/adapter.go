package tree

import (
	"context"
	"fmt"
	"strings"
)

// Event is delivered to handler props through a node's Adapter.
type Event struct {
	Name    string // event name without the "on" prefix
	Target  *Node
	Payload any
}

// Adapter routes events to the handler props of one node. A node carries at
// most one adapter regardless of how many handlers it has; the handler is
// looked up in the property store at dispatch time, so handler updates need
// no adapter work.
type Adapter struct {
	node *Node
}

// Adapter returns the node's dispatch adapter, or nil when no handler was
// ever set on it.
func (n *Node) Adapter() *Adapter { return n.adapter }

// EnsureAdapter installs the dispatch adapter if missing and returns it.
func (n *Node) EnsureAdapter() *Adapter {
	if n.adapter == nil {
		n.adapter = &Adapter{node: n}
	}
	return n.adapter
}

// Dispatch invokes the handler registered for the named event. It reports
// false when the node has no such handler.
//
// Supported handler shapes: func(), func(Event), func(context.Context, Event) error.
func (a *Adapter) Dispatch(ctx context.Context, name string, payload any) (bool, error) {
	if a == nil || a.node == nil {
		return false, nil
	}
	handler := a.lookup("on" + name)
	if handler == nil {
		return false, nil
	}
	ev := Event{Name: name, Target: a.node, Payload: payload}
	switch h := handler.(type) {
	case func():
		h()
	case func(Event):
		h(ev)
	case func(context.Context, Event) error:
		return true, h(ctx, ev)
	default:
		return true, fmt.Errorf("tree: unsupported handler type %T for %q", handler, name)
	}
	return true, nil
}

func (a *Adapter) lookup(key string) any {
	for _, p := range a.node.props {
		if strings.EqualFold(p.Key, key) {
			return p.Value
		}
	}
	return nil
}
