package vtest

import (
	"fmt"
	"testing"

	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

type todo struct {
	ID   int
	Text string
	Done bool
}

var todoItem = vdom.Func(func(props vdom.Props, _ []*vdom.Node) *vdom.Node {
	item := props["item"].(todo)
	class := "todo"
	if item.Done {
		class = "todo done"
	}
	return vdom.Li(vdom.Class(class), item.Text)
})

func todoList(items []todo) *vdom.Node {
	return vdom.Section(
		vdom.H1("Todos"),
		vdom.Ul(vdom.Range(items, func(item todo, _ int) *vdom.Node {
			c := vdom.Comp(todoItem, vdom.Props{"item": item})
			c.Key = fmt.Sprint(item.ID)
			return c
		})),
		vdom.P(len(items), " items"),
	)
}

func TestHarnessTodoList(t *testing.T) {
	h := New(t)

	items := []todo{{1, "milk", false}, {2, "eggs", false}, {3, "bread", false}}
	stats := h.Render(todoList(items))
	if stats.Renders != 3 {
		t.Errorf("renders = %d, want 3", stats.Renders)
	}
	h.ExpectContains(`<li class="todo">eggs</li>`)
	h.ExpectRoundTrip()

	ExpectNoop(t, h.Render(todoList(items)))

	items[1].Done = true
	stats = h.Render(todoList(items))
	if stats.Renders != 1 {
		t.Errorf("renders = %d, want 1", stats.Renders)
	}
	h.ExpectAttribute("class", "todo done")
	h.ExpectRoundTrip()

	reordered := []todo{items[2], items[0]}
	stats = h.Render(todoList(reordered))
	ExpectOps(t, stats, map[journal.Op]int{
		journal.OpMove:     1,
		journal.OpTruncate: 1,
		journal.OpSetText:  1,
	})
	h.ExpectNotContains("eggs")
	h.ExpectHTML(`<section><h1>Todos</h1><ul><li class="todo">bread</li><li class="todo">milk</li></ul><p>2 items</p></section>`)
}

func TestTryRender(t *testing.T) {
	h := New(t)
	h.Render(vdom.Div("ok"))

	if _, err := h.TryRender(vdom.Div(vdom.Slot())); err == nil {
		t.Fatal("TryRender(slot) error = nil")
	}
	h.ExpectHTML("<div>ok</div>")
	h.ExpectRoundTrip()
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate() = %q, want %q", got, "abc...")
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate() = %q, want %q", got, "ab")
	}
}
