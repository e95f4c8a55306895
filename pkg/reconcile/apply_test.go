package reconcile

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestApplyOps(t *testing.T) {
	parent := tree.NewElement("ul")
	a, b, c := tree.NewElement("li"), tree.NewElement("li"), tree.NewText("x")

	j := journal.New()
	j.Insert(parent, a, nil)
	j.Insert(parent, b, nil)
	j.Insert(parent, c, a)
	j.SetText(c, "y")
	j.Move(parent, b, c)
	j.Attrs(a, []tree.Prop{{Key: "class", Value: "on"}, {Key: "onClick", Value: func() {}}})

	if err := Apply(j); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	kids := parent.Children()
	if len(kids) != 3 || kids[0] != b || kids[1] != c || kids[2] != a {
		t.Errorf("children = %v, want [b c a]", kids)
	}
	if c.Text() != "y" {
		t.Errorf("Text() = %q, want %q", c.Text(), "y")
	}
	if v, _ := a.Prop("class"); v != "on" {
		t.Errorf("class = %v, want on", v)
	}
	if a.Adapter() == nil {
		t.Error("Adapter() = nil after handler set")
	}
	if j.Len() != 0 {
		t.Errorf("journal len = %d, want 0", j.Len())
	}

	j.Remove(parent, c, true)
	j.Truncate(parent, a)
	if err := Apply(j); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if kids := parent.Children(); len(kids) != 1 || kids[0] != b {
		t.Errorf("children = %v, want [b]", kids)
	}
	if a.Adapter() != nil {
		t.Error("truncated node kept its adapter")
	}
}

func TestApplyMoveKeepsHandlers(t *testing.T) {
	parent := tree.NewElement("div")
	a, b := tree.NewElement("button"), tree.NewElement("span")

	j := journal.New()
	j.Insert(parent, a, nil)
	j.Insert(parent, b, nil)
	j.Attrs(a, []tree.Prop{{Key: "onclick", Value: func() {}}})
	j.Move(parent, a, nil)
	if err := Apply(j); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, ok := a.Prop("onclick"); !ok {
		t.Error("move dropped the handler")
	}
}

func TestApplyUnknownOpcode(t *testing.T) {
	j := journal.New()
	j.Append(journal.Entry{Op: journal.Op(0x7f)})

	err := Apply(j)
	if !errors.HasCode(err, "E301") {
		t.Errorf("Apply() error = %v, want E301", err)
	}
	if j.Len() != 0 {
		t.Errorf("journal len = %d, want 0", j.Len())
	}
}

func TestApplyMalformedEntry(t *testing.T) {
	parent := tree.NewElement("div")
	stranger := tree.NewElement("p")

	j := journal.New()
	j.Remove(parent, stranger, false)

	if err := Apply(j); !errors.HasCode(err, "E302") {
		t.Errorf("Apply() error = %v, want E302", err)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	r := NewRoot(New(WithMetrics(m)))

	c := vdom.Func(func(vdom.Props, []*vdom.Node) *vdom.Node { return vdom.Text("c") })
	if _, err := r.Render(context.Background(), vdom.Div(vdom.Comp(c, nil))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := r.Render(context.Background(), vdom.Slot()); err == nil {
		t.Fatal("Render(slot) error = nil")
	}

	if got := testutil.ToFloat64(m.diffsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("diffs_total{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.diffsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("diffs_total{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.entriesTotal.WithLabelValues("Insert")); got != 3 {
		t.Errorf("journal_entries_total{Insert} = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal); got != 1 {
		t.Errorf("component_renders_total = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.applyDuration); got != 1 {
		t.Errorf("apply_duration_seconds series = %d, want 1", got)
	}

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("live_sessions = %v, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeDiff("ok", 0)
	m.addEntries([]journal.Entry{{Op: journal.OpInsert}})
	m.addRenders(3)
	m.observeApply(0)
	m.SessionOpened()
	m.SessionClosed()
}
