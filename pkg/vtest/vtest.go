package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/pkg/htmlx"
	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/reconcile"
	"github.com/vango-dev/reconcile/pkg/render"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Harness drives a persistent root in tests.
type Harness struct {
	t    testing.TB
	ctx  context.Context
	root *reconcile.Root
	last *vdom.Node
}

// New creates a Harness. Logging is discarded unless a logger option is
// passed.
func New(t testing.TB, opts ...reconcile.Option) *Harness {
	t.Helper()
	quiet := reconcile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	engine := reconcile.New(append([]reconcile.Option{quiet}, opts...)...)
	return &Harness{
		t:    t,
		ctx:  context.Background(),
		root: reconcile.NewRoot(engine),
	}
}

// WithContext sets the context passed to Render.
func (h *Harness) WithContext(ctx context.Context) *Harness {
	h.ctx = ctx
	return h
}

// Root returns the underlying root.
func (h *Harness) Root() *reconcile.Root { return h.root }

// Render reconciles desc into the root and fails the test on error.
func (h *Harness) Render(desc *vdom.Node) reconcile.Stats {
	h.t.Helper()
	stats, err := h.root.Render(h.ctx, desc)
	if err != nil {
		h.t.Fatalf("Render() error = %v", err)
	}
	h.last = desc
	return stats
}

// TryRender reconciles desc and returns the error instead of failing.
func (h *Harness) TryRender(desc *vdom.Node) (reconcile.Stats, error) {
	stats, err := h.root.Render(h.ctx, desc)
	if err == nil {
		h.last = desc
	}
	return stats, err
}

// HTML returns the projected HTML of the persistent tree.
func (h *Harness) HTML() string {
	h.t.Helper()
	out, err := htmlx.String(h.root.Node())
	if err != nil {
		h.t.Fatalf("htmlx.String() error = %v", err)
	}
	return out
}

// ExpectHTML asserts the projected HTML equals want.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("HTML = %q, want %q", got, want)
	}
}

// ExpectContains asserts that the projected HTML contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the projected HTML does not contain
// unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the projected HTML contains attr="value".
func (h *Harness) ExpectAttribute(attr, value string) {
	h.t.Helper()
	html := h.HTML()
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		h.t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectRoundTrip asserts the tree matches a direct rendering of the last
// descriptor passed to Render.
func (h *Harness) ExpectRoundTrip() {
	h.t.Helper()
	want := RenderToString(h.last)
	if got := h.HTML(); got != want {
		h.t.Errorf("tree HTML = %q, want %q", got, want)
	}
}

// RenderToString renders desc directly, returning "" on error.
func RenderToString(desc *vdom.Node) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(context.Background(), desc)
	if err != nil {
		return ""
	}
	return html
}

// ExpectOps asserts the per-opcode entry counts of a pass. Opcodes missing
// from want are expected to be absent.
func ExpectOps(t testing.TB, stats reconcile.Stats, want map[journal.Op]int) {
	t.Helper()
	for _, op := range journal.Ops {
		if got := stats.ByOp[op]; got != want[op] {
			t.Errorf("%s entries = %d, want %d", op, got, want[op])
		}
	}
}

// ExpectNoop asserts a pass produced no entries and no renders.
func ExpectNoop(t testing.TB, stats reconcile.Stats) {
	t.Helper()
	if stats.Entries != 0 || stats.Renders != 0 {
		t.Errorf("pass produced %d entries and %d renders, want none", stats.Entries, stats.Renders)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
