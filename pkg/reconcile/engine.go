package reconcile

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// TracerName is the instrumentation name used for spans.
const TracerName = "github.com/vango-dev/reconcile"

// Engine diffs descriptor trees against persistent trees.
// An Engine holds no per-pass state and may be shared; callers must still
// ensure only one pass runs against a given subtree at a time.
type Engine struct {
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	resolver Resolver
	factory  tree.Factory
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer. Default: the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithResolver sets the identity resolver used for render sources, props and
// attribute values.
func WithResolver(r Resolver) Option {
	return func(e *Engine) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithFactory sets the factory for newly inserted nodes.
func WithFactory(f tree.Factory) Option {
	return func(e *Engine) {
		if f != nil {
			e.factory = f
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   slog.Default(),
		tracer:   otel.Tracer(TracerName),
		resolver: DefaultResolver,
		factory:  tree.Memory,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diff appends to j the entries that transform root's children into desc,
// re-rendering changed components along the way. It returns once every
// queued expansion has been diffed; a failing expansion aborts the pass.
// root is not modified.
func (e *Engine) Diff(ctx context.Context, root *tree.Node, desc *vdom.Node, j *journal.Journal) error {
	_, err := e.diff(ctx, root, desc, j)
	return err
}

func (e *Engine) diff(ctx context.Context, root *tree.Node, desc *vdom.Node, j *journal.Journal) (int, error) {
	ctx, span := e.tracer.Start(ctx, "reconcile.Diff",
		trace.WithAttributes(attribute.String("reconcile.root", tree.Describe(root))))
	defer span.End()

	// Stops expansions still running when the pass returns early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	before := j.Len()

	p := &pass{e: e, ctx: ctx, j: j}
	err := p.diffRoot(root, desc)

	elapsed := time.Since(start)
	added := j.Entries()[before:]
	span.SetAttributes(
		attribute.Int("reconcile.entries", len(added)),
		attribute.Int("reconcile.renders", p.renders),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.metrics.observeDiff("error", elapsed)
		e.logger.Warn("diff aborted",
			"root", tree.Describe(root),
			"error", err,
			"entries", len(added))
		return p.renders, err
	}

	e.metrics.observeDiff("ok", elapsed)
	e.metrics.addEntries(added)
	e.metrics.addRenders(p.renders)
	e.logger.Debug("diff complete",
		"root", tree.Describe(root),
		"entries", len(added),
		"renders", p.renders,
		"duration", elapsed)
	return p.renders, nil
}

// Apply replays j against the tree, recording metrics and a span.
func (e *Engine) Apply(ctx context.Context, j *journal.Journal) error {
	_, span := e.tracer.Start(ctx, "reconcile.Apply",
		trace.WithAttributes(attribute.Int("reconcile.entries", j.Len())))
	defer span.End()

	start := time.Now()
	n := j.Len()
	err := Apply(j)
	e.metrics.observeApply(time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("journal apply failed", "entries", n, "error", err)
		return err
	}
	return nil
}
