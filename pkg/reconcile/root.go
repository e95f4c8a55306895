package reconcile

import (
	"context"
	"sync"

	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Stats summarizes one Render pass.
type Stats struct {
	Entries int
	ByOp    map[journal.Op]int
	Renders int
	Records []journal.Record
}

// Root owns a persistent tree and serializes diff-then-apply passes on it.
type Root struct {
	mu     sync.Mutex
	node   *tree.Node
	engine *Engine
	j      *journal.Journal
}

// NewRoot creates a Root with an empty virtual container. A nil engine uses
// New().
func NewRoot(engine *Engine) *Root {
	if engine == nil {
		engine = New()
	}
	return &Root{
		node:   engine.factory.NewFragment(),
		engine: engine,
		j:      journal.New(),
	}
}

// Node returns the container node. Its children are the rendered content.
func (r *Root) Node() *tree.Node { return r.node }

// Engine returns the engine used for passes.
func (r *Root) Engine() *Engine { return r.engine }

// Render reconciles the tree to desc and applies the result in one batch.
// On a diff error nothing is applied and the tree is left as it was.
func (r *Root) Render(ctx context.Context, desc *vdom.Node) (Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	renders, err := r.engine.diff(ctx, r.node, desc, r.j)
	if err != nil {
		r.j.Reset()
		return Stats{Renders: renders}, err
	}

	entries := r.j.Entries()
	stats := Stats{
		Entries: len(entries),
		ByOp:    make(map[journal.Op]int),
		Renders: renders,
	}
	for _, e := range entries {
		stats.ByOp[e.Op]++
	}
	// Records describe nodes, so capture them before the entries are drained.
	stats.Records = journal.Records(entries)

	if err := r.engine.Apply(ctx, r.j); err != nil {
		return stats, err
	}
	return stats, nil
}
