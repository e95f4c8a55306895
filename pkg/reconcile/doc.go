// Package reconcile implements the diff engine and journal applier.
//
// Diff walks a descriptor tree and the committed persistent tree in lock-step
// using an explicit frame stack, appending the mutations needed to make the
// tree match to a journal. It never mutates the tree: new nodes are allocated
// detached and linked only when the journal is applied. Components whose
// render source or props changed are re-rendered and queued; the queue is
// drained in FIFO order after the top-level walk, awaiting asynchronous
// results without reordering.
//
// Apply replays a journal against the tree in one batch. It must run only
// after the diff pass, including all queued expansions, has completed.
//
//	e := reconcile.New(reconcile.WithLogger(logger))
//	j := journal.New()
//	if err := e.Diff(ctx, root, desc, j); err != nil {
//	    return err
//	}
//	return e.Apply(ctx, j)
//
// Root bundles both steps for callers that own a whole tree.
package reconcile
