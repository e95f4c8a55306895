package reconcile

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/tree"
)

// Apply drains j and performs its entries in order against the tree.
// The journal is empty afterwards even when an entry fails; entries before
// the failing one stay applied.
func Apply(j *journal.Journal) error {
	entries := j.Drain()
	for i, e := range entries {
		if err := applyEntry(i, e); err != nil {
			return err
		}
	}
	return nil
}

func applyEntry(i int, e journal.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("E302").
				WithDetailf("entry %d: %s", i, e).
				Wrap(fmt.Errorf("%v", r))
		}
	}()

	switch e.Op {
	case journal.OpSetText:
		e.Node.SetText(e.Text)
	case journal.OpInsert:
		e.Parent.InsertBefore(e.Node, e.Before)
	case journal.OpTruncate:
		e.Parent.Truncate(e.Node)
	case journal.OpRemove:
		e.Parent.Remove(e.Node, e.Cleanup)
	case journal.OpMove:
		e.Parent.Remove(e.Node, false)
		e.Parent.InsertBefore(e.Node, e.Before)
	case journal.OpAttrs:
		for _, p := range e.Attrs {
			applyProp(e.Node, p)
		}
	default:
		return errors.New("E301").WithDetailf("entry %d: %s", i, e.Op)
	}
	return nil
}

func applyProp(n *tree.Node, p tree.Prop) {
	switch {
	case tree.IsInternal(p.Key):
		n.SetProp(p.Key, p.Value)
	case tree.IsHandler(p.Key):
		n.SetProp(p.Key, p.Value)
		if p.Value != nil {
			n.EnsureAdapter()
		}
	default:
		n.SetAttr(p.Key, p.Value)
	}
}
