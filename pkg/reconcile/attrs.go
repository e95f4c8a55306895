package reconcile

import (
	"slices"

	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// diffAttrs merges the node's stored attributes with attrs and emits at most
// one Attrs entry. The stored list and the new keys are walked in lockstep
// since both are sorted.
func (p *pass) diffAttrs(n *tree.Node, attrs vdom.Props, key string) {
	keys := make([]string, 0, len(attrs)+1)
	for k, v := range attrs {
		if tree.IsInternal(k) || v == nil {
			continue
		}
		keys = append(keys, k)
	}
	if key != "" {
		keys = append(keys, tree.PropKey)
	}
	slices.Sort(keys)

	value := func(k string) any {
		if k == tree.PropKey {
			return key
		}
		return attrs[k]
	}

	old := n.Props()
	var run []tree.Prop
	i, j := 0, 0
	for i < len(old) || j < len(keys) {
		if i < len(old) && tree.IsInternal(old[i].Key) && old[i].Key != tree.PropKey {
			i++
			continue
		}
		switch {
		case j >= len(keys) || (i < len(old) && old[i].Key < keys[j]):
			run = append(run, tree.Prop{Key: old[i].Key})
			i++
		case i >= len(old) || keys[j] < old[i].Key:
			run = append(run, tree.Prop{Key: keys[j], Value: value(keys[j])})
			j++
		default:
			if v := value(keys[j]); !Same(p.e.resolver, old[i].Value, v) {
				run = append(run, tree.Prop{Key: keys[j], Value: v})
			}
			i++
			j++
		}
	}
	p.j.Attrs(n, run)
}

