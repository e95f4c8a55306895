package reconcile

import (
	"context"
	"maps"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/journal"
	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// frame is one level of the traversal.
type frame struct {
	parent *tree.Node
	// cur is the existing child at the cursor; nil past the last child.
	cur *tree.Node
	// newNode is the node placed before cur for the current descriptor
	// (inserted or moved). It is not reachable from cur's sibling chain.
	newNode *tree.Node
	// keyed maps kind/name/key to remaining siblings in scan order.
	// Materialized on the first keyed miss.
	keyed map[string][]*tree.Node
	// moved holds siblings relocated out of order; the cursor skips them.
	moved map[*tree.Node]struct{}

	children []*vdom.Node
	idx      int
	// descend is false for array frames, which share the enclosing level.
	descend bool
}

// target returns the node the current descriptor was matched to.
func (f *frame) target() *tree.Node {
	if f.newNode != nil {
		return f.newNode
	}
	return f.cur
}

// expansion is a queued component re-render.
type expansion struct {
	future vdom.Future
	host   *tree.Node
}

// pass holds the state of a single Diff call.
type pass struct {
	e   *Engine
	ctx context.Context
	j   *journal.Journal

	f     frame
	stack []frame
	queue []expansion

	renders int
}

func (p *pass) diffRoot(root *tree.Node, desc *vdom.Node) error {
	if err := p.run(root, single(desc)); err != nil {
		return err
	}
	return p.drain()
}

// drain expands queued components in FIFO order. Each expansion may queue
// more; an asynchronous result suspends the drain until it resolves.
func (p *pass) drain() error {
	for len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]

		desc, err := next.future.Await(p.ctx)
		if err != nil {
			return errors.New("E201").
				WithDetailf("host %s", tree.Describe(next.host)).
				Wrap(err)
		}
		if err := p.run(next.host, single(desc)); err != nil {
			return err
		}
	}
	return nil
}

func single(desc *vdom.Node) []*vdom.Node {
	if desc == nil {
		return nil
	}
	return []*vdom.Node{desc}
}

// run reconciles parent's children against children until the frame stack
// unwinds back to parent.
func (p *pass) run(parent *tree.Node, children []*vdom.Node) error {
	p.stack = p.stack[:0]
	p.f = frame{
		parent:   parent,
		cur:      parent.FirstChild(),
		children: children,
		descend:  true,
	}

	for {
		if p.f.idx < len(p.f.children) {
			if err := p.step(p.f.children[p.f.idx]); err != nil {
				return err
			}
			continue
		}
		if p.f.descend {
			p.truncate()
		}
		if len(p.stack) == 0 {
			return nil
		}
		p.ascend()
	}
}

// step handles the descriptor at the current index.
func (p *pass) step(d *vdom.Node) error {
	if d == nil {
		p.f.idx++
		return nil
	}
	assert(p.f.parent != p.f.cur, "parent and cursor alias")
	assert(p.f.newNode == nil, "new node pending before step")

	switch d.Kind {
	case vdom.KindText, vdom.KindNumber:
		p.expectText(d.TextValue())
		p.advance()

	case vdom.KindArray:
		p.f.idx++
		p.stack = append(p.stack, p.f)
		p.f.children = d.Children
		p.f.idx = 0
		p.f.descend = false

	case vdom.KindElement:
		p.purgeText()
		node := p.expectElement(d)
		p.diffAttrs(node, d.Attrs, d.Key)
		p.descendInto(node, d.Children)

	case vdom.KindFragment:
		p.purgeText()
		node, fresh := p.expectVirtual(d.Key)
		p.fragmentAttrs(node, fresh, d.Key)
		p.descendInto(node, d.Children)

	case vdom.KindComponent:
		if d.Comp == nil {
			return errors.New("E103").WithDetailf("key %q", d.Key)
		}
		p.purgeText()
		p.expectComponent(d)
		p.advance()

	case vdom.KindSlot:
		return errors.New("E102")

	default:
		return errors.New("E101").WithDetailf("descriptor kind %d", d.Kind)
	}
	return nil
}

// advance moves past the node matched for the current descriptor.
func (p *pass) advance() {
	p.f.idx++
	if p.f.newNode != nil {
		p.f.newNode = nil
		return
	}
	if p.f.cur != nil {
		p.f.cur = p.next(p.f.cur)
	}
}

// next returns the sibling after n, skipping siblings already moved.
func (p *pass) next(n *tree.Node) *tree.Node {
	n = n.NextSibling()
	for n != nil {
		if _, ok := p.f.moved[n]; !ok {
			break
		}
		n = n.NextSibling()
	}
	return n
}

func (p *pass) descendInto(node *tree.Node, children []*vdom.Node) {
	assert(node != nil, "descend without a target node")
	p.stack = append(p.stack, p.f)
	p.f = frame{
		parent:   node,
		cur:      node.FirstChild(),
		children: children,
		descend:  true,
	}
}

// ascend pops a frame. Array frames hand their cursor back to the enclosing
// level; element frames restore it and advance past the processed node.
func (p *pass) ascend() {
	saved := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	if !p.f.descend {
		p.f.children = saved.children
		p.f.idx = saved.idx
		p.f.descend = saved.descend
		return
	}
	p.f = saved
	p.advance()
}

// truncate removes every existing child from the cursor on.
func (p *pass) truncate() {
	if p.f.cur != nil {
		p.j.Truncate(p.f.parent, p.f.cur)
		p.f.cur = nil
	}
}

// purgeText removes stale text nodes at the cursor; an element never
// follows text left over from a previous pass.
func (p *pass) purgeText() {
	for p.f.cur != nil && p.f.cur.Kind() == tree.KindText {
		stale := p.f.cur
		p.f.cur = p.next(stale)
		p.j.Remove(p.f.parent, stale, true)
	}
}

func (p *pass) expectText(text string) {
	cur := p.f.cur
	if cur != nil && cur.Kind() == tree.KindText {
		if cur.Text() == text || p.coalesceText(text) {
			return
		}
		p.j.SetText(cur, text)
		return
	}
	n := p.e.factory.NewText(text)
	p.j.Insert(p.f.parent, n, cur)
	p.f.newNode = n
}

// coalesceText drops stale text nodes ahead of an equal one. It only
// removes nodes in excess of the text descriptors left in the run, so no
// node another descriptor would reuse is lost. Reports whether the cursor
// now rests on a node holding text.
func (p *pass) coalesceText(text string) bool {
	var run []*tree.Node
	for n := p.f.cur; n != nil && n.Kind() == tree.KindText; n = p.next(n) {
		run = append(run, n)
	}
	excess := len(run) - p.textRun()
	if excess <= 0 {
		return false
	}
	for i := 1; i <= excess && i < len(run); i++ {
		if run[i].Text() != text {
			continue
		}
		for _, stale := range run[:i] {
			p.j.Remove(p.f.parent, stale, true)
		}
		p.f.cur = run[i]
		return true
	}
	return false
}

// textRun counts consecutive text descriptors starting at the current one,
// following array frames out into the enclosing list.
func (p *pass) textRun() int {
	count := 0
	children, idx, descend := p.f.children, p.f.idx, p.f.descend
	depth := len(p.stack)
	for {
		for ; idx < len(children); idx++ {
			d := children[idx]
			if d == nil {
				continue
			}
			if d.Kind != vdom.KindText && d.Kind != vdom.KindNumber {
				return count
			}
			count++
		}
		if descend || depth == 0 {
			return count
		}
		depth--
		saved := p.stack[depth]
		children, idx, descend = saved.children, saved.idx, saved.descend
	}
}

func (p *pass) expectElement(d *vdom.Node) *tree.Node {
	cur := p.f.cur
	if cur != nil && cur.Kind() == tree.KindElement && cur.Name() == d.Tag && cur.Key() == d.Key {
		p.claim(cur)
		return cur
	}
	if d.Key != "" {
		if found := p.lookup(tree.KindElement, d.Tag, d.Key); found != nil {
			p.j.Move(p.f.parent, found, cur)
			p.f.newNode = found
			return found
		}
	}
	n := p.e.factory.NewElement(d.Tag)
	p.j.Insert(p.f.parent, n, cur)
	p.f.newNode = n
	return n
}

// expectVirtual ensures a virtual node at the cursor. It reports whether the
// node was freshly created.
func (p *pass) expectVirtual(key string) (*tree.Node, bool) {
	cur := p.f.cur
	if cur != nil && cur.Kind() == tree.KindVirtual && cur.Key() == key {
		p.claim(cur)
		return cur, false
	}
	if key != "" {
		if found := p.lookup(tree.KindVirtual, "", key); found != nil {
			p.j.Move(p.f.parent, found, cur)
			p.f.newNode = found
			return found, false
		}
	}
	n := p.e.factory.NewFragment()
	p.j.Insert(p.f.parent, n, cur)
	p.f.newNode = n
	return n, true
}

// fragmentAttrs stamps the key on a fresh fragment, or clears component
// state from a virtual node reused as a plain fragment so a later component
// at this position re-renders.
func (p *pass) fragmentAttrs(n *tree.Node, fresh bool, key string) {
	if fresh {
		if key != "" {
			p.j.Attrs(n, []tree.Prop{{Key: tree.PropKey, Value: key}})
		}
		return
	}
	var run []tree.Prop
	if _, ok := n.Prop(tree.PropProps); ok {
		run = append(run, tree.Prop{Key: tree.PropProps})
	}
	if _, ok := n.Prop(tree.PropRender); ok {
		run = append(run, tree.Prop{Key: tree.PropRender})
	}
	p.j.Attrs(n, run)
}

// expectComponent ensures the host and queues a re-render when the render
// source or props changed.
func (p *pass) expectComponent(d *vdom.Node) {
	host, fresh := p.expectVirtual(d.Key)
	if !fresh {
		render, _ := host.Prop(tree.PropRender)
		props, _ := host.Prop(tree.PropProps)
		stored, _ := props.(vdom.Props)
		if render != nil && Same(p.e.resolver, render, d.Comp) && ShallowEqual(p.e.resolver, stored, d.Props) {
			return
		}
	}

	snapshot := maps.Clone(d.Props)
	if snapshot == nil {
		snapshot = vdom.Props{}
	}
	future := d.Comp.Render(p.ctx, snapshot, d.Children)
	if future == nil {
		future = vdom.Ready(nil)
	}
	var run []tree.Prop
	if fresh && d.Key != "" {
		run = append(run, tree.Prop{Key: tree.PropKey, Value: d.Key})
	}
	run = append(run,
		tree.Prop{Key: tree.PropProps, Value: snapshot},
		tree.Prop{Key: tree.PropRender, Value: d.Comp},
	)
	p.j.Attrs(host, run)
	p.queue = append(p.queue, expansion{future: future, host: host})
	p.renders++
}

// lookup finds and claims a keyed sibling at or after the cursor,
// materializing the side table on first use.
func (p *pass) lookup(kind tree.Kind, name, key string) *tree.Node {
	if p.f.keyed == nil {
		p.f.keyed = make(map[string][]*tree.Node)
		for n := p.f.cur; n != nil; n = p.next(n) {
			if k := n.Key(); k != "" {
				tk := tableKey(n.Kind(), n.Name(), k)
				p.f.keyed[tk] = append(p.f.keyed[tk], n)
			}
		}
	}
	tk := tableKey(kind, name, key)
	list := p.f.keyed[tk]
	if len(list) == 0 {
		return nil
	}
	found := list[0]
	p.f.keyed[tk] = list[1:]
	if p.f.moved == nil {
		p.f.moved = make(map[*tree.Node]struct{})
	}
	p.f.moved[found] = struct{}{}
	return found
}

// claim drops a node matched in place from the side table.
func (p *pass) claim(n *tree.Node) {
	if p.f.keyed == nil {
		return
	}
	k := n.Key()
	if k == "" {
		return
	}
	tk := tableKey(n.Kind(), n.Name(), k)
	list := p.f.keyed[tk]
	for i, c := range list {
		if c == n {
			p.f.keyed[tk] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

func tableKey(kind tree.Kind, name, key string) string {
	return string(rune('0'+kind)) + "\x00" + name + "\x00" + key
}

// assert panics with an invariant error; a failure is an engine bug.
func assert(cond bool, msg string) {
	if !cond {
		panic(errors.New("E199").WithDetail(msg))
	}
}
