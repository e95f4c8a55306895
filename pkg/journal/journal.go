// Package journal holds the ordered mutation log produced by a diff pass.
//
// A Journal is append-only while the diff runs and is drained exactly once
// by the applier. Entries are never reordered: append order is mutation
// order.
package journal

import (
	"fmt"
	"strings"

	"github.com/vango-dev/reconcile/pkg/tree"
)

// Op is the journal opcode.
type Op uint8

const (
	OpSetText  Op = 0x01 // Replace text of a text node
	OpInsert   Op = 0x02 // Link a node before an anchor (nil = append)
	OpTruncate Op = 0x03 // Remove a node and all following siblings
	OpRemove   Op = 0x04 // Remove a single node
	OpMove     Op = 0x05 // Remove without cleanup, then insert before anchor
	OpAttrs    Op = 0x06 // Run of key/value pairs for one node
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpSetText:
		return "SetText"
	case OpInsert:
		return "Insert"
	case OpTruncate:
		return "Truncate"
	case OpRemove:
		return "Remove"
	case OpMove:
		return "Move"
	case OpAttrs:
		return "Attrs"
	default:
		return fmt.Sprintf("Op(0x%02x)", uint8(op))
	}
}

// Ops lists every opcode in numeric order.
var Ops = []Op{OpSetText, OpInsert, OpTruncate, OpRemove, OpMove, OpAttrs}

// Entry is a single journal record.
type Entry struct {
	Op      Op
	Parent  *tree.Node  // Insert, Truncate, Remove, Move
	Node    *tree.Node  // Target node; for Truncate the first removed node
	Before  *tree.Node  // Insert/Move anchor, nil appends
	Text    string      // SetText
	Attrs   []tree.Prop // Attrs run; a nil value removes the key
	Cleanup bool        // Remove
}

// Journal is an ordered, append-only list of entries.
type Journal struct {
	entries []Entry
}

// New creates an empty journal.
func New() *Journal {
	return &Journal{}
}

// SetText records a text replacement.
func (j *Journal) SetText(n *tree.Node, text string) {
	j.entries = append(j.entries, Entry{Op: OpSetText, Node: n, Text: text})
}

// Insert records linking n into parent before the given anchor.
func (j *Journal) Insert(parent, n, before *tree.Node) {
	j.entries = append(j.entries, Entry{Op: OpInsert, Parent: parent, Node: n, Before: before})
}

// Truncate records removing from and every sibling after it.
func (j *Journal) Truncate(parent, from *tree.Node) {
	j.entries = append(j.entries, Entry{Op: OpTruncate, Parent: parent, Node: from})
}

// Remove records removing n from parent.
func (j *Journal) Remove(parent, n *tree.Node, cleanup bool) {
	j.entries = append(j.entries, Entry{Op: OpRemove, Parent: parent, Node: n, Cleanup: cleanup})
}

// Move records relocating n within parent before the given anchor.
func (j *Journal) Move(parent, n, before *tree.Node) {
	j.entries = append(j.entries, Entry{Op: OpMove, Parent: parent, Node: n, Before: before})
}

// Attrs records a run of property changes for n. Empty runs are dropped.
func (j *Journal) Attrs(n *tree.Node, run []tree.Prop) {
	if len(run) == 0 {
		return
	}
	j.entries = append(j.entries, Entry{Op: OpAttrs, Node: n, Attrs: run})
}

// Append adds a raw entry.
func (j *Journal) Append(e Entry) {
	j.entries = append(j.entries, e)
}

// Len returns the number of pending entries.
func (j *Journal) Len() int { return len(j.entries) }

// Entries returns the pending entries. Callers must not modify them.
func (j *Journal) Entries() []Entry { return j.entries }

// Drain returns the pending entries and clears the journal.
func (j *Journal) Drain() []Entry {
	out := j.entries
	j.entries = nil
	return out
}

// Reset discards all pending entries.
func (j *Journal) Reset() { j.entries = nil }

// Count returns the number of pending entries with the given opcode.
func (j *Journal) Count(op Op) int {
	n := 0
	for _, e := range j.entries {
		if e.Op == op {
			n++
		}
	}
	return n
}

// String formats the pending entries one per line.
func (j *Journal) String() string {
	var b strings.Builder
	for _, e := range j.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// String formats a single entry.
func (e Entry) String() string {
	switch e.Op {
	case OpSetText:
		return fmt.Sprintf("SetText %s %q", tree.Describe(e.Node), e.Text)
	case OpInsert, OpMove:
		return fmt.Sprintf("%s %s into %s before %s", e.Op, tree.Describe(e.Node), tree.Describe(e.Parent), tree.Describe(e.Before))
	case OpTruncate:
		return fmt.Sprintf("Truncate %s from %s", tree.Describe(e.Parent), tree.Describe(e.Node))
	case OpRemove:
		return fmt.Sprintf("Remove %s from %s", tree.Describe(e.Node), tree.Describe(e.Parent))
	case OpAttrs:
		parts := make([]string, len(e.Attrs))
		for i, a := range e.Attrs {
			if a.Value == nil {
				parts[i] = a.Key + "=<removed>"
			} else {
				parts[i] = a.Key + "=" + FormatValue(a.Value)
			}
		}
		return fmt.Sprintf("Attrs %s %s", tree.Describe(e.Node), strings.Join(parts, " "))
	default:
		return e.Op.String()
	}
}
