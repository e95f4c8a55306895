package journal

import (
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/pkg/tree"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpSetText, "SetText"},
		{OpInsert, "Insert"},
		{OpTruncate, "Truncate"},
		{OpRemove, "Remove"},
		{OpMove, "Move"},
		{OpAttrs, "Attrs"},
		{Op(0x7f), "Op(0x7f)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestAppendOrderAndDrain(t *testing.T) {
	j := New()
	parent := tree.NewElement("div")
	child := tree.NewText("x")

	j.Insert(parent, child, nil)
	j.SetText(child, "y")
	j.Attrs(parent, nil)
	j.Attrs(parent, []tree.Prop{{Key: "id", Value: "a"}})
	j.Remove(parent, child, true)

	if j.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (empty attr run dropped)", j.Len())
	}
	wantOps := []Op{OpInsert, OpSetText, OpAttrs, OpRemove}
	for i, e := range j.Entries() {
		if e.Op != wantOps[i] {
			t.Errorf("entry %d op = %v, want %v", i, e.Op, wantOps[i])
		}
	}
	if j.Count(OpAttrs) != 1 {
		t.Errorf("Count(OpAttrs) = %d, want 1", j.Count(OpAttrs))
	}

	drained := j.Drain()
	if len(drained) != 4 || j.Len() != 0 {
		t.Errorf("Drain returned %d, journal left with %d", len(drained), j.Len())
	}
}

func TestStringAndRecords(t *testing.T) {
	j := New()
	n := tree.NewElement("button")
	j.Attrs(n, []tree.Prop{
		{Key: "class", Value: "big"},
		{Key: "onclick", Value: func() {}},
		{Key: "title", Value: nil},
	})

	s := j.String()
	for _, want := range []string{"Attrs <button>", "class=big", "onclick=func", "title=<removed>"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q: %s", want, s)
		}
	}

	recs := Records(j.Entries())
	if len(recs) != 1 || recs[0].Op != "Attrs" || len(recs[0].Attrs) != 3 {
		t.Fatalf("records = %+v", recs)
	}
	if !recs[0].Attrs[2].Removed {
		t.Error("title should be marked removed")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"s", "s"},
		{true, "true"},
		{42, "42"},
		{int64(-3), "-3"},
		{2.5, "2.5"},
		{[]int{1}, "[1]"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
