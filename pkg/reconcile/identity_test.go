package reconcile

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

type point struct{ X, Y int }

type withSlice struct{ Items []int }

func makeHandler() func() { return func() {} }

func makeCapturing(id string) func() string { return func() string { return id } }

func TestSame(t *testing.T) {
	fn := func() {}
	closure := makeCapturing("a")
	m := map[string]int{"a": 1}
	s := []int{1, 2, 3}
	p := &point{1, 2}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"equal strings", "a", "a", true},
		{"different strings", "a", "b", false},
		{"int vs float", 1, 1.0, false},
		{"equal structs", point{1, 2}, point{1, 2}, true},
		{"same func", fn, fn, true},
		{"same literal", makeHandler(), makeHandler(), true},
		{"different funcs", fn, makeHandler(), false},
		{"same closure", closure, closure, true},
		{"rebuilt closure", makeCapturing("a"), makeCapturing("a"), false},
		{"same map", m, m, true},
		{"equal maps", m, map[string]int{"a": 1}, false},
		{"same slice", s, s, true},
		{"resliced", s, s[:2], false},
		{"same pointer", p, p, true},
		{"equal pointees", p, &point{1, 2}, false},
		{"uncomparable structs", withSlice{[]int{1}}, withSlice{[]int{1}}, true},
		{"uncomparable structs differ", withSlice{[]int{1}}, withSlice{[]int{2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(DefaultResolver, tt.a, tt.b); got != tt.want {
				t.Errorf("Same(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestShallowEqual(t *testing.T) {
	nested := map[string]int{"x": 1}

	tests := []struct {
		name string
		a, b vdom.Props
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and empty", nil, vdom.Props{}, true},
		{"equal", vdom.Props{"a": 1, "b": "x"}, vdom.Props{"b": "x", "a": 1}, true},
		{"missing key", vdom.Props{"a": 1}, vdom.Props{"b": 1}, false},
		{"extra key", vdom.Props{"a": 1}, vdom.Props{"a": 1, "b": 2}, false},
		{"changed value", vdom.Props{"a": 1}, vdom.Props{"a": 2}, false},
		{"same nested ref", vdom.Props{"m": nested}, vdom.Props{"m": nested}, true},
		{"equal nested copy", vdom.Props{"m": nested}, vdom.Props{"m": map[string]int{"x": 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShallowEqual(DefaultResolver, tt.a, tt.b); got != tt.want {
				t.Errorf("ShallowEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomResolver(t *testing.T) {
	r := ResolverFunc(func(any) any { return struct{}{} })
	if !Same(r, "a", "b") {
		t.Error("custom resolver not consulted")
	}
}
