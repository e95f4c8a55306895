package htmlx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/tree"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestParse(t *testing.T) {
	desc, err := ParseString(`
		<ul class="list">
			<li key="a">Alpha</li>
			<li key="b" data-x="1">Beta <b>bold</b></li>
		</ul>
		<!-- dropped -->
		tail`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	want := vdom.List(
		&vdom.Node{
			Kind:  vdom.KindElement,
			Tag:   "ul",
			Attrs: vdom.Props{"class": "list"},
			Children: []*vdom.Node{
				{Kind: vdom.KindElement, Tag: "li", Key: "a", Attrs: vdom.Props{}, Children: []*vdom.Node{vdom.Text("Alpha")}},
				{Kind: vdom.KindElement, Tag: "li", Key: "b", Attrs: vdom.Props{"data-x": "1"}, Children: []*vdom.Node{
					vdom.Text("Beta "),
					{Kind: vdom.KindElement, Tag: "b", Attrs: vdom.Props{}, Children: []*vdom.Node{vdom.Text("bold")}},
				}},
			},
		},
		vdom.Text("\n\t\ttail"),
	)
	if diff := cmp.Diff(want, desc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	desc, err := ParseString("  \n ")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if desc.Kind != vdom.KindArray || len(desc.Children) != 0 {
		t.Errorf("ParseString(blank) = %+v, want empty array", desc)
	}
}

func TestParseErrorCode(t *testing.T) {
	_, err := Parse(failingReader{})
	if !errors.HasCode(err, "E402") {
		t.Errorf("Parse() error = %v, want E402", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

var errBroken = errors.Newf(errors.CategoryCLI, "broken reader")

func TestProject(t *testing.T) {
	root := tree.NewFragment()
	div := tree.NewElement("div")
	div.SetAttr("class", "box")
	div.SetAttr("hidden", true)
	div.SetAttr("disabled", false)
	div.SetProp("onclick", func() {})
	div.SetProp(tree.PropKey, "k")
	root.InsertBefore(div, nil)

	frag := tree.NewFragment()
	div.InsertBefore(frag, nil)
	frag.InsertBefore(tree.NewText("a<b"), nil)
	div.InsertBefore(tree.NewText(" & c"), nil)
	img := tree.NewElement("img")
	img.SetAttr("src", "x.png")
	div.InsertBefore(img, nil)

	got, err := String(root)
	if err != nil {
		t.Fatalf("String() error = %v", err)
	}
	want := `<div class="box" hidden="">a&lt;b &amp; c<img src="x.png"/></div>`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAttribute(t *testing.T) {
	tests := []struct {
		value  any
		want   string
		wantOK bool
	}{
		{"v", "v", true},
		{true, "", true},
		{false, "", false},
		{nil, "", false},
		{3, "3", true},
		{2.5, "2.5", true},
		{int64(7), "7", true},
	}

	for _, tt := range tests {
		a, ok := Attribute("k", tt.value)
		if ok != tt.wantOK || a.Val != tt.want {
			t.Errorf("Attribute(%v) = %q, %v, want %q, %v", tt.value, a.Val, ok, tt.want, tt.wantOK)
		}
	}
}
