package main

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/vango-dev/reconcile/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := newRootCmd(&stdout, io.Discard)
	cmd.SetArgs(append(args, "--color=false"))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeDoc(t *testing.T, dir, name, html string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func diffFixture(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return writeDoc(t, dir, "old.html", `<p class="a">x</p>`),
		writeDoc(t, dir, "new.html", `<p class="b">x</p><p>y</p>`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if out != "dev\n" {
		t.Errorf("version --short = %q, want %q", out, "dev\n")
	}
}

func TestDiffText(t *testing.T) {
	oldPath, newPath := diffFixture(t)

	out, err := execute(t, "diff", oldPath, newPath)
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	for _, want := range []string{"Attrs", `class="b"`, "Insert", "3 entries, 0 renders"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
}

func TestDiffNoChanges(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "a.html", `<div><b>same</b></div>`)

	out, err := execute(t, "diff", path, path)
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	if strings.TrimSpace(out) != "no changes" {
		t.Errorf("diff output = %q, want no changes", out)
	}
}

func countOps(doc journalDoc) map[string]int {
	ops := make(map[string]int)
	for _, r := range doc.Records {
		ops[r.Op]++
	}
	return ops
}

func TestDiffStructuredFormats(t *testing.T) {
	oldPath, newPath := diffFixture(t)
	want := map[string]int{"Attrs": 1, "Insert": 2}

	tests := []struct {
		format    string
		unmarshal func([]byte, any) error
	}{
		{"json", json.Unmarshal},
		{"yaml", yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "diff", oldPath, newPath, "--format", tt.format)
			if err != nil {
				t.Fatalf("diff error = %v", err)
			}
			var doc journalDoc
			if err := tt.unmarshal([]byte(out), &doc); err != nil {
				t.Fatalf("unmarshal: %v\n%s", err, out)
			}
			if doc.Entries != 3 {
				t.Errorf("entries = %d, want 3", doc.Entries)
			}
			if diff := cmp.Diff(want, countOps(doc)); diff != "" {
				t.Errorf("ops mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffHTML(t *testing.T) {
	oldPath, newPath := diffFixture(t)

	out, err := execute(t, "diff", oldPath, newPath, "--html")
	if err != nil {
		t.Fatalf("diff error = %v", err)
	}
	for _, want := range []string{`- <p class="a">x</p>`, `+ <p class="b">x</p>`, `+ <p>y</p>`} {
		if !strings.Contains(out, want) {
			t.Errorf("diff --html output missing %q:\n%s", want, out)
		}
	}
}

func TestColorFlagTogglesOutput(t *testing.T) {
	noColor := color.NoColor
	t.Cleanup(func() { color.NoColor = noColor })

	tests := []struct {
		flag        string
		wantNoColor bool
	}{
		{"--color=false", true},
		{"--color=true", false},
		{"--color=false", true},
	}
	for _, tt := range tests {
		cmd := newRootCmd(io.Discard, io.Discard)
		cmd.SetArgs([]string{"version", "--short", tt.flag})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute(%s) error = %v", tt.flag, err)
		}
		if color.NoColor != tt.wantNoColor {
			t.Errorf("after %s NoColor = %v, want %v", tt.flag, color.NoColor, tt.wantNoColor)
		}
	}
}

func TestHTMLDiffUnchangedLines(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	got := htmlDiff("<ul><li>a</li><li>b</li></ul>", "<ul><li>a</li><li>c</li></ul>")
	want := "  <ul>\n  <li>a</li>\n- <li>b</li>\n+ <li>c</li>\n  </ul>\n"
	if got != want {
		t.Errorf("htmlDiff() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	step1 := writeDoc(t, dir, "1.html", `<ul><li key="a">A</li><li key="b">B</li></ul>`)
	step2 := writeDoc(t, dir, "2.html", `<ul><li key="b">B</li><li key="c">C</li></ul>`)

	out, err := execute(t, "render", step1, step2)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if out != "<ul><li>B</li><li>C</li></ul>\n" {
		t.Errorf("render output = %q", out)
	}

	out, err = execute(t, "render", step1, step2, "--journal")
	if err != nil {
		t.Fatalf("render --journal error = %v", err)
	}
	if !strings.Contains(out, "# "+step2) || !strings.Contains(out, "Move") {
		t.Errorf("render --journal output missing step header or Move:\n%s", out)
	}
}

func TestCommandErrors(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "a.html", `<p>a</p>`)

	if _, err := execute(t, "diff", path); err == nil {
		t.Error("diff with one argument: expected error")
	}
	if _, err := execute(t, "render"); err == nil {
		t.Error("render without files: expected error")
	}
	if _, err := execute(t, "diff", filepath.Join(t.TempDir(), "missing.html"), path); !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("diff missing file error = %v, want fs.ErrNotExist", err)
	}

	_, err := execute(t, "version", "--format", "xml")
	if !errors.HasCode(err, "E403") {
		t.Fatalf("--format xml error = %v, want E403", err)
	}
	var buf bytes.Buffer
	printError(&buf, err)
	if !strings.Contains(buf.String(), "E403") {
		t.Errorf("printError() = %q, want code", buf.String())
	}
}

func TestServe(t *testing.T) {
	var stdout bytes.Buffer
	a := &app{stdout: &stdout, stderr: io.Discard}
	if err := a.load(pflag.NewFlagSet("test", pflag.ContinueOnError)); err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(base + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("serve() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Listening on http://"+ln.Addr().String()) {
		t.Errorf("serve output = %q", stdout.String())
	}
}
