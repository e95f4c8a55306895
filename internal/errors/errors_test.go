package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"unsupported kind", "E101", "Unsupported descriptor kind", CategoryDescription},
		{"slot", "E102", "Slot descriptors are not supported", CategoryDescription},
		{"expansion", "E201", "Component expansion failed", CategoryExpansion},
		{"unknown opcode", "E301", "Unknown journal opcode", CategoryJournal},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E101").WithDetail("kind 42")
	if got, want := err.Error(), "E101: Unsupported descriptor kind (kind 42)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = Newf(CategoryCLI, "file %q not found", "a.html")
	if got, want := err.Error(), `file "a.html" not found`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E201").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	wrapped := fmt.Errorf("render: %w", err)
	var e *Error
	if !stderrors.As(wrapped, &e) {
		t.Fatal("errors.As should find *Error")
	}
	if e.Code != "E201" {
		t.Errorf("Code = %q, want E201", e.Code)
	}
	if !stderrors.Is(wrapped, New("E201")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(wrapped, New("E301")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestHasCode(t *testing.T) {
	inner := New("E301")
	outer := New("E201").Wrap(fmt.Errorf("apply: %w", inner))

	if !HasCode(outer, "E201") {
		t.Error("HasCode(outer, E201) = false")
	}
	if !HasCode(outer, "E301") {
		t.Error("HasCode(outer, E301) = false")
	}
	if HasCode(outer, "E101") {
		t.Error("HasCode(outer, E101) = true")
	}
	if HasCode(stderrors.New("plain"), "E101") {
		t.Error("HasCode(plain) = true")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E201") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("E102")
	if got := FromError(fmt.Errorf("x: %w", orig), "E201"); got != orig {
		t.Error("FromError should return an existing *Error unchanged")
	}
	got := FromError(stderrors.New("io"), "E402")
	if got.Code != "E402" || got.Wrapped == nil {
		t.Errorf("FromError = %+v, want code E402 with cause", got)
	}
}

func TestFormat(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	out := New("E101").WithDetail("kind 42").Format()
	for _, want := range []string{"ERROR E101: Unsupported descriptor kind", "kind 42", "Hint: "} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestRegistryCodes(t *testing.T) {
	for _, code := range Codes() {
		tmpl, ok := Lookup(code)
		if !ok {
			t.Fatalf("Lookup(%q) failed", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %q incomplete: %+v", code, tmpl)
		}
	}
}
