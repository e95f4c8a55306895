// Package vtest provides testing helpers for code built on the reconciler.
//
// A Harness owns one persistent root. Each Render call reconciles a new
// descriptor into it and applies the result, so successive calls exercise
// the same incremental path a live session does.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.New(t)
//	    h.Render(Counter(0))
//	    h.ExpectHTML("<button>0</button>")
//
//	    stats := h.Render(Counter(1))
//	    vtest.ExpectOps(t, stats, map[journal.Op]int{journal.OpSetText: 1})
//	}
//
// # Render Assertions
//
// Assert on the projected HTML of the persistent tree:
//
//	h.ExpectContains("Welcome")
//	h.ExpectNotContains("Login")
//	h.ExpectAttribute("class", "btn-primary")
//
// ExpectRoundTrip checks that the tree matches a direct rendering of the
// last descriptor.
package vtest
