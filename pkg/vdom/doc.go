// Package vdom provides the descriptor model consumed by the reconciler.
//
// A descriptor is a transient, declarative description of desired content,
// built fresh for every render pass. It carries no identity across passes:
// the reconciler matches descriptors against the persistent tree purely by
// position and key.
//
// # Core Types
//
// Node is a closed tagged union selected by Kind: text, number, array,
// element, fragment, component and slot. Arrays are flattening markers and
// never introduce a tree level. Props holds element attributes (event
// handlers included) and component inputs.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P(Text("Content"), 42),
//	    OnClick(handler),
//	)
//
// # Components
//
// A Component turns props and slot children into a new descriptor. The result
// is a Future so expansion may complete asynchronously; Ready wraps an
// immediate result and Async runs the body on its own goroutine.
package vdom
