// Package tree implements the persistent tree the reconciler commits to.
//
// A Node is element, text, virtual (fragment or component host) or other.
// Children form a singly linked sibling chain read through FirstChild and
// NextSibling. Element and virtual nodes own a property association list kept
// sorted by key; every mutator preserves that order, which lets the
// reconciler diff attributes with a single linear merge.
//
// Property keys fall in three groups:
//   - internal keys start with "$" ($render, $props, $key) and are never rendered
//   - handler keys start with "on" and are routed through the node's Adapter
//   - everything else is a rendered attribute
//
// Only the journal applier mutates a tree; the diff pass reads it.
package tree
