// Package htmlx bridges descriptors and persistent trees to
// golang.org/x/net/html.
//
// Parse turns an HTML fragment into a descriptor list, so fixtures and CLI
// input can be written as markup. A "key" attribute becomes the descriptor's
// reconciliation key. Whitespace-only text between tags is dropped.
//
// Project builds an *html.Node forest from the rendered shape of a
// persistent tree: virtual nodes are flattened, internal and handler
// properties are omitted. String serializes that forest.
package htmlx
