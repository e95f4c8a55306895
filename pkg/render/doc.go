// Package render interprets descriptor trees directly into HTML.
//
// The output is the shape a persistent tree takes after the descriptor has
// been reconciled into it and applied, which makes the renderer a reference
// for checking the reconciler:
//
//	root := reconcile.NewRoot(nil)
//	root.Render(ctx, desc)
//	got, _ := htmlx.String(root.Node())
//	want, _ := render.NewRenderer(render.RendererConfig{}).RenderToString(ctx, desc)
//
// Attributes are emitted in key order, handlers and internal properties are
// skipped, and boolean attributes follow htmlx.Attribute. Components are
// rendered and awaited inline; nesting is bounded by RendererConfig.MaxDepth.
package render
