// Package live serves reconciliation sessions over WebSocket.
//
// Each connection owns one persistent root. The client sends successive
// HTML documents; for every document the server reconciles the root
// against it, applies the journal and replies with the journal records and
// the resulting HTML:
//
//	→ {"type":"render","html":"<ul><li key=\"a\">A</li></ul>"}
//	← {"type":"patch","seq":1,"entries":2,"records":[...],"html":"<ul><li>A</li></ul>"}
//
// Connecting with /live?encoding=binary switches patch and error replies to
// binary frames from package protocol. Pongs stay JSON text messages.
//
// The HTTP surface is a chi router:
//
//	GET  /live     WebSocket endpoint
//	POST /diff     one-shot diff of {"old": ..., "new": ...}
//	GET  /healthz  liveness
//	GET  /metrics  Prometheus exposition (when a gatherer is configured)
package live
