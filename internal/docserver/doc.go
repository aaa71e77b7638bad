// Package docserver serves a generated AsyncAPI document over HTTP.
//
// A [Holder] owns the current snapshot of the document built from a
// manifest file and can rebuild it when the file changes. A [Server]
// exposes the snapshot:
//
//	GET /               HTML page rendering the document
//	GET /asyncapi.json  document as JSON (ETag / If-None-Match)
//	GET /asyncapi.yaml  document as YAML (ETag / If-None-Match)
//	GET /healthz        liveness and snapshot summary
//	GET /metrics        Prometheus metrics
package docserver
