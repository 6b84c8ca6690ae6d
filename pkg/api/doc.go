// Package api serves the layout pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz     liveness probe
//	POST /v1/layout   graph JSON in, layout JSON out
//	POST /v1/render   graph JSON in, one rendered artifact out
//	GET  /metrics     Prometheus exposition (when a gatherer is configured)
//
// Both POST routes accept these query parameters:
//
//	viz       workflow (default) or nodelink
//	refresh   bypass cached results
//
// /v1/render additionally takes format (svg, json, dot, png, pdf),
// detailed, hover, title and scale.
//
// # Errors
//
// Failures are returned as JSON:
//
//	{"code": "UNKNOWN_NODE", "message": "...", "request_id": "..."}
//
// Invalid requests map to 400, inconsistent graphs to 422, and unavailable
// converters to 501.
//
// # Request IDs
//
// Every response carries an X-Request-ID header. A well-formed incoming
// header is kept, otherwise a new UUID is issued. The same id appears in
// log lines and error bodies.
package api
