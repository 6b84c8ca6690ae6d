// Package httputil fetches workflow graph documents over HTTP.
//
// # Overview
//
// The CLI accepts an http(s) URL wherever it accepts a graph file, so a
// graph can be pulled straight from the service that tracks the workflow.
// This package provides the client used for that:
//
//   - [Fetcher]: GET with retries and an optional response cache
//
// # Fetching
//
//	f := httputil.NewFetcher(c)
//	data, err := f.Get(ctx, "https://ci.example/api/workflows/42/graph")
//	g, err := graph.UnmarshalGraph(data)
//
// Responses are cached in any [cache.Cache] for [DefaultTTL].
//
// # Retry
//
// [Fetcher.Get] re-runs the request through [cache.Retry] for transient
// failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// The delay doubles after each failed attempt. Other errors, including 404,
// are returned immediately.
//
// [cache.Cache]: github.com/matzehuels/workflowgraph/pkg/cache.Cache
// [cache.Retry]: github.com/matzehuels/workflowgraph/pkg/cache.Retry
package httputil
