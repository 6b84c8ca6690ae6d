// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps one JSON file per key under a directory (CLI default)
//   - [RedisCache] shares entries between server replicas
//   - [NullCache] disables caching
//
// Keys come from a [Keyer]. Layout keys hash the graph together with every
// configuration value that changes the layout; artifact keys hash the layout
// key with the output format and theme. [ScopedKeyer] prefixes keys for
// namespace isolation.
//
// Cache failures are never fatal to a caller that can recompute. Transient
// backend errors are wrapped with [Retryable] and retried by
// [RetryWithBackoff].
package cache
