// Package redis provides the Redis-backed vote limiter and the client it runs on.
//
// Every command goes through two hooks: MetricsHook records Prometheus counters and
// CircuitBreakerHook fails fast while Redis is unhealthy, which lets the vote path
// fall back to allowing votes instead of stalling on timeouts.
package redis
