// Package rest provides the resilient request-execution engine behind every
// typed API call: it dispatches a logical operation, retries it under
// transient-failure conditions with status-keyed delays, classifies terminal
// failures, and returns a uniform Result envelope.
//
// Retries
//   - A logical operation is attempted up to MaxAttempts times (default 5).
//   - A 2xx response ends the loop immediately.
//   - 401 responses wait UnauthorizedRetryDelay (default 1ms) before the
//     first retry and BaseDelay afterwards; challenge/response auth schemes
//     legitimately answer the first round trip with 401.
//   - 429 responses wait BaseDelay (default 10s) and are counted in the
//     client stats. The Retry-After header is not consulted.
//   - Any other non-2xx response waits BaseDelay.
//   - When attempts are exhausted the last response is classified by its
//     status code; there is no separate "retries exhausted" failure kind.
//   - Network-level faults abort the loop at once: name-resolution failures
//     map to KindNetworkUnavailable, cancellation and anything else to
//     KindUnknown with the original cause attached.
//
// Notes
//   - Request bodies are re-sent by rebuilding the http.Request on each attempt.
//   - The caller's context is honored during both the network call and the
//     inter-attempt delay.
//   - Execute and its method-specific wrappers never return a Go error; every
//     failure is captured in the Result envelope.
package rest
