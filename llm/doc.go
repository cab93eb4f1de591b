// Package llm defines the reply-backend contract and an OpenAI-compatible
// HTTP implementation. The orchestrator core treats a Provider as an opaque
// capability with unspecified latency; failures are never retried by the
// core, they propagate to the caller of Step.
package llm
