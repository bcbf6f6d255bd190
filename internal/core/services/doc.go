// Package services implements the driving port interfaces.
// Services contain the core business logic: loading and chunking the
// corpus, batched embedding, index construction, signature-keyed caching
// and retrieval-augmented answering. Services orchestrate calls to
// driven ports (adapters).
package services
