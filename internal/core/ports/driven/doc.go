// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PDFExtractor: Extracts page-level text from a PDF file
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Language model completion
//   - VectorIndex: In-memory vector storage and similarity search
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Conversation persistence for the chat surface.
//     Without it, history lives only for the process lifetime.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
