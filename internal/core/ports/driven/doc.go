// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Scraper: Fetches the main content of a web page
//   - EmbeddingService: Turns text into a fixed-dimension vector
//   - VectorStore: Hosted vector index (upsert, top-k query, stats)
//   - PostProcessor: Splits and filters document text into chunks
//   - FallbackCorpus: Static documents used when scraping fails
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Index run history. Without it, runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
