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
//   - CatalogProvider: Builds catalog snapshots (TOML directory, in-memory)
//   - CommandRunner: Spawns processes for command specifications
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Execution history persistence. Without it, results
//     are still delivered but not recorded.
//   - CatalogFetcher: Remote catalog download. Only `catalog fetch` needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
