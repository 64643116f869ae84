// Package domain defines the core business entities for Runbook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Node: One entry in a category's tree, grouping or executable
//   - Snapshot: An immutable, fully-loaded instance of the catalog
//   - NavigationStack: The user's location inside one category's tree
//   - SelectionSet: Nodes marked for batched execution
//   - ExecutionRequest/ExecutionResult: The execution wire types
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
