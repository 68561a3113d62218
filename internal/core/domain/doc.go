// Package domain defines the core business entities for caseview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Image: One displayable attachment image
//   - ImageSet: The ordered images resolved for a case
//   - Case: A record that may link to a parent case
//   - Viewer: The zoom/pan/navigation state machine
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
