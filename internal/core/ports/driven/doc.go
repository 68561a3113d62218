// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AttachmentStore: Case and image attachment persistence
//
// # Optional Interfaces
//
//   - URLBuilder: Download URL derivation. When nil, only embedded data
//     URLs are rendered.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
