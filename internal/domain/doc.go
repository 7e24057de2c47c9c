// Package domain contains the core domain entities and value objects for mooring.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (HTTP, signals, logging) and
// contains only the lifecycle state machine and its supporting value types.
//
// # Entities
//
//   - [State]: the three-value lifecycle state (not ready, ready, shutting down)
//   - [Beacon]: an outstanding unit-of-work token that defers shutdown
//   - [Handler]: a registered shutdown callback
//
// # Design Principles
//
// Domain entities are:
//   - Free of infrastructure dependencies
//   - Focused on the state machine's own rules and invariants
//   - Testable without mocks or external systems
package domain
