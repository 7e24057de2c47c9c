// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [Logger]: structured logging abstraction
//   - [Terminator]: forces process exit as the final step of shutdown
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Concrete implementations live outside it: the os.Exit terminator in
// internal/adapters, and the zerolog and no-op loggers in pkg/log.
//
// This separation enables:
//   - Testing application logic with mock implementations
//   - Swapping infrastructure without changing business logic
//   - Clear boundaries and dependency direction
package ports
