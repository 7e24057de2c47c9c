// Package terminate provides the default process-termination collaborator.
package terminate

import "os"

// OSExit is the default ports.Terminator: it force-exits the process with
// status 0, the platform's exit primitive.
type OSExit struct{}

// Terminate calls os.Exit(0).
func (OSExit) Terminate() {
	os.Exit(0)
}
