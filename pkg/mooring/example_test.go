package mooring_test

import (
	"fmt"

	"github.com/bft-labs/mooring/pkg/mooring"
)

// noExit replaces the default terminator, which calls os.Exit(0) as soon
// as the shutdown sequence completes.
type noExit struct{}

func (noExit) Terminate() {}

// ExampleNew demonstrates embedding mooring in an application.
func ExampleNew() {
	m, err := mooring.New(mooring.Config{Ephemeral: true, GracePeriod: 0}, mooring.WithTerminator(noExit{}))
	if err != nil {
		fmt.Printf("failed to create mooring: %v\n", err)
		return
	}

	fmt.Printf("ready before signal: %v\n", m.IsServerReady())
	m.SignalReady()
	fmt.Printf("ready after signal: %v\n", m.IsServerReady())

	<-m.Shutdown()
	fmt.Printf("shutting down: %v\n", m.IsServerShuttingDown())

	// Output:
	// ready before signal: false
	// ready after signal: true
	// shutting down: true
}

// Example_withEventHandler demonstrates observing lifecycle transitions.
func Example_withEventHandler() {
	handler := &myEventHandler{}

	m, err := mooring.New(mooring.Config{Ephemeral: true}, mooring.WithEventHandler(handler))
	if err != nil {
		fmt.Printf("failed to create mooring: %v\n", err)
		return
	}

	m.SignalReady()

	// Output: state changed: SERVER_IS_NOT_READY -> SERVER_IS_READY (reason: signalReady)
}

// myEventHandler implements mooring.EventHandler.
type myEventHandler struct {
	mooring.BaseEventHandler
}

func (h *myEventHandler) OnStateChange(event mooring.StateChangeEvent) {
	fmt.Printf("state changed: %s -> %s (reason: %s)\n", event.Previous, event.Current, event.Reason)
}

// Example_withShutdownHandler demonstrates registering cleanup work.
func Example_withShutdownHandler() {
	m, err := mooring.New(mooring.Config{Ephemeral: true, GracePeriod: 0}, mooring.WithTerminator(noExit{}))
	if err != nil {
		fmt.Printf("failed to create mooring: %v\n", err)
		return
	}

	m.RegisterShutdownHandler(func() error {
		fmt.Println("closing database connections")
		return nil
	})

	<-m.Shutdown()

	// Output: closing database connections
}

// Example_withBeacon demonstrates deferring shutdown until in-flight work
// finishes.
func Example_withBeacon() {
	m, err := mooring.New(mooring.Config{Ephemeral: true, GracePeriod: 0}, mooring.WithTerminator(noExit{}))
	if err != nil {
		fmt.Printf("failed to create mooring: %v\n", err)
		return
	}

	beacon, err := m.CreateBeacon("long-running-request")
	if err != nil {
		fmt.Printf("failed to create beacon: %v\n", err)
		return
	}

	done := m.Shutdown()

	if err := beacon.Die(); err != nil {
		fmt.Printf("failed to retire beacon: %v\n", err)
		return
	}
	<-done
	fmt.Println("shutdown completed after beacon retired")

	// Output: shutdown completed after beacon retired
}
