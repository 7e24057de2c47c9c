// Package mooring provides an embeddable lifecycle manager for processes
// run under a Kubernetes-class orchestrator.
//
// # Basic usage
//
//	m, err := mooring.New(mooring.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m.SignalReady()
//
//	// ... serve traffic ...
//
//	<-m.Shutdown()
//
// The probe server starts synchronously inside New, bound to
// [Config.Port] (9000 by default). Point your orchestrator's liveness and
// readiness probes at /health, /live and /ready on that port.
//
// # Shutdown
//
// Wire an external signal source to call Shutdown; mooring never installs
// a signal handler itself:
//
//	sigCh := make(chan os.Signal, 1)
//	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
//	go func() {
//	    <-sigCh
//	    <-m.Shutdown()
//	}()
//
// Register cleanup work with RegisterShutdownHandler; it runs, in
// registration order, once every beacon created with CreateBeacon has
// been retired with Die.
//
// # Events
//
// Pass [WithEventHandler] to observe state transitions:
//
//	m, err := mooring.New(cfg, mooring.WithEventHandler(myHandler))
//
// # Version
//
// Current version: 1.0.0. Minimum compatible version: 1.0.0.
package mooring
