// Package probeserver implements the fixed three-path HTTP surface an
// orchestrator polls: /health, /live and /ready. Every handler is a pure
// read of the lifecycle state; none of them block or mutate anything.
package probeserver

import (
	"context"
	"net"
	"net/http"

	"github.com/bft-labs/mooring/internal/domain"
	"github.com/bft-labs/mooring/internal/ports"
)

const contentType = "text/plain; charset=utf-8"

// StateReader is the narrow, read-only view of the lifecycle state the
// probe handlers need.
type StateReader interface {
	Get() domain.State
}

// Server is the orchestrator-facing HTTP server. It binds its listener at
// construction time, so Addr is available for a caller that asked for an
// ephemeral port (addr ":0") as soon as New returns.
type Server struct {
	state    StateReader
	logger   ports.Logger
	listener net.Listener
	http     *http.Server
}

// New builds and starts a Server bound to addr. An empty port (":0" or
// "host:0") binds an ephemeral port; call Addr() to discover it.
func New(addr string, state StateReader, logger ports.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{state: state, logger: logger, listener: ln}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/ready", s.handleReady)

	s.http = &http.Server{Handler: mux}

	go func() {
		if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Error("probe server stopped unexpectedly", ports.Err(err))
		}
	}()

	return s, nil
}

// Addr returns the bound listener address, including the port the kernel
// assigned when the caller requested an ephemeral one.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close shuts the server down, waiting up to ctx's deadline for in-flight
// probe requests (there should rarely be any given the 500ms poll
// cadences orchestrators use) to finish.
func (s *Server) Close(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !isGet(w, r) {
		return
	}
	switch s.state.Get() {
	case domain.StateReady:
		respond(w, http.StatusOK, domain.StateReady.String())
	case domain.StateShuttingDown:
		respond(w, http.StatusInternalServerError, domain.StateShuttingDown.String())
	default:
		respond(w, http.StatusInternalServerError, domain.StateNotReady.String())
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if !isGet(w, r) {
		return
	}
	if s.state.Get() == domain.StateShuttingDown {
		respond(w, http.StatusInternalServerError, domain.StateShuttingDown.String())
		return
	}
	respond(w, http.StatusOK, "SERVER_IS_NOT_SHUTTING_DOWN")
}

// handleReady deliberately keeps reporting ready during shutdown: the
// orchestrator should not rip the endpoint out of rotation the instant
// shutdown starts, only once /health turns unhealthy.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !isGet(w, r) {
		return
	}
	switch s.state.Get() {
	case domain.StateReady, domain.StateShuttingDown:
		respond(w, http.StatusOK, domain.StateReady.String())
	default:
		respond(w, http.StatusInternalServerError, domain.StateNotReady.String())
	}
}

func isGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
