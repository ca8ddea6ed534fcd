// Package status - server.go
//
// This file implements the optional status server of a running session.
//
// Routes:
//   - GET /status: the running result and the friction brake, as JSON
//   - GET /events: websocket stream of session events (hub.go)
//
// The server is read-only: it never drives the session, it only observes the
// Player through Source. It is disabled unless status.addr is configured.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/brake"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
)

const shutdownTimeout = 5 * time.Second

// Source is the session the server reports on.
type Source interface {
	Profile() string
	Snapshot() result.Snapshot
	Brake() *brake.FrictionBrake
}

// Report is the body of GET /status.
type Report struct {
	Profile  string          `json:"profile"`
	Result   result.Snapshot `json:"result"`
	Brake    int             `json:"brake"`
	BrakeMax int             `json:"brake_max"`
	Clients  int             `json:"clients"`
}

// Server serves the status routes.
type Server struct {
	addr   string
	src    Source
	hub    *Hub
	log    *slog.Logger
	router chi.Router
}

// New creates a status server for src. Events published to hub are streamed
// to websocket clients.
func New(addr string, src Source, hub *Hub, log *slog.Logger) *Server {
	s := &Server{addr: addr, src: src, hub: hub, log: log}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         60 * 15,
	}))
	r.Get("/status", s.handleStatus)
	r.Get("/events", s.handleEvents)
	s.router = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Report builds the current status report.
func (s *Server) Report() Report {
	b := s.src.Brake()
	return Report{
		Profile:  s.src.Profile(),
		Result:   s.src.Snapshot(),
		Brake:    b.Value(),
		BrakeMax: b.Max(),
		Clients:  s.hub.Clients(),
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Report()); err != nil {
		s.log.Warn("status encode failed", "error", err)
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(s.Report())
	if err != nil {
		http.Error(w, "status unavailable", http.StatusInternalServerError)
		return
	}
	s.hub.Serve(w, r, data)
}

// Run serves until ctx is cancelled, then shuts down and disconnects the
// websocket clients.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("status server listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.hub.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
