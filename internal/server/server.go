// Package server exposes the tutor proxy, the topic catalogue and live
// session streams over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/chemlab/internal/dynamo"
	"github.com/san-kum/chemlab/internal/experiment"
	"github.com/san-kum/chemlab/internal/logging"
	"github.com/san-kum/chemlab/internal/sim"
	"github.com/san-kum/chemlab/internal/tutor"
)

const (
	writeWait       = 10 * time.Second
	minStreamPeriod = 50 * time.Millisecond
	shutdownWait    = 5 * time.Second
)

type Deps struct {
	Registry *experiment.Registry
	Manager  *sim.Manager
	Tutor    *tutor.Tutor
	Metrics  http.Handler
	Logger   logging.Logger
}

type Server struct {
	registry *experiment.Registry
	manager  *sim.Manager
	tutor    *tutor.Tutor
	logger   logging.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

func New(deps Deps) *Server {
	s := &Server{
		registry: deps.Registry,
		manager:  deps.Manager,
		tutor:    deps.Tutor,
		logger:   logging.OrNoop(deps.Logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	if s.registry == nil {
		s.registry = experiment.NewRegistry()
	}
	if s.tutor == nil {
		s.tutor = tutor.New(nil)
	}

	s.mux.HandleFunc("/api/ai/tutor", s.tutor.HandleAsk)
	s.mux.HandleFunc("/api/hints", tutor.HandleHints)
	s.mux.HandleFunc("/api/health", s.tutor.HandleHealth)
	s.mux.HandleFunc("GET /api/topics", s.handleTopics)
	if s.manager != nil {
		s.mux.HandleFunc("GET /api/sessions/{topic}", s.handleSnapshot)
		s.mux.HandleFunc("DELETE /api/sessions/{topic}", s.handleCloseSession)
		s.mux.HandleFunc("GET /ws/sessions/{topic}", s.handleStream)
	}
	if deps.Metrics != nil {
		s.mux.Handle("GET /metrics", deps.Metrics)
	}
	return s
}

// Handler returns the routes wrapped with permissive CORS headers.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down and stops
// every open session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "listening", logging.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeSessions()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeSessions()
	s.logger.Info(context.Background(), "server stopped")
	return err
}

func (s *Server) closeSessions() {
	if s.manager != nil {
		s.manager.CloseAll()
	}
}

type topicInfo struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Kind dynamo.Kind `json:"kind"`
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics := s.registry.Topics()
	out := make([]topicInfo, 0, len(topics))
	for _, id := range topics {
		out = append(out, topicInfo{ID: id, Name: tutor.Name(id), Kind: s.registry.KindFor(id)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	session, err := s.manager.Open(r.PathValue("topic"))
	if err != nil {
		tutor.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.Close(r.PathValue("topic")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dynamo.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		tutor.WriteError(w, status, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
