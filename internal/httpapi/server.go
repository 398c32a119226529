// Package httpapi exposes the ping/pong demo machine over HTTP for cmd/hsm
// serve. Each session runs one hierarchy in its own goroutine, fed by a
// channel-backed event source.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/hsm"
	"github.com/aretw0/hsm/internal/game"
)

// Server owns the live sessions.
type Server struct {
	baseCtx context.Context
	logger  *slog.Logger
	hooks   hsm.Hooks

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	events  chan game.Event
	ended   chan struct{}
	done    chan struct{}
	endOnce sync.Once

	// Written once before done is closed, read only after.
	score game.Score
	err   error
}

// end exhausts the session's event source. The events channel itself is
// never closed: handlers send on it, and a send on a closed channel panics.
func (s *session) end() {
	s.endOnce.Do(func() { close(s.ended) })
}

// source adapts the session's channels into the event source the machine
// consumes. Once ended fires it reports exhaustion, persistently.
type source struct {
	events  <-chan game.Event
	ended   <-chan struct{}
	drained bool
}

func (s *source) Next(ctx context.Context) (game.Event, bool, error) {
	var zero game.Event
	if s.drained {
		return zero, false, nil
	}
	// An end that has already been requested wins over queued events.
	select {
	case <-s.ended:
		s.drained = true
		return zero, false, nil
	default:
	}
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case <-s.ended:
		s.drained = true
		return zero, false, nil
	case ev := <-s.events:
		return ev, true, nil
	}
}

// NewHandler creates the HTTP handler. Session machines run on ctx:
// cancelling it (server shutdown) fails any still-running session instead of
// leaving its goroutine blocked on events forever. The optional metrics
// handler is mounted at /metrics.
func NewHandler(ctx context.Context, logger *slog.Logger, hooks hsm.Hooks, metrics http.Handler) http.Handler {
	srv := &Server{
		baseCtx:  ctx,
		logger:   logger,
		hooks:    hooks,
		sessions: make(map[string]*session),
	}

	r := chi.NewRouter()
	r.Post("/sessions/{id}", srv.create)
	r.Post("/sessions/{id}/events", srv.push)
	r.Post("/sessions/{id}/end", srv.endSession)
	r.Get("/sessions/{id}", srv.get)
	r.Delete("/sessions/{id}", srv.remove)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

type createRequest struct {
	Start game.Score `json:"start"`
}

type eventRequest struct {
	Event string `json:"event"`
}

type sessionResponse struct {
	Status string      `json:"status"`
	Score  *game.Score `json:"score,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req createRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid body")
			return
		}
	}

	sess := &session{
		events: make(chan game.Event),
		ended:  make(chan struct{}),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	if _, exists := s.sessions[id]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "session already exists")
		return
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	logger := s.logger.With("session", id)
	// The machine outlives the request; it ends with the session or with
	// the server's base context.
	go func() {
		src := &source{events: sess.events, ended: sess.ended}
		score, err := game.Run(s.baseCtx, src, req.Start,
			hsm.WithLogger(logger),
			hsm.WithHooks(s.hooks),
		)
		sess.score = score
		sess.err = err
		close(sess.done)
		if err != nil {
			logger.Error("session failed", "error", err)
			return
		}
		logger.Info("session lifted", "score", score)
	}()

	writeJSON(w, http.StatusCreated, sessionResponse{Status: "running"})
}

func (s *Server) push(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	ev, err := game.ParseEvent(req.Event)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A completed end always refuses the event, even if the machine has
	// not drained its source yet.
	select {
	case <-sess.ended:
		writeError(w, http.StatusConflict, "session already terminated")
		return
	case <-sess.done:
		writeError(w, http.StatusConflict, "session already terminated")
		return
	default:
	}

	select {
	case sess.events <- ev:
		w.WriteHeader(http.StatusAccepted)
	case <-sess.ended:
		writeError(w, http.StatusConflict, "session already terminated")
	case <-sess.done:
		writeError(w, http.StatusConflict, "session already terminated")
	case <-r.Context().Done():
		writeError(w, http.StatusRequestTimeout, "request cancelled")
	}
}

// endSession exhausts the session's event source, forcing the machine to
// lift with whatever score it has accumulated.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	sess.end()
	w.WriteHeader(http.StatusAccepted)
}

// remove force-ends the session and frees its ID for reuse.
func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	sess.end()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(r)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	select {
	case <-sess.done:
		if sess.err != nil {
			writeJSON(w, http.StatusOK, sessionResponse{Status: "failed", Error: sess.err.Error()})
			return
		}
		score := sess.score
		writeJSON(w, http.StatusOK, sessionResponse{Status: "done", Score: &score})
	default:
		writeJSON(w, http.StatusOK, sessionResponse{Status: "running"})
	}
}

func (s *Server) lookup(r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
