// Package server is the command service: it stores rules, moves shutters on
// request and pushes a change event for every accepted mutation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sse "github.com/r3labs/sse/v2"
	"github.com/wheelibin/shutters/internal/constants"
	"github.com/wheelibin/shutters/internal/models"
)

type ruleRepo interface {
	Add(encoded models.EncodedRule) (string, error)
	Update(id string, encoded models.EncodedRule) error
	Delete(id string) error
	Get(id string) (models.EncodedRule, error)
	All() (map[string]models.EncodedRule, error)
}

type shutterRepo interface {
	All() ([]models.Shutter, error)
}

type shutterCommander interface {
	Command(ctx context.Context, shutterID string, command string) error
}

type Server struct {
	logger    *log.Logger
	rules     ruleRepo
	shutters  shutterRepo
	commander shutterCommander
	latitude  float64
	longitude float64

	events    *sse.Server
	listeners []chan models.RuleChange
	router    *chi.Mux
}

func NewServer(
	logger *log.Logger,
	rules ruleRepo,
	shutters shutterRepo,
	commander shutterCommander,
	latitude float64,
	longitude float64,
) *Server {
	events := sse.New()
	events.AutoReplay = false
	events.CreateStream(constants.EventStreamRules)

	s := &Server{
		logger:    logger,
		rules:     rules,
		shutters:  shutters,
		commander: commander,
		latitude:  latitude,
		longitude: longitude,
		events:    events,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Post("/cmd/{command}", s.handleCommand)
	r.Get("/events", s.events.ServeHTTP)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Changes returns a channel that receives every accepted mutation. Must be
// called before the server starts handling requests.
func (s *Server) Changes() <-chan models.RuleChange {
	ch := make(chan models.RuleChange, 16)
	s.listeners = append(s.listeners, ch)
	return ch
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("command service listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("command service stopped: %w", err)
	case <-ctx.Done():
		s.logger.Info("command service: stop signal received")
		s.events.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) publish(changeType string, id string) {
	change := models.RuleChange{Type: changeType, ID: id}

	data, err := json.Marshal(change)
	if err != nil {
		s.logger.Error("error encoding rule change", "err", err)
		return
	}
	s.events.Publish(constants.EventStreamRules, &sse.Event{
		ID:   []byte(newEventID()),
		Data: data,
	})

	for _, ch := range s.listeners {
		select {
		case ch <- change:
		default:
			s.logger.Warn("rule change listener is full, dropping change", "type", changeType, "id", id)
		}
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"requestId", middleware.GetReqID(r.Context()),
			"elapsed", time.Since(start),
		)
	})
}
