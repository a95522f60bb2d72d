package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"wysiwyg/internal/dom"
	"wysiwyg/internal/edit"
	"wysiwyg/internal/sanitize"
	"wysiwyg/internal/serialize"
)

// maxBodySize bounds the markup accepted in one request
const maxBodySize = 1 << 20

// Request is the body of every POST endpoint
type Request struct {
	HTML    string   `json:"html"`
	Context []string `json:"context,omitempty"`
}

// Response carries the result of an endpoint
type Response struct {
	HTML     string  `json:"html,omitempty"`
	Content  *string `json:"content,omitempty"`
	Markdown *string `json:"markdown,omitempty"`
}

// Server exposes the cleaning and serialization pipelines over HTTP
type Server struct {
	router *chi.Mux
	log    *logrus.Entry
}

// New creates a server with its routes registered
func New(log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.WithField("component", "server")
	}

	s := &Server{router: chi.NewRouter(), log: log}
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/clean", s.handleClean)
	s.router.Post("/content", s.handleContent)
	s.router.Post("/markdown", s.handleMarkdown)
	return s
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Debug("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	cleaned, err := edit.CleanClipboardHTML(req.HTML, sanitize.ContextFromTags(req.Context...))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, Response{HTML: dom.InnerHTML(cleaned)})
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	content, err := serialize.Content(req.HTML)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, Response{Content: &content})
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	content, err := serialize.Content(req.HTML)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	md, err := serialize.Markdown(content)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, Response{Markdown: &md})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.WithField("request_id", middleware.GetReqID(r.Context())).Warnf("invalid request body: %s", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithField("request_id", middleware.GetReqID(r.Context())).Errorf("request failed: %s", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (s *Server) respond(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Warnf("failed to write response: %s", err)
	}
}
