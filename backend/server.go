package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/amonks/ramble/internal/ids"
	internalstrings "github.com/amonks/ramble/internal/strings"
)

// DefaultMaxDepth is the menu depth ceiling the dev server reports.
const DefaultMaxDepth = 3

const shutdownTimeout = 5 * time.Second

// ServerOptions configures a dev server.
type ServerOptions struct {
	// MaxDepth overrides the reported menu depth ceiling.
	MaxDepth int
	Logger   *log.Logger
}

// Server is a deterministic explorer backend for local development and
// tests. It speaks the hosted backend's wire protocol but derives menus and
// content from the topic text instead of calling a model.
type Server struct {
	maxDepth int
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[string]*serverSession
}

// serverSession mirrors the hosted backend's per-session dict: the topic,
// one menu frame per depth, and the selections taken to get there.
type serverSession struct {
	topic string
	menus [][]string
	trail []string
}

// NewServer creates a dev server.
func NewServer(opts ServerOptions) *Server {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "backend: ", log.LstdFlags)
	}
	return &Server{
		maxDepth: maxDepth,
		logger:   logger,
		sessions: make(map[string]*serverSession),
	}
}

// Handler returns the HTTP handler for the session operations.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/start_session", s.handleStartSession)
	mux.HandleFunc("/select", s.handleSelect)
	mux.HandleFunc("/go_back", s.handleGoBack)
	mux.HandleFunc("/go_to_root", s.handleGoToRoot)
	return s.recoverHandler(mux)
}

// Serve runs the server on the given address until an interrupt.
func (s *Server) Serve(addr string) error {
	server := &http.Server{
		Addr:     addr,
		Handler:  s.Handler(),
		ErrorLog: s.logger,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("server stopped: %v", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logf("interrupt received, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		shutdownErr := server.Shutdown(shutdownCtx)
		cancel()
		listenErr := <-listenErrs
		if errors.Is(listenErr, http.ErrServerClosed) {
			listenErr = nil
		}
		if errors.Is(shutdownErr, http.ErrServerClosed) {
			shutdownErr = nil
		}
		return errors.Join(shutdownErr, listenErr)
	}
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload topicRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	topic := strings.TrimSpace(payload.Topic)
	if topic == "" {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("topic is required"))
		return
	}

	menu := rootMenu(topic)
	session := &serverSession{topic: topic, menus: [][]string{menu}}
	sessionID := ids.GenerateWithTimestamp(topic, time.Now(), ids.DefaultLength)

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, menuResponse{
		Type:         string(typeSubmenu),
		MenuItems:    menu,
		SessionID:    sessionID,
		CurrentDepth: intp(0),
		MaxMenuDepth: intp(s.maxDepth),
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload selectionRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	selection := internalstrings.NormalizeWhitespace(payload.Selection)
	if selection == "" {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("selection is required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[strings.TrimSpace(payload.SessionID)]
	if !ok {
		s.writeError(w, r, http.StatusNotFound, errSessionNotFound)
		return
	}
	current := session.menus[len(session.menus)-1]
	if !containsItem(current, selection) {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid selection: %s", selection))
		return
	}

	session.trail = append(session.trail, selection)
	depth := len(session.trail)

	if depth < s.maxDepth {
		menu := submenu(selection)
		session.menus = append(session.menus, menu)
		writeJSON(w, http.StatusOK, menuResponse{
			Type:         string(typeSubmenu),
			MenuItems:    menu,
			SessionID:    payload.SessionID,
			CurrentDepth: intp(depth),
			MaxMenuDepth: intp(s.maxDepth),
		})
		return
	}

	body := contentFor(session.topic, selection)
	further := furtherTopics(selection)
	session.menus = append(session.menus, further)
	writeJSON(w, http.StatusOK, menuResponse{
		Type:         string(typeContent),
		MenuItems:    further,
		Content:      &body,
		SessionID:    payload.SessionID,
		CurrentDepth: intp(depth),
		MaxMenuDepth: intp(s.maxDepth),
	})
}

func (s *Server) handleGoBack(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload sessionRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[strings.TrimSpace(payload.SessionID)]
	if !ok {
		s.writeError(w, r, http.StatusNotFound, errSessionNotFound)
		return
	}
	if len(session.trail) == 0 {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("already at the main menu"))
		return
	}

	session.trail = session.trail[:len(session.trail)-1]
	session.menus = session.menus[:len(session.menus)-1]
	writeJSON(w, http.StatusOK, menuResponse{
		Type:         string(typeSubmenu),
		MenuItems:    session.menus[len(session.menus)-1],
		SessionID:    payload.SessionID,
		CurrentDepth: intp(len(session.trail)),
		MaxMenuDepth: intp(s.maxDepth),
	})
}

func (s *Server) handleGoToRoot(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload sessionRequest
	if err := decodeJSON(r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[strings.TrimSpace(payload.SessionID)]
	if !ok {
		s.writeError(w, r, http.StatusNotFound, errSessionNotFound)
		return
	}

	session.trail = nil
	session.menus = session.menus[:1]
	writeJSON(w, http.StatusOK, menuResponse{
		Type:         string(typeSubmenu),
		MenuItems:    session.menus[0],
		SessionID:    payload.SessionID,
		CurrentDepth: intp(0),
		MaxMenuDepth: intp(s.maxDepth),
	})
}

var errSessionNotFound = errors.New("session not found")

type responseType string

const (
	typeSubmenu responseType = "submenu"
	typeContent responseType = "content"
)

// rootMenu matches the hosted backend's no-model fallback menu.
func rootMenu(topic string) []string {
	return []string{
		"Introduction to " + topic,
		"Key Concepts in " + topic,
		"History of " + topic,
	}
}

func submenu(selection string) []string {
	return []string{
		selection + ": Overview",
		selection + ": Deep Dive",
		selection + ": Examples",
	}
}

func furtherTopics(selection string) []string {
	return []string{
		"Related: " + selection,
		"Beyond " + selection,
	}
}

func contentFor(topic, selection string) string {
	return fmt.Sprintf("# %s\n\nThis is a locally generated summary of **%s** within the topic *%s*.\n\nThe dev server derives menus and content deterministically from the labels you select, so the same path always produces the same text. Point the client at a hosted backend for model-generated content.\n", selection, selection, topic)
}

func containsItem(items []string, needle string) bool {
	for _, item := range items {
		if item == needle {
			return true
		}
	}
	return false
}

func intp(v int) *int { return &v }

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, errorPayload("internal server error"))
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseTracker) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(data)
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeError(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	return false
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func errorPayload(message string) map[string]map[string]string {
	return map[string]map[string]string{"error": {"message": message}}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logf("%s %s -> %d: %v", r.Method, r.URL.Path, status, err)
	writeJSON(w, status, errorPayload(err.Error()))
}

func (s *Server) logf(format string, args ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}
