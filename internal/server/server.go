package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dkoval/interview-trainer/internal/ai"
)

// Server exposes the chat-completion proxy endpoint. It forwards the
// caller's conversation to the configured assistant and returns the
// generated text. It carries no assessment state.
type Server struct {
	assistant ai.Assistant
	logger    *zap.Logger
}

type chatRequest struct {
	Messages []ai.Message `json:"messages"`
}

type chatResponse struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a proxy server backed by the given assistant.
func New(assistant ai.Assistant, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		assistant: assistant,
		logger:    logger,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/api/chat", s.handleChat)

	return r
}

// ListenAndServe serves the proxy on the given address until the listener
// fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("http server listening", zap.String("addr", addr))

	return srv.ListenAndServe()
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if len(req.Messages) == 0 {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "messages are required"})
		return
	}

	content, err := s.assistant.GenerateChatCompletion(r.Context(), req.Messages)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ai.ErrUpstream) {
			status = http.StatusBadGateway
		}

		s.logger.Warn("chat completion failed",
			zap.Int("status", status),
			zap.Error(err),
		)
		s.writeJSON(w, status, errorResponse{Error: "upstream call failed"})

		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{Content: content})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("writing response failed", zap.Error(err))
	}
}
