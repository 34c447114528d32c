package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dkoval/interview-trainer/internal/ai"
)

type stubAssistant struct {
	content  string
	err      error
	received []ai.Message
}

func (s *stubAssistant) GenerateChatCompletion(_ context.Context, messages []ai.Message) (string, error) {
	s.received = messages
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func postChat(t *testing.T, assistant ai.Assistant, body string) *httptest.ResponseRecorder {
	t.Helper()

	srv := New(assistant, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Routes().ServeHTTP(rec, req)

	return rec
}

func TestHandleChat(t *testing.T) {
	assistant := &stubAssistant{content: "sounds like a solid answer"}

	rec := postChat(t, assistant, `{"messages":[{"role":"user","content":"evaluate my answer"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp chatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Content != "sounds like a solid answer" {
		t.Fatalf("unexpected content: %q", resp.Content)
	}

	if len(assistant.received) != 1 {
		t.Fatalf("expected assistant to receive 1 message, got %d", len(assistant.received))
	}
	if assistant.received[0].Role != ai.RoleUser {
		t.Fatalf("unexpected role: %q", assistant.received[0].Role)
	}
}

func TestHandleChatInvalidBody(t *testing.T) {
	rec := postChat(t, &stubAssistant{}, `{not valid json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleChatEmptyMessages(t *testing.T) {
	assistant := &stubAssistant{}

	rec := postChat(t, assistant, `{"messages":[]}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if assistant.received != nil {
		t.Fatal("assistant must not be called for empty conversations")
	}
}

func TestHandleChatUpstreamFailure(t *testing.T) {
	assistant := &stubAssistant{err: fmt.Errorf("%w: rate limited", ai.ErrUpstream)}

	rec := postChat(t, assistant, `{"messages":[{"role":"user","content":"hi"}]}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != "upstream call failed" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestHandleChatInternalFailure(t *testing.T) {
	assistant := &stubAssistant{err: errors.New("boom")}

	rec := postChat(t, assistant, `{"messages":[{"role":"user","content":"hi"}]}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandleChatMethodNotAllowed(t *testing.T) {
	srv := New(&stubAssistant{}, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()

	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
