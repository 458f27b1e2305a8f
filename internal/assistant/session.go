package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mycloud-drive/internal/pkg/logger"
)

var (
	ErrEmptyQuery = errors.New("assistant: query is empty")
	ErrBusy       = errors.New("assistant: a request is already in flight")
)

// ChatRequest is the body sent to the assistant endpoint.
type ChatRequest struct {
	Query string   `json:"query"`
	Files []string `json:"files"`
}

// ChatRequester is the backend capability a session sends queries through.
type ChatRequester interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}

type SessionState int

const (
	StateIdle SessionState = iota
	StateSending
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

// ChatSession runs request/response cycles against the assistant endpoint. At most
// one request is in flight; a submit while sending is rejected, not queued.
type ChatSession struct {
	requester  ChatRequester
	transcript *Transcript
	selection  *ContextSelection
	catalog    *FileCatalog
	timeout    time.Duration
	logger     logger.ILogger

	mu    sync.Mutex
	state SessionState
	draft string
}

func NewChatSession(
	requester ChatRequester,
	transcript *Transcript,
	selection *ContextSelection,
	catalog *FileCatalog,
	timeout time.Duration,
	log logger.ILogger,
) *ChatSession {
	return &ChatSession{
		requester:  requester,
		transcript: transcript,
		selection:  selection,
		catalog:    catalog,
		timeout:    timeout,
		logger:     log,
	}
}

func (s *ChatSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ChatSession) Sending() bool {
	return s.State() == StateSending
}

func (s *ChatSession) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

func (s *ChatSession) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SubmitDraft submits the pending draft text.
func (s *ChatSession) SubmitDraft(ctx context.Context) (Message, error) {
	return s.Submit(ctx, s.Draft())
}

// Submit appends the user's turn immediately, sends the query with the current
// selection and appends the reply. Transport, status, decode and timeout failures
// are absorbed into a fallback reply; only rejected submissions return an error,
// and those leave the transcript untouched.
func (s *ChatSession) Submit(ctx context.Context, query string) (Message, error) {
	if strings.TrimSpace(query) == "" {
		return Message{}, ErrEmptyQuery
	}

	s.mu.Lock()
	if s.state == StateSending {
		s.mu.Unlock()
		return Message{}, ErrBusy
	}
	s.transcript.Append(UserMessage(query))
	s.state = StateSending
	s.mu.Unlock()

	req := ChatRequest{
		Query: query,
		Files: s.selection.Ordered(s.catalog.Files()),
	}

	reply := s.send(ctx, req)
	s.transcript.Append(reply)

	s.mu.Lock()
	s.draft = ""
	s.state = StateIdle
	s.mu.Unlock()

	return reply, nil
}

func (s *ChatSession) send(ctx context.Context, req ChatRequest) Message {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.requester.Chat(ctx, req)
	if err != nil {
		s.logger.Warn("ChatSession", "Chat request failed, using fallback reply", map[string]interface{}{
			"error":    err.Error(),
			"files":    len(req.Files),
			"duration": time.Since(start).String(),
		})
		return AssistantMessage(FallbackText)
	}

	s.logger.Info("ChatSession", "Chat reply received", map[string]interface{}{
		"files":    len(req.Files),
		"duration": time.Since(start).String(),
	})
	return AssistantMessage(text)
}
