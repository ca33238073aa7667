package service

import (
	"context"
	"io"
	"strings"
	"sync"

	"praktikasud-backend/models"
)

type stubKnowledge struct {
	text    string
	err     error
	calls   int
	systems []string
	queries []string
}

var _ KnowledgeProvider = (*stubKnowledge)(nil)

func (s *stubKnowledge) Search(_ context.Context, system, query string) (string, error) {
	s.calls++
	s.systems = append(s.systems, system)
	s.queries = append(s.queries, query)
	return s.text, s.err
}

type stubCompletion struct {
	text  string
	err   error
	calls int
	last  [2]string
}

var _ CompletionProvider = (*stubCompletion)(nil)

func (s *stubCompletion) Complete(_ context.Context, system, user string) (string, error) {
	s.calls++
	s.last = [2]string{system, user}
	return s.text, s.err
}

type stubActivity struct {
	mu       sync.Mutex
	users    []models.User
	requests []models.UserRequest
}

var _ ActivityRecorder = (*stubActivity)(nil)

func (s *stubActivity) RecordActivity(_ context.Context, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
}

func (s *stubActivity) RecordRequest(_ context.Context, req models.UserRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
}

type stubTranscriber struct {
	text   string
	err    error
	format string
}

var _ Transcriber = (*stubTranscriber)(nil)

func (s *stubTranscriber) Transcribe(_ context.Context, audio io.Reader, format string) (string, error) {
	s.format = format
	_, _ = io.Copy(io.Discard, audio)
	return s.text, s.err
}

type stubSynthesizer struct {
	input string
	err   error
}

var _ SpeechSynthesizer = (*stubSynthesizer)(nil)

func (s *stubSynthesizer) Synthesize(_ context.Context, text string) (io.ReadCloser, error) {
	s.input = text
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader("OggS")), nil
}
