package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"praktikasud-backend/legal"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
)

// CompletionProvider generates an answer for a system and user prompt pair
type CompletionProvider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// CompletionService invokes the completion provider exactly once per prompt
type CompletionService struct {
	provider CompletionProvider
	log      logger.Logger
}

// CompletionServiceOption is a functional option for CompletionService
type CompletionServiceOption func(*CompletionService)

// CompletionWithProvider sets the completion provider
func CompletionWithProvider(p CompletionProvider) CompletionServiceOption {
	return func(s *CompletionService) {
		s.provider = p
	}
}

// CompletionWithLogger sets the logger
func CompletionWithLogger(l logger.Logger) CompletionServiceOption {
	return func(s *CompletionService) {
		s.log = l
	}
}

// NewCompletionService creates a new completion service
func NewCompletionService(opts ...CompletionServiceOption) *CompletionService {
	s := &CompletionService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CompletionService) logger(ctx context.Context) logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}

// Invoke returns the live answer or a degraded substitute; it never returns empty text
func (s *CompletionService) Invoke(ctx context.Context, prompt models.ComposedPrompt) models.Outcome {
	op := prompt.Operation
	log := s.logger(ctx).With("operation", op)

	if s.provider == nil {
		log.Error("Completion provider not set")
		return models.Degraded(legal.Apology(op), "completion provider not set")
	}

	text, err := s.provider.Complete(ctx, prompt.System, prompt.User)
	if err != nil {
		if isQuotaError(err) {
			log.Warn("Completion quota exceeded, using prepared answer", "error", err)
			return models.Degraded(legal.DegradedAnswer(op, prompt.Query), "quota")
		}
		log.Error("Completion failed", "error", err)
		return models.Degraded(legal.Apology(op), err.Error())
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("Completion returned empty text")
		return models.Degraded(legal.Apology(op), "empty completion")
	}
	return models.Ok(text)
}

// isQuotaError matches OpenAI quota errors and Gemini RESOURCE_EXHAUSTED replies
func isQuotaError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "insufficient_quota") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(msg, "ResourceExhausted")
}
