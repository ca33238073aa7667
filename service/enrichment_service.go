package service

import (
	"context"
	"strings"

	"praktikasud-backend/legal"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
)

// MaxEnrichmentQuery caps the runes of a query sent to the knowledge provider
const MaxEnrichmentQuery = 2000

// KnowledgeProvider searches current legal information
type KnowledgeProvider interface {
	Search(ctx context.Context, system, query string) (string, error)
}

// EnrichmentService retrieves legal context for a classified query
type EnrichmentService struct {
	provider KnowledgeProvider
	log      logger.Logger
}

// EnrichmentServiceOption is a functional option for EnrichmentService
type EnrichmentServiceOption func(*EnrichmentService)

// EnrichmentWithProvider sets the knowledge provider
func EnrichmentWithProvider(p KnowledgeProvider) EnrichmentServiceOption {
	return func(s *EnrichmentService) {
		s.provider = p
	}
}

// EnrichmentWithLogger sets the logger
func EnrichmentWithLogger(l logger.Logger) EnrichmentServiceOption {
	return func(s *EnrichmentService) {
		s.log = l
	}
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(opts ...EnrichmentServiceOption) *EnrichmentService {
	s := &EnrichmentService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EnrichmentService) logger(ctx context.Context) logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}

// Enrich never fails: provider errors and empty answers become canned blocks
func (s *EnrichmentService) Enrich(ctx context.Context, query string, domain models.Domain) models.EnrichmentResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.EnrichmentResult{Body: legal.GenericAdvice, Source: models.EnrichmentFallback}
	}
	log := s.logger(ctx).With("domain", legal.SearchDomain(domain))

	if s.provider == nil {
		log.Error("Knowledge provider not set")
		return models.EnrichmentResult{Body: legal.KnowledgeError(query, domain), Source: models.EnrichmentError}
	}

	search := truncateRunes(query, MaxEnrichmentQuery)
	text, err := s.provider.Search(ctx, legal.KnowledgeInstruction(domain), legal.EnhanceQuery(search, domain))
	if err != nil {
		log.Error("Knowledge search failed", "error", err)
		return models.EnrichmentResult{Body: legal.KnowledgeError(query, domain), Source: models.EnrichmentError}
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("Knowledge search returned no content")
		return models.EnrichmentResult{Body: legal.KnowledgeFallback(query, domain), Source: models.EnrichmentFallback}
	}

	log.Info("Knowledge search succeeded", "chars", len([]rune(text)))
	return models.EnrichmentResult{Body: legal.FormatKnowledge(text), Source: models.EnrichmentSuccess}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
