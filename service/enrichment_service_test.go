package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktikasud-backend/legal"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
)

func newEnrichment(p KnowledgeProvider) *EnrichmentService {
	return NewEnrichmentService(EnrichmentWithProvider(p), EnrichmentWithLogger(logger.NewForTests()))
}

func TestEnrichmentService_Enrich(t *testing.T) {
	ctx := context.Background()

	t.Run("Should format a successful answer", func(t *testing.T) {
		p := &stubKnowledge{text: "**Статья 394 ТК РФ** позволяет восстановиться"}
		res := newEnrichment(p).Enrich(ctx, "уволили", models.DomainLabor)

		assert.Equal(t, models.EnrichmentSuccess, res.Source)
		assert.True(t, strings.HasPrefix(res.Body, legal.KnowledgeHeader))
		assert.Contains(t, res.Body, "<b>Статья 394 ТК РФ</b>")
		require.Equal(t, 1, p.calls)
		assert.Equal(t, legal.KnowledgeInstruction(models.DomainLabor), p.systems[0])
		assert.Equal(t, legal.EnhanceQuery("уволили", models.DomainLabor), p.queries[0])
	})

	t.Run("Should use the fallback block for empty answers", func(t *testing.T) {
		res := newEnrichment(&stubKnowledge{text: "  "}).Enrich(ctx, "долг", models.DomainBankruptcy)
		assert.Equal(t, models.EnrichmentFallback, res.Source)
		assert.Equal(t, legal.KnowledgeFallback("долг", models.DomainBankruptcy), res.Body)
	})

	t.Run("Should use the error block when the provider fails", func(t *testing.T) {
		res := newEnrichment(&stubKnowledge{err: errors.New("status 500")}).Enrich(ctx, "вопрос", models.DomainFamily)
		assert.Equal(t, models.EnrichmentError, res.Source)
		assert.Equal(t, legal.KnowledgeError("вопрос", models.DomainGeneral), res.Body)
	})

	t.Run("Should treat a missing provider as an error", func(t *testing.T) {
		res := NewEnrichmentService(EnrichmentWithLogger(logger.NewForTests())).Enrich(ctx, "вопрос", models.DomainCivil)
		assert.Equal(t, models.EnrichmentError, res.Source)
	})

	t.Run("Should skip the provider for empty queries", func(t *testing.T) {
		p := &stubKnowledge{text: "ignored"}
		res := newEnrichment(p).Enrich(ctx, "   ", models.DomainLabor)
		assert.Equal(t, models.EnrichmentResult{Body: legal.GenericAdvice, Source: models.EnrichmentFallback}, res)
		assert.Zero(t, p.calls)
	})

	t.Run("Should cap long queries", func(t *testing.T) {
		p := &stubKnowledge{text: "ok"}
		long := strings.Repeat("д", MaxEnrichmentQuery+500)
		newEnrichment(p).Enrich(ctx, long, models.DomainGeneral)
		require.Len(t, p.queries, 1)
		assert.Equal(t, legal.EnhanceQuery(strings.Repeat("д", MaxEnrichmentQuery), models.DomainGeneral), p.queries[0])
	})
}
