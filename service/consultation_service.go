package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"praktikasud-backend/legal"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
)

// ActivityRecorder logs user activity; implementations must not fail the caller
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, user models.User)
	RecordRequest(ctx context.Context, req models.UserRequest)
}

var (
	ErrEnrichmentNotSet = errors.New("enrichment service not set")
	ErrCompletionNotSet = errors.New("completion service not set")
)

// ConsultationService runs the classify, enrich, compose, invoke, assemble and split pipeline
type ConsultationService struct {
	enrichment *EnrichmentService
	completion *CompletionService
	activity   ActivityRecorder
	chunkLimit int
	log        logger.Logger
	now        func() time.Time
}

// ConsultationServiceOption is a functional option for ConsultationService
type ConsultationServiceOption func(*ConsultationService)

// ConsultationWithEnrichment sets the enrichment service
func ConsultationWithEnrichment(e *EnrichmentService) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.enrichment = e
	}
}

// ConsultationWithCompletion sets the completion service
func ConsultationWithCompletion(c *CompletionService) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.completion = c
	}
}

// ConsultationWithActivity sets the activity recorder
func ConsultationWithActivity(a ActivityRecorder) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.activity = a
	}
}

// ConsultationWithChunkLimit overrides the message split threshold
func ConsultationWithChunkLimit(n int) ConsultationServiceOption {
	return func(s *ConsultationService) {
		if n > 0 {
			s.chunkLimit = n
		}
	}
}

// ConsultationWithLogger sets the logger
func ConsultationWithLogger(l logger.Logger) ConsultationServiceOption {
	return func(s *ConsultationService) {
		s.log = l
	}
}

// NewConsultationService creates a new consultation service
func NewConsultationService(opts ...ConsultationServiceOption) *ConsultationService {
	s := &ConsultationService{
		chunkLimit: legal.MaxChunkLength,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConsultationRequest represents one question from a chat user
type ConsultationRequest struct {
	User      models.User
	Operation models.OperationKind
	Text      string
	// Preamble is prepended to the assembled answer before splitting
	Preamble string
}

// ConsultationResult represents the answer ready for delivery
type ConsultationResult struct {
	Parts            []string                 `json:"parts"`
	Domain           models.Domain            `json:"domain"`
	Bankruptcy       models.BankruptcyContext `json:"bankruptcy"`
	EnrichmentSource models.EnrichmentSource  `json:"enrichment_source,omitempty"`
	Degraded         bool                     `json:"degraded"`
	Reason           string                   `json:"reason,omitempty"`
	Duration         time.Duration            `json:"-"`
}

// Text joins the parts without their markers
func (r *ConsultationResult) Text() string {
	bodies := make([]string, len(r.Parts))
	for i, p := range r.Parts {
		bodies[i] = legal.StripPartMarker(p)
	}
	return strings.Join(bodies, "\n")
}

// Consult answers a question; only missing dependencies produce an error
func (s *ConsultationService) Consult(ctx context.Context, req ConsultationRequest) (*ConsultationResult, error) {
	if s.enrichment == nil {
		return nil, ErrEnrichmentNotSet
	}
	if s.completion == nil {
		return nil, ErrCompletionNotSet
	}

	start := s.now()
	op := req.Operation
	if !op.Valid() {
		op = models.OperationPractice
	}
	log := s.logger(ctx).With("operation", op, "user_id", req.User.UserID)

	text := strings.TrimSpace(req.Text)
	result := &ConsultationResult{Domain: models.DomainGeneral}

	var answer string
	if text == "" {
		answer = legal.GenericAdvice
		result.Bankruptcy = models.BankruptcyContext{GenericAdvice: true, Procedure: models.ProcedureNone}
		result.EnrichmentSource = models.EnrichmentFallback
	} else {
		classified := legal.Classify(text)
		result.Domain = classified.Domain
		if op != models.OperationConstitutional {
			result.Bankruptcy = legal.EvaluateBankruptcy(text)
		} else {
			result.Bankruptcy = models.BankruptcyContext{Procedure: models.ProcedureNone}
		}

		enrichment := s.enrichment.Enrich(ctx, text, classified.Domain)
		result.EnrichmentSource = enrichment.Source

		outcome := s.completion.Invoke(ctx, legal.Compose(op, text, enrichment))
		answer = outcome.Text
		result.Degraded = outcome.IsDegraded()
		result.Reason = outcome.Reason
	}

	assembled := req.Preamble + legal.Assemble(answer, result.Bankruptcy)
	result.Parts = legal.Split(assembled, s.chunkLimit)
	result.Duration = s.now().Sub(start)

	log.Info("Consultation answered",
		"domain", result.Domain,
		"procedure", result.Bankruptcy.Procedure,
		"enrichment", result.EnrichmentSource,
		"degraded", result.Degraded,
		"parts", len(result.Parts),
		"duration", result.Duration,
	)
	s.record(ctx, req.User, op, text, assembled, result)
	return result, nil
}

func (s *ConsultationService) record(ctx context.Context, user models.User, op models.OperationKind, text, answer string, result *ConsultationResult) {
	if s.activity == nil || user.UserID == 0 {
		return
	}
	status := models.RequestCompleted
	if result.Degraded {
		status = models.RequestDegraded
	}
	s.activity.RecordActivity(ctx, user)
	s.activity.RecordRequest(ctx, models.UserRequest{
		UserID:         user.UserID,
		RequestType:    string(op),
		RequestText:    text,
		ResponseText:   answer,
		ProcessingTime: result.Duration.Seconds(),
		Status:         status,
	})
}

func (s *ConsultationService) logger(ctx context.Context) logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}
