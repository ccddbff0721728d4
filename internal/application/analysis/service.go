package analysis

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/bryanwahyu/propsight-ai/internal/application"
	domain "github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
	"github.com/bryanwahyu/propsight-ai/internal/infra/ai/extract"
	"github.com/bryanwahyu/propsight-ai/internal/infra/ai/prompt"
	"github.com/bryanwahyu/propsight-ai/internal/middleware"
)

// Service implements the analyze use-case: render prompt, call the model
// once, normalize whatever comes back. Stateless; safe for concurrent use.
type Service struct {
	Generator domain.Generator
	Archive   domain.ArchiveStore // optional, nil disables reply archiving
	Clock     application.Clock
}

// Metadata reported back to the caller alongside every analysis
type Metadata struct {
	ModelUsed        string       `json:"modelUsed"`
	ProcessingTimeMs int64        `json:"processingTimeMs"`
	TokensUsed       domain.Usage `json:"tokensUsed"`
}

// Envelope is the analysis response body. Analysis is always schema-valid:
// the model's parsed object on success, the fallback otherwise.
type Envelope struct {
	Success   bool      `json:"success"`
	RequestID string    `json:"requestId"`
	Analysis  any       `json:"analysis"`
	Error     string    `json:"error,omitempty"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}

// Analyze runs the full flow for one request. A non-nil error means the
// handler must answer 500; the returned envelope is still usable, with the
// fallback analysis embedded so the caller always gets a valid payload.
func (s *Service) Analyze(ctx context.Context, req domain.Request) (*Envelope, error) {
	start := s.Clock.Now()
	requestID := req.RequestID()

	p, err := prompt.Build(req)
	if err != nil {
		return s.failure(requestID, fmt.Errorf("build prompt: %w", err))
	}

	text, usage, err := s.Generator.Generate(ctx, p)
	if err != nil {
		return s.failure(requestID, err)
	}

	outcome := extract.Extract(text)
	if outcome.Fallback {
		log.Printf("analysis fallback: request_id=%s could not extract JSON from model reply", requestID)
	}
	result := outcome.Analysis
	if !extract.HasScorecard(result) {
		log.Printf("analysis fallback: request_id=%s model reply missing scorecard", requestID)
		result = domain.FallbackResult()
	}

	s.archiveReply(ctx, requestID, text)

	return &Envelope{
		Success:   true,
		RequestID: requestID,
		Analysis:  result,
		Metadata: &Metadata{
			ModelUsed:        s.Generator.Model(),
			ProcessingTimeMs: s.Clock.Now().Sub(start).Milliseconds(),
			TokensUsed:       usage,
		},
	}, nil
}

func (s *Service) failure(requestID string, err error) (*Envelope, error) {
	return &Envelope{
		Success:   false,
		RequestID: requestID,
		Error:     err.Error(),
		Analysis:  domain.FallbackResult(),
	}, err
}

// archiveReply keeps the raw model reply for auditing. Best effort only:
// an archive failure never fails the request.
func (s *Service) archiveReply(ctx context.Context, requestID, text string) {
	if s.Archive == nil {
		return
	}
	key := fmt.Sprintf("replies/%s-%s.txt", middleware.SanitizeIdentifier(requestID), uuid.New().String())
	if _, err := s.Archive.PutReply(ctx, key, []byte(text)); err != nil {
		log.Printf("reply archive failed: request_id=%s err=%v", requestID, err)
	}
}
