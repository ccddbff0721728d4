package calculations

import (
	"context"

	"github.com/google/uuid"

	"github.com/bryanwahyu/propsight-ai/internal/application"
	domain "github.com/bryanwahyu/propsight-ai/internal/domain/calculations"
)

// Service implements the save-calculation use-case
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

// Save assigns a fresh id and timestamp to the submitted inputs and writes
// the record unconditionally. Identical submissions get distinct ids: there
// is deliberately no dedup, each save is its own record.
func (s *Service) Save(ctx context.Context, inputs map[string]any) (domain.RecordID, error) {
	rec := &domain.Record{
		ID:        domain.RecordID(uuid.New().String()),
		CreatedAt: s.Clock.Now().Format("2006-01-02 15:04:05.999999"),
		Inputs:    pick(inputs),
	}
	if err := s.Repo.Put(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// pick keeps only the named input fields, absent ones stored as null
func pick(inputs map[string]any) map[string]any {
	out := make(map[string]any, len(domain.InputFields))
	for _, k := range domain.InputFields {
		out[k] = inputs[k]
	}
	return out
}
