package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	domain "github.com/bryanwahyu/propsight-ai/internal/domain/calculations"
)

type CalculationRepository struct {
	db *sql.DB
}

func NewCalculationRepository(db *sql.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

// Put writes a calculation record keyed by id, overwriting any existing row.
// The inputs travel as one opaque JSON document; nothing here reads it back.
func (r *CalculationRepository) Put(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO calculations
  (id, created_at, inputs_json)
VALUES (?,?,?)
ON DUPLICATE KEY UPDATE
  created_at=VALUES(created_at), inputs_json=VALUES(inputs_json);
`
	payload, err := json.Marshal(rec.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}

	_, err = r.db.ExecContext(ctx, q, string(rec.ID), rec.CreatedAt, payload)
	return err
}
