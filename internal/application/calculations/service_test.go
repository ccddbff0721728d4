package calculations

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/propsight-ai/internal/domain/calculations"
)

type fakeRepo struct {
	records []*domain.Record
	err     error
}

func (f *fakeRepo) Put(_ context.Context, rec *domain.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func sampleInputs() map[string]any {
	return map[string]any{
		"propertyPrice":       1450000.0,
		"deposit":             145000.0,
		"initialRentalIncome": 14500.0,
		"annualRentIncrease":  6.0,
		"vacancyMonths":       1.0,
		"monthlyRates":        1200.0,
		"loanTerm":            20.0,
	}
}

func TestSaveGeneratesIDAndTimestamp(t *testing.T) {
	repo := &fakeRepo{}
	clock := fixedClock{t: time.Date(2025, 6, 1, 9, 30, 15, 123456000, time.UTC)}
	svc := &Service{Repo: repo, Clock: clock}

	id, err := svc.Save(context.Background(), sampleInputs())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, repo.records, 1)
	rec := repo.records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "2025-06-01 09:30:15.123456", rec.CreatedAt)
	assert.Equal(t, 1450000.0, rec.Inputs["propertyPrice"])
}

// Two identical submissions are two records: ids differ, nothing dedups
func TestSaveIdenticalInputsDistinctRecords(t *testing.T) {
	repo := &fakeRepo{}
	svc := &Service{Repo: repo, Clock: fixedClock{t: time.Now()}}

	id1, err := svc.Save(context.Background(), sampleInputs())
	require.NoError(t, err)
	id2, err := svc.Save(context.Background(), sampleInputs())
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, repo.records, 2)
}

func TestSaveKeepsOnlyNamedFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := &Service{Repo: repo, Clock: fixedClock{t: time.Now()}}

	inputs := sampleInputs()
	inputs["dropMe"] = "not a financial field"

	_, err := svc.Save(context.Background(), inputs)
	require.NoError(t, err)

	rec := repo.records[0]
	assert.NotContains(t, rec.Inputs, "dropMe")
	// absent named fields are stored as null, matching the loose frontend payloads
	assert.Contains(t, rec.Inputs, "monthlyWifi")
	assert.Nil(t, rec.Inputs["monthlyWifi"])
	assert.Len(t, rec.Inputs, len(domain.InputFields))
}

func TestSaveRepoError(t *testing.T) {
	svc := &Service{Repo: &fakeRepo{err: fmt.Errorf("throttled")}, Clock: fixedClock{t: time.Now()}}

	_, err := svc.Save(context.Background(), sampleInputs())
	assert.Error(t, err)
}
