package study

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists evaluated studies.
type Repository interface {
	Create(ctx context.Context, s *Study) error
	GetByID(ctx context.Context, id uuid.UUID) (*Study, error)
	List(ctx context.Context, limit, offset int) ([]*Study, int, error)
	ListByPatient(ctx context.Context, patientRef string, limit, offset int) ([]*Study, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
