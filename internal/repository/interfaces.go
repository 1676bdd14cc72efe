package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/freightdesk/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an id prefix matches more than one row.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

type DraftRepo interface {
	Create(ctx context.Context, d *domain.Draft) error
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	// Resolve accepts a full id or a unique prefix of one.
	Resolve(ctx context.Context, idOrPrefix string) (*domain.Draft, error)
	List(ctx context.Context, entity string) ([]*domain.Draft, error)
	RecordFailure(ctx context.Context, id, lastError string) error
	Delete(ctx context.Context, id string) error
}
