package service

import (
	"context"
	"encoding/json"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/forms"
)

// JobNumberService allocates human-readable job numbers.
type JobNumberService interface {
	// Next never fails; fallback reports whether the number was generated
	// locally because the backend could not allocate one.
	Next(ctx context.Context) (number string, fallback bool)
}

// RecordService reads existing master records with their child lists.
type RecordService interface {
	Load(ctx context.Context, e *forms.Entity, id int) (forms.Record, error)
	Recent(ctx context.Context, e *forms.Entity, limit int) ([]forms.Record, error)
}

// DraftService manages submissions that failed and were kept locally.
type DraftService interface {
	List(ctx context.Context, entity string) ([]*domain.Draft, error)
	Get(ctx context.Context, idOrPrefix string) (*domain.Draft, error)
	Retry(ctx context.Context, idOrPrefix string) (json.RawMessage, error)
	Discard(ctx context.Context, idOrPrefix string) error
}
