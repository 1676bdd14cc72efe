package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"github.com/alexanderramin/freightdesk/internal/repository"
	"github.com/alexanderramin/freightdesk/internal/submit"
)

// Resender sends a previously prepared request.
type Resender interface {
	Resend(ctx context.Context, p *submit.Prepared, onComplete func(json.RawMessage)) (json.RawMessage, error)
}

type draftService struct {
	drafts   repository.DraftRepo
	resender Resender
	entities map[string]*forms.Entity
}

func NewDraftService(drafts repository.DraftRepo, resender Resender) DraftService {
	return &draftService{drafts: drafts, resender: resender, entities: forms.Entities()}
}

func (s *draftService) List(ctx context.Context, entity string) ([]*domain.Draft, error) {
	return s.drafts.List(ctx, entity)
}

func (s *draftService) Get(ctx context.Context, idOrPrefix string) (*domain.Draft, error) {
	return s.drafts.Resolve(ctx, idOrPrefix)
}

// Retry resends the draft once. It is deleted on success; on failure the
// attempt is recorded and the draft kept.
func (s *draftService) Retry(ctx context.Context, idOrPrefix string) (json.RawMessage, error) {
	d, err := s.drafts.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	title := d.Entity
	if e, ok := s.entities[d.Entity]; ok {
		title = e.Title
	}

	resp, err := s.resender.Resend(ctx, submit.FromDraft(d, title), nil)
	if err != nil {
		if rerr := s.drafts.RecordFailure(ctx, d.ID, backend.UserMessage(err)); rerr != nil {
			return nil, fmt.Errorf("%w (and recording the failure: %v)", err, rerr)
		}
		return nil, err
	}
	if err := s.drafts.Delete(ctx, d.ID); err != nil {
		return resp, fmt.Errorf("draft sent but not removed: %w", err)
	}
	return resp, nil
}

func (s *draftService) Discard(ctx context.Context, idOrPrefix string) error {
	d, err := s.drafts.Resolve(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	return s.drafts.Delete(ctx, d.ID)
}
