package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"golang.org/x/sync/errgroup"
)

var ErrRecordNotFound = errors.New("record not found")

type recordService struct {
	client backend.Client
}

func NewRecordService(client backend.Client) RecordService {
	return &recordService{client: client}
}

func (s *recordService) Load(ctx context.Context, e *forms.Entity, id int) (forms.Record, error) {
	src, ok := masterSources[e.Name]
	if !ok {
		return forms.Record{}, fmt.Errorf("no record source for %s", e.Name)
	}
	recs, err := s.list(ctx, src, id, 1)
	if err != nil {
		return forms.Record{}, fmt.Errorf("loading %s %d: %w", e.Name, id, err)
	}
	if len(recs) == 0 {
		return forms.Record{}, fmt.Errorf("%s %d: %w", e.Name, id, ErrRecordNotFound)
	}
	rec := recs[0]
	if err := s.loadChildren(ctx, src.Children, &rec); err != nil {
		return forms.Record{}, fmt.Errorf("loading %s %d: %w", e.Name, id, err)
	}
	return rec, nil
}

// loadChildren fetches every child list of rec concurrently.
func (s *recordService) loadChildren(ctx context.Context, children []source, rec *forms.Record) error {
	if len(children) == 0 {
		return nil
	}
	lists := make([][]forms.Record, len(children))
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range children {
		parentID := rec.Values.Int(child.IDField)
		g.Go(func() error {
			kids, err := s.list(gctx, child, parentID, 0)
			if err != nil {
				return fmt.Errorf("%s: %w", child.Key, err)
			}
			for j := range kids {
				if err := s.loadChildren(gctx, child.Children, &kids[j]); err != nil {
					return err
				}
			}
			lists[i] = kids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, child := range children {
		rec.Children[child.Key] = lists[i]
	}
	return nil
}

func (s *recordService) Recent(ctx context.Context, e *forms.Entity, limit int) ([]forms.Record, error) {
	src, ok := masterSources[e.Name]
	if !ok {
		return nil, fmt.Errorf("no record source for %s", e.Name)
	}
	return s.list(ctx, src, 0, limit)
}

// list runs src's list query, filtered to parentID when it is positive.
func (s *recordService) list(ctx context.Context, src source, parentID, limit int) ([]forms.Record, error) {
	q := backend.ListQuery{Entity: src.Entity, SortOn: src.SortOn, PageSize: limit}
	if parentID > 0 {
		q.Where = fmt.Sprintf("%s = %d", src.Column, parentID)
	}
	raws, err := s.client.List(ctx, q)
	if err != nil {
		return nil, err
	}
	recs := make([]forms.Record, 0, len(raws))
	for _, raw := range raws {
		var rec forms.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%s: %w", src.Entity, backend.ErrInvalidResponse)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
