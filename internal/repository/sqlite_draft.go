package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/freightdesk/internal/db"
	"github.com/alexanderramin/freightdesk/internal/domain"
)

// SQLiteDraftRepo implements DraftRepo on the local SQLite store.
type SQLiteDraftRepo struct {
	db db.DBTX
}

func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

const draftColumns = `id, entity, mode, method, path, payload, last_error, attempts, created_at, updated_at`

func (r *SQLiteDraftRepo) Create(ctx context.Context, d *domain.Draft) error {
	if d.Attempts <= 0 {
		d.Attempts = 1
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = nowUTC()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	query := `INSERT INTO drafts (` + draftColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Entity,
		d.Mode,
		d.Method,
		d.Path,
		string(d.Payload),
		d.LastError,
		d.Attempts,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting draft: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = ?`, id)
	d, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return d, err
}

func (r *SQLiteDraftRepo) Resolve(ctx context.Context, idOrPrefix string) (*domain.Draft, error) {
	if d, err := r.GetByID(ctx, idOrPrefix); err == nil || !errors.Is(err, ErrNotFound) {
		return d, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id LIKE ? ESCAPE '\' LIMIT 2`, likePrefix(idOrPrefix))
	if err != nil {
		return nil, fmt.Errorf("resolving draft: %w", err)
	}
	drafts, err := collectDrafts(rows)
	if err != nil {
		return nil, err
	}
	switch len(drafts) {
	case 0:
		return nil, fmt.Errorf("draft %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return drafts[0], nil
	default:
		return nil, fmt.Errorf("draft %s: %w", idOrPrefix, ErrAmbiguous)
	}
}

// List returns drafts oldest first, optionally restricted to one entity.
func (r *SQLiteDraftRepo) List(ctx context.Context, entity string) ([]*domain.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts`
	var args []any
	if entity != "" {
		query += ` WHERE entity = ?`
		args = append(args, entity)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	return collectDrafts(rows)
}

// RecordFailure bumps the attempt count and stores the latest error.
func (r *SQLiteDraftRepo) RecordFailure(ctx context.Context, id, lastError string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE drafts SET attempts = attempts + 1, last_error = ?, updated_at = ? WHERE id = ?`,
		lastError, formatTime(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("updating draft: %w", err)
	}
	return requireOneRow(res, id)
}

func (r *SQLiteDraftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return requireOneRow(res, id)
}

func requireOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("draft %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*domain.Draft, error) {
	var (
		d                    domain.Draft
		payload              string
		createdAt, updatedAt string
	)
	err := row.Scan(&d.ID, &d.Entity, &d.Mode, &d.Method, &d.Path, &payload,
		&d.LastError, &d.Attempts, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}
	d.Payload = []byte(payload)
	if d.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDrafts(rows *sql.Rows) ([]*domain.Draft, error) {
	defer rows.Close()
	drafts := []*domain.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}
