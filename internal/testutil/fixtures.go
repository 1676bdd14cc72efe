package testutil

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/google/uuid"
)

var draftClock atomic.Int64

type DraftOption func(*domain.Draft)

func WithEntity(entity, path string) DraftOption {
	return func(d *domain.Draft) {
		d.Entity = entity
		d.Path = path
	}
}

func WithEditMode() DraftOption {
	return func(d *domain.Draft) {
		d.Mode = "edit"
		d.Method = http.MethodPut
	}
}

func WithPayload(v any) DraftOption {
	return func(d *domain.Draft) {
		b, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		d.Payload = b
	}
}

func WithLastError(msg string) DraftOption {
	return func(d *domain.Draft) { d.LastError = msg }
}

// NewTestDraft returns a job create draft. Successive drafts get strictly
// increasing timestamps so list order is deterministic.
func NewTestDraft(opts ...DraftOption) *domain.Draft {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC).Add(time.Duration(draftClock.Add(1)) * time.Second)
	d := &domain.Draft{
		ID:        uuid.NewString(),
		Entity:    "job",
		Mode:      "add",
		Method:    http.MethodPost,
		Path:      "Job",
		Payload:   json.RawMessage(`{"jobId":0,"jobNumber":"JOB-1"}`),
		LastError: "The server could not be reached. Please try again.",
		Attempts:  1,
		CreatedAt: at,
		UpdatedAt: at,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TestSession is the signed-in user used across tests.
func TestSession() domain.Session {
	return domain.Session{UserID: 3, CompanyID: 7, UserName: "alice"}
}
