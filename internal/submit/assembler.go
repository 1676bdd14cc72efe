// Package submit assembles one outbound payload from a master record and
// its child lists and sends it to the backend exactly once.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/alexanderramin/freightdesk/internal/forms"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInFlight        = errors.New("a submission is already in progress")
	ErrEmptyCollection = errors.New("required child list is empty")
	ErrInvalid         = errors.New("record failed validation")
)

// Notifier surfaces outcomes to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// DraftSink keeps payloads whose submission failed.
type DraftSink interface {
	Create(ctx context.Context, d *domain.Draft) error
}

// Prepared is an assembled request ready to send.
type Prepared struct {
	Entity  string
	Title   string
	Mode    forms.Mode
	Method  string
	Path    string
	Payload any
}

// Assembler turns form records into backend saves.
type Assembler struct {
	client  backend.Client
	session domain.Session
	notify  Notifier
	log     logrus.FieldLogger
	drafts  DraftSink
	now     func() time.Time

	inFlight atomic.Bool
}

type Option func(*Assembler)

// WithDrafts captures failed submissions in sink.
func WithDrafts(sink DraftSink) Option {
	return func(a *Assembler) { a.drafts = sink }
}

// WithClock overrides the clock used for audit stamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

func NewAssembler(client backend.Client, session domain.Session, notify Notifier, log logrus.FieldLogger, opts ...Option) *Assembler {
	a := &Assembler{
		client:  client,
		session: session,
		notify:  notify,
		log:     log.WithField("module", "submit"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Submitting reports whether a request is in flight.
func (a *Assembler) Submitting() bool { return a.inFlight.Load() }

// Prepare normalises and validates rec and maps it to the entity payload.
// Nothing is sent. Failures wrap ErrEmptyCollection or ErrInvalid.
func (a *Assembler) Prepare(e *forms.Entity, mode forms.Mode, rec forms.Record) (*Prepared, error) {
	rec = rec.Clone()
	if mode == forms.ModeAdd {
		rec.Values[e.IDField] = "0"
	}
	rec = e.Normalize(rec)

	if req, unmet := e.Unmet(rec); unmet {
		return nil, &RejectedError{Reason: ErrEmptyCollection, Message: req.Message}
	}
	if err := e.Check(rec); err != nil {
		return nil, &RejectedError{Reason: ErrInvalid, Message: "Please fix: " + err.Error(), Cause: err}
	}

	audit := forms.Audit{
		Mode:      mode,
		Log:       a.session.AuditLog(a.now()),
		CompanyID: a.session.CompanyID,
	}
	payload := e.Build(rec, audit)
	if err := domain.Validate(payload); err != nil {
		return nil, &RejectedError{Reason: ErrInvalid, Message: "The record could not be sent: " + err.Error(), Cause: err}
	}

	method := http.MethodPost
	if mode == forms.ModeEdit {
		method = http.MethodPut
	}
	return &Prepared{
		Entity:  e.Name,
		Title:   e.Title,
		Mode:    mode,
		Method:  method,
		Path:    e.Endpoint,
		Payload: payload,
	}, nil
}

// Submit prepares and sends rec. Validation failures are reported before
// any network call. On success onComplete (if set) receives the backend
// response body. Form state is never touched, so a failed submit can be
// retried as is.
func (a *Assembler) Submit(ctx context.Context, e *forms.Entity, mode forms.Mode, rec forms.Record, onComplete func(json.RawMessage)) (json.RawMessage, error) {
	if !a.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer a.inFlight.Store(false)

	p, err := a.Prepare(e, mode, rec)
	if err != nil {
		a.notify.Error(err.Error())
		return nil, err
	}
	return a.send(ctx, p, true, onComplete)
}

// Resend sends an already prepared request, e.g. one restored from a draft.
// A failure is reported but not captured again.
func (a *Assembler) Resend(ctx context.Context, p *Prepared, onComplete func(json.RawMessage)) (json.RawMessage, error) {
	if !a.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer a.inFlight.Store(false)
	return a.send(ctx, p, false, onComplete)
}

func (a *Assembler) send(ctx context.Context, p *Prepared, capture bool, onComplete func(json.RawMessage)) (json.RawMessage, error) {
	log := a.log.WithFields(logrus.Fields{"entity": p.Entity, "method": p.Method})

	resp, err := a.client.Save(ctx, backend.SaveRequest{Path: p.Path, Method: p.Method, Payload: p.Payload})
	if err != nil {
		log.WithError(err).Error("submission failed")
		a.notify.Error(backend.UserMessage(err))
		if capture && a.drafts != nil {
			a.captureDraft(ctx, p, err)
		}
		return nil, fmt.Errorf("saving %s: %w", p.Entity, err)
	}

	log.Debug("submission succeeded")
	verb := "created"
	if p.Mode == forms.ModeEdit {
		verb = "updated"
	}
	a.notify.Success(fmt.Sprintf("%s %s", p.Title, verb))
	if onComplete != nil {
		onComplete(resp)
	}
	return resp, nil
}

func (a *Assembler) captureDraft(ctx context.Context, p *Prepared, cause error) {
	body, err := json.Marshal(p.Payload)
	if err != nil {
		a.log.WithError(err).Warn("could not encode draft payload")
		return
	}
	now := a.now().UTC()
	d := &domain.Draft{
		ID:        uuid.NewString(),
		Entity:    p.Entity,
		Mode:      string(p.Mode),
		Method:    p.Method,
		Path:      p.Path,
		Payload:   body,
		LastError: backend.UserMessage(cause),
		Attempts:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.drafts.Create(ctx, d); err != nil {
		a.log.WithError(err).Warn("could not store draft")
		return
	}
	a.notify.Error(fmt.Sprintf("Saved as draft %s; retry with `freightdesk draft retry %s`", d.ID[:8], d.ID[:8]))
}

// FromDraft rebuilds a prepared request from a stored draft.
func FromDraft(d *domain.Draft, title string) *Prepared {
	return &Prepared{
		Entity:  d.Entity,
		Title:   title,
		Mode:    forms.Mode(d.Mode),
		Method:  d.Method,
		Path:    d.Path,
		Payload: d.Payload,
	}
}

// RejectedError is returned when a record is refused before sending.
type RejectedError struct {
	Reason  error // ErrEmptyCollection or ErrInvalid
	Message string
	Cause   error
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Cause}
}
