package refdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ListState is the observable state of one reference list.
type ListState struct {
	Options []domain.Option
	Loading bool
	// Err is the last fetch failure; Options then hold the fallback.
	Err error
	// Skipped counts records dropped by boundary validation.
	Skipped int
}

// Loader fetches lookups independently and concurrently. State is owned by
// one form instance; nothing is cached across loaders.
type Loader struct {
	client  backend.Client
	log     logrus.FieldLogger
	lookups map[Kind]Lookup
	order   []Kind

	mu     sync.RWMutex
	states map[Kind]ListState
}

func NewLoader(client backend.Client, lookups []Lookup, log logrus.FieldLogger) *Loader {
	l := &Loader{
		client:  client,
		log:     log.WithField("module", "refdata"),
		lookups: make(map[Kind]Lookup, len(lookups)),
		states:  make(map[Kind]ListState, len(lookups)),
	}
	for _, lk := range lookups {
		l.lookups[lk.Kind] = lk
		l.order = append(l.order, lk.Kind)
		l.states[lk.Kind] = ListState{Options: []domain.Option{}}
	}
	return l
}

// Kinds returns the configured kinds in declaration order.
func (l *Loader) Kinds() []Kind {
	return append([]Kind(nil), l.order...)
}

// Lookup returns the definition of kind.
func (l *Loader) Lookup(kind Kind) (Lookup, bool) {
	lk, ok := l.lookups[kind]
	return lk, ok
}

// Load fetches every configured lookup and waits for all of them.
func (l *Loader) Load(ctx context.Context) {
	_ = l.LoadKinds(ctx, l.order...)
}

// LoadKinds fetches the named lookups concurrently. A failing fetch never
// affects the others; the only error is an unknown kind, reported before
// any request is made.
func (l *Loader) LoadKinds(ctx context.Context, kinds ...Kind) error {
	for _, k := range kinds {
		if _, ok := l.lookups[k]; !ok {
			return fmt.Errorf("unknown lookup %q", k)
		}
	}

	var g errgroup.Group
	for _, k := range kinds {
		lk := l.lookups[k]
		l.update(k, func(s *ListState) { s.Loading = true })
		g.Go(func() error {
			l.fetch(ctx, lk)
			return nil
		})
	}
	return g.Wait()
}

func (l *Loader) fetch(ctx context.Context, lk Lookup) {
	log := l.log.WithField("lookup", lk.Kind)

	var (
		opts    []domain.Option
		skipped int
		err     error
	)
	if lk.typeValues() {
		var vals []string
		vals, err = l.client.TypeValues(ctx, lk.TypeName)
		for _, v := range vals {
			opts = append(opts, domain.Option{Value: v, Label: v})
		}
	} else {
		raws, lerr := l.client.List(ctx, lk.Query)
		err = lerr
		if err == nil && lk.Decode != nil {
			opts, skipped = lk.Decode(raws)
		}
	}

	if err != nil {
		log.WithError(err).Warn("reference data fetch failed, using fallback")
		l.set(lk.Kind, ListState{Options: cloneOptions(lk.Fallback), Err: err})
		return
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Debug("dropped invalid reference records")
	}
	l.set(lk.Kind, ListState{Options: cloneOptions(opts), Skipped: skipped})
}

func (l *Loader) update(kind Kind, fn func(*ListState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.states[kind]
	fn(&s)
	l.states[kind] = s
}

func (l *Loader) set(kind Kind, s ListState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states[kind] = s
}

// State returns a snapshot of kind.
func (l *Loader) State(kind Kind) ListState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := l.states[kind]
	s.Options = cloneOptions(s.Options)
	return s
}

// Options returns the current options of kind (never nil).
func (l *Loader) Options(kind Kind) []domain.Option {
	return l.State(kind).Options
}

// Loading reports whether any of kinds is still in flight.
func (l *Loader) Loading(kinds ...Kind) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, k := range kinds {
		if l.states[k].Loading {
			return true
		}
	}
	return false
}

// Label resolves value to its option label, or returns value unchanged.
func (l *Loader) Label(kind Kind, value string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.states[kind].Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func cloneOptions(opts []domain.Option) []domain.Option {
	out := make([]domain.Option, len(opts))
	copy(out, opts)
	return out
}
