package testutil

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alexanderramin/freightdesk/internal/backend"
)

// FakeBackend is an in-memory backend.Client. Zero-value maps are fine; a
// missing entity lists as empty.
type FakeBackend struct {
	mu sync.Mutex

	Lists     map[string][]json.RawMessage
	ListErrs  map[string]error
	Types     map[string][]string
	TypeErrs  map[string]error
	JobNumber string
	JobNoErr  error
	SaveResp  json.RawMessage
	SaveErr   error

	// Hooks run before the call returns, without the lock held.
	OnList func(q backend.ListQuery)
	OnSave func(req backend.SaveRequest)

	ListCalls  []backend.ListQuery
	TypeCalls  []string
	JobNoCalls int
	Saves      []backend.SaveRequest
}

var _ backend.Client = (*FakeBackend)(nil)

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Lists:    map[string][]json.RawMessage{},
		ListErrs: map[string]error{},
		Types:    map[string][]string{},
		TypeErrs: map[string]error{},
		SaveResp: json.RawMessage(`{}`),
	}
}

func (f *FakeBackend) List(_ context.Context, q backend.ListQuery) ([]json.RawMessage, error) {
	f.mu.Lock()
	f.ListCalls = append(f.ListCalls, q)
	hook := f.OnList
	f.mu.Unlock()
	if hook != nil {
		hook(q)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ListErrs[q.Entity]; err != nil {
		return nil, err
	}
	out := append([]json.RawMessage{}, f.Lists[q.Entity]...)
	return out, nil
}

func (f *FakeBackend) TypeValues(_ context.Context, typeName string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TypeCalls = append(f.TypeCalls, typeName)
	if err := f.TypeErrs[typeName]; err != nil {
		return nil, err
	}
	return append([]string{}, f.Types[typeName]...), nil
}

func (f *FakeBackend) GenerateJobNumber(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.JobNoCalls++
	if f.JobNoErr != nil {
		return "", f.JobNoErr
	}
	return f.JobNumber, nil
}

func (f *FakeBackend) Save(_ context.Context, req backend.SaveRequest) (json.RawMessage, error) {
	f.mu.Lock()
	f.Saves = append(f.Saves, req)
	hook := f.OnSave
	f.mu.Unlock()
	if hook != nil {
		hook(req)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	return f.SaveResp, nil
}

// SaveCount returns the number of Save calls so far.
func (f *FakeBackend) SaveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Saves)
}

// ListCount returns the number of List calls so far.
func (f *FakeBackend) ListCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ListCalls)
}

// Raw marshals each value into a raw JSON record.
func Raw(vals ...any) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		b, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		out = append(out, b)
	}
	return out
}

// JSON wraps literal JSON documents as raw records.
func JSON(docs ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		out = append(out, json.RawMessage(d))
	}
	return out
}
