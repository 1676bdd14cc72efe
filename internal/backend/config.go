package backend

import (
	"strings"
	"time"
)

// CallKind identifies the kind of backend call being made.
type CallKind string

const (
	CallList       CallKind = "list"
	CallTypeValues CallKind = "type_values"
	CallJobNumber  CallKind = "job_number"
	CallSave       CallKind = "save"
)

// Config holds connection settings for the REST backend.
type Config struct {
	BaseURL      string
	TypesBaseURL string
	TimeoutMs    int
	ListRetries  int
	PageSize     int
	Timeouts     map[CallKind]int // per-kind override in ms, used if > 0
}

// DefaultConfig returns a Config pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:5000/api/",
		TypesBaseURL: "http://localhost:5001",
		TimeoutMs:    10000,
		ListRetries:  2,
		PageSize:     1000,
		Timeouts: map[CallKind]int{
			CallList:       8000,
			CallTypeValues: 5000,
			CallJobNumber:  4000,
			CallSave:       20000,
		},
	}
}

// CallTimeout returns the effective timeout for a call kind.
func (c Config) CallTimeout(kind CallKind) time.Duration {
	ms := c.TimeoutMs
	if v, ok := c.Timeouts[kind]; ok && v > 0 {
		ms = v
	}
	return time.Duration(ms) * time.Millisecond
}

// endpoint joins the primary base URL and a relative path. The base is
// treated as a prefix ending in "/" so "Party/GetList" lands under it.
func (c Config) endpoint(path string) string {
	base := c.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(path, "/")
}

func (c Config) typesEndpoint() string {
	return strings.TrimSuffix(c.TypesBaseURL, "/") + "/api/General/GetTypeValues"
}
