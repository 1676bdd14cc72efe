package domain

import (
	"encoding/json"
	"time"
)

// Draft is an assembled payload whose submission failed, kept for retry.
type Draft struct {
	ID        string
	Entity    string
	Mode      string
	Method    string
	Path      string
	Payload   json.RawMessage
	LastError string
	Attempts  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
