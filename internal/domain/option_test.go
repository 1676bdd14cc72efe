package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionProjections(t *testing.T) {
	assert.Equal(t, Option{Value: "12", Label: "ACME - Acme Logistics"},
		PartyRecord{PartyID: 12, PartyCode: "ACME", PartyName: "Acme Logistics"}.Option())
	assert.Equal(t, Option{Value: "4", Label: "PKKHI - Karachi"},
		PortRecord{UnLocationID: 4, UnLocationCode: "PKKHI", UnLocationName: "Karachi"}.Option())
	assert.Equal(t, Option{Value: "5", Label: "Freight"},
		ChargeRecord{ChargeID: 5, ChargeName: "Freight"}.Option())
	assert.Equal(t, Option{Value: "8", Label: "JOB-001 (2026-01-15)"},
		JobRefRecord{JobID: 8, JobNumber: "JOB-001", JobDate: "2026-01-15T00:00:00"}.Option())
}
