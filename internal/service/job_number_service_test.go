package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/freightdesk/internal/logging"
	"github.com/alexanderramin/freightdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobNumberService_UsesBackendNumber(t *testing.T) {
	fb := testutil.NewFakeBackend()
	fb.JobNumber = "JOB-2024-0042"

	number, fallback := NewJobNumberService(fb, logging.Discard()).Next(context.Background())

	assert.Equal(t, "JOB-2024-0042", number)
	assert.False(t, fallback)
	assert.Equal(t, 1, fb.JobNoCalls)
}

func TestJobNumberService_FallsBackLocally(t *testing.T) {
	fb := testutil.NewFakeBackend()
	fb.JobNoErr = errors.New("connection refused")

	svc := NewJobNumberService(fb, logging.Discard()).(*jobNumberService)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 3, 7, 0, time.UTC) }
	svc.suffix = func() int { return 7 }

	number, fallback := svc.Next(context.Background())

	assert.True(t, fallback)
	assert.Equal(t, "JOB-20240501090307-007", number)
}

func TestFallbackJobNumber_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^JOB-\d{14}-\d{3}$`)
	for _, suffix := range []int{0, 42, 999, 1234} {
		assert.Regexp(t, pattern, fallbackJobNumber(time.Now(), suffix))
	}
}
