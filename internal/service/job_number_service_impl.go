package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/freightdesk/internal/backend"
	"github.com/sirupsen/logrus"
)

type jobNumberService struct {
	client backend.Client
	log    logrus.FieldLogger
	now    func() time.Time
	suffix func() int
}

func NewJobNumberService(client backend.Client, log logrus.FieldLogger) JobNumberService {
	return &jobNumberService{
		client: client,
		log:    log.WithField("module", "jobno"),
		now:    time.Now,
		suffix: func() int { return rand.IntN(1000) },
	}
}

func (s *jobNumberService) Next(ctx context.Context) (string, bool) {
	number, err := s.client.GenerateJobNumber(ctx)
	if err == nil {
		return number, false
	}
	s.log.WithError(err).Warn("job number allocation failed, generating locally")
	return fallbackJobNumber(s.now(), s.suffix()), true
}

// fallbackJobNumber is "JOB-<yyyymmddhhmmss>-<nnn>" in UTC.
func fallbackJobNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("JOB-%s-%03d", now.UTC().Format("20060102150405"), suffix%1000)
}
