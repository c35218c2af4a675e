// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogProbe(ctx context.Context, log ProbeLog) error
	QueryLogs(ctx context.Context, from, to time.Time, accountKey, resourceID string) ([]ProbeLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogProbe(ctx context.Context, log ProbeLog) error {
	return s.repo.LogProbe(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, accountKey, resourceID string) ([]ProbeLog, error) {
	return s.repo.QueryLogs(ctx, from, to, accountKey, resourceID)
}
