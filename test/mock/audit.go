// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Dev-Muhammad-Junaid/links-maker/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogProbe(ctx context.Context, log audit.ProbeLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, accountKey, resourceID string) ([]audit.ProbeLog, error) {
	args := m.Called(ctx, from, to, accountKey, resourceID)
	return args.Get(0).([]audit.ProbeLog), args.Error(1)
}
