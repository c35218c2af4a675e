// test/mock/service.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Dev-Muhammad-Junaid/links-maker/audit"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

// MockAccessService is a mock implementation of service.IAccessService
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) CheckAccess(ctx context.Context, req model.CheckAccessRequest, reqContext string) (*model.CheckAccessResponse, error) {
	args := m.Called(ctx, req, reqContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckAccessResponse), args.Error(1)
}

func (m *MockAccessService) RewriteURL(rawURL string, authIndex int) (string, error) {
	args := m.Called(rawURL, authIndex)
	return args.String(0), args.Error(1)
}

func (m *MockAccessService) BadgeIndex(rawURL string) (int, bool) {
	args := m.Called(rawURL)
	return args.Int(0), args.Bool(1)
}

func (m *MockAccessService) Invalidate(ctx context.Context, req model.InvalidateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAccessService) ClearCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccessService) QueryProbeLogs(ctx context.Context, from, to time.Time, accountKey, resourceID string) ([]audit.ProbeLog, error) {
	args := m.Called(ctx, from, to, accountKey, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.ProbeLog), args.Error(1)
}

// MockAccountService is a mock implementation of service.IAccountService
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]model.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountService) EnsureDefaultAccounts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
